package git

import (
	"log/slog"

	"github.com/thiagokokada/gitlanes/internal/staging"
)

// StageHunks moves the selected hunks of the unstaged diff of path into the
// index. An empty selection does nothing.
func (s *Service) StageHunks(path string, indices []uint) error {
	if len(indices) == 0 {
		return nil
	}
	return s.run("stage_hunks", func(h *repoHandle) error {
		return h.updateEntry(path, func(f *fileState) (entryUpdate, error) {
			patch := f.stagingPatch(false, s.opts.ContextLines)
			if err := staging.ValidateHunks(patch, indices...); err != nil {
				return entryUpdate{}, err
			}
			if staging.SelectsAll(patch, indices) {
				return f.stageAll(), nil
			}
			content, err := staging.ApplyHunks(f.index.content, patch, indices, staging.Stage)
			if err != nil {
				return entryUpdate{}, err
			}
			return entryUpdate{content: content, mode: f.entryMode()}, nil
		})
	})
}

// UnstageHunks reverts the selected hunks of the staged diff of path back to
// HEAD. Selecting every hunk resets the entry to HEAD.
func (s *Service) UnstageHunks(path string, indices []uint) error {
	if len(indices) == 0 {
		return nil
	}
	return s.run("unstage_hunks", func(h *repoHandle) error {
		return h.updateEntry(path, func(f *fileState) (entryUpdate, error) {
			patch := f.stagingPatch(true, s.opts.ContextLines)
			if err := staging.ValidateHunks(patch, indices...); err != nil {
				return entryUpdate{}, err
			}
			if staging.SelectsAll(patch, indices) {
				return f.unstageAll(), nil
			}
			content, err := staging.ApplyHunks(f.head.content, patch, indices, staging.Unstage)
			if err != nil {
				return entryUpdate{}, err
			}
			return entryUpdate{content: content, mode: f.entryMode()}, nil
		})
	})
}

// StageLines stages the lines of one hunk whose numbers fall in ranges.
// Additions are matched by their worktree line number and deletions by their
// index line number.
func (s *Service) StageLines(path string, hunk uint, ranges []staging.LineRange) error {
	return s.applyLines("stage_lines", path, hunk, ranges, staging.Stage)
}

// UnstageLines is the inverse of StageLines on the staged diff.
func (s *Service) UnstageLines(path string, hunk uint, ranges []staging.LineRange) error {
	return s.applyLines("unstage_lines", path, hunk, ranges, staging.Unstage)
}

func (s *Service) applyLines(op, path string, hunk uint, ranges []staging.LineRange, dir staging.Direction) error {
	if len(ranges) == 0 {
		return nil
	}
	if err := staging.ValidateRanges(ranges); err != nil {
		return err
	}
	staged := dir == staging.Unstage
	return s.run(op, func(h *repoHandle) error {
		return h.updateEntry(path, func(f *fileState) (entryUpdate, error) {
			base := f.index.content
			if staged {
				base = f.head.content
			}
			content, err := staging.ApplyLines(base, f.stagingPatch(staged, s.opts.ContextLines), hunk, ranges, dir)
			if err != nil {
				return entryUpdate{}, err
			}
			slog.Debug("lines applied", slog.String("path", f.path), slog.String("direction", dir.String()),
				slog.Int("ranges", len(ranges)))
			return entryUpdate{content: content, mode: f.entryMode()}, nil
		})
	})
}

// StageFile copies the worktree version of path into the index, removing the
// entry when the file was deleted. Untracked and binary files are accepted.
func (s *Service) StageFile(path string) error {
	return s.run("stage_file", func(h *repoHandle) error {
		return h.updateEntry(path, func(f *fileState) (entryUpdate, error) {
			return f.stageAll(), nil
		})
	})
}

// UnstageFile resets the index entry of path to HEAD.
func (s *Service) UnstageFile(path string) error {
	return s.run("unstage_file", func(h *repoHandle) error {
		return h.updateEntry(path, func(f *fileState) (entryUpdate, error) {
			return f.unstageAll(), nil
		})
	})
}

func (f *fileState) stageAll() entryUpdate {
	if !f.work.exists {
		return entryUpdate{remove: true}
	}
	return entryUpdate{content: f.work.content, mode: f.work.mode}
}

func (f *fileState) unstageAll() entryUpdate {
	if !f.head.exists {
		return entryUpdate{remove: true}
	}
	return entryUpdate{content: f.head.content, mode: f.head.mode}
}
