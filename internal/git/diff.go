package git

import (
	"github.com/thiagokokada/gitlanes/internal/diff"
)

// patch diffs the index against the worktree, or HEAD against the index when
// staged is set. Untracked files have no hunks until they are staged as a whole.
func (f *fileState) patch(staged bool, contextLines int) diff.FilePatch {
	from, to := f.index, f.work
	if staged {
		from, to = f.head, f.index
	}
	if !staged && !f.index.exists {
		return diff.FilePatch{Path: f.path, IsBinary: f.work.binary, Hunks: []diff.DetailedHunk{}}
	}
	return diff.Compute(f.path, from.content, to.content, from.binary || to.binary, contextLines)
}

// stagingPatch runs the patch through the extractor, the same way FileDiffHunks
// does, so staging sees identical hunk indices and binary flag.
func (f *fileState) stagingPatch(staged bool, contextLines int) diff.FilePatch {
	_, detailed, isBinary := diff.Extract([]diff.FilePatch{f.patch(staged, contextLines)}, true)
	return diff.FilePatch{Path: f.path, IsBinary: isBinary, Hunks: detailed}
}

// FileDiffHunks lists the hunks of path with their lines. Binary files yield an
// empty list.
func (s *Service) FileDiffHunks(path string, staged bool) ([]diff.DetailedHunk, error) {
	var hunks []diff.DetailedHunk
	err := s.run("file_diff_hunks", func(h *repoHandle) error {
		f, _, err := h.loadFile(path)
		if err != nil {
			return err
		}
		patch := f.stagingPatch(staged, s.opts.ContextLines)
		hunks = patch.Hunks
		if patch.IsBinary {
			hunks = []diff.DetailedHunk{}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return hunks, nil
}

// FileDiff returns both sides of path with hunk headers and the detected
// language. Contents are left empty for binary files. A negative contextLines
// selects the configured default.
func (s *Service) FileDiff(path string, staged bool, contextLines int) (diff.FileDiff, error) {
	if contextLines < 0 {
		contextLines = s.opts.ContextLines
	}
	var out diff.FileDiff
	err := s.run("file_diff", func(h *repoHandle) error {
		f, _, err := h.loadFile(path)
		if err != nil {
			return err
		}
		hunks, _, isBinary := diff.Extract([]diff.FilePatch{f.patch(staged, contextLines)}, false)
		from, to := f.index, f.work
		if staged {
			from, to = f.head, f.index
		}
		out = diff.FileDiff{
			Path:     f.path,
			Hunks:    hunks,
			IsBinary: isBinary,
			Language: diff.Language(f.path),
		}
		if !isBinary {
			out.OldContent, out.NewContent = from.content, to.content
		}
		return nil
	})
	if err != nil {
		return diff.FileDiff{}, err
	}
	return out, nil
}
