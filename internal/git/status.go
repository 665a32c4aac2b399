package git

import (
	"fmt"
	"slices"
	"strings"

	gitlib "github.com/go-git/go-git/v5"
)

type ChangeKind string

const (
	Modified   ChangeKind = "modified"
	Added      ChangeKind = "added"
	Deleted    ChangeKind = "deleted"
	Renamed    ChangeKind = "renamed"
	Untracked  ChangeKind = "untracked"
	Conflicted ChangeKind = "conflicted"
)

type FileChange struct {
	Path    string     `json:"path"`
	Status  ChangeKind `json:"status" enum:"modified,added,deleted,renamed,untracked,conflicted"`
	// OldPath is the previous name of a renamed file.
	OldPath string     `json:"old_path,omitempty"`
}

// StagingStatus lists changed paths, split the way a staging view shows them.
type StagingStatus struct {
	Staged    []FileChange `json:"staged"`
	Unstaged  []FileChange `json:"unstaged"`
	Untracked []FileChange `json:"untracked"`
}

func changeKind(code gitlib.StatusCode) (ChangeKind, bool) {
	switch code {
	case gitlib.Modified, gitlib.Copied:
		return Modified, true
	case gitlib.Added:
		return Added, true
	case gitlib.Deleted:
		return Deleted, true
	case gitlib.Renamed:
		return Renamed, true
	case gitlib.UpdatedButUnmerged:
		return Conflicted, true
	}
	return "", false
}

// newFileChange keeps extra, go-git's previous name, for renames only.
func newFileChange(path string, code gitlib.StatusCode, extra string) (FileChange, bool) {
	kind, ok := changeKind(code)
	if !ok {
		return FileChange{}, false
	}
	c := FileChange{Path: path, Status: kind}
	if kind == Renamed {
		c.OldPath = extra
	}
	return c, true
}

func (s *Service) StagingStatus() (StagingStatus, error) {
	res := StagingStatus{Staged: []FileChange{}, Unstaged: []FileChange{}, Untracked: []FileChange{}}
	err := s.run("staging_status", func(h *repoHandle) error {
		wt, err := h.Worktree()
		if err != nil {
			return fmt.Errorf("open worktree: %w", err)
		}
		status, err := wt.Status()
		if err != nil {
			return fmt.Errorf("worktree status: %w", err)
		}
		for path, st := range status {
			if st.Staging == gitlib.Untracked || st.Worktree == gitlib.Untracked {
				res.Untracked = append(res.Untracked, FileChange{Path: path, Status: Untracked})
				continue
			}
			if c, ok := newFileChange(path, st.Staging, st.Extra); ok {
				res.Staged = append(res.Staged, c)
			}
			if c, ok := newFileChange(path, st.Worktree, st.Extra); ok {
				res.Unstaged = append(res.Unstaged, c)
			}
		}
		return nil
	})
	if err != nil {
		return StagingStatus{}, err
	}
	for _, list := range [][]FileChange{res.Staged, res.Unstaged, res.Untracked} {
		slices.SortFunc(list, func(a, b FileChange) int { return strings.Compare(a.Path, b.Path) })
	}
	return res, nil
}
