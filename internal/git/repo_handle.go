package git

import (
	"errors"
	"fmt"

	gitlib "github.com/go-git/go-git/v5"
)

// Opener opens the repository at path. Every operation gets a fresh handle.
type Opener func(path string) (*gitlib.Repository, error)

// PlainOpen opens a repository on disk, looking for .git in parent directories.
func PlainOpen(path string) (*gitlib.Repository, error) {
	repo, err := gitlib.PlainOpenWithOptions(path, &gitlib.PlainOpenOptions{DetectDotGit: true})
	if errors.Is(err, gitlib.ErrRepositoryNotExists) {
		return nil, fmt.Errorf("%s: %w", path, ErrNotARepository)
	}
	if err != nil {
		return nil, fmt.Errorf("open repository: %w", err)
	}
	return repo, nil
}

type repoHandle struct {
	*gitlib.Repository
	path string
}
