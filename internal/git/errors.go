package git

import "errors"

var (
	// ErrNoRepository is returned by every operation while no repository is open.
	ErrNoRepository   = errors.New("no repository open")
	ErrNotARepository = errors.New("not a git repository")
	ErrPathNotFound   = errors.New("path not found in HEAD, index or worktree")
	// ErrIndexLocked means another writer holds index.lock.
	ErrIndexLocked = errors.New("index is locked by another process")
	ErrInternal    = errors.New("internal error")
)
