package git

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"
)

const DefaultMaxBlocking = 4

type Options struct {
	// MaxBlocking bounds how many operations touch repositories at the same time.
	MaxBlocking int64
	// ContextLines is the number of unchanged lines around each hunk.
	ContextLines int

	DefaultLimit uint
	MaxLimit     uint
}

// Service runs graph, diff and staging operations against the open repository.
// Only the repository path is shared between calls; each operation opens its own
// handle and drops it when done.
type Service struct {
	// mu guards path.
	mu   sync.Mutex
	path string

	open Opener
	sem  *semaphore.Weighted
	opts Options
}

func New(opts Options) *Service {
	return NewWithOpener(PlainOpen, opts)
}

func NewWithOpener(open Opener, opts Options) *Service {
	if opts.MaxBlocking <= 0 {
		opts.MaxBlocking = DefaultMaxBlocking
	}
	if opts.ContextLines < 0 {
		opts.ContextLines = 0
	}
	return &Service{open: open, sem: semaphore.NewWeighted(opts.MaxBlocking), opts: opts}
}

// Open validates that repoPath is a repository and makes it the current one.
func (s *Service) Open(repoPath string) error {
	abs, err := filepath.Abs(repoPath)
	if err != nil {
		return err
	}
	repo, err := s.open(abs)
	if err != nil {
		return err
	}
	if wt, err := repo.Worktree(); err == nil {
		abs = wt.Filesystem.Root()
	}
	s.mu.Lock()
	s.path = abs
	s.mu.Unlock()
	slog.Info("repository opened", slog.String("path", abs))
	return nil
}

func (s *Service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.path != "" {
		slog.Info("repository closed", slog.String("path", s.path))
	}
	s.path = ""
}

func (s *Service) Path() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.path == "" {
		return "", ErrNoRepository
	}
	return s.path, nil
}

// run snapshots the path and executes fn on its own goroutine with a fresh handle,
// holding a slot of the blocking semaphore. A panic in fn becomes ErrInternal.
func (s *Service) run(op string, fn func(h *repoHandle) error) error {
	path, err := s.Path()
	if err != nil {
		return err
	}
	logger := slog.With(slog.String("op", op), slog.String("request_id", uuid.NewString()))
	start := time.Now()
	logger.Debug("operation start", slog.String("repo", path))

	if err := s.sem.Acquire(context.Background(), 1); err != nil {
		return fmt.Errorf("%w: acquire worker: %v", ErrInternal, err)
	}
	done := make(chan error, 1)
	go func() {
		defer s.sem.Release(1)
		defer func() {
			if r := recover(); r != nil {
				done <- fmt.Errorf("%w: %s: %v", ErrInternal, op, r)
			}
		}()
		repo, err := s.open(path)
		if err != nil {
			done <- err
			return
		}
		done <- fn(&repoHandle{Repository: repo, path: path})
	}()
	err = <-done

	attrs := []any{slog.Duration("elapsed", time.Since(start))}
	if err != nil {
		attrs = append(attrs, slog.String("err", err.Error()))
	}
	if err != nil && errors.Is(err, ErrInternal) {
		logger.Error("operation failed", attrs...)
	} else {
		logger.Debug("operation done", attrs...)
	}
	return err
}
