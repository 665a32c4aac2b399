package git

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	gitindex "github.com/go-git/go-git/v5/plumbing/format/index"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

const indexLockName = "index.lock"

// entryUpdate is the new state of one index entry.
type entryUpdate struct {
	content string
	mode    filemode.FileMode
	remove  bool
}

// lockIndex takes git's index.lock so concurrent writers, including the git CLI,
// fail instead of losing updates. Storages without a filesystem are not locked.
func (h *repoHandle) lockIndex() (func(), error) {
	fsStorer, ok := h.Storer.(interface{ Filesystem() billy.Filesystem })
	if !ok {
		return func() {}, nil
	}
	fs := fsStorer.Filesystem()
	f, err := fs.OpenFile(indexLockName, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if errors.Is(err, os.ErrExist) {
		return nil, ErrIndexLocked
	}
	if err != nil {
		return nil, fmt.Errorf("lock index: %w", err)
	}
	return func() {
		_ = f.Close()
		if err := fs.Remove(indexLockName); err != nil {
			slog.Warn("remove index lock", slog.String("err", err.Error()))
		}
	}, nil
}

// updateEntry rewrites the index entry of path with whatever build derives from
// the current file state. Everything runs under the index lock and nothing is
// written when build fails.
func (h *repoHandle) updateEntry(path string, build func(f *fileState) (entryUpdate, error)) error {
	unlock, err := h.lockIndex()
	if err != nil {
		return err
	}
	defer unlock()

	f, idx, err := h.loadFile(path)
	if err != nil {
		return err
	}
	u, err := build(f)
	if err != nil {
		return err
	}
	if u.remove {
		if _, err := idx.Remove(f.path); err != nil && !errors.Is(err, gitindex.ErrEntryNotFound) {
			return fmt.Errorf("remove index entry: %w", err)
		}
	} else {
		hash, err := writeBlob(h.Storer, u.content)
		if err != nil {
			return fmt.Errorf("write blob: %w", err)
		}
		setEntry(idx, f.path, hash, u.mode, len(u.content))
	}
	// The cached tree no longer matches the entries.
	idx.Cache = nil
	if err := h.Storer.SetIndex(idx); err != nil {
		return fmt.Errorf("write index: %w", err)
	}
	slog.Debug("index entry updated", slog.String("path", f.path), slog.Bool("removed", u.remove))
	return nil
}

func writeBlob(s storer.EncodedObjectStorer, content string) (plumbing.Hash, error) {
	obj := s.NewEncodedObject()
	obj.SetType(plumbing.BlobObject)
	obj.SetSize(int64(len(content)))
	w, err := obj.Writer()
	if err != nil {
		return plumbing.ZeroHash, err
	}
	if _, err := io.WriteString(w, content); err != nil {
		_ = w.Close()
		return plumbing.ZeroHash, err
	}
	if err := w.Close(); err != nil {
		return plumbing.ZeroHash, err
	}
	return s.SetEncodedObject(obj)
}

// setEntry points path at hash. Stat data is cleared so git rehashes the file
// on its next status.
func setEntry(idx *gitindex.Index, path string, hash plumbing.Hash, mode filemode.FileMode, size int) {
	entry, err := idx.Entry(path)
	if err != nil {
		entry = idx.Add(path)
	}
	entry.Hash = hash
	entry.Mode = mode
	entry.Size = uint32(size)
	entry.CreatedAt = time.Time{}
	entry.ModifiedAt = time.Time{}
	entry.Dev, entry.Inode = 0, 0
	slices.SortFunc(idx.Entries, func(a, b *gitindex.Entry) int {
		return strings.Compare(a.Name, b.Name)
	})
}
