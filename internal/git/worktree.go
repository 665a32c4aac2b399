package git

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	gitindex "github.com/go-git/go-git/v5/plumbing/format/index"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/utils/binary"
)

// side is one version of a file: in HEAD, in the index or on disk.
type side struct {
	exists  bool
	content string
	binary  bool
	mode    filemode.FileMode
}

// fileState holds the three versions of a path.
type fileState struct {
	path  string
	head  side
	index side
	work  side
}

// cleanPath turns a user supplied path into the slash separated, repository
// relative form used by trees and the index.
func cleanPath(p string) (string, error) {
	p = path.Clean(filepath.ToSlash(p))
	p = strings.TrimPrefix(p, "./")
	if p == "." || p == "" || p == ".." || strings.HasPrefix(p, "../") || strings.HasPrefix(p, "/") {
		return "", fmt.Errorf("%q: %w", p, ErrPathNotFound)
	}
	return p, nil
}

// loadFile reads every version of p. The index is returned as well so callers
// can update it. ErrPathNotFound is returned when p exists nowhere.
func (h *repoHandle) loadFile(p string) (*fileState, *gitindex.Index, error) {
	p, err := cleanPath(p)
	if err != nil {
		return nil, nil, err
	}
	tree, err := h.headTree()
	if err != nil {
		return nil, nil, err
	}
	idx, err := h.Storer.Index()
	if err != nil {
		return nil, nil, fmt.Errorf("read index: %w", err)
	}
	wt, err := h.Worktree()
	if err != nil {
		return nil, nil, fmt.Errorf("open worktree: %w", err)
	}

	f := &fileState{path: p}
	if f.head, err = treeSide(tree, p); err != nil {
		return nil, nil, fmt.Errorf("read %s from HEAD: %w", p, err)
	}
	if f.index, err = h.indexSide(idx, p); err != nil {
		return nil, nil, fmt.Errorf("read %s from index: %w", p, err)
	}
	if f.work, err = worktreeSide(wt.Filesystem, p); err != nil {
		return nil, nil, fmt.Errorf("read %s from worktree: %w", p, err)
	}
	if !f.head.exists && !f.index.exists && !f.work.exists {
		return nil, nil, fmt.Errorf("%s: %w", p, ErrPathNotFound)
	}
	return f, idx, nil
}

// headTree returns nil on an unborn branch.
func (h *repoHandle) headTree() (*object.Tree, error) {
	ref, err := h.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("resolve HEAD: %w", err)
	}
	commit, err := h.CommitObject(ref.Hash())
	if err != nil {
		return nil, fmt.Errorf("read HEAD commit: %w", err)
	}
	return commit.Tree()
}

func treeSide(tree *object.Tree, p string) (side, error) {
	if tree == nil {
		return side{}, nil
	}
	f, err := tree.File(p)
	if errors.Is(err, object.ErrFileNotFound) {
		return side{}, nil
	}
	if err != nil {
		return side{}, err
	}
	return fileSide(f)
}

func (h *repoHandle) indexSide(idx *gitindex.Index, p string) (side, error) {
	entry, err := idx.Entry(p)
	if errors.Is(err, gitindex.ErrEntryNotFound) {
		return side{}, nil
	}
	if err != nil {
		return side{}, err
	}
	blob, err := object.GetBlob(h.Storer, entry.Hash)
	if err != nil {
		return side{}, err
	}
	return fileSide(object.NewFile(entry.Name, entry.Mode, blob))
}

func fileSide(f *object.File) (side, error) {
	bin, err := f.IsBinary()
	if err != nil {
		return side{}, err
	}
	content, err := f.Contents()
	if err != nil {
		return side{}, err
	}
	return side{exists: true, content: content, binary: bin, mode: f.Mode}, nil
}

func worktreeSide(fs billy.Filesystem, p string) (side, error) {
	info, err := fs.Lstat(p)
	if errors.Is(err, os.ErrNotExist) {
		return side{}, nil
	}
	if err != nil {
		return side{}, err
	}
	if info.IsDir() {
		return side{}, nil
	}
	mode, err := filemode.NewFromOSFileMode(info.Mode())
	if err != nil {
		mode = filemode.Regular
	}
	if mode == filemode.Symlink {
		target, err := fs.Readlink(p)
		if err != nil {
			return side{}, err
		}
		return side{exists: true, content: filepath.ToSlash(target), mode: mode}, nil
	}

	file, err := fs.Open(p)
	if err != nil {
		return side{}, err
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		return side{}, err
	}
	bin, err := binary.IsBinary(bytes.NewReader(data))
	if err != nil {
		return side{}, err
	}
	return side{exists: true, content: string(data), binary: bin, mode: mode}, nil
}

// entryMode picks the mode for a rewritten index entry.
func (f *fileState) entryMode() filemode.FileMode {
	for _, s := range []side{f.index, f.work, f.head} {
		if s.exists && s.mode != filemode.Empty {
			return s.mode
		}
	}
	return filemode.Regular
}
