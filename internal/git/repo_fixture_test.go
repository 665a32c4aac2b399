package git

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	gitlib "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	gitindex "github.com/go-git/go-git/v5/plumbing/format/index"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/memory"
	"github.com/stretchr/testify/require"

	"github.com/thiagokokada/gitlanes/internal/diff"
)

var fixtureTime = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

// fixture is an in-memory repository opened by a Service.
type fixture struct {
	t       *testing.T
	repo    *gitlib.Repository
	fs      billy.Filesystem
	svc     *Service
	commits int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	fs := memfs.New()
	repo, err := gitlib.Init(memory.NewStorage(), fs)
	require.NoError(t, err)
	svc := NewWithOpener(func(string) (*gitlib.Repository, error) {
		return repo, nil
	}, Options{ContextLines: diff.DefaultContextLines})
	require.NoError(t, svc.Open("."))
	return &fixture{t: t, repo: repo, fs: fs, svc: svc}
}

func (f *fixture) write(path, content string) {
	f.t.Helper()
	require.NoError(f.t, util.WriteFile(f.fs, path, []byte(content), 0o644))
}

func (f *fixture) remove(path string) {
	f.t.Helper()
	require.NoError(f.t, f.fs.Remove(path))
}

// commit stages paths and commits them one minute after the previous commit.
func (f *fixture) commit(msg string, paths ...string) plumbing.Hash {
	f.t.Helper()
	wt, err := f.repo.Worktree()
	require.NoError(f.t, err)
	for _, p := range paths {
		_, err := wt.Add(p)
		require.NoError(f.t, err)
	}
	f.commits++
	sig := &object.Signature{Name: "Alice", Email: "alice@example.com", When: fixtureTime.Add(time.Duration(f.commits) * time.Minute)}
	hash, err := wt.Commit(msg, &gitlib.CommitOptions{Author: sig, Committer: sig})
	require.NoError(f.t, err)
	return hash
}

func (f *fixture) checkout(branch string, create bool) {
	f.t.Helper()
	wt, err := f.repo.Worktree()
	require.NoError(f.t, err)
	require.NoError(f.t, wt.Checkout(&gitlib.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(branch),
		Create: create,
	}))
}

// staged returns the index content of path and whether it has an entry.
func (f *fixture) staged(path string) (string, bool) {
	f.t.Helper()
	idx, err := f.repo.Storer.Index()
	require.NoError(f.t, err)
	entry, err := idx.Entry(path)
	if err == gitindex.ErrEntryNotFound {
		return "", false
	}
	require.NoError(f.t, err)
	blob, err := object.GetBlob(f.repo.Storer, entry.Hash)
	require.NoError(f.t, err)
	file := object.NewFile(path, entry.Mode, blob)
	content, err := file.Contents()
	require.NoError(f.t, err)
	return content, true
}

func numbered(n int, replace map[int]string) string {
	var b strings.Builder
	for i := 1; i <= n; i++ {
		if line, ok := replace[i]; ok {
			b.WriteString(line + "\n")
			continue
		}
		fmt.Fprintf(&b, "line %d\n", i)
	}
	return b.String()
}
