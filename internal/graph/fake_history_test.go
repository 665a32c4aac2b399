package graph

import (
	"errors"
	"fmt"
	"time"
)

type fakeHistory struct {
	head     string
	branches []Branch
	commits  map[string]*Commit

	headFunc     func() (string, bool, error)
	branchesFunc func() ([]Branch, error)
}

func newFakeHistory() *fakeHistory {
	return &fakeHistory{commits: make(map[string]*Commit)}
}

var baseTime = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// add records a commit whose time is baseTime plus minute minutes.
func (f *fakeHistory) add(id string, minute int, parents ...string) *fakeHistory {
	f.commits[id] = &Commit{
		ID:        id,
		ParentIDs: parents,
		Author:    "Alice",
		Message:   fmt.Sprintf("commit %s\n\nbody", id),
		When:      baseTime.Add(time.Duration(minute) * time.Minute),
	}
	return f
}

func (f *fakeHistory) branch(name, tip string) *fakeHistory {
	f.branches = append(f.branches, Branch{Name: name, Tip: tip})
	return f
}

func (f *fakeHistory) Head() (string, bool, error) {
	if f.headFunc != nil {
		return f.headFunc()
	}
	return f.head, f.head != "", nil
}

func (f *fakeHistory) Branches() ([]Branch, error) {
	if f.branchesFunc != nil {
		return f.branchesFunc()
	}
	return f.branches, nil
}

func (f *fakeHistory) Commit(id string) (*Commit, error) {
	c, ok := f.commits[id]
	if !ok {
		return nil, fmt.Errorf("lookup %s: %w", id, ErrCommitNotFound)
	}
	return c, nil
}

var errBoom = errors.New("boom")

// linearHistory builds n commits c1 <- c2 <- ... <- cn on main with HEAD at cn.
func linearHistory(n int) *fakeHistory {
	f := newFakeHistory()
	prev := ""
	for i := 1; i <= n; i++ {
		id := fmt.Sprintf("c%04d", i)
		if prev == "" {
			f.add(id, i)
		} else {
			f.add(id, i, prev)
		}
		prev = id
	}
	f.head = prev
	return f.branch("main", prev)
}
