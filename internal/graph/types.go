// Package graph lays out a paginated commit graph: traversal order, branch
// ownership of each commit and the lane it is drawn in.
package graph

import (
	"errors"
	"time"
)

const (
	DefaultLimit = 100
	MaxLimit     = 500

	// OtherBranch owns every commit that no branch walk reached.
	OtherBranch = "other"

	shortIDLen = 7
)

// ErrCommitNotFound is returned by a History when a commit object is missing, as in
// shallow clones. The builder treats such parents as outside the graph.
var ErrCommitNotFound = errors.New("commit not found")

type Commit struct {
	ID        string
	ParentIDs []string
	Author    string
	Message   string
	When      time.Time
}

type Branch struct {
	Name string
	Tip  string
}

// History is the read-only view of a repository the builder needs.
type History interface {
	// Head returns the commit HEAD points to; ok is false on an unborn branch.
	Head() (id string, ok bool, err error)
	// Branches lists local branches.
	Branches() ([]Branch, error)
	Commit(id string) (*Commit, error)
}

type Node struct {
	ID                string   `json:"id"`
	ShortID           string   `json:"short_id"`
	Message           string   `json:"message"`
	Author            string   `json:"author"`
	Timestamp         int64    `json:"timestamp"`
	ParentIDs         []string `json:"parent_ids"`
	BranchRefs        []string `json:"branch_refs"`
	IsHeadAncestor    bool     `json:"is_head_ancestor"`
	IdeologicalBranch string   `json:"ideological_branch"`
	BranchType        string   `json:"branch_type" enum:"main,develop,release,hotfix,feature,other"`
	Column            uint     `json:"column"`
}

// Edge points from a commit to one of its parents.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

type Options struct {
	Limit  uint
	Offset uint

	// DefaultLimit replaces a zero Limit; MaxLimit caps it. Both fall back to the
	// package constants and MaxLimit never exceeds the package MaxLimit.
	DefaultLimit uint
	MaxLimit     uint
}

func (o Options) limit() int {
	maxLimit := o.MaxLimit
	if maxLimit == 0 || maxLimit > MaxLimit {
		maxLimit = MaxLimit
	}
	limit := o.Limit
	if limit == 0 {
		limit = o.DefaultLimit
		if limit == 0 {
			limit = DefaultLimit
		}
	}
	return int(min(limit, maxLimit))
}
