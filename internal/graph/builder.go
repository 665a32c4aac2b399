package graph

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/emirpasic/gods/trees/binaryheap"
	"github.com/emirpasic/gods/utils"
)

// Build lays out one page of the history reachable from HEAD and every local branch.
//
// Commits are ordered topologically (children before parents) and, among the commits
// ready to be emitted, newest committer time first with ties broken by id. The first
// opts.Offset commits of that order are skipped. Branch ownership and lanes are
// computed over the emitted page.
func Build(h History, opts Options) (Graph, error) {
	g := Graph{Nodes: []Node{}, Edges: []Edge{}}
	branches, err := h.Branches()
	if err != nil {
		return g, fmt.Errorf("list branches: %w", err)
	}
	headID, hasHead, err := h.Head()
	if err != nil {
		return g, fmt.Errorf("resolve HEAD: %w", err)
	}

	tips := make(map[string][]string, len(branches))
	seeds := make([]string, 0, len(branches)+1)
	if hasHead {
		seeds = append(seeds, headID)
	}
	for _, b := range branches {
		tips[b.Tip] = append(tips[b.Tip], b.Name)
		seeds = append(seeds, b.Tip)
	}
	for _, names := range tips {
		slices.Sort(names)
	}

	commits, err := loadHistory(h, seeds)
	if err != nil {
		return g, err
	}
	var headAncestors map[string]struct{}
	if hasHead {
		headAncestors = firstParentChain(commits, headID)
	}

	limit := opts.limit()
	page := topoOrder(commits, opts.Offset, limit)
	slog.Debug("graph page built",
		slog.Int("commits", len(commits)),
		slog.Uint64("offset", uint64(opts.Offset)),
		slog.Int("limit", limit),
		slog.Int("returned", len(page)),
	)

	for _, c := range page {
		_, ancestor := headAncestors[c.ID]
		g.Nodes = append(g.Nodes, Node{
			ID:             c.ID,
			ShortID:        shortID(c.ID),
			Message:        summary(c.Message),
			Author:         c.Author,
			Timestamp:      c.When.Unix(),
			ParentIDs:      nonNil(c.ParentIDs),
			BranchRefs:     nonNil(tips[c.ID]),
			IsHeadAncestor: ancestor,
		})
		for _, parent := range c.ParentIDs {
			g.Edges = append(g.Edges, Edge{From: c.ID, To: parent})
		}
	}

	parents := make(map[string][]string, len(commits))
	for id, c := range commits {
		parents[id] = c.ParentIDs
	}
	AssignBranches(g.Nodes, branches, parents)
	AllocateLanes(g.Nodes)
	return g, nil
}

// loadHistory reads every commit reachable from seeds. Missing objects are skipped.
func loadHistory(h History, seeds []string) (map[string]*Commit, error) {
	commits := make(map[string]*Commit)
	stack := slices.Clone(seeds)
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, seen := commits[id]; seen {
			continue
		}
		c, err := h.Commit(id)
		if errors.Is(err, ErrCommitNotFound) {
			slog.Debug("graph skipping missing commit", slog.String("id", id))
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read commit %s: %w", shortID(id), err)
		}
		commits[id] = c
		for _, parent := range c.ParentIDs {
			if _, seen := commits[parent]; !seen {
				stack = append(stack, parent)
			}
		}
	}
	return commits, nil
}

func firstParentChain(commits map[string]*Commit, head string) map[string]struct{} {
	chain := make(map[string]struct{})
	for id := head; id != ""; {
		c, ok := commits[id]
		if !ok {
			break
		}
		if _, seen := chain[id]; seen {
			break
		}
		chain[id] = struct{}{}
		id = ""
		if len(c.ParentIDs) > 0 {
			id = c.ParentIDs[0]
		}
	}
	return chain
}

// topoOrder runs Kahn's algorithm over commits, releasing a commit once every loaded
// child has been emitted. It stops after offset+limit commits.
func topoOrder(commits map[string]*Commit, offset uint, limit int) []*Commit {
	if limit <= 0 || offset >= uint(len(commits)) {
		return nil
	}
	skip := int(offset)
	pending := make(map[string]int, len(commits))
	for _, c := range commits {
		for _, parent := range c.ParentIDs {
			if _, ok := commits[parent]; ok {
				pending[parent]++
			}
		}
	}
	ready := binaryheap.NewWith(newestFirst(commits))
	for id := range commits {
		if pending[id] == 0 {
			ready.Push(id)
		}
	}

	page := make([]*Commit, 0, min(limit, len(commits)-skip))
	emitted := 0
	for len(page) < limit {
		v, ok := ready.Pop()
		if !ok {
			break
		}
		c := commits[v.(string)]
		emitted++
		if emitted > skip {
			page = append(page, c)
		}
		for _, parent := range c.ParentIDs {
			if _, ok := commits[parent]; !ok {
				continue
			}
			pending[parent]--
			if pending[parent] == 0 {
				ready.Push(parent)
			}
		}
	}
	return page
}

func newestFirst(commits map[string]*Commit) utils.Comparator {
	return func(a, b any) int {
		ca, cb := commits[a.(string)], commits[b.(string)]
		switch {
		case ca.When.After(cb.When):
			return -1
		case cb.When.After(ca.When):
			return 1
		}
		return strings.Compare(ca.ID, cb.ID)
	}
}

func shortID(id string) string {
	if len(id) <= shortIDLen {
		return id
	}
	return id[:shortIDLen]
}

func summary(message string) string {
	return strings.SplitN(strings.TrimSpace(message), "\n", 2)[0]
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
