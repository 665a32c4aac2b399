package graph

import (
	"cmp"
	"slices"
	"strings"
)

// SortBranches orders branches by category, then name.
func SortBranches(branches []Branch) []Branch {
	ordered := slices.Clone(branches)
	slices.SortStableFunc(ordered, func(a, b Branch) int {
		if c := cmp.Compare(Classify(a.Name), Classify(b.Name)); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
	return ordered
}

// AssignBranches sets IdeologicalBranch and BranchType on every node. Branches walk
// their history in SortBranches order and the first branch to reach a commit owns
// it, so main keeps its whole line even after other branches merge it in.
//
// parents maps commit ids to parent ids and may cover more history than nodes, which
// keeps ownership stable across pages. Walks are then not confined to the window: on a
// later page a commit keeps the owner it has on the first page, even when a window-only
// walk would pick another branch. A nil map confines the walk to the nodes themselves.
func AssignBranches(nodes []Node, branches []Branch, parents map[string][]string) {
	if parents == nil {
		parents = make(map[string][]string, len(nodes))
		for _, n := range nodes {
			parents[n.ID] = n.ParentIDs
		}
	}
	owner := make(map[string]string, len(parents))
	for _, b := range SortBranches(branches) {
		claim(b, parents, owner)
	}
	for i := range nodes {
		name, ok := owner[nodes[i].ID]
		if !ok {
			nodes[i].IdeologicalBranch = OtherBranch
			nodes[i].BranchType = CategoryOther.String()
			continue
		}
		nodes[i].IdeologicalBranch = name
		nodes[i].BranchType = Classify(name).String()
	}
}

// claim walks from the branch tip with an explicit stack, taking every commit not
// already owned. Owned commits are not expanded again.
func claim(b Branch, parents map[string][]string, owner map[string]string) {
	stack := []string{b.Tip}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, taken := owner[id]; taken {
			continue
		}
		ps, known := parents[id]
		if !known {
			continue
		}
		owner[id] = b.Name
		for i := len(ps) - 1; i >= 0; i-- {
			stack = append(stack, ps[i])
		}
	}
}
