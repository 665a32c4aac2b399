package graph

// AllocateLanes assigns columns in node order. HEAD ancestors sit in column 0 and
// every other ideological branch gets its own column the first time it shows up.
func AllocateLanes(nodes []Node) {
	lanes := make(map[string]uint)
	next := uint(1)
	for i := range nodes {
		n := &nodes[i]
		if n.IsHeadAncestor {
			n.Column = 0
			continue
		}
		col, ok := lanes[n.IdeologicalBranch]
		if !ok {
			col = next
			lanes[n.IdeologicalBranch] = col
			next++
		}
		n.Column = col
	}
}
