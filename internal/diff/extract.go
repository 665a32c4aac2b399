package diff

// Extract flattens file patches into hunk summaries and, when includeLines is set,
// detailed hunks. Indices are reassigned in emission order across all patches. A
// binary patch sets isBinary; any hunks already discovered are still returned.
func Extract(patches []FilePatch, includeLines bool) (hunks []Hunk, detailed []DetailedHunk, isBinary bool) {
	hunks = []Hunk{}
	detailed = []DetailedHunk{}
	for _, patch := range patches {
		if patch.IsBinary {
			isBinary = true
		}
		for _, h := range patch.Hunks {
			hunks = append(hunks, h.Hunk)
			if !includeLines {
				continue
			}
			h.Index = uint(len(detailed))
			detailed = append(detailed, h)
		}
	}
	return hunks, detailed, isBinary
}
