package diff

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// DefaultContextLines matches git's default of three unchanged lines around a change.
const DefaultContextLines = 3

// SplitLines splits content into lines that keep their "\n" terminator. Unlike
// difflib.SplitLines it never invents a terminator for the last line.
func SplitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.SplitAfter(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// Compute diffs two versions of path. Binary patches carry no hunks.
func Compute(path, oldContent, newContent string, binary bool, contextLines int) FilePatch {
	patch := FilePatch{Path: path, IsBinary: binary}
	if binary || oldContent == newContent {
		return patch
	}
	if contextLines < 0 {
		contextLines = DefaultContextLines
	}
	a := SplitLines(oldContent)
	b := SplitLines(newContent)
	matcher := difflib.NewMatcher(a, b)
	for _, group := range matcher.GetGroupedOpCodes(contextLines) {
		patch.Hunks = append(patch.Hunks, buildHunk(a, b, group, uint(len(patch.Hunks))))
	}
	return patch
}

func buildHunk(a, b []string, group []difflib.OpCode, index uint) DetailedHunk {
	first, last := group[0], group[len(group)-1]
	oldCount := last.I2 - first.I1
	newCount := last.J2 - first.J1
	h := DetailedHunk{
		Hunk: Hunk{
			OldStart:     hunkStart(first.I1, oldCount),
			OldLineCount: uint(oldCount),
			NewStart:     hunkStart(first.J1, newCount),
			NewLineCount: uint(newCount),
		},
		Index: index,
	}
	h.Header = fmt.Sprintf("@@ -%s +%s @@", formatRange(h.OldStart, h.OldLineCount), formatRange(h.NewStart, h.NewLineCount))
	for _, op := range group {
		switch op.Tag {
		case 'e':
			for i, j := op.I1, op.J1; i < op.I2; i, j = i+1, j+1 {
				h.Lines = append(h.Lines, Line{Origin: Context, OldLineNo: lineNo(i + 1), NewLineNo: lineNo(j + 1), Content: a[i]})
			}
		case 'r', 'd', 'i':
			for i := op.I1; i < op.I2; i++ {
				h.Lines = append(h.Lines, Line{Origin: Deletion, OldLineNo: lineNo(i + 1), Content: a[i]})
			}
			for j := op.J1; j < op.J2; j++ {
				h.Lines = append(h.Lines, Line{Origin: Addition, NewLineNo: lineNo(j + 1), Content: b[j]})
			}
		}
	}
	return h
}

// hunkStart converts a 0-based offset to the 1-based unified start. An empty range
// points at the line before it, as git does.
func hunkStart(offset, count int) uint {
	if count == 0 {
		return uint(offset)
	}
	return uint(offset + 1)
}

func formatRange(start, count uint) string {
	if count == 1 {
		return fmt.Sprintf("%d", start)
	}
	return fmt.Sprintf("%d,%d", start, count)
}
