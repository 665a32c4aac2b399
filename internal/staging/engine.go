// Package staging rebuilds file content from a subset of a diff's changes.
//
// The base content is always the old side of the diff: the index when staging
// (index -> worktree diff) and HEAD when unstaging (HEAD -> index diff). Lines keep
// their terminators, so selecting every change reproduces the new side byte for byte
// and selecting none reproduces the base.
package staging

import (
	"strings"

	"github.com/thiagokokada/gitlanes/internal/diff"
)

type Direction uint8

const (
	Stage Direction = iota
	Unstage
)

func (d Direction) String() string {
	if d == Unstage {
		return "unstage"
	}
	return "stage"
}

// LineRange is a 1-based, inclusive range of line numbers.
type LineRange struct {
	Start uint `json:"start" minimum:"1"`
	End   uint `json:"end" minimum:"1"`
}

func (r LineRange) Valid() bool {
	return r.Start >= 1 && r.End >= r.Start
}

func (r LineRange) Contains(n uint) bool {
	return n >= r.Start && n <= r.End
}

type lineSelection []LineRange

func (s lineSelection) has(n *uint) bool {
	if n == nil {
		return false
	}
	for _, r := range s {
		if r.Contains(*n) {
			return true
		}
	}
	return false
}

// ValidateRanges checks every range before anything else is looked at.
func ValidateRanges(ranges []LineRange) error {
	for _, r := range ranges {
		if !r.Valid() {
			return &InvalidLineRangeError{Start: r.Start, End: r.End}
		}
	}
	return nil
}

// ValidateHunks rejects binary patches and out of range hunk indices.
func ValidateHunks(patch diff.FilePatch, indices ...uint) error {
	if patch.IsBinary {
		return ErrBinaryNotSupported
	}
	for _, idx := range indices {
		if int(idx) >= len(patch.Hunks) {
			return &HunkIndexOutOfRangeError{Index: idx, Count: len(patch.Hunks)}
		}
	}
	return nil
}

// SelectsAll reports whether indices name every hunk of patch.
func SelectsAll(patch diff.FilePatch, indices []uint) bool {
	if len(patch.Hunks) == 0 {
		return false
	}
	set := indexSet(indices)
	for _, h := range patch.Hunks {
		if _, ok := set[h.Index]; !ok {
			return false
		}
	}
	return true
}

// ApplyHunks returns base with the selected hunks moved to their other side. Staging
// takes the new side of a selected hunk; unstaging reverts it to the old side while
// unselected hunks keep what is currently staged.
func ApplyHunks(base string, patch diff.FilePatch, indices []uint, dir Direction) (string, error) {
	if err := ValidateHunks(patch, indices...); err != nil {
		return "", err
	}
	set := indexSet(indices)
	return reconstruct(base, patch.Hunks, func(h diff.DetailedHunk, line diff.Line) bool {
		_, selected := set[h.Index]
		return keepSide(line, selected != (dir == Unstage))
	}), nil
}

// ApplyLines is the line-level refinement of ApplyHunks for a single hunk. Additions
// are matched on their new line number and deletions on their old one.
func ApplyLines(base string, patch diff.FilePatch, hunkIndex uint, ranges []LineRange, dir Direction) (string, error) {
	if err := ValidateRanges(ranges); err != nil {
		return "", err
	}
	if err := ValidateHunks(patch, hunkIndex); err != nil {
		return "", err
	}
	selection := lineSelection(ranges)
	unstage := dir == Unstage
	return reconstruct(base, patch.Hunks, func(h diff.DetailedHunk, line diff.Line) bool {
		if h.Index != hunkIndex {
			return keepSide(line, unstage)
		}
		if line.Origin == diff.Addition {
			return selection.has(line.NewLineNo) != unstage
		}
		return selection.has(line.OldLineNo) == unstage
	}), nil
}

// keepSide keeps additions when the new side is wanted and deletions otherwise.
func keepSide(line diff.Line, newSide bool) bool {
	if line.Origin == diff.Addition {
		return newSide
	}
	return !newSide
}

func indexSet(indices []uint) map[uint]struct{} {
	set := make(map[uint]struct{}, len(indices))
	for _, idx := range indices {
		set[idx] = struct{}{}
	}
	return set
}

// reconstruct walks base and the hunks together. keep is consulted for additions and
// deletions only; context is always copied.
func reconstruct(base string, hunks []diff.DetailedHunk, keep func(diff.DetailedHunk, diff.Line) bool) string {
	baseLines := diff.SplitLines(base)
	var out contentBuilder
	cursor := 0
	for _, h := range hunks {
		for start := h.BaseOffset(); cursor < start && cursor < len(baseLines); cursor++ {
			out.write(baseLines[cursor])
		}
		for _, line := range h.Lines {
			switch line.Origin {
			case diff.Context:
				out.write(line.Content)
				cursor++
			case diff.Deletion:
				if keep(h, line) {
					out.write(line.Content)
				}
				cursor++
			case diff.Addition:
				if keep(h, line) {
					out.write(line.Content)
				}
			}
		}
	}
	for ; cursor < len(baseLines); cursor++ {
		out.write(baseLines[cursor])
	}
	return out.String()
}

// contentBuilder joins lines, inserting a newline after an unterminated line when
// another line follows it.
type contentBuilder struct {
	b    strings.Builder
	open bool
}

func (c *contentBuilder) write(line string) {
	if c.open {
		c.b.WriteByte('\n')
	}
	c.b.WriteString(line)
	c.open = !strings.HasSuffix(line, "\n")
}

func (c *contentBuilder) String() string {
	return c.b.String()
}
