package diff

import (
	"fmt"
	"slices"
	"strings"
	"testing"
)

func numberedLines(n int) []string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d\n", i+1)
	}
	return lines
}

func TestSplitLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"a", []string{"a"}},
		{"a\n", []string{"a\n"}},
		{"a\nb", []string{"a\n", "b"}},
		{"a\n\nb\n", []string{"a\n", "\n", "b\n"}},
	}
	for _, tt := range tests {
		if got := SplitLines(tt.in); !slices.Equal(got, tt.want) {
			t.Fatalf("SplitLines(%q) = %#v, want %#v", tt.in, got, tt.want)
		}
	}
}

func TestCompute_IdenticalHasNoHunks(t *testing.T) {
	t.Parallel()

	patch := Compute("a.txt", "same\n", "same\n", false, DefaultContextLines)
	if len(patch.Hunks) != 0 {
		t.Fatalf("hunks = %d, want 0", len(patch.Hunks))
	}
}

func TestCompute_SingleChangeWithContext(t *testing.T) {
	t.Parallel()

	old := numberedLines(10)
	updated := slices.Clone(old)
	updated[4] = "changed\n"

	patch := Compute("a.txt", strings.Join(old, ""), strings.Join(updated, ""), false, DefaultContextLines)
	if len(patch.Hunks) != 1 {
		t.Fatalf("hunks = %d, want 1", len(patch.Hunks))
	}
	h := patch.Hunks[0]
	if h.Header != "@@ -2,7 +2,7 @@" {
		t.Fatalf("header = %q, want %q", h.Header, "@@ -2,7 +2,7 @@")
	}
	if h.BaseOffset() != 1 {
		t.Fatalf("BaseOffset() = %d, want 1", h.BaseOffset())
	}
	var origins []Origin
	for _, line := range h.Lines {
		origins = append(origins, line.Origin)
	}
	want := []Origin{Context, Context, Context, Deletion, Addition, Context, Context, Context}
	if !slices.Equal(origins, want) {
		t.Fatalf("origins = %v, want %v", origins, want)
	}
	del, add := h.Lines[3], h.Lines[4]
	if del.OldLineNo == nil || *del.OldLineNo != 5 || del.NewLineNo != nil {
		t.Fatalf("deletion line numbers = %v/%v, want 5/nil", del.OldLineNo, del.NewLineNo)
	}
	if add.NewLineNo == nil || *add.NewLineNo != 5 || add.OldLineNo != nil {
		t.Fatalf("addition line numbers = %v/%v, want nil/5", add.OldLineNo, add.NewLineNo)
	}
	if add.Content != "changed\n" {
		t.Fatalf("addition content = %q, want %q", add.Content, "changed\n")
	}
}

func TestCompute_DistantChangesSplitIntoHunks(t *testing.T) {
	t.Parallel()

	old := numberedLines(30)
	updated := slices.Clone(old)
	updated[1] = "first\n"
	updated[25] = "second\n"

	patch := Compute("a.txt", strings.Join(old, ""), strings.Join(updated, ""), false, DefaultContextLines)
	if len(patch.Hunks) != 2 {
		t.Fatalf("hunks = %d, want 2", len(patch.Hunks))
	}
	for i, h := range patch.Hunks {
		if h.Index != uint(i) {
			t.Fatalf("hunk %d index = %d", i, h.Index)
		}
	}
	if got := patch.Hunks[0].Header; got != "@@ -1,5 +1,5 @@" {
		t.Fatalf("first header = %q", got)
	}
	if got := patch.Hunks[1].Header; got != "@@ -23,7 +23,7 @@" {
		t.Fatalf("second header = %q", got)
	}
}

func TestCompute_InsertIntoEmpty(t *testing.T) {
	t.Parallel()

	patch := Compute("new.txt", "", "hello\n", false, DefaultContextLines)
	if len(patch.Hunks) != 1 {
		t.Fatalf("hunks = %d, want 1", len(patch.Hunks))
	}
	h := patch.Hunks[0]
	if h.Header != "@@ -0,0 +1 @@" {
		t.Fatalf("header = %q, want %q", h.Header, "@@ -0,0 +1 @@")
	}
	if h.BaseOffset() != 0 {
		t.Fatalf("BaseOffset() = %d, want 0", h.BaseOffset())
	}
}

func TestCompute_MissingTrailingNewline(t *testing.T) {
	t.Parallel()

	patch := Compute("a.txt", "a\nb", "a\nb\n", false, DefaultContextLines)
	if len(patch.Hunks) != 1 {
		t.Fatalf("hunks = %d, want 1", len(patch.Hunks))
	}
	lines := patch.Hunks[0].Lines
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want 3", len(lines))
	}
	if lines[1].Origin != Deletion || lines[1].Content != "b" {
		t.Fatalf("deletion = %+v", lines[1])
	}
	if lines[2].Origin != Addition || lines[2].Content != "b\n" {
		t.Fatalf("addition = %+v", lines[2])
	}
}

func TestCompute_BinaryHasNoHunks(t *testing.T) {
	t.Parallel()

	patch := Compute("img.png", "a", "b", true, DefaultContextLines)
	if !patch.IsBinary || len(patch.Hunks) != 0 {
		t.Fatalf("patch = %+v, want binary without hunks", patch)
	}
}
