package diff

// Origin tags a diff line with the side it belongs to.
type Origin string

const (
	Context  Origin = "context"
	Addition Origin = "addition"
	Deletion Origin = "deletion"
)

// Line is a single line of a hunk. Content keeps its line terminator, if any.
type Line struct {
	Origin    Origin `json:"origin" enum:"context,addition,deletion"`
	OldLineNo *uint  `json:"old_line_no,omitempty"`
	NewLineNo *uint  `json:"new_line_no,omitempty"`
	Content   string `json:"content"`
}

// Hunk describes the line ranges of a contiguous change.
type Hunk struct {
	OldStart     uint   `json:"old_start"`
	OldLineCount uint   `json:"old_line_count"`
	NewStart     uint   `json:"new_start"`
	NewLineCount uint   `json:"new_line_count"`
	Header       string `json:"header"`
}

// BaseOffset returns the 0-based position in the old side where the hunk starts.
func (h Hunk) BaseOffset() int {
	if h.OldLineCount == 0 {
		return int(h.OldStart)
	}
	return int(h.OldStart) - 1
}

type DetailedHunk struct {
	Hunk
	Index uint   `json:"index"`
	Lines []Line `json:"lines"`
}

// FilePatch is the structural diff of one file.
type FilePatch struct {
	Path     string
	IsBinary bool
	Hunks    []DetailedHunk
}

// FileDiff is the plain, non-interactive view of a file change.
type FileDiff struct {
	Path       string `json:"path"`
	OldContent string `json:"old_content"`
	NewContent string `json:"new_content"`
	Hunks      []Hunk `json:"hunks"`
	IsBinary   bool   `json:"is_binary"`
	Language   string `json:"language"`
}

func lineNo(n int) *uint {
	v := uint(n)
	return &v
}
