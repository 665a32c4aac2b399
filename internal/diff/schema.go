package diff

import "github.com/thiagokokada/gitlanes/internal/schema"

func init() {
	schema.Register(schema.LabelHunks, []DetailedHunk{})
	schema.Register(schema.LabelFileDiff, FileDiff{})
}
