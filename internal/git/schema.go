package git

import "github.com/thiagokokada/gitlanes/internal/schema"

func init() {
	schema.Register(schema.LabelStagingStatus, StagingStatus{})
}
