package staging

import "github.com/thiagokokada/gitlanes/internal/schema"

func init() {
	schema.Register(schema.LabelLineRange, LineRange{})
}
