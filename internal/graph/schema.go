package graph

import "github.com/thiagokokada/gitlanes/internal/schema"

func init() {
	schema.Register(schema.LabelGraph, Graph{})
}
