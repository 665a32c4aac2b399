// Package schema exports JSON Schemas of the response types. Packages that own a
// type register it under a label; schemas are generated on first use.
package schema

import (
	"encoding/json"
	"fmt"
	"slices"
	"sync"

	"github.com/swaggest/jsonschema-go"
)

const (
	LabelGraph         = "graph"
	LabelHunks         = "hunks"
	LabelFileDiff      = "file_diff"
	LabelLineRange     = "line_range"
	LabelStagingStatus = "staging_status"
)

var (
	registryMu sync.RWMutex
	registry   = make(map[string]any)

	cacheMu sync.RWMutex
	cache   = make(map[string]string)
)

// Register adds v's type under label, replacing any previous registration.
func Register(label string, v any) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[label] = v

	cacheMu.Lock()
	delete(cache, label)
	cacheMu.Unlock()
}

// Get returns the schema for label.
func Get(label string) (string, error) {
	cacheMu.RLock()
	cached, ok := cache[label]
	cacheMu.RUnlock()
	if ok {
		return cached, nil
	}

	registryMu.RLock()
	v, ok := registry[label]
	registryMu.RUnlock()
	if !ok {
		return "", fmt.Errorf("unknown schema label: %s", label)
	}
	s, err := GenerateJSON(v)
	if err != nil {
		return "", fmt.Errorf("generate schema for %s: %w", label, err)
	}

	cacheMu.Lock()
	cache[label] = s
	cacheMu.Unlock()
	return s, nil
}

// Labels returns the registered labels in sorted order.
func Labels() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	labels := make([]string, 0, len(registry))
	for label := range registry {
		labels = append(labels, label)
	}
	slices.Sort(labels)
	return labels
}

// GenerateJSON reflects v into a self-contained schema.
func GenerateJSON(v any) (string, error) {
	r := jsonschema.Reflector{}
	s, err := r.Reflect(v, jsonschema.InlineRefs)
	if err != nil {
		return "", err
	}
	b, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
