package graph

import "strings"

// Category is the kind of branch, derived from its name. Lower values win when
// branches compete for the same commit.
type Category uint8

const (
	CategoryMain Category = iota
	CategoryDevelop
	CategoryRelease
	CategoryHotfix
	CategoryFeature
	CategoryOther
)

var categoryNames = [...]string{"main", "develop", "release", "hotfix", "feature", "other"}

func (c Category) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return categoryNames[CategoryOther]
}

// Classify maps a branch name to its category, ignoring case.
func Classify(name string) Category {
	lower := strings.ToLower(name)
	switch {
	case lower == "main" || lower == "master":
		return CategoryMain
	case lower == "develop" || lower == "dev":
		return CategoryDevelop
	case strings.HasPrefix(lower, "release/"):
		return CategoryRelease
	case strings.HasPrefix(lower, "hotfix/"):
		return CategoryHotfix
	case strings.HasPrefix(lower, "feature/"):
		return CategoryFeature
	default:
		return CategoryOther
	}
}
