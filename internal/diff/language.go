package diff

import (
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
)

const PlainText = "plaintext"

// Language guesses the language id of path from its file name.
func Language(path string) string {
	if path == "" {
		return PlainText
	}
	lexer := lexers.Match(path)
	if lexer == nil {
		return PlainText
	}
	cfg := lexer.Config()
	if strings.EqualFold(cfg.Name, PlainText) {
		return PlainText
	}
	if len(cfg.Aliases) > 0 {
		return cfg.Aliases[0]
	}
	return strings.ToLower(cfg.Name)
}
