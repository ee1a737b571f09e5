package rendering

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeLaTeX(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"plain", "Built a REST API", "Built a REST API"},
		{"backslash", `C:\dev`, `C:\textbackslash{}dev`},
		{"braces", "map{k}", `map\{k\}`},
		{"dollar", "$1M ARR", `\$1M ARR`},
		{"ampersand", "R&D", `R\&D`},
		{"percent", "99.9% uptime", `99.9\% uptime`},
		{"hash", "C#", `C\#`},
		{"caret", "x^2", `x\textasciicircum{}2`},
		{"underscore", "snake_case", `snake\_case`},
		{"tilde", "~50 users", `\textasciitilde{}50 users`},
		{"all", `${}~&%#^_\`, `\$\{\}\textasciitilde{}\&\%\#\textasciicircum{}\_\textbackslash{}`},
		{"unicode", "résumé α β", "résumé α β"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EscapeLaTeX(tt.input))
		})
	}
}

func TestEscapeURL(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"plain", "https://example.com/cert", "https://example.com/cert"},
		{"fragment", "https://example.com/a#b", `https://example.com/a\#b`},
		{"existing escape", "https://example.com/a%20b", `https://example.com/a\%20b`},
		{"space", "https://example.com/a b", `https://example.com/a\%20b`},
		{"braces", "https://example.com/{id}", `https://example.com/\%7Bid\%7D`},
		{"backslash", `https://example.com/a\b`, `https://example.com/a\%5Cb`},
		{"query", "https://example.com/?a=1&b=2", "https://example.com/?a=1&b=2"},
		{"mailto", "jane_doe@example.com", "jane_doe@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EscapeURL(tt.input))
		})
	}
}
