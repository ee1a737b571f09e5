package rendering

import (
	"fmt"
	"strings"
)

// EscapeLaTeX escapes special LaTeX characters in text
// Special characters: \ { } $ & % # ^ _ ~
func EscapeLaTeX(text string) string {
	if text == "" {
		return ""
	}

	var result strings.Builder
	result.Grow(len(text) * 2) // Pre-allocate space for potential escaping

	for _, r := range text {
		switch r {
		case '\\':
			result.WriteString(`\textbackslash{}`)
		case '{':
			result.WriteString(`\{`)
		case '}':
			result.WriteString(`\}`)
		case '$':
			result.WriteString(`\$`)
		case '&':
			result.WriteString(`\&`)
		case '%':
			result.WriteString(`\%`)
		case '#':
			result.WriteString(`\#`)
		case '^':
			result.WriteString(`\textasciicircum{}`)
		case '_':
			result.WriteString(`\_`)
		case '~':
			result.WriteString(`\textasciitilde{}`)
		default:
			result.WriteRune(r)
		}
	}

	return result.String()
}

// EscapeURL prepares a URL for the first argument of \href. Characters that
// cannot appear in a URL are percent-encoded, then % and # are escaped since
// hyperref reads them as TeX specials inside macro arguments.
func EscapeURL(url string) string {
	if url == "" {
		return ""
	}

	var encoded strings.Builder
	encoded.Grow(len(url))
	for _, r := range url {
		switch r {
		case '\\', '{', '}', '^', ' ', '"', '<', '>', '|', '`':
			encoded.WriteString(fmt.Sprintf("%%%02X", r))
		default:
			if r < 0x20 || r == 0x7f {
				encoded.WriteString(fmt.Sprintf("%%%02X", r))
				continue
			}
			encoded.WriteRune(r)
		}
	}

	var result strings.Builder
	for _, r := range encoded.String() {
		switch r {
		case '%', '#':
			result.WriteRune('\\')
		}
		result.WriteRune(r)
	}
	return result.String()
}
