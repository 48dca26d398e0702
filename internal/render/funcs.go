package render

import (
	"fmt"
	htmltemplate "html/template"
	"strings"

	"paperboy/internal/theme"
)

// defaultFuncs returns the helpers available to every template.
//
// token marks a theme value as trusted CSS. Font stacks contain quotes, which
// html/template would otherwise replace with ZgotmplZ in style contexts. Only
// names from the token store can be marked, never digest data.
func defaultFuncs(tokens *theme.Tokens) map[string]any {
	flat := tokens.Flatten()

	return map[string]any{
		"token": func(name string) (htmltemplate.CSS, error) {
			v, ok := flat[name]
			if !ok {
				return "", fmt.Errorf("unknown theme token %q", name)
			}
			return htmltemplate.CSS(v), nil
		},
		"importanceColor": func(label string) htmltemplate.CSS {
			return htmltemplate.CSS(importanceColor(flat, label))
		},
		"upper": strings.ToUpper,
		"lower": strings.ToLower,
		"plural": func(n int, singular, plural string) string {
			if n == 1 {
				return singular
			}
			return plural
		},
	}
}

// importanceColor picks the badge accent for an importance label.
func importanceColor(flat map[string]string, label string) string {
	switch strings.ToUpper(strings.TrimSpace(label)) {
	case "CRITICAL":
		return flat["colors.newsprint_red"]
	case "IMPORTANT":
		return flat["colors.newsprint"]
	default:
		return flat["colors.muted_text"]
	}
}
