//go:build !nocssinline

package render

import "github.com/aymerick/douceur/inliner"

// CSSInliner moves <style> rules into per-element style attributes so the
// styling survives clients that strip <style> blocks.
type CSSInliner struct{}

// Process inlines the stylesheet rules found in html.
func (CSSInliner) Process(html string) (string, error) {
	return inliner.Inline(html)
}

func newCSSInliner() PostProcessor {
	return CSSInliner{}
}
