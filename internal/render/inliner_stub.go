//go:build nocssinline

package render

func newCSSInliner() PostProcessor {
	return nil
}
