package render

import (
	"fmt"

	"paperboy/internal/types"
)

// PostProcessor transforms rendered HTML. Implementations must be pure.
type PostProcessor interface {
	Process(html string) (string, error)
}

// PostProcessFunc adapts a function to PostProcessor.
type PostProcessFunc func(html string) (string, error)

// Process calls f(html).
func (f PostProcessFunc) Process(html string) (string, error) {
	return f(html)
}

// NoopPostProcessor returns its input unchanged.
type NoopPostProcessor struct{}

// Process returns html as is.
func (NoopPostProcessor) Process(html string) (string, error) {
	return html, nil
}

// NewCSSInliner returns the CSS inliner linked into this build, or nil when
// the binary was built with the nocssinline tag.
func NewCSSInliner() PostProcessor {
	return newCSSInliner()
}

// applyPostProcess runs p over html and never fails: an unavailable
// processor, an error or a panic are logged and the input is returned as is.
func applyPostProcess(p PostProcessor, html string, logger types.Logger) (out string) {
	if p == nil {
		logger.Warn("css inlining enabled but unavailable, using rendered html",
			"event", types.EventPostProcessDegraded,
			"error", (&PostProcessError{Err: ErrInlinerUnavailable}).Error(),
		)
		return html
	}

	defer func() {
		if rec := recover(); rec != nil {
			logger.Warn("css inlining panicked, using rendered html",
				"event", types.EventPostProcessDegraded,
				"error", (&PostProcessError{Err: fmt.Errorf("panic: %v", rec)}).Error(),
			)
			out = html
		}
	}()

	processed, err := p.Process(html)
	if err != nil {
		logger.Warn("css inlining failed, using rendered html",
			"event", types.EventPostProcessDegraded,
			"error", (&PostProcessError{Err: err}).Error(),
		)
		return html
	}
	return processed
}
