package render

import (
	"bytes"
	"errors"
	"fmt"
	"runtime/debug"

	"paperboy/internal/types"
)

// Template names resolved from the environment.
const (
	DigestTemplate     = "digest.html.tmpl"
	DigestTextTemplate = "digest.txt.tmpl"
)

// RendererConfig holds the parameters needed to construct a Renderer.
type RendererConfig struct {
	// Environment to render with. Nil means the process-wide Default().
	Environment *Environment
	// InlineCSS enables the CSS post-processing step.
	InlineCSS bool
	// PostProcessor overrides the inliner used when InlineCSS is set.
	// Nil selects NewCSSInliner().
	PostProcessor PostProcessor
	Logger        types.Logger
}

// Renderer binds digests to the digest templates.
type Renderer struct {
	env       *Environment
	inlineCSS bool
	post      PostProcessor
	logger    types.Logger
}

// NewRenderer returns a Renderer. It does not touch the environment; the
// default one is created on the first render.
func NewRenderer(cfg RendererConfig) *Renderer {
	logger := cfg.Logger
	if logger == nil {
		logger = types.NopLogger{}
	}

	var post PostProcessor = NoopPostProcessor{}
	if cfg.InlineCSS {
		post = cfg.PostProcessor
		if post == nil {
			post = NewCSSInliner()
		}
	}

	return &Renderer{
		env:       cfg.Environment,
		inlineCSS: cfg.InlineCSS,
		post:      post,
		logger:    logger,
	}
}

// failureKind classifies a render outcome.
type failureKind int

const (
	failureNone failureKind = iota
	failureTemplateNotFound
	failureRender
)

// renderResult is the internal outcome of one pipeline run.
type renderResult struct {
	template string
	output   string
	counts   Counts
	kind     failureKind
	err      error
}

func (r *Renderer) environment() *Environment {
	if r.env != nil {
		return r.env
	}
	return Default()
}

// Render produces the digest email HTML. It fails with *TemplateNotFoundError
// when the digest template is missing and *RenderError for any other failure.
func (r *Renderer) Render(d *types.DigestEmailData) (string, error) {
	res := r.run(DigestTemplate, d, r.inlineCSS)
	if res.kind != failureNone {
		return "", res.err
	}
	return res.output, nil
}

// RenderText produces the plain-text alternative body. Text output is never
// post-processed.
func (r *Renderer) RenderText(d *types.DigestEmailData) (string, error) {
	res := r.run(DigestTextTemplate, d, false)
	if res.kind != failureNone {
		return "", res.err
	}
	return res.output, nil
}

// RenderSafe renders like Render but never fails: on any failure it logs and
// returns fallback verbatim. Panics are recovered as well and logged under a
// separate event so they are not mistaken for bad input.
func (r *Renderer) RenderSafe(d *types.DigestEmailData, fallback string) (html string) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("digest render panicked, using fallback",
				"event", types.EventDigestRenderPanic,
				"template", DigestTemplate,
				"panic", fmt.Sprint(rec),
				"stack", string(debug.Stack()),
			)
			html = fallback
		}
	}()

	res := r.run(DigestTemplate, d, r.inlineCSS)
	switch res.kind {
	case failureNone:
		return res.output
	case failureTemplateNotFound, failureRender:
		r.logger.Error("safe render failed, using fallback",
			"event", types.EventDigestFallback,
			"template", res.template,
			"error", res.err.Error(),
		)
		return fallback
	default:
		return fallback
	}
}

// run executes the pipeline: environment → template → context → execute →
// optional post-processing, then emits one log record for the outcome.
func (r *Renderer) run(name string, d *types.DigestEmailData, postProcess bool) renderResult {
	res := r.execute(name, d, postProcess)

	switch res.kind {
	case failureNone:
		r.logger.Info("rendered digest",
			"event", types.EventDigestRendered,
			"template", res.template,
			"html_length", len(res.output),
			"article_count", res.counts.Articles,
			"highlight_count", res.counts.Highlights,
		)
	case failureTemplateNotFound:
		r.logger.Error("template not found",
			"event", types.EventDigestRenderFailed,
			"template", res.template,
			"template_dir", r.environment().Dir(),
			"error", res.err.Error(),
		)
	default:
		r.logger.Error("failed to render digest",
			"event", types.EventDigestRenderFailed,
			"template", res.template,
			"error", res.err.Error(),
		)
	}
	return res
}

func (r *Renderer) execute(name string, d *types.DigestEmailData, postProcess bool) renderResult {
	res := renderResult{template: name}

	tmpl, err := r.environment().GetTemplate(name)
	if err != nil {
		return res.fail(err)
	}

	if d == nil {
		return res.fail(&RenderError{Template: name, Stage: StageContext, Err: ErrNilDigest})
	}
	ctx, counts := BuildContext(d)
	r.environment().bind(ctx)
	res.counts = counts

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, ctx); err != nil {
		return res.fail(&RenderError{Template: name, Stage: StageExecute, Err: err})
	}

	out := buf.String()
	if postProcess {
		out = applyPostProcess(r.post, out, r.logger)
	}
	res.output = out
	return res
}

func (res renderResult) fail(err error) renderResult {
	res.err = err
	if IsTemplateNotFound(err) {
		res.kind = failureTemplateNotFound
		return res
	}
	res.kind = failureRender
	var re *RenderError
	if !errors.As(err, &re) {
		res.err = &RenderError{Template: res.template, Stage: StageExecute, Err: err}
	}
	return res
}
