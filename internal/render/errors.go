// Package render turns a DigestEmailData into the finished digest email.
//
// The pipeline is: lazily created template Environment (embedded loader,
// escaping and whitespace policy, theme global) → per-call context built from
// the digest → template execution → optional CSS inlining. Render returns the
// declared failures to the caller; RenderSafe never fails and substitutes the
// caller's fallback instead.
package render

import (
	"errors"
	"fmt"

	"paperboy/internal/types"
)

// ErrNilDigest is returned when Render is called without a digest.
var ErrNilDigest = errors.New("digest is nil")

// ErrInlinerUnavailable is reported when CSS inlining is enabled but the
// binary was built without an inliner.
var ErrInlinerUnavailable = errors.New("css inliner not available in this build")

// Render stages reported by RenderError.
const (
	StageLoad    = "load"
	StageParse   = "parse"
	StageContext = "context"
	StageExecute = "execute"
)

// TemplateNotFoundError means the named template resource does not exist in
// the environment's template directory.
type TemplateNotFoundError struct {
	Name string
	Dir  string
	Err  error
}

func (e *TemplateNotFoundError) Error() string {
	return fmt.Sprintf("renderer: template %q not found in %s", e.Name, e.Dir)
}

func (e *TemplateNotFoundError) Unwrap() error { return e.Err }

// AppError converts the error for transport boundaries.
func (e *TemplateNotFoundError) AppError() *types.AppError {
	return types.NewAppErrorWithDetails(types.ErrCodeNotFoundTemplate, "email template not found", e,
		map[string]any{"template": e.Name})
}

// RenderError wraps any failure while loading, parsing or executing a template.
type RenderError struct {
	Template string
	Stage    string
	Err      error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("renderer: %s %q: %v", e.Stage, e.Template, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// AppError converts the error for transport boundaries.
func (e *RenderError) AppError() *types.AppError {
	code := types.ErrCodeRenderFailed
	msg := "failed to render email template"
	if errors.Is(e.Err, ErrNilDigest) {
		code = types.ErrCodeValidationDigest
		msg = "digest is required"
	}
	return types.NewAppErrorWithDetails(code, msg, e,
		map[string]any{"template": e.Template, "stage": e.Stage})
}

// PostProcessError describes a CSS inlining failure. It is only ever logged;
// the renderer falls back to the un-inlined HTML.
type PostProcessError struct {
	Err error
}

func (e *PostProcessError) Error() string {
	return fmt.Sprintf("renderer: css post-processing: %v", e.Err)
}

func (e *PostProcessError) Unwrap() error { return e.Err }

// IsTemplateNotFound reports whether err is, or wraps, a TemplateNotFoundError.
func IsTemplateNotFound(err error) bool {
	var target *TemplateNotFoundError
	return errors.As(err, &target)
}

// IsRenderError reports whether err is, or wraps, a RenderError.
func IsRenderError(err error) bool {
	var target *RenderError
	return errors.As(err, &target)
}

// ToAppError maps render failures to an AppError. Unknown errors become
// internal_unexpected_error.
func ToAppError(err error) *types.AppError {
	var nf *TemplateNotFoundError
	if errors.As(err, &nf) {
		return nf.AppError()
	}
	var re *RenderError
	if errors.As(err, &re) {
		return re.AppError()
	}
	var appErr *types.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return types.NewAppError(types.ErrCodeInternalUnexpected, "an unexpected error occurred", err)
}
