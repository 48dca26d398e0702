package types

// Telemetry metric names for CloudWatch.
// All components MUST use these constants.
const (
	// Metric Names
	MetricRenderAttempt = "DigestRenderAttempt"
	MetricRenderLatency = "DigestRenderLatency"
	MetricRenderSize    = "DigestRenderBytes"
	MetricPublishFailed = "DigestPublishFailed"

	// Dimension Keys
	DimResult   = "Result"
	DimTemplate = "Template"

	// Metric Namespace
	MetricNamespace = "Paperboy"
)

// Structured log event names emitted by the render pipeline.
const (
	EventDigestRendered      = "digest_rendered"
	EventDigestRenderFailed  = "digest_render_failed"
	EventDigestRenderPanic   = "digest_render_panic"
	EventDigestFallback      = "digest_render_fallback"
	EventPostProcessDegraded = "digest_postprocess_degraded"
)
