// Package config defines the configuration for the digest rendering binaries.
// Configuration is loaded once at process start (Lambda cold start or CLI
// startup) and is immutable thereafter.
//
// Values are resolved via a priority chain:
//
//	OS Environment (Highest) -> Dotenv File -> struct defaults (Lowest)
//
// Any invalid value causes startup to fail fast.
package config

import "strings"

// Config is the top-level configuration struct. Sub-components receive only
// the subsets they require.
type Config struct {
	// System Metadata
	Environment string `envconfig:"APP_ENV" default:"local" validate:"required,oneof=local dev staging prod"`
	Service     string `envconfig:"OTEL_SERVICE_NAME" default:"paperboy-digest"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`

	// Domain Configurations
	Server        ServerConfig
	Email         EmailConfig
	Worker        WorkerConfig
	AWS           AWSConfig
	Observability ObservabilityConfig

	// Build Metadata (Injected via ldflags, not Env)
	Build BuildInfo
}

// ServerConfig holds the preview HTTP server settings.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8080" validate:"required,numeric"`
}

// EmailConfig controls how digest emails are rendered.
type EmailConfig struct {
	// InlineCSS is the feature flag for the CSS post-processing step.
	InlineCSS bool `envconfig:"EMAIL_INLINE_CSS" default:"false"`
	// FallbackHTML is served by the safe renderer when rendering fails.
	FallbackHTML string `envconfig:"EMAIL_FALLBACK_HTML" default:"<p>Your digest is ready. Open the app to read it.</p>" validate:"required"`
}

// WorkerConfig tunes the digest worker.
type WorkerConfig struct {
	Concurrency int `envconfig:"RENDER_CONCURRENCY" default:"4" validate:"min=1,max=64"`
	// CompressThreshold is the HTML size in bytes above which published
	// payloads are zstd-compressed. Zero disables compression.
	CompressThreshold int `envconfig:"PAYLOAD_COMPRESS_THRESHOLD" default:"262144" validate:"gte=0"`
}

// AWSConfig holds AWS resource identifiers and regional configuration.
type AWSConfig struct {
	Region string `envconfig:"AWS_REGION" default:"us-east-1"`

	// RenderedDigestQueue receives RenderedDigest messages. Optional for
	// local runs, required by the deployed worker.
	RenderedDigestQueue string `envconfig:"SQS_RENDERED_DIGESTS" validate:"omitempty,url"`

	// LocalStack Support (Empty in Prod)
	EndpointURL string `envconfig:"AWS_ENDPOINT_URL" validate:"omitempty,url"`
}

// ObservabilityConfig holds telemetry settings.
type ObservabilityConfig struct {
	MetricNamespace string `envconfig:"METRIC_NAMESPACE" default:"Paperboy"`
}

// BuildInfo holds build-time metadata injected via ldflags.
// These values are NOT populated from environment variables.
type BuildInfo struct {
	Version   string
	Commit    string
	BuildTime string
}

// IsLocal reports whether the process runs in local development mode.
func (c *Config) IsLocal() bool {
	return strings.EqualFold(c.Environment, localEnv)
}

// RequireQueue fails with ErrMissingEnv when no rendered-digest queue is
// configured. The worker calls it before wiring its SQS publisher.
func (c *Config) RequireQueue() error {
	if c.AWS.RenderedDigestQueue == "" {
		return &ConfigError{
			Type:    ErrMissingEnv,
			Message: "SQS_RENDERED_DIGESTS is required to publish rendered digests",
		}
	}
	return nil
}

// ConfigErrorType categorizes configuration loading failures to aid debugging.
type ConfigErrorType string

const (
	// ErrMissingEnv indicates a required environment variable was not found.
	ErrMissingEnv ConfigErrorType = "MISSING_ENV"
	// ErrDotenv indicates an explicitly requested dotenv file could not be read.
	ErrDotenv ConfigErrorType = "DOTENV_FAILURE"
	// ErrValidation indicates the configuration failed struct validation rules.
	ErrValidation ConfigErrorType = "VALIDATION_FAILED"
	// ErrParsing indicates a failure when parsing environment variable values
	// into their target types.
	ErrParsing ConfigErrorType = "PARSING_FAILED"
)
