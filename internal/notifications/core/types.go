// Package core provides the delivery-side infrastructure shared by the digest
// binaries: publishing rendered digests to SQS, encoding their payloads and
// recording render metrics in CloudWatch.
package core

import (
	"context"
	"time"

	"paperboy/internal/types"
)

// MetricResult is the Result dimension value of a render attempt.
type MetricResult string

const (
	// MetricSuccess means the template rendered normally.
	MetricSuccess MetricResult = "success"
	// MetricFallback means the safe renderer substituted the fallback HTML.
	MetricFallback MetricResult = "fallback"
	// MetricFailed means the message could not be processed at all.
	MetricFailed MetricResult = "failed"
)

// RenderMetrics records render observability data.
type RenderMetrics interface {
	RecordRender(ctx context.Context, template string, result MetricResult)
	RecordLatency(ctx context.Context, template string, d time.Duration)
	RecordSize(ctx context.Context, template string, bytes int)
	RecordPublishFailure(ctx context.Context)
}

// Publisher sends rendered digests downstream.
type Publisher interface {
	Publish(ctx context.Context, msg *types.RenderedDigest) error
}

// NopRenderMetrics discards every metric. Used for local runs.
type NopRenderMetrics struct{}

func (NopRenderMetrics) RecordRender(context.Context, string, MetricResult)   {}
func (NopRenderMetrics) RecordLatency(context.Context, string, time.Duration) {}
func (NopRenderMetrics) RecordSize(context.Context, string, int)              {}
func (NopRenderMetrics) RecordPublishFailure(context.Context)                 {}

var _ RenderMetrics = NopRenderMetrics{}
