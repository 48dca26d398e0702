// Package main is the entrypoint for the Digest Worker Lambda function.
//
// The Digest Worker consumes DigestRenderRequest messages from SQS, renders
// each digest into its email HTML (and plain-text alternative) and publishes
// a RenderedDigest for the delivery stage. Rendering goes through the safe
// renderer, so a broken template degrades to the fallback HTML instead of
// blocking the queue.
//
// Cold Start (main):
//  1. Load configuration (envconfig + .env).
//  2. Initialize structured logger.
//  3. Load AWS SDK configuration, SQS and CloudWatch clients.
//  4. Initialize the renderer, publisher and metrics.
//  5. Register handler and call lambda.Start (or read stdin when local).
//
// Handler flow, per SQS record:
//  1. Unmarshal and validate the DigestRenderRequest (permanent failures ACK).
//  2. RenderSafe the digest, RenderText the plain-text body.
//  3. Encode the HTML (zstd above the threshold) and hash it.
//  4. Publish the RenderedDigest; publish failures are retried by SQS.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"paperboy/internal/config"
	"paperboy/internal/digest"
	"paperboy/internal/notifications/core"
	"paperboy/internal/render"
	"paperboy/internal/types"
)

// slogAdapter wraps *slog.Logger to implement the types.Logger interface.
// slog.Logger satisfies Info, Error and Warn, but its With returns
// *slog.Logger rather than types.Logger, so an adapter is necessary.
type slogAdapter struct {
	logger *slog.Logger
}

func (a *slogAdapter) Info(msg string, args ...any)  { a.logger.Info(msg, args...) }
func (a *slogAdapter) Error(msg string, args ...any) { a.logger.Error(msg, args...) }
func (a *slogAdapter) Warn(msg string, args ...any)  { a.logger.Warn(msg, args...) }
func (a *slogAdapter) With(args ...any) types.Logger {
	return &slogAdapter{logger: a.logger.With(args...)}
}

// digestRenderer is the subset of *render.Renderer the worker needs.
type digestRenderer interface {
	RenderSafe(d *types.DigestEmailData, fallback string) string
	RenderText(d *types.DigestEmailData) (string, error)
}

// Handler holds the dependencies for the digest worker Lambda handler.
type Handler struct {
	renderer          digestRenderer
	publisher         core.Publisher
	metrics           core.RenderMetrics
	fallbackHTML      string
	compressThreshold int
	concurrency       int
	newID             func() string
	logger            types.Logger
}

// Handle processes an SQS event. Records are rendered concurrently, bounded
// by the configured concurrency. Lambda SQS integration uses partial batch
// responses: records that fail are returned in BatchItemFailures, in batch
// order, so SQS retries only those.
func (h *Handler) Handle(ctx context.Context, sqsEvent events.SQSEvent) (events.SQSEventResponse, error) {
	failed := make([]bool, len(sqsEvent.Records))

	var mu sync.Mutex
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(h.concurrency)

	for i, record := range sqsEvent.Records {
		g.Go(func() error {
			if err := h.processMessage(gCtx, record); err != nil {
				h.logger.Error("failed to process SQS message",
					"message_id", record.MessageId,
					"error", err.Error(),
				)
				mu.Lock()
				failed[i] = true
				mu.Unlock()
			}
			// Error isolation: one record never cancels its siblings.
			return nil
		})
	}
	_ = g.Wait()

	response := events.SQSEventResponse{}
	for i, record := range sqsEvent.Records {
		if failed[i] {
			response.BatchItemFailures = append(response.BatchItemFailures,
				events.SQSBatchItemFailure{ItemIdentifier: record.MessageId},
			)
		}
	}
	return response, nil
}

// processMessage renders and publishes one request. A nil return ACKs the
// record; only transient (publish) failures return an error.
func (h *Handler) processMessage(ctx context.Context, record events.SQSMessage) error {
	ctx = types.WithRequestID(ctx, record.MessageId)

	var req types.DigestRenderRequest
	if err := json.Unmarshal([]byte(record.Body), &req); err != nil {
		h.logger.Error("failed to unmarshal digest render request",
			"message_id", record.MessageId,
			"error", err.Error(),
		)
		h.metrics.RecordRender(ctx, render.DigestTemplate, core.MetricFailed)
		// Permanent parse failure - do not retry.
		return nil
	}

	logger := h.logger.With(
		"digest_id", req.DigestID,
		"message_id", record.MessageId,
		"trace_id", req.TraceID,
	)
	ctx = types.WithLogger(ctx, logger)

	if err := digest.ValidateRequest(&req); err != nil {
		logger.Error("invalid digest render request",
			"code", string(types.CodeOf(err)),
			"error", err.Error(),
		)
		h.metrics.RecordRender(ctx, render.DigestTemplate, core.MetricFailed)
		return nil
	}

	fallback := h.fallbackHTML
	if req.FallbackHTML != "" {
		fallback = req.FallbackHTML
	}

	start := time.Now()
	html := h.renderer.RenderSafe(&req.Digest, fallback)
	h.metrics.RecordLatency(ctx, render.DigestTemplate, time.Since(start))
	h.metrics.RecordSize(ctx, render.DigestTemplate, len(html))

	usedFallback := html == fallback
	result := core.MetricSuccess
	var text string
	if usedFallback {
		result = core.MetricFallback
	} else {
		var err error
		text, err = h.renderer.RenderText(&req.Digest)
		if err != nil {
			logger.Warn("plain-text render failed, publishing html only", "error", err.Error())
		}
	}
	h.metrics.RecordRender(ctx, render.DigestTemplate, result)

	body, encoding, err := core.EncodeHTML(html, h.compressThreshold)
	if err != nil {
		logger.Warn("payload compression failed, publishing uncompressed", "error", err.Error())
		body, encoding = html, core.EncodingIdentity
	}

	msg := &types.RenderedDigest{
		RenderID:     h.newID(),
		DigestID:     req.DigestID,
		Recipient:    req.Recipient,
		HTML:         body,
		Text:         text,
		Encoding:     encoding,
		ContentHash:  core.ContentHash(html),
		HTMLLength:   len(html),
		UsedFallback: usedFallback,
		TraceID:      req.TraceID,
	}

	if err := h.publisher.Publish(ctx, msg); err != nil {
		h.metrics.RecordPublishFailure(ctx)
		logger.Warn("publish failed, leaving record for retry",
			"code", string(types.CodeOf(err)),
			"error", err.Error(),
		)
		return fmt.Errorf("publish rendered digest: %w", err)
	}

	logger.Info("digest processed",
		"render_id", msg.RenderID,
		"used_fallback", usedFallback,
		"encoding", encoding,
	)
	return nil
}

// writerPublisher prints rendered digests as JSON lines. Used in local mode
// when no queue is configured.
type writerPublisher struct {
	mu sync.Mutex
	w  io.Writer
}

func (p *writerPublisher) Publish(_ context.Context, msg *types.RenderedDigest) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return json.NewEncoder(p.w).Encode(msg)
}

// parseLevel maps LOG_LEVEL to a slog level, defaulting to info.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger at startup (Cold Start).
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(cfg.LogLevel),
	})).With("service", cfg.Service, "version", cfg.Build.Version)

	logger.Info("Digest Worker Lambda initializing (cold start)")

	typedLogger := &slogAdapter{logger: logger}

	renderer := render.NewRenderer(render.RendererConfig{
		InlineCSS: cfg.Email.InlineCSS,
		Logger:    typedLogger,
	})

	handler := &Handler{
		renderer:          renderer,
		fallbackHTML:      cfg.Email.FallbackHTML,
		compressThreshold: cfg.Worker.CompressThreshold,
		concurrency:       cfg.Worker.Concurrency,
		newID:             uuid.NewString,
		logger:            typedLogger,
	}

	// Local mode without a queue: print rendered digests to stdout.
	if cfg.IsLocal() && cfg.AWS.RenderedDigestQueue == "" {
		handler.publisher = &writerPublisher{w: os.Stdout}
		handler.metrics = core.NopRenderMetrics{}
	} else {
		if err := cfg.RequireQueue(); err != nil {
			logger.Error("Invalid configuration", "error", err)
			os.Exit(1)
		}

		awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
			awsconfig.WithRegion(cfg.AWS.Region),
		)
		if err != nil {
			logger.Error("Failed to load AWS SDK config", "error", err)
			os.Exit(1)
		}

		sqsClient := sqs.NewFromConfig(awsCfg, func(o *sqs.Options) {
			if cfg.AWS.EndpointURL != "" {
				o.BaseEndpoint = aws.String(cfg.AWS.EndpointURL)
			}
		})
		cwClient := cloudwatch.NewFromConfig(awsCfg, func(o *cloudwatch.Options) {
			if cfg.AWS.EndpointURL != "" {
				o.BaseEndpoint = aws.String(cfg.AWS.EndpointURL)
			}
		})

		handler.publisher = core.NewDigestPublisher(sqsClient, cfg.AWS.RenderedDigestQueue,
			core.DefaultBreakerSettings(), typedLogger)
		handler.metrics = core.NewCloudWatchRenderMetrics(cwClient,
			cfg.Observability.MetricNamespace, typedLogger)
	}

	logger.Info("Digest Worker Lambda initialized",
		"rendered_digest_queue", cfg.AWS.RenderedDigestQueue,
		"metric_namespace", cfg.Observability.MetricNamespace,
		"inline_css", cfg.Email.InlineCSS,
		"concurrency", cfg.Worker.Concurrency,
		"template_dir", render.TemplateDirectory(),
	)

	// Local mode: read JSON SQS event from stdin instead of starting Lambda runtime.
	// Usage: echo '{"Records":[{"messageId":"1","body":"{...}"}]}' | go run ./cmd/digest-worker
	if cfg.IsLocal() {
		logger.Info("APP_ENV=local: reading SQS event from stdin")
		payload, err := io.ReadAll(os.Stdin)
		if err != nil {
			logger.Error("Failed to read stdin", "error", err)
			os.Exit(1)
		}
		if len(payload) == 0 {
			logger.Error("No input received on stdin")
			os.Exit(1)
		}
		var sqsEvent events.SQSEvent
		if err := json.Unmarshal(payload, &sqsEvent); err != nil {
			logger.Error("Failed to parse stdin as SQS event", "error", err)
			os.Exit(1)
		}
		response, err := handler.Handle(context.Background(), sqsEvent)
		if err != nil {
			logger.Error("Handler execution failed", "error", err)
			os.Exit(1)
		}
		if len(response.BatchItemFailures) > 0 {
			logger.Warn("Handler reported partial failures",
				"failed_count", len(response.BatchItemFailures),
			)
			respJSON, _ := json.MarshalIndent(response, "", "  ")
			fmt.Fprintln(os.Stderr, string(respJSON))
		}
		logger.Info("Handler execution completed",
			"records_processed", len(sqsEvent.Records),
			"failures", len(response.BatchItemFailures),
		)
		return
	}

	lambda.Start(handler.Handle)
}

// Compile-time assertion that slogAdapter implements types.Logger.
var _ types.Logger = (*slogAdapter)(nil)
