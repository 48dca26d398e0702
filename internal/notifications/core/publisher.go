package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/sony/gobreaker/v2"

	"paperboy/internal/types"
)

// SQSSender abstracts the SQS SendMessage operation for testability.
// Production code uses the *sqs.Client from aws-sdk-go-v2.
type SQSSender interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// BreakerSettings configures the circuit breaker guarding the queue.
type BreakerSettings struct {
	// ConsecutiveFailures trips the breaker once exceeded.
	ConsecutiveFailures uint32
	// OpenTimeout is how long the breaker stays open before probing.
	OpenTimeout time.Duration
}

// DefaultBreakerSettings mirrors the settings used for outbound HTTP clients.
func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		ConsecutiveFailures: 5,
		OpenTimeout:         30 * time.Second,
	}
}

// DigestPublisher sends RenderedDigest messages to SQS behind a circuit
// breaker, so a degraded queue fails renders fast instead of stalling the
// whole batch on SDK retries.
type DigestPublisher struct {
	client   SQSSender
	queueURL string
	breaker  *gobreaker.CircuitBreaker[*sqs.SendMessageOutput]
	logger   types.Logger
}

var _ Publisher = (*DigestPublisher)(nil)

// NewDigestPublisher creates a publisher targeting queueURL.
func NewDigestPublisher(client SQSSender, queueURL string, settings BreakerSettings, logger types.Logger) *DigestPublisher {
	p := &DigestPublisher{
		client:   client,
		queueURL: queueURL,
		logger:   logger,
	}

	p.breaker = gobreaker.NewCircuitBreaker[*sqs.SendMessageOutput](gobreaker.Settings{
		Name:        "sqs-rendered-digests",
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     settings.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > settings.ConsecutiveFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	})
	return p
}

// Publish serializes msg and sends it to the queue. The digest ID and payload
// encoding travel as message attributes so consumers can route without
// decoding the body.
func (p *DigestPublisher) Publish(ctx context.Context, msg *types.RenderedDigest) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("digest publisher: failed to marshal message: %w", err)
	}

	encoding := msg.Encoding
	if encoding == "" {
		encoding = EncodingIdentity
	}

	input := &sqs.SendMessageInput{
		QueueUrl:    aws.String(p.queueURL),
		MessageBody: aws.String(string(body)),
		MessageAttributes: map[string]sqstypes.MessageAttributeValue{
			"digest_id": {
				DataType:    aws.String("String"),
				StringValue: aws.String(msg.DigestID),
			},
			"encoding": {
				DataType:    aws.String("String"),
				StringValue: aws.String(encoding),
			},
		},
	}

	_, err = p.breaker.Execute(func() (*sqs.SendMessageOutput, error) {
		return p.client.SendMessage(ctx, input)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return types.NewAppError(types.ErrCodeUpstreamQueue,
				"rendered digest queue circuit breaker is open", err)
		}
		return fmt.Errorf("digest publisher: failed to send message to %s: %w", p.queueURL, err)
	}

	logger := p.logger
	if l := types.LoggerFromContext(ctx); l != nil {
		logger = l
	}
	logger.Info("rendered digest published",
		"render_id", msg.RenderID,
		"digest_id", msg.DigestID,
		"encoding", encoding,
		"html_length", msg.HTMLLength,
		"used_fallback", msg.UsedFallback,
		"trace_id", msg.TraceID,
	)

	return nil
}
