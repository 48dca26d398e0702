package core

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"

	"paperboy/internal/types"
)

// CloudWatchClient abstracts the CloudWatch PutMetricData operation for testability.
type CloudWatchClient interface {
	PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error)
}

// CloudWatchRenderMetrics emits render metrics to AWS CloudWatch.
//
// Metrics emitted:
//   - DigestRenderAttempt: Dims {Template, Result}
//   - DigestRenderLatency: Dims {Template}, milliseconds
//   - DigestRenderBytes: Dims {Template}, bytes
//   - DigestPublishFailed: no dims
//
// Metric failures are logged and never returned; observability must not
// fail a render.
type CloudWatchRenderMetrics struct {
	client    CloudWatchClient
	namespace string
	logger    types.Logger
}

var _ RenderMetrics = (*CloudWatchRenderMetrics)(nil)

// NewCloudWatchRenderMetrics creates metrics publishing to namespace. An
// empty namespace selects types.MetricNamespace.
func NewCloudWatchRenderMetrics(client CloudWatchClient, namespace string, logger types.Logger) *CloudWatchRenderMetrics {
	if namespace == "" {
		namespace = types.MetricNamespace
	}
	return &CloudWatchRenderMetrics{
		client:    client,
		namespace: namespace,
		logger:    logger,
	}
}

// RecordRender emits one DigestRenderAttempt with Template and Result dimensions.
func (m *CloudWatchRenderMetrics) RecordRender(ctx context.Context, template string, result MetricResult) {
	m.put(ctx, cwtypes.MetricDatum{
		MetricName: aws.String(types.MetricRenderAttempt),
		Value:      aws.Float64(1),
		Unit:       cwtypes.StandardUnitCount,
		Dimensions: []cwtypes.Dimension{
			templateDimension(template),
			{
				Name:  aws.String(types.DimResult),
				Value: aws.String(string(result)),
			},
		},
	})
}

// RecordLatency emits the render duration in milliseconds.
func (m *CloudWatchRenderMetrics) RecordLatency(ctx context.Context, template string, d time.Duration) {
	m.put(ctx, cwtypes.MetricDatum{
		MetricName: aws.String(types.MetricRenderLatency),
		Value:      aws.Float64(float64(d.Milliseconds())),
		Unit:       cwtypes.StandardUnitMilliseconds,
		Dimensions: []cwtypes.Dimension{templateDimension(template)},
	})
}

// RecordSize emits the rendered HTML length in bytes.
func (m *CloudWatchRenderMetrics) RecordSize(ctx context.Context, template string, bytes int) {
	m.put(ctx, cwtypes.MetricDatum{
		MetricName: aws.String(types.MetricRenderSize),
		Value:      aws.Float64(float64(bytes)),
		Unit:       cwtypes.StandardUnitBytes,
		Dimensions: []cwtypes.Dimension{templateDimension(template)},
	})
}

// RecordPublishFailure counts a rendered digest that could not be published.
func (m *CloudWatchRenderMetrics) RecordPublishFailure(ctx context.Context) {
	m.put(ctx, cwtypes.MetricDatum{
		MetricName: aws.String(types.MetricPublishFailed),
		Value:      aws.Float64(1),
		Unit:       cwtypes.StandardUnitCount,
	})
}

func (m *CloudWatchRenderMetrics) put(ctx context.Context, datum cwtypes.MetricDatum) {
	input := &cloudwatch.PutMetricDataInput{
		Namespace:  aws.String(m.namespace),
		MetricData: []cwtypes.MetricDatum{datum},
	}

	if _, err := m.client.PutMetricData(ctx, input); err != nil {
		m.logger.Error("failed to record render metric",
			"error", err.Error(),
			"metric", aws.ToString(datum.MetricName),
		)
	}
}

func templateDimension(template string) cwtypes.Dimension {
	return cwtypes.Dimension{
		Name:  aws.String(types.DimTemplate),
		Value: aws.String(template),
	}
}
