package observability

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"go.uber.org/zap"
)

// Metrics publishes upstream-call metrics to CloudWatch. A nil client
// disables publishing, so callers never need to branch on the feature
// flag.
type Metrics struct {
	namespace string
	client    *cloudwatch.Client
	logger    *zap.Logger
}

// NewMetrics creates a metrics publisher. client may be nil to disable.
func NewMetrics(namespace string, client *cloudwatch.Client, logger *zap.Logger) *Metrics {
	return &Metrics{
		namespace: namespace,
		client:    client,
		logger:    logger,
	}
}

// RecordUpstreamCall publishes latency and error-count datapoints for
// one call to the upstream API. Publishing is fire-and-forget; a failed
// put is logged, never surfaced.
func (m *Metrics) RecordUpstreamCall(entity, method string, status int, elapsed time.Duration) {
	if m == nil || m.client == nil {
		return
	}

	dims := []types.Dimension{
		{Name: aws.String("Entity"), Value: aws.String(entity)},
		{Name: aws.String("Method"), Value: aws.String(method)},
	}

	data := []types.MetricDatum{
		{
			MetricName: aws.String("UpstreamLatency"),
			Unit:       types.StandardUnitMilliseconds,
			Value:      aws.Float64(float64(elapsed.Milliseconds())),
			Dimensions: dims,
		},
	}
	if status >= 400 {
		data = append(data, types.MetricDatum{
			MetricName: aws.String("UpstreamErrors"),
			Unit:       types.StandardUnitCount,
			Value:      aws.Float64(1),
			Dimensions: dims,
		})
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_, err := m.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
			Namespace:  aws.String(m.namespace),
			MetricData: data,
		})
		if err != nil {
			m.logger.Warn("metric publish failed", zap.Error(err))
		}
	}()
}
