package metrics

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"github.com/sombaner/GitHub-copilot-automation-scripts/internal/models"
)

// CloudWatchAPI defines the CloudWatch client interface used for metrics.
type CloudWatchAPI interface {
	PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error)
}

// Emitter sends run metrics to CloudWatch.
type Emitter struct {
	client    CloudWatchAPI
	namespace string
}

// NewEmitter creates a CloudWatch metrics emitter.
func NewEmitter(cfg aws.Config, namespace string) *Emitter {
	return &Emitter{
		client:    cloudwatch.NewFromConfig(cfg),
		namespace: namespace,
	}
}

// EmitRunSummary publishes run metrics to CloudWatch.
func (e *Emitter) EmitRunSummary(ctx context.Context, summary models.RunSummary) error {
	metrics := []types.MetricDatum{
		metricDatum("ScopesProcessed", summary.ScopesProcessed),
		metricDatum("TeamsFetched", summary.TeamsFetched),
		metricDatum("UsersIndexed", summary.UsersIndexed),
		metricDatum("SeatsSeen", summary.SeatsSeen),
		metricDatum("SeatsSkipped", summary.SeatsSkipped),
		metricDatum("RowsEmitted", summary.RowsEmitted),
		metricDatum("Requests", summary.Requests),
		metricDatum("Retries", summary.Retries),
		metricDatum("RateLimitWaits", summary.RateLimitWaits),
	}

	_, err := e.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace:  aws.String(e.namespace),
		MetricData: metrics,
	})
	return err
}

func metricDatum(name string, value int) types.MetricDatum {
	return types.MetricDatum{
		MetricName: aws.String(name),
		Unit:       types.StandardUnitCount,
		Value:      aws.Float64(float64(value)),
	}
}
