package metrics

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/sombaner/GitHub-copilot-automation-scripts/internal/models"
)

type fakeCloudWatch struct {
	inputs []*cloudwatch.PutMetricDataInput
	err    error
}

func (f *fakeCloudWatch) PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.inputs = append(f.inputs, params)
	return &cloudwatch.PutMetricDataOutput{}, nil
}

func TestEmitRunSummary(t *testing.T) {
	client := &fakeCloudWatch{}
	emitter := &Emitter{client: client, namespace: "CopilotReport"}

	summary := models.RunSummary{
		ScopesProcessed: 2,
		TeamsFetched:    14,
		UsersIndexed:    120,
		SeatsSeen:       300,
		SeatsSkipped:    12,
		RowsEmitted:     288,
		Requests:        45,
		Retries:         3,
		RateLimitWaits:  1,
	}
	if err := emitter.EmitRunSummary(context.Background(), summary); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(client.inputs) != 1 {
		t.Fatalf("expected 1 PutMetricData call, got %d", len(client.inputs))
	}
	input := client.inputs[0]
	if *input.Namespace != "CopilotReport" {
		t.Fatalf("unexpected namespace %q", *input.Namespace)
	}
	if len(input.MetricData) != 9 {
		t.Fatalf("expected 9 metrics, got %d", len(input.MetricData))
	}

	values := map[string]float64{}
	for _, datum := range input.MetricData {
		values[*datum.MetricName] = *datum.Value
	}
	if values["SeatsSeen"] != 300 || values["RowsEmitted"] != 288 || values["RateLimitWaits"] != 1 {
		t.Fatalf("unexpected metric values %v", values)
	}
}

func TestEmitRunSummaryError(t *testing.T) {
	emitter := &Emitter{client: &fakeCloudWatch{err: errors.New("throttled")}, namespace: "CopilotReport"}
	if err := emitter.EmitRunSummary(context.Background(), models.RunSummary{}); err == nil {
		t.Fatalf("expected error from PutMetricData")
	}
}
