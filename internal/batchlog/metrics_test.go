package batchlog

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

type fakeMetricsClient struct {
	byMetric map[string][]types.Datapoint
	inputs   []cloudwatch.GetMetricStatisticsInput
}

func (f *fakeMetricsClient) GetMetricStatistics(ctx context.Context, input *cloudwatch.GetMetricStatisticsInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.GetMetricStatisticsOutput, error) {
	f.inputs = append(f.inputs, *input)
	return &cloudwatch.GetMetricStatisticsOutput{
		Datapoints: f.byMetric[aws.ToString(input.MetricName)],
	}, nil
}

func TestActivityMergesMetricsByBucket(t *testing.T) {
	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	t1 := t0.Add(5 * time.Minute)

	client := &fakeMetricsClient{
		byMetric: map[string][]types.Datapoint{
			"IncomingLogEvents": {
				{Timestamp: aws.Time(t1), Sum: aws.Float64(40)},
				{Timestamp: aws.Time(t0), Sum: aws.Float64(12)},
			},
			"IncomingBytes": {
				{Timestamp: aws.Time(t0), Sum: aws.Float64(2048)},
			},
		},
	}

	points, err := Activity(context.Background(), client, DefaultLogGroup, ActivityParams{
		StartTime: t0,
		EndTime:   t1.Add(5 * time.Minute),
		Period:    5 * time.Minute,
	})
	if err != nil {
		t.Fatalf("Activity failed: %v", err)
	}

	if len(points) != 2 {
		t.Fatalf("got %d points, want 2", len(points))
	}
	if !points[0].Timestamp.Equal(t0) || points[0].Events != 12 || points[0].Bytes != 2048 {
		t.Errorf("first bucket = %+v", points[0])
	}
	if !points[1].Timestamp.Equal(t1) || points[1].Events != 40 || points[1].Bytes != 0 {
		t.Errorf("second bucket = %+v", points[1])
	}

	if len(client.inputs) != 2 {
		t.Fatalf("expected 2 metric queries, got %d", len(client.inputs))
	}
	first := client.inputs[0]
	if aws.ToString(first.Namespace) != "AWS/Logs" {
		t.Errorf("namespace = %q", aws.ToString(first.Namespace))
	}
	if len(first.Dimensions) != 1 || aws.ToString(first.Dimensions[0].Value) != DefaultLogGroup {
		t.Errorf("dimensions = %+v", first.Dimensions)
	}
	if aws.ToInt32(first.Period) != 300 {
		t.Errorf("period = %d, want 300", aws.ToInt32(first.Period))
	}
}
