package batchlog

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

// MetricsAPI is the slice of the CloudWatch metrics client Activity needs.
type MetricsAPI interface {
	GetMetricStatistics(ctx context.Context, params *cloudwatch.GetMetricStatisticsInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.GetMetricStatisticsOutput, error)
}

// ActivityPoint is one time bucket of log volume for a log group.
type ActivityPoint struct {
	Timestamp time.Time
	Events    float64
	Bytes     float64
}

// ActivityParams holds the time range and bucket size for an Activity query.
type ActivityParams struct {
	StartTime time.Time
	EndTime   time.Time
	Period    time.Duration
}

// Activity returns per-bucket sums of the AWS/Logs IncomingLogEvents and
// IncomingBytes metrics for the given log group, oldest bucket first.
func Activity(ctx context.Context, client MetricsAPI, logGroup string, params ActivityParams) ([]ActivityPoint, error) {
	buckets := make(map[time.Time]*ActivityPoint)

	for _, metric := range []string{"IncomingLogEvents", "IncomingBytes"} {
		input := &cloudwatch.GetMetricStatisticsInput{
			Namespace:  aws.String("AWS/Logs"),
			MetricName: aws.String(metric),
			Dimensions: []types.Dimension{
				{Name: aws.String("LogGroupName"), Value: aws.String(logGroup)},
			},
			StartTime:  aws.Time(params.StartTime),
			EndTime:    aws.Time(params.EndTime),
			Period:     aws.Int32(int32(params.Period.Seconds())),
			Statistics: []types.Statistic{types.StatisticSum},
		}

		result, err := client.GetMetricStatistics(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to get %s statistics: %w", metric, err)
		}

		for _, dp := range result.Datapoints {
			if dp.Timestamp == nil || dp.Sum == nil {
				continue
			}
			point, ok := buckets[*dp.Timestamp]
			if !ok {
				point = &ActivityPoint{Timestamp: *dp.Timestamp}
				buckets[*dp.Timestamp] = point
			}
			switch metric {
			case "IncomingLogEvents":
				point.Events = *dp.Sum
			case "IncomingBytes":
				point.Bytes = *dp.Sum
			}
		}
	}

	points := make([]ActivityPoint, 0, len(buckets))
	for _, p := range buckets {
		points = append(points, *p)
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Timestamp.Before(points[j].Timestamp)
	})

	return points, nil
}
