// Package batchlog fetches and watches AWS Batch job log streams in
// CloudWatch Logs.
package batchlog

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs/types"
)

// DefaultLogGroup is the log group AWS Batch writes job logs to.
const DefaultLogGroup = "/aws/batch/job"

// Sentinel errors for the fetch failure taxonomy. Callers test with
// errors.Is; the wrapped message carries the underlying detail.
var (
	// ErrStreamNotFound reports that the named log stream (or its log
	// group) does not exist at the remote store.
	ErrStreamNotFound = errors.New("log stream not found")

	// ErrSourceUnavailable reports that the remote query could not be
	// completed, e.g. a network, throttling, or credential failure.
	ErrSourceUnavailable = errors.New("log source unavailable")
)

// Entry is a single log event from a job's log stream.
type Entry struct {
	// ID is the store-assigned event id, unique within a stream.
	ID string

	// Timestamp is the event time in milliseconds since the epoch. It is
	// non-decreasing across a stream but not unique; several entries may
	// share one timestamp.
	Timestamp int64

	// Ingested is when CloudWatch received the event, in milliseconds
	// since the epoch.
	Ingested int64

	// Message is the raw log line.
	Message string
}

// LogsAPI is the slice of the CloudWatch Logs client that Source needs.
// Tests substitute a fake.
type LogsAPI interface {
	cloudwatchlogs.FilterLogEventsAPIClient
	DescribeLogStreams(ctx context.Context, params *cloudwatchlogs.DescribeLogStreamsInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.DescribeLogStreamsOutput, error)
}

// Source fetches log entries for job streams from a single log group.
// It keeps no state between calls; every Fetch starts a fresh paginated
// query against the remote store.
type Source struct {
	client   LogsAPI
	logGroup string
}

// NewSource creates a Source over the given log group. An empty logGroup
// selects DefaultLogGroup.
func NewSource(client LogsAPI, logGroup string) *Source {
	if logGroup == "" {
		logGroup = DefaultLogGroup
	}
	return &Source{client: client, logGroup: logGroup}
}

// LogGroup returns the log group this source reads from.
func (s *Source) LogGroup() string {
	return s.logGroup
}

// Fetch returns all log entries currently in the named stream, in the order
// the store returns them, walking as many result pages as needed. Callers
// never see page boundaries.
//
// If startTime is non-nil, only entries with timestamps on or after it are
// returned. Because the bound is inclusive, a caller polling with the
// timestamp of the last entry it saw will receive that entry (and any
// same-timestamp siblings) again; see Watcher for the dedup that relies on
// this overlap.
func (s *Source) Fetch(ctx context.Context, stream string, startTime *int64) ([]Entry, error) {
	input := &cloudwatchlogs.FilterLogEventsInput{
		LogGroupName:   aws.String(s.logGroup),
		LogStreamNames: []string{stream},
	}
	if startTime != nil {
		input.StartTime = startTime
	}

	var entries []Entry

	paginator := cloudwatchlogs.NewFilterLogEventsPaginator(s.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			var notFound *types.ResourceNotFoundException
			if errors.As(err, &notFound) {
				return nil, fmt.Errorf("%w: %s/%s", ErrStreamNotFound, s.logGroup, stream)
			}
			return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
		}

		for _, e := range page.Events {
			if e.EventId == nil || e.Timestamp == nil {
				continue
			}
			entry := Entry{
				ID:        *e.EventId,
				Timestamp: *e.Timestamp,
				Message:   aws.ToString(e.Message),
			}
			if e.IngestionTime != nil {
				entry.Ingested = *e.IngestionTime
			}
			entries = append(entries, entry)
		}
	}

	return entries, nil
}

// StreamInfo describes a log stream within the source's log group.
type StreamInfo struct {
	Name           string
	FirstEventTime int64
	LastEventTime  int64
}

// ListStreams returns up to limit log streams in the source's log group,
// newest activity first, optionally filtered by name prefix.
func (s *Source) ListStreams(ctx context.Context, prefix string, limit int) ([]StreamInfo, error) {
	input := &cloudwatchlogs.DescribeLogStreamsInput{
		LogGroupName: aws.String(s.logGroup),
		Limit:        aws.Int32(int32(limit)),
	}

	if prefix != "" {
		// OrderBy LastEventTime cannot be combined with a name prefix.
		input.LogStreamNamePrefix = aws.String(prefix)
	} else {
		input.OrderBy = types.OrderByLastEventTime
		input.Descending = aws.Bool(true)
	}

	result, err := s.client.DescribeLogStreams(ctx, input)
	if err != nil {
		var notFound *types.ResourceNotFoundException
		if errors.As(err, &notFound) {
			return nil, fmt.Errorf("%w: %s", ErrStreamNotFound, s.logGroup)
		}
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	var streams []StreamInfo
	for _, st := range result.LogStreams {
		info := StreamInfo{
			Name: aws.ToString(st.LogStreamName),
		}
		if st.FirstEventTimestamp != nil {
			info.FirstEventTime = *st.FirstEventTimestamp
		}
		if st.LastEventTimestamp != nil {
			info.LastEventTime = *st.LastEventTimestamp
		}
		streams = append(streams, info)
	}

	return streams, nil
}
