package batchlog

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs/types"
)

// fakeLogsClient implements LogsAPI, serving canned FilterLogEvents pages.
type fakeLogsClient struct {
	pages   []cloudwatchlogs.FilterLogEventsOutput
	streams []types.LogStream
	err     error

	filterInputs   []cloudwatchlogs.FilterLogEventsInput
	describeInputs []cloudwatchlogs.DescribeLogStreamsInput
}

func (f *fakeLogsClient) FilterLogEvents(ctx context.Context, input *cloudwatchlogs.FilterLogEventsInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.FilterLogEventsOutput, error) {
	f.filterInputs = append(f.filterInputs, *input)
	if f.err != nil {
		return nil, f.err
	}

	page := len(f.filterInputs) - 1
	if page >= len(f.pages) {
		return &cloudwatchlogs.FilterLogEventsOutput{}, nil
	}
	return &f.pages[page], nil
}

func (f *fakeLogsClient) DescribeLogStreams(ctx context.Context, input *cloudwatchlogs.DescribeLogStreamsInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.DescribeLogStreamsOutput, error) {
	f.describeInputs = append(f.describeInputs, *input)
	if f.err != nil {
		return nil, f.err
	}
	return &cloudwatchlogs.DescribeLogStreamsOutput{LogStreams: f.streams}, nil
}

func event(id string, ts int64, msg string) types.FilteredLogEvent {
	return types.FilteredLogEvent{
		EventId:   aws.String(id),
		Timestamp: aws.Int64(ts),
		Message:   aws.String(msg),
	}
}

func TestSourceFetchWalksAllPages(t *testing.T) {
	client := &fakeLogsClient{
		pages: []cloudwatchlogs.FilterLogEventsOutput{
			{
				Events:    []types.FilteredLogEvent{event("e1", 100, "starting"), event("e2", 101, "running")},
				NextToken: aws.String("page-2"),
			},
			{
				Events: []types.FilteredLogEvent{event("e3", 105, "done")},
			},
		},
	}

	src := NewSource(client, "")
	entries, err := src.Fetch(context.Background(), "job/default/abc123", nil)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	wantIDs := []string{"e1", "e2", "e3"}
	if len(entries) != len(wantIDs) {
		t.Fatalf("got %d entries, want %d", len(entries), len(wantIDs))
	}
	for i, id := range wantIDs {
		if entries[i].ID != id {
			t.Errorf("entry %d: got id %q, want %q", i, entries[i].ID, id)
		}
	}
	if entries[2].Message != "done" {
		t.Errorf("entry 2 message = %q, want %q", entries[2].Message, "done")
	}

	if got := len(client.filterInputs); got != 2 {
		t.Fatalf("expected 2 page requests, got %d", got)
	}
	first := client.filterInputs[0]
	if aws.ToString(first.LogGroupName) != DefaultLogGroup {
		t.Errorf("log group = %q, want %q", aws.ToString(first.LogGroupName), DefaultLogGroup)
	}
	if len(first.LogStreamNames) != 1 || first.LogStreamNames[0] != "job/default/abc123" {
		t.Errorf("stream names = %v", first.LogStreamNames)
	}
	if first.StartTime != nil {
		t.Errorf("expected no start time on initial fetch, got %d", *first.StartTime)
	}
}

func TestSourceFetchPassesStartTime(t *testing.T) {
	client := &fakeLogsClient{
		pages: []cloudwatchlogs.FilterLogEventsOutput{
			{Events: []types.FilteredLogEvent{event("e2", 101, "running")}},
		},
	}

	src := NewSource(client, "/custom/group")
	start := int64(101)
	if _, err := src.Fetch(context.Background(), "stream-a", &start); err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	input := client.filterInputs[0]
	if aws.ToString(input.LogGroupName) != "/custom/group" {
		t.Errorf("log group = %q, want %q", aws.ToString(input.LogGroupName), "/custom/group")
	}
	if input.StartTime == nil || *input.StartTime != 101 {
		t.Errorf("start time = %v, want 101", input.StartTime)
	}
}

func TestSourceFetchIsRestartable(t *testing.T) {
	client := &fakeLogsClient{
		pages: []cloudwatchlogs.FilterLogEventsOutput{
			{Events: []types.FilteredLogEvent{event("e1", 100, "a")}},
			{Events: []types.FilteredLogEvent{event("e1", 100, "a")}},
		},
	}

	src := NewSource(client, "")
	for i := 0; i < 2; i++ {
		entries, err := src.Fetch(context.Background(), "s", nil)
		if err != nil {
			t.Fatalf("fetch %d failed: %v", i, err)
		}
		if len(entries) != 1 || entries[0].ID != "e1" {
			t.Fatalf("fetch %d: got %v", i, entries)
		}
	}
}

func TestSourceFetchSkipsPartialEvents(t *testing.T) {
	client := &fakeLogsClient{
		pages: []cloudwatchlogs.FilterLogEventsOutput{
			{Events: []types.FilteredLogEvent{
				{Message: aws.String("no id or timestamp")},
				event("e1", 100, "ok"),
			}},
		},
	}

	src := NewSource(client, "")
	entries, err := src.Fetch(context.Background(), "s", nil)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(entries) != 1 || entries[0].ID != "e1" {
		t.Fatalf("got %v, want just e1", entries)
	}
}

func TestSourceFetchErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{
			name:    "missing stream",
			err:     &types.ResourceNotFoundException{Message: aws.String("stream does not exist")},
			wantErr: ErrStreamNotFound,
		},
		{
			name:    "transport failure",
			err:     errors.New("dial tcp: connection refused"),
			wantErr: ErrSourceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := NewSource(&fakeLogsClient{err: tt.err}, "")
			_, err := src.Fetch(context.Background(), "s", nil)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Fetch error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSourceListStreams(t *testing.T) {
	client := &fakeLogsClient{
		streams: []types.LogStream{
			{
				LogStreamName:       aws.String("job/default/abc123"),
				FirstEventTimestamp: aws.Int64(100),
				LastEventTimestamp:  aws.Int64(500),
			},
			{LogStreamName: aws.String("job/default/def456")},
		},
	}

	src := NewSource(client, "")
	streams, err := src.ListStreams(context.Background(), "", 20)
	if err != nil {
		t.Fatalf("ListStreams failed: %v", err)
	}
	if len(streams) != 2 {
		t.Fatalf("got %d streams, want 2", len(streams))
	}
	if streams[0].Name != "job/default/abc123" || streams[0].LastEventTime != 500 {
		t.Errorf("unexpected first stream: %+v", streams[0])
	}

	input := client.describeInputs[0]
	if input.OrderBy != types.OrderByLastEventTime {
		t.Errorf("expected ordering by last event time, got %v", input.OrderBy)
	}
	if input.Descending == nil || !*input.Descending {
		t.Error("expected descending order")
	}
}

func TestSourceListStreamsWithPrefix(t *testing.T) {
	client := &fakeLogsClient{}

	src := NewSource(client, "")
	if _, err := src.ListStreams(context.Background(), "job/default", 10); err != nil {
		t.Fatalf("ListStreams failed: %v", err)
	}

	input := client.describeInputs[0]
	if aws.ToString(input.LogStreamNamePrefix) != "job/default" {
		t.Errorf("prefix = %q, want %q", aws.ToString(input.LogStreamNamePrefix), "job/default")
	}
	if input.OrderBy == types.OrderByLastEventTime {
		t.Error("prefix listing must not set OrderBy LastEventTime")
	}
}
