package main

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go/service/cloudwatchlogs/cloudwatchlogsiface"
	lru "github.com/hashicorp/golang-lru"
	"go.uber.org/zap"

	invoker "github.com/shirou/lambda-invoker"
)

const (
	maxEventsCache = 100000
	watchInterval  = 500 * time.Millisecond
)

var startRequestRe = regexp.MustCompile("START RequestId: (.+) Version:")
var endRequestRe = regexp.MustCompile("END RequestId: (.+)")

// logTailer prints the CloudWatch log events of one function until the first
// request that started after since has ended.
type logTailer struct {
	client   cloudwatchlogsiface.CloudWatchLogsAPI
	fn       invoker.FunctionName
	lastSeen int64 // unix millis
	seen     *lru.Cache
	interval time.Duration

	requestID string
	finished  bool
}

func newLogTailer(client cloudwatchlogsiface.CloudWatchLogsAPI, fn invoker.FunctionName, since time.Time) (*logTailer, error) {
	cache, err := lru.New(maxEventsCache)
	if err != nil {
		return nil, err
	}
	return &logTailer{
		client:   client,
		fn:       fn,
		lastSeen: aws.TimeUnixMilli(since),
		seen:     cache,
		interval: watchInterval,
	}, nil
}

func (t *logTailer) run(ctx context.Context) error {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		if err := t.poll(ctx); err != nil {
			return err
		}
		if t.finished {
			return nil
		}
		select {
		case <-ticker.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (t *logTailer) poll(ctx context.Context) error {
	logGroup := t.fn.LogGroup()
	streams, err := t.listLogStreams(ctx, logGroup)
	if err != nil {
		return fmt.Errorf("listLogStreams, %s: %w", logGroup, err)
	}
	if len(streams) == 0 {
		return nil
	}

	input := &cloudwatchlogs.FilterLogEventsInput{
		StartTime:      aws.Int64(t.lastSeen),
		LogStreamNames: streams,
		LogGroupName:   aws.String(logGroup),
	}
	err = t.client.FilterLogEventsPagesWithContext(ctx, input, t.handleEvents)
	if isThrottled(err) {
		logger.Infof("rate exceeded for %s, retry on next tick", logGroup)
		return nil
	}
	if err != nil {
		return fmt.Errorf("FilterLogEventsPages, %s: %w", logGroup, err)
	}
	return nil
}

func (t *logTailer) handleEvents(res *cloudwatchlogs.FilterLogEventsOutput, lastPage bool) bool {
	for _, event := range res.Events {
		id := aws.StringValue(event.EventId)
		if ok, _ := t.seen.ContainsOrAdd(id, nil); ok {
			continue
		}
		msg := aws.StringValue(event.Message)
		logger.Infow(msg, zap.String("function_name", t.fn.Name), zap.String("request_id", t.requestID))

		if t.requestID == "" {
			if m := startRequestRe.FindStringSubmatch(msg); len(m) == 2 {
				t.requestID = m[1]
			}
			continue
		}
		if m := endRequestRe.FindStringSubmatch(msg); len(m) == 2 && m[1] == t.requestID {
			logger.Infof("%s has been finished", t.requestID)
			t.finished = true
			return false
		}
	}
	if lastPage && len(res.Events) > 0 {
		t.lastSeen = aws.Int64Value(res.Events[len(res.Events)-1].IngestionTime)
	}
	return true
}

func (t *logTailer) listLogStreams(ctx context.Context, logGroup string) ([]*string, error) {
	streams := make([]*string, 0, 10)
	fn := func(res *cloudwatchlogs.DescribeLogStreamsOutput, lastPage bool) bool {
		hasUpdatedStream := false
		for _, stream := range res.LogStreams {
			// LastEventTimestamp is updated slowly, LastIngestionTime is not
			if stream.LastIngestionTime == nil || *stream.LastIngestionTime < t.lastSeen {
				continue
			}
			hasUpdatedStream = true
			streams = append(streams, stream.LogStreamName)
		}
		return hasUpdatedStream
	}

	input := &cloudwatchlogs.DescribeLogStreamsInput{
		LogGroupName: aws.String(logGroup),
		OrderBy:      aws.String(cloudwatchlogs.OrderByLastEventTime),
		Descending:   aws.Bool(true),
	}
	err := t.client.DescribeLogStreamsPagesWithContext(ctx, input, fn)
	if err == nil {
		return streams, nil
	}
	if awsErr, ok := err.(awserr.Error); ok && awsErr.Code() == cloudwatchlogs.ErrCodeResourceNotFoundException {
		return streams, nil
	}
	if isThrottled(err) {
		return nil, nil
	}
	return nil, err
}

func isThrottled(err error) bool {
	awsErr, ok := err.(awserr.Error)
	return ok && awsErr.Code() == "ThrottlingException"
}
