package billing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"github.com/aws/smithy-go"

	"github.com/ogulcanaydogan/aws-billing-notifier/pkg/model"
)

const (
	Namespace  = "AWS/Billing"
	MetricName = "EstimatedCharges"
	Currency   = "USD"

	// PeriodSeconds aggregates the whole day into one datapoint.
	PeriodSeconds int32 = 86400
)

// Selection decides which datapoint is reported when CloudWatch returns
// more than one.
type Selection string

const (
	// SelectLatest reports the datapoint with the most recent timestamp.
	SelectLatest Selection = "latest"
	// SelectFirst reports the first datapoint in response order. CloudWatch
	// does not guarantee ordering, so this is only kept for compatibility.
	SelectFirst Selection = "first"
)

// ParseSelection validates a selection name. Empty means SelectLatest.
func ParseSelection(s string) (Selection, error) {
	switch Selection(strings.ToLower(strings.TrimSpace(s))) {
	case "", SelectLatest:
		return SelectLatest, nil
	case SelectFirst:
		return SelectFirst, nil
	default:
		return "", fmt.Errorf("unknown datapoint selection %q (supported: latest, first)", s)
	}
}

// MetricStatisticsAPI is the subset of the CloudWatch client used here.
type MetricStatisticsAPI interface {
	GetMetricStatistics(ctx context.Context, params *cloudwatch.GetMetricStatisticsInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.GetMetricStatisticsOutput, error)
}

// Fetcher retrieves the previous day's maximum estimated charge.
type Fetcher struct {
	api       MetricStatisticsAPI
	selection Selection
	now       func() time.Time
	logger    *slog.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithSelection sets the datapoint selection policy.
func WithSelection(s Selection) Option {
	return func(f *Fetcher) { f.selection = s }
}

// WithClock overrides the wall clock used to compute the query window.
func WithClock(now func() time.Time) Option {
	return func(f *Fetcher) { f.now = now }
}

// NewFetcher creates a fetcher backed by the given CloudWatch API.
func NewFetcher(api MetricStatisticsAPI, logger *slog.Logger, opts ...Option) *Fetcher {
	f := &Fetcher{
		api:       api,
		selection: SelectLatest,
		now:       time.Now,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Window returns the range the next Fetch will query.
func (f *Fetcher) Window() model.Window {
	return model.PreviousDay(f.now())
}

// Fetch queries CloudWatch for yesterday's maximum EstimatedCharges in USD.
func (f *Fetcher) Fetch(ctx context.Context) (*model.MetricDatapoint, error) {
	window := f.Window()

	out, err := f.api.GetMetricStatistics(ctx, buildInput(window))
	if err != nil {
		return nil, classifyError(err)
	}
	if out == nil || len(out.Datapoints) == 0 {
		return nil, &FetchError{
			Message: fmt.Sprintf("no datapoints between %s and %s",
				window.Start.Format(time.RFC3339), window.End.Format(time.RFC3339)),
			Cause: ErrNoData,
		}
	}

	dp := selectDatapoint(out.Datapoints, f.selection)
	result := &model.MetricDatapoint{
		Timestamp: window.Start,
		Maximum:   aws.ToFloat64(dp.Maximum),
	}
	if dp.Timestamp != nil {
		result.Timestamp = dp.Timestamp.UTC()
	}

	f.logger.Info("estimated charges fetched",
		"window_start", window.Start,
		"window_end", window.End,
		"datapoints", len(out.Datapoints),
		"selection", string(f.selection),
		"timestamp", result.Timestamp,
		"maximum", result.Maximum,
	)

	return result, nil
}

func buildInput(window model.Window) *cloudwatch.GetMetricStatisticsInput {
	return &cloudwatch.GetMetricStatisticsInput{
		Namespace:  aws.String(Namespace),
		MetricName: aws.String(MetricName),
		Dimensions: []types.Dimension{
			{Name: aws.String("Currency"), Value: aws.String(Currency)},
		},
		StartTime:  aws.Time(window.Start),
		EndTime:    aws.Time(window.End),
		Period:     aws.Int32(PeriodSeconds),
		Statistics: []types.Statistic{types.StatisticMaximum},
	}
}

// selectDatapoint expects a non-empty slice.
func selectDatapoint(points []types.Datapoint, sel Selection) types.Datapoint {
	if sel == SelectFirst {
		return points[0]
	}

	best := points[0]
	for _, p := range points[1:] {
		if p.Timestamp == nil {
			continue
		}
		if best.Timestamp == nil || p.Timestamp.After(*best.Timestamp) {
			best = p
		}
	}
	return best
}

func classifyError(err error) *FetchError {
	fe := &FetchError{Message: "get metric statistics failed", Cause: err}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		fe.Code = apiErr.ErrorCode()
	}
	if errors.Is(err, context.DeadlineExceeded) {
		fe.Message = "get metric statistics timed out"
	}
	return fe
}
