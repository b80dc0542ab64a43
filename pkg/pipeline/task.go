package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ogulcanaydogan/aws-billing-notifier/pkg/alerts"
	"github.com/ogulcanaydogan/aws-billing-notifier/pkg/model"
)

// Fetcher retrieves the datapoint to report.
type Fetcher interface {
	Fetch(ctx context.Context) (*model.MetricDatapoint, error)
}

// Formatter renders a datapoint into a message.
type Formatter interface {
	Format(dp model.MetricDatapoint) model.FormattedMessage
}

// ErrNoNotifier is returned by Run when the task was built without a notifier.
var ErrNoNotifier = errors.New("no notifier configured")

// Task runs the fetch, format, and notify stages for one invocation.
type Task struct {
	fetcher   Fetcher
	formatter Formatter
	notifier  alerts.Notifier
	timeout   time.Duration
	logger    *slog.Logger
}

// NewTask creates a task. A zero timeout leaves deadlines to the caller's context.
func NewTask(fetcher Fetcher, formatter Formatter, notifier alerts.Notifier, timeout time.Duration, logger *slog.Logger) *Task {
	return &Task{
		fetcher:   fetcher,
		formatter: formatter,
		notifier:  notifier,
		timeout:   timeout,
		logger:    logger,
	}
}

// Run fetches yesterday's estimated charge, formats it, and posts it.
// Any stage failure aborts the remaining stages.
func (t *Task) Run(ctx context.Context) (*model.NotificationResult, error) {
	if t.notifier == nil {
		return nil, ErrNoNotifier
	}

	ctx, cancel := t.withTimeout(ctx)
	defer cancel()

	logger := t.logger.With("invocation_id", uuid.New().String())
	start := time.Now()

	_, msg, err := t.build(ctx, logger)
	if err != nil {
		return nil, err
	}

	result, err := t.notifier.Send(ctx, *msg)
	if err != nil {
		logger.Error("notification failed", "notifier", t.notifier.Name(), "error", err)
		return nil, fmt.Errorf("notify: %w", err)
	}

	logger.Info("notification sent",
		"notifier", t.notifier.Name(),
		"color", string(msg.Color),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return result, nil
}

// Preview runs the fetch and format stages without notifying anyone.
func (t *Task) Preview(ctx context.Context) (*model.MetricDatapoint, *model.FormattedMessage, error) {
	ctx, cancel := t.withTimeout(ctx)
	defer cancel()

	return t.build(ctx, t.logger.With("invocation_id", uuid.New().String(), "preview", true))
}

func (t *Task) build(ctx context.Context, logger *slog.Logger) (*model.MetricDatapoint, *model.FormattedMessage, error) {
	dp, err := t.fetcher.Fetch(ctx)
	if err != nil {
		logger.Error("fetch estimated charges failed", "error", err)
		return nil, nil, fmt.Errorf("fetch: %w", err)
	}

	msg := t.formatter.Format(*dp)
	logger.Debug("message formatted", "text", msg.Text, "color", string(msg.Color))

	return dp, &msg, nil
}

func (t *Task) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if t.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, t.timeout)
}
