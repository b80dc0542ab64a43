// Package app wires configuration into a runnable notification task.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/ogulcanaydogan/aws-billing-notifier/internal/config"
	"github.com/ogulcanaydogan/aws-billing-notifier/pkg/alerts"
	"github.com/ogulcanaydogan/aws-billing-notifier/pkg/billing"
	"github.com/ogulcanaydogan/aws-billing-notifier/pkg/message"
	"github.com/ogulcanaydogan/aws-billing-notifier/pkg/pipeline"
)

// NewLogger creates a structured logger from config.
func NewLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(cfg.Logging.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	var handler slog.Handler
	if cfg.Logging.Format == "text" {
		handler = slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	}

	return slog.New(handler)
}

// Build validates cfg and returns a task that fetches, formats, and posts.
// Configuration errors are returned before any client is constructed.
func Build(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*pipeline.Task, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	fetcher, formatter, err := buildStages(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	notifier := alerts.NewSlackNotifier(cfg.Slack.PostURL, cfg.Slack.Channel, cfg.SlackTimeout())

	logger.Debug("task configured",
		"slack_channel", cfg.Slack.Channel,
		"aws_region", cfg.AWS.Region,
		"selection", cfg.Fetch.Selection,
		"locale", cfg.Message.Locale,
	)

	return pipeline.NewTask(fetcher, formatter, notifier, cfg.InvocationTimeout(), logger), nil
}

// BuildPreview returns a task without a notifier; only Preview may be called.
func BuildPreview(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*pipeline.Task, error) {
	if err := cfg.ValidatePreview(); err != nil {
		return nil, err
	}

	fetcher, formatter, err := buildStages(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	return pipeline.NewTask(fetcher, formatter, nil, cfg.InvocationTimeout(), logger), nil
}

// buildStages expects a validated config.
func buildStages(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*billing.Fetcher, *message.Formatter, error) {
	selection, _ := billing.ParseSelection(cfg.Fetch.Selection)
	locale, _ := message.LookupLocale(cfg.Message.Locale)

	client, err := billing.NewCloudWatchClient(ctx, billing.ClientConfig{
		Region:          cfg.AWS.Region,
		Endpoint:        cfg.AWS.Endpoint,
		AccessKeyID:     cfg.AWS.AccessKeyID,
		SecretAccessKey: cfg.AWS.SecretAccessKey,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("init cloudwatch client: %w", err)
	}

	fetcher := billing.NewFetcher(client, logger, billing.WithSelection(selection))
	return fetcher, message.NewFormatter(locale), nil
}
