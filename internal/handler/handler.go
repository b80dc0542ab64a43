package handler

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/aws/aws-lambda-go/lambdacontext"

	"github.com/ogulcanaydogan/aws-billing-notifier/pkg/model"
)

// Runner executes one notification.
type Runner interface {
	Run(ctx context.Context) (*model.NotificationResult, error)
}

// Handler adapts a Runner to the Lambda invocation contract.
type Handler struct {
	runner Runner
	logger *slog.Logger
}

// New creates a Lambda handler.
func New(r Runner, logger *slog.Logger) *Handler {
	return &Handler{runner: r, logger: logger}
}

// Handle ignores the scheduler event and runs the task. The returned result
// marshals to {"message": "..."}.
func (h *Handler) Handle(ctx context.Context, _ json.RawMessage) (*model.NotificationResult, error) {
	logger := h.logger
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		logger = logger.With("request_id", lc.AwsRequestID)
	}

	logger.Info("invocation started")

	result, err := h.runner.Run(ctx)
	if err != nil {
		logger.Error("invocation failed", "error", err)
		return nil, err
	}

	logger.Info("invocation finished", "result", result.Message)
	return result, nil
}
