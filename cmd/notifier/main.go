package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/ogulcanaydogan/aws-billing-notifier/internal/app"
	"github.com/ogulcanaydogan/aws-billing-notifier/internal/config"
	"github.com/ogulcanaydogan/aws-billing-notifier/internal/handler"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(os.Getenv("NOTIFIER_CONFIG"))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := app.NewLogger(cfg, os.Stderr)

	task, err := app.Build(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("startup failed", "error", err)
		return err
	}

	lambda.Start(handler.New(task, logger).Handle)
	return nil
}
