package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ogulcanaydogan/aws-billing-notifier/internal/app"
	"github.com/ogulcanaydogan/aws-billing-notifier/internal/config"
)

// Version is set at build time via ldflags.
var Version = "dev"

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "billing-notifier",
	Short: "Post yesterday's estimated AWS charges to Slack",
	Long: `billing-notifier reads the previous day's maximum AWS/Billing EstimatedCharges
metric from CloudWatch and posts it to a Slack channel through an incoming webhook.
The same task runs as an AWS Lambda function; this CLI runs it by hand.`,
	SilenceUsage: true,
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.billing-notifier/config.yaml)")
}

// loadConfig loads the configuration.
func loadConfig() (*config.Config, error) {
	return config.Load(cfgFile)
}

// newLogger creates a structured logger from config.
func newLogger(cfg *config.Config) *slog.Logger {
	return app.NewLogger(cfg, os.Stderr)
}
