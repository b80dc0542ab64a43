package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ogulcanaydogan/aws-billing-notifier/internal/app"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fetch yesterday's estimated charges and post them to Slack",
	Long: `Run the notification task once, exactly as the Lambda function does.
SLACK_POST_URL and SLACK_CHANNEL must be set.`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	task, err := app.Build(cmd.Context(), cfg, newLogger(cfg))
	if err != nil {
		return err
	}

	result, err := task.Run(cmd.Context())
	if err != nil {
		return err
	}

	out, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
