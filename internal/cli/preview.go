package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ogulcanaydogan/aws-billing-notifier/internal/app"
	"github.com/ogulcanaydogan/aws-billing-notifier/pkg/model"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Show the message that would be posted, without posting it",
	Long:  `Fetch yesterday's estimated charges and render the Slack message. Nothing is sent.`,
	Args:  cobra.NoArgs,
	RunE:  runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)
	previewCmd.Flags().StringP("output", "o", "text", "Output format (text, json, yaml)")
}

// preview is what the preview command prints.
type preview struct {
	Window    model.Window           `json:"window" yaml:"window"`
	Datapoint model.MetricDatapoint  `json:"datapoint" yaml:"datapoint"`
	Message   model.FormattedMessage `json:"message" yaml:"message"`
}

func runPreview(cmd *cobra.Command, _ []string) error {
	output, _ := cmd.Flags().GetString("output")
	if output != "text" && output != "json" && output != "yaml" {
		return fmt.Errorf("unknown output format %q (supported: text, json, yaml)", output)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	task, err := app.BuildPreview(cmd.Context(), cfg, newLogger(cfg))
	if err != nil {
		return err
	}

	window := model.PreviousDay(time.Now())
	dp, msg, err := task.Preview(cmd.Context())
	if err != nil {
		return err
	}

	p := preview{
		Window:    window,
		Datapoint: *dp,
		Message:   *msg,
	}
	return writePreview(cmd.OutOrStdout(), output, p)
}

func writePreview(w io.Writer, output string, p preview) error {
	switch output {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(p)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(p); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Window:\t%s to %s\n", p.Window.Start.Format("2006-01-02 15:04"), p.Window.End.Format("2006-01-02 15:04"))
	fmt.Fprintf(tw, "Datapoint:\t%s\n", p.Datapoint.Timestamp.Format("2006-01-02 15:04"))
	fmt.Fprintf(tw, "Maximum:\t$%.2f\n", p.Datapoint.Maximum)
	fmt.Fprintf(tw, "Color:\t%s\n", p.Message.Color)
	fmt.Fprintf(tw, "Text:\t%s\n", p.Message.Text)
	return tw.Flush()
}
