package cli

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ogulcanaydogan/aws-billing-notifier/internal/config"
	"github.com/ogulcanaydogan/aws-billing-notifier/pkg/model"
)

func samplePreview() preview {
	return preview{
		Window: model.PreviousDay(time.Date(2024, 3, 16, 9, 0, 0, 0, time.UTC)),
		Datapoint: model.MetricDatapoint{
			Timestamp: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
			Maximum:   0.42,
		},
		Message: model.FormattedMessage{
			Text:  "2024年03月15日までのAWSの料金は、$0.42です。",
			Color: model.ColorGood,
		},
	}
}

func TestWritePreview_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writePreview(&buf, "text", samplePreview()))

	out := buf.String()
	assert.Contains(t, out, "2024-03-15 00:00 to 2024-03-16 00:00")
	assert.Contains(t, out, "$0.42")
	assert.Contains(t, out, "good")
	assert.Contains(t, out, "2024年03月15日")
}

func TestWritePreview_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writePreview(&buf, "json", samplePreview()))

	var got preview
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, model.ColorGood, got.Message.Color)
	assert.InDelta(t, 0.42, got.Datapoint.Maximum, 1e-9)
}

func TestWritePreview_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writePreview(&buf, "yaml", samplePreview()))

	var got map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	msg, ok := got["message"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "good", msg["color"])
}

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "billing-notifier version dev\n", buf.String())
}

func TestRunCommand_MissingConfig(t *testing.T) {
	t.Setenv("SLACK_POST_URL", "")
	t.Setenv("SLACK_CHANNEL", "#aws-billing")
	t.Setenv("HOME", t.TempDir())

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs([]string{"run"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrMissing)
	assert.Empty(t, out.String())
}

func TestPreviewCommand_UnknownOutput(t *testing.T) {
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"preview", "--output", "xml"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		_ = previewCmd.Flags().Set("output", "text")
	})

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}
