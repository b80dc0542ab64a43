package model

import "time"

// MetricDatapoint is a single aggregated estimated-charges sample.
type MetricDatapoint struct {
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Maximum   float64   `json:"maximum" yaml:"maximum"`
}

// Color is the Slack attachment color for a message.
type Color string

const (
	ColorGood    Color = "good"    // green
	ColorWarning Color = "warning" // yellow
	ColorDanger  Color = "#ff0000" // red
)

// FormattedMessage is the rendered notification text and its severity color.
type FormattedMessage struct {
	Text  string `json:"text" yaml:"text"`
	Color Color  `json:"color" yaml:"color"`
}

// NotificationResult is returned to the caller of an invocation.
type NotificationResult struct {
	Message string `json:"message" yaml:"message"`
}

// Window is a half-open [Start, End) query range.
type Window struct {
	Start time.Time `json:"start" yaml:"start"`
	End   time.Time `json:"end" yaml:"end"`
}

// PreviousDay returns the full UTC calendar day before now.
func PreviousDay(now time.Time) Window {
	now = now.UTC()
	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return Window{
		Start: end.Add(-24 * time.Hour),
		End:   end,
	}
}
