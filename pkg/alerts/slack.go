package alerts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ogulcanaydogan/aws-billing-notifier/pkg/model"
)

const (
	defaultSlackTimeout = 10 * time.Second
	maxErrorBody        = 512
)

// SlackNotifier posts messages to a Slack incoming webhook.
type SlackNotifier struct {
	webhookURL string
	channel    string
	client     *http.Client
}

// NewSlackNotifier creates a Slack webhook notifier. A zero timeout uses
// the 10 second default.
func NewSlackNotifier(webhookURL, channel string, timeout time.Duration) *SlackNotifier {
	if timeout <= 0 {
		timeout = defaultSlackTimeout
	}
	return &SlackNotifier{
		webhookURL: webhookURL,
		channel:    channel,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

func (s *SlackNotifier) Name() string { return "slack" }

func (s *SlackNotifier) Send(ctx context.Context, msg model.FormattedMessage) (*model.NotificationResult, error) {
	payload := slackPayload{
		Channel: s.channel,
		Attachments: []slackAttachment{
			{Text: msg.Text, Color: string(msg.Color)},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal slack payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(body))
	if err != nil {
		return nil, &NotificationError{Notifier: s.Name(), Cause: fmt.Errorf("create slack request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &NotificationError{Notifier: s.Name(), Cause: fmt.Errorf("send slack message: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &NotificationError{
			Notifier:   s.Name(),
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(snippet)),
		}
	}

	return &model.NotificationResult{
		Message: fmt.Sprintf("message sent to %s channel %s", s.webhookURL, s.channel),
	}, nil
}

type slackPayload struct {
	Channel     string            `json:"channel"`
	Attachments []slackAttachment `json:"attachments"`
}

type slackAttachment struct {
	Text  string `json:"text"`
	Color string `json:"color"`
}
