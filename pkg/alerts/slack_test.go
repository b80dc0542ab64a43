package alerts_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ogulcanaydogan/aws-billing-notifier/pkg/alerts"
	"github.com/ogulcanaydogan/aws-billing-notifier/pkg/model"
)

func TestSlackNotifier_Name(t *testing.T) {
	n := alerts.NewSlackNotifier("https://hooks.slack.com/test", "#test", 0)
	assert.Equal(t, "slack", n.Name())
}

func TestSlackNotifier_Send(t *testing.T) {
	var received map[string]any
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, http.MethodPost, r.Method)

		err := json.NewDecoder(r.Body).Decode(&received)
		require.NoError(t, err)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	n := alerts.NewSlackNotifier(server.URL, "#aws-billing", time.Second)

	result, err := n.Send(context.Background(), model.FormattedMessage{
		Text:  "2024年03月15日までのAWSの料金は、$0.42です。",
		Color: model.ColorGood,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Contains(t, result.Message, server.URL)
	assert.Contains(t, result.Message, "#aws-billing")

	assert.Equal(t, "#aws-billing", received["channel"])
	attachments, ok := received["attachments"].([]any)
	require.True(t, ok)
	require.Len(t, attachments, 1)
	attachment := attachments[0].(map[string]any)
	assert.Equal(t, "2024年03月15日までのAWSの料金は、$0.42です。", attachment["text"])
	assert.Equal(t, "good", attachment["color"])
	assert.Len(t, attachment, 2)
}

func TestSlackNotifier_Send_DangerColor(t *testing.T) {
	var received struct {
		Attachments []struct {
			Color string `json:"color"`
		} `json:"attachments"`
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	n := alerts.NewSlackNotifier(server.URL, "#test", 0)
	_, err := n.Send(context.Background(), model.FormattedMessage{Text: "x", Color: model.ColorDanger})
	require.NoError(t, err)
	require.Len(t, received.Attachments, 1)
	assert.Equal(t, "#ff0000", received.Attachments[0].Color)
}

func TestSlackNotifier_Send_AcceptsAny2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	n := alerts.NewSlackNotifier(server.URL, "#test", 0)
	_, err := n.Send(context.Background(), model.FormattedMessage{Text: "x", Color: model.ColorGood})
	assert.NoError(t, err)
}

func TestSlackNotifier_Send_ServerError(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("internal_error\n"))
	}))
	defer server.Close()

	n := alerts.NewSlackNotifier(server.URL, "#test", 0)
	result, err := n.Send(context.Background(), model.FormattedMessage{Text: "x", Color: model.ColorWarning})
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Equal(t, 1, calls, "must not retry")
	assert.Contains(t, err.Error(), "status 500")
	assert.Contains(t, err.Error(), "internal_error")

	var ne *alerts.NotificationError
	require.ErrorAs(t, err, &ne)
	assert.Equal(t, http.StatusInternalServerError, ne.StatusCode)
	assert.Equal(t, "slack", ne.Notifier)
}

func TestSlackNotifier_Send_ClientError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	n := alerts.NewSlackNotifier(server.URL, "#test", 0)
	_, err := n.Send(context.Background(), model.FormattedMessage{Text: "x"})
	assert.EqualError(t, err, "slack returned status 404")
}

func TestSlackNotifier_Send_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	url := server.URL
	server.Close()

	n := alerts.NewSlackNotifier(url, "#test", time.Second)
	_, err := n.Send(context.Background(), model.FormattedMessage{Text: "x"})
	require.Error(t, err)

	var ne *alerts.NotificationError
	require.ErrorAs(t, err, &ne)
	assert.Zero(t, ne.StatusCode)
	assert.NotNil(t, ne.Cause)
}

func TestSlackNotifier_Send_ContextCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	n := alerts.NewSlackNotifier(server.URL, "#test", 0)
	_, err := n.Send(ctx, model.FormattedMessage{Text: "x"})
	assert.ErrorIs(t, err, context.Canceled)
}
