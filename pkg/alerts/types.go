package alerts

import (
	"context"
	"fmt"

	"github.com/ogulcanaydogan/aws-billing-notifier/pkg/model"
)

// Notifier delivers a formatted message to an external system.
type Notifier interface {
	// Name returns the notifier identifier.
	Name() string

	// Send delivers the message exactly once. It does not retry.
	Send(ctx context.Context, msg model.FormattedMessage) (*model.NotificationResult, error)
}

// NotificationError is returned when a message could not be delivered.
type NotificationError struct {
	Notifier   string
	StatusCode int    // zero for transport failures
	Body       string // truncated response body, if any
	Cause      error
}

func (e *NotificationError) Error() string {
	switch {
	case e.Cause != nil:
		return fmt.Sprintf("%s notification failed: %v", e.Notifier, e.Cause)
	case e.Body != "":
		return fmt.Sprintf("%s returned status %d: %s", e.Notifier, e.StatusCode, e.Body)
	default:
		return fmt.Sprintf("%s returned status %d", e.Notifier, e.StatusCode)
	}
}

func (e *NotificationError) Unwrap() error {
	return e.Cause
}
