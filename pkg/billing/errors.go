package billing

import (
	"errors"
	"fmt"
)

// ErrNoData is returned when CloudWatch has no datapoints for the window.
var ErrNoData = errors.New("no data available")

// FetchError is returned for every failure to obtain the estimated charge.
type FetchError struct {
	// Code is the AWS error code, when the SDK reported one.
	Code    string
	Message string
	Cause   error
}

func (e *FetchError) Error() string {
	msg := "fetch estimated charges: " + e.Message
	if e.Code != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Code)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *FetchError) Unwrap() error {
	return e.Cause
}
