package config

import (
	"errors"
	"fmt"
)

var (
	// ErrMissing marks a required setting that was not provided.
	ErrMissing = errors.New("missing required setting")
	// ErrInvalid marks a setting whose value cannot be used.
	ErrInvalid = errors.New("invalid setting")
)

// Error describes a single configuration problem.
type Error struct {
	Key   string
	Env   string // environment variable to set, if any
	Kind  error  // ErrMissing or ErrInvalid
	Cause error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("config %s: %v", e.Key, e.Kind)
	if e.Env != "" {
		msg += fmt.Sprintf(" (set %s)", e.Env)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

func missing(key, env string) *Error {
	return &Error{Key: key, Env: env, Kind: ErrMissing}
}

func invalid(key string, cause error) *Error {
	return &Error{Key: key, Kind: ErrInvalid, Cause: cause}
}
