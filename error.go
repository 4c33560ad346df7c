package webfetch

import (
	"errors"
	"fmt"
)

// Error codes used across the application. They map failure classes to
// machine-readable values while Error.Message carries the human-readable
// detail reported back through the tool protocol.
const (
	EINVALID      = "invalid"              // malformed input
	EINTERNAL     = "internal"             // extraction or conversion failure
	EINSUFFICIENT = "insufficient_content" // lightweight fetch produced too little text
	ETIMEOUT      = "timeout"              // readiness wait exceeded its bound
	EUNAVAILABLE  = "unavailable"          // network, HTTP status, or browser launch failure
)

// Error represents an application error with a machine-readable code and a
// human-readable message.
type Error struct {
	// Code is one of the E* constants above.
	Code string

	// Message is a human-readable description safe to surface to callers.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("webfetch error: code=%s message=%s", e.Code, e.Message)
}

// Errorf is a helper for constructing an Error with formatting.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode returns the code of the error, if available.
// Returns an empty string for nil or non-application errors.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// ErrorMessage returns the human-readable message of the error.
// Non-application errors pass through their Error() text since every error
// in this system ends up in a caller-visible result slot.
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
