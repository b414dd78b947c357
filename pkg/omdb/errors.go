package omdb

import (
	"fmt"
)

// ErrorKind classifies a failed metadata lookup.
type ErrorKind string

const (
	// ErrorKindTransient is a transport-level failure (connection refused,
	// DNS failure, timeout) worth retrying.
	ErrorKindTransient ErrorKind = "transient"
	// ErrorKindExhausted means every attempt failed with a transient error.
	ErrorKindExhausted ErrorKind = "exhausted"
	// ErrorKindHTTPStatus is a non-success HTTP status from the service.
	ErrorKindHTTPStatus ErrorKind = "http_status"
	// ErrorKindNotFound is an application-level "not found" in a successful
	// HTTP response.
	ErrorKindNotFound ErrorKind = "not_found"
	// ErrorKindUnexpected covers malformed payloads and everything else.
	ErrorKindUnexpected ErrorKind = "unexpected"
)

// Error is a classified metadata lookup failure. Exactly one Error (or a
// successful Record) comes out of every Fetch call; driver-level faults are
// never propagated unclassified.
type Error struct {
	Kind       ErrorKind
	Message    string
	StatusCode int   // set for ErrorKindHTTPStatus
	Attempts   int   // set for ErrorKindExhausted
	Cause      error // underlying error, if any
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrorKindHTTPStatus:
		return fmt.Sprintf("metadata lookup failed: HTTP %d", e.StatusCode)
	case ErrorKindExhausted:
		return fmt.Sprintf("metadata lookup failed after %d attempts", e.Attempts)
	default:
		if e.Cause != nil && e.Message == "" {
			return fmt.Sprintf("metadata lookup failed: %v", e.Cause)
		}
		return e.Message
	}
}

// Unwrap returns the underlying cause for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// IsRetryable implements the retry.RetryableError interface. Only transient
// transport failures are worth another attempt.
func (e *Error) IsRetryable() bool {
	return e.Kind == ErrorKindTransient
}

func newTransientError(cause error) *Error {
	return &Error{Kind: ErrorKindTransient, Cause: cause}
}

func newHTTPStatusError(statusCode int) *Error {
	return &Error{Kind: ErrorKindHTTPStatus, StatusCode: statusCode}
}

func newNotFoundError(message string) *Error {
	if message == "" {
		message = "Unknown Error"
	}
	return &Error{Kind: ErrorKindNotFound, Message: message}
}

func newUnexpectedError(message string, cause error) *Error {
	return &Error{Kind: ErrorKindUnexpected, Message: message, Cause: cause}
}
