package backend

import (
	"errors"
	"fmt"
	"strings"
)

// BackendError normalizes every failure of the backend client. Callers
// never see transport-level errors; they see one of these with a
// human-readable message.
type BackendError struct {
	Type       string // client_error, server_error, network_error, parse_error
	StatusCode int    // HTTP status when one was received, 0 otherwise
	Message    string // Human-readable error message
	Err        error  // Underlying error
}

func (e *BackendError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("backend error (%s, status %d): %s", e.Type, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("backend error (%s): %s", e.Type, e.Message)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

// IsClientError reports whether the error is a terminal 4xx failure
func IsClientError(err error) bool {
	var backendErr *BackendError
	if errors.As(err, &backendErr) {
		return backendErr.StatusCode >= 400 && backendErr.StatusCode < 500
	}
	return false
}

// IsNotFound reports whether the error is a 404-shaped failure. The
// backend is not consistent about status codes, so the message is
// inspected as a fallback.
func IsNotFound(err error) bool {
	var backendErr *BackendError
	if errors.As(err, &backendErr) {
		if backendErr.StatusCode == 404 {
			return true
		}
		return strings.Contains(strings.ToLower(backendErr.Message), "not found")
	}
	return false
}
