package apperrors

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRequest is returned before any network I/O when a request does not name a show.
	ErrInvalidRequest = errors.New("show id is required")

	// ErrSuperseded marks a load whose result was dropped because a newer load started.
	ErrSuperseded = errors.New("load superseded by a newer request")

	// ErrCancelled marks a load whose result was dropped because its owner lost interest.
	ErrCancelled = errors.New("load cancelled")
)

// ErrNotFound represents an error when a requested resource is not found.
type ErrNotFound struct {
	Resource string
	ID       interface{}
}

// Error implements the error interface.
func (e *ErrNotFound) Error() string {
	if e.ID != nil {
		return fmt.Sprintf("%s with ID %v not found", e.Resource, e.ID)
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// Is allows for error checking with errors.Is().
func (e *ErrNotFound) Is(target error) bool {
	_, ok := target.(*ErrNotFound)
	return ok
}

// NewNotFoundError creates a new ErrNotFound.
func NewNotFoundError(resource string, id interface{}) *ErrNotFound {
	return &ErrNotFound{
		Resource: resource,
		ID:       id,
	}
}

// NetworkError covers everything between issuing a request and receiving a
// 2xx response: connectivity failures, timeouts and non-2xx statuses.
type NetworkError struct {
	Op         string
	URL        string
	StatusCode int // zero when no response was received
	Err        error
}

// Error implements the error interface.
func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s: unexpected status %d: %v", e.Op, e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
}

// Unwrap returns the underlying cause.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Is allows for error checking with errors.Is().
func (e *NetworkError) Is(target error) bool {
	_, ok := target.(*NetworkError)
	return ok
}

// DecodeError reports a response body that does not have the expected shape.
type DecodeError struct {
	Field string
	Err   error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %q: %v", e.Field, e.Err)
}

// Unwrap returns the underlying cause.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Is allows for error checking with errors.Is().
func (e *DecodeError) Is(target error) bool {
	_, ok := target.(*DecodeError)
	return ok
}

// NewStatusError builds the NetworkError for a non-2xx response. A 404 also
// matches ErrNotFound for the given resource.
func NewStatusError(op, url string, statusCode int, resource string, id interface{}) *NetworkError {
	var cause error = errors.New(httpStatusText(statusCode))
	if statusCode == 404 {
		cause = NewNotFoundError(resource, id)
	}
	return &NetworkError{Op: op, URL: url, StatusCode: statusCode, Err: cause}
}

func httpStatusText(code int) string {
	switch {
	case code >= 500:
		return "server error"
	case code == 401 || code == 403:
		return "unauthorized"
	case code >= 400:
		return "client error"
	default:
		return "unexpected response"
	}
}
