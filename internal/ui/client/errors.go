package client

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrUnexpectedContentType is wrapped by DecodeError when a successful response has a non-empty body that is not JSON
	ErrUnexpectedContentType = errors.New("unexpected content type")

	ErrUnsupportedMethod = errors.New("unsupported http method")

	// ErrResponseTooLarge is wrapped by DecodeError when a response body, of any status, exceeds the size limit
	ErrResponseTooLarge = errors.New("response body too large")
)

// APIError is returned when the petly API answers with a non-2xx status.
//
// Message is the "message" field of the response body when the body is a JSON object that has one,
// otherwise the localized generic fallback. Details holds the raw JSON body, or nil when the body was not JSON.
type APIError struct {
	Status  int
	Message string
	Details json.RawMessage
}

func (e *APIError) Error() string {
	return fmt.Sprintf("petly api status %d: %s", e.Status, e.Message)
}

// UserError returns the user-friendly message
func (e *APIError) UserError() string {
	return e.Message
}

// ConnectionError is returned when no HTTP response was received (DNS failure, refused connection, timeout, cancelled context)
type ConnectionError struct {
	Method  string
	Path    string
	Err     error
	message string
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("network error calling %s %s: %v", e.Method, e.Path, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

func (e *ConnectionError) UserError() string {
	return e.message
}

// DecodeError is returned when a 2xx response body can't be used (wrong content type, malformed JSON or a schema violation)
// and when a response body of any status is over the size limit
type DecodeError struct {
	Status      int
	ContentType string
	Err         error
	message     string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("could not decode response (status %d, content type %q): %v", e.Status, e.ContentType, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func (e *DecodeError) UserError() string {
	return e.message
}

// InternalError covers failures before the request is sent, supply the error and an explanation of what was being done when it occurred
type InternalError struct {
	Err     error
	While   string
	message string
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("internal error: %v while %v", e.Err, e.While)
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

func (e *InternalError) UserError() string {
	return e.message
}

// UserMessage returns the message to show the end user for err.
// Any error in the chain with a non-empty UserError() is used, otherwise fallback is returned.
func UserMessage(err error, fallback string) string {
	var userErr interface{ UserError() string }
	if errors.As(err, &userErr) {
		if msg := userErr.UserError(); msg != "" {
			return msg
		}
	}
	return fallback
}

// Status returns the HTTP status of an APIError in the chain, or 0 when no response was received
func Status(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}
