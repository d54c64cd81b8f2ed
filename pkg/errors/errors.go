package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInternalServer     = errors.New("internal server error")
	ErrBadRequest         = errors.New("bad request")
	ErrServiceUnavailable = errors.New("service unavailable")
)

// Kind tells where a request failed.
type Kind string

const (
	KindUnknown Kind = ""
	// KindServerResponse: the server answered with an error status or an unusable body.
	KindServerResponse Kind = "server_response"
	// KindNoResponse: the request was sent but no response arrived.
	KindNoResponse Kind = "no_response"
	// KindRequestSetup: the request could not be built or sent.
	KindRequestSetup Kind = "request_setup"
)

// Error represents a custom error type
type Error struct {
	Kind       Kind
	Code       string
	Message    string
	StatusCode int
	StatusText string
	Err        error
}

// Error returns the error message
func (e *Error) Error() string {
	msg := e.Message
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%d %s: %s", e.StatusCode, e.StatusText, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches server responses against the sentinel for their status code.
func (e *Error) Is(target error) bool {
	if e.Kind != KindServerResponse {
		return false
	}
	return sentinelForStatus(e.StatusCode) == target
}

func sentinelForStatus(code int) error {
	switch code {
	case http.StatusBadRequest:
		return ErrBadRequest
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusUnprocessableEntity:
		return ErrInvalidInput
	case http.StatusInternalServerError:
		return ErrInternalServer
	case http.StatusServiceUnavailable:
		return ErrServiceUnavailable
	}
	return nil
}

// New creates a new error with a message
func New(message string) error {
	return &Error{
		Message: message,
	}
}

// Wrap wraps an error with additional message
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{
		Message: message,
		Err:     err,
	}
}

// WrapWithCode wraps an error with a code and message
func WrapWithCode(err error, code, message string) error {
	if err == nil {
		return nil
	}
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// ServerResponse builds an error for a response with an error status.
// An empty message falls back to the status text.
func ServerResponse(statusCode int, code, message string) error {
	statusText := http.StatusText(statusCode)
	if message == "" {
		message = statusText
	}
	return &Error{
		Kind:       KindServerResponse,
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		StatusText: statusText,
	}
}

// NoResponse wraps a failure that happened after the request was sent.
func NoResponse(err error, message string) error {
	return &Error{
		Kind:    KindNoResponse,
		Code:    "no_response",
		Message: message,
		Err:     err,
	}
}

// RequestSetup wraps a failure that happened before the request was sent.
func RequestSetup(err error, message string) error {
	return &Error{
		Kind:    KindRequestSetup,
		Code:    "request_setup",
		Message: message,
		Err:     err,
	}
}

// GetKind returns the first failure kind in err's chain, skipping wrappers
// without one. Foreign errors are KindUnknown.
func GetKind(err error) Kind {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return KindUnknown
		}
		if e.Kind != KindUnknown {
			return e.Kind
		}
		err = e.Err
	}
	return KindUnknown
}

// GetCode returns the error code if it exists
func GetCode(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// GetMessage returns the error message
func GetMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsNotFound returns true if the error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsBadRequest returns true if the error is a bad request error
func IsBadRequest(err error) bool {
	return errors.Is(err, ErrBadRequest)
}

// IsServiceUnavailable returns true if the error is a service unavailable error
func IsServiceUnavailable(err error) bool {
	return errors.Is(err, ErrServiceUnavailable)
}
