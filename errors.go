package mcpchat

import (
	"errors"
	"fmt"
)

// ErrorCategory classifies chat API errors by how they should be handled.
type ErrorCategory string

const (
	// ErrorTransient indicates the error is temporary and a later attempt may succeed.
	// Examples: rate limits, temporary network issues, server overload.
	ErrorTransient ErrorCategory = "transient"

	// ErrorPermanent indicates the error is not recoverable by retrying.
	// Examples: invalid API key, insufficient permissions, model not found.
	ErrorPermanent ErrorCategory = "permanent"

	// ErrorUserInput indicates the request itself was invalid.
	// Examples: malformed request, invalid parameters.
	ErrorUserInput ErrorCategory = "user_input"
)

// BackendUnreachableError indicates the tool backend process could not be
// spawned, failed its handshake, or dropped the connection.
type BackendUnreachableError struct {
	// Target is the launch target or address of the backend.
	Target string
	Err    error
}

func (e *BackendUnreachableError) Error() string {
	return fmt.Sprintf("tool backend unreachable (%s): %v", e.Target, e.Err)
}

func (e *BackendUnreachableError) Unwrap() error { return e.Err }

// BackendProtocolError indicates the tool backend returned a response that
// does not match the expected shape during session setup or tool listing.
type BackendProtocolError struct {
	// Op names the protocol operation that failed, e.g. "list tools".
	Op  string
	Err error
}

func (e *BackendProtocolError) Error() string {
	return fmt.Sprintf("tool backend protocol error during %s: %v", e.Op, e.Err)
}

func (e *BackendProtocolError) Unwrap() error { return e.Err }

// ToolExecutionError indicates a specific tool invocation failed on the
// backend side.
type ToolExecutionError struct {
	// Name is the name of the tool that failed.
	Name string
	Err  error
}

func (e *ToolExecutionError) Error() string {
	return fmt.Sprintf("tool %q execution failed: %v", e.Name, e.Err)
}

func (e *ToolExecutionError) Unwrap() error { return e.Err }

// MalformedToolArgumentsError indicates the model emitted tool-call
// arguments that cannot be parsed as JSON.
type MalformedToolArgumentsError struct {
	// Name is the tool the arguments were intended for.
	Name string
	// Arguments is the raw argument payload as emitted by the model.
	Arguments string
	Err       error
}

func (e *MalformedToolArgumentsError) Error() string {
	return fmt.Sprintf("malformed arguments for tool %q: %v", e.Name, e.Err)
}

func (e *MalformedToolArgumentsError) Unwrap() error { return e.Err }

// ChatAPIError indicates a chat completion request failed. It carries the
// HTTP status code when one is available and a category describing how the
// failure should be handled.
type ChatAPIError struct {
	Msg  string
	Cat  ErrorCategory
	Code int // HTTP status code, 0 if not applicable
	Err  error
}

func (e *ChatAPIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *ChatAPIError) Unwrap() error { return e.Err }

// Category returns the error category.
func (e *ChatAPIError) Category() ErrorCategory { return e.Cat }

// Retryable returns true if the error is transient.
func (e *ChatAPIError) Retryable() bool { return e.Cat == ErrorTransient }

// StatusCode returns the HTTP status code, or 0 if not applicable.
func (e *ChatAPIError) StatusCode() int { return e.Code }

// NewChatAPIError creates a ChatAPIError with the category derived from the
// HTTP status code.
func NewChatAPIError(msg string, code int, cause error) *ChatAPIError {
	return &ChatAPIError{
		Msg:  msg,
		Cat:  CategorizeStatusCode(code),
		Code: code,
		Err:  cause,
	}
}

// CategorizeStatusCode determines the error category from an HTTP status code.
func CategorizeStatusCode(code int) ErrorCategory {
	switch {
	case code == 429:
		return ErrorTransient // rate limited
	case code >= 500 && code < 600:
		return ErrorTransient // server error
	case code == 401 || code == 403:
		return ErrorPermanent // authentication/authorization
	case code == 400 || code == 404 || code == 422:
		return ErrorUserInput // bad request or not found
	default:
		return ErrorPermanent
	}
}

// IsBackendUnreachable reports whether err or any wrapped error is a
// BackendUnreachableError.
func IsBackendUnreachable(err error) bool {
	var target *BackendUnreachableError
	return errors.As(err, &target)
}

// IsTransient reports whether err is a chat API error categorized as
// transient.
func IsTransient(err error) bool {
	var apiErr *ChatAPIError
	return errors.As(err, &apiErr) && apiErr.Cat == ErrorTransient
}

// StatusCodeOf returns the HTTP status code from a chat API error, or 0.
func StatusCodeOf(err error) int {
	var apiErr *ChatAPIError
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return 0
}
