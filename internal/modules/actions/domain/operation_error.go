package domain

import (
	"fmt"
	"strings"
)

// FieldError is one entry of the structured error list returned by the platform.
type FieldError struct {
	Message   string `json:"message"`
	ErrorCode string `json:"errorCode,omitempty"`
	Field     string `json:"field,omitempty"`
}

// ErrorOutput carries field level errors.
type ErrorOutput struct {
	Errors []FieldError `json:"errors"`
}

// ErrorBody mirrors the error document of a failed platform call.
type ErrorBody struct {
	Message string       `json:"message"`
	Output  *ErrorOutput `json:"output,omitempty"`
}

// OperationError is a platform call that completed with a non-success status.
type OperationError struct {
	StatusCode int
	StatusText string
	Body       ErrorBody
}

func (e *OperationError) Error() string {
	message := strings.TrimSpace(e.Body.Message)
	if message == "" {
		message = strings.TrimSpace(e.StatusText)
	}
	if message == "" {
		return fmt.Sprintf("platform operation failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("platform operation failed with status %d: %s", e.StatusCode, message)
}

// FieldErrors returns the structured error list, nil when the platform sent none.
func (e *OperationError) FieldErrors() []FieldError {
	if e == nil || e.Body.Output == nil {
		return nil
	}
	return e.Body.Output.Errors
}
