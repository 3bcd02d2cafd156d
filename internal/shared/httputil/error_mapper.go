package httputil

import (
	"context"
	"errors"
	"net/http"
)

// HTTPErrorInfo is the status and public message an error maps to.
type HTTPErrorInfo struct {
	Status  int
	Message string
}

// ClientError reports whether the status is a 4xx.
func (i HTTPErrorInfo) ClientError() bool {
	return i.Status >= 400 && i.Status < 500
}

type errorMapping struct {
	target  error
	status  int
	message string
}

// ErrorMapper maps sentinel errors to HTTP statuses. Mappings are checked with errors.Is in
// registration order, so a wrapped error matches the first sentinel it carries.
type ErrorMapper struct {
	mappings       []errorMapping
	defaultStatus  int
	defaultMessage string
}

func NewErrorMapper() *ErrorMapper {
	return &ErrorMapper{
		defaultStatus:  http.StatusInternalServerError,
		defaultMessage: "internal server error",
	}
}

func (m *ErrorMapper) WithMapping(err error, status int, message string) *ErrorMapper {
	m.mappings = append(m.mappings, errorMapping{target: err, status: status, message: message})
	return m
}

func (m *ErrorMapper) WithDefault(status int, message string) *ErrorMapper {
	m.defaultStatus = status
	m.defaultMessage = message
	return m
}

// Map converts err. Context deadline and cancellation take precedence over registered mappings.
func (m *ErrorMapper) Map(err error) HTTPErrorInfo {
	if err == nil {
		return HTTPErrorInfo{Status: http.StatusOK}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return HTTPErrorInfo{Status: http.StatusGatewayTimeout, Message: "request timeout"}
	}
	if errors.Is(err, context.Canceled) {
		return HTTPErrorInfo{Status: http.StatusServiceUnavailable, Message: "request cancelled"}
	}
	for _, mapping := range m.mappings {
		if errors.Is(err, mapping.target) {
			return HTTPErrorInfo{Status: mapping.status, Message: mapping.message}
		}
	}
	return HTTPErrorInfo{Status: m.defaultStatus, Message: m.defaultMessage}
}
