package domain

import (
	"errors"
	"strings"
)

// Severity of an alert shown to the user.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

const (
	// DefaultPayloadSize is the presentation hint used by every payload built here.
	DefaultPayloadSize = "small"
	// GenericTechnicalError is shown when a failure carries no usable message.
	GenericTechnicalError = "Erreur technique"
	// OperationDoneTitle titles success alerts and form confirmations.
	OperationDoneTitle = "Opération effectuée"
)

type Alert struct {
	Severity Severity `json:"severity"`
	Title    string   `json:"title,omitempty"`
	Message  string   `json:"message"`
}

// NotificationPayload is the uniform message structure handed to the alert display.
type NotificationPayload struct {
	Alerts []Alert `json:"alerts"`
	Header string  `json:"header,omitempty"`
	Size   string  `json:"size,omitempty"`
}

func NewNotificationPayload(alerts ...Alert) NotificationPayload {
	return NotificationPayload{Alerts: append([]Alert{}, alerts...), Size: DefaultPayloadSize}
}

// SuccessNotification wraps a single success alert.
func SuccessNotification(title, message string) NotificationPayload {
	return NewNotificationPayload(Alert{Severity: SeveritySuccess, Title: title, Message: message})
}

// FailureNotification normalizes a failed operation. A non-empty field error list yields one
// alert per entry under the top-level message as header; anything else yields a single alert.
func FailureNotification(err error) NotificationPayload {
	payload := NewNotificationPayload()
	var opErr *OperationError
	if errors.As(err, &opErr) {
		if fieldErrors := opErr.FieldErrors(); len(fieldErrors) > 0 {
			payload.Header = strings.TrimSpace(opErr.Body.Message)
			for _, item := range fieldErrors {
				payload.Alerts = append(payload.Alerts, Alert{Severity: SeverityError, Message: item.Message})
			}
			return payload
		}
	}
	payload.Alerts = append(payload.Alerts, Alert{Severity: SeverityError, Message: FailureMessage(err)})
	return payload
}

// FailureMessage picks the top-level message, then the status text, then the generic string.
func FailureMessage(err error) string {
	var opErr *OperationError
	if errors.As(err, &opErr) {
		if message := strings.TrimSpace(opErr.Body.Message); message != "" {
			return message
		}
		if status := strings.TrimSpace(opErr.StatusText); status != "" {
			return status
		}
	}
	return GenericTechnicalError
}
