package domain

import "encoding/json"

// DispatchCommand is the payload of the websocket "dispatch" command and of the HTTP dispatch
// endpoints. Either Button names a catalog button or Action carries an ad-hoc descriptor.
type DispatchCommand struct {
	Button    string          `json:"button,omitempty"`
	Action    json.RawMessage `json:"action,omitempty"`
	Component string          `json:"component,omitempty"`
}

// FormSaveCommand carries the values submitted by a record form.
type FormSaveCommand struct {
	RecordID string         `json:"recordId"`
	Values   map[string]any `json:"values"`
}
