package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"dsfrGateway/internal/shared/normalization"
)

// ActionType enumerates the record mutations an action button can trigger.
type ActionType string

const (
	ActionCreate ActionType = "create"
	ActionUpdate ActionType = "update"
	ActionDelete ActionType = "delete"
)

// Valid reports whether the type maps to a store operation.
func (t ActionType) Valid() bool {
	switch t {
	case ActionCreate, ActionUpdate, ActionDelete:
		return true
	default:
		return false
	}
}

// ActionDescriptor declares one mutation and the side effect expected after it succeeds.
type ActionDescriptor struct {
	Type     ActionType     `json:"type"`
	Params   map[string]any `json:"params,omitempty"`
	Navigate bool           `json:"navigate,omitempty"`
	Reload   ReloadList     `json:"reload,omitempty"`
}

// ObjectName returns the object the params target. The legacy apiName key is accepted as an alias.
func (d ActionDescriptor) ObjectName() string {
	if d.Params == nil {
		return ""
	}
	if name := normalization.AsString(d.Params["objectName"]); name != "" {
		return name
	}
	return normalization.AsString(d.Params["apiName"])
}

// ReloadList holds record identifiers to refresh. It decodes both plain ids and {"recordId": id} entries.
type ReloadList []string

func (r *ReloadList) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*r = nil
		return nil
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("reload must be a list: %w", err)
	}
	ids := make(ReloadList, 0, len(raw))
	for _, item := range raw {
		var id string
		if err := json.Unmarshal(item, &id); err == nil {
			if trimmed := strings.TrimSpace(id); trimmed != "" {
				ids = append(ids, trimmed)
			}
			continue
		}
		var ref RecordRef
		if err := json.Unmarshal(item, &ref); err != nil {
			return fmt.Errorf("reload entry %s: %w", string(item), err)
		}
		if trimmed := strings.TrimSpace(ref.RecordID); trimmed != "" {
			ids = append(ids, trimmed)
		}
	}
	*r = ids
	return nil
}

// ParseActionDescriptor decodes a JSON action configuration string.
func ParseActionDescriptor(raw string) (ActionDescriptor, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ActionDescriptor{}, NewConfigurationError("action", ErrEmptyConfiguration)
	}
	var descriptor ActionDescriptor
	decoder := json.NewDecoder(strings.NewReader(trimmed))
	decoder.UseNumber()
	if err := decoder.Decode(&descriptor); err != nil {
		return ActionDescriptor{}, NewConfigurationError("action", err)
	}
	if err := descriptor.Validate(); err != nil {
		return ActionDescriptor{}, err
	}
	return descriptor, nil
}

// Validate checks the descriptor once, before any dispatch.
func (d ActionDescriptor) Validate() error {
	if !d.Type.Valid() {
		return NewConfigurationError("action.type", fmt.Errorf("%w: %q", ErrUnsupportedActionType, d.Type))
	}
	return nil
}
