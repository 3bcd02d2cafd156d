package domain

import (
	"errors"
	"strings"
)

// ErrUnknownComponent is returned when a component name is not declared in the catalog.
var ErrUnknownComponent = errors.New("unknown component")

// ButtonDefinition configures an action button.
type ButtonDefinition struct {
	Name         string           `json:"name" yaml:"name"`
	Label        string           `json:"label,omitempty" yaml:"label,omitempty"`
	Title        string           `json:"title,omitempty" yaml:"title,omitempty"`
	Icon         string           `json:"icon,omitempty" yaml:"icon,omitempty"`
	IconPosition string           `json:"iconPosition,omitempty" yaml:"iconPosition,omitempty"`
	Size         string           `json:"size,omitempty" yaml:"size,omitempty"`
	Variant      string           `json:"variant,omitempty" yaml:"variant,omitempty"`
	Inactive     bool             `json:"inactive,omitempty" yaml:"inactive,omitempty"`
	Action       ActionDescriptor `json:"action" yaml:"action"`
}

// UploadDefinition configures a file upload control.
type UploadDefinition struct {
	Name        string         `json:"name" yaml:"name"`
	Label       string         `json:"label,omitempty" yaml:"label,omitempty"`
	Comment     string         `json:"comment,omitempty" yaml:"comment,omitempty"`
	Accept      string         `json:"accept,omitempty" yaml:"accept,omitempty"`
	ContentMeta map[string]any `json:"contentMeta,omitempty" yaml:"contentMeta,omitempty"`
	ShareMode   string         `json:"shareMode,omitempty" yaml:"shareMode,omitempty"`
	Disabled    bool           `json:"disabled,omitempty" yaml:"disabled,omitempty"`
	RefreshUser bool           `json:"refreshUser,omitempty" yaml:"refreshUser,omitempty"`
	DoRefresh   bool           `json:"doRefresh,omitempty" yaml:"doRefresh,omitempty"`
	DoNotify    bool           `json:"doNotify,omitempty" yaml:"doNotify,omitempty"`
	RecordIDs   []string       `json:"recordIds,omitempty" yaml:"recordIds,omitempty"`
}

// WithDefaults fills the share mode, comment and accept list when they are not configured.
func (d UploadDefinition) WithDefaults() UploadDefinition {
	if strings.TrimSpace(d.ShareMode) == "" {
		d.ShareMode = DefaultShareMode
	}
	if strings.TrimSpace(d.Comment) == "" {
		d.Comment = DefaultUploadComment
	}
	if strings.TrimSpace(d.Accept) == "" {
		d.Accept = DefaultAcceptedTypes
	}
	return d
}

// FormDefinition configures a record form.
type FormDefinition struct {
	Name                 string        `json:"name" yaml:"name"`
	Title                string        `json:"title,omitempty" yaml:"title,omitempty"`
	ObjectName           string        `json:"objectName" yaml:"objectName"`
	RelatedObjectName    string        `json:"relatedObjectName,omitempty" yaml:"relatedObjectName,omitempty"`
	RelatedRecordIDField string        `json:"relatedRecordIdField,omitempty" yaml:"relatedRecordIdField,omitempty"`
	Fields               []FieldConfig `json:"fields" yaml:"fields"`
	DefaultSize          int           `json:"defaultSize,omitempty" yaml:"defaultSize,omitempty"`
	ReadOnly             bool          `json:"readOnly,omitempty" yaml:"readOnly,omitempty"`
}

// UsesRelatedRecord reports whether the form edits a record looked up from the current one.
func (d FormDefinition) UsesRelatedRecord() bool {
	return strings.TrimSpace(d.RelatedRecordIDField) != ""
}

// FormObjectName is the object actually edited by the form.
func (d FormDefinition) FormObjectName() string {
	if d.UsesRelatedRecord() {
		return d.RelatedObjectName
	}
	return d.ObjectName
}

// RelatedFieldPath is the Object.Field path read to find the related record id.
func (d FormDefinition) RelatedFieldPath() string {
	return d.ObjectName + "." + strings.TrimSpace(d.RelatedRecordIDField)
}
