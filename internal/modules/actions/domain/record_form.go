package domain

import (
	"fmt"
	"strings"
)

// DefaultFieldSize is the grid width given to fields without an explicit size.
const DefaultFieldSize = 6

// FormState tracks the explicit mount lifecycle of a record form.
type FormState string

const (
	FormPending FormState = "pending"
	FormLoaded  FormState = "loaded"
	FormFailed  FormState = "failed"
)

// FieldConfig describes one field displayed by a record form.
type FieldConfig struct {
	Name     string `json:"name" yaml:"name"`
	Label    string `json:"label,omitempty" yaml:"label,omitempty"`
	Help     string `json:"help,omitempty" yaml:"help,omitempty"`
	HideHelp bool   `json:"hideHelp,omitempty" yaml:"hideHelp,omitempty"`
	Size     int    `json:"size,omitempty" yaml:"size,omitempty"`
	Required bool   `json:"required,omitempty" yaml:"required,omitempty"`
	ReadOnly bool   `json:"readOnly,omitempty" yaml:"readOnly,omitempty"`
}

// FieldInfo is the platform metadata of an object field.
type FieldInfo struct {
	Label          string `json:"label"`
	InlineHelpText string `json:"inlineHelpText,omitempty"`
}

// FormMessage is the inline status block shown by the form.
type FormMessage struct {
	Type    Severity `json:"type"`
	Title   string   `json:"title"`
	Details string   `json:"details"`
}

var (
	FormSavedMessage = FormMessage{
		Type:    SeverityInfo,
		Title:   OperationDoneTitle,
		Details: "Vos changements ont bien été sauvegardés.",
	}
	FormSaveFailedMessage = FormMessage{
		Type:    SeverityError,
		Title:   "Echec de l'opération",
		Details: "La sauvegarde de vos modifications n'a pas pu être réalisée.",
	}
)

// ApplyFieldDefaults returns a copy of the fields with missing sizes set and names checked.
func ApplyFieldDefaults(fields []FieldConfig, defaultSize int) ([]FieldConfig, error) {
	if defaultSize <= 0 {
		defaultSize = DefaultFieldSize
	}
	result := make([]FieldConfig, 0, len(fields))
	for i, field := range fields {
		field.Name = strings.TrimSpace(field.Name)
		if field.Name == "" {
			return nil, NewConfigurationError(fmt.Sprintf("fields[%d].name", i), ErrEmptyConfiguration)
		}
		if field.Size <= 0 {
			field.Size = defaultSize
		}
		result = append(result, field)
	}
	return result, nil
}

// ApplyFieldInfo fills missing labels and help texts from platform metadata.
func ApplyFieldInfo(fields []FieldConfig, infos map[string]FieldInfo) []FieldConfig {
	result := make([]FieldConfig, len(fields))
	copy(result, fields)
	for i := range result {
		info, ok := infos[result[i].Name]
		if !ok {
			continue
		}
		if result[i].Label == "" {
			result[i].Label = info.Label
		}
		if !result[i].HideHelp && result[i].Help == "" && info.InlineHelpText != "" {
			result[i].Help = info.InlineHelpText
		}
	}
	return result
}
