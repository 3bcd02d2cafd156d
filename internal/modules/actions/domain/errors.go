package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedActionType is returned when a descriptor type is neither create, update nor delete.
	ErrUnsupportedActionType = errors.New("unsupported action type")
	// ErrInvalidConfiguration matches every ConfigurationError through errors.Is.
	ErrInvalidConfiguration = errors.New("invalid configuration")
	// ErrEmptyConfiguration flags a missing configuration value.
	ErrEmptyConfiguration = errors.New("empty configuration")
)

// ConfigurationError reports a malformed or absent component configuration.
type ConfigurationError struct {
	Source string
	Err    error
}

func NewConfigurationError(source string, err error) *ConfigurationError {
	return &ConfigurationError{Source: source, Err: err}
}

func (e *ConfigurationError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("invalid configuration: %v", e.Err)
	}
	return fmt.Sprintf("invalid configuration %s: %v", e.Source, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

func (e *ConfigurationError) Is(target error) bool { return target == ErrInvalidConfiguration }
