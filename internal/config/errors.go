package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/autotype/internal/config/loader"
)

// Errors returned by configuration operations.
var (
	// ErrFileNotFound indicates the configuration file doesn't exist.
	ErrFileNotFound = errors.New("config file not found")

	// ErrValidationFailed indicates the configuration fails validation.
	ErrValidationFailed = errors.New("validation failed")

	// ErrInvalidMode indicates an unknown render mode.
	ErrInvalidMode = errors.New("invalid render mode")

	// ErrInvalidColor indicates a color that cannot be parsed.
	ErrInvalidColor = errors.New("invalid color")
)

// ParseError represents an error while parsing a configuration file.
type ParseError = loader.ParseError

// ValidationError describes a validation failure for a setting.
type ValidationError struct {
	// Path is the setting path that failed validation.
	Path string
	// Message describes the validation error.
	Message string
	// Value is the invalid value.
	Value any
	// Code categorizes the validation error.
	Code ValidationErrorCode
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (value: %v)", e.Path, e.Message, e.Value)
}

// Is matches ErrValidationFailed and the sentinel for the error code.
func (e *ValidationError) Is(target error) bool {
	switch target {
	case ErrValidationFailed:
		return true
	case ErrInvalidMode:
		return e.Code == ErrCodeInvalidEnum
	case ErrInvalidColor:
		return e.Code == ErrCodePatternMismatch
	}
	return false
}

// ValidationErrorCode categorizes validation errors.
type ValidationErrorCode uint8

const (
	// ErrCodeTypeMismatch indicates the value type is wrong.
	ErrCodeTypeMismatch ValidationErrorCode = iota
	// ErrCodeOutOfRange indicates a numeric value is out of range.
	ErrCodeOutOfRange
	// ErrCodeInvalidEnum indicates the value is not in the allowed enum.
	ErrCodeInvalidEnum
	// ErrCodePatternMismatch indicates the value doesn't match the required pattern.
	ErrCodePatternMismatch
)

// String returns a human-readable name for the error code.
func (c ValidationErrorCode) String() string {
	switch c {
	case ErrCodeTypeMismatch:
		return "type_mismatch"
	case ErrCodeOutOfRange:
		return "out_of_range"
	case ErrCodeInvalidEnum:
		return "invalid_enum"
	case ErrCodePatternMismatch:
		return "pattern_mismatch"
	default:
		return "unknown"
	}
}

// ValidationErrors collects every failure found in one pass.
type ValidationErrors []*ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// Unwrap exposes the individual failures to errors.Is and errors.As.
func (e ValidationErrors) Unwrap() []error {
	errs := make([]error, len(e))
	for i, err := range e {
		errs[i] = err
	}
	return errs
}
