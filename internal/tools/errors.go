package tools

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrorKind classifies tool errors by failing stage
type ErrorKind int

const (
	// ErrValidation - missing/empty required fields, invalid bounds.
	// Reported before any I/O is attempted.
	ErrValidation ErrorKind = iota

	// ErrEncoding - unrecognized encoding name or undecodable content.
	// Reported before any read completes.
	ErrEncoding

	// ErrPattern - invalid regular expression.
	// Reported before any write.
	ErrPattern

	// ErrIO - file not found, permission denied, backup or write failure
	ErrIO

	// ErrSemantic - caller misused the tool (unknown tool, malformed arguments)
	ErrSemantic
)

// kindLabels are the stable identifiers surfaced in structured reports
var kindLabels = map[ErrorKind]string{
	ErrValidation: "validation",
	ErrEncoding:   "encoding",
	ErrPattern:    "pattern",
	ErrIO:         "io",
	ErrSemantic:   "semantic",
}

// ToolError is an error value carrying its failing stage and optional details
type ToolError struct {
	Kind    ErrorKind
	Message string
	Details map[string]any // Optional structured data for the caller
}

// Error implements the error interface
func (e *ToolError) Error() string {
	return e.Message
}

// KindLabel returns the stable string identifier for the error kind
func (e *ToolError) KindLabel() string {
	return kindLabels[e.Kind]
}

// ToJSON implements JSONError for structured failure reports
func (e *ToolError) ToJSON() map[string]any {
	result := map[string]any{
		"status":  "FAILED",
		"error":   e.KindLabel(),
		"message": e.Message,
	}
	for k, v := range e.Details {
		result[k] = v
	}
	return result
}

// ValidationErrorf creates a validation error (no I/O was attempted)
func ValidationErrorf(format string, args ...any) *ToolError {
	return &ToolError{Kind: ErrValidation, Message: fmt.Sprintf(format, args...)}
}

// EncodingErrorf creates an encoding error
func EncodingErrorf(format string, args ...any) *ToolError {
	return &ToolError{Kind: ErrEncoding, Message: fmt.Sprintf(format, args...)}
}

// PatternErrorf creates a pattern error carrying the regexp syntax complaint
func PatternErrorf(format string, args ...any) *ToolError {
	return &ToolError{Kind: ErrPattern, Message: fmt.Sprintf(format, args...)}
}

// IOErrorf creates an I/O error
func IOErrorf(format string, args ...any) *ToolError {
	return &ToolError{Kind: ErrIO, Message: fmt.Sprintf(format, args...)}
}

// SemanticErrorf creates a semantic error (caller misuse)
func SemanticErrorf(format string, args ...any) *ToolError {
	return &ToolError{Kind: ErrSemantic, Message: fmt.Sprintf(format, args...)}
}

// WithDetails attaches structured details and returns the same error
func (e *ToolError) WithDetails(details map[string]any) *ToolError {
	e.Details = details
	return e
}

// WrapAsIO wraps any error as an I/O error, preserving existing ToolErrors
func WrapAsIO(err error) *ToolError {
	if err == nil {
		return nil
	}
	var te *ToolError
	if errors.As(err, &te) {
		return te
	}
	return IOErrorf("%v", err)
}

// IsKind reports whether err is a ToolError of the given kind
func IsKind(err error, kind ErrorKind) bool {
	var te *ToolError
	if errors.As(err, &te) {
		return te.Kind == kind
	}
	return false
}

// JSONError is an interface for errors that can provide structured JSON output
type JSONError interface {
	error
	ToJSON() map[string]any
}

// FormatError returns JSON for errors implementing JSONError, plain text otherwise
func FormatError(err error) string {
	if jsonErr, ok := err.(JSONError); ok {
		jsonBytes, marshalErr := json.MarshalIndent(jsonErr.ToJSON(), "", "  ")
		if marshalErr == nil {
			return string(jsonBytes)
		}
	}
	return fmt.Sprintf("Error: %v", err)
}
