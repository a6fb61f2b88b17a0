package tools

import (
	"context"
	"encoding/json"
)

// Tool is the interface all patchtool commands must implement
type Tool interface {
	// Name returns the tool identifier (e.g., "Replace")
	Name() string

	// Description returns a human-readable description of the tool
	Description() string

	// JSONSchema returns the JSON schema for the tool's arguments
	JSONSchema() map[string]any

	// Check performs argument validation before execution.
	// Returns an error if the tool should not be executed. No I/O happens here.
	Check(ctx context.Context, args json.RawMessage) error

	// Call executes the tool with the given arguments.
	// Check should be called before Call.
	Call(ctx context.Context, args json.RawMessage) (any, error)

	// Category returns the category for grouping in listings.
	// Valid categories: "filesystem"
	Category() string

	// Order returns the sort order within the category (lower numbers first)
	Order() int
}
