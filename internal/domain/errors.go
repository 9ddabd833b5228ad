package domain

import "errors"

// Domain errors.
var (
	// ErrToolNotFound is returned when a required external tool is not on PATH.
	ErrToolNotFound = errors.New("external tool not found")

	// ErrMalformedOutput is returned when a tool prints output that cannot be parsed.
	ErrMalformedOutput = errors.New("malformed tool output")

	// ErrUnknownSelection is returned when a Selection value has an unexpected type.
	ErrUnknownSelection = errors.New("unknown selection")
)

// ToolError wraps an error with the external tool and operation it came from.
type ToolError struct {
	Tool string
	Op   string
	Err  error
}

func (e *ToolError) Error() string {
	if e.Tool != "" {
		return e.Op + " [" + e.Tool + "]: " + e.Err.Error()
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *ToolError) Unwrap() error {
	return e.Err
}

// NewToolError creates a new ToolError.
func NewToolError(tool, op string, err error) *ToolError {
	return &ToolError{
		Tool: tool,
		Op:   op,
		Err:  err,
	}
}
