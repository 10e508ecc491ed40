package planner

import "fmt"

// ExtractionError means raw model text could not be reduced to a JSON object.
type ExtractionError struct {
	Reason string
	Err    error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("extraction: %s: %v", e.Reason, e.Err)
	}
	return "extraction: " + e.Reason
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// ValidationError names the first top-level field that failed the check.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: field %q %s", e.Field, e.Reason)
}

// ExternalCallError wraps a failure of the generation provider itself.
type ExternalCallError struct {
	Provider string
	Err      error
}

func (e *ExternalCallError) Error() string {
	return fmt.Sprintf("external call to %s failed: %v", e.Provider, e.Err)
}

func (e *ExternalCallError) Unwrap() error { return e.Err }
