package pipeline

import "fmt"

// ValidationError represents a submit rejected before any outbound call:
// the required image is missing or an upload could not be read. It never
// mutates session state.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error in %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}
