package extract

import "fmt"

// ServiceError represents a failed call to the LLM provider during document
// extraction. Extraction service errors also invalidate the session's cached
// spec; see the orchestrator.
type ServiceError struct {
	Message string
	Cause   error
}

func (e *ServiceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("extraction failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("extraction failed: %s", e.Message)
}

func (e *ServiceError) Unwrap() error {
	return e.Cause
}
