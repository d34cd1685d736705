package audit

import "fmt"

// ServiceError represents a failed call to the LLM provider during image
// QA. No verdict is produced when the call fails; prior session state is
// left untouched.
type ServiceError struct {
	Message string
	Cause   error
}

func (e *ServiceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("image audit failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("image audit failed: %s", e.Message)
}

func (e *ServiceError) Unwrap() error {
	return e.Cause
}
