package chat

import "fmt"

// ValidationError reports a request the responder refuses to process.
// Handlers map it to 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ErrEmptyMessage is returned for a missing or whitespace-only message.
var ErrEmptyMessage = &ValidationError{Message: "Empty message"}

// InternalError wraps an unexpected failure inside the responder. Handlers
// map it to 500 with a supportive body.
type InternalError struct {
	Err error
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("internal error: %v", e.Err)
}

func (e *InternalError) Unwrap() error {
	return e.Err
}
