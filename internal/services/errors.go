package services

import (
	"errors"
	"fmt"
)

// ErrProcessingFailed is returned when annotation or similarity computation
// fails. Callers surface it without details.
var ErrProcessingFailed = errors.New("processing failed")

// InputError is a problem with what the caller sent: a missing job
// description, a missing or unreadable résumé. Its message is meant for the
// caller.
type InputError struct {
	Message string
	Err     error
}

func (e *InputError) Error() string {
	return e.Message
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// NewInputError returns an InputError with a formatted message.
func NewInputError(format string, args ...any) error {
	return &InputError{Message: fmt.Sprintf(format, args...)}
}

// IsInputError reports whether err is or wraps an InputError.
func IsInputError(err error) bool {
	var inputErr *InputError
	return errors.As(err, &inputErr)
}

func processingError(stage string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrProcessingFailed, stage, err)
}
