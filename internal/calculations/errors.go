package calculations

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is matched by every input violation, degenerate schedules included.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDegenerateSchedule is returned when the installment count would be
	// zero, negative or unbounded.
	ErrDegenerateSchedule = errors.New("degenerate schedule")
)

// InputError describes which field was rejected and why.
type InputError struct {
	Field      string
	Reason     string
	Degenerate bool
}

func (e *InputError) Error() string {
	if e.Degenerate {
		return fmt.Sprintf("%s: %s: %s", ErrDegenerateSchedule, e.Field, e.Reason)
	}
	return fmt.Sprintf("%s: %s: %s", ErrInvalidInput, e.Field, e.Reason)
}

// Is lets errors.Is match both sentinels.
func (e *InputError) Is(target error) bool {
	switch target {
	case ErrInvalidInput:
		return true
	case ErrDegenerateSchedule:
		return e.Degenerate
	}
	return false
}

func invalid(field, format string, args ...interface{}) error {
	return &InputError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

func degenerate(field, format string, args ...interface{}) error {
	return &InputError{Field: field, Reason: fmt.Sprintf(format, args...), Degenerate: true}
}
