package lecture

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a lecture id resolves to nothing.
var ErrNotFound = errors.New("lecture not found")

// ValidationError reports a missing or malformed input field. It is raised
// before any persistence call is attempted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// InvalidTransitionError reports an illegal lifecycle transition, e.g.
// starting a lecture that is already completed.
type InvalidTransitionError struct {
	Action string
	Status string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot %s a %s lecture", e.Action, e.Status)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsInvalidTransition reports whether err is an InvalidTransitionError.
func IsInvalidTransition(err error) bool {
	var te *InvalidTransitionError
	return errors.As(err, &te)
}
