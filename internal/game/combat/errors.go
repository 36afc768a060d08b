package combat

import (
	"errors"
	"fmt"
)

// ErrCharacterNotFound is returned when a roster lookup names an absent character.
var ErrCharacterNotFound = errors.New("character not found")

// FormatError reports a formula that is neither a plain integer nor a dice
// expression the evaluator accepts.
type FormatError struct {
	Formula string
	Err     error
}

// Error implements error.
func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid formula %q: %v", e.Formula, e.Err)
}

// Unwrap returns the underlying parse or evaluation error.
func (e *FormatError) Unwrap() error {
	return e.Err
}

func notFound(name string) error {
	return fmt.Errorf("character %q: %w", name, ErrCharacterNotFound)
}
