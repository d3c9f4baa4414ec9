package booking

import "fmt"

// ValidationError marks a submission rejected before any network call:
// the booking form is incomplete and the patient must fix it inline.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("booking: missing %s", e.Field)
}

var (
	// ErrMissingDate blocks submission when no date was picked.
	ErrMissingDate = &ValidationError{Field: "date"}

	// ErrMissingTime blocks submission when no time was picked.
	ErrMissingTime = &ValidationError{Field: "time"}
)
