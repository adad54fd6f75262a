package mutate

import "fmt"

// ValidationError rejects an insert or update before any store mutation.
// The UI surfaces it and leaves row state untouched.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NotFoundError reports that an update or delete target vanished
// (typically deleted by a concurrent session). Benign: the caller
// refreshes the view and moves on.
type NotFoundError struct {
	Kind string
	ID   int64
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %d", e.Kind, e.ID)
}
