package booking

import "fmt"

// ValidationError reports a malformed or missing draft field. It is raised
// before any network call, so callers can tell a blocked submission apart
// from a backend failure.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
