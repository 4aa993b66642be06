package model

import "fmt"

// ValidationError reports malformed caller input. The engine rejects the whole
// request rather than attempting partial computation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// UnsupportedIntentError reports an intent value outside the closed enum.
type UnsupportedIntentError struct {
	Intent string
}

func (e *UnsupportedIntentError) Error() string {
	return fmt.Sprintf("unsupported intent %q", e.Intent)
}
