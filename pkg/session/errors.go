package session

import (
	"errors"
	"fmt"
)

var (
	// ErrStale is returned when a response arrives after the session moved to
	// another view, language or location. The response is dropped.
	ErrStale = errors.New("session: stale response discarded")

	// ErrRegistrationRequired is returned by actions that redirect to the
	// register view instead of calling the backend.
	ErrRegistrationRequired = errors.New("session: registration required")
)

// PreconditionError reports an action invoked in a state it does not
// support. No request is made.
type PreconditionError struct {
	Action    string
	Condition string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s: precondition failed: %s", e.Action, e.Condition)
}
