package forms

import (
	"errors"
	"fmt"
	"time"
)

// State tracks where a form instance is in its lifecycle. Saved and Errored
// are transient: both settle back into StateEditing (or StateIdle after a
// creation) before the call returns, so they are not modelled as resting
// states.
type State int

const (
	// StateIdle is a blank form composing a new entity.
	StateIdle State = iota
	StateLoading
	StateEditing
	StateSubmitting
)

func (state State) String() string {
	switch state {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateEditing:
		return "editing"
	case StateSubmitting:
		return "submitting"
	}
	return "unknown"
}

// ValidationError is a locally detected input problem. It never triggers a
// remote call; the message is meant for the user.
type ValidationError struct {
	Field  string
	Reason string
}

func (err *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", err.Field, err.Reason)
}

var (
	ErrSubmitInProgress = errors.New("a submit is already in progress")
	ErrDeleteNotArmed   = errors.New("delete requires confirmation")
	ErrNothingToDelete  = errors.New("no saved entity to delete")
)

const dateLayout = "2006-01-02"

func validDate(value string) bool {
	_, err := time.Parse(dateLayout, value)
	return err == nil
}

func todayFor(now func() time.Time) string {
	return now().Format(dateLayout)
}
