package store

import "fmt"

// ValidationError rejects input before any state changes.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ErrSubjectCount is the message returned when a curriculum is not five
// distinct catalogue subjects.
const ErrSubjectCount = "Subjects must be exactly five distinct entries"

// PersistenceError reports a failed read or write of the persisted state.
type PersistenceError struct {
	Op  string // read, decode, encode or write
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s slot %q: %v", e.Op, e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
