package usecase

import "errors"

var (
	// ErrNotInitialized is returned by mutations before Initialize has run
	ErrNotInitialized = errors.New("flight store not initialized")
	// ErrClosed is returned by every operation after Close
	ErrClosed = errors.New("flight store closed")
	// ErrDuplicateID is returned by Add when the caller's id is already taken
	ErrDuplicateID = errors.New("flight record id already exists")
	// ErrInvalidRecord is returned when a record carries an unknown role or status
	ErrInvalidRecord = errors.New("invalid flight record")
)

// PersistError means the change was applied in memory but could not be
// written to the backing store. It may not survive a restart.
type PersistError struct {
	Err error
}

func (e *PersistError) Error() string {
	return "flight store: change not persisted: " + e.Err.Error()
}

func (e *PersistError) Unwrap() error {
	return e.Err
}
