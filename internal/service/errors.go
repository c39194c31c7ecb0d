package service

import "errors"

// Engine errors. Every mutating operation that cannot complete its full,
// well-defined effect leaves the stored record unchanged and returns one of
// these; callers branch with errors.Is. Group-absent conditions surface as
// storage.ErrNotFound.
var (
	// ErrValidation wraps any invalid input to a lifecycle operation.
	ErrValidation = errors.New("invalid input")

	// ErrPoolLocked rejects purchases once a group has been locked.
	ErrPoolLocked = errors.New("pool is locked to new purchases")

	// ErrAlreadyLocked rejects a second Lock; re-rolling numbers is the
	// explicit Relock operation.
	ErrAlreadyLocked = errors.New("group is already locked")

	// ErrNotLocked rejects Relock on a group that was never locked.
	ErrNotLocked = errors.New("group is not locked")

	// ErrResultsRecorded rejects Relock after game progress: re-rolling
	// numbers would invalidate already-resolved winners.
	ErrResultsRecorded = errors.New("quarter results already recorded")

	// ErrNumbersNotAssigned rejects operations on a quarter whose number
	// slot has not been generated yet.
	ErrNumbersNotAssigned = errors.New("numbers not assigned for quarter")
)
