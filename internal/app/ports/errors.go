package ports

import "errors"

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
	// ErrCapacity signals the backing store refused a write for size
	// reasons; callers degrade through smaller retention caps.
	ErrCapacity = errors.New("storage capacity exceeded")
)
