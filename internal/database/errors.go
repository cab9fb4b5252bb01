package database

import (
	"errors"
	"fmt"
)

var (
	// ErrStorageUnavailable means the SQLite file could not be opened or
	// prepared. The server does not start.
	ErrStorageUnavailable = errors.New("storage unavailable")

	ErrReadFailure  = errors.New("read failure")
	ErrWriteFailure = errors.New("write failure")
)

// wrap joins the error kind with the driver error so errors.Is works on both,
// while Error() keeps the driver message that clients see.
func wrap(kind error, op string, err error) error {
	return fmt.Errorf("%w: %s: %w", kind, op, err)
}
