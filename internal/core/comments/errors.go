package comments

import "errors"

// Sentinel errors for comment operations
var (
	// ErrPostNotFound is returned when commenting on a post that does not exist
	ErrPostNotFound = errors.New("post not found")

	// ErrTransactionConflict is returned when the counter update lost the
	// race against a concurrent conflicting write
	ErrTransactionConflict = errors.New("concurrent comment update conflict")
)
