package likes

import "errors"

// Sentinel errors for like operations
var (
	// ErrTransactionConflict is returned when a toggle lost the race against
	// a concurrent conflicting write. The operation is not retried here;
	// callers may retry, but must re-check current like state first rather
	// than replaying blindly, or counter drift results.
	ErrTransactionConflict = errors.New("concurrent like update conflict")

	// ErrPostNotFound is returned when toggling a like on a post that does not exist
	ErrPostNotFound = errors.New("post not found")
)
