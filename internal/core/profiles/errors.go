package profiles

import "errors"

// ErrProfileNotFound is returned by the repository when no profile row
// exists. The service maps it to an empty default profile for reads; only
// the cache treats it as a miss worth retrying later.
var ErrProfileNotFound = errors.New("profile not found")
