package likes

import "context"

// Service defines the business logic interface for likes
type Service interface {
	// ToggleLike flips the (viewer, post) like relation and adjusts the
	// post's like counter in a single all-or-nothing transaction: delete +
	// decrement (floored at 0) when the relation exists, insert + increment
	// when it does not. A concurrent conflicting write surfaces as
	// ErrTransactionConflict.
	ToggleLike(ctx context.Context, viewerID, postID string) (*ToggleResult, error)

	// LikedPostIDs returns the set of post ids the viewer currently likes
	LikedPostIDs(ctx context.Context, viewerID string) ([]string, error)

	// IsLiked reports whether the viewer currently likes the post
	IsLiked(ctx context.Context, viewerID, postID string) (bool, error)
}

// Repository defines the data access interface for likes
type Repository interface {
	// Toggle performs the transactional toggle described on Service.ToggleLike
	Toggle(ctx context.Context, userID, postID string) (*ToggleResult, error)

	// ListPostIDsByUser returns ids of all posts the user likes
	ListPostIDsByUser(ctx context.Context, userID string) ([]string, error)

	// Exists reports whether a (user, post) like relation exists
	Exists(ctx context.Context, userID, postID string) (bool, error)
}
