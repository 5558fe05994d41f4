package comments

import (
	"context"

	"Bislei/internal/core/profiles"
)

// Service defines the business logic interface for comments
type Service interface {
	// AddComment creates a comment on a post. Blank or whitespace-only text
	// is a silent no-op: nil comment, nil error, no record written. The
	// comment insert and the post's counter increment commit in one
	// transaction.
	AddComment(ctx context.Context, viewerID, postID, text string) (*Comment, error)

	// ListComments returns a post's comments ordered by creation time ascending
	ListComments(ctx context.Context, postID string) ([]*Comment, error)
}

// Repository defines the data access interface for comments
type Repository interface {
	// Create inserts the comment and increments the post's comment counter
	// in a single transaction, reading the current count inside it (never a
	// blind count+1 outside). Returns ErrPostNotFound when the post is gone.
	Create(ctx context.Context, comment *Comment) error

	// ListByPost returns comments for a post, creation time ascending
	ListByPost(ctx context.Context, postID string) ([]*Comment, error)

	// CountByPost returns the number of comments on a post
	CountByPost(ctx context.Context, postID string) (int, error)
}

// ProfileResolver resolves commenter identities for display; satisfied by
// *profiles.Cache
type ProfileResolver interface {
	Resolve(ctx context.Context, userID string) (*profiles.Profile, error)
}
