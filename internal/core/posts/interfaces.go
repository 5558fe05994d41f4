package posts

import "context"

// Service defines the business logic interface for posts
type Service interface {
	// UploadPost stores the image blob, then writes the post record and the
	// author mirror row in a single transaction. Counters start at zero.
	UploadPost(ctx context.Context, req UploadPostRequest) (*Post, error)

	// GetPost retrieves a single post by id
	GetPost(ctx context.Context, id string) (*Post, error)

	// DeletePost removes a post owned by viewerID. The image blob is deleted
	// best-effort first; a missing blob is logged, never fatal. The caller
	// sees only the record-deletion outcome.
	DeletePost(ctx context.Context, viewerID, postID string) error

	// Feed lists all posts, newest first
	Feed(ctx context.Context, limit, offset int) ([]*Post, error)

	// OwnPosts lists a user's posts, newest first
	OwnPosts(ctx context.Context, authorID string) ([]*Post, error)
}

// Repository defines the data access interface for posts
type Repository interface {
	// Create inserts the post row and its author mirror row atomically
	Create(ctx context.Context, post *Post) error

	// GetByID retrieves a post by id, or ErrPostNotFound
	GetByID(ctx context.Context, id string) (*Post, error)

	// Delete removes the post row and its mirror row atomically.
	// Returns ErrPostNotFound when no row matches.
	Delete(ctx context.Context, id string) error

	// ListFeed lists posts newest first with limit/offset paging
	ListFeed(ctx context.Context, limit, offset int) ([]*Post, error)

	// ListByAuthor lists a user's posts newest first
	ListByAuthor(ctx context.Context, authorID string) ([]*Post, error)
}
