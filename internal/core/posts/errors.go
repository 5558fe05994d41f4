package posts

import "errors"

// Sentinel errors for post operations
var (
	// ErrPostNotFound is returned when a post lookup finds no matching record
	ErrPostNotFound = errors.New("post not found")

	// ErrNotPostOwner is returned when a user attempts to delete a post they do not own
	ErrNotPostOwner = errors.New("post belongs to another user")

	// ErrCaptionTooLong is returned when a caption exceeds the 500 character limit
	ErrCaptionTooLong = errors.New("caption exceeds 500 characters")

	// ErrEmptyImage is returned when an upload carries no image bytes
	ErrEmptyImage = errors.New("post image is required")
)
