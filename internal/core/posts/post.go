package posts

import (
	"time"
)

// Post represents a catch photo with caption and denormalized interaction
// counters. The counters are the display source of truth and are only ever
// mutated inside the like/comment transactions, never recomputed by scanning
// the relation tables.
type Post struct {
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	ID           string    `json:"id" db:"id"`
	AuthorID     string    `json:"authorId" db:"author_id"`
	ImageURL     string    `json:"imageUrl" db:"image_url"`
	Caption      string    `json:"caption" db:"caption"`
	LikeCount    int       `json:"likeCount" db:"like_count"`
	CommentCount int       `json:"commentCount" db:"comment_count"`
}

// UploadPostRequest represents input for uploading a new post
type UploadPostRequest struct {
	AuthorID  string
	Caption   string
	ImageData []byte
	MimeType  string
}
