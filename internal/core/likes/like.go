package likes

import "time"

// Like is a standing (user, post) relation: its existence means "this user
// currently likes this post". Likes are created and destroyed by the toggle
// operation and never updated in place.
type Like struct {
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UserID    string    `json:"userId" db:"user_id"`
	PostID    string    `json:"postId" db:"post_id"`
}

// ToggleResult reports the state after a toggle committed
type ToggleResult struct {
	Liked     bool `json:"liked"`
	LikeCount int  `json:"likeCount"`
}
