package comments

import "time"

// Comment is an immutable remark on a post. The id is generated client-side
// of the store at creation time; there is no edit or delete path.
type Comment struct {
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	ID        string    `json:"id" db:"id"`
	PostID    string    `json:"postId" db:"post_id"`
	AuthorID  string    `json:"authorId" db:"author_id"`
	Content   string    `json:"content" db:"content"`
}
