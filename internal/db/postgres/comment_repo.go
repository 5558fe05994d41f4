package postgres

import (
	"Bislei/internal/core/comments"
	"Bislei/internal/events"
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

type postgresCommentRepo struct {
	db *sql.DB
}

// NewCommentRepository creates a new PostgreSQL comment repository
func NewCommentRepository(db *sql.DB) comments.Repository {
	return &postgresCommentRepo{db: db}
}

// Create inserts the comment and bumps the post's comment_count in one
// transaction, so the counter never drifts from the stored rows
func (r *postgresCommentRepo) Create(ctx context.Context, comment *comments.Comment) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin comment transaction: %w", err)
	}
	defer func() {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			_ = rbErr
		}
	}()

	var authorID string
	err = tx.QueryRowContext(ctx,
		`SELECT author_id FROM posts WHERE id = $1`, comment.PostID,
	).Scan(&authorID)
	if err == sql.ErrNoRows {
		return comments.ErrPostNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to load post for comment: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO comments (id, post_id, author_id, content, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		comment.ID, comment.PostID, comment.AuthorID, comment.Content, comment.CreatedAt)
	if err != nil {
		return commentError("failed to insert comment", err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE posts SET comment_count = comment_count + 1 WHERE id = $1`,
		comment.PostID)
	if err != nil {
		return commentError("failed to increment comment count", err)
	}

	if err := notify(ctx, tx, events.ChannelComments, comment.PostID); err != nil {
		return err
	}
	if err := notify(ctx, tx, events.ChannelPosts, comment.PostID+":"+authorID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return commentError("failed to commit comment", err)
	}
	return nil
}

// ListByPost returns every comment on the post in ascending creation order
func (r *postgresCommentRepo) ListByPost(ctx context.Context, postID string) ([]*comments.Comment, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, post_id, author_id, content, created_at
		FROM comments
		WHERE post_id = $1
		ORDER BY created_at ASC, id ASC`, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	list := []*comments.Comment{}
	for rows.Next() {
		var c comments.Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.AuthorID, &c.Content, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

func (r *postgresCommentRepo) CountByPost(ctx context.Context, postID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM comments WHERE post_id = $1`, postID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count comments: %w", err)
	}
	return count, nil
}

func commentError(msg string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "40001", "40P01":
			return comments.ErrTransactionConflict
		case "23503":
			return comments.ErrPostNotFound
		}
	}
	return fmt.Errorf("%s: %w", msg, err)
}
