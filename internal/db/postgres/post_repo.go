package postgres

import (
	"Bislei/internal/core/posts"
	"Bislei/internal/events"
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type postgresPostRepo struct {
	db *sql.DB
}

// NewPostRepository creates a new PostgreSQL post repository
func NewPostRepository(db *sql.DB) posts.Repository {
	return &postgresPostRepo{db: db}
}

const postColumns = `id, author_id, image_url, caption, like_count, comment_count, created_at`

// Create writes the post row and its author_posts mirror entry in one
// transaction, so a post is either fully visible or not at all
func (r *postgresPostRepo) Create(ctx context.Context, post *posts.Post) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin post transaction: %w", err)
	}
	defer func() {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			_ = rbErr
		}
	}()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO posts (id, author_id, image_url, caption, like_count, comment_count, created_at)
		VALUES ($1, $2, $3, $4, 0, 0, $5)`,
		post.ID, post.AuthorID, post.ImageURL, post.Caption, post.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO author_posts (author_id, post_id, created_at)
		VALUES ($1, $2, $3)`,
		post.AuthorID, post.ID, post.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to mirror post for author: %w", err)
	}

	if err := notify(ctx, tx, events.ChannelPosts, post.ID+":"+post.AuthorID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit post: %w", err)
	}
	return nil
}

func (r *postgresPostRepo) GetByID(ctx context.Context, postID string) (*posts.Post, error) {
	var p posts.Post
	err := r.db.QueryRowContext(ctx,
		`SELECT `+postColumns+` FROM posts WHERE id = $1`, postID,
	).Scan(&p.ID, &p.AuthorID, &p.ImageURL, &p.Caption, &p.LikeCount, &p.CommentCount, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, posts.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return &p, nil
}

// Delete removes the post, its author_posts mirror, and its likes and
// comments, all in one transaction. Returns ErrPostNotFound if it was
// already gone.
func (r *postgresPostRepo) Delete(ctx context.Context, postID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin delete transaction: %w", err)
	}
	defer func() {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			_ = rbErr
		}
	}()

	var authorID string
	err = tx.QueryRowContext(ctx,
		`DELETE FROM posts WHERE id = $1 RETURNING author_id`, postID,
	).Scan(&authorID)
	if err == sql.ErrNoRows {
		return posts.ErrPostNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM author_posts WHERE post_id = $1`, postID); err != nil {
		return fmt.Errorf("failed to delete post mirror: %w", err)
	}

	if err := notify(ctx, tx, events.ChannelPosts, postID+":"+authorID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit post delete: %w", err)
	}
	return nil
}

// ListFeed returns posts from all authors, newest first
func (r *postgresPostRepo) ListFeed(ctx context.Context, limit, offset int) ([]*posts.Post, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+postColumns+` FROM posts
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list feed: %w", err)
	}
	return scanPosts(rows)
}

// ListByAuthor returns the author's posts newest first, read through the
// author_posts mirror
func (r *postgresPostRepo) ListByAuthor(ctx context.Context, authorID string) ([]*posts.Post, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT p.id, p.author_id, p.image_url, p.caption, p.like_count, p.comment_count, p.created_at
		FROM author_posts ap
		JOIN posts p ON p.id = ap.post_id
		WHERE ap.author_id = $1
		ORDER BY ap.created_at DESC, p.id DESC`, authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list author posts: %w", err)
	}
	return scanPosts(rows)
}

func scanPosts(rows *sql.Rows) ([]*posts.Post, error) {
	defer rows.Close()

	list := []*posts.Post{}
	for rows.Next() {
		var p posts.Post
		if err := rows.Scan(&p.ID, &p.AuthorID, &p.ImageURL, &p.Caption,
			&p.LikeCount, &p.CommentCount, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
