package postgres

import (
	"Bislei/internal/core/likes"
	"Bislei/internal/events"
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

type postgresLikeRepo struct {
	db *sql.DB
}

// NewLikeRepository creates a new PostgreSQL like repository
func NewLikeRepository(db *sql.DB) likes.Repository {
	return &postgresLikeRepo{db: db}
}

// Toggle flips the like state for (userID, postID) and adjusts the post's
// denormalized like_count in the same transaction. Concurrent toggles on the
// same pair surface as ErrTransactionConflict; callers are expected to
// re-read state before retrying rather than replaying blindly.
func (r *postgresLikeRepo) Toggle(ctx context.Context, userID, postID string) (*likes.ToggleResult, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin toggle transaction: %w", err)
	}
	defer func() {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			_ = rbErr
		}
	}()

	var authorID string
	err = tx.QueryRowContext(ctx,
		`SELECT author_id FROM posts WHERE id = $1`, postID,
	).Scan(&authorID)
	if err == sql.ErrNoRows {
		return nil, likes.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load post for toggle: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		`DELETE FROM likes WHERE user_id = $1 AND post_id = $2`, userID, postID)
	if err != nil {
		return nil, toggleError("failed to delete like", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to read delete result: %w", err)
	}

	result := &likes.ToggleResult{}
	if removed > 0 {
		err = tx.QueryRowContext(ctx, `
			UPDATE posts
			SET like_count = GREATEST(0, like_count - 1)
			WHERE id = $1
			RETURNING like_count`, postID,
		).Scan(&result.LikeCount)
		if err != nil {
			return nil, toggleError("failed to decrement like count", err)
		}
	} else {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO likes (user_id, post_id, created_at)
			VALUES ($1, $2, NOW())
			ON CONFLICT (user_id, post_id) DO NOTHING`, userID, postID)
		if err != nil {
			return nil, toggleError("failed to insert like", err)
		}

		err = tx.QueryRowContext(ctx, `
			UPDATE posts
			SET like_count = like_count + 1
			WHERE id = $1
			RETURNING like_count`, postID,
		).Scan(&result.LikeCount)
		if err != nil {
			return nil, toggleError("failed to increment like count", err)
		}
		result.Liked = true
	}

	if err := notify(ctx, tx, events.ChannelLikes, userID); err != nil {
		return nil, err
	}
	if err := notify(ctx, tx, events.ChannelPosts, postID+":"+authorID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, toggleError("failed to commit toggle", err)
	}
	return result, nil
}

// ListPostIDsByUser returns the ids of every post the user currently likes,
// newest like first
func (r *postgresLikeRepo) ListPostIDsByUser(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT post_id FROM likes
		WHERE user_id = $1
		ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list liked posts: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan liked post id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *postgresLikeRepo) Exists(ctx context.Context, userID, postID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM likes WHERE user_id = $1 AND post_id = $2)`,
		userID, postID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check like: %w", err)
	}
	return exists, nil
}

// toggleError maps Postgres concurrency failures to ErrTransactionConflict
// and wraps everything else
func toggleError(msg string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "40001", "40P01", "23505":
			return likes.ErrTransactionConflict
		}
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// notify emits a pg_notify inside the mutating transaction so listeners only
// ever observe committed state
func notify(ctx context.Context, tx *sql.Tx, channel, payload string) error {
	if _, err := tx.ExecContext(ctx, `SELECT pg_notify($1, $2)`, channel, payload); err != nil {
		return fmt.Errorf("failed to notify %s: %w", channel, err)
	}
	return nil
}
