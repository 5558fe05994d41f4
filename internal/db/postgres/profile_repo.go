package postgres

import (
	"Bislei/internal/core/profiles"
	"Bislei/internal/events"
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type postgresProfileRepo struct {
	db *sql.DB
}

// NewProfileRepository creates a new PostgreSQL profile repository
func NewProfileRepository(db *sql.DB) profiles.Repository {
	return &postgresProfileRepo{db: db}
}

func (r *postgresProfileRepo) Get(ctx context.Context, userID string) (*profiles.Profile, error) {
	var p profiles.Profile
	err := r.db.QueryRowContext(ctx, `
		SELECT user_id, name, bio, email, phone, avatar_url, joined_at
		FROM profiles
		WHERE user_id = $1`, userID,
	).Scan(&p.UserID, &p.Name, &p.Bio, &p.Email, &p.Phone, &p.AvatarURL, &p.JoinedAt)
	if err == sql.ErrNoRows {
		return nil, profiles.ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &p, nil
}

// Merge overwrites only the fields present in the merge; absent fields keep
// their stored values. The notify fires inside the same transaction as the
// update.
func (r *postgresProfileRepo) Merge(ctx context.Context, userID string, merge profiles.ProfileMerge) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin profile transaction: %w", err)
	}
	defer func() {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			_ = rbErr
		}
	}()

	res, err := tx.ExecContext(ctx, `
		UPDATE profiles SET
			name = COALESCE($2, name),
			bio = COALESCE($3, bio),
			email = COALESCE($4, email),
			phone = COALESCE($5, phone),
			avatar_url = COALESCE($6, avatar_url)
		WHERE user_id = $1`,
		userID, merge.Name, merge.Bio, merge.Email, merge.Phone, merge.AvatarURL)
	if err != nil {
		return fmt.Errorf("failed to merge profile: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read merge result: %w", err)
	}
	if affected == 0 {
		return profiles.ErrProfileNotFound
	}

	if err := notify(ctx, tx, events.ChannelProfiles, userID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit profile merge: %w", err)
	}
	return nil
}
