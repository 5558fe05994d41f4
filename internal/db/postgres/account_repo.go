package postgres

import (
	"Bislei/internal/core/auth"
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

type postgresAccountRepo struct {
	db *sql.DB
}

// NewAccountRepository creates a new PostgreSQL account repository
func NewAccountRepository(db *sql.DB) auth.Repository {
	return &postgresAccountRepo{db: db}
}

// Create inserts the account and its empty profile row in one transaction,
// so every account always has a profile to merge into
func (r *postgresAccountRepo) Create(ctx context.Context, account *auth.Account) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin account transaction: %w", err)
	}
	defer func() {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			_ = rbErr
		}
	}()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO accounts (id, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4)`,
		account.ID, account.Email, account.PasswordHash, account.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return auth.ErrEmailTaken
		}
		return fmt.Errorf("failed to insert account: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO profiles (user_id, name, bio, email, phone, avatar_url, joined_at)
		VALUES ($1, '', '', $2, '', '', $3)`,
		account.ID, account.Email, account.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create initial profile: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit account: %w", err)
	}
	return nil
}

func (r *postgresAccountRepo) GetByEmail(ctx context.Context, email string) (*auth.Account, error) {
	var a auth.Account
	err := r.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, created_at
		FROM accounts
		WHERE email = $1`, email,
	).Scan(&a.ID, &a.Email, &a.PasswordHash, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, auth.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account by email: %w", err)
	}
	return &a, nil
}

func (r *postgresAccountRepo) GetByID(ctx context.Context, id string) (*auth.Account, error) {
	var a auth.Account
	err := r.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, created_at
		FROM accounts
		WHERE id = $1`, id,
	).Scan(&a.ID, &a.Email, &a.PasswordHash, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, auth.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &a, nil
}
