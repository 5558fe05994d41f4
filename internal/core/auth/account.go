package auth

import (
	"context"
	"time"
)

// Account is a login identity. The public-facing profile lives in the
// profiles package; this row only holds credentials.
type Account struct {
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	ID           string    `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
}

// Repository defines the data access interface for accounts
type Repository interface {
	// Create inserts the account and its empty profile row in one
	// transaction. Returns ErrEmailTaken on a duplicate email.
	Create(ctx context.Context, account *Account) error

	// GetByEmail retrieves an account by email, or ErrAccountNotFound
	GetByEmail(ctx context.Context, email string) (*Account, error)

	// GetByID retrieves an account by id, or ErrAccountNotFound
	GetByID(ctx context.Context, id string) (*Account, error)
}
