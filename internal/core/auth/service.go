package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Service defines the business logic interface for authentication
type Service interface {
	// Register creates an account (and its empty profile) and returns it
	Register(ctx context.Context, email, password string) (*Account, error)

	// Login checks credentials and returns a signed bearer token
	Login(ctx context.Context, email, password string) (string, error)
}

type authService struct {
	repo   Repository
	tokens *Tokens
	logger *slog.Logger
}

// NewService creates a new auth service
func NewService(repo Repository, tokens *Tokens, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &authService{
		repo:   repo,
		tokens: tokens,
		logger: logger,
	}
}

func (s *authService) Register(ctx context.Context, email, password string) (*Account, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if !emailRegex.MatchString(email) {
		return nil, &InvalidEmailError{Email: email}
	}
	if len(password) < 8 {
		return nil, &WeakPasswordError{Reason: "must be at least 8 characters"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account := &Account{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, account); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	s.logger.Info("account registered", "account", account.ID)
	return account, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return "", ErrInvalidCredentials
	}

	account, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to look up account: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		s.logger.Warn("login rejected", "account", account.ID)
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(account.ID)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info("login succeeded", "account", account.ID)
	return token, nil
}
