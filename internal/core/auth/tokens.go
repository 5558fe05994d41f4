package auth

import (
	"fmt"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const tokenIssuer = "bislei"

// Tokens issues and verifies the HS256 bearer tokens the mobile client
// holds between sessions.
type Tokens struct {
	secret []byte
	ttl    time.Duration
}

// NewTokens creates a token issuer/verifier with the given signing secret
func NewTokens(secret []byte, ttl time.Duration) (*Tokens, error) {
	if len(secret) < 32 {
		return nil, fmt.Errorf("token secret must be at least 32 bytes, got %d", len(secret))
	}
	if ttl <= 0 {
		ttl = 72 * time.Hour
	}
	return &Tokens{secret: secret, ttl: ttl}, nil
}

// Issue signs a token whose subject is the account id
func (t *Tokens) Issue(userID string) (string, error) {
	now := time.Now()
	tok, err := jwt.NewBuilder().
		Issuer(tokenIssuer).
		Subject(userID).
		IssuedAt(now).
		Expiration(now.Add(t.ttl)).
		Build()
	if err != nil {
		return "", fmt.Errorf("failed to build token: %w", err)
	}

	signed, err := jwt.Sign(tok, jwt.WithKey(jwa.HS256, t.secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return string(signed), nil
}

// Verify checks signature, issuer and expiry and returns the subject user id
func (t *Tokens) Verify(token string) (string, error) {
	parsed, err := jwt.Parse([]byte(token),
		jwt.WithKey(jwa.HS256, t.secret),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithValidate(true),
	)
	if err != nil {
		return "", fmt.Errorf("invalid token: %w", err)
	}

	sub := parsed.Subject()
	if sub == "" {
		return "", fmt.Errorf("token missing subject")
	}
	return sub, nil
}
