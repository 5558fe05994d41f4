package auth

import (
	"errors"
	"fmt"
)

// Sentinel errors for auth operations
var (
	// ErrAccountNotFound is returned when an account lookup finds no matching record
	ErrAccountNotFound = errors.New("account not found")

	// ErrEmailTaken is returned when registering with an email that already has an account
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials is returned on login with an unknown email or wrong password.
	// Deliberately indistinguishable between the two cases.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// InvalidEmailError is returned when an email fails format validation
type InvalidEmailError struct {
	Email string
}

func (e *InvalidEmailError) Error() string {
	return fmt.Sprintf("invalid email address: %q", e.Email)
}

// WeakPasswordError is returned when a password fails strength requirements
type WeakPasswordError struct {
	Reason string
}

func (e *WeakPasswordError) Error() string {
	return fmt.Sprintf("password does not meet strength requirements: %s", e.Reason)
}
