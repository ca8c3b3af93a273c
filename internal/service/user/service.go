package user

import (
	"context"
	"errors"
	"time"
)

// Service errors
var (
	ErrNotFound          = errors.New("user not found")
	ErrUsernameTaken     = errors.New("username already taken")
	ErrAlreadyRegistered = errors.New("user already registered")
)

// User represents a stored user record. ID is the external identity
// provider's subject and is immutable once assigned.
type User struct {
	ID        string
	Username  string
	Avatar    string
	CreatedAt time.Time
}

// CreateParams for registering a user.
type CreateParams struct {
	Username string
	Avatar   string
}

// Service defines user operations. Users are created on first registration
// and never updated or deleted afterwards.
type Service interface {
	Create(ctx context.Context, userID string, params CreateParams) (*User, error)
	Get(ctx context.Context, userID string) (*User, error)
}
