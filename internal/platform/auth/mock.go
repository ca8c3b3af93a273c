package auth

import (
	"context"
)

// MockVerifier provides fake token verification for tests.
type MockVerifier struct {
	User  *TokenUser
	Error error
}

// Verify returns the configured user or error.
func (m *MockVerifier) Verify(_ context.Context, _ string) (*TokenUser, error) {
	if m.Error != nil {
		return nil, m.Error
	}
	return m.User, nil
}

// TestUser returns a standard test identity.
func TestUser() *TokenUser {
	return &TokenUser{UID: "test-user-123"}
}

// Compile-time interface check
var _ Verifier = (*MockVerifier)(nil)
