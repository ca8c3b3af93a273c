package auth

import (
	"context"
	"errors"
	"strings"
)

// TokenUser is the identity carried by a verified bearer token. The caller's
// user id is the token's subject claim.
type TokenUser struct {
	UID string
}

// Error types for authentication failures.
var (
	// ErrNoToken indicates missing Authorization header.
	ErrNoToken = errors.New("missing authorization header")

	// ErrInvalidToken indicates an invalid token format, signature or claims.
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired indicates the token has expired.
	ErrTokenExpired = errors.New("token expired")

	// ErrKeyFetch indicates a network error fetching the issuer's key set.
	// This should result in HTTP 503 (service unavailable).
	ErrKeyFetch = errors.New("failed to fetch signing keys")
)

// Verifier validates tokens and returns the caller's identity.
type Verifier interface {
	Verify(ctx context.Context, token string) (*TokenUser, error)
}

// ExtractBearerToken extracts the token from an Authorization header value.
func ExtractBearerToken(header string) (string, error) {
	if header == "" {
		return "", ErrNoToken
	}
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", ErrInvalidToken
	}
	return parts[1], nil
}
