package contact

import (
	"context"
	"errors"
)

// Service errors. User-resolution failures surface as user.ErrNotFound from
// the user service and are propagated unchanged.
var (
	ErrNotFound = errors.New("contact not found")
	ErrNotOwner = errors.New("contact belongs to another user")
)

// CreateParams for creating a contact. The owner is not a parameter; it is
// derived from the authenticated caller.
type CreateParams struct {
	Name         string
	PhoneNumbers map[string]string
	Emails       map[string]string
	Addresses    map[string]Address
}

// UpdateParams for a partial update. Zero values mean "leave untouched":
// a blank name, an empty phone-number map, and nil email/address maps are
// all skipped by the merge. A non-nil empty email or address map clears
// the stored field.
type UpdateParams struct {
	Name         string
	PhoneNumbers map[string]string
	Emails       map[string]string
	Addresses    map[string]Address
}

// Service defines contact operations. Every operation that takes both a
// contact id and a user id resolves the caller's user record first (absent
// user → user.ErrNotFound), then the contact (absent → ErrNotFound), then
// asserts ownership (mismatch → ErrNotOwner).
type Service interface {
	// Create resolves the owner and persists a new contact bound to it.
	Create(ctx context.Context, userID string, params CreateParams) (*Contact, error)

	// Get returns the contact only when it exists and is owned by userID.
	Get(ctx context.Context, id, userID string) (*Contact, error)

	// GetByID returns the contact without an ownership check. For callers
	// that have already verified ownership or do not need it.
	GetByID(ctx context.Context, id string) (*Contact, error)

	// List returns all contacts owned by userID, ordered by name ascending.
	List(ctx context.Context, userID string) ([]*Contact, error)

	// Update merges params onto the stored contact after the ownership
	// check. The stored owner is never altered.
	Update(ctx context.Context, id, userID string, params UpdateParams) (*Contact, error)

	// Delete removes the contact after the ownership check.
	Delete(ctx context.Context, id, userID string) error
}
