package contact

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	applog "github.com/arvela/contactbook/internal/platform/logging"
	"github.com/arvela/contactbook/internal/service/user"
)

// categorizeError converts errors to audit-safe categories.
func categorizeError(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrNotOwner):
		return "ownership_violation"
	case errors.Is(err, user.ErrNotFound):
		return "user_not_found"
	default:
		return "internal_error"
	}
}

// contactRow maps to the contacts table. The label mappings persist as JSON
// columns; the explicit owner_id column replaces any notion of a lazily
// loaded association.
type contactRow struct {
	ID           string         `gorm:"type:uuid;primaryKey"`
	OwnerID      string         `gorm:"not null;index"`
	Name         string         `gorm:"not null"`
	PhoneNumbers datatypes.JSON `gorm:"type:jsonb;not null"`
	Emails       datatypes.JSON `gorm:"type:jsonb"`
	Addresses    datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt    time.Time      `gorm:"not null"`
	UpdatedAt    time.Time      `gorm:"not null"`
}

func (contactRow) TableName() string { return "contacts" }

// Row returns the model registered with schema migration.
func Row() any { return &contactRow{} }

// GormStore implements Service on a relational database. Owner resolution
// goes through the user service so the "user not found" failure mode is
// independent of the contact lookup.
type GormStore struct {
	db    *gorm.DB
	users user.Service
}

// NewGormStore creates a new database-backed store.
func NewGormStore(db *gorm.DB, users user.Service) *GormStore {
	return &GormStore{db: db, users: users}
}

// Create resolves the owner, assigns a fresh id and persists the contact.
func (s *GormStore) Create(ctx context.Context, userID string, params CreateParams) (*Contact, error) {
	c, err := s.create(ctx, userID, params)
	if err != nil {
		applog.LogAuditEvent(ctx, "create", userID, "contact", "", "failure",
			map[string]any{"error": categorizeError(err)})
		return nil, err
	}
	applog.LogAuditEvent(ctx, "create", userID, "contact", c.ID, "success", nil)
	return c, nil
}

func (s *GormStore) create(ctx context.Context, userID string, params CreateParams) (*Contact, error) {
	owner, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	c := &Contact{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(params.Name),
		PhoneNumbers: params.PhoneNumbers,
		Emails:       params.Emails,
		Addresses:    params.Addresses,
		OwnerID:      owner.ID,
	}

	row, err := contactToRow(c)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, err
	}
	return rowToContact(row)
}

// Get runs the ownership state machine and returns the contact only in the
// exists-owned-by-caller case.
func (s *GormStore) Get(ctx context.Context, id, userID string) (*Contact, error) {
	owner, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	var row contactRow
	if err := s.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if row.OwnerID != owner.ID {
		return nil, ErrNotOwner
	}
	return rowToContact(row)
}

// GetByID returns the contact unconditionally, without an ownership check.
func (s *GormStore) GetByID(ctx context.Context, id string) (*Contact, error) {
	var row contactRow
	if err := s.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return rowToContact(row)
}

// List returns all contacts owned by userID, ordered by name ascending for
// deterministic listing.
func (s *GormStore) List(ctx context.Context, userID string) ([]*Contact, error) {
	owner, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	var rows []contactRow
	if err := s.db.WithContext(ctx).
		Where("owner_id = ?", owner.ID).
		Order("name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]*Contact, 0, len(rows))
	for _, row := range rows {
		c, err := rowToContact(row)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// Update merges params onto the stored contact inside one transaction, so
// the read-check-write sequence is atomic with respect to the store's
// isolation level. The stored owner is never altered.
func (s *GormStore) Update(ctx context.Context, id, userID string, params UpdateParams) (*Contact, error) {
	c, err := s.update(ctx, id, userID, params)
	if err != nil {
		applog.LogAuditEvent(ctx, "update", userID, "contact", id, "failure",
			map[string]any{"error": categorizeError(err)})
		return nil, err
	}
	applog.LogAuditEvent(ctx, "update", userID, "contact", id, "success", nil)
	return c, nil
}

func (s *GormStore) update(ctx context.Context, id, userID string, params UpdateParams) (*Contact, error) {
	owner, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	var result *Contact
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row contactRow
		if err := tx.First(&row, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if row.OwnerID != owner.ID {
			return ErrNotOwner
		}

		stored, err := rowToContact(row)
		if err != nil {
			return err
		}
		stored.merge(params)

		updated, err := contactToRow(stored)
		if err != nil {
			return err
		}
		updated.CreatedAt = row.CreatedAt
		if err := tx.Save(&updated).Error; err != nil {
			return err
		}
		result, err = rowToContact(updated)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Delete removes the contact after the ownership check; both failure modes
// propagate unchanged and nothing is deleted on failure.
func (s *GormStore) Delete(ctx context.Context, id, userID string) error {
	if err := s.delete(ctx, id, userID); err != nil {
		applog.LogAuditEvent(ctx, "delete", userID, "contact", id, "failure",
			map[string]any{"error": categorizeError(err)})
		return err
	}
	applog.LogAuditEvent(ctx, "delete", userID, "contact", id, "success", nil)
	return nil
}

func (s *GormStore) delete(ctx context.Context, id, userID string) error {
	owner, err := s.users.Get(ctx, userID)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row contactRow
		if err := tx.First(&row, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if row.OwnerID != owner.ID {
			return ErrNotOwner
		}
		return tx.Delete(&contactRow{}, "id = ?", id).Error
	})
}

func contactToRow(c *Contact) (contactRow, error) {
	phones, err := json.Marshal(orEmpty(c.PhoneNumbers))
	if err != nil {
		return contactRow{}, err
	}
	emails, err := json.Marshal(orEmpty(c.Emails))
	if err != nil {
		return contactRow{}, err
	}
	addresses, err := json.Marshal(orEmptyAddr(c.Addresses))
	if err != nil {
		return contactRow{}, err
	}
	return contactRow{
		ID:           c.ID,
		OwnerID:      c.OwnerID,
		Name:         c.Name,
		PhoneNumbers: datatypes.JSON(phones),
		Emails:       datatypes.JSON(emails),
		Addresses:    datatypes.JSON(addresses),
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}, nil
}

func rowToContact(row contactRow) (*Contact, error) {
	c := &Contact{
		ID:        row.ID,
		OwnerID:   row.OwnerID,
		Name:      row.Name,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
	if err := json.Unmarshal(row.PhoneNumbers, &c.PhoneNumbers); err != nil {
		return nil, err
	}
	if len(row.Emails) > 0 {
		if err := json.Unmarshal(row.Emails, &c.Emails); err != nil {
			return nil, err
		}
	}
	if len(row.Addresses) > 0 {
		if err := json.Unmarshal(row.Addresses, &c.Addresses); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func orEmpty(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return m
}

func orEmptyAddr(m map[string]Address) map[string]Address {
	if m == nil {
		return map[string]Address{}
	}
	return m
}

// Compile-time interface check
var _ Service = (*GormStore)(nil)
