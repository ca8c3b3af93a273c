package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	applog "github.com/arvela/contactbook/internal/platform/logging"
)

// categorizeError converts errors to audit-safe categories.
func categorizeError(err error) string {
	switch {
	case errors.Is(err, ErrUsernameTaken):
		return "username_taken"
	case errors.Is(err, ErrAlreadyRegistered):
		return "already_registered"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	default:
		return "internal_error"
	}
}

// userRow maps to the users table.
type userRow struct {
	ID        string    `gorm:"primaryKey"`
	Username  string    `gorm:"uniqueIndex;not null"`
	Avatar    string    `gorm:""`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (userRow) TableName() string { return "users" }

// Row returns the model registered with schema migration.
func Row() any { return &userRow{} }

// GormStore implements Service on a relational database.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new database-backed store.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Create registers a user. The id comes from the caller's verified token
// subject; a random UUID is assigned if the provider issued none. Username
// uniqueness is checked inside the same transaction as the insert.
func (s *GormStore) Create(ctx context.Context, userID string, params CreateParams) (*User, error) {
	if userID == "" {
		userID = uuid.NewString()
	}
	username := strings.TrimSpace(params.Username)

	var result *User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&userRow{}).Where("id = ?", userID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrAlreadyRegistered
		}
		if err := tx.Model(&userRow{}).Where("username = ?", username).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrUsernameTaken
		}

		row := userRow{
			ID:       userID,
			Username: username,
			Avatar:   strings.TrimSpace(params.Avatar),
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		result = rowToUser(row)
		return nil
	})
	if err != nil {
		applog.LogAuditEvent(ctx, "create", userID, "user", userID, "failure",
			map[string]any{"error": categorizeError(err)})
		return nil, err
	}

	applog.LogAuditEvent(ctx, "create", userID, "user", userID, "success", nil)
	return result, nil
}

// Get retrieves a user by id.
func (s *GormStore) Get(ctx context.Context, userID string) (*User, error) {
	var row userRow
	err := s.db.WithContext(ctx).First(&row, "id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return rowToUser(row), nil
}

func rowToUser(row userRow) *User {
	return &User{
		ID:        row.ID,
		Username:  row.Username,
		Avatar:    row.Avatar,
		CreatedAt: row.CreatedAt,
	}
}

// Compile-time interface check
var _ Service = (*GormStore)(nil)
