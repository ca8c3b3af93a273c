package contact

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/arvela/contactbook/internal/service/user"
)

// MockService implements Service for unit tests, backed by a mutex-guarded
// map and the user service's mock for owner resolution.
type MockService struct {
	mu       sync.RWMutex
	contacts map[string]*Contact
	users    user.Service
}

// NewMockService creates a new mock service resolving owners against users.
func NewMockService(users user.Service) *MockService {
	return &MockService{
		contacts: make(map[string]*Contact),
		users:    users,
	}
}

func (m *MockService) Create(ctx context.Context, userID string, params CreateParams) (*Contact, error) {
	owner, err := m.users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().UTC()
	c := &Contact{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(params.Name),
		PhoneNumbers: params.PhoneNumbers,
		Emails:       params.Emails,
		Addresses:    params.Addresses,
		OwnerID:      owner.ID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	m.contacts[c.ID] = c.clone()
	return c, nil
}

func (m *MockService) Get(ctx context.Context, id, userID string) (*Contact, error) {
	owner, err := m.users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	c, exists := m.contacts[id]
	if !exists {
		return nil, ErrNotFound
	}
	if c.OwnerID != owner.ID {
		return nil, ErrNotOwner
	}
	return c.clone(), nil
}

func (m *MockService) GetByID(_ context.Context, id string) (*Contact, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, exists := m.contacts[id]
	if !exists {
		return nil, ErrNotFound
	}
	return c.clone(), nil
}

func (m *MockService) List(ctx context.Context, userID string) ([]*Contact, error) {
	owner, err := m.users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Contact, 0)
	for _, c := range m.contacts {
		if c.OwnerID == owner.ID {
			out = append(out, c.clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *MockService) Update(ctx context.Context, id, userID string, params UpdateParams) (*Contact, error) {
	owner, err := m.users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	c, exists := m.contacts[id]
	if !exists {
		return nil, ErrNotFound
	}
	if c.OwnerID != owner.ID {
		return nil, ErrNotOwner
	}

	c.merge(params)
	c.UpdatedAt = time.Now().UTC()
	return c.clone(), nil
}

func (m *MockService) Delete(ctx context.Context, id, userID string) error {
	owner, err := m.users.Get(ctx, userID)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	c, exists := m.contacts[id]
	if !exists {
		return ErrNotFound
	}
	if c.OwnerID != owner.ID {
		return ErrNotOwner
	}
	delete(m.contacts, id)
	return nil
}

// Clear removes all contacts (useful for test cleanup).
func (m *MockService) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.contacts = make(map[string]*Contact)
}

// Compile-time interface check
var _ Service = (*MockService)(nil)
