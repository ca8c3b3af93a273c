package user

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MockService implements Service for unit tests.
type MockService struct {
	mu    sync.RWMutex
	users map[string]*User
}

// NewMockService creates a new mock service.
func NewMockService() *MockService {
	return &MockService{users: make(map[string]*User)}
}

func (m *MockService) Create(_ context.Context, userID string, params CreateParams) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if userID == "" {
		userID = uuid.NewString()
	}
	if _, exists := m.users[userID]; exists {
		return nil, ErrAlreadyRegistered
	}
	username := strings.TrimSpace(params.Username)
	for _, u := range m.users {
		if u.Username == username {
			return nil, ErrUsernameTaken
		}
	}

	u := &User{
		ID:        userID,
		Username:  username,
		Avatar:    strings.TrimSpace(params.Avatar),
		CreatedAt: time.Now().UTC(),
	}
	m.users[userID] = u
	return u, nil
}

func (m *MockService) Get(_ context.Context, userID string) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, exists := m.users[userID]
	if !exists {
		return nil, ErrNotFound
	}
	return u, nil
}

// Compile-time interface check
var _ Service = (*MockService)(nil)
