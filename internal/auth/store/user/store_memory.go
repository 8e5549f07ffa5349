package user

import (
	"context"
	"sync"

	"minnetherapy/internal/auth/models"
	id "minnetherapy/pkg/domain"
	"minnetherapy/pkg/platform/sentinel"
)

// InMemoryUserStore keeps users in maps keyed by id and normalized email.
type InMemoryUserStore struct {
	mu      sync.RWMutex
	users   map[id.UserID]*models.User
	byEmail map[string]id.UserID
}

func New() *InMemoryUserStore {
	return &InMemoryUserStore{
		users:   make(map[id.UserID]*models.User),
		byEmail: make(map[string]id.UserID),
	}
}

func (s *InMemoryUserStore) FindByID(_ context.Context, userID id.UserID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if u, ok := s.users[userID]; ok {
		return clone(u), nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemoryUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if userID, ok := s.byEmail[models.NormalizeEmail(email)]; ok {
		return clone(s.users[userID]), nil
	}
	return nil, sentinel.ErrNotFound
}

// CreateIfAbsent stores u unless a user with the same email (ignoring case)
// exists, in which case the existing user is returned unchanged.
func (s *InMemoryUserStore) CreateIfAbsent(_ context.Context, u *models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := models.NormalizeEmail(u.Email)
	if existing, ok := s.byEmail[key]; ok {
		return clone(s.users[existing]), nil
	}
	if _, taken := s.users[u.ID]; taken {
		return nil, sentinel.ErrConflict
	}
	stored := clone(u)
	s.users[u.ID] = stored
	s.byEmail[key] = u.ID
	return clone(stored), nil
}

func clone(u *models.User) *models.User {
	c := *u
	if u.EmailVerifiedAt != nil {
		t := *u.EmailVerifiedAt
		c.EmailVerifiedAt = &t
	}
	return &c
}
