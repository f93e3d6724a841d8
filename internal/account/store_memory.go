package account

import (
	"context"
	"strings"
	"sync"
)

// InMemoryStore keeps accounts in process memory.
type InMemoryStore struct {
	mu      sync.RWMutex
	byID    map[string]Account
	byEmail map[string]string
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		byID:    make(map[string]Account),
		byEmail: make(map[string]string),
	}
}

func (s *InMemoryStore) Create(_ context.Context, a *Account) error {
	email := strings.ToLower(a.Email)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byEmail[email]; exists {
		return ErrEmailTaken
	}
	s.byID[a.ID] = *a
	s.byEmail[email] = a.ID
	return nil
}

func (s *InMemoryStore) GetByEmail(_ context.Context, email string) (*Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, ErrNotFound
	}
	a := s.byID[id]
	return &a, nil
}

func (s *InMemoryStore) GetByID(_ context.Context, id string) (*Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &a, nil
}
