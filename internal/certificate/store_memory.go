package certificate

import (
	"context"
	"sync"
)

// InMemoryStore keeps certificates in process memory.
type InMemoryStore struct {
	mu    sync.RWMutex
	certs map[string]Certificate
	order []string
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{certs: make(map[string]Certificate)}
}

func key(workshopID, talentaID string) string {
	return workshopID + "/" + talentaID
}

func (s *InMemoryStore) Create(_ context.Context, c *Certificate) error {
	k := key(c.WorkshopID, c.TalentaID)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.certs[k]; exists {
		return ErrAlreadyIssued
	}
	s.certs[k] = *c
	s.order = append(s.order, k)
	return nil
}

func (s *InMemoryStore) Get(_ context.Context, workshopID, talentaID string) (*Certificate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.certs[key(workshopID, talentaID)]
	if !ok {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (s *InMemoryStore) ListByWorkshop(_ context.Context, workshopID string) ([]*Certificate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Certificate, 0)
	for _, k := range s.order {
		c := s.certs[k]
		if c.WorkshopID == workshopID {
			cc := c
			out = append(out, &cc)
		}
	}
	return out, nil
}
