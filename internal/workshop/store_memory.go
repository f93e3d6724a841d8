package workshop

import (
	"context"
	"sort"
	"sync"
)

// InMemoryStore keeps workshops and registrations in process memory. Used by
// tests and when Postgres is not configured.
type InMemoryStore struct {
	mu            sync.RWMutex
	workshops     map[string]Workshop
	registrations map[string][]Registration
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		workshops:     make(map[string]Workshop),
		registrations: make(map[string][]Registration),
	}
}

func (s *InMemoryStore) Create(_ context.Context, w *Workshop) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.workshops[w.ID] = *w
	return nil
}

func (s *InMemoryStore) Get(_ context.Context, id string) (*Workshop, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	w, ok := s.workshops[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &w, nil
}

func (s *InMemoryStore) List(_ context.Context) ([]*Workshop, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Workshop, 0, len(s.workshops))
	for _, w := range s.workshops {
		copied := w
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *InMemoryStore) Register(_ context.Context, reg *Registration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.workshops[reg.WorkshopID]
	if !ok {
		return ErrNotFound
	}
	regs := s.registrations[reg.WorkshopID]
	for _, existing := range regs {
		if existing.TalentaID == reg.TalentaID {
			return ErrAlreadyRegistered
		}
	}
	if w.Capacity > 0 && len(regs) >= w.Capacity {
		return ErrWorkshopFull
	}
	s.registrations[reg.WorkshopID] = append(regs, *reg)
	return nil
}

func (s *InMemoryStore) ListRegistrants(_ context.Context, workshopID string) ([]*Registration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	regs := s.registrations[workshopID]
	out := make([]*Registration, 0, len(regs))
	for _, r := range regs {
		copied := r
		out = append(out, &copied)
	}
	return out, nil
}

func (s *InMemoryStore) IsRegistered(_ context.Context, workshopID, talentaID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.registrations[workshopID] {
		if r.TalentaID == talentaID {
			return true, nil
		}
	}
	return false, nil
}
