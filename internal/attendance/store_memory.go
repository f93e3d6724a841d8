package attendance

import (
	"context"
	"sync"
)

// InMemoryStore keeps attendance records in process memory.
type InMemoryStore struct {
	mu      sync.RWMutex
	records []Record
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Create(_ context.Context, rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.records {
		if existing.WorkshopID == rec.WorkshopID &&
			existing.SessionID == rec.SessionID &&
			existing.TalentaID == rec.TalentaID {
			return ErrAlreadyRecorded
		}
	}
	s.records = append(s.records, *rec)
	return nil
}

func (s *InMemoryStore) ListBySession(_ context.Context, workshopID, sessionID string) ([]*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*Record
	for _, r := range s.records {
		if r.WorkshopID == workshopID && r.SessionID == sessionID {
			copied := r
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (s *InMemoryStore) HasAttended(_ context.Context, workshopID, talentaID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.records {
		if r.WorkshopID == workshopID && r.TalentaID == talentaID {
			return true, nil
		}
	}
	return false, nil
}
