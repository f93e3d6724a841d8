package qrtoken

import (
	"context"
	"sync"
	"time"

	dErrors "vokasia/pkg/domain-errors"
)

// ConsumerStore tracks which registrant already used which pass. Consumption
// keys on (jti, registrant) so one displayed pass still serves a whole room
// while a screenshot replayed by the same registrant is rejected.
type ConsumerStore interface {
	Consume(ctx context.Context, jti, talentaID string, ttl time.Duration) error
}

// InMemoryConsumerStore is the single-process ConsumerStore used in tests and
// when Redis is not configured.
type InMemoryConsumerStore struct {
	mu   sync.Mutex
	used map[string]time.Time
	now  func() time.Time
}

func NewInMemoryConsumerStore() *InMemoryConsumerStore {
	return &InMemoryConsumerStore{used: make(map[string]time.Time), now: time.Now}
}

func (s *InMemoryConsumerStore) Consume(_ context.Context, jti, talentaID string, ttl time.Duration) error {
	key := jti + ":" + talentaID
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()
	for k, expiry := range s.used {
		if expiry.Before(now) {
			delete(s.used, k)
		}
	}
	if _, exists := s.used[key]; exists {
		return dErrors.New(dErrors.CodeConflict, "attendance pass already used")
	}
	s.used[key] = now.Add(ttl)
	return nil
}
