package qrtoken

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	dErrors "vokasia/pkg/domain-errors"
)

// Redis key prefix for consumed passes.
const usedPassKeyPrefix = "vokasia:pass:used:"

// RedisConsumerStore is the distributed ConsumerStore. SETNX with the pass
// TTL makes consumption atomic across instances, and the keys expire on their
// own once the pass could no longer verify anyway.
type RedisConsumerStore struct {
	client *redis.Client
}

func NewRedisConsumerStore(client *redis.Client) *RedisConsumerStore {
	return &RedisConsumerStore{client: client}
}

func (s *RedisConsumerStore) Consume(ctx context.Context, jti, talentaID string, ttl time.Duration) error {
	key := usedPassKeyPrefix + jti + ":" + talentaID
	ok, err := s.client.SetNX(ctx, key, "1", ttl).Result()
	if err != nil {
		return fmt.Errorf("consume pass: %w", err)
	}
	if !ok {
		return dErrors.New(dErrors.CodeConflict, "attendance pass already used")
	}
	return nil
}
