package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

const resetKeyPrefix = "reset:"

// RedisResetTokenStore keeps password-reset tokens in Redis under a TTL, the
// same way device keys are held with an expiry elsewhere in the fleet.
type RedisResetTokenStore struct {
	client *redis.Client
}

func NewRedisResetTokenStore(client *redis.Client) *RedisResetTokenStore {
	return &RedisResetTokenStore{client: client}
}

func (s *RedisResetTokenStore) Save(ctx context.Context, token string, userID uint, ttl time.Duration) error {
	key := resetKeyPrefix + token
	if err := s.client.Set(ctx, key, strconv.FormatUint(uint64(userID), 10), ttl).Err(); err != nil {
		return fmt.Errorf("save reset token: %w", err)
	}
	return nil
}

// Consume returns the account bound to the token and deletes it, so a reset
// link works exactly once.
func (s *RedisResetTokenStore) Consume(ctx context.Context, token string) (uint, error) {
	key := resetKeyPrefix + token
	value, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("consume reset token: %w", err)
	}

	if err := s.client.Del(ctx, key).Err(); err != nil {
		return 0, fmt.Errorf("invalidate reset token: %w", err)
	}

	userID, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("consume reset token: malformed value %q", value)
	}
	return uint(userID), nil
}
