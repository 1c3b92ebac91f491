package persistence

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/trafylabs/academy-api/internal/domain/identity"
	"github.com/trafylabs/academy-api/pkg/apperror"
)

const handoffKeyPrefix = "handoff:"

// RedisHandoffStore keeps one-time cross-domain handoff tokens. A token is
// minted on the issuing domain, carried over in a cookie, and redeemed at
// most once before its TTL expires.
type RedisHandoffStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisHandoffStore(rdb *redis.Client, ttl time.Duration) *RedisHandoffStore {
	return &RedisHandoffStore{rdb: rdb, ttl: ttl}
}

// Issue mints an opaque token bound to uid.
func (s *RedisHandoffStore) Issue(ctx context.Context, uid uuid.UUID) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", apperror.NewInternal("failed to generate handoff token", err)
	}
	token := hex.EncodeToString(buf)

	if err := s.rdb.Set(ctx, handoffKeyPrefix+token, uid.String(), s.ttl).Err(); err != nil {
		return "", apperror.NewInternal("failed to store handoff token", err)
	}
	return token, nil
}

// Redeem consumes the token. GETDEL makes redemption one-shot: a replayed
// token behaves exactly like an unknown one.
func (s *RedisHandoffStore) Redeem(ctx context.Context, token string) (uuid.UUID, error) {
	val, err := s.rdb.GetDel(ctx, handoffKeyPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return uuid.Nil, identity.ErrInvalidToken
		}
		return uuid.Nil, apperror.NewInternal("failed to redeem handoff token", err)
	}

	uid, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, identity.ErrInvalidToken
	}
	return uid, nil
}
