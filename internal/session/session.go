package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix     = "session:"
	userSessionKeyPrefix = "user_session:"

	tokenLength = 32

	DefaultDuration = 24 * time.Hour
)

// SessionStore issues and validates opaque server-side session tokens. A
// token is random bytes mapped to a user id in Redis with a TTL; nothing is
// encoded in the token itself.
type SessionStore interface {
	Create(ctx context.Context, userId string) (string, error)
	Validate(ctx context.Context, token string) (string, bool, error)
	Destroy(ctx context.Context, token string) error
}

// redisClient is the subset of redis.Cmdable the store uses.
type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

type RedisSessionStore struct {
	rdb redisClient
	ttl time.Duration
}

func NewRedisSessionStore(rdb redisClient, ttl time.Duration) *RedisSessionStore {
	if ttl <= 0 {
		ttl = DefaultDuration
	}

	return &RedisSessionStore{rdb: rdb, ttl: ttl}
}

func generateToken() (string, error) {
	buf := make([]byte, tokenLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}

	return base64.URLEncoding.EncodeToString(buf), nil
}

// Create issues a fresh token for userId. Any previous session for the same
// user is invalidated first, so a user holds at most one live session and the
// expiry clock restarts on every login.
func (s *RedisSessionStore) Create(ctx context.Context, userId string) (string, error) {
	if err := s.destroyForUser(ctx, userId); err != nil {
		return "", err
	}

	token, err := generateToken()
	if err != nil {
		return "", err
	}

	if err := s.rdb.Set(ctx, sessionKeyPrefix+token, userId, s.ttl).Err(); err != nil {
		return "", err
	}

	if err := s.rdb.Set(ctx, userSessionKeyPrefix+userId, token, s.ttl).Err(); err != nil {
		return "", err
	}

	return token, nil
}

// Validate resolves a token to its user id. An empty, unknown or expired
// token is reported as not valid without error; errors are reserved for the
// store itself being unreachable.
func (s *RedisSessionStore) Validate(ctx context.Context, token string) (string, bool, error) {
	if token == "" {
		return "", false, nil
	}

	userId, err := s.rdb.Get(ctx, sessionKeyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	} else if err != nil {
		return "", false, err
	}

	return userId, true, nil
}

func (s *RedisSessionStore) Destroy(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	userId, err := s.rdb.Get(ctx, sessionKeyPrefix+token).Result()
	if err == nil && userId != "" {
		if err := s.rdb.Del(ctx, userSessionKeyPrefix+userId).Err(); err != nil {
			return err
		}
	} else if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}

	return s.rdb.Del(ctx, sessionKeyPrefix+token).Err()
}

func (s *RedisSessionStore) destroyForUser(ctx context.Context, userId string) error {
	token, err := s.rdb.Get(ctx, userSessionKeyPrefix+userId).Result()
	if errors.Is(err, redis.Nil) {
		return nil
	} else if err != nil {
		return err
	}

	if token != "" {
		if err := s.rdb.Del(ctx, sessionKeyPrefix+token).Err(); err != nil {
			return err
		}
	}

	return s.rdb.Del(ctx, userSessionKeyPrefix+userId).Err()
}
