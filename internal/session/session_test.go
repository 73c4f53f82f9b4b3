package session

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

// fakeRedis implements redisClient over a plain map so the store logic can
// be exercised without a running Redis. TTLs are recorded, not enforced.
type fakeRedis struct {
	data map[string]string
	ttls map[string]time.Duration
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{
		data: make(map[string]string),
		ttls: make(map[string]time.Duration),
	}
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	val, ok := f.data[key]
	if !ok {
		cmd := redis.NewStringCmd(ctx)
		cmd.SetErr(redis.Nil)
		return cmd
	}
	return redis.NewStringResult(val, nil)
}

func (f *fakeRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	f.data[key] = value.(string)
	f.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, key := range keys {
		if _, ok := f.data[key]; ok {
			delete(f.data, key)
			delete(f.ttls, key)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func Test_generateToken(t *testing.T) {
	tok1, err := generateToken()
	assert.NoError(t, err)
	tok2, err := generateToken()
	assert.NoError(t, err)

	assert.NotEmpty(t, tok1)
	assert.NotEqual(t, tok1, tok2, "expected tokens to be unique")
}

func TestSessionStore_CreateAndValidate(t *testing.T) {
	rdb := newFakeRedis()
	store := NewRedisSessionStore(rdb, time.Hour)

	token, err := store.Create(context.Background(), "user-1")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, time.Hour, rdb.ttls[sessionKeyPrefix+token], "expected session key to carry the store TTL")

	userId, ok, err := store.Validate(context.Background(), token)
	assert.NoError(t, err)
	assert.True(t, ok, "expected token to be valid")
	assert.Equal(t, "user-1", userId)
}

func TestSessionStore_CreateInvalidatesPreviousSession(t *testing.T) {
	rdb := newFakeRedis()
	store := NewRedisSessionStore(rdb, time.Hour)

	first, err := store.Create(context.Background(), "user-1")
	assert.NoError(t, err)

	second, err := store.Create(context.Background(), "user-1")
	assert.NoError(t, err)
	assert.NotEqual(t, first, second)

	_, ok, err := store.Validate(context.Background(), first)
	assert.NoError(t, err)
	assert.False(t, ok, "expected first token to be invalidated by second login")

	userId, ok, err := store.Validate(context.Background(), second)
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "user-1", userId)
}

func TestSessionStore_Validate(t *testing.T) {
	rdb := newFakeRedis()
	store := NewRedisSessionStore(rdb, time.Hour)

	tcases := []struct {
		name  string
		token string
	}{
		{
			name:  "empty token",
			token: "",
		},
		{
			name:  "unknown token",
			token: "bogus",
		},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			userId, ok, err := store.Validate(context.Background(), tc.token)
			assert.NoError(t, err)
			assert.False(t, ok, "expected token to be invalid")
			assert.Empty(t, userId)
		})
	}
}

func TestSessionStore_Destroy(t *testing.T) {
	rdb := newFakeRedis()
	store := NewRedisSessionStore(rdb, time.Hour)

	token, err := store.Create(context.Background(), "user-1")
	assert.NoError(t, err)

	assert.NoError(t, store.Destroy(context.Background(), token))

	_, ok, err := store.Validate(context.Background(), token)
	assert.NoError(t, err)
	assert.False(t, ok, "expected destroyed token to be invalid")

	// destroying an empty or unknown token is a no-op
	assert.NoError(t, store.Destroy(context.Background(), ""))
	assert.NoError(t, store.Destroy(context.Background(), token))
}
