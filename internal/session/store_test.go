package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// memCache is an in-memory Cache recording the TTL it was handed.
type memCache struct {
	data    map[string][]byte
	lastTTL time.Duration
	failing bool
}

func newMemCache() *memCache {
	return &memCache{data: map[string][]byte{}}
}

func (m *memCache) Get(ctx context.Context, key string) ([]byte, error) {
	if m.failing {
		return nil, errors.New("redis unavailable")
	}
	return m.data[key], nil
}

func (m *memCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.failing {
		return errors.New("redis unavailable")
	}
	m.data[key] = value
	m.lastTTL = ttl
	return nil
}

func (m *memCache) Delete(ctx context.Context, key string) error {
	if m.failing {
		return errors.New("redis unavailable")
	}
	delete(m.data, key)
	return nil
}

func TestRedisStoreRoundTrip(t *testing.T) {
	cache := newMemCache()
	store := NewRedisStore(cache)
	userID := uuid.New()

	sess, err := store.Create(context.Background(), userID, "alice")
	assert.NoError(t, err)
	assert.NotEmpty(t, sess.ID)
	assert.Equal(t, TTL, cache.lastTTL)

	got, err := store.Get(context.Background(), sess.ID)
	assert.NoError(t, err)
	assert.Equal(t, sess.ID, got.ID)
	assert.Equal(t, userID, got.UserID)
	assert.Equal(t, "alice", got.Username)
	assert.WithinDuration(t, time.Now().Add(TTL), got.ExpiresAt, time.Minute)
}

func TestRedisStoreGetUnknownID(t *testing.T) {
	store := NewRedisStore(newMemCache())

	_, err := store.Get(context.Background(), uuid.New().String())
	assert.Error(t, err)
}

func TestRedisStoreDelete(t *testing.T) {
	cache := newMemCache()
	store := NewRedisStore(cache)

	sess, err := store.Create(context.Background(), uuid.New(), "alice")
	assert.NoError(t, err)

	assert.NoError(t, store.Delete(context.Background(), sess.ID))

	_, err = store.Get(context.Background(), sess.ID)
	assert.Error(t, err)
}

func TestRedisStoreSurfacesBackendFailure(t *testing.T) {
	cache := newMemCache()
	cache.failing = true
	store := NewRedisStore(cache)

	_, err := store.Create(context.Background(), uuid.New(), "alice")
	assert.Error(t, err)

	assert.Error(t, store.Delete(context.Background(), "sess-1"))
}
