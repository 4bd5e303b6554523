package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"jobtracker/internal/cache"
)

// Cache is the subset of cache.Client the session store relies on.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

var _ Cache = (*cache.Client)(nil)

const (
	sessionKeyPrefix = "session:"
	// TTL is the lifetime of a session, a fixed 7-day window.
	TTL = 7 * 24 * time.Hour
)

// Session binds an opaque session id to an authenticated user.
type Session struct {
	ID        string    `json:"-"`
	UserID    uuid.UUID `json:"user_id"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Store defines the interface for server-side session records.
type Store interface {
	Create(ctx context.Context, userID uuid.UUID, username string) (*Session, error)
	Get(ctx context.Context, sessionID string) (*Session, error)
	Delete(ctx context.Context, sessionID string) error
}

// RedisStore keeps sessions in Redis under session:<id> with TTL; expiry is
// enforced by Redis itself.
type RedisStore struct {
	cache Cache
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore creates a Redis-backed session store.
func NewRedisStore(cache Cache) *RedisStore {
	return &RedisStore{cache: cache}
}

// Create stores a new session and returns it with a fresh opaque id.
func (s *RedisStore) Create(ctx context.Context, userID uuid.UUID, username string) (*Session, error) {
	sess := &Session{
		ID:        uuid.New().String(),
		UserID:    userID,
		Username:  username,
		ExpiresAt: time.Now().Add(TTL),
	}

	payload, err := json.Marshal(sess)
	if err != nil {
		return nil, fmt.Errorf("marshal session: %w", err)
	}
	if err := s.cache.Set(ctx, sessionKeyPrefix+sess.ID, payload, TTL); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	return sess, nil
}

// Get retrieves a session by id. A missing or expired id yields an error.
func (s *RedisStore) Get(ctx context.Context, sessionID string) (*Session, error) {
	data, err := s.cache.Get(ctx, sessionKeyPrefix+sessionID)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if data == nil {
		return nil, fmt.Errorf("session not found")
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	sess.ID = sessionID
	return &sess, nil
}

// Delete destroys a session. The error must be surfaced: a logout that
// cannot remove its record has not logged the user out.
func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	return s.cache.Delete(ctx, sessionKeyPrefix+sessionID)
}
