package services

import (
	"context"
	goerrors "errors"
	"fmt"

	"rento/errors"
	"rento/models"

	"github.com/goccy/go-json"
	"github.com/karlseguin/ccache/v3"
	"github.com/redis/go-redis/v9"
)

// SessionStore keeps sessions until they expire or are deleted
type SessionStore interface {
	Save(ctx context.Context, s *models.Session) error
	Get(ctx context.Context, id string) (*models.Session, error)
	Delete(ctx context.Context, id string) error
}

// MemorySessionStore keeps sessions in a process-local LRU cache
type MemorySessionStore struct {
	cache *ccache.Cache[models.Session]
	clock Clock
}

func NewMemorySessionStore(maxSize int64, clock Clock) *MemorySessionStore {
	if clock == nil {
		clock = RealClock()
	}
	return &MemorySessionStore{
		cache: ccache.New(ccache.Configure[models.Session]().MaxSize(maxSize)),
		clock: clock,
	}
}

func (m *MemorySessionStore) Save(_ context.Context, s *models.Session) error {
	ttl := s.TTL(m.clock.Now())
	if ttl <= 0 {
		return errors.ErrSessionExpired
	}
	m.cache.Set(s.ID, *s, ttl)
	return nil
}

func (m *MemorySessionStore) Get(_ context.Context, id string) (*models.Session, error) {
	item := m.cache.Get(id)
	if item == nil {
		return nil, errors.ErrSessionNotFound
	}
	s := item.Value()
	if item.Expired() || s.Expired(m.clock.Now()) {
		m.cache.Delete(id)
		return nil, errors.ErrSessionExpired
	}
	return &s, nil
}

func (m *MemorySessionStore) Delete(_ context.Context, id string) error {
	m.cache.Delete(id)
	return nil
}

func (m *MemorySessionStore) Stop() {
	m.cache.Stop()
}

// RedisSessionStore keeps sessions as JSON under <prefix>session:<id> with a TTL
type RedisSessionStore struct {
	rdb    redis.Cmdable
	prefix string
	clock  Clock
}

func NewRedisSessionStore(rdb redis.Cmdable, prefix string, clock Clock) *RedisSessionStore {
	if clock == nil {
		clock = RealClock()
	}
	return &RedisSessionStore{rdb: rdb, prefix: prefix, clock: clock}
}

func (r *RedisSessionStore) key(id string) string {
	return r.prefix + "session:" + id
}

func (r *RedisSessionStore) Save(ctx context.Context, s *models.Session) error {
	ttl := s.TTL(r.clock.Now())
	if ttl <= 0 {
		return errors.ErrSessionExpired
	}
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	if err := r.rdb.Set(ctx, r.key(s.ID), data, ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (r *RedisSessionStore) Get(ctx context.Context, id string) (*models.Session, error) {
	data, err := r.rdb.Get(ctx, r.key(id)).Bytes()
	if goerrors.Is(err, redis.Nil) {
		return nil, errors.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	var s models.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	if s.Expired(r.clock.Now()) {
		return nil, errors.ErrSessionExpired
	}
	return &s, nil
}

func (r *RedisSessionStore) Delete(ctx context.Context, id string) error {
	if err := r.rdb.Del(ctx, r.key(id)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
