package questionnaire

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Store holds live sessions keyed by identity. Get returns ErrNoActiveSession
// when nothing is stored. Implementations must not share Session values with
// callers.
type Store interface {
	Get(ctx context.Context, identity string) (*Session, error)
	Put(ctx context.Context, s *Session) error
	Delete(ctx context.Context, identity string) error
}

// MemoryStore keeps sessions in process memory. Sessions idle for longer
// than ttl are dropped lazily on Get and by the janitor.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
	logger   *zap.Logger
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an in-memory store. A ttl of zero disables eviction.
func NewMemoryStore(ttl time.Duration, logger *zap.Logger) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
		logger:   logger.Named("MemorySessionStore"),
	}
}

func (m *MemoryStore) expired(s *Session, now time.Time) bool {
	return m.ttl > 0 && now.Sub(s.UpdatedAt) > m.ttl
}

func (m *MemoryStore) Get(_ context.Context, identity string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[identity]
	if !ok {
		return nil, ErrNoActiveSession
	}
	if m.expired(s, m.now()) {
		delete(m.sessions, identity)
		sessionsInMemory.Set(float64(len(m.sessions)))
		sessionsEvictedTotal.Inc()
		return nil, ErrNoActiveSession
	}
	return s.Clone(), nil
}

func (m *MemoryStore) Put(_ context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.Identity] = s.Clone()
	sessionsInMemory.Set(float64(len(m.sessions)))
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, identity string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, identity)
	sessionsInMemory.Set(float64(len(m.sessions)))
	return nil
}

// EvictIdle removes every expired session and reports how many were dropped.
func (m *MemoryStore) EvictIdle() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	evicted := 0
	for id, s := range m.sessions {
		if m.expired(s, now) {
			delete(m.sessions, id)
			evicted++
		}
	}
	sessionsInMemory.Set(float64(len(m.sessions)))
	sessionsEvictedTotal.Add(float64(evicted))
	return evicted
}

// RunJanitor calls EvictIdle every interval until ctx is done.
func (m *MemoryStore) RunJanitor(ctx context.Context, interval time.Duration) {
	if m.ttl <= 0 || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			m.logger.Info("Session janitor stopped")
			return
		case <-ticker.C:
			if n := m.EvictIdle(); n > 0 {
				m.logger.Info("Evicted idle questionnaire sessions", zap.Int("count", n))
			}
		}
	}
}

const redisSessionKeyPrefix = "questionnaire:session:"

// RedisStore keeps sessions as JSON values with a sliding TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

var _ Store = (*RedisStore)(nil)

func NewRedisStore(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    ttl,
		logger: logger.Named("RedisSessionStore"),
	}
}

func redisSessionKey(identity string) string {
	return redisSessionKeyPrefix + identity
}

func (r *RedisStore) Get(ctx context.Context, identity string) (*Session, error) {
	data, err := r.client.Get(ctx, redisSessionKey(identity)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNoActiveSession
		}
		r.logger.Error("Failed to load session", zap.String("identity", identity), zap.Error(err))
		return nil, fmt.Errorf("failed to load questionnaire session: %w", err)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		r.logger.Error("Stored session is corrupt, dropping it", zap.String("identity", identity), zap.Error(err))
		_ = r.client.Del(ctx, redisSessionKey(identity)).Err()
		return nil, ErrNoActiveSession
	}
	return &s, nil
}

func (r *RedisStore) Put(ctx context.Context, s *Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode questionnaire session: %w", err)
	}
	if err := r.client.Set(ctx, redisSessionKey(s.Identity), data, r.ttl).Err(); err != nil {
		r.logger.Error("Failed to save session", zap.String("identity", s.Identity), zap.Error(err))
		return fmt.Errorf("failed to save questionnaire session: %w", err)
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, identity string) error {
	if err := r.client.Del(ctx, redisSessionKey(identity)).Err(); err != nil {
		return fmt.Errorf("failed to delete questionnaire session: %w", err)
	}
	return nil
}
