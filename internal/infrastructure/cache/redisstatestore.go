package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dggcrm/dggcrm/internal/shared/biztime"
)

const (
	// OAuthStatePrefix namespaces OAuth state keys
	OAuthStatePrefix = "oauth:state:"
	// OAuthStateTTL bounds how long a login may take between redirect and callback
	OAuthStateTTL = 10 * time.Minute
)

// ErrStateNotFound is returned for unknown, expired or already used states.
var ErrStateNotFound = errors.New("state not found or expired")

// StateInfo stores state-related information for OAuth flow
type StateInfo struct {
	Provider     string    `json:"provider"`
	CodeVerifier string    `json:"code_verifier"`
	CreatedAt    time.Time `json:"created_at"`
}

// StateStore keeps OAuth state for a single use.
type StateStore interface {
	Set(ctx context.Context, state string, info StateInfo) error
	// VerifyAndGet returns and removes the state.
	VerifyAndGet(ctx context.Context, state string) (*StateInfo, error)
}

func validateStateInfo(state string, info StateInfo) error {
	if state == "" {
		return errors.New("state cannot be empty")
	}
	if info.CodeVerifier == "" {
		return errors.New("code_verifier cannot be empty")
	}
	return nil
}

// RedisStateStore provides Redis-based state storage for OAuth flows
type RedisStateStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisStateStore(client *redis.Client, prefix string, ttl time.Duration) *RedisStateStore {
	if prefix == "" {
		prefix = OAuthStatePrefix
	}
	if ttl <= 0 {
		ttl = OAuthStateTTL
	}
	return &RedisStateStore{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (s *RedisStateStore) Set(ctx context.Context, state string, info StateInfo) error {
	if err := validateStateInfo(state, info); err != nil {
		return err
	}
	if info.CreatedAt.IsZero() {
		info.CreatedAt = biztime.NowUTC()
	}

	data, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal state info: %w", err)
	}

	if err := s.client.Set(ctx, s.buildKey(state), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store state in redis: %w", err)
	}
	return nil
}

// VerifyAndGet uses GETDEL so a state can only be consumed once.
func (s *RedisStateStore) VerifyAndGet(ctx context.Context, state string) (*StateInfo, error) {
	if state == "" {
		return nil, ErrStateNotFound
	}

	data, err := s.client.GetDel(ctx, s.buildKey(state)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrStateNotFound
		}
		return nil, fmt.Errorf("failed to retrieve state from redis: %w", err)
	}

	var info StateInfo
	if err := json.Unmarshal([]byte(data), &info); err != nil {
		return nil, fmt.Errorf("failed to unmarshal state info: %w", err)
	}
	return &info, nil
}

func (s *RedisStateStore) buildKey(state string) string {
	return s.prefix + state
}

// MemoryStateStore is the single-process fallback used when Redis is not
// configured.
type MemoryStateStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]StateInfo
	now     func() time.Time
}

func NewMemoryStateStore(ttl time.Duration) *MemoryStateStore {
	if ttl <= 0 {
		ttl = OAuthStateTTL
	}
	return &MemoryStateStore{
		ttl:     ttl,
		entries: make(map[string]StateInfo),
		now:     biztime.NowUTC,
	}
}

func (s *MemoryStateStore) Set(_ context.Context, state string, info StateInfo) error {
	if err := validateStateInfo(state, info); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	info.CreatedAt = now
	s.evictExpiredLocked(now)
	s.entries[state] = info
	return nil
}

func (s *MemoryStateStore) VerifyAndGet(_ context.Context, state string) (*StateInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	info, ok := s.entries[state]
	if !ok {
		return nil, ErrStateNotFound
	}
	delete(s.entries, state)
	if s.now().Sub(info.CreatedAt) > s.ttl {
		return nil, ErrStateNotFound
	}
	return &info, nil
}

func (s *MemoryStateStore) evictExpiredLocked(now time.Time) {
	for k, v := range s.entries {
		if now.Sub(v.CreatedAt) > s.ttl {
			delete(s.entries, k)
		}
	}
}
