// File: cleanitalia/utils/session.go
package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

const AdminSessionPrefix = "adminSession:"

// AdminSessionTTL bounds how long an admin token stays valid without re-login.
const AdminSessionTTL = 12 * time.Hour

// AdminSession represents a live admin dashboard session.
type AdminSession struct {
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}

// SessionStore persists admin sessions keyed by the SHA-256 hash of the
// bearer token. The Redis implementation is used in production; the memory
// implementation backs mock mode and tests.
type SessionStore interface {
	Save(ctx context.Context, tokenHash string, session AdminSession) error
	Get(ctx context.Context, tokenHash string) (*AdminSession, error)
	Delete(ctx context.Context, tokenHash string) error
}

// RedisSessionStore stores sessions in the auth Redis DB with a TTL.
type RedisSessionStore struct {
	Client *redis.Client
}

func (s *RedisSessionStore) Save(ctx context.Context, tokenHash string, session AdminSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal admin session: %w", err)
	}
	if err := s.Client.Set(ctx, AdminSessionPrefix+tokenHash, data, AdminSessionTTL).Err(); err != nil {
		return fmt.Errorf("failed to save admin session: %w", err)
	}
	return nil
}

func (s *RedisSessionStore) Get(ctx context.Context, tokenHash string) (*AdminSession, error) {
	data, err := s.Client.Get(ctx, AdminSessionPrefix+tokenHash).Result()
	if err != nil {
		return nil, err
	}
	var session AdminSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal admin session: %w", err)
	}
	return &session, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, tokenHash string) error {
	return s.Client.Del(ctx, AdminSessionPrefix+tokenHash).Err()
}

// MemorySessionStore keeps sessions in a map guarded by a mutex.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]AdminSession
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]AdminSession)}
}

func (s *MemorySessionStore) Save(ctx context.Context, tokenHash string, session AdminSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[tokenHash] = session
	return nil
}

func (s *MemorySessionStore) Get(ctx context.Context, tokenHash string) (*AdminSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[tokenHash]
	if !ok {
		return nil, redis.Nil
	}
	if time.Since(session.CreatedAt) > AdminSessionTTL {
		return nil, redis.Nil
	}
	return &session, nil
}

func (s *MemorySessionStore) Delete(ctx context.Context, tokenHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, tokenHash)
	return nil
}
