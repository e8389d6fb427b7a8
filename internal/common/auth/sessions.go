// Package auth resolves session tokens to the customer they are bound to.
// Sessions live in Redis and are written by the login surface, which is a
// separate service; this package only reads them.
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"catalog-assistant/internal/common/database"
	"catalog-assistant/internal/common/errors"

	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

// Session is the stored shape of one authenticated session.
type Session struct {
	CustomerID string    `json:"customerId"`
	CreatedAt  time.Time `json:"createdAt"`
	ExpiresAt  time.Time `json:"expiresAt"`
}

// IsExpired checks if session has expired
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// SessionStore reads sessions from Redis.
type SessionStore struct {
	redis *database.RedisClient
}

func NewSessionStore(redis *database.RedisClient) *SessionStore {
	return &SessionStore{redis: redis}
}

// Resolve returns the session bound to token. A missing, malformed, or
// expired session yields an AuthorizationError.
func (s *SessionStore) Resolve(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, errors.NewAuthorizationError("no session token provided")
	}

	raw, err := s.redis.Get(ctx, sessionKeyPrefix+token)
	if err == redis.Nil {
		return nil, errors.NewAuthorizationError("session not found")
	}
	if err != nil {
		return nil, errors.NewAuthorizationError(fmt.Sprintf("session lookup failed: %v", err))
	}

	var session Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return nil, errors.NewAuthorizationError("session record is malformed")
	}

	if session.IsExpired() {
		return nil, errors.NewAuthorizationError("session has expired")
	}

	return &session, nil
}

// Authorize resolves token and verifies the session is bound to customerID.
func (s *SessionStore) Authorize(ctx context.Context, token, customerID string) (*Session, error) {
	session, err := s.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}

	if session.CustomerID != customerID {
		return nil, errors.NewAuthorizationError("session does not match the requested customer")
	}

	return session, nil
}
