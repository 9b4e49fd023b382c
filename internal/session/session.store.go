package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Storage keys, kept byte-for-byte compatible with what the platform's other
// surfaces write: one bearer token per role, a super-admin impersonation
// marker, and a cached profile blob.
const (
	UserTokenKey      = "user-token"
	AdminTokenKey     = "admin-token"
	TherapistTokenKey = "therapist-token"

	superAdminMarkerKey = "isLogInViaSuperAdmin"
	profileKey          = "userData"
)

// Profile is the cached profile blob written at sign-in and read by the
// impersonation banner. Fields are optional; absent ones render empty.
type Profile struct {
	Name            string `json:"name,omitempty"`
	Email           string `json:"email,omitempty"`
	SuperAdminName  string `json:"superAdminName,omitempty"`
	SuperAdminEmail string `json:"superAdminEmail,omitempty"`
}

// Repository is the explicit session boundary: per-browser-session key/value
// state, no ambient globals. Tokens are opaque strings with no expiry logic.
type Repository interface {
	Token(ctx context.Context, sid, key string) (string, error)
	SetToken(ctx context.Context, sid, key, token string) error
	DeleteToken(ctx context.Context, sid, key string) error
	Clear(ctx context.Context, sid string) error

	Impersonating(ctx context.Context, sid string) (bool, error)
	SetImpersonating(ctx context.Context, sid string, on bool) error

	Profile(ctx context.Context, sid string) (*Profile, error)
	SetProfile(ctx context.Context, sid string, p Profile) error
}

// RedisStore keeps each browser session as a Redis hash. A sliding TTL stops
// abandoned sessions from accumulating; tokens themselves never expire
// client-side.
type RedisStore struct {
	client redis.UniversalClient
	ttl    time.Duration
}

var _ Repository = (*RedisStore)(nil)

func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client, ttl: 30 * 24 * time.Hour}
}

func sessionKey(sid string) string {
	return "dashboard:session:" + sid
}

func (s *RedisStore) Token(ctx context.Context, sid, key string) (string, error) {
	v, err := s.client.HGet(ctx, sessionKey(sid), key).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("load token %s: %w", key, err)
	}
	return v, nil
}

func (s *RedisStore) SetToken(ctx context.Context, sid, key, token string) error {
	if err := s.client.HSet(ctx, sessionKey(sid), key, token).Err(); err != nil {
		return fmt.Errorf("persist token %s: %w", key, err)
	}
	_ = s.client.Expire(ctx, sessionKey(sid), s.ttl).Err()
	return nil
}

func (s *RedisStore) DeleteToken(ctx context.Context, sid, key string) error {
	if err := s.client.HDel(ctx, sessionKey(sid), key).Err(); err != nil && err != redis.Nil {
		return fmt.Errorf("delete token %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context, sid string) error {
	if err := s.client.Del(ctx, sessionKey(sid)).Err(); err != nil && err != redis.Nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (s *RedisStore) Impersonating(ctx context.Context, sid string) (bool, error) {
	v, err := s.client.HGet(ctx, sessionKey(sid), superAdminMarkerKey).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load impersonation marker: %w", err)
	}
	return v == "true", nil
}

func (s *RedisStore) SetImpersonating(ctx context.Context, sid string, on bool) error {
	if !on {
		if err := s.client.HDel(ctx, sessionKey(sid), superAdminMarkerKey).Err(); err != nil && err != redis.Nil {
			return fmt.Errorf("clear impersonation marker: %w", err)
		}
		return nil
	}
	if err := s.client.HSet(ctx, sessionKey(sid), superAdminMarkerKey, "true").Err(); err != nil {
		return fmt.Errorf("set impersonation marker: %w", err)
	}
	return nil
}

func (s *RedisStore) Profile(ctx context.Context, sid string) (*Profile, error) {
	raw, err := s.client.HGet(ctx, sessionKey(sid), profileKey).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	var p Profile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		// A corrupt blob reads as no profile.
		return nil, nil
	}
	return &p, nil
}

func (s *RedisStore) SetProfile(ctx context.Context, sid string, p Profile) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	if err := s.client.HSet(ctx, sessionKey(sid), profileKey, raw).Err(); err != nil {
		return fmt.Errorf("persist profile: %w", err)
	}
	return nil
}
