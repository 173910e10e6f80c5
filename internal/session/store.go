package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "session:"

var ErrNotFound = errors.New("session not found")

type Store interface {
	// Save assigns an ID when s.ID is empty and persists s until s.ExpiresAt.
	Save(ctx context.Context, s *Session) error
	Load(ctx context.Context, id string) (*Session, error)
	// Touch moves the expiry of an existing session to now+ttl.
	Touch(ctx context.Context, s *Session, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}

type redisStore struct {
	rdb *redis.Client
	now func() time.Time
}

func NewRedisStore(rdb *redis.Client) Store {
	return &redisStore{rdb: rdb, now: time.Now}
}

func key(id string) string {
	return keyPrefix + id
}

func (r *redisStore) Save(ctx context.Context, s *Session) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	now := r.now()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}

	ttl := s.ExpiresAt.Sub(now)
	if ttl <= 0 {
		return fmt.Errorf("session %s already expired", s.ID)
	}

	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, key(s.ID), data, ttl).Err()
}

func (r *redisStore) Load(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		return nil, ErrNotFound
	}

	data, err := r.rdb.Get(ctx, key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	return &s, nil
}

func (r *redisStore) Touch(ctx context.Context, s *Session, ttl time.Duration) error {
	s.ExpiresAt = r.now().Add(ttl)
	return r.Save(ctx, s)
}

func (r *redisStore) Delete(ctx context.Context, id string) error {
	return r.rdb.Del(ctx, key(id)).Err()
}
