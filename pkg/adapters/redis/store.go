package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/japanizer/pkg/domain"
	"github.com/google/uuid"
	backend "github.com/redis/go-redis/v9"
)

// DefaultPrefix is prepended to every preference key.
const DefaultPrefix = "japanizer:preference:"

// Store implements ports.PreferenceStore using Redis.
// Each preference is a JSON value under prefix+userID.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration for stored preferences. Zero keeps them forever.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for preferences.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: DefaultPrefix,
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

func (s *Store) key(userID uuid.UUID) string {
	return s.prefix + userID.String()
}

// Save persists the preference to Redis.
func (s *Store) Save(ctx context.Context, pref domain.Preference) error {
	data, err := json.Marshal(pref)
	if err != nil {
		return fmt.Errorf("failed to marshal preference: %w", err)
	}

	if err := s.client.Set(ctx, s.key(pref.UserID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Load retrieves the preference from Redis.
func (s *Store) Load(ctx context.Context, userID uuid.UUID) (domain.Preference, error) {
	val, err := s.client.Get(ctx, s.key(userID)).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return domain.Preference{}, domain.ErrPreferenceNotFound
		}
		return domain.Preference{}, fmt.Errorf("failed to get from redis: %w", err)
	}

	var pref domain.Preference
	if err := json.Unmarshal(val, &pref); err != nil {
		return domain.Preference{}, fmt.Errorf("failed to unmarshal preference: %w", err)
	}

	return pref, nil
}

// Delete removes the preference.
func (s *Store) Delete(ctx context.Context, userID uuid.UUID) error {
	return s.client.Del(ctx, s.key(userID)).Err()
}

// Ping checks connectivity to the server.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
