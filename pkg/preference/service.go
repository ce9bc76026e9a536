package preference

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/japanizer/internal/logging"
	"github.com/aretw0/japanizer/pkg/domain"
	"github.com/aretw0/japanizer/pkg/ports"
	"github.com/google/uuid"
	"github.com/jellydator/ttlcache/v3"
	"github.com/robfig/cron/v3"
)

const (
	DefaultCacheTTL      = time.Hour
	DefaultMaxEntries    = 100
	DefaultSweepSchedule = "@every 1m"
	DefaultLockTTL       = 5 * time.Second
)

// Service resolves user preferences through a cache in front of a store.
type Service struct {
	store          ports.PreferenceStore
	defaultEnabled bool
	logger         *slog.Logger

	ttl        time.Duration
	maxEntries int
	schedule   string

	locker  ports.Locker
	lockTTL time.Duration

	cache *ttlcache.Cache[uuid.UUID, domain.Preference]
	cron  *cron.Cron
}

type Option func(*Service)

// WithDefaultEnabled sets the value returned for users without a stored preference.
func WithDefaultEnabled(enabled bool) Option {
	return func(s *Service) {
		s.defaultEnabled = enabled
	}
}

// WithCacheTTL sets how long an entry survives without being read or written.
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *Service) {
		s.ttl = ttl
	}
}

// WithMaxEntries bounds the cache. The least recently accessed entry is evicted first.
func WithMaxEntries(n int) Option {
	return func(s *Service) {
		s.maxEntries = n
	}
}

// WithSweepSchedule sets the cron expression of the expiry sweep. Empty disables it.
func WithSweepSchedule(spec string) Option {
	return func(s *Service) {
		s.schedule = spec
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}

// WithLocker makes Update hold a lock per user, for stores shared by several replicas.
func WithLocker(l ports.Locker, ttl time.Duration) Option {
	return func(s *Service) {
		s.locker = l
		if ttl > 0 {
			s.lockTTL = ttl
		}
	}
}

// NewService creates a preference service. Call Start to run the expiry sweep.
func NewService(store ports.PreferenceStore, opts ...Option) (*Service, error) {
	s := &Service{
		store:          store,
		defaultEnabled: true,
		logger:         logging.NewNop(),
		ttl:            DefaultCacheTTL,
		maxEntries:     DefaultMaxEntries,
		schedule:       DefaultSweepSchedule,
		lockTTL:        DefaultLockTTL,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Hits renew the TTL, so entries expire after last access.
	cacheOpts := []ttlcache.Option[uuid.UUID, domain.Preference]{
		ttlcache.WithTTL[uuid.UUID, domain.Preference](s.ttl),
	}
	if s.maxEntries > 0 {
		cacheOpts = append(cacheOpts, ttlcache.WithCapacity[uuid.UUID, domain.Preference](uint64(s.maxEntries)))
	}
	s.cache = ttlcache.New(cacheOpts...)
	s.cron = cron.New()
	if s.schedule != "" {
		if _, err := s.cron.AddFunc(s.schedule, s.sweep); err != nil {
			return nil, fmt.Errorf("invalid sweep schedule %q: %w", s.schedule, err)
		}
	}
	return s, nil
}

// Start runs the expiry sweep in the background.
func (s *Service) Start() {
	s.cron.Start()
}

// Stop halts the sweep and waits for a running one to finish or ctx to end.
func (s *Service) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		s.logger.Warn("preference sweep did not stop in time")
	}
}

// Load returns the preference of userID.
// Unknown users get the default preference, which is not cached.
func (s *Service) Load(ctx context.Context, userID uuid.UUID) (domain.Preference, error) {
	if item := s.cache.Get(userID); item != nil {
		return item.Value(), nil
	}

	pref, err := s.store.Load(ctx, userID)
	if errors.Is(err, domain.ErrPreferenceNotFound) {
		return domain.Preference{UserID: userID, Enabled: s.defaultEnabled}, nil
	}
	if err != nil {
		s.logger.Error("failed to load preference", "user", userID, "error", err)
		return domain.Preference{}, fmt.Errorf("failed to load preference: %w", err)
	}

	s.cache.Set(userID, pref, ttlcache.DefaultTTL)
	return pref, nil
}

// Save caches the preference and persists it.
func (s *Service) Save(ctx context.Context, pref domain.Preference) error {
	s.cache.Set(pref.UserID, pref, ttlcache.DefaultTTL)
	if err := s.store.Save(ctx, pref); err != nil {
		s.logger.Error("failed to save preference", "user", pref.UserID, "error", err)
		return fmt.Errorf("failed to save preference: %w", err)
	}
	return nil
}

// SetEnabled loads, updates and saves the toggle of userID.
func (s *Service) SetEnabled(ctx context.Context, userID uuid.UUID, enabled bool) (domain.Preference, error) {
	return s.Update(ctx, userID, func(p *domain.Preference) {
		p.Enabled = enabled
	})
}

// Update applies fn to the preference of userID and saves the result.
// With a Locker the read-modify-write holds the user's lock and reads the store, not the cache.
func (s *Service) Update(ctx context.Context, userID uuid.UUID, fn func(*domain.Preference)) (domain.Preference, error) {
	if s.locker != nil {
		unlock, err := s.locker.Lock(ctx, userID.String(), s.lockTTL)
		if err != nil {
			return domain.Preference{}, fmt.Errorf("failed to lock preference: %w", err)
		}
		defer func() {
			if err := unlock(context.WithoutCancel(ctx)); err != nil {
				s.logger.Warn("failed to release preference lock", "user", userID, "error", err)
			}
		}()
		s.cache.Delete(userID)
	}

	pref, err := s.Load(ctx, userID)
	if err != nil {
		return domain.Preference{}, err
	}
	fn(&pref)
	pref.UserID = userID
	return pref, s.Save(ctx, pref)
}

// Invalidate drops the cached preference of userID.
func (s *Service) Invalidate(userID uuid.UUID) {
	s.cache.Delete(userID)
}

// Cached returns the number of cached preferences, expired ones not yet swept included.
func (s *Service) Cached() int {
	return s.cache.Len()
}

func (s *Service) sweep() {
	s.cache.DeleteExpired()
	s.logger.Debug("swept preference cache", "cached", s.cache.Len())
}
