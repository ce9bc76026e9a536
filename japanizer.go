package japanizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/japanizer/internal/config"
	"github.com/aretw0/japanizer/internal/logging"
	"github.com/aretw0/japanizer/pkg/adapters/googleime"
	"github.com/aretw0/japanizer/pkg/adapters/memory"
	"github.com/aretw0/japanizer/pkg/adapters/redis"
	"github.com/aretw0/japanizer/pkg/domain"
	"github.com/aretw0/japanizer/pkg/japanize"
	"github.com/aretw0/japanizer/pkg/observability"
	"github.com/aretw0/japanizer/pkg/persistence/middleware"
	"github.com/aretw0/japanizer/pkg/ports"
	"github.com/aretw0/japanizer/pkg/preference"
	"github.com/prometheus/client_golang/prometheus"
)

// Version is the release of the japanizer module.
const Version = "0.4.0"

// App wires the conversion pipeline, the preference service and their backends
// from a Config. It is the entry point shared by the CLI, HTTP and MCP surfaces.
type App struct {
	config      *config.Config
	logger      *slog.Logger
	store       ports.PreferenceStore
	locker      ports.Locker
	kanji       ports.KanjiConverter
	registerer  prometheus.Registerer
	hooks       []domain.Hooks
	metrics     *observability.Metrics
	japanizer   *japanize.Japanizer
	preferences *preference.Service
	service     *japanize.Service
	closers     []func() error
}

// Option defines a functional option for configuring the App.
type Option func(*App)

// WithLogger sets the structured logger shared by every component.
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) {
		a.logger = logger
	}
}

// WithStore injects a preference store, bypassing the configured driver.
func WithStore(store ports.PreferenceStore) Option {
	return func(a *App) {
		a.store = store
	}
}

// WithKanjiConverter injects a kanji converter, bypassing the configured endpoint.
func WithKanjiConverter(c ports.KanjiConverter) Option {
	return func(a *App) {
		a.kanji = c
	}
}

// WithRegisterer registers the Prometheus collectors with reg when metrics are enabled.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(a *App) {
		a.registerer = reg
	}
}

// WithHooks adds observability hooks on top of the built-in ones.
func WithHooks(hooks domain.Hooks) Option {
	return func(a *App) {
		a.hooks = append(a.hooks, hooks)
	}
}

// New validates cfg and builds the App. A nil cfg uses config.Default().
func New(cfg *config.Config, opts ...Option) (*App, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	a := &App{config: cfg}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = logging.NewNop()
	}

	hooks := append([]domain.Hooks{observability.LogHooks(a.logger)}, a.hooks...)
	if cfg.Metrics.Enabled && a.registerer != nil {
		m, err := observability.NewMetrics(a.registerer)
		if err != nil {
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
		a.metrics = m
		hooks = append(hooks, m.Hooks())
	}
	joined := domain.Join(hooks...)

	if a.store == nil {
		store, err := a.openStore()
		if err != nil {
			return nil, err
		}
		a.store = store
	}
	store, err := a.wrapStore(a.store)
	if err != nil {
		return nil, err
	}
	a.store = store

	if a.kanji == nil {
		a.kanji = ports.Identity
		if cfg.Kanji.Enabled {
			a.kanji = googleime.New(
				googleime.WithEndpoint(cfg.Kanji.Endpoint),
				googleime.WithTimeout(time.Duration(cfg.Kanji.Timeout)),
				googleime.WithLogger(a.logger),
				googleime.WithHooks(joined),
			)
		}
	}

	settings, err := cfg.Settings()
	if err != nil {
		return nil, err
	}
	a.japanizer, err = japanize.New(settings,
		japanize.WithKanjiConverter(a.kanji),
		japanize.WithHooks(joined),
		japanize.WithLogger(a.logger),
		japanize.WithConcurrency(cfg.Kanji.Concurrency),
	)
	if err != nil {
		return nil, err
	}

	prefOpts := []preference.Option{
		preference.WithDefaultEnabled(cfg.Japanize.DefaultEnabled),
		preference.WithCacheTTL(time.Duration(cfg.Cache.TTL)),
		preference.WithMaxEntries(cfg.Cache.MaxEntries),
		preference.WithSweepSchedule(cfg.Cache.Sweep),
		preference.WithLogger(a.logger),
	}
	if a.locker != nil {
		prefOpts = append(prefOpts, preference.WithLocker(a.locker, preference.DefaultLockTTL))
	}
	a.preferences, err = preference.NewService(a.store, prefOpts...)
	if err != nil {
		return nil, err
	}

	a.service = japanize.NewService(a.japanizer, a.preferences, japanize.WithServiceLogger(a.logger))
	return a, nil
}

func (a *App) openStore() (ports.PreferenceStore, error) {
	switch a.config.Store.Driver {
	case config.DriverRedis:
		rc := a.config.Store.Redis
		store := redis.New(rc.Addr, rc.Password, rc.DB,
			redis.WithPrefix(rc.Prefix),
			redis.WithTTL(time.Duration(rc.TTL)),
		)
		a.closers = append(a.closers, store.Close)
		a.locker = store.Locker()
		a.logger.Info("using redis preference store", "addr", rc.Addr, "db", rc.DB)
		return store, nil
	default:
		return memory.NewStore(), nil
	}
}

// wrapStore applies the name masking and encryption middlewares the config asks for.
func (a *App) wrapStore(store ports.PreferenceStore) (ports.PreferenceStore, error) {
	var mws []middleware.Middleware
	if patterns := a.config.Store.MaskNames; len(patterns) > 0 {
		pii, err := middleware.NewPIIMiddleware(patterns)
		if err != nil {
			return nil, fmt.Errorf("invalid mask_names: %w", err)
		}
		mws = append(mws, pii)
	}

	active, fallback, err := a.config.Store.Encryption.Keys()
	if err != nil {
		return nil, err
	}
	if active != nil {
		mws = append(mws, middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
			ActiveKey:    active,
			FallbackKeys: fallback,
		}))
	}
	return middleware.Chain(store, mws...), nil
}

// Start begins the background cache sweep.
func (a *App) Start() {
	a.preferences.Start()
}

// Close stops the cache sweep and releases the store connection.
func (a *App) Close(ctx context.Context) error {
	a.preferences.Stop(ctx)
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}

// Config returns the configuration the App was built from.
func (a *App) Config() *config.Config {
	return a.config
}

// Logger returns the shared logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Japanizer returns the conversion pipeline.
func (a *App) Japanizer() *japanize.Japanizer {
	return a.japanizer
}

// Service returns the per-user conversion entry point.
func (a *App) Service() *japanize.Service {
	return a.service
}

// Preferences returns the cached preference service.
func (a *App) Preferences() *preference.Service {
	return a.preferences
}

// Metrics returns the collectors, or nil when metrics are disabled.
func (a *App) Metrics() *observability.Metrics {
	return a.metrics
}

// Store returns the preference backend.
func (a *App) Store() ports.PreferenceStore {
	return a.store
}
