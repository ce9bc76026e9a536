package config

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/aretw0/japanizer/pkg/adapters/googleime"
	"github.com/aretw0/japanizer/pkg/adapters/redis"
	"github.com/aretw0/japanizer/pkg/domain"
	"github.com/aretw0/japanizer/pkg/japanize"
	"github.com/aretw0/japanizer/pkg/preference"
	"github.com/aretw0/japanizer/pkg/richtext"
	"gopkg.in/yaml.v3"
)

// DefaultPath is read when no --config flag is given.
const DefaultPath = "japanizer.yaml"

// Store drivers.
const (
	DriverMemory = "memory"
	DriverRedis  = "redis"
)

// Config is the full application configuration.
type Config struct {
	Japanize JapanizeConfig `yaml:"japanize" json:"japanize"`
	Kanji    KanjiConfig    `yaml:"kanji" json:"kanji"`
	Store    StoreConfig    `yaml:"store" json:"store"`
	Cache    CacheConfig    `yaml:"cache" json:"cache"`
	Server   ServerConfig   `yaml:"server" json:"server"`
	Metrics  MetricsConfig  `yaml:"metrics" json:"metrics"`
	Log      LogConfig      `yaml:"log" json:"log"`
}

// JapanizeConfig controls the conversion pipeline.
type JapanizeConfig struct {
	DefaultEnabled bool   `yaml:"default_enabled" json:"default_enabled"`
	Condition      string `yaml:"condition" json:"condition"`
	ForcePrefix    string `yaml:"force_prefix" json:"force_prefix"`
	PreventPrefix  string `yaml:"prevent_prefix" json:"prevent_prefix"`
	MessageFormat  string `yaml:"message_format" json:"message_format"`
}

// KanjiConfig controls the remote kanji conversion.
type KanjiConfig struct {
	Enabled     bool     `yaml:"enabled" json:"enabled"`
	Endpoint    string   `yaml:"endpoint" json:"endpoint"`
	Timeout     Duration `yaml:"timeout" json:"timeout"`
	Concurrency int      `yaml:"concurrency" json:"concurrency"`
}

// StoreConfig selects the preference backend.
type StoreConfig struct {
	Driver     string           `yaml:"driver" json:"driver"`
	Redis      RedisConfig      `yaml:"redis" json:"redis"`
	Encryption EncryptionConfig `yaml:"encryption" json:"encryption"`
	// MaskNames lists patterns; matching display names are masked before they are stored.
	MaskNames []string `yaml:"mask_names" json:"mask_names"`
}

// EncryptionConfig holds base64 AES-256 keys for display names at rest.
// An empty Key disables encryption.
type EncryptionConfig struct {
	Key          string   `yaml:"key" json:"key"`
	FallbackKeys []string `yaml:"fallback_keys" json:"fallback_keys"`
}

// Keys decodes the active and fallback keys. Every key must be 32 bytes.
func (e EncryptionConfig) Keys() (active []byte, fallback [][]byte, err error) {
	if e.Key == "" {
		return nil, nil, nil
	}
	decode := func(name, v string) ([]byte, error) {
		key, err := base64.StdEncoding.DecodeString(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		if len(key) != 32 {
			return nil, fmt.Errorf("%s must decode to 32 bytes, got %d", name, len(key))
		}
		return key, nil
	}

	if active, err = decode("encryption key", e.Key); err != nil {
		return nil, nil, err
	}
	for i, v := range e.FallbackKeys {
		key, err := decode(fmt.Sprintf("fallback key %d", i), v)
		if err != nil {
			return nil, nil, err
		}
		fallback = append(fallback, key)
	}
	return active, fallback, nil
}

// RedisConfig configures the Redis preference store.
type RedisConfig struct {
	Addr     string   `yaml:"addr" json:"addr"`
	Password string   `yaml:"password" json:"password"`
	DB       int      `yaml:"db" json:"db"`
	Prefix   string   `yaml:"prefix" json:"prefix"`
	TTL      Duration `yaml:"ttl" json:"ttl"`
}

// CacheConfig configures the preference cache.
type CacheConfig struct {
	TTL        Duration `yaml:"ttl" json:"ttl"`
	MaxEntries int      `yaml:"max_entries" json:"max_entries"`
	Sweep      string   `yaml:"sweep" json:"sweep"`
}

type ServerConfig struct {
	Addr string `yaml:"addr" json:"addr"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled" json:"enabled"`
}

type LogConfig struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Japanize: JapanizeConfig{
			DefaultEnabled: true,
			Condition:      japanize.DefaultCondition,
			ForcePrefix:    japanize.DefaultForcePrefix,
			PreventPrefix:  japanize.DefaultPreventPrefix,
			MessageFormat:  japanize.DefaultMessageFormat,
		},
		Kanji: KanjiConfig{
			Enabled:     true,
			Endpoint:    googleime.DefaultEndpoint,
			Timeout:     Duration(googleime.DefaultTimeout),
			Concurrency: japanize.DefaultConcurrency,
		},
		Store: StoreConfig{
			Driver: DriverMemory,
			Redis: RedisConfig{
				Addr:   "localhost:6379",
				Prefix: redis.DefaultPrefix,
			},
		},
		Cache: CacheConfig{
			TTL:        Duration(preference.DefaultCacheTTL),
			MaxEntries: preference.DefaultMaxEntries,
			Sweep:      preference.DefaultSweepSchedule,
		},
		Server: ServerConfig{Addr: ":8080"},
		Metrics: MetricsConfig{
			Enabled: true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads a YAML or JSON file over the defaults, then applies environment overrides.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	case strings.ToLower(filepath.Ext(path)) == ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate compiles the trigger condition, the message format and the store options.
func (c *Config) Validate() error {
	_, err := c.Settings()
	if err != nil {
		return err
	}
	switch c.Store.Driver {
	case DriverMemory, DriverRedis:
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}
	if c.Kanji.Timeout <= 0 {
		return fmt.Errorf("kanji timeout must be positive, got %s", c.Kanji.Timeout)
	}
	if _, _, err := c.Store.Encryption.Keys(); err != nil {
		return err
	}
	for _, p := range c.Store.MaskNames {
		if _, err := regexp.Compile(p); err != nil {
			return fmt.Errorf("mask_names: %w", err)
		}
	}
	return nil
}

// Settings builds the conversion context.
// An empty condition never matches and an empty format disables decoration.
func (c *Config) Settings() (domain.Settings, error) {
	s := domain.Settings{
		PreventPrefix: c.Japanize.PreventPrefix,
		ForcePrefix:   c.Japanize.ForcePrefix,
	}

	if c.Japanize.Condition != "" {
		cond, err := japanize.CompileCondition(c.Japanize.Condition)
		if err != nil {
			return domain.Settings{}, err
		}
		s.Condition = cond
	}

	if c.Japanize.MessageFormat != "" {
		tmpl, err := richtext.Parse(c.Japanize.MessageFormat)
		if err != nil {
			return domain.Settings{}, fmt.Errorf("message_format: %w", err)
		}
		s.Template = tmpl
	}

	return s, nil
}

// Duration is a time.Duration written as a Go duration string ("5s", "1h").
type Duration time.Duration

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

func (d Duration) String() string {
	return time.Duration(d).String()
}
