package config

import (
	"fmt"
	"strconv"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "JAPANIZER_"

type lookupFunc func(key string) (string, bool)

// applyEnv overrides fields from the environment.
// Prefixes honor an explicitly empty variable, which disables them.
func (c *Config) applyEnv(lookup lookupFunc) error {
	str := func(name string, dst *string, allowEmpty bool) {
		if v, ok := lookup(EnvPrefix + name); ok && (allowEmpty || v != "") {
			*dst = v
		}
	}
	str("CONDITION", &c.Japanize.Condition, true)
	str("FORCE_PREFIX", &c.Japanize.ForcePrefix, true)
	str("PREVENT_PREFIX", &c.Japanize.PreventPrefix, true)
	str("MESSAGE_FORMAT", &c.Japanize.MessageFormat, true)
	str("KANJI_ENDPOINT", &c.Kanji.Endpoint, false)
	str("STORE_DRIVER", &c.Store.Driver, false)
	str("REDIS_ADDR", &c.Store.Redis.Addr, false)
	str("REDIS_PASSWORD", &c.Store.Redis.Password, false)
	str("REDIS_PREFIX", &c.Store.Redis.Prefix, false)
	str("ENCRYPTION_KEY", &c.Store.Encryption.Key, false)
	str("SERVER_ADDR", &c.Server.Addr, false)
	str("LOG_LEVEL", &c.Log.Level, false)
	str("LOG_FORMAT", &c.Log.Format, false)

	bools := map[string]*bool{
		"DEFAULT_ENABLED": &c.Japanize.DefaultEnabled,
		"KANJI_ENABLED":   &c.Kanji.Enabled,
		"METRICS_ENABLED": &c.Metrics.Enabled,
	}
	for name, dst := range bools {
		if v, ok := lookup(EnvPrefix + name); ok && v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
			}
			*dst = b
		}
	}

	ints := map[string]*int{
		"REDIS_DB":          &c.Store.Redis.DB,
		"KANJI_CONCURRENCY": &c.Kanji.Concurrency,
	}
	for name, dst := range ints {
		if v, ok := lookup(EnvPrefix + name); ok && v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
			}
			*dst = n
		}
	}

	durations := map[string]*Duration{
		"KANJI_TIMEOUT": &c.Kanji.Timeout,
		"CACHE_TTL":     &c.Cache.TTL,
	}
	for name, dst := range durations {
		if v, ok := lookup(EnvPrefix + name); ok && v != "" {
			if err := dst.UnmarshalText([]byte(v)); err != nil {
				return fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
			}
		}
	}

	return nil
}
