// Package config loads the TOML configuration used by the serve and
// graph commands.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Cache backend names accepted in [CacheConfig].
const (
	CacheBackendFile  = "file"
	CacheBackendRedis = "redis"
	CacheBackendNone  = "none"
)

// Duration wraps time.Duration so TTLs can be written as "15m" or "2h"
// in the TOML file.
type Duration struct {
	time.Duration
}

// UnmarshalText parses a Go duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// Config is the full configuration tree.
type Config struct {
	Server ServerConfig `toml:"server"`
	Mongo  MongoConfig  `toml:"mongo"`
	Cache  CacheConfig  `toml:"cache"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	// Listen is the address the API binds to (e.g. ":8080").
	Listen string `toml:"listen"`
}

// MongoConfig configures the graph store backend.
type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// CacheConfig configures the rendered-artifact cache.
type CacheConfig struct {
	// Backend selects the implementation: "file", "redis" or "none".
	Backend string `toml:"backend"`
	// Dir is the cache directory for the file backend.
	Dir string `toml:"dir"`
	// RedisAddr is the host:port for the redis backend.
	RedisAddr string `toml:"redis_addr"`
	// RedisPassword may be empty.
	RedisPassword string `toml:"redis_password"`
	// RedisDB selects the logical redis database.
	RedisDB int `toml:"redis_db"`
	// TTL bounds the lifetime of cached artifacts. 0 means no expiry.
	TTL Duration `toml:"ttl"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Server: ServerConfig{Listen: ":8080"},
		Mongo: MongoConfig{
			URI:        "mongodb://localhost:27017",
			Database:   "typewire",
			Collection: "graphs",
		},
		Cache: CacheConfig{
			Backend: CacheBackendNone,
			TTL:     Duration{Duration: time.Hour},
		},
	}
}

// Load reads the TOML file at path on top of the defaults. A missing
// path returns the defaults unchanged; unknown keys in the file are an
// error so that typos surface instead of silently using defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, fmt.Errorf("config file %s does not exist", path)
		}
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("unknown config key %q in %s", undecoded[0].String(), path)
	}
	if err := validate(cfg); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func validate(cfg Config) error {
	switch cfg.Cache.Backend {
	case CacheBackendFile:
		if cfg.Cache.Dir == "" {
			return fmt.Errorf("cache backend %q requires cache.dir", cfg.Cache.Backend)
		}
	case CacheBackendRedis:
		if cfg.Cache.RedisAddr == "" {
			return fmt.Errorf("cache backend %q requires cache.redis_addr", cfg.Cache.Backend)
		}
	case CacheBackendNone:
	default:
		return fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
	if cfg.Server.Listen == "" {
		return fmt.Errorf("server.listen must not be empty")
	}
	return nil
}
