// Package config loads service configuration from defaults, an optional
// YAML file and SPOTIFINDER_-prefixed environment variables, in that order
// of increasing priority.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// envPrefix namespaces the service's environment variables, e.g.
// SPOTIFINDER_SPOTIFY_CLIENT_ID overrides spotify.client_id.
const envPrefix = "SPOTIFINDER_"

// Config holds all service configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Spotify   SpotifyConfig   `koanf:"spotify"`
	Catalog   CatalogConfig   `koanf:"catalog"`
	Recommend RecommendConfig `koanf:"recommend"`
	Worker    WorkerConfig    `koanf:"worker"`
	Log       LogConfig       `koanf:"log"`
}

type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

type SpotifyConfig struct {
	ClientID     string   `koanf:"client_id"`
	ClientSecret string   `koanf:"client_secret"`
	Genres       []string `koanf:"genres"`
	PerGenre     int      `koanf:"per_genre"`
}

type CatalogConfig struct {
	CachePath      string `koanf:"cache_path"`
	Clusters       int    `koanf:"clusters"`
	RefreshOnStart bool   `koanf:"refresh_on_start"`
}

type RecommendConfig struct {
	DefaultLimit     int     `koanf:"default_limit"`
	MaxLimit         int     `koanf:"max_limit"`
	PreferenceWeight float64 `koanf:"preference_weight"`
}

type WorkerConfig struct {
	Workers   int `koanf:"workers"`
	QueueSize int `koanf:"queue_size"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Pretty bool   `koanf:"pretty"`
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ShutdownTimeout: 10 * time.Second,
		},
		Spotify: SpotifyConfig{
			Genres:   []string{"pop", "rock", "jazz", "classical", "electronic"},
			PerGenre: 100,
		},
		Catalog: CatalogConfig{
			CachePath:      "spotifinder.db",
			Clusters:       8,
			RefreshOnStart: false,
		},
		Recommend: RecommendConfig{
			DefaultLimit:     15,
			MaxLimit:         50,
			PreferenceWeight: 0.5,
		},
		Worker: WorkerConfig{
			Workers:   2,
			QueueSize: 100,
		},
		Log: LogConfig{
			Level:  "info",
			Pretty: false,
		},
	}
}

// Load assembles the configuration. path may be empty, in which case only
// defaults and environment variables apply; a named file that does not exist
// is an error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("config: load defaults: %w", err)
	}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config: config file %q: %w", path, err)
		}
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("config: parse %q: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envToKey), nil); err != nil {
		return nil, fmt.Errorf("config: load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envToKey maps SPOTIFINDER_SPOTIFY_CLIENT_ID to spotify.client_id. Only the
// first underscore separates the section; the rest stay as-is.
func envToKey(key string) string {
	trimmed := strings.ToLower(strings.TrimPrefix(key, envPrefix))
	parts := strings.SplitN(trimmed, "_", 2)
	if len(parts) == 1 {
		return parts[0]
	}
	return parts[0] + "." + parts[1]
}

func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config: invalid server port %d", c.Server.Port)
	}
	if c.Catalog.Clusters < 0 {
		return fmt.Errorf("config: clusters must not be negative")
	}
	if c.Recommend.PreferenceWeight < 0 || c.Recommend.PreferenceWeight > 1 {
		return fmt.Errorf("config: preference weight must be in [0,1]")
	}
	return nil
}
