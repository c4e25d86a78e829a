// Package config loads runtime settings from defaults, an optional YAML file and OAXACA_*
// environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/Insomnium-Eye/oaxacahouse/internal/assets"
)

// EnvPrefix is stripped from environment keys; a double underscore separates levels,
// e.g. OAXACA_SERVER__ADDR sets server.addr.
const EnvPrefix = "OAXACA_"

// DefaultFile is the config path used when none is given.
const DefaultFile = "oaxaca.yml"

// Config captures all runtime configuration organised by concern.
type Config struct {
	Env     string        `koanf:"env"`
	Dev     bool          `koanf:"dev"`
	Server  ServerConfig  `koanf:"server"`
	Site    SiteConfig    `koanf:"site"`
	Paths   PathsConfig   `koanf:"paths"`
	I18n    I18nConfig    `koanf:"i18n"`
	Gallery GalleryConfig `koanf:"gallery"`
	Session SessionConfig `koanf:"session"`
	CORS    CORSConfig    `koanf:"cors"`
	Log     LogConfig     `koanf:"log"`
	Content ContentConfig `koanf:"content"`
}

// ServerConfig configures HTTP server parameters.
type ServerConfig struct {
	Addr            string        `koanf:"addr"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// SiteConfig holds values surfaced in document metadata.
type SiteConfig struct {
	Name           string `koanf:"name"`
	BaseURL        string `koanf:"base_url"`
	PropertySlug   string `koanf:"property_slug"`
	GAMeasurement  string `koanf:"ga_measurement_id"`
	AnalyticsDebug bool   `koanf:"analytics_debug"`
}

// PathsConfig points at on-disk templates, dictionaries and copy.
type PathsConfig struct {
	Templates string `koanf:"templates"`
	Locales   string `koanf:"locales"`
	Content   string `koanf:"content"`
}

// I18nConfig lists the languages the site is published in.
type I18nConfig struct {
	Fallback  string   `koanf:"fallback"`
	Supported []string `koanf:"supported"`
}

// GalleryConfig controls image resolution and autoplay.
type GalleryConfig struct {
	Pattern  string        `koanf:"pattern"`
	Order    string        `koanf:"order"`
	Interval time.Duration `koanf:"interval"`

	// StateCapacity and StateTTL bound the in-memory lightbox state kept per visitor.
	StateCapacity int           `koanf:"state_capacity"`
	StateTTL      time.Duration `koanf:"state_ttl"`
}

// SessionConfig configures the signed session cookie.
type SessionConfig struct {
	SigningKey string `koanf:"signing_key"`
}

// CORSConfig lists origins allowed to read the public image list.
type CORSConfig struct {
	AllowedOrigins []string `koanf:"allowed_origins"`
}

// LogConfig selects the minimum log level.
type LogConfig struct {
	Level string `koanf:"level"`
}

// ContentConfig tunes the copy cache.
type ContentConfig struct {
	CacheTTL time.Duration `koanf:"cache_ttl"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		Env: "local",
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Site: SiteConfig{
			Name:         "Casa Oaxaca",
			PropertySlug: "casa-oaxaca",
		},
		Paths: PathsConfig{
			Templates: "templates",
			Locales:   "locales",
			Content:   "content",
		},
		I18n: I18nConfig{
			Fallback:  "en",
			Supported: []string{"en", "es"},
		},
		Gallery: GalleryConfig{
			Pattern:       assets.DefaultPattern,
			Order:         string(assets.OrderAscending),
			Interval:      3 * time.Second,
			StateCapacity: 10000,
			StateTTL:      12 * time.Hour,
		},
		Log:     LogConfig{Level: "info"},
		Content: ContentConfig{CacheTTL: 5 * time.Minute},
	}
}

// Load reads path (when it exists) and then overlays environment variables.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}
