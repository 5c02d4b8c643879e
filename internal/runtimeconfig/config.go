package runtimeconfig

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/goliatone/go-catalog/internal/slugs"
	slug "github.com/goliatone/go-slug"
)

// EnvPrefix namespaces every environment variable read by Load.
const EnvPrefix = "CATALOG_"

// ErrSlugFallbackInvalid is returned when the fallback token is not itself a
// URL-safe slug.
var ErrSlugFallbackInvalid = errors.New("catalog config: slug fallback token is not a valid slug")

var ErrDefaultLocaleRequired = errors.New("catalog config: default locale is required")
var ErrDefaultLocaleUnsupported = errors.New("catalog config: default locale must be listed in locales")
var ErrStorageProviderUnknown = errors.New("catalog config: storage provider is invalid")
var ErrStorageDSNRequired = errors.New("catalog config: storage dsn is required for postgres")
var ErrCacheTTLInvalid = errors.New("catalog config: cache ttl must be positive when cache is enabled")
var ErrLoggingProviderUnknown = errors.New("catalog config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("catalog config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("catalog config: logging format is invalid")
var ErrHTTPAddrRequired = errors.New("catalog config: http address is required")

// Config aggregates runtime settings for the catalog. DefaultConfig supplies
// every value; Load overlays CATALOG_* environment variables.
type Config struct {
	DefaultLocale     string   `env:"DEFAULT_LOCALE"`
	Locales           []string `env:"LOCALES" envSeparator:","`
	PrimaryFallback   string   `env:"PRIMARY_FALLBACK"`
	SecondaryFallback string   `env:"SECONDARY_FALLBACK"`

	Slugs   SlugConfig    `envPrefix:"SLUG_"`
	Storage StorageConfig `envPrefix:"STORAGE_"`
	Cache   CacheConfig   `envPrefix:"CACHE_"`
	Logging LoggingConfig `envPrefix:"LOG_"`
	HTTP    HTTPConfig    `envPrefix:"HTTP_"`
}

// SlugConfig tunes slug derivation.
type SlugConfig struct {
	NameLocales   []string `env:"NAME_LOCALES" envSeparator:","`
	FallbackToken string   `env:"FALLBACK_TOKEN"`
}

// StorageConfig selects the repository backend.
type StorageConfig struct {
	Provider string `env:"PROVIDER"`
	DSN      string `env:"DSN"`
}

// CacheConfig captures read-through cache toggles for bun repositories.
type CacheConfig struct {
	Enabled bool          `env:"ENABLED"`
	TTL     time.Duration `env:"TTL"`
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string   `env:"PROVIDER"`
	Level     string   `env:"LEVEL"`
	Format    string   `env:"FORMAT"`
	AddSource bool     `env:"ADD_SOURCE"`
	Focus     []string `env:"FOCUS" envSeparator:","`
}

// HTTPConfig configures the HTTP adapter.
type HTTPConfig struct {
	Addr           string        `env:"ADDR"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// DefaultConfig returns the storefront defaults: Vietnamese default locale,
// English fallback, in-memory storage and console logging.
func DefaultConfig() Config {
	return Config{
		DefaultLocale:     "vi",
		Locales:           []string{"vi", "en"},
		PrimaryFallback:   "en",
		SecondaryFallback: "vi",
		Slugs: SlugConfig{
			FallbackToken: slugs.DefaultFallbackToken,
		},
		Storage: StorageConfig{
			Provider: "memory",
		},
		Cache: CacheConfig{
			Enabled: false,
			TTL:     time.Minute,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
		HTTP: HTTPConfig{
			Addr:           ":8080",
			RequestTimeout: 10 * time.Second,
		},
	}
}

// Load returns DefaultConfig overlaid with CATALOG_* variables from environ.
// A nil environ reads the process environment.
func Load(environ map[string]string) (Config, error) {
	cfg := DefaultConfig()
	opts := env.Options{Prefix: EnvPrefix}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, cfg.Validate()
}

// NameLocales returns the slug derivation locales, defaulting to English,
// then the default locale, then Vietnamese.
func (cfg Config) NameLocales() []string {
	if len(cfg.Slugs.NameLocales) > 0 {
		return cfg.Slugs.NameLocales
	}
	return []string{"en", cfg.DefaultLocale, "vi"}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	def := normalize(cfg.DefaultLocale)
	if def == "" {
		return ErrDefaultLocaleRequired
	}
	if len(cfg.Locales) > 0 && !slices.ContainsFunc(cfg.Locales, func(code string) bool { return normalize(code) == def }) {
		return fmt.Errorf("%w: %s", ErrDefaultLocaleUnsupported, def)
	}

	switch provider := normalize(cfg.Storage.Provider); provider {
	case "memory", "sqlite":
	case "postgres":
		if strings.TrimSpace(cfg.Storage.DSN) == "" {
			return ErrStorageDSNRequired
		}
	default:
		return fmt.Errorf("%w: %s", ErrStorageProviderUnknown, provider)
	}

	if token := strings.TrimSpace(cfg.Slugs.FallbackToken); token != "" && !slug.IsValid(token) {
		return fmt.Errorf("%w: %q", ErrSlugFallbackInvalid, token)
	}

	if cfg.Cache.Enabled && cfg.Cache.TTL <= 0 {
		return ErrCacheTTLInvalid
	}

	provider := normalize(cfg.Logging.Provider)
	if provider != "console" && provider != "gologger" {
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
	}
	if level := normalize(cfg.Logging.Level); level != "" && !slices.Contains(supportedLevels, level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if provider == "gologger" {
		if format := normalize(cfg.Logging.Format); format != "" && !slices.Contains(supportedFormats, format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}

	if strings.TrimSpace(cfg.HTTP.Addr) == "" {
		return ErrHTTPAddrRequired
	}
	return nil
}

var (
	supportedLevels  = []string{"trace", "debug", "info", "warn", "warning", "error", "fatal"}
	supportedFormats = []string{"json", "console", "pretty"}
)

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
