package runtimeconfig

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

var (
	ErrSeparatorRequired      = errors.New("sluggable config: slug separator must not be empty")
	ErrMaxLengthInvalid       = errors.New("sluggable config: max length must be zero or positive")
	ErrEngineUnknown          = errors.New("sluggable config: slug engine is invalid")
	ErrStorageDriverUnknown   = errors.New("sluggable config: storage driver is invalid")
	ErrStorageDSNRequired     = errors.New("sluggable config: storage dsn is required")
	ErrCacheTTLInvalid        = errors.New("sluggable config: cache ttl must be positive when cache is enabled")
	ErrLoggingProviderUnknown = errors.New("sluggable config: logging provider is invalid")
	ErrLoggingLevelInvalid    = errors.New("sluggable config: logging level is invalid")
	ErrLoggingFormatInvalid   = errors.New("sluggable config: logging format is invalid")
)

// Config aggregates the process-wide slug defaults and the adapters used by
// the CLI and the articles module.
type Config struct {
	Slugs   SlugDefaults  `yaml:"slugs"`
	Engine  EngineConfig  `yaml:"engine"`
	Storage StorageConfig `yaml:"storage"`
	Cache   CacheConfig   `yaml:"cache"`
	Logging LoggingConfig `yaml:"logging"`
}

// SlugDefaults are the option values every slug field starts from.
type SlugDefaults struct {
	Separator      string   `yaml:"separator"`
	MaxLength      int      `yaml:"max_length"`
	Unique         bool     `yaml:"unique"`
	OnUpdate       bool     `yaml:"on_update"`
	IncludeTrashed bool     `yaml:"include_trashed"`
	Reserved       []string `yaml:"reserved"`
}

// EngineConfig selects the default slug engine.
type EngineConfig struct {
	Name         string            `yaml:"name"`
	Language     string            `yaml:"language"`
	Replacements map[string]string `yaml:"replacements"`
}

// StorageConfig points the CLI at a database.
type StorageConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

// CacheConfig toggles the repository read cache.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	TTL     time.Duration `yaml:"ttl"`
}

// LoggingConfig selects the logging provider and its options.
type LoggingConfig struct {
	Provider  string   `yaml:"provider"`
	Level     string   `yaml:"level"`
	Format    string   `yaml:"format"`
	AddSource bool     `yaml:"add_source"`
	Focus     []string `yaml:"focus"`
}

// DefaultConfig mirrors the built-in slug option defaults.
func DefaultConfig() Config {
	return Config{
		Slugs: SlugDefaults{
			Separator: "-",
			Unique:    true,
		},
		Engine: EngineConfig{
			Name: "transliterate",
		},
		Storage: StorageConfig{
			Driver: "sqlite",
			DSN:    "file:sluggable.db?cache=shared",
		},
		Cache: CacheConfig{
			Enabled: false,
			TTL:     time.Minute,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// Options renders the defaults as the option mapping the slug resolver
// merges field overrides onto. Unset limits and lists map to nil.
func (d SlugDefaults) Options() map[string]any {
	opts := map[string]any{
		"source":         nil,
		"separator":      d.Separator,
		"maxLength":      nil,
		"method":         nil,
		"unique":         d.Unique,
		"uniqueSuffix":   nil,
		"onUpdate":       d.OnUpdate,
		"reserved":       nil,
		"includeTrashed": d.IncludeTrashed,
	}
	if d.MaxLength > 0 {
		opts["maxLength"] = d.MaxLength
	}
	if len(d.Reserved) > 0 {
		opts["reserved"] = append([]string(nil), d.Reserved...)
	}
	return opts
}

// LoadFile reads a YAML config file over the defaults.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("sluggable config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("sluggable config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate performs consistency checks.
func (cfg Config) Validate() error {
	if cfg.Slugs.Separator == "" {
		return ErrSeparatorRequired
	}
	if cfg.Slugs.MaxLength < 0 {
		return ErrMaxLengthInvalid
	}
	if engine := normalize(cfg.Engine.Name); engine != "" && !isOneOf(engine, "transliterate", "normalizer") {
		return fmt.Errorf("%w: %s", ErrEngineUnknown, engine)
	}
	if driver := normalize(cfg.Storage.Driver); driver != "" {
		if !isOneOf(driver, "sqlite", "postgres") {
			return fmt.Errorf("%w: %s", ErrStorageDriverUnknown, driver)
		}
		if strings.TrimSpace(cfg.Storage.DSN) == "" {
			return ErrStorageDSNRequired
		}
	}
	if cfg.Cache.Enabled && cfg.Cache.TTL <= 0 {
		return ErrCacheTTLInvalid
	}

	provider := normalize(cfg.Logging.Provider)
	if provider != "" && !isOneOf(provider, "console", "gologger", "zerolog") {
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
	}
	if level := normalize(cfg.Logging.Level); level != "" &&
		!isOneOf(level, "trace", "debug", "info", "warn", "warning", "error", "fatal") {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if format := normalize(cfg.Logging.Format); format != "" {
		switch provider {
		case "gologger":
			if !isOneOf(format, "json", "console", "pretty") {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		case "zerolog":
			if !isOneOf(format, "json", "pretty") {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isOneOf(value string, allowed ...string) bool {
	for _, candidate := range allowed {
		if value == candidate {
			return true
		}
	}
	return false
}
