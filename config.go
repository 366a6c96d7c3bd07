package sluggable

import "github.com/goliatone/go-sluggable/internal/runtimeconfig"

var (
	ErrSeparatorRequired      = runtimeconfig.ErrSeparatorRequired
	ErrMaxLengthInvalid       = runtimeconfig.ErrMaxLengthInvalid
	ErrEngineUnknown          = runtimeconfig.ErrEngineUnknown
	ErrStorageDriverUnknown   = runtimeconfig.ErrStorageDriverUnknown
	ErrStorageDSNRequired     = runtimeconfig.ErrStorageDSNRequired
	ErrCacheTTLInvalid        = runtimeconfig.ErrCacheTTLInvalid
	ErrLoggingProviderUnknown = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid    = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid   = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config        = runtimeconfig.Config
	SlugDefaults  = runtimeconfig.SlugDefaults
	EngineConfig  = runtimeconfig.EngineConfig
	StorageConfig = runtimeconfig.StorageConfig
	CacheConfig   = runtimeconfig.CacheConfig
	LoggingConfig = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfig reads a YAML file over DefaultConfig and validates it.
func LoadConfig(path string) (Config, error) {
	return runtimeconfig.LoadFile(path)
}

// ParseConfig decodes YAML over DefaultConfig and validates it.
func ParseConfig(data []byte) (Config, error) {
	return runtimeconfig.Parse(data)
}
