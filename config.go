package catalog

import "github.com/goliatone/go-catalog/internal/runtimeconfig"

var (
	ErrDefaultLocaleRequired    = runtimeconfig.ErrDefaultLocaleRequired
	ErrDefaultLocaleUnsupported = runtimeconfig.ErrDefaultLocaleUnsupported
	ErrSlugFallbackInvalid      = runtimeconfig.ErrSlugFallbackInvalid
	ErrStorageProviderUnknown   = runtimeconfig.ErrStorageProviderUnknown
	ErrStorageDSNRequired       = runtimeconfig.ErrStorageDSNRequired
	ErrCacheTTLInvalid          = runtimeconfig.ErrCacheTTLInvalid
	ErrLoggingProviderUnknown   = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid      = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid     = runtimeconfig.ErrLoggingFormatInvalid
	ErrHTTPAddrRequired         = runtimeconfig.ErrHTTPAddrRequired
)

type (
	Config        = runtimeconfig.Config
	SlugConfig    = runtimeconfig.SlugConfig
	StorageConfig = runtimeconfig.StorageConfig
	CacheConfig   = runtimeconfig.CacheConfig
	LoggingConfig = runtimeconfig.LoggingConfig
	HTTPConfig    = runtimeconfig.HTTPConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfig overlays CATALOG_* variables from environ on the defaults. A
// nil environ reads the process environment.
func LoadConfig(environ map[string]string) (Config, error) {
	return runtimeconfig.Load(environ)
}
