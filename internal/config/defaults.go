package config

import "time"

// Default constants for application configuration
const (
	DefaultLogLevel          = "info"
	DefaultJSONLog           = false
	DefaultUserAgent         = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"
	DefaultHTTPTimeout       = 15 * time.Second
	DefaultRateLimitRPS      = 2.0
	DefaultRateLimitBurst    = 1
	DefaultMinResponseBytes  = 100
	DefaultMaxRangeSize      = 1000
	DefaultMaxRangeSizeLimit = 100000
	DefaultCacheTTL          = 10 * time.Minute
	DefaultCacheMaxSizeBytes = 16 * 1024 * 1024 // 16MB
	DefaultServerAddr        = ":8080"
	DefaultGinMode           = "release"
)

// envPrefix namespaces environment overrides
const envPrefix = "RESULTS_"
