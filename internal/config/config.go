package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/law-makers/results/internal/engine/extract"
	"github.com/spf13/cobra"
)

// Config holds application configuration values
type Config struct {
	// Logging
	LogLevel string `yaml:"logLevel"`
	JSONLog  bool   `yaml:"jsonLog"`

	// HTTP
	ResultsURL       string        `yaml:"url"`
	HTTPTimeout      time.Duration `yaml:"timeout"`
	UserAgent        string        `yaml:"userAgent"`
	Proxy            string        `yaml:"proxy"`
	Proxies          []string      `yaml:"proxies"`
	Insecure         bool          `yaml:"insecure"`
	MinResponseBytes int           `yaml:"minResponseBytes"`
	DisableFallback  bool          `yaml:"disableFallback"`

	// Rate Limiting
	RateLimitRPS   float64 `yaml:"rateLimitRPS"`
	RateLimitBurst int     `yaml:"rateLimitBurst"`

	// Caching
	CacheTTL          time.Duration `yaml:"cacheTTL"`
	CacheMaxSizeBytes int64         `yaml:"cacheMaxSizeBytes"`

	// Ranges
	MaxRangeSize int `yaml:"maxRangeSize"`

	// Server
	ServerAddr string `yaml:"serverAddr"`
	GinMode    string `yaml:"ginMode"`

	// Page layout heuristics
	Layout extract.Layout `yaml:"layout"`
}

// Default returns a Config holding only the built-in defaults
func Default() *Config {
	return &Config{
		LogLevel:          DefaultLogLevel,
		JSONLog:           DefaultJSONLog,
		HTTPTimeout:       DefaultHTTPTimeout,
		UserAgent:         DefaultUserAgent,
		MinResponseBytes:  DefaultMinResponseBytes,
		RateLimitRPS:      DefaultRateLimitRPS,
		RateLimitBurst:    DefaultRateLimitBurst,
		MaxRangeSize:      DefaultMaxRangeSize,
		CacheTTL:          DefaultCacheTTL,
		CacheMaxSizeBytes: DefaultCacheMaxSizeBytes,
		ServerAddr:        DefaultServerAddr,
		GinMode:           DefaultGinMode,
		Layout:            extract.DefaultLayout(),
	}
}

// Load builds a Config by combining defaults, an optional config file, environment variables, and CLI flags.
// Caller should pass the root *cobra.Command so flags can be read.
func Load(cmd *cobra.Command) (*Config, error) {
	cfg := Default()

	if cmd != nil {
		if f := cmd.Flags().Lookup("config"); f != nil && f.Value.String() != "" {
			if err := loadFile(cfg, f.Value.String()); err != nil {
				return nil, err
			}
		}
	}

	if err := applyEnv(cfg, os.Getenv); err != nil {
		return nil, err
	}

	if cmd != nil {
		if err := applyFlags(cfg, cmd); err != nil {
			return nil, err
		}
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func applyEnv(cfg *Config, getenv func(string) string) error {
	str := func(key string, dst *string) {
		if v := getenv(envPrefix + key); v != "" {
			*dst = v
		}
	}
	str("URL", &cfg.ResultsURL)
	str("USER_AGENT", &cfg.UserAgent)
	str("PROXY", &cfg.Proxy)
	str("LOG_LEVEL", &cfg.LogLevel)
	str("ADDR", &cfg.ServerAddr)
	str("GIN_MODE", &cfg.GinMode)

	if v := getenv(envPrefix + "PROXIES"); v != "" {
		cfg.Proxies = nil
		for _, p := range strings.Split(v, ",") {
			if p = strings.TrimSpace(p); p != "" {
				cfg.Proxies = append(cfg.Proxies, p)
			}
		}
	}
	if v := getenv(envPrefix + "CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%sCACHE_TTL: %w", envPrefix, err)
		}
		cfg.CacheTTL = d
	}
	if v := getenv(envPrefix + "TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%sTIMEOUT: %w", envPrefix, err)
		}
		cfg.HTTPTimeout = d
	}
	if v := getenv(envPrefix + "INSECURE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sINSECURE: %w", envPrefix, err)
		}
		cfg.Insecure = b
	}
	if v := getenv(envPrefix + "RATE_LIMIT"); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%sRATE_LIMIT: %w", envPrefix, err)
		}
		cfg.RateLimitRPS = rps
	}
	if v := getenv(envPrefix + "MAX_RANGE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sMAX_RANGE: %w", envPrefix, err)
		}
		cfg.MaxRangeSize = n
	}
	return nil
}

// applyFlags overlays flags the user actually set
func applyFlags(cfg *Config, cmd *cobra.Command) error {
	flags := cmd.Flags()
	changed := func(name string) bool {
		f := flags.Lookup(name)
		return f != nil && f.Changed
	}

	if changed("url") {
		cfg.ResultsURL, _ = flags.GetString("url")
	}
	if changed("user-agent") {
		cfg.UserAgent, _ = flags.GetString("user-agent")
	}
	if changed("proxy") {
		cfg.Proxy, _ = flags.GetString("proxy")
	}
	if changed("timeout") {
		s, _ := flags.GetString("timeout")
		d, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("--timeout: %w", err)
		}
		cfg.HTTPTimeout = d
	}
	if changed("insecure") {
		cfg.Insecure, _ = flags.GetBool("insecure")
	}
	if changed("no-fallback") {
		cfg.DisableFallback, _ = flags.GetBool("no-fallback")
	}
	if changed("rate-limit") {
		cfg.RateLimitRPS, _ = flags.GetFloat64("rate-limit")
	}
	if changed("cache-ttl") {
		s, _ := flags.GetString("cache-ttl")
		d, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("--cache-ttl: %w", err)
		}
		cfg.CacheTTL = d
	}
	if changed("json") {
		cfg.JSONLog, _ = flags.GetBool("json")
	}
	if v, _ := flags.GetBool("verbose"); changed("verbose") && v {
		cfg.LogLevel = "debug"
	}
	if v, _ := flags.GetBool("quiet"); changed("quiet") && v {
		cfg.LogLevel = "error"
	}
	return nil
}
