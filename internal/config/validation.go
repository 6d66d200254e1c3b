package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/rs/zerolog"
)

func validate(c *Config) error {
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http timeout must be > 0")
	}
	if c.RateLimitRPS < 0 {
		return fmt.Errorf("rate limit must be >= 0")
	}
	if c.RateLimitBurst < 1 {
		return fmt.Errorf("rate limit burst must be >= 1")
	}
	if c.MinResponseBytes < 0 {
		return fmt.Errorf("min response bytes must be >= 0")
	}
	if c.MaxRangeSize <= 0 || c.MaxRangeSize > DefaultMaxRangeSizeLimit {
		return fmt.Errorf("max range size must be between 1 and %d", DefaultMaxRangeSizeLimit)
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel)); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	if c.Proxy != "" {
		u, err := url.Parse(c.Proxy)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("proxy must be a URL like http://host:port, got %q", c.Proxy)
		}
	}
	for _, p := range c.Proxies {
		u, err := url.Parse(p)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("proxies must be URLs like http://host:port, got %q", p)
		}
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("cache ttl must be >= 0")
	}
	if c.CacheTTL > 0 && c.CacheMaxSizeBytes <= 0 {
		return fmt.Errorf("cache max size must be > 0")
	}
	switch c.GinMode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("gin mode must be debug, release or test, got %q", c.GinMode)
	}
	return nil
}
