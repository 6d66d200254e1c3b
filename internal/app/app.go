// Package app provides the core application initialization and lifecycle management.
package app

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/law-makers/results/internal/cache"
	"github.com/law-makers/results/internal/config"
	"github.com/law-makers/results/internal/engine"
	"github.com/law-makers/results/internal/engine/batch"
	"github.com/law-makers/results/internal/engine/extract"
	"github.com/law-makers/results/internal/engine/fetch"
	"github.com/law-makers/results/internal/proxy"
	"github.com/law-makers/results/internal/ratelimit"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Application holds all application dependencies and manages their lifecycle.
//
// It is created once at startup and shared across all CLI commands.
// Use Close() to ensure proper resource cleanup on shutdown.
type Application struct {
	Config      *config.Config
	Logger      *zerolog.Logger
	RateLimiter ratelimit.RateLimiter
	HTTPClient  *http.Client
	Fetcher     *fetch.Fetcher
	Extractor   *extract.Extractor
	Service     *engine.Service
	Cache       cache.Cache
	Looker      engine.Looker
	Ranges      *batch.Scraper
	startTime   time.Time
}

// Options tweak how New builds the application
type Options struct {
	// Headers are sent with every submission in addition to the defaults
	Headers map[string]string
}

// New creates and initializes a new Application with all dependencies.
//
// It performs the following initialization steps:
//   - Configures logging based on the provided config
//   - Creates the rate limiter for per-host request throttling
//   - Initializes the HTTP client with a TLS config scoped to it
//   - Creates the fetcher, extractor, lookup service and range scraper
//   - Puts the record cache in front of lookups when a TTL is configured
//
// If any step fails, an error is returned and no resources are allocated.
func New(ctx context.Context, cfg *config.Config, opts Options) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	logger := setupLogger(cfg)

	var rateLimiter ratelimit.RateLimiter = ratelimit.Unlimited{}
	if cfg.RateLimitRPS > 0 {
		rateLimiter = ratelimit.NewHostLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
	logger.Debug().
		Float64("rps", cfg.RateLimitRPS).
		Int("burst", cfg.RateLimitBurst).
		Msg("Rate limiter initialized")

	httpClient, err := NewHTTPClient(cfg)
	if err != nil {
		return nil, err
	}
	logger.Debug().
		Dur("timeout", cfg.HTTPTimeout).
		Bool("insecure", cfg.Insecure).
		Bool("proxy", cfg.Proxy != "").
		Msg("HTTP client initialized")

	fetcher := fetch.New(httpClient, rateLimiter, fetch.Options{
		Timeout:          cfg.HTTPTimeout,
		UserAgent:        cfg.UserAgent,
		Headers:          opts.Headers,
		MinResponseBytes: cfg.MinResponseBytes,
		DisableFallback:  cfg.DisableFallback,
	})
	extractor := extract.New(cfg.Layout)
	service := engine.NewService(fetcher, extractor)

	var looker engine.Looker = service
	var recordCache cache.Cache
	if cfg.CacheTTL > 0 {
		recordCache = cache.NewMemoryCache(cfg.CacheMaxSizeBytes)
		looker = cache.NewLooker(service, recordCache, cfg.CacheTTL)
		logger.Debug().
			Dur("ttl", cfg.CacheTTL).
			Int64("max_size_bytes", cfg.CacheMaxSizeBytes).
			Msg("Record cache initialized")
	}

	app := &Application{
		Config:      cfg,
		Logger:      &logger,
		RateLimiter: rateLimiter,
		HTTPClient:  httpClient,
		Fetcher:     fetcher,
		Extractor:   extractor,
		Service:     service,
		Cache:       recordCache,
		Looker:      looker,
		Ranges:      batch.New(looker, cfg.MaxRangeSize),
		startTime:   time.Now(),
	}

	logger.Debug().Msg("Application initialized successfully")
	return app, nil
}

func setupLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	var logWriter io.Writer
	if cfg.JSONLog {
		// JSON logs to stderr
		logWriter = os.Stderr
	} else {
		// Human-friendly console output otherwise
		logWriter = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	}

	logger := zerolog.New(logWriter).With().Timestamp().Logger()
	log.Logger = logger

	logger.Debug().
		Str("level", level.String()).
		Bool("json", cfg.JSONLog).
		Msg("Logger initialized")
	return logger
}

// NewHTTPClient builds the client used for results submissions. TLS
// verification and proxying apply to this client only. A proxies list
// rotates per request and takes precedence over a single proxy.
func NewHTTPClient(cfg *config.Config) (*http.Client, error) {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   cfg.HTTPTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSClientConfig: &tls.Config{
			MinVersion:         tls.VersionTLS12,
			InsecureSkipVerify: cfg.Insecure, //nolint:gosec // opt-in via --insecure
		},
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: cfg.HTTPTimeout,
	}

	if cfg.Proxy != "" {
		proxyURL, err := url.Parse(cfg.Proxy)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy %q: %w", cfg.Proxy, err)
		}
		transport.Proxy = http.ProxyURL(proxyURL)
	}

	if len(cfg.Proxies) > 0 {
		pool, err := proxy.NewProxyPool(cfg.Proxies)
		if err != nil {
			return nil, err
		}
		return &http.Client{Transport: proxy.NewTransport(transport, pool)}, nil
	}

	return &http.Client{Transport: transport}, nil
}

// Close gracefully shuts down the application and all its resources.
//
// A context with a timeout should be provided to prevent indefinite blocking.
func (a *Application) Close(ctx context.Context) error {
	if a.Cache != nil {
		a.Cache.Close()
	}

	if a.HTTPClient != nil {
		a.HTTPClient.CloseIdleConnections()
	}

	a.Logger.Debug().Dur("uptime", a.Uptime()).Msg("Application shutdown complete")
	return nil
}

// Uptime returns how long the application has been running.
func (a *Application) Uptime() time.Duration {
	return time.Since(a.startTime)
}
