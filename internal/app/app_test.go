package app

import (
	"context"
	"net/http"
	"testing"

	"github.com/law-makers/results/internal/cache"
	"github.com/law-makers/results/internal/config"
	"github.com/law-makers/results/internal/engine"
	"github.com/law-makers/results/internal/proxy"
	"github.com/law-makers/results/internal/ratelimit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WiresComponents(t *testing.T) {
	cfg := config.Default()
	cfg.LogLevel = "error"

	a, err := New(context.Background(), cfg, Options{Headers: map[string]string{"X-Test": "1"}})
	require.NoError(t, err)
	defer a.Close(context.Background())

	assert.NotNil(t, a.Service)
	assert.NotNil(t, a.Ranges)
	assert.Equal(t, "FormFetcher", a.Fetcher.Name())
	assert.IsType(t, &ratelimit.HostLimiter{}, a.RateLimiter)
}

func TestNew_ZeroRateDisablesLimiter(t *testing.T) {
	cfg := config.Default()
	cfg.RateLimitRPS = 0

	a, err := New(context.Background(), cfg, Options{})
	require.NoError(t, err)
	assert.Equal(t, ratelimit.Unlimited{}, a.RateLimiter)
}

func TestNew_RequiresConfig(t *testing.T) {
	_, err := New(context.Background(), nil, Options{})
	assert.Error(t, err)
}

func TestNewHTTPClient_ScopesTLS(t *testing.T) {
	cfg := config.Default()
	cfg.Insecure = true

	insecure, err := NewHTTPClient(cfg)
	require.NoError(t, err)
	assert.True(t, insecure.Transport.(*http.Transport).TLSClientConfig.InsecureSkipVerify)

	secure, err := NewHTTPClient(config.Default())
	require.NoError(t, err)
	assert.False(t, secure.Transport.(*http.Transport).TLSClientConfig.InsecureSkipVerify)

	if http.DefaultTransport.(*http.Transport).TLSClientConfig != nil {
		assert.False(t, http.DefaultTransport.(*http.Transport).TLSClientConfig.InsecureSkipVerify)
	}
}

func TestNewHTTPClient_Proxy(t *testing.T) {
	cfg := config.Default()
	cfg.Proxy = "http://127.0.0.1:3128"

	client, err := NewHTTPClient(cfg)
	require.NoError(t, err)

	req, _ := http.NewRequest(http.MethodPost, "http://results.test/", nil)
	proxyURL, err := client.Transport.(*http.Transport).Proxy(req)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:3128", proxyURL.Host)
}

func TestNew_CacheFrontsLookups(t *testing.T) {
	cfg := config.Default()

	a, err := New(context.Background(), cfg, Options{})
	require.NoError(t, err)
	defer a.Close(context.Background())
	assert.NotNil(t, a.Cache)
	assert.IsType(t, &cache.Looker{}, a.Looker)

	cfg = config.Default()
	cfg.CacheTTL = 0
	a, err = New(context.Background(), cfg, Options{})
	require.NoError(t, err)
	assert.Nil(t, a.Cache)
	assert.Equal(t, engine.Looker(a.Service), a.Looker)
}

func TestNewHTTPClient_ProxyPool(t *testing.T) {
	cfg := config.Default()
	cfg.Proxies = []string{"http://127.0.0.1:3128", "http://127.0.0.1:3129"}

	client, err := NewHTTPClient(cfg)
	require.NoError(t, err)
	assert.IsType(t, &proxy.Transport{}, client.Transport)
}
