package proxy

import (
	"context"
	"net/http"
	"net/url"

	"github.com/rs/zerolog/log"
)

type ctxKey struct{}

// Transport picks a proxy from the pool for every request and reports
// transport failures back to it. Base must take its proxy from ProxyFunc.
type Transport struct {
	Base http.RoundTripper
	Pool *ProxyPool
}

// NewTransport installs ProxyFunc on base and wraps it
func NewTransport(base *http.Transport, pool *ProxyPool) *Transport {
	base.Proxy = ProxyFunc
	return &Transport{Base: base, Pool: pool}
}

// ProxyFunc returns the proxy Transport chose for req
func ProxyFunc(req *http.Request) (*url.URL, error) {
	u, _ := req.Context().Value(ctxKey{}).(*url.URL)
	return u, nil
}

// RoundTrip implements http.RoundTripper
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	chosen := t.Pool.GetNext()
	if chosen == nil {
		return t.Base.RoundTrip(req)
	}

	req = req.WithContext(context.WithValue(req.Context(), ctxKey{}, chosen))
	resp, err := t.Base.RoundTrip(req)
	if err != nil {
		// A cancelled caller says nothing about the proxy.
		if req.Context().Err() == nil {
			log.Debug().Err(err).Str("proxy", chosen.Redacted()).Msg("Proxy failed")
			t.Pool.MarkFailed(chosen)
		}
		return nil, err
	}
	t.Pool.MarkHealthy(chosen)
	return resp, nil
}

// CloseIdleConnections forwards to Base when it supports it
func (t *Transport) CloseIdleConnections() {
	type closer interface{ CloseIdleConnections() }
	if c, ok := t.Base.(closer); ok {
		c.CloseIdleConnections()
	}
}
