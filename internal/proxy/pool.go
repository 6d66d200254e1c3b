package proxy

import (
	"fmt"
	"net/url"
	"sync"
	"time"
)

// DefaultCooldown is how long a failed proxy is skipped
const DefaultCooldown = 5 * time.Minute

// ProxyPool manages a list of proxies with rotation and health checking
type ProxyPool struct {
	proxies  []*url.URL
	index    int
	mu       sync.Mutex
	failed   map[string]time.Time
	cooldown time.Duration
}

// NewProxyPool parses raw proxy URLs into a pool
func NewProxyPool(raw []string) (*ProxyPool, error) {
	p := &ProxyPool{
		failed:   make(map[string]time.Time),
		cooldown: DefaultCooldown,
	}
	for _, s := range raw {
		u, err := url.Parse(s)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return nil, fmt.Errorf("invalid proxy %q", s)
		}
		p.proxies = append(p.proxies, u)
	}
	return p, nil
}

// Len returns the number of proxies in the pool
func (p *ProxyPool) Len() int {
	return len(p.proxies)
}

// GetNext returns the next healthy proxy from the pool. When every proxy
// is cooling down the next one in rotation is returned anyway.
func (p *ProxyPool) GetNext() *url.URL {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.proxies) == 0 {
		return nil
	}

	start := p.index
	for {
		proxy := p.proxies[p.index]
		p.index = (p.index + 1) % len(p.proxies)

		if failTime, ok := p.failed[proxy.String()]; ok {
			if time.Since(failTime) < p.cooldown {
				if p.index == start {
					return proxy
				}
				continue
			}
			delete(p.failed, proxy.String())
		}

		return proxy
	}
}

// MarkFailed marks a proxy as failed so it will be skipped for a while
func (p *ProxyPool) MarkFailed(proxy *url.URL) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failed[proxy.String()] = time.Now()
}

// MarkHealthy clears the failure status of a proxy
func (p *ProxyPool) MarkHealthy(proxy *url.URL) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.failed, proxy.String())
}
