// internal/engine/fetch/fetcher.go
package fetch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/law-makers/results/internal/engine"
	"github.com/law-makers/results/internal/ratelimit"
	"github.com/law-makers/results/internal/reqctx"
	"github.com/law-makers/results/internal/retry"
	urlutil "github.com/law-makers/results/internal/utils/url"
	"golang.org/x/net/html/charset"
)

// Form fields of the results search
const (
	FormStatusField = "mbstatus"
	FormStatusValue = "SEARCH"
	FormRollField   = "htno"
)

// Defaults for Options
const (
	DefaultTimeout          = 15 * time.Second
	DefaultMinResponseBytes = 100
	DefaultUserAgent        = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"
)

// maxBodyBytes caps how much of a response is decoded
const maxBodyBytes = 10 * 1024 * 1024

// DefaultHeaders are sent with every submission; the portal rejects bare clients
var DefaultHeaders = map[string]string{
	"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
	"Accept-Language": "en-US,en;q=0.9",
	"Cache-Control":   "no-cache",
}

// Options configures a Fetcher
type Options struct {
	Timeout          time.Duration
	UserAgent        string
	Headers          map[string]string
	MinResponseBytes int
	// DisableFallback submits to the configured URL only
	DisableFallback bool
}

// Fetcher submits the results form over HTTP. The www. fallback is an
// explicit two-element candidate list walked by retry.Ordered.
type Fetcher struct {
	client  *resty.Client
	limiter ratelimit.RateLimiter
	opts    Options
}

// New creates a Fetcher on top of hc. The caller owns hc and its transport,
// including any TLS settings, so nothing here touches process-wide state.
func New(hc *http.Client, lim ratelimit.RateLimiter, opts Options) *Fetcher {
	if hc == nil {
		hc = &http.Client{}
	}
	if lim == nil {
		lim = ratelimit.Unlimited{}
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.MinResponseBytes <= 0 {
		opts.MinResponseBytes = DefaultMinResponseBytes
	}

	client := resty.NewWithClient(hc)
	client.SetLogger(restyLogger{})
	client.SetHeaders(DefaultHeaders)
	client.SetHeader("User-Agent", opts.UserAgent)
	client.SetHeaders(opts.Headers)

	return &Fetcher{
		client:  client,
		limiter: lim,
		opts:    opts,
	}
}

// Name returns the name of this fetcher
func (f *Fetcher) Name() string {
	return "FormFetcher"
}

// Fetch submits htno to baseURL, falling back once to the www.-toggled host,
// and returns the decoded page.
func (f *Fetcher) Fetch(ctx context.Context, baseURL, htno string) (string, error) {
	candidates := urlutil.Candidates(baseURL)
	if f.opts.DisableFallback {
		candidates = candidates[:1]
	}

	var body string
	used, err := retry.Ordered(ctx, candidates, func(ctx context.Context, target string) error {
		b, err := f.submit(ctx, target, htno)
		if err != nil {
			return err
		}
		body = b
		return nil
	})
	if err != nil {
		var ee *engine.EngineError
		if len(candidates) == 1 && errors.As(err, &ee) {
			return "", err
		}
		return "", engine.NewEngineError(engine.CodeOf(err),
			fmt.Sprintf("fetching %s failed on every host", htno), err).
			WithDetail("candidates", candidates)
	}

	if used != baseURL {
		reqctx.Logger(ctx).Info().
			Str("htno", htno).
			Str("url", used).
			Msg("Fetched via fallback host")
	}
	return body, nil
}

func (f *Fetcher) submit(ctx context.Context, target, htno string) (string, error) {
	logger := reqctx.Logger(ctx)

	if err := f.limiter.Wait(ctx, target); err != nil {
		return "", retry.Permanent(engine.NewEngineError(engine.ErrCodeNetworkError, "rate limiter wait aborted", err))
	}

	attemptCtx, cancel := context.WithTimeout(ctx, f.opts.Timeout)
	defer cancel()

	start := time.Now()
	resp, err := f.client.R().
		SetContext(attemptCtx).
		SetHeader("Content-Type", "application/x-www-form-urlencoded").
		SetHeader("Referer", target).
		SetHeader("Origin", origin(target)).
		SetFormData(map[string]string{
			FormStatusField: FormStatusValue,
			FormRollField:   htno,
		}).
		Post(target)
	if err != nil {
		if ctx.Err() != nil && !retry.IsTimeout(ctx.Err()) {
			return "", retry.Permanent(engine.NewEngineError(engine.ErrCodeNetworkError, "request cancelled", ctx.Err()))
		}
		if retry.IsTimeout(err) || errors.Is(attemptCtx.Err(), context.DeadlineExceeded) {
			return "", engine.NewEngineError(engine.ErrCodeTimeout,
				fmt.Sprintf("no response from %s within %s", target, f.opts.Timeout), err).WithRetry()
		}
		return "", engine.NewEngineError(engine.ErrCodeNetworkError,
			fmt.Sprintf("request to %s failed", target), err).WithRetry()
	}

	logger.Debug().
		Str("htno", htno).
		Str("url", target).
		Int("status", resp.StatusCode()).
		Dur("duration", time.Since(start)).
		Msg("Submission answered")

	if !resp.IsSuccess() {
		return "", engine.NewEngineError(engine.ErrCodeNetworkError,
			fmt.Sprintf("unexpected status from %s", target),
			retry.NewHTTPError(resp.StatusCode(), resp.Status(), "")).WithRetry()
	}

	body, err := decodeBody(resp.Body(), resp.Header().Get("Content-Type"))
	if err != nil {
		return "", engine.NewEngineError(engine.ErrCodeNetworkError, "failed to decode response body", err).WithRetry()
	}

	if n := len(strings.TrimSpace(body)); n < f.opts.MinResponseBytes {
		return "", engine.NewEngineError(engine.ErrCodeNetworkError,
			fmt.Sprintf("degenerate response from %s", target), nil).
			WithDetail("bytes", n).
			WithRetry()
	}

	return body, nil
}

// decodeBody converts raw to UTF-8 using the declared or sniffed charset
func decodeBody(raw []byte, contentType string) (string, error) {
	if len(raw) > maxBodyBytes {
		raw = raw[:maxBodyBytes]
	}
	r, err := charset.NewReader(bytes.NewReader(raw), contentType)
	if err != nil {
		// Unknown charset label: keep the bytes as they are.
		return string(raw), nil
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func origin(target string) string {
	u, err := url.Parse(target)
	if err != nil {
		return ""
	}
	return u.Scheme + "://" + u.Host
}
