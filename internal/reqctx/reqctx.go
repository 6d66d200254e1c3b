// Package reqctx carries a request or session ID through a lookup so every
// log line of one API call or one range fetch can be correlated.
package reqctx

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type key int

const requestKey key = 0

type RequestContext struct {
	RequestID string
	StartTime time.Time
	logger    zerolog.Logger
}

// WithRequestContext stamps a fresh ID on ctx. An existing ID is kept.
func WithRequestContext(ctx context.Context) context.Context {
	if rc, ok := ctx.Value(requestKey).(*RequestContext); ok && rc != nil {
		return ctx
	}
	return WithID(ctx, generateID())
}

// WithID stamps ctx with a caller-supplied ID
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestKey, &RequestContext{
		RequestID: id,
		StartTime: time.Now(),
		logger:    log.Logger.With().Str("request_id", id).Logger(),
	})
}

func GetRequestContext(ctx context.Context) *RequestContext {
	if ctx != nil {
		if rc, ok := ctx.Value(requestKey).(*RequestContext); ok {
			return rc
		}
	}
	return &RequestContext{
		RequestID: "unknown",
		StartTime: time.Now(),
		logger:    log.Logger,
	}
}

// Logger returns the request-scoped logger, or the global one
func Logger(ctx context.Context) *zerolog.Logger {
	rc := GetRequestContext(ctx)
	return &rc.logger
}

// Elapsed returns the time since the context was stamped
func Elapsed(ctx context.Context) time.Duration {
	return time.Since(GetRequestContext(ctx).StartTime)
}

func generateID() string {
	b := make([]byte, 8)
	rand.Read(b)
	return hex.EncodeToString(b)
}
