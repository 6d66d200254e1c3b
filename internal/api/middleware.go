package api

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/law-makers/results/internal/reqctx"
)

// RequestIDHeader carries the request ID in both directions
const RequestIDHeader = "X-Request-ID"

// RequestID stamps every request with an ID, reusing the caller's when sent.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if id := c.GetHeader(RequestIDHeader); id != "" {
			ctx = reqctx.WithID(ctx, id)
		} else {
			ctx = reqctx.WithRequestContext(ctx)
		}
		c.Request = c.Request.WithContext(ctx)
		c.Header(RequestIDHeader, reqctx.GetRequestContext(ctx).RequestID)
		c.Next()
	}
}

// Logger writes one zerolog line per request.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger := reqctx.Logger(c.Request.Context())
		logger.Info().
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("Request served")
	}
}

func requestContext(c *gin.Context) context.Context {
	return c.Request.Context()
}
