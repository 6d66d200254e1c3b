// Package api exposes lookups and range fetches over HTTP.
package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/law-makers/results/internal/engine"
)

// NewRouter creates a configured Gin engine with all routes and middleware.
//
// Middleware chain: Recovery, RequestID, Logger.
func NewRouter(looker engine.Looker, ranges RangeScraper, mode string, startTime time.Time) *gin.Engine {
	if mode != "" {
		gin.SetMode(mode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(Logger())

	v1 := r.Group("/api/v1")
	v1.GET("/health", Health(startTime))
	v1.POST("/result", Lookup(looker))
	v1.POST("/results", Range(ranges))

	return r
}
