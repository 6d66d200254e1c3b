package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/law-makers/results/internal/engine"
	"github.com/law-makers/results/internal/engine/batch"
	"github.com/law-makers/results/pkg/models"
)

// Version is reported by the health endpoint
const Version = "0.1.0"

// RangeScraper walks a roll number range
type RangeScraper interface {
	ScrapeRange(ctx context.Context, req models.RangeRequest, progress batch.ProgressFunc) ([]models.StudentRecord, error)
}

// LookupResponse wraps a single record
type LookupResponse struct {
	Data *models.StudentRecord `json:"data"`
}

// HealthResponse is the body of GET /api/v1/health
type HealthResponse struct {
	Status  string `json:"status"`
	Uptime  string `json:"uptime"`
	Version string `json:"version"`
}

// Health returns a handler for GET /api/v1/health.
func Health(startTime time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, HealthResponse{
			Status:  "healthy",
			Uptime:  time.Since(startTime).Round(time.Second).String(),
			Version: Version,
		})
	}
}

// Lookup returns a handler for POST /api/v1/result.
//
// Every successful extraction answers 200, NOT_FOUND included.
func Lookup(looker engine.Looker) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.LookupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, engine.InvalidInput("invalid request body: %v", err))
			return
		}

		rec, err := looker.Lookup(requestContext(c), req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, LookupResponse{Data: rec})
	}
}

// Range returns a handler for POST /api/v1/results.
//
// A range that halts part way still answers 200 with the gathered prefix and
// the failure; only requests rejected before any lookup are errors.
func Range(ranges RangeScraper) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.RangeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, engine.InvalidInput("invalid request body: %v", err))
			return
		}

		records, err := ranges.ScrapeRange(requestContext(c), req, nil)
		if err != nil && records == nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, batch.Summarize(records, err))
	}
}
