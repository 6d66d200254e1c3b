package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/law-makers/results/internal/engine"
	"github.com/law-makers/results/internal/reqctx"
)

// ErrorDetail is the machine-readable part of an error response
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse is the body of every non-2xx answer
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// respondError maps err to the correct HTTP status code and writes a
// structured JSON error response.
func respondError(c *gin.Context, err error) {
	code := engine.CodeOf(err)
	status := mapErrorToStatus(code)

	logger := reqctx.Logger(c.Request.Context())
	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).Str("code", string(code)).Msg("Request failed")
	} else {
		logger.Debug().Err(err).Str("code", string(code)).Msg("Request rejected")
	}

	c.JSON(status, ErrorResponse{Error: ErrorDetail{
		Code:    string(code),
		Message: engine.MessageOf(err),
	}})
}

// mapErrorToStatus translates error codes to HTTP status codes.
func mapErrorToStatus(code engine.ErrorCode) int {
	switch code {
	case engine.ErrCodeInvalidInput:
		return http.StatusBadRequest // 400
	case engine.ErrCodeTimeout:
		return http.StatusGatewayTimeout // 504
	case engine.ErrCodeNetworkError:
		return http.StatusBadGateway // 502
	default:
		return http.StatusInternalServerError // 500
	}
}
