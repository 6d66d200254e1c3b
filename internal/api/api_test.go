package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/law-makers/results/internal/engine"
	"github.com/law-makers/results/internal/engine/batch"
	"github.com/law-makers/results/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLooker struct {
	rec *models.StudentRecord
	err error
	got models.LookupRequest
}

func (s *stubLooker) Lookup(ctx context.Context, req models.LookupRequest) (*models.StudentRecord, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return s.rec, nil
}

type stubRanges struct {
	records []models.StudentRecord
	err     error
}

func (s *stubRanges) ScrapeRange(ctx context.Context, req models.RangeRequest, progress batch.ProgressFunc) ([]models.StudentRecord, error) {
	return s.records, s.err
}

func newTestRouter(l engine.Looker, r RangeScraper) *gin.Engine {
	return NewRouter(l, r, gin.TestMode, time.Now())
}

func do(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	w := do(newTestRouter(&stubLooker{}, &stubRanges{}), http.MethodGet, "/api/v1/health", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}

func TestLookup_Found(t *testing.T) {
	looker := &stubLooker{rec: &models.StudentRecord{
		HallTicket:      "123456789012",
		Status:          models.StatusFound,
		PersonalDetails: &models.PersonalDetails{Name: "JOHN DOE"},
	}}
	w := do(newTestRouter(looker, &stubRanges{}), http.MethodPost, "/api/v1/result",
		`{"url":"http://results.test/","htno":"123456789012"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp LookupResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "JOHN DOE", resp.Data.PersonalDetails.Name)
	assert.Equal(t, "123456789012", looker.got.HTNo)
}

func TestLookup_NotFoundIs200(t *testing.T) {
	looker := &stubLooker{rec: &models.StudentRecord{
		HallTicket: "123456789012",
		Status:     models.StatusNotFound,
		Message:    `Hall Ticket Number "123456789012" is not found.`,
	}}
	w := do(newTestRouter(looker, &stubRanges{}), http.MethodPost, "/api/v1/result",
		`{"url":"http://results.test/","htno":"123456789012"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"NOT_FOUND"`)
}

func TestLookup_ErrorStatus(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{engine.InvalidInput("htno is required"), http.StatusBadRequest, "INVALID_INPUT"},
		{engine.NewEngineError(engine.ErrCodeTimeout, "slow", nil), http.StatusGatewayTimeout, "TIMEOUT"},
		{engine.NewEngineError(engine.ErrCodeNetworkError, "refused", nil), http.StatusBadGateway, "NETWORK_ERROR"},
		{engine.NewEngineError(engine.ErrCodeParseError, "garbled", nil), http.StatusInternalServerError, "PARSE_ERROR"},
	}

	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			w := do(newTestRouter(&stubLooker{err: tc.err}, &stubRanges{}), http.MethodPost, "/api/v1/result",
				`{"url":"http://results.test/","htno":"123456789012"}`)
			assert.Equal(t, tc.status, w.Code)

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tc.code, resp.Error.Code)
			assert.NotEmpty(t, resp.Error.Message)
		})
	}
}

func TestLookup_MalformedBody(t *testing.T) {
	w := do(newTestRouter(&stubLooker{}, &stubRanges{}), http.MethodPost, "/api/v1/result", `{"url":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_INPUT")
}

func TestRange_PartialResult(t *testing.T) {
	ranges := &stubRanges{
		records: []models.StudentRecord{{HallTicket: "100000000001", Status: models.StatusFound}},
		err: &batch.RangeError{
			HallTicket: "100000000002",
			Err:        engine.NewEngineError(engine.ErrCodeNetworkError, "refused", nil),
		},
	}
	w := do(newTestRouter(&stubLooker{}, ranges), http.MethodPost, "/api/v1/results",
		`{"url":"http://results.test/","from":"100000000001","to":"100000000005"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.RangeResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Records, 1)
	require.NotNil(t, resp.Failure)
	assert.Equal(t, "100000000002", resp.Failure.HallTicket)
	assert.Equal(t, "NETWORK_ERROR", resp.Failure.Code)
}

func TestRange_RejectedBeforeLookup(t *testing.T) {
	ranges := &stubRanges{err: engine.InvalidInput("invalid range")}
	w := do(newTestRouter(&stubLooker{}, ranges), http.MethodPost, "/api/v1/results",
		`{"url":"http://results.test/","from":"100000000009","to":"100000000001"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRequestID_Propagated(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	req.Header.Set(RequestIDHeader, "abc123")
	w := httptest.NewRecorder()
	newTestRouter(&stubLooker{}, &stubRanges{}).ServeHTTP(w, req)
	assert.Equal(t, "abc123", w.Header().Get(RequestIDHeader))
}
