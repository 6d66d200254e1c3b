// internal/engine/batch/scraper.go
package batch

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/law-makers/results/internal/engine"
	"github.com/law-makers/results/internal/reqctx"
	"github.com/law-makers/results/internal/utils/rollno"
	urlutil "github.com/law-makers/results/internal/utils/url"
	"github.com/law-makers/results/pkg/models"
)

// DefaultMaxRange bounds how many roll numbers one range may cover
const DefaultMaxRange = 1000

// ProgressFunc is called after each roll number completes
type ProgressFunc func(done, total int, rec models.StudentRecord)

// RangeError reports the roll number that halted a range
type RangeError struct {
	HallTicket string
	Err        error
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("roll number %s: %v", e.HallTicket, e.Err)
}

func (e *RangeError) Unwrap() error {
	return e.Err
}

// Scraper walks a roll number range one lookup at a time
type Scraper struct {
	looker   engine.Looker
	maxRange uint64
}

// New creates a range Scraper. maxRange <= 0 uses DefaultMaxRange.
func New(looker engine.Looker, maxRange int) *Scraper {
	if maxRange <= 0 {
		maxRange = DefaultMaxRange
	}
	return &Scraper{
		looker:   looker,
		maxRange: uint64(maxRange),
	}
}

// ScrapeRange looks up every roll number in [req.From, req.To] in ascending
// order. NOT_FOUND records are kept and the walk continues; any other
// failure stops it. The records gathered so far are always returned, and a
// halt is reported as a *RangeError naming the roll number that failed.
func (s *Scraper) ScrapeRange(ctx context.Context, req models.RangeRequest, progress ProgressFunc) ([]models.StudentRecord, error) {
	rolls, err := s.Plan(req)
	if err != nil {
		return nil, err
	}

	logger := reqctx.Logger(ctx)
	logger.Info().
		Str("from", rolls[0]).
		Str("to", rolls[len(rolls)-1]).
		Int("count", len(rolls)).
		Msg("Starting range fetch")

	records := make([]models.StudentRecord, 0, len(rolls))
	for i, htno := range rolls {
		if err := ctx.Err(); err != nil {
			return records, &RangeError{HallTicket: htno, Err: err}
		}

		rec, err := s.looker.Lookup(ctx, models.LookupRequest{URL: req.URL, HTNo: htno})
		if err != nil {
			logger.Warn().Err(err).Str("htno", htno).Int("gathered", len(records)).Msg("Range halted")
			return records, &RangeError{HallTicket: htno, Err: err}
		}

		records = append(records, *rec)
		if progress != nil {
			progress(i+1, len(rolls), *rec)
		}
	}

	logger.Info().Int("count", len(records)).Msg("Range fetch completed")
	return records, nil
}

// Plan validates req and expands it to the ordered roll numbers it covers.
// Every failure is INVALID_INPUT.
func (s *Scraper) Plan(req models.RangeRequest) ([]string, error) {
	url := strings.TrimSpace(req.URL)
	from := strings.TrimSpace(req.From)
	to := strings.TrimSpace(req.To)

	switch {
	case url == "":
		return nil, engine.InvalidInput("url is required")
	case from == "":
		return nil, engine.InvalidInput("from is required")
	case to == "":
		return nil, engine.InvalidInput("to is required")
	}
	if err := urlutil.ValidateURL(url); err != nil {
		return nil, engine.NewEngineError(engine.ErrCodeInvalidInput, "invalid url", err)
	}

	rolls, err := rollno.Expand(from, to, s.maxRange)
	if err != nil {
		return nil, engine.NewEngineError(engine.ErrCodeInvalidInput, "invalid range", err)
	}
	return rolls, nil
}

// Summarize folds the outcome of ScrapeRange into a RangeResult
func Summarize(records []models.StudentRecord, err error) models.RangeResult {
	if records == nil {
		records = []models.StudentRecord{}
	}
	res := models.RangeResult{Records: records}
	if err == nil {
		return res
	}

	failure := &models.RangeFailure{
		Code:    string(engine.CodeOf(err)),
		Message: engine.MessageOf(err),
	}
	var re *RangeError
	if errors.As(err, &re) {
		failure.HallTicket = re.HallTicket
	}
	res.Failure = failure
	return res
}
