package engine

import (
	"context"
	"strings"

	"github.com/law-makers/results/internal/reqctx"
	"github.com/law-makers/results/internal/utils/rollno"
	urlutil "github.com/law-makers/results/internal/utils/url"
	"github.com/law-makers/results/pkg/models"
)

// Fetcher submits the results form for one roll number and returns the raw page
type Fetcher interface {
	Fetch(ctx context.Context, baseURL, htno string) (string, error)
}

// Extractor turns a raw results page into a record
type Extractor interface {
	Extract(html, htno string) (*models.StudentRecord, error)
}

// Looker resolves one roll number to a record
type Looker interface {
	Lookup(ctx context.Context, req models.LookupRequest) (*models.StudentRecord, error)
}

// Service runs Fetcher then Extractor for a validated request
type Service struct {
	fetcher   Fetcher
	extractor Extractor
}

// NewService wires a Fetcher and an Extractor together
func NewService(f Fetcher, x Extractor) *Service {
	return &Service{fetcher: f, extractor: x}
}

// Lookup validates req, fetches the page and extracts the record.
//
// Validation failures are INVALID_INPUT and happen before any network call.
// A NOT_FOUND record is a successful result, not an error.
func (s *Service) Lookup(ctx context.Context, req models.LookupRequest) (*models.StudentRecord, error) {
	if err := ValidateRequest(&req); err != nil {
		return nil, err
	}

	logger := reqctx.Logger(ctx)
	logger.Debug().Str("htno", req.HTNo).Str("url", req.URL).Msg("Looking up result")

	html, err := s.fetcher.Fetch(ctx, req.URL, req.HTNo)
	if err != nil {
		logger.Debug().Err(err).Str("htno", req.HTNo).Msg("Fetch failed")
		return nil, err
	}

	rec, err := s.extractor.Extract(html, req.HTNo)
	if err != nil {
		logger.Debug().Err(err).Str("htno", req.HTNo).Msg("Extraction failed")
		return nil, err
	}

	logger.Debug().
		Str("htno", req.HTNo).
		Str("status", string(rec.Status)).
		Int("marks", len(rec.Marks)).
		Msg("Lookup completed")
	return rec, nil
}

// ValidateRequest trims req in place and checks every field
func ValidateRequest(req *models.LookupRequest) error {
	req.URL = strings.TrimSpace(req.URL)
	req.HTNo = strings.TrimSpace(req.HTNo)

	if req.URL == "" {
		return InvalidInput("url is required")
	}
	if req.HTNo == "" {
		return InvalidInput("htno is required")
	}
	if err := rollno.Validate(req.HTNo); err != nil {
		return NewEngineError(ErrCodeInvalidInput, "invalid htno", err)
	}
	if err := urlutil.ValidateURL(req.URL); err != nil {
		return NewEngineError(ErrCodeInvalidInput, "invalid url", err)
	}
	return nil
}
