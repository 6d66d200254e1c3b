package cache

import (
	"context"
	"strings"
	"time"

	"github.com/law-makers/results/internal/engine"
	"github.com/law-makers/results/internal/reqctx"
	"github.com/law-makers/results/pkg/models"
)

// Looker serves repeated lookups from a Cache. Only extracted records are
// stored; failures always reach the portal again.
type Looker struct {
	next  engine.Looker
	cache Cache
	ttl   time.Duration
}

// NewLooker wraps next with c
func NewLooker(next engine.Looker, c Cache, ttl time.Duration) *Looker {
	return &Looker{next: next, cache: c, ttl: ttl}
}

// Lookup implements engine.Looker
func (l *Looker) Lookup(ctx context.Context, req models.LookupRequest) (*models.StudentRecord, error) {
	if err := engine.ValidateRequest(&req); err != nil {
		return nil, err
	}

	key := Key(req.URL, req.HTNo)
	if rec, ok := l.cache.Get(key); ok {
		reqctx.Logger(ctx).Debug().Str("htno", req.HTNo).Msg("Cache hit")
		out := *rec
		return &out, nil
	}

	rec, err := l.next.Lookup(ctx, req)
	if err != nil {
		return nil, err
	}
	stored := *rec
	_ = l.cache.Set(key, &stored, l.ttl)
	return rec, nil
}

// Key identifies one roll number on one portal. The www. prefix is ignored
// because both hosts serve the same results.
func Key(url, htno string) string {
	u := strings.ToLower(strings.TrimSpace(url))
	u = strings.Replace(u, "://www.", "://", 1)
	return u + "::" + htno
}
