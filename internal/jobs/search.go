// Package jobs maintains job-search state: filter criteria, the result list
// fetched from the remote search endpoint, and a static fallback dataset
// substituted on failure.
package jobs

import (
	"context"
	"log/slog"
	"sync"

	"github.com/vedika48/career-compass/internal/careerapi"
	"github.com/vedika48/career-compass/internal/domain"
	"github.com/vedika48/career-compass/internal/flight"
)

// SearchAPI is the slice of the backend client the panel depends on.
type SearchAPI interface {
	SearchJobs(ctx context.Context, token string, filters domain.JobFilters) (*careerapi.JobSearchResponse, error)
}

// TokenFunc supplies the current session credential at search time.
type TokenFunc func() string

// Panel is the job-search state. A second search while one is pending is
// dropped.
type Panel struct {
	api    SearchAPI
	token  TokenFunc
	logger *slog.Logger
	gate   *flight.Gate

	mu              sync.Mutex
	filters         domain.JobFilters
	results         []domain.Job
	searchPerformed bool
	usedFallback    bool
}

// NewPanel creates a panel with the default filters of a fresh UI.
func NewPanel(api SearchAPI, token TokenFunc, logger *slog.Logger) *Panel {
	if token == nil {
		token = func() string { return "" }
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Panel{
		api:    api,
		token:  token,
		logger: logger,
		gate:   flight.NewGate(),
		filters: domain.JobFilters{
			Location: "Bangalore",
			Skills:   []string{},
		},
	}
}

// Search runs a job search. The searchPerformed flag is set before the
// remote call resolves, so "searching" is distinguishable from "never
// searched". On failure the fixed sample dataset is substituted rather than
// an empty list or an error. Returns false when a search is already pending.
func (p *Panel) Search(ctx context.Context, filters domain.JobFilters) bool {
	if !p.gate.Begin() {
		return false
	}

	p.mu.Lock()
	p.filters = filters
	p.searchPerformed = true
	p.mu.Unlock()

	resp, err := p.api.SearchJobs(ctx, p.token(), filters)
	p.gate.Finish(err)

	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		p.logger.Warn("job search failed, substituting sample data", "error", err)
		p.results = SampleJobs()
		p.usedFallback = true
		return true
	}

	if resp.Jobs == nil {
		p.results = []domain.Job{}
	} else {
		p.results = resp.Jobs
	}
	p.usedFallback = false
	return true
}

// Results returns the current result list. Empty after a zero-hit search,
// nil before any search.
func (p *Panel) Results() []domain.Job {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.results == nil {
		return nil
	}
	out := make([]domain.Job, len(p.results))
	copy(out, p.results)
	return out
}

// Filters returns the last applied filter criteria.
func (p *Panel) Filters() domain.JobFilters {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.filters
}

// SearchPerformed distinguishes "never searched" from "searched, zero
// results".
func (p *Panel) SearchPerformed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.searchPerformed
}

// UsedFallback reports whether the current results are the sample dataset.
func (p *Panel) UsedFallback() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.usedFallback
}

// Pending reports whether a search is in flight.
func (p *Panel) Pending() bool {
	return p.gate.Pending()
}
