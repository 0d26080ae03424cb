package testutil

import (
	"context"
	"slices"
	"sync"

	"github.com/ndewijer/portfolio-vis/internal/market"
	"github.com/ndewijer/portfolio-vis/internal/model"
)

// FakeSource is an in-memory market.Source for testing.
// It serves the configured bars, filtered to the requested symbols, and records every
// request it receives.
type FakeSource struct {
	mu sync.Mutex

	// Bars are served for any request; bars of symbols not requested are filtered out.
	Bars []model.Bar
	// Err, when set, is returned instead of bars.
	Err error
	// Block makes FetchDailyCloses wait for the context to be done, simulating a provider
	// that never answers.
	Block bool

	requests []market.Request
}

var _ market.Source = (*FakeSource)(nil)

// NewFakeSource creates a FakeSource serving bars.
func NewFakeSource(bars ...[]model.Bar) *FakeSource {
	return &FakeSource{Bars: slices.Concat(bars...)}
}

// WithError configures the source to fail every fetch with err.
func (f *FakeSource) WithError(err error) *FakeSource {
	f.Err = err
	return f
}

// WithBlock configures the source to block until the request context is done.
func (f *FakeSource) WithBlock() *FakeSource {
	f.Block = true
	return f
}

// Name identifies the fake provider.
func (f *FakeSource) Name() string {
	return "fake"
}

// FetchDailyCloses returns the configured bars for the requested symbols.
func (f *FakeSource) FetchDailyCloses(ctx context.Context, req market.Request) ([]model.Bar, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()

	if err := req.Validate(); err != nil {
		return nil, err
	}
	if f.Block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if f.Err != nil {
		return nil, f.Err
	}

	var out []model.Bar
	for _, b := range f.Bars {
		if slices.Contains(req.Symbols, b.Symbol) {
			out = append(out, b)
		}
	}
	return out, nil
}

// Requests returns the requests received so far.
func (f *FakeSource) Requests() []market.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.requests)
}

// LastRequest returns the most recent request, or the zero Request if none was made.
func (f *FakeSource) LastRequest() market.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.requests) == 0 {
		return market.Request{}
	}
	return f.requests[len(f.requests)-1]
}
