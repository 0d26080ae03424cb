// Package market defines the contract between the portfolio service and the upstream
// price providers.
package market

import (
	"context"
	"fmt"
	"time"

	"github.com/ndewijer/portfolio-vis/internal/apperrors"
	"github.com/ndewijer/portfolio-vis/internal/model"
)

// Request asks for daily closes of Symbols between Start and End (inclusive).
type Request struct {
	Symbols []model.Symbol
	Start   time.Time
	End     time.Time
}

// Validate checks the request is answerable.
func (r Request) Validate() error {
	if len(r.Symbols) == 0 {
		return fmt.Errorf("%w: no symbols requested", apperrors.ErrMalformedInput)
	}
	if r.End.Before(r.Start) {
		return fmt.Errorf("%w: start %s is after end %s", apperrors.ErrInvalidDateRange,
			model.FormatDate(r.Start), model.FormatDate(r.End))
	}
	return nil
}

// TrailingWindow builds a request covering the last days calendar days up to now.
func TrailingWindow(symbols []model.Symbol, days int, now time.Time) Request {
	return Request{
		Symbols: symbols,
		Start:   now.AddDate(0, 0, -days),
		End:     now,
	}
}

// Source returns daily close bars. Symbols the provider has no data for are omitted from
// the result rather than reported as errors; a transport failure fails the whole fetch.
type Source interface {
	Name() string
	FetchDailyCloses(ctx context.Context, req Request) ([]model.Bar, error)
}
