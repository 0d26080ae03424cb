// Package provider builds the configured market data source.
package provider

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/ndewijer/portfolio-vis/internal/alpaca"
	"github.com/ndewijer/portfolio-vis/internal/apperrors"
	"github.com/ndewijer/portfolio-vis/internal/config"
	"github.com/ndewijer/portfolio-vis/internal/market"
	"github.com/ndewijer/portfolio-vis/internal/yahoo"
)

// New returns the market.Source selected by cfg.Provider.
func New(cfg config.MarketConfig, log zerolog.Logger) (market.Source, error) {
	switch cfg.Provider {
	case config.ProviderAlpaca:
		client := alpaca.NewClient(alpaca.Options{
			APIKey:    cfg.APIKey,
			APISecret: cfg.APISecret,
			BaseURL:   cfg.BaseURL,
			Feed:      cfg.Feed,
			Timeout:   cfg.Timeout,
		})
		return alpaca.NewSource(client, cfg.Feed, log), nil
	case config.ProviderYahoo:
		client := yahoo.NewFinanceClient(&http.Client{Timeout: cfg.Timeout}, "")
		return yahoo.NewSource(client, cfg.Concurrency, log), nil
	default:
		return nil, fmt.Errorf("%w: %q", apperrors.ErrProviderNotSupported, cfg.Provider)
	}
}
