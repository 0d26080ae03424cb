// Package cli implements portfolioctl, a command line front end to the portfolio
// computations served by the HTTP API.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ndewijer/portfolio-vis/internal/config"
	"github.com/ndewijer/portfolio-vis/internal/logger"
	"github.com/ndewijer/portfolio-vis/internal/market"
	"github.com/ndewijer/portfolio-vis/internal/model"
	"github.com/ndewijer/portfolio-vis/internal/provider"
	"github.com/ndewijer/portfolio-vis/internal/service"
	"github.com/ndewijer/portfolio-vis/internal/version"
)

// App holds the flags and collaborators shared by all commands.
type App struct {
	out    io.Writer
	errOut io.Writer

	loadConfig func(files ...string) (*config.Config, error)
	newSource  func(cfg config.MarketConfig, log zerolog.Logger) (market.Source, error)
	now        func() time.Time

	envFiles []string
	logLevel string
	asJSON   bool
}

// New creates an App printing results to out and diagnostics to errOut.
func New(out, errOut io.Writer) *App {
	return &App{
		out:        out,
		errOut:     errOut,
		loadConfig: config.Load,
		newSource:  provider.New,
		now:        time.Now,
	}
}

// Command builds the root command.
func (a *App) Command() *cobra.Command {
	root := &cobra.Command{
		Use:   "portfolioctl",
		Short: "Value a stock portfolio and compare it with a benchmark",
		Long: `portfolioctl runs the portfolio computations of the API server from the shell.

Portfolio commands read a YAML (or JSON) file:

  benchmark: SPY
  days: 30
  positions:
    - symbol: AAPL
      shares: 10
    - symbol: MSFT
      shares: 5

Market data credentials are read from the environment, .env and keys.env.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringSliceVar(&a.envFiles, "env", nil, "env files to load (default .env,keys.env)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	root.PersistentFlags().BoolVar(&a.asJSON, "json", false, "print results as JSON")

	root.AddCommand(
		a.valueCommand(),
		a.timeseriesCommand(),
		a.performanceCommand(),
		a.metricsCommand(),
		a.symbolsCommand(),
		a.versionCommand(),
	)
	return root
}

func (a *App) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(a.out, "portfolioctl version %s\n", version.Version)
		},
	}
}

func (a *App) logger() zerolog.Logger {
	return logger.NewWithWriter(logger.Config{Level: a.logLevel, Pretty: true}, a.errOut)
}

// portfolioService loads the configuration and builds a service over the configured provider.
func (a *App) portfolioService() (*service.PortfolioService, error) {
	cfg, err := a.loadConfig(a.envFiles...)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := a.logger()
	src, err := a.newSource(cfg.Market, log)
	if err != nil {
		return nil, err
	}
	return service.NewPortfolioService(src, cfg.Portfolio, cfg.Market.Timeout, log).WithClock(a.now), nil
}

func (a *App) printJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (a *App) printWarnings(warnings []model.Warning) {
	for _, w := range warnings {
		fmt.Fprintf(a.errOut, "warning: %s: %s\n", w.Symbol, w.Message)
	}
}
