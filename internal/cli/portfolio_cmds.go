package cli

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ndewijer/portfolio-vis/internal/model"
	"github.com/ndewijer/portfolio-vis/internal/portfolio"
)

// portfolioCommand builds a command that reads a portfolio file given by -f.
func (a *App) portfolioCommand(use, short string, run func(cmd *cobra.Command, q model.PortfolioQuery) error) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := loadQuery(file)
			if err != nil {
				return err
			}
			return run(cmd, q)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "portfolio.yaml", "portfolio file (YAML or JSON)")
	return cmd
}

func (a *App) valueCommand() *cobra.Command {
	return a.portfolioCommand("value", "Value each position at its latest close", func(cmd *cobra.Command, q model.PortfolioQuery) error {
		svc, err := a.portfolioService()
		if err != nil {
			return err
		}
		result, err := svc.Distribution(cmd.Context(), q)
		if err != nil {
			return err
		}
		a.printWarnings(result.Warnings)
		if a.asJSON {
			return a.printJSON(result.Positions)
		}

		tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "SYMBOL\tSHARES\tPRICE\tVALUE")
		for _, p := range result.Positions {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.Symbol, formatShares(p.Shares), formatMoney(p.Price), formatMoney(p.Value))
		}
		fmt.Fprintf(tw, "TOTAL\t\t\t%s\n", formatMoney(portfolio.TotalValue(result.Positions)))
		return tw.Flush()
	})
}

func (a *App) timeseriesCommand() *cobra.Command {
	return a.portfolioCommand("timeseries", "Show each symbol's close series normalized to its first close", func(cmd *cobra.Command, q model.PortfolioQuery) error {
		svc, err := a.portfolioService()
		if err != nil {
			return err
		}
		ts, err := svc.Timeseries(cmd.Context(), model.SeriesQuery{
			Symbols: model.PositionSymbols(q.Positions),
			Days:    q.Days,
		})
		if err != nil {
			return err
		}
		a.printWarnings(ts.Warnings)
		if a.asJSON {
			return a.printJSON(ts)
		}

		symbols := make([]string, 0, len(ts.Series))
		for s := range ts.Series {
			symbols = append(symbols, string(s))
		}
		sort.Strings(symbols)

		tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "SYMBOL\tDAYS\tLAST\tCHANGE")
		for _, s := range symbols {
			series := ts.Series[model.Symbol(s)]
			last := series[len(series)-1]
			fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", s, len(series), formatRatio(last), formatPercent(last-1))
		}
		return tw.Flush()
	})
}

func (a *App) performanceCommand() *cobra.Command {
	return a.portfolioCommand("performance", "Compare the normalized portfolio value with its benchmark", func(cmd *cobra.Command, q model.PortfolioQuery) error {
		svc, err := a.portfolioService()
		if err != nil {
			return err
		}
		perf, err := svc.Performance(cmd.Context(), q)
		if err != nil {
			return err
		}
		a.printWarnings(perf.Warnings)
		if a.asJSON {
			return a.printJSON(perf)
		}

		tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
		fmt.Fprintf(tw, "DATE\t%s\tPORTFOLIO\tVALUE\n", perf.BenchmarkSymbol)
		for i, d := range perf.Dates {
			bench := "-"
			if len(perf.Benchmark) > 0 {
				bench = formatRatio(perf.Benchmark[i])
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", d, bench, formatRatio(perf.Portfolio[i]), formatMoney(perf.Values[i]))
		}
		return tw.Flush()
	})
}

func (a *App) metricsCommand() *cobra.Command {
	return a.portfolioCommand("metrics", "Summarize return, volatility and drawdown against the benchmark", func(cmd *cobra.Command, q model.PortfolioQuery) error {
		svc, err := a.portfolioService()
		if err != nil {
			return err
		}
		report, err := svc.Metrics(cmd.Context(), q)
		if err != nil {
			return err
		}
		a.printWarnings(report.Warnings)
		if a.asJSON {
			return a.printJSON(report)
		}

		m := report.Metrics
		bench := func(f func(portfolio.SeriesMetrics) float64) string {
			if m.Benchmark == nil {
				return "-"
			}
			return formatPercent(f(*m.Benchmark))
		}

		tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
		fmt.Fprintf(tw, "\tPORTFOLIO\t%s\n", report.Benchmark)
		fmt.Fprintf(tw, "Total return\t%s\t%s\n", formatPercent(m.Portfolio.TotalReturn),
			bench(func(s portfolio.SeriesMetrics) float64 { return s.TotalReturn }))
		fmt.Fprintf(tw, "Volatility\t%s\t%s\n", formatPercent(m.Portfolio.AnnualizedVolatility),
			bench(func(s portfolio.SeriesMetrics) float64 { return s.AnnualizedVolatility }))
		fmt.Fprintf(tw, "Max drawdown\t%s\t%s\n", formatPercent(m.Portfolio.MaxDrawdown),
			bench(func(s portfolio.SeriesMetrics) float64 { return s.MaxDrawdown }))
		if m.Correlation != nil {
			fmt.Fprintf(tw, "Correlation\t%s\t\n", formatRatio(*m.Correlation))
		}
		if m.Beta != nil {
			fmt.Fprintf(tw, "Beta\t%s\t\n", formatRatio(*m.Beta))
		}
		return tw.Flush()
	})
}
