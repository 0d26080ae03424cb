package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ndewijer/portfolio-vis/internal/symbols"
)

func (a *App) symbolsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "symbols",
		Short: "Work with the symbol catalog",
	}

	var in, out string
	convert := &cobra.Command{
		Use:   "convert",
		Short: "Convert the symbol CSV into the JSON list the stock picker loads",
		Long: `Reads a CSV with "Symbol" and "Name" columns and writes [{"symbol","name"}].
Rows with an empty symbol or name, or whose name contains "Note", are skipped.

Example:
  portfolioctl symbols convert --in data/symbols.csv --out stock_symbols.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := symbols.Convert(in, out)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Wrote %d symbols to %s\n", n, out)
			return nil
		},
	}
	convert.Flags().StringVar(&in, "in", "data/symbols.csv", "symbol CSV")
	convert.Flags().StringVar(&out, "out", "stock_symbols.json", "JSON output file")

	var (
		csvPath string
		limit   int
	)
	search := &cobra.Command{
		Use:   "search [query]",
		Short: "Search the symbol catalog by symbol or name",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := symbols.LoadFile(csvPath)
			if err != nil {
				return err
			}
			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			matches := symbols.NewStaticCatalog(entries).Search(query, limit)
			if a.asJSON {
				return a.printJSON(matches)
			}

			tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "SYMBOL\tNAME")
			for _, e := range matches {
				fmt.Fprintf(tw, "%s\t%s\n", e.Symbol, e.Name)
			}
			return tw.Flush()
		},
	}
	search.Flags().StringVar(&csvPath, "in", "data/symbols.csv", "symbol CSV")
	search.Flags().IntVar(&limit, "limit", 20, "maximum number of results, 0 for all")

	cmd.AddCommand(convert, search)
	return cmd
}
