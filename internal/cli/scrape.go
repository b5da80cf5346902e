package cli

import (
	"io"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/pfrederiksen/wimbledon-finals/internal/metrics"
	"github.com/pfrederiksen/wimbledon-finals/internal/pipeline"
)

func errScrapeIncomplete(status pipeline.FullStatus) error {
	return eris.Errorf("scrape finished with status %s", status)
}

func newScrapeCmd(a *app) *cobra.Command {
	var (
		dryRun bool
		order  string
	)

	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Scrape every final on the source page and upsert them",
		Long: `Fetch the source page, build one record per year and upsert each into the store.
With --dry-run nothing is written; the command reports which years would be new,
updated or unchanged.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sortOrder, err := parseSortOrder(order)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			store, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close() //nolint:errcheck

			o, err := a.newOrchestrator(cmd, store, metrics.New())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			if dryRun {
				diff, err := o.Preview(ctx)
				if err != nil {
					return &exitCodeError{code: ExitError, err: err}
				}
				return WriteOutput(out, diff, a.format(), func(w io.Writer) error {
					return writeDiffText(w, diff, a.flagVerbose)
				})
			}

			report := o.RunFull(ctx)
			sortFinals(report.Finals, sortOrder)

			if err := WriteOutput(out, report, a.format(), func(w io.Writer) error {
				return writeFullText(w, report, a.flagVerbose)
			}); err != nil {
				return err
			}

			if !report.OK() {
				return &exitCodeError{code: ExitError, err: errScrapeIncomplete(report.Status)}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would change without writing")
	cmd.Flags().StringVar(&order, "sort", string(SortByYear), "Sort order: year, year-desc or champion")

	return cmd
}
