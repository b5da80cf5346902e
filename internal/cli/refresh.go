package cli

import (
	"io"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/pfrederiksen/wimbledon-finals/internal/metrics"
)

func newRefreshCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Upsert the current year's final if it has been played",
		Long: `Look for this calendar year's final on the source page and upsert only that
record. Exits 0 when the final was stored or is not on the page yet, 1 on failure.
Suitable for an external cron entry.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
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

			report := o.RefreshCurrentYear(ctx)
			if err := WriteOutput(cmd.OutOrStdout(), report, a.format(), func(w io.Writer) error {
				return writeRefreshText(w, report, a.flagVerbose)
			}); err != nil {
				return err
			}

			if !report.OK() {
				return &exitCodeError{code: ExitError, err: eris.Wrap(report.Err, "refresh failed")}
			}
			return nil
		},
	}
}
