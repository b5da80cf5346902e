package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/pfrederiksen/wimbledon-finals/internal/final"
	"github.com/pfrederiksen/wimbledon-finals/internal/storage"
)

func newGetCmd(a *app) *cobra.Command {
	var year int

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Print the stored final for a year",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close() //nolint:errcheck

			f, err := store.GetByYear(ctx, year)
			if errors.Is(err, storage.ErrNotFound) {
				return &exitCodeError{code: ExitError, err: eris.Errorf("No data found for Wimbledon final %d.", year)}
			}
			if err != nil {
				return err
			}

			return WriteOutput(cmd.OutOrStdout(), f, a.format(), func(w io.Writer) error {
				return writeFinalText(w, f)
			})
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "Year of the final (required)")
	cmd.MarkFlagRequired("year") //nolint:errcheck

	return cmd
}

func writeFinalText(w io.Writer, f final.Final) error {
	fmt.Fprintf(w, "Year:      %d\n", f.Year)
	fmt.Fprintf(w, "Champion:  %s\n", f.Champion)
	fmt.Fprintf(w, "Runner-up: %s\n", f.RunnerUp)
	fmt.Fprintf(w, "Score:     %s\n", f.Score)
	fmt.Fprintf(w, "Sets:      %d\n", f.Sets)
	fmt.Fprintf(w, "Tiebreak:  %t\n", f.Tiebreak)
	return nil
}
