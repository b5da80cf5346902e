package cli

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/pfrederiksen/wimbledon-finals/internal/api"
	"github.com/pfrederiksen/wimbledon-finals/internal/logger"
	"github.com/pfrederiksen/wimbledon-finals/internal/metrics"
	"github.com/pfrederiksen/wimbledon-finals/internal/pipeline"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(a *app) *cobra.Command {
	var refreshOnStart bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the read API and refresh the current year on a schedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			store, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close() //nolint:errcheck

			m := metrics.New()
			o, err := a.newOrchestrator(cmd, store, m)
			if err != nil {
				return err
			}

			srv := &http.Server{
				Addr:              fmt.Sprintf(":%d", a.cfg.Server.Port),
				Handler:           api.NewRouter(store, m, a.log),
				ReadHeaderTimeout: 10 * time.Second,
			}

			return runServer(ctx, srv, o, a.cfg.Schedule.Cron, a.cfg.Location(), refreshOnStart, a.log)
		},
	}

	cmd.Flags().BoolVar(&refreshOnStart, "refresh-on-start", true, "Run a current-year refresh before the first scheduled one")

	return cmd
}

// refresher is satisfied by *pipeline.Orchestrator
type refresher interface {
	RefreshCurrentYear(ctx context.Context) *pipeline.RefreshReport
}

// runServer serves HTTP and runs scheduled refreshes until ctx is cancelled
func runServer(ctx context.Context, srv *http.Server, o refresher, schedule string, loc *time.Location, refreshOnStart bool, log *logger.Logger) error {
	scheduler := cron.New(cron.WithLocation(loc))
	if _, err := scheduler.AddFunc(schedule, func() {
		o.RefreshCurrentYear(ctx)
	}); err != nil {
		return eris.Wrapf(err, "cli: schedule refresh %q", schedule)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("Starting API server", logger.Fields{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "cli: api server")
		}
		return nil
	})

	g.Go(func() error {
		if refreshOnStart {
			o.RefreshCurrentYear(gctx)
		}
		scheduler.Start()
		log.Info("Refresh scheduled", logger.Fields{"cron": schedule, "timezone": loc.String()})

		<-gctx.Done()
		log.Info("Shutting down", nil)

		<-scheduler.Stop().Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return eris.Wrap(srv.Shutdown(shutdownCtx), "cli: shutdown api server")
	})

	return g.Wait()
}
