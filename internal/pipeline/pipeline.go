package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pfrederiksen/wimbledon-finals/internal/final"
	"github.com/pfrederiksen/wimbledon-finals/internal/logger"
	"github.com/pfrederiksen/wimbledon-finals/internal/metrics"
	"github.com/pfrederiksen/wimbledon-finals/internal/notifier"
	"github.com/pfrederiksen/wimbledon-finals/internal/scraper"
	"github.com/pfrederiksen/wimbledon-finals/internal/storage"
)

// Source retrieves the raw source document
type Source interface {
	FetchDocument(ctx context.Context) ([]byte, error)
}

// Orchestrator drives full passes and current-year refreshes
type Orchestrator struct {
	source   Source
	store    storage.Store
	notifier notifier.Notifier
	metrics  *metrics.Metrics
	log      *logger.Logger
	now      func() time.Time
}

// Option configures an Orchestrator
type Option func(*Orchestrator)

// WithNotifier announces current-year finals that are new or changed
func WithNotifier(n notifier.Notifier) Option {
	return func(o *Orchestrator) { o.notifier = n }
}

// WithMetrics records run outcomes
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *Orchestrator) { o.metrics = m }
}

// WithLogger overrides the default logger
func WithLogger(l *logger.Logger) Option {
	return func(o *Orchestrator) { o.log = l }
}

// WithClock overrides the clock used to determine the current year
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) { o.now = now }
}

// New creates an Orchestrator reading from source and writing to store
func New(source Source, store storage.Store, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		source: source,
		store:  store,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.log == nil {
		o.log = logger.Default()
	}
	return o
}

// fetch retrieves the source document and records how long it took
func (o *Orchestrator) fetch(ctx context.Context) ([]byte, error) {
	start := time.Now()
	body, err := o.source.FetchDocument(ctx)
	o.metrics.ObserveFetch(time.Since(start))
	return body, err
}

// parse turns the document's table rows into records.
// Rows that cannot form a record are counted in skipped.
func (o *Orchestrator) parse(runID string, body []byte) (rows int, finals []final.Final, skipped int, err error) {
	cells, err := scraper.ExtractBytes(body)
	if err != nil {
		return 0, nil, 0, err
	}

	finals, skipped = final.BuildAll(cells)
	o.metrics.AddSkipped(skipped)
	if skipped > 0 {
		o.log.Debug("Skipped rows without a usable record", logger.Fields{
			"run_id":  runID,
			"skipped": skipped,
		})
	}

	return len(cells), finals, skipped, nil
}

// load fetches and parses in one step
func (o *Orchestrator) load(ctx context.Context, runID string) (rows int, finals []final.Final, skipped int, err error) {
	body, err := o.fetch(ctx)
	if err != nil {
		return 0, nil, 0, err
	}
	return o.parse(runID, body)
}

func newRunID() string {
	return uuid.NewString()
}
