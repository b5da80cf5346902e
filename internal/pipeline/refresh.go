package pipeline

import (
	"context"
	"errors"

	"github.com/pfrederiksen/wimbledon-finals/internal/final"
	"github.com/pfrederiksen/wimbledon-finals/internal/logger"
	"github.com/pfrederiksen/wimbledon-finals/internal/storage"
)

// State is a step of a current-year refresh
type State string

const (
	StateFetching  State = "fetching"
	StateParsing   State = "parsing"
	StateSearching State = "searching"
	StateFound     State = "found"
	StateNotFound  State = "not_found"
	StateUpserting State = "upserting"
	StateDone      State = "done"
)

// RefreshStatus is the outcome of a current-year refresh
type RefreshStatus string

const (
	StatusUpserted        RefreshStatus = "upserted"
	StatusNotYetAvailable RefreshStatus = "not_yet_available"
	StatusFailed          RefreshStatus = "failed"
)

// RefreshReport summarises a current-year refresh
type RefreshReport struct {
	RunID     string        `json:"run_id" yaml:"run_id"`
	Year      int           `json:"year" yaml:"year"`
	Status    RefreshStatus `json:"status" yaml:"status"`
	States    []State       `json:"states" yaml:"states"`
	Final     *final.Final  `json:"final,omitempty" yaml:"final,omitempty"`
	Change    string        `json:"change,omitempty" yaml:"change,omitempty"`
	Announced bool          `json:"announced" yaml:"announced"`
	Err       error         `json:"-" yaml:"-"`
	ErrString string        `json:"error,omitempty" yaml:"error,omitempty"`
}

func (r *RefreshReport) enter(s State) {
	r.States = append(r.States, s)
}

func (r *RefreshReport) fail(err error) {
	r.Status = StatusFailed
	r.Err = err
	r.ErrString = err.Error()
	r.enter(StateDone)
}

// OK reports whether the refresh finished without a failure
func (r *RefreshReport) OK() bool {
	return r.Status != StatusFailed
}

// RefreshCurrentYear looks for the final of the clock's calendar year and upserts
// only that record. When the page has no such row yet nothing is written.
func (o *Orchestrator) RefreshCurrentYear(ctx context.Context) *RefreshReport {
	report := &RefreshReport{
		RunID: newRunID(),
		Year:  o.now().Year(),
	}
	defer func() {
		o.metrics.ObserveRun("refresh", string(report.Status), report.OK())
	}()

	fields := logger.Fields{"run_id": report.RunID, "year": report.Year}

	report.enter(StateFetching)
	body, err := o.fetch(ctx)
	if err != nil {
		o.log.Error("Current-year refresh fetch failed", fields, err)
		report.fail(err)
		return report
	}

	report.enter(StateParsing)
	_, finals, _, err := o.parse(report.RunID, body)
	if err != nil {
		o.log.Error("Current-year refresh parse failed", fields, err)
		report.fail(err)
		return report
	}

	report.enter(StateSearching)
	current, found := findYear(finals, report.Year)
	if !found {
		report.enter(StateNotFound)
		report.enter(StateDone)
		report.Status = StatusNotYetAvailable
		o.log.Info("Current-year final not yet available", fields)
		return report
	}
	report.enter(StateFound)
	report.Final = &current

	previous, err := o.store.GetByYear(ctx, current.Year)
	var prevPtr *final.Final
	switch {
	case err == nil:
		prevPtr = &previous
	case errors.Is(err, storage.ErrNotFound):
	default:
		// Unreadable store: the upsert below decides whether the run fails
		o.log.Warn("Could not read stored current-year final", logger.Fields{
			"run_id": report.RunID,
			"year":   report.Year,
			"error":  err.Error(),
		})
	}
	change := final.Classify(prevPtr, current)
	report.Change = string(change)

	report.enter(StateUpserting)
	err = o.store.Upsert(ctx, current)
	o.metrics.ObserveUpsert(err)
	if err != nil {
		o.log.Error("Failed to upsert current-year final", fields, err)
		report.fail(err)
		return report
	}
	report.Status = StatusUpserted
	report.enter(StateDone)

	o.log.Info("Current-year final upserted", logger.Fields{
		"run_id":   report.RunID,
		"year":     report.Year,
		"champion": current.Champion,
		"change":   report.Change,
	})

	if o.notifier != nil && change != final.ChangeUnchanged {
		if err := o.notifier.Notify(ctx, current); err != nil {
			o.log.Warn("Announcement failed", logger.Fields{
				"run_id": report.RunID,
				"year":   report.Year,
				"error":  err.Error(),
			})
		} else {
			report.Announced = true
		}
	}

	return report
}

func findYear(finals []final.Final, year int) (final.Final, bool) {
	for _, f := range finals {
		if f.Year == year {
			return f, true
		}
	}
	return final.Final{}, false
}
