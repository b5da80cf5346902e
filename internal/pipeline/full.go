package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/pfrederiksen/wimbledon-finals/internal/final"
	"github.com/pfrederiksen/wimbledon-finals/internal/logger"
	"github.com/pfrederiksen/wimbledon-finals/internal/storage"
)

// FullStatus is the outcome of a full pass
type FullStatus string

const (
	FullCompleted FullStatus = "completed"
	FullPartial   FullStatus = "partial" // at least one upsert failed
	FullEmpty     FullStatus = "empty"   // no data could be scraped
	FullFailed    FullStatus = "failed"
)

// FullReport summarises a full pass
type FullReport struct {
	RunID     string        `json:"run_id" yaml:"run_id"`
	Status    FullStatus    `json:"status" yaml:"status"`
	Rows      int           `json:"rows" yaml:"rows"`
	Built     int           `json:"built" yaml:"built"`
	Skipped   int           `json:"skipped" yaml:"skipped"`
	Unique    int           `json:"unique" yaml:"unique"`
	Upserted  int           `json:"upserted" yaml:"upserted"`
	Failed    []int         `json:"failed,omitempty" yaml:"failed,omitempty"`
	Finals    []final.Final `json:"finals" yaml:"finals"`
	Duration  time.Duration `json:"duration_ns" yaml:"duration_ns"`
	Err       error         `json:"-" yaml:"-"`
	ErrString string        `json:"error,omitempty" yaml:"error,omitempty"`
}

// OK reports whether the pass finished without a fetch or write failure
func (r *FullReport) OK() bool {
	return r.Status == FullCompleted || r.Status == FullEmpty
}

// RunFull fetches the source, builds and deduplicates every final, and upserts
// each one in ascending year order. A failed upsert is logged and the pass
// continues with the next year.
func (o *Orchestrator) RunFull(ctx context.Context) *FullReport {
	start := time.Now()
	report := &FullReport{RunID: newRunID()}
	defer func() {
		report.Duration = time.Since(start)
		o.metrics.ObserveRun("full", string(report.Status), report.OK())
	}()

	o.log.Info("Starting full scrape", logger.Fields{"run_id": report.RunID})

	rows, finals, skipped, err := o.load(ctx, report.RunID)
	if err != nil {
		o.log.Error("Full scrape failed", logger.Fields{"run_id": report.RunID}, err)
		report.Status = FullFailed
		report.Err = err
		report.ErrString = err.Error()
		return report
	}
	report.Rows = rows
	report.Built = len(finals)
	report.Skipped = skipped

	report.Finals = final.SortByYear(final.Dedupe(finals))
	report.Unique = len(report.Finals)

	if report.Unique == 0 {
		o.log.Warn("No data could be scraped", logger.Fields{
			"run_id": report.RunID,
			"rows":   rows,
		})
		report.Status = FullEmpty
		return report
	}

	for _, f := range report.Finals {
		err := o.store.Upsert(ctx, f)
		o.metrics.ObserveUpsert(err)
		if err != nil {
			o.log.Error("Failed to upsert final", logger.Fields{
				"run_id": report.RunID,
				"year":   f.Year,
			}, err)
			report.Failed = append(report.Failed, f.Year)
			continue
		}
		report.Upserted++
	}

	report.Status = FullCompleted
	if len(report.Failed) > 0 {
		report.Status = FullPartial
	}

	o.log.Info("Full scrape finished", logger.Fields{
		"run_id":   report.RunID,
		"status":   string(report.Status),
		"rows":     report.Rows,
		"skipped":  report.Skipped,
		"unique":   report.Unique,
		"upserted": report.Upserted,
		"failed":   len(report.Failed),
	})

	return report
}

// Preview runs the read half of a full pass and compares the result with the
// store without writing anything.
func (o *Orchestrator) Preview(ctx context.Context) (*final.DiffResult, error) {
	runID := newRunID()

	_, finals, _, err := o.load(ctx, runID)
	if err != nil {
		return nil, err
	}
	current := final.SortByYear(final.Dedupe(finals))

	previous := make(map[int]final.Final, len(current))
	for _, f := range current {
		stored, err := o.store.GetByYear(ctx, f.Year)
		if errors.Is(err, storage.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		previous[f.Year] = stored
	}

	return final.Diff(previous, current), nil
}
