package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/pfrederiksen/wimbledon-finals/internal/final"
	"github.com/pfrederiksen/wimbledon-finals/internal/pipeline"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
)

func parseFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	}
	return "", eris.Errorf("invalid format: %s (must be 'text', 'json' or 'yaml')", s)
}

// WriteOutput writes v in the specified format; text uses the given renderer
func WriteOutput(w io.Writer, v any, format OutputFormat, text func(io.Writer) error) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, v)
	case FormatYAML:
		return writeYAML(w, v)
	case FormatText:
		return text(w)
	default:
		return eris.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// writeYAML outputs results as YAML
func writeYAML(w io.Writer, v any) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return eris.Wrap(err, "cli: encode yaml")
	}
	return encoder.Close()
}

func writeFinalLine(w io.Writer, f final.Final) {
	fmt.Fprintf(w, "%d  %s def. %s  %s", f.Year, f.Champion, f.RunnerUp, f.Score)
	fmt.Fprintf(w, "  [%d sets", f.Sets)
	if f.Tiebreak {
		fmt.Fprint(w, ", tiebreak")
	}
	fmt.Fprintln(w, "]")
}

// writeFullText outputs a full pass as human-readable text
func writeFullText(w io.Writer, r *pipeline.FullReport, verbose bool) error {
	if verbose {
		fmt.Fprintf(w, "Run %s (%s)\n", r.RunID, r.Duration)
	}

	switch r.Status {
	case pipeline.FullFailed:
		fmt.Fprintf(w, "Scrape failed: %s\n", r.ErrString)
		return nil
	case pipeline.FullEmpty:
		fmt.Fprintln(w, "No data could be scraped.")
		return nil
	}

	for _, f := range r.Finals {
		writeFinalLine(w, f)
	}

	fmt.Fprintf(w, "\nTotal: %d finals (%d upserted, %d failed, %d rows skipped)\n",
		r.Unique, r.Upserted, len(r.Failed), r.Skipped)
	if len(r.Failed) > 0 {
		fmt.Fprintf(w, "Failed years: %v\n", r.Failed)
	}
	return nil
}

// writeDiffText outputs a dry-run comparison
func writeDiffText(w io.Writer, d *final.DiffResult, verbose bool) error {
	if len(d.Changes) == 0 {
		fmt.Fprintln(w, "No data could be scraped.")
		return nil
	}

	for _, c := range d.Changes {
		if c.Type == final.ChangeUnchanged && !verbose {
			continue
		}
		fmt.Fprintf(w, "%-9s ", strings.ToUpper(string(c.Type)))
		writeFinalLine(w, c.Final)
		for _, fc := range c.Fields {
			fmt.Fprintf(w, "          %s: %q -> %q\n", fc.Field, fc.OldValue, fc.NewValue)
		}
	}

	fmt.Fprintf(w, "\nWould write: %d new, %d updated, %d unchanged\n", d.New, d.Updated, d.Unchanged)
	return nil
}

// writeRefreshText outputs a current-year refresh
func writeRefreshText(w io.Writer, r *pipeline.RefreshReport, verbose bool) error {
	if verbose {
		fmt.Fprintf(w, "Run %s states: %v\n", r.RunID, r.States)
	}

	switch r.Status {
	case pipeline.StatusUpserted:
		fmt.Fprintf(w, "%d final successfully updated (%s).\n", r.Year, r.Change)
		if r.Final != nil {
			writeFinalLine(w, *r.Final)
		}
		if r.Announced {
			fmt.Fprintln(w, "Announcement posted.")
		}
	case pipeline.StatusNotYetAvailable:
		fmt.Fprintf(w, "%d final not found yet on the website.\n", r.Year)
	default:
		fmt.Fprintf(w, "Refresh failed: %s\n", r.ErrString)
	}
	return nil
}
