package cli

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pfrederiksen/wimbledon-finals/internal/final"
	"github.com/pfrederiksen/wimbledon-finals/internal/pipeline"
)

var sample = []final.Final{
	{Year: 2008, Champion: "Rafael Nadal", RunnerUp: "Roger Federer", Score: "6-4, 6-4, 6-7(5), 6-7(8), 9-7", Sets: 5, Tiebreak: true},
	{Year: 1980, Champion: "Bjorn Borg", RunnerUp: "John McEnroe", Score: "1-6, 7-5, 6-3, 6-7(16), 8-6", Sets: 5, Tiebreak: true},
	{Year: 2003, Champion: "Roger Federer", RunnerUp: "Mark Philippoussis", Score: "7-6(5), 6-2, 7-6(3)", Sets: 3, Tiebreak: true},
	{Year: 2024, Champion: "Carlos Alcaraz", RunnerUp: "Novak Djokovic", Score: "6-2, 6-2, 7-6(4)", Sets: 3, Tiebreak: true},
}

func years(finals []final.Final) []int {
	out := make([]int, len(finals))
	for i, f := range finals {
		out[i] = f.Year
	}
	return out
}

func TestSortFinals(t *testing.T) {
	tests := []struct {
		order SortOrder
		want  []int
	}{
		{SortByYear, []int{1980, 2003, 2008, 2024}},
		{SortByYearDesc, []int{2024, 2008, 2003, 1980}},
		{SortByChampion, []int{1980, 2024, 2008, 2003}},
	}

	for _, tt := range tests {
		t.Run(string(tt.order), func(t *testing.T) {
			finals := append([]final.Final(nil), sample...)
			sortFinals(finals, tt.order)
			assert.Equal(t, tt.want, years(finals))
		})
	}
}

func TestParseFormat(t *testing.T) {
	for _, in := range []string{"text", "JSON", " yaml "} {
		_, err := parseFormat(in)
		assert.NoError(t, err, in)
	}
	_, err := parseFormat("csv")
	assert.Error(t, err)
}

func TestWriteOutput(t *testing.T) {
	f := sample[0]
	text := func(w io.Writer) error { return writeFinalText(w, f) }

	var buf bytes.Buffer
	require.NoError(t, WriteOutput(&buf, f, FormatJSON, text))
	assert.Contains(t, buf.String(), `"runner_up": "Roger Federer"`)

	buf.Reset()
	require.NoError(t, WriteOutput(&buf, f, FormatYAML, text))
	assert.Contains(t, buf.String(), "runner_up: Roger Federer")

	buf.Reset()
	require.NoError(t, WriteOutput(&buf, f, FormatText, text))
	assert.Contains(t, buf.String(), "Tiebreak:  true")

	assert.Error(t, WriteOutput(&buf, f, OutputFormat("xml"), text))
}

func TestWriteFullText(t *testing.T) {
	var buf bytes.Buffer
	report := &pipeline.FullReport{
		RunID:    "run-1",
		Status:   pipeline.FullPartial,
		Finals:   sample[:2],
		Unique:   2,
		Upserted: 1,
		Failed:   []int{1980},
		Skipped:  3,
	}

	require.NoError(t, writeFullText(&buf, report, true))
	out := buf.String()
	assert.Contains(t, out, "Run run-1")
	assert.Contains(t, out, "2008  Rafael Nadal def. Roger Federer")
	assert.Contains(t, out, "Total: 2 finals (1 upserted, 1 failed, 3 rows skipped)")
	assert.Contains(t, out, "Failed years: [1980]")
}

func TestWriteDiffText(t *testing.T) {
	old := sample[3]
	old.Score = "6-2, 6-2, 7-6"
	diff := final.Diff(map[int]final.Final{2024: old, 2008: sample[0]}, sample)

	var buf bytes.Buffer
	require.NoError(t, writeDiffText(&buf, diff, false))
	out := buf.String()
	assert.Contains(t, out, "UPDATED")
	assert.Contains(t, out, `score: "6-2, 6-2, 7-6" -> "6-2, 6-2, 7-6(4)"`)
	assert.NotContains(t, out, "UNCHANGED")
	assert.Contains(t, out, "Would write: 2 new, 1 updated, 1 unchanged")

	buf.Reset()
	require.NoError(t, writeDiffText(&buf, diff, true))
	assert.Contains(t, buf.String(), "UNCHANGED")
}

func TestWriteRefreshText(t *testing.T) {
	f := sample[3]

	tests := []struct {
		name   string
		report *pipeline.RefreshReport
		want   string
	}{
		{"upserted", &pipeline.RefreshReport{Year: 2024, Status: pipeline.StatusUpserted, Final: &f, Change: "new", Announced: true}, "2024 final successfully updated (new)."},
		{"not yet", &pipeline.RefreshReport{Year: 2025, Status: pipeline.StatusNotYetAvailable}, "2025 final not found yet on the website."},
		{"failed", &pipeline.RefreshReport{Year: 2025, Status: pipeline.StatusFailed, Err: errors.New("boom"), ErrString: "boom"}, "Refresh failed: boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, writeRefreshText(&buf, tt.report, false))
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}
