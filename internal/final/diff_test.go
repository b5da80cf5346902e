package final

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiff(t *testing.T) {
	stored := map[int]Final{
		2022: {Year: 2022, Champion: "N. Djokovic", RunnerUp: "N. Kyrgios", Score: "4-6, 6-3, 6-4, 7-6(3)", Sets: 4, Tiebreak: true},
		2023: {Year: 2023, Champion: "C. Alcaraz", RunnerUp: "N. Djokovic", Score: "1-6, 7-6, 6-1, 3-6, 6-4", Sets: 5},
	}
	scraped := []Final{
		{Year: 2024, Champion: "C. Alcaraz", RunnerUp: "N. Djokovic", Score: "6-2, 6-2, 7-6(4)", Sets: 3, Tiebreak: true},
		{Year: 2023, Champion: "C. Alcaraz", RunnerUp: "N. Djokovic", Score: "1-6, 7-6(6), 6-1, 3-6, 6-4", Sets: 5, Tiebreak: true},
		{Year: 2022, Champion: "N. Djokovic", RunnerUp: "N. Kyrgios", Score: "4-6, 6-3, 6-4, 7-6(3)", Sets: 4, Tiebreak: true},
	}

	result := Diff(stored, scraped)

	assert.Equal(t, 1, result.New)
	assert.Equal(t, 1, result.Updated)
	assert.Equal(t, 1, result.Unchanged)
	require.Len(t, result.Changes, 3)

	assert.Equal(t, 2022, result.Changes[0].Year)
	assert.Equal(t, ChangeUnchanged, result.Changes[0].Type)

	assert.Equal(t, ChangeUpdated, result.Changes[1].Type)
	assert.Equal(t, []FieldChange{
		{Field: "score", OldValue: "1-6, 7-6, 6-1, 3-6, 6-4", NewValue: "1-6, 7-6(6), 6-1, 3-6, 6-4"},
		{Field: "tiebreak", OldValue: "false", NewValue: "true"},
	}, result.Changes[1].Fields)

	assert.Equal(t, ChangeNew, result.Changes[2].Type)
	assert.Empty(t, result.Changes[2].Fields)
}

func TestDiff_NilPrevious(t *testing.T) {
	result := Diff(nil, []Final{{Year: 1877, Champion: "S. Gore", RunnerUp: "W. Marshall"}})
	assert.Equal(t, 1, result.New)
}

func TestClassify(t *testing.T) {
	f := Final{Year: 2000, Champion: "P. Sampras", RunnerUp: "P. Rafter"}
	assert.Equal(t, ChangeNew, Classify(nil, f))
	assert.Equal(t, ChangeUnchanged, Classify(&f, f))

	changed := f
	changed.RunnerUp = "A. Agassi"
	assert.Equal(t, ChangeUpdated, Classify(&f, changed))
}
