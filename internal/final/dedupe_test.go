package final

import (
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDedupe_FirstWins(t *testing.T) {
	finals := []Final{
		{Year: 2021, Champion: "N. Djokovic", RunnerUp: "M. Berrettini", Score: "7-6(4), 6-4, 6-4", Sets: 3, Tiebreak: true},
		{Year: 2019, Champion: "N. Djokovic", RunnerUp: "R. Federer"},
		{Year: 2021, Champion: "X", RunnerUp: "Y", Score: "Z", Sets: 1},
	}

	unique := Dedupe(finals)
	require.Len(t, unique, 2)
	assert.Equal(t, "N. Djokovic", unique[2021].Champion)
	assert.Equal(t, "M. Berrettini", unique[2021].RunnerUp)
}

func TestDedupe_Empty(t *testing.T) {
	assert.Empty(t, Dedupe(nil))
	assert.Empty(t, SortByYear(Dedupe(nil)))
}

func TestDedupe_GeneratedRows(t *testing.T) {
	faker := gofakeit.New(2024)

	var finals []Final
	firstByYear := make(map[int]string)
	for i := 0; i < 200; i++ {
		year := faker.IntRange(1968, 1990)
		champion := faker.Name()
		finals = append(finals, Final{Year: year, Champion: champion, RunnerUp: faker.Name()})
		if _, ok := firstByYear[year]; !ok {
			firstByYear[year] = champion
		}
	}

	unique := Dedupe(finals)
	require.Len(t, unique, len(firstByYear))
	for year, champion := range firstByYear {
		assert.Equal(t, champion, unique[year].Champion, "year %d", year)
	}

	sorted := SortByYear(unique)
	for i := 1; i < len(sorted); i++ {
		assert.Less(t, sorted[i-1].Year, sorted[i].Year)
	}
}

func TestEndToEnd_HeaderAndDuplicateRows(t *testing.T) {
	rows := []RowCells{
		{YearText: "2021", Champion: "N. Djokovic", RunnerUp: "M. Berrettini", Score: "7-6(4), 6-4, 6-4"},
		{YearText: "2021", Champion: "X", RunnerUp: "Y", Score: "Z"},
	}

	finals, skipped := BuildAll(rows)
	assert.Zero(t, skipped)

	got := SortByYear(Dedupe(finals))
	require.Len(t, got, 1)
	assert.Equal(t, Final{
		Year:     2021,
		Champion: "N. Djokovic",
		RunnerUp: "M. Berrettini",
		Score:    "7-6(4), 6-4, 6-4",
		Sets:     3,
		Tiebreak: true,
	}, got[0])
}
