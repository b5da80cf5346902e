package scraper

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pfrederiksen/wimbledon-finals/internal/final"
)

func TestExtract_EdgeCases(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		wantRows []final.RowCells
	}{
		{
			name: "header skipped",
			html: `<table>
				<tr><td>Year</td><td>Champion</td><td>Runner-up</td><td>Score</td></tr>
				<tr><td>2021</td><td>N. Djokovic</td><td>M. Berrettini</td><td>7-6(4), 6-4, 6-4</td></tr>
				<tr><td>2021</td><td>X</td><td>Y</td><td>Z</td></tr>
			</table>`,
			wantRows: []final.RowCells{
				{YearText: "2021", Champion: "N. Djokovic", RunnerUp: "M. Berrettini", Score: "7-6(4), 6-4, 6-4"},
				{YearText: "2021", Champion: "X", RunnerUp: "Y", Score: "Z"},
			},
		},
		{
			name: "short rows skipped",
			html: `<table>
				<tr><th>Year</th></tr>
				<tr><td>2020</td><td>Not held</td></tr>
				<tr><td>2019</td><td>N. Djokovic</td><td>R. Federer</td><td>7-6, 1-6, 7-6, 4-6, 13-12</td></tr>
			</table>`,
			wantRows: []final.RowCells{
				{YearText: "2019", Champion: "N. Djokovic", RunnerUp: "R. Federer", Score: "7-6, 1-6, 7-6, 4-6, 13-12"},
			},
		},
		{
			name: "extra cells ignored",
			html: `<table>
				<tr><th>h</th></tr>
				<tr><td>1990</td><td>S. Edberg</td><td>B. Becker</td><td>6-2, 6-2, 3-6, 3-6, 6-4</td><td>Sweden</td></tr>
			</table>`,
			wantRows: []final.RowCells{
				{YearText: "1990", Champion: "S. Edberg", RunnerUp: "B. Becker", Score: "6-2, 6-2, 3-6, 3-6, 6-4"},
			},
		},
		{
			name: "multiple tables each lose their header",
			html: `<table>
				<tr><td>1991</td><td>M. Stich</td><td>B. Becker</td><td>6-4, 7-6, 6-4</td></tr>
				<tr><td>1992</td><td>A. Agassi</td><td>G. Ivanisevic</td><td>6-7, 6-4, 6-4, 1-6, 6-4</td></tr>
			</table>
			<table>
				<tr><td>1993</td><td>P. Sampras</td><td>J. Courier</td><td>7-6, 7-6, 3-6, 6-3</td></tr>
				<tr><td>1994</td><td>P. Sampras</td><td>G. Ivanisevic</td><td>7-6, 7-6, 6-0</td></tr>
			</table>`,
			wantRows: []final.RowCells{
				{YearText: "1992", Champion: "A. Agassi", RunnerUp: "G. Ivanisevic", Score: "6-7, 6-4, 6-4, 1-6, 6-4"},
				{YearText: "1994", Champion: "P. Sampras", RunnerUp: "G. Ivanisevic", Score: "7-6, 7-6, 6-0"},
			},
		},
		{
			name: "whitespace and entities",
			html: `<table>
				<tr><th>h</th></tr>
				<tr><td>  1985 </td><td> B.
					Becker </td><td>K. Curren</td><td>6-3, 6-7, 7-6, 6-4 &amp; more</td></tr>
			</table>`,
			wantRows: []final.RowCells{
				{YearText: "1985", Champion: "B. Becker", RunnerUp: "K. Curren", Score: "6-3, 6-7, 7-6, 6-4 & more"},
			},
		},
		{
			name:     "no tables",
			html:     `<html><body><p>No results</p></body></html>`,
			wantRows: []final.RowCells{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := Extract(strings.NewReader(tt.html))
			require.NoError(t, err)
			assert.Equal(t, tt.wantRows, rows)
		})
	}
}

func TestExtract_Fixture(t *testing.T) {
	data, err := os.ReadFile("../../testdata/fixtures/wimbledon_finals.html")
	require.NoError(t, err, "failed to load test fixture")

	rows, err := ExtractBytes(data)
	require.NoError(t, err)

	// the colspan row and the two-cell footer rows are dropped, the repeated header is kept
	require.Len(t, rows, 9)
	assert.Equal(t, "Novak Djokovic", rows[4].Champion, "line breaks inside a cell collapse to a space")
	assert.Equal(t, "2008*", rows[5].YearText)
	assert.Equal(t, "Rafael Nadal", rows[5].Champion)

	finals, skipped := final.BuildAll(rows)
	assert.Equal(t, 1, skipped, "the repeated header row has no year")
	unique := final.SortByYear(final.Dedupe(finals))
	require.Len(t, unique, 8)
	assert.Equal(t, 1975, unique[0].Year)
	assert.Equal(t, 2024, unique[7].Year)
	assert.Equal(t, 2008, unique[2].Year)
	assert.Equal(t, 5, unique[2].Sets)
	assert.True(t, unique[2].Tiebreak)
}
