package final

import (
	"regexp"
	"strconv"
)

// RowCells holds the first four cell texts of a results table row
type RowCells struct {
	YearText string
	Champion string
	RunnerUp string
	Score    string
}

var yearPattern = regexp.MustCompile(`\d{4}`)

// ExtractYear returns the first four-digit number in text.
// The cell may carry footnote markers or other text around the year.
func ExtractYear(text string) (int, bool) {
	match := yearPattern.FindString(text)
	if match == "" {
		return 0, false
	}

	year, err := strconv.Atoi(match)
	if err != nil {
		return 0, false
	}
	return year, true
}

// Build turns a row into a Final. The second return value is false when the row
// is skipped: no four-digit year, or a missing player name.
func Build(row RowCells) (Final, bool) {
	year, ok := ExtractYear(row.YearText)
	if !ok {
		return Final{}, false
	}

	f, err := New(year, row.Champion, row.RunnerUp, row.Score)
	if err != nil {
		return Final{}, false
	}
	return f, true
}

// BuildAll builds every row in order and reports how many rows were skipped
func BuildAll(rows []RowCells) (finals []Final, skipped int) {
	finals = make([]Final, 0, len(rows))
	for _, row := range rows {
		f, ok := Build(row)
		if !ok {
			skipped++
			continue
		}
		finals = append(finals, f)
	}
	return finals, skipped
}
