package cli

import (
	"sort"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/pfrederiksen/wimbledon-finals/internal/final"
)

// SortOrder represents the available sorting options
type SortOrder string

const (
	SortByYear     SortOrder = "year"
	SortByYearDesc SortOrder = "year-desc"
	SortByChampion SortOrder = "champion"
)

func parseSortOrder(s string) (SortOrder, error) {
	switch o := SortOrder(strings.ToLower(strings.TrimSpace(s))); o {
	case SortByYear, SortByYearDesc, SortByChampion:
		return o, nil
	}
	return "", eris.Errorf("invalid sort order: %s (must be 'year', 'year-desc' or 'champion')", s)
}

// sortFinals sorts finals in place based on the specified sort order
func sortFinals(finals []final.Final, order SortOrder) {
	switch order {
	case SortByYear:
		sort.SliceStable(finals, func(i, j int) bool {
			return finals[i].Year < finals[j].Year
		})
	case SortByYearDesc:
		sort.SliceStable(finals, func(i, j int) bool {
			return finals[i].Year > finals[j].Year
		})
	case SortByChampion:
		sort.SliceStable(finals, func(i, j int) bool {
			ci, cj := strings.ToLower(finals[i].Champion), strings.ToLower(finals[j].Champion)
			if ci != cj {
				return ci < cj
			}
			// If champions are equal, sort by year
			return finals[i].Year < finals[j].Year
		})
	}
}
