package final

import "sort"

// Dedupe keys finals by year. The first occurrence of a year wins.
func Dedupe(finals []Final) map[int]Final {
	unique := make(map[int]Final, len(finals))
	for _, f := range finals {
		if _, seen := unique[f.Year]; seen {
			continue
		}
		unique[f.Year] = f
	}
	return unique
}

// SortByYear returns the values of a deduplicated set in ascending year order
func SortByYear(unique map[int]Final) []Final {
	sorted := make([]Final, 0, len(unique))
	for _, f := range unique {
		sorted = append(sorted, f)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Year < sorted[j].Year
	})
	return sorted
}
