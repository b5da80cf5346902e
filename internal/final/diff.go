package final

import (
	"sort"
	"strconv"
)

// ChangeType describes how a scraped Final relates to the stored one
type ChangeType string

const (
	ChangeNew       ChangeType = "new"
	ChangeUpdated   ChangeType = "updated"
	ChangeUnchanged ChangeType = "unchanged"
)

// FieldChange records a single field that differs from the stored record
type FieldChange struct {
	Field    string `json:"field" yaml:"field"`
	OldValue string `json:"old_value" yaml:"old_value"`
	NewValue string `json:"new_value" yaml:"new_value"`
}

// Change pairs a scraped Final with its classification
type Change struct {
	Year   int           `json:"year" yaml:"year"`
	Type   ChangeType    `json:"type" yaml:"type"`
	Final  Final         `json:"final" yaml:"final"`
	Fields []FieldChange `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// DiffResult contains the classification of every scraped Final
type DiffResult struct {
	Changes   []Change `json:"changes" yaml:"changes"`
	New       int      `json:"new" yaml:"new"`
	Updated   int      `json:"updated" yaml:"updated"`
	Unchanged int      `json:"unchanged" yaml:"unchanged"`
}

// DetectChanges compares a stored record (nil when absent) with a scraped one
func DetectChanges(previous *Final, current Final) []FieldChange {
	if previous == nil {
		return nil
	}

	var changes []FieldChange
	add := func(field, oldValue, newValue string) {
		if oldValue != newValue {
			changes = append(changes, FieldChange{Field: field, OldValue: oldValue, NewValue: newValue})
		}
	}

	add("champion", previous.Champion, current.Champion)
	add("runner_up", previous.RunnerUp, current.RunnerUp)
	add("score", previous.Score, current.Score)
	add("sets", strconv.Itoa(previous.Sets), strconv.Itoa(current.Sets))
	add("tiebreak", strconv.FormatBool(previous.Tiebreak), strconv.FormatBool(current.Tiebreak))

	return changes
}

// Classify returns the change type for a scraped record against the stored one
func Classify(previous *Final, current Final) ChangeType {
	if previous == nil {
		return ChangeNew
	}
	if len(DetectChanges(previous, current)) > 0 {
		return ChangeUpdated
	}
	return ChangeUnchanged
}

// Diff compares scraped finals against the stored ones, keyed by year
func Diff(previous map[int]Final, current []Final) *DiffResult {
	result := &DiffResult{
		Changes: make([]Change, 0, len(current)),
	}

	for _, f := range current {
		var prev *Final
		if p, ok := previous[f.Year]; ok {
			prev = &p
		}

		change := Change{
			Year:   f.Year,
			Type:   Classify(prev, f),
			Final:  f,
			Fields: DetectChanges(prev, f),
		}

		switch change.Type {
		case ChangeNew:
			result.New++
		case ChangeUpdated:
			result.Updated++
		default:
			result.Unchanged++
		}

		result.Changes = append(result.Changes, change)
	}

	sort.Slice(result.Changes, func(i, j int) bool {
		return result.Changes[i].Year < result.Changes[j].Year
	})

	return result
}
