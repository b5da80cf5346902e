package final

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyze(t *testing.T) {
	tests := []struct {
		score        string
		wantSets     int
		wantTiebreak bool
	}{
		{"6-4, 6-4, 6-4", 3, false},
		{"7-6(9-7), 6-4", 2, true},
		{"", 0, false},
		{"   ", 0, false},
		{"7-6(4), 6-4, 6-4", 3, true},
		{"6-2, 6-2, 3-6, 3-6, 8-6", 5, false},
		{"6-4,, 6-4, ", 2, false},
		{"6-3, 6-1 (ret.)", 2, true},
		{"W/O", 1, false},
		{"7-6 (7-5), 7-6 (7-4), 6-4", 3, true},
	}

	for _, tt := range tests {
		t.Run(tt.score, func(t *testing.T) {
			sets, tiebreak := Analyze(tt.score)
			assert.Equal(t, tt.wantSets, sets, "sets for %q", tt.score)
			assert.Equal(t, tt.wantTiebreak, tiebreak, "tiebreak for %q", tt.score)
		})
	}
}

func TestAnalyze_UnclosedParenthesis(t *testing.T) {
	sets, tiebreak := Analyze("7-6(9-7, 6-4")
	assert.Equal(t, 2, sets)
	assert.False(t, tiebreak, "an unclosed parenthesis is not a tiebreak group")
}
