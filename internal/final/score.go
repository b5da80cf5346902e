package final

import (
	"regexp"
	"strings"
)

// tiebreakPattern matches any parenthesized group anywhere in a score.
// A breaker in one set marks the whole match.
var tiebreakPattern = regexp.MustCompile(`\(.*?\)`)

// Analyze parses a raw score into its set count and tiebreak flag.
// Segments are treated as opaque text, so "7-6(9-7)" counts as one set.
func Analyze(score string) (sets int, tiebreak bool) {
	if strings.TrimSpace(score) == "" {
		return 0, false
	}

	for _, segment := range strings.Split(score, ",") {
		if strings.TrimSpace(segment) != "" {
			sets++
		}
	}

	return sets, tiebreakPattern.MatchString(score)
}
