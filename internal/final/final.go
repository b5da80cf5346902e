package final

import (
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/rotisserie/eris"
)

// Final represents a single Wimbledon men's final result
type Final struct {
	Year     int    `json:"year" yaml:"year" validate:"gte=1000,lte=9999"`
	Champion string `json:"champion" yaml:"champion" validate:"required"`
	RunnerUp string `json:"runner_up" yaml:"runner_up" validate:"required"`
	Score    string `json:"score" yaml:"score"`
	Sets     int    `json:"sets" yaml:"sets" validate:"gte=0"`
	Tiebreak bool   `json:"tiebreak" yaml:"tiebreak"`
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// New creates a Final with Sets and Tiebreak derived from score.
// Champion and runner-up are trimmed; an incomplete record is rejected.
func New(year int, champion, runnerUp, score string) (Final, error) {
	sets, tiebreak := Analyze(score)
	f := Final{
		Year:     year,
		Champion: strings.TrimSpace(champion),
		RunnerUp: strings.TrimSpace(runnerUp),
		Score:    strings.TrimSpace(score),
		Sets:     sets,
		Tiebreak: tiebreak,
	}

	if err := structValidator().Struct(f); err != nil {
		return Final{}, eris.Wrapf(err, "final: invalid record for year %d", year)
	}

	return f, nil
}

// Normalize recomputes the derived fields from Score.
// Stores call it on read so stale persisted statistics never leak out.
func (f Final) Normalize() Final {
	f.Sets, f.Tiebreak = Analyze(f.Score)
	return f
}
