package verify

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Result is the outcome of one (format, instant) case on one target.
type Result struct {
	Format  string    `json:"format"`
	Instant time.Time `json:"instant"`
	SQL     string    `json:"sql"`
	Want    string    `json:"want"`
	Got     string    `json:"got"`
	Null    bool      `json:"null,omitempty"`
	Error   string    `json:"error,omitempty"`
	Passed  bool      `json:"passed"`
}

// TargetReport collects the results of one target.
type TargetReport struct {
	Name    string   `json:"name"`
	Dialect string   `json:"dialect"`
	Error   string   `json:"error,omitempty"`
	Results []Result `json:"results"`
}

// Failed returns the failing results.
func (t *TargetReport) Failed() []Result {
	var failed []Result
	for _, r := range t.Results {
		if !r.Passed {
			failed = append(failed, r)
		}
	}
	return failed
}

// Report is the outcome of a verification run.
type Report struct {
	RunID     string          `json:"run_id"`
	StartedAt time.Time       `json:"started_at"`
	Duration  time.Duration   `json:"duration"`
	Targets   []*TargetReport `json:"targets"`
}

// Counts returns the number of passing and failing cases across all targets.
func (r *Report) Counts() (passed, failed int) {
	for _, t := range r.Targets {
		for _, res := range t.Results {
			if res.Passed {
				passed++
			} else {
				failed++
			}
		}
	}
	return passed, failed
}

// OK reports whether every target connected and every case passed.
func (r *Report) OK() bool {
	for _, t := range r.Targets {
		if t.Error != "" || len(t.Failed()) > 0 {
			return false
		}
	}
	return true
}

// Matches compares an engine result with the reference value.
// Engines return epoch values as numerics, so an integral decimal such as
// "1704445445.000000" matches "1704445445". Zero-padded references never
// match a numeric with a fraction.
func Matches(want, got string) bool {
	if want == got {
		return true
	}
	if !strings.Contains(got, ".") || strings.Contains(want, ".") {
		return false
	}
	w, err := decimal.NewFromString(want)
	if err != nil || w.String() != want {
		return false
	}
	g, err := decimal.NewFromString(got)
	if err != nil {
		return false
	}
	return g.Equal(g.Truncate(0)) && g.Equal(w)
}
