package engine

import (
	"errors"
	"time"

	"github.com/SeyhmusGuler/SCIRun/internal/network"
)

// Status is the terminal state of one module in a run.
type Status string

const (
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
	// StatusSkipped marks modules that never started because the run was
	// cancelled first.
	StatusSkipped Status = "skipped"
)

// ModuleResult records how one module ended.
type ModuleResult struct {
	Module   network.ModuleID
	Group    int
	Status   Status
	Err      error
	Duration time.Duration
}

// RunSummary aggregates the results of one execution run, in schedule order.
type RunSummary struct {
	RunID     string
	Groups    int
	Results   []ModuleResult
	Succeeded int
	Failed    int
	Skipped   int
	Duration  time.Duration
}

func newRunSummary(runID string, groups int, results []ModuleResult, duration time.Duration) *RunSummary {
	s := &RunSummary{RunID: runID, Groups: groups, Results: results, Duration: duration}
	for _, r := range results {
		switch r.Status {
		case StatusSucceeded:
			s.Succeeded++
		case StatusFailed:
			s.Failed++
		default:
			s.Skipped++
		}
	}
	return s
}

// Result returns the result recorded for id.
func (s *RunSummary) Result(id network.ModuleID) (ModuleResult, bool) {
	for _, r := range s.Results {
		if r.Module == id {
			return r, true
		}
	}
	return ModuleResult{}, false
}

// Err joins the errors of all failed modules, or returns nil.
func (s *RunSummary) Err() error {
	var errs []error
	for _, r := range s.Results {
		if r.Err != nil {
			errs = append(errs, r.Err)
		}
	}
	return errors.Join(errs...)
}
