// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package apply

import (
	"time"

	"grimm.is/vrrpsetup/internal/probe"
)

// PhaseStatus is the outcome of one phase.
type PhaseStatus string

const (
	StatusOK      PhaseStatus = "ok"
	StatusWarning PhaseStatus = "warning"
	StatusFailed  PhaseStatus = "failed"
)

// PhaseResult records one phase.
type PhaseResult struct {
	Phase    Phase
	Status   PhaseStatus
	Duration time.Duration
	Detail   string
}

// Report is the record of an apply.
type Report struct {
	Phases []PhaseResult
	// Probe is set when the post-apply probe ran.
	Probe *probe.Status
}

func (r *Report) add(p PhaseResult) {
	r.Phases = append(r.Phases, p)
}

// Ran reports whether phase was attempted.
func (r *Report) Ran(phase Phase) bool {
	for _, p := range r.Phases {
		if p.Phase == phase {
			return true
		}
	}
	return false
}

// Failed returns the failed phase, or "" when none failed.
func (r *Report) Failed() Phase {
	for _, p := range r.Phases {
		if p.Status == StatusFailed {
			return p.Phase
		}
	}
	return ""
}

// Elapsed is the total duration of the phases that ran.
func (r *Report) Elapsed() time.Duration {
	var d time.Duration
	for _, p := range r.Phases {
		d += p.Duration
	}
	return d
}
