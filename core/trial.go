/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package core

import (
	"fmt"
	"time"

	"github.com/go-openapi/strfmt"
)

// TrialStatus is the lifecycle state of a trial.
type TrialStatus int

const (
	TrialStatusCandidate TrialStatus = iota
	TrialStatusStaged
	TrialStatusRunning
	TrialStatusCompleted
	TrialStatusFailed
	TrialStatusAbandoned
)

var trialStatusNames = map[TrialStatus]string{
	TrialStatusCandidate: "CANDIDATE",
	TrialStatusStaged:    "STAGED",
	TrialStatusRunning:   "RUNNING",
	TrialStatusCompleted: "COMPLETED",
	TrialStatusFailed:    "FAILED",
	TrialStatusAbandoned: "ABANDONED",
}

func (s TrialStatus) String() string {
	if name, ok := trialStatusNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// ParseTrialStatus maps a status name back to its TrialStatus value.
func ParseTrialStatus(name string) (TrialStatus, error) {
	for s, n := range trialStatusNames {
		if n == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown trial status %q", name)
}

// Trial is one evaluation round of an experiment. RunMetadata is written by
// the runner that executed the trial and read back by metrics; its values are
// JSON-representable (maps, slices, scalars).
type Trial struct {
	Index         int
	Status        TrialStatus
	Arms          []*Arm
	RunMetadata   map[string]any
	TimeCreated   *strfmt.DateTime
	TimeCompleted *strfmt.DateTime
}

// NewTrial creates a candidate trial with the given index and arms.
func NewTrial(index int, arms ...*Arm) *Trial {
	now := strfmt.DateTime(time.Now().UTC().Truncate(time.Millisecond))
	return &Trial{
		Index:       index,
		Status:      TrialStatusCandidate,
		Arms:        arms,
		RunMetadata: make(map[string]any),
		TimeCreated: &now,
	}
}

// MarkCompleted transitions the trial to COMPLETED and stamps the completion time.
func (t *Trial) MarkCompleted() {
	now := strfmt.DateTime(time.Now().UTC().Truncate(time.Millisecond))
	t.Status = TrialStatusCompleted
	t.TimeCompleted = &now
}

// Arm returns the named arm, or nil if the trial does not contain it.
func (t *Trial) Arm(name string) *Arm {
	for _, a := range t.Arms {
		if a.Name == name {
			return a
		}
	}
	return nil
}
