/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package core

import (
	"fmt"
	"time"

	"github.com/go-openapi/strfmt"
)

// Experiment is the root of the object graph: a search space, an optimization
// target, tracking metrics, and an ordered list of trials.
type Experiment struct {
	Name               string
	Description        string
	SearchSpace        *SearchSpace
	OptimizationConfig *OptimizationConfig
	TrackingMetrics    []Metric
	Trials             []*Trial
	TimeCreated        *strfmt.DateTime
}

// NewExperiment creates an empty experiment over the given search space.
func NewExperiment(name string, space *SearchSpace) *Experiment {
	now := strfmt.DateTime(time.Now().UTC().Truncate(time.Millisecond))
	return &Experiment{
		Name:        name,
		SearchSpace: space,
		TimeCreated: &now,
	}
}

// NewTrial appends a new candidate trial with the next free index.
func (e *Experiment) NewTrial(arms ...*Arm) *Trial {
	t := NewTrial(len(e.Trials), arms...)
	e.Trials = append(e.Trials, t)
	return t
}

// Trial returns the trial at the given index.
func (e *Experiment) Trial(index int) (*Trial, error) {
	if index < 0 || index >= len(e.Trials) {
		return nil, fmt.Errorf("experiment %q has no trial %d", e.Name, index)
	}
	return e.Trials[index], nil
}

// CompletedTrials counts trials in the COMPLETED state.
func (e *Experiment) CompletedTrials() int {
	n := 0
	for _, t := range e.Trials {
		if t.Status == TrialStatusCompleted {
			n++
		}
	}
	return n
}

// Metrics returns the experiment's full metric set: the objective metric (if
// any) followed by tracking metrics.
func (e *Experiment) Metrics() []Metric {
	var out []Metric
	if e.OptimizationConfig != nil && e.OptimizationConfig.Objective != nil {
		out = append(out, e.OptimizationConfig.Objective.Metric)
	}
	out = append(out, e.TrackingMetrics...)
	return out
}

// MetricByName returns the named metric from the experiment's metric set.
func (e *Experiment) MetricByName(name string) (Metric, error) {
	for _, m := range e.Metrics() {
		if m.MetricName() == name {
			return m, nil
		}
	}
	return nil, fmt.Errorf("experiment %q has no metric %q", e.Name, name)
}
