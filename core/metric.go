/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package core

// Metric identifies a measured outcome. Metric names are globally unique
// within an experiment's metric set.
type Metric interface {
	MetricName() string
	LowerIsBetter() bool
}

// Objective pairs a metric with an optimization direction.
type Objective struct {
	Metric   Metric
	Minimize bool
}

// OptimizationConfig describes what an experiment optimizes.
type OptimizationConfig struct {
	Objective *Objective
}

// Observation is a single standardized outcome record: one arm's mean for a
// metric, with the standard error of the mean when observation noise is
// reported (nil when the model must infer the noise level).
type Observation struct {
	ArmName string
	Mean    float64
	SEM     *float64
}

// Data is the standardized result of fetching one metric for one trial.
type Data struct {
	MetricName   string
	TrialIndex   int
	Observations []Observation
}
