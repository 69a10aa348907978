/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package benchmark

import (
	"fmt"
	"math"

	"github.com/suparena/benchstore/core"
)

// TestProblem is a synthetic objective with a known ground truth. Evaluations
// may be vector-valued; outcome order is fixed per problem.
type TestProblem interface {
	ProblemName() string
	NumOutcomes() int
	Evaluate(parameters map[string]any) ([]float64, error)
}

// BraninProblem is the Branin function on [-5, 10] x [0, 15].
// Global minimum 0.397887 at (-pi, 12.275), (pi, 2.275), (9.42478, 2.475).
type BraninProblem struct{}

func (BraninProblem) ProblemName() string { return "Branin" }
func (BraninProblem) NumOutcomes() int    { return 1 }

func (BraninProblem) Evaluate(parameters map[string]any) ([]float64, error) {
	x1, x2, err := xy(parameters)
	if err != nil {
		return nil, err
	}
	return []float64{branin(x1, x2)}, nil
}

func branin(x1, x2 float64) float64 {
	a := 1.0
	b := 5.1 / (4 * math.Pi * math.Pi)
	c := 5 / math.Pi
	r := 6.0
	s := 10.0
	t := 1 / (8 * math.Pi)
	return a*math.Pow(x2-b*x1*x1+c*x1-r, 2) + s*(1-t)*math.Cos(x1) + s
}

// Hartmann6Problem is the six-dimensional Hartmann function on [0, 1]^6.
// Global minimum -3.32237.
type Hartmann6Problem struct{}

func (Hartmann6Problem) ProblemName() string { return "Hartmann6" }
func (Hartmann6Problem) NumOutcomes() int    { return 1 }

var hartmann6Alpha = [4]float64{1.0, 1.2, 3.0, 3.2}

var hartmann6A = [4][6]float64{
	{10, 3, 17, 3.5, 1.7, 8},
	{0.05, 10, 17, 0.1, 8, 14},
	{3, 3.5, 1.7, 10, 17, 8},
	{17, 8, 0.05, 10, 0.1, 14},
}

var hartmann6P = [4][6]float64{
	{0.1312, 0.1696, 0.5569, 0.0124, 0.8283, 0.5886},
	{0.2329, 0.4135, 0.8307, 0.3736, 0.1004, 0.9991},
	{0.2348, 0.1451, 0.3522, 0.2883, 0.3047, 0.6650},
	{0.4047, 0.8828, 0.8732, 0.5743, 0.1091, 0.0381},
}

func (Hartmann6Problem) Evaluate(parameters map[string]any) ([]float64, error) {
	var x [6]float64
	for i := 0; i < 6; i++ {
		v, err := paramFloat(parameters, fmt.Sprintf("x%d", i+1))
		if err != nil {
			return nil, err
		}
		x[i] = v
	}
	var outer float64
	for i := 0; i < 4; i++ {
		var inner float64
		for j := 0; j < 6; j++ {
			d := x[j] - hartmann6P[i][j]
			inner += hartmann6A[i][j] * d * d
		}
		outer += hartmann6Alpha[i] * math.Exp(-inner)
	}
	return []float64{-outer}, nil
}

// BraninCurrinProblem evaluates Branin and Currin jointly, producing a
// two-outcome vector. Metrics select a column via their outcome index.
type BraninCurrinProblem struct{}

func (BraninCurrinProblem) ProblemName() string { return "BraninCurrin" }
func (BraninCurrinProblem) NumOutcomes() int    { return 2 }

func (BraninCurrinProblem) Evaluate(parameters map[string]any) ([]float64, error) {
	x1, x2, err := xy(parameters)
	if err != nil {
		return nil, err
	}
	return []float64{branin(x1, x2), currin(x1, x2)}, nil
}

func currin(x1, x2 float64) float64 {
	factor := 1.0
	if x2 != 0 {
		factor = 1 - math.Exp(-1/(2*x2))
	}
	num := 2300*math.Pow(x1, 3) + 1900*x1*x1 + 2092*x1 + 60
	den := 100*math.Pow(x1, 3) + 500*x1*x1 + 4*x1 + 20
	return factor * num / den
}

func xy(parameters map[string]any) (float64, float64, error) {
	x1, err := paramFloat(parameters, "x1")
	if err != nil {
		return 0, 0, err
	}
	x2, err := paramFloat(parameters, "x2")
	if err != nil {
		return 0, 0, err
	}
	return x1, x2, nil
}

func paramFloat(parameters map[string]any, name string) (float64, error) {
	a := core.Arm{Parameters: parameters}
	v, ok := a.Float(name)
	if !ok {
		return 0, fmt.Errorf("parameter %q missing or non-numeric", name)
	}
	return v, nil
}

// problemsByName is populated once at package init and read-only afterwards.
var problemsByName = map[string]TestProblem{
	"Branin":       BraninProblem{},
	"Hartmann6":    Hartmann6Problem{},
	"BraninCurrin": BraninCurrinProblem{},
}

// ProblemByName looks up a registered test problem.
func ProblemByName(name string) (TestProblem, error) {
	p, ok := problemsByName[name]
	if !ok {
		return nil, fmt.Errorf("no test problem registered under %q", name)
	}
	return p, nil
}

// Metric subtypes for the synthetic problems. They share the benchmark metric
// encoder but carry their own discriminants, so a decoded metric keeps its
// concrete type.

// BraninMetric observes Branin evaluations. Lower is better.
type BraninMetric struct {
	BenchmarkMetric
}

// NewBraninMetric creates a Branin metric.
func NewBraninMetric(name string, observeNoiseSD bool) *BraninMetric {
	return &BraninMetric{BenchmarkMetric: *NewBenchmarkMetric(name, true, observeNoiseSD, nil)}
}

// Hartmann6Metric observes Hartmann6 evaluations. Lower is better.
type Hartmann6Metric struct {
	BenchmarkMetric
}

// NewHartmann6Metric creates a Hartmann6 metric.
func NewHartmann6Metric(name string, observeNoiseSD bool) *Hartmann6Metric {
	return &Hartmann6Metric{BenchmarkMetric: *NewBenchmarkMetric(name, true, observeNoiseSD, nil)}
}
