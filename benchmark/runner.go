/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package benchmark

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/suparena/benchstore/core"
)

// SyntheticRunner evaluates a test problem for every arm of a trial and
// records the outcomes in the trial's run metadata, where the default fetch
// bridge finds them. Gaussian observation noise with standard deviation
// NoiseSD is added to the observed values; the noiseless values are recorded
// alongside as ground truth.
type SyntheticRunner struct {
	Problem TestProblem
	NoiseSD float64
	Seed    int64
}

// NewSyntheticRunner creates a runner for the given problem.
func NewSyntheticRunner(problem TestProblem, noiseSD float64, seed int64) *SyntheticRunner {
	return &SyntheticRunner{Problem: problem, NoiseSD: noiseSD, Seed: seed}
}

// Run evaluates all arms and marks the trial completed. Run metadata values
// are written in JSON shapes (map[string]any, []any) so a trial compares
// equal before and after a storage round-trip.
func (r *SyntheticRunner) Run(ctx context.Context, trial *core.Trial) error {
	if r.Problem == nil {
		return fmt.Errorf("synthetic runner has no problem")
	}
	rng := rand.New(rand.NewSource(r.Seed + int64(trial.Index)))

	ys := make(map[string]any, len(trial.Arms))
	ysTrue := make(map[string]any, len(trial.Arms))
	yvars := make(map[string]any, len(trial.Arms))

	for _, arm := range trial.Arms {
		if err := ctx.Err(); err != nil {
			return err
		}
		values, err := r.Problem.Evaluate(arm.Parameters)
		if err != nil {
			return fmt.Errorf("evaluating %s for arm %q: %w", r.Problem.ProblemName(), arm.Name, err)
		}
		observed := make([]any, len(values))
		truth := make([]any, len(values))
		variances := make([]any, len(values))
		for i, v := range values {
			truth[i] = v
			observed[i] = v + rng.NormFloat64()*r.NoiseSD
			variances[i] = r.NoiseSD * r.NoiseSD
		}
		ys[arm.Name] = observed
		ysTrue[arm.Name] = truth
		yvars[arm.Name] = variances
	}

	if trial.RunMetadata == nil {
		trial.RunMetadata = make(map[string]any)
	}
	trial.RunMetadata[metadataYs] = ys
	trial.RunMetadata[metadataYsTrue] = ysTrue
	trial.RunMetadata[metadataYVars] = yvars
	trial.MarkCompleted()
	return nil
}
