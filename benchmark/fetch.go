/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package benchmark

import (
	"context"
	"fmt"
	"math"

	"github.com/suparena/benchstore/core"
)

// Run metadata keys written by runners and read by the default fetch bridge.
// Each maps arm name to the vector of outcome values for that arm.
const (
	metadataYs     = "Ys"
	metadataYVars  = "Yvars"
	metadataYsTrue = "Ys_true"
)

// FetchParams is the Fetch Bridge contract: which metric to read, which
// output column of a vector-valued evaluation, whether to populate the
// standard error of the mean, and whether to read the noiseless variant.
type FetchParams struct {
	MetricName     string
	OutcomeIndex   *int
	IncludeNoiseSD bool
	GroundTruth    bool
}

// FetchFailure is an expected, recoverable fetch outcome (data not ready,
// upstream error). It travels as a value, never as a Go error.
type FetchFailure struct {
	Reason string
}

// FetchResult is either a populated observation record or a typed failure.
type FetchResult struct {
	Data    *core.Data
	Failure *FetchFailure
}

// OkResult wraps successfully fetched data.
func OkResult(data *core.Data) FetchResult {
	return FetchResult{Data: data}
}

// FailResult wraps an expected fetch failure.
func FailResult(format string, args ...any) FetchResult {
	return FetchResult{Failure: &FetchFailure{Reason: fmt.Sprintf(format, args...)}}
}

// IsOk reports whether the fetch produced data.
func (r FetchResult) IsOk() bool { return r.Failure == nil && r.Data != nil }

// Fetcher is the Fetch Bridge: the external collaborator supplying raw trial
// outcome data. Implementations may block; callers should treat Fetch as a
// potentially long-running, cancellable operation. The bridge performs no
// retries; retry policy belongs to the caller.
type Fetcher interface {
	Fetch(ctx context.Context, trial *core.Trial, params FetchParams) FetchResult
}

// RunMetadataFetcher is the default bridge. It reads the Ys/Yvars/Ys_true
// tables a runner recorded in the trial's run metadata.
type RunMetadataFetcher struct{}

func (RunMetadataFetcher) Fetch(ctx context.Context, trial *core.Trial, params FetchParams) FetchResult {
	if err := ctx.Err(); err != nil {
		return FailResult("fetch canceled: %v", err)
	}
	if trial.Status != core.TrialStatusCompleted {
		return FailResult("trial %d has no data (status %s)", trial.Index, trial.Status)
	}

	key := metadataYs
	if params.GroundTruth {
		key = metadataYsTrue
	}
	ys, ok := armTable(trial.RunMetadata[key])
	if !ok {
		return FailResult("trial %d run metadata has no %q table", trial.Index, key)
	}
	var yvars map[string]any
	if params.IncludeNoiseSD {
		yvars, ok = armTable(trial.RunMetadata[metadataYVars])
		if !ok {
			return FailResult("trial %d run metadata has no %q table", trial.Index, metadataYVars)
		}
	}

	observations := make([]core.Observation, 0, len(trial.Arms))
	for _, arm := range trial.Arms {
		mean, fail := outcomeAt(ys, arm.Name, params)
		if fail != nil {
			return FetchResult{Failure: fail}
		}
		obs := core.Observation{ArmName: arm.Name, Mean: mean}
		if params.IncludeNoiseSD {
			variance, fail := outcomeAt(yvars, arm.Name, params)
			if fail != nil {
				return FetchResult{Failure: fail}
			}
			sem := math.Sqrt(variance)
			obs.SEM = &sem
		}
		observations = append(observations, obs)
	}

	return OkResult(&core.Data{
		MetricName:   params.MetricName,
		TrialIndex:   trial.Index,
		Observations: observations,
	})
}

// outcomeAt selects one arm's outcome from a table, applying the outcome
// index. A nil index requires a scalar (single-outcome) evaluation.
func outcomeAt(table map[string]any, armName string, params FetchParams) (float64, *FetchFailure) {
	values, ok := floatVector(table[armName])
	if !ok {
		return 0, &FetchFailure{Reason: fmt.Sprintf("no outcome values for arm %q", armName)}
	}
	idx := 0
	if params.OutcomeIndex != nil {
		idx = *params.OutcomeIndex
	} else if len(values) != 1 {
		return 0, &FetchFailure{Reason: fmt.Sprintf(
			"metric %q: vector-valued outcome (%d values) requires an outcome index",
			params.MetricName, len(values))}
	}
	if idx < 0 || idx >= len(values) {
		return 0, &FetchFailure{Reason: fmt.Sprintf(
			"metric %q: outcome index %d out of range for %d values",
			params.MetricName, idx, len(values))}
	}
	return values[idx], nil
}

// armTable coerces a run-metadata entry to an arm-keyed table.
func armTable(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

// floatVector coerces outcome values, which arrive as []float64 when written
// in-process and as []any after a JSON round-trip.
func floatVector(v any) ([]float64, bool) {
	switch x := v.(type) {
	case []float64:
		return x, true
	case []any:
		out := make([]float64, len(x))
		for i, item := range x {
			f, ok := item.(float64)
			if !ok {
				return nil, false
			}
			out[i] = f
		}
		return out, true
	default:
		return nil, false
	}
}
