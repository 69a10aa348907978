/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package benchmark

import (
	"context"
	"strings"

	"github.com/suparena/benchstore/core"
	"github.com/suparena/benchstore/errors"
)

// Metric is the benchmark metric family: a core.Metric that can fetch
// standardized trial data and produce a noiseless ground-truth counterpart.
type Metric interface {
	core.Metric

	// ObserveNoiseSD reports whether fetched data includes the standard
	// error of the mean. When false, SEM is nil and the model must infer
	// the noise level.
	ObserveNoiseSD() bool

	// OutcomeIndex selects one output column of a vector-valued evaluation,
	// or nil for scalar evaluations.
	OutcomeIndex() *int

	// FetchTrialData converts a trial's raw fetched data into standardized
	// observation records. It accepts no options; any supplied option is an
	// immediate UnsupportedArgumentError, returned before the Fetch Bridge
	// is contacted. Expected failures (data not ready) are carried inside
	// the FetchResult, not the error.
	FetchTrialData(ctx context.Context, trial *core.Trial, opts ...FetchOption) (FetchResult, error)

	// MakeGroundTruthMetric returns the noiseless counterpart of this
	// metric. Idempotent: on a ground-truth metric it returns the receiver.
	MakeGroundTruthMetric() Metric
}

// FetchOption is a named fetch argument. The benchmark metric family supports
// none; the type exists so other metric families can share the fetch
// signature.
type FetchOption struct {
	Name  string
	Value any
}

// WithOption constructs a fetch option.
func WithOption(name string, value any) FetchOption {
	return FetchOption{Name: name, Value: value}
}

// GroundTruthSuffix is appended to a metric's name to derive the name of its
// ground-truth counterpart. The mapping is a pure, idempotent function.
const GroundTruthSuffix = "__GROUND_TRUTH"

// GroundTruthName derives the ground-truth name for a metric name.
func GroundTruthName(name string) string {
	if IsGroundTruthName(name) {
		return name
	}
	return name + GroundTruthSuffix
}

// IsGroundTruthName reports whether a name denotes a ground-truth metric.
func IsGroundTruthName(name string) bool {
	return strings.HasSuffix(name, GroundTruthSuffix)
}

// ObservedName strips the ground-truth suffix, recovering the original
// metric's name.
func ObservedName(name string) string {
	return strings.TrimSuffix(name, GroundTruthSuffix)
}

// BenchmarkMetric is a generic metric for observed values produced by
// benchmark runners.
type BenchmarkMetric struct {
	name           string
	lowerIsBetter  bool
	observeNoiseSD bool
	outcomeIndex   *int
	fetcher        Fetcher
}

// NewBenchmarkMetric creates an observed benchmark metric.
func NewBenchmarkMetric(name string, lowerIsBetter, observeNoiseSD bool, outcomeIndex *int) *BenchmarkMetric {
	return &BenchmarkMetric{
		name:           name,
		lowerIsBetter:  lowerIsBetter,
		observeNoiseSD: observeNoiseSD,
		outcomeIndex:   outcomeIndex,
	}
}

// WithFetcher replaces the default run-metadata bridge. Returns the metric
// for chaining.
func (m *BenchmarkMetric) WithFetcher(f Fetcher) *BenchmarkMetric {
	m.fetcher = f
	return m
}

func (m *BenchmarkMetric) MetricName() string   { return m.name }
func (m *BenchmarkMetric) LowerIsBetter() bool  { return m.lowerIsBetter }
func (m *BenchmarkMetric) ObserveNoiseSD() bool { return m.observeNoiseSD }
func (m *BenchmarkMetric) OutcomeIndex() *int   { return m.outcomeIndex }

func (m *BenchmarkMetric) bridge() Fetcher {
	if m.fetcher != nil {
		return m.fetcher
	}
	return RunMetadataFetcher{}
}

func (m *BenchmarkMetric) FetchTrialData(ctx context.Context, trial *core.Trial, opts ...FetchOption) (FetchResult, error) {
	if err := rejectOptions("BenchmarkMetric.FetchTrialData", opts); err != nil {
		return FetchResult{}, err
	}
	return m.bridge().Fetch(ctx, trial, FetchParams{
		MetricName:     m.name,
		OutcomeIndex:   m.outcomeIndex,
		IncludeNoiseSD: m.observeNoiseSD,
		GroundTruth:    false,
	}), nil
}

// MakeGroundTruthMetric creates the noiseless counterpart of this metric.
func (m *BenchmarkMetric) MakeGroundTruthMetric() Metric {
	gt := NewGroundTruthBenchmarkMetric(GroundTruthName(m.name), m.lowerIsBetter, m.outcomeIndex)
	gt.original = m
	gt.fetcher = m.fetcher
	return gt
}

func rejectOptions(method string, opts []FetchOption) error {
	if len(opts) == 0 {
		return nil
	}
	names := make([]string, len(opts))
	for i, o := range opts {
		names[i] = o.Name
	}
	return errors.NewUnsupportedArgumentError(method, names...)
}

// GroundTruthBenchmarkMetric is the noiseless counterpart of a benchmark
// metric. It never observes noise (ObserveNoiseSD is always false) and its
// name carries the ground-truth suffix.
type GroundTruthBenchmarkMetric struct {
	BenchmarkMetric
	// original is the observed metric this one was derived from. Transient:
	// nil after decoding from a stored document.
	original Metric
}

// NewGroundTruthBenchmarkMetric constructs a ground-truth metric directly,
// e.g. when decoding from a stored document. ObserveNoiseSD is forced false.
func NewGroundTruthBenchmarkMetric(name string, lowerIsBetter bool, outcomeIndex *int) *GroundTruthBenchmarkMetric {
	return &GroundTruthBenchmarkMetric{
		BenchmarkMetric: BenchmarkMetric{
			name:           name,
			lowerIsBetter:  lowerIsBetter,
			observeNoiseSD: false,
			outcomeIndex:   outcomeIndex,
		},
	}
}

// OriginalMetric returns the observed metric this ground-truth metric wraps,
// or nil if the linkage was not preserved (e.g. after decoding).
func (g *GroundTruthBenchmarkMetric) OriginalMetric() Metric { return g.original }

func (g *GroundTruthBenchmarkMetric) FetchTrialData(ctx context.Context, trial *core.Trial, opts ...FetchOption) (FetchResult, error) {
	if err := rejectOptions("GroundTruthBenchmarkMetric.FetchTrialData", opts); err != nil {
		return FetchResult{}, err
	}
	return g.bridge().Fetch(ctx, trial, FetchParams{
		MetricName:     g.name,
		OutcomeIndex:   g.outcomeIndex,
		IncludeNoiseSD: false,
		GroundTruth:    true,
	}), nil
}

// MakeGroundTruthMetric on a ground-truth metric returns the receiver.
func (g *GroundTruthBenchmarkMetric) MakeGroundTruthMetric() Metric { return g }
