/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package jsonstore

import (
	"fmt"
	"reflect"

	"github.com/suparena/benchstore/benchmark"
	"github.com/suparena/benchstore/core"
	"github.com/suparena/benchstore/errors"
)

// CoreRegistry builds the registry for every persistable platform type. It is
// the single extension point for serialization: adding a new type means
// adding its (encoder, decoder, name) entries here, and nothing else in the
// system special-cases types.
//
// The registry is constructed once, single-threaded, and must not be mutated
// afterwards; lookups are then safe for concurrent readers.
func CoreRegistry() *Registry {
	r := NewRegistry()

	// Exact encoders. One encoder may serve a family of types (all benchmark
	// metrics share benchmarkMetricToDoc); each type still gets its own
	// discriminant via the decoder table below.
	must(r.RegisterEncoder(&core.Arm{}, armToDoc))
	must(r.RegisterEncoder(&core.Trial{}, trialToDoc))
	must(r.RegisterEncoder(&core.Experiment{}, experimentToDoc))
	must(r.RegisterEncoder(&core.SearchSpace{}, searchSpaceToDoc))
	must(r.RegisterEncoder(&core.RangeParameter{}, rangeParameterToDoc))
	must(r.RegisterEncoder(&core.ChoiceParameter{}, choiceParameterToDoc))
	must(r.RegisterEncoder(&core.FixedParameter{}, fixedParameterToDoc))
	must(r.RegisterEncoder(&core.Objective{}, objectiveToDoc))
	must(r.RegisterEncoder(&core.OptimizationConfig{}, optimizationConfigToDoc))
	must(r.RegisterEncoder(&core.GenerationStep{}, generationStepToDoc))
	must(r.RegisterEncoder(&core.GenerationStrategy{}, generationStrategyToDoc))
	must(r.RegisterEncoder(core.TrialStatusCandidate, trialStatusToDoc))
	must(r.RegisterEncoder(core.ParameterTypeInt, parameterTypeToDoc))
	must(r.RegisterEncoder(&benchmark.BenchmarkMetric{}, benchmarkMetricToDoc))
	must(r.RegisterEncoder(&benchmark.GroundTruthBenchmarkMetric{}, benchmarkMetricToDoc))
	must(r.RegisterEncoder(&benchmark.BraninMetric{}, benchmarkMetricToDoc))
	must(r.RegisterEncoder(&benchmark.Hartmann6Metric{}, benchmarkMetricToDoc))
	must(r.RegisterEncoder(&benchmark.SyntheticRunner{}, syntheticRunnerToDoc))

	// Ancestor encoders, most specific first. Metric subtypes without an
	// exact entry fall back to the shared metric encoder but keep their own
	// discriminant.
	must(r.RegisterAncestorEncoder(TypeOf[benchmark.Metric](), benchmarkMetricToDoc))

	// Class tables: fields holding type references (the model class a
	// generation step instantiates, not a model instance).
	must(r.RegisterClassEncoder(TypeOf[core.Model](), "Type[Model]"))
	must(r.RegisterClassDecoder("Type[Model]", classFromDoc(r)))
	must(r.RegisterTypeName("RandomModel", reflect.TypeOf(&core.RandomModel{})))
	must(r.RegisterTypeName("SobolModel", reflect.TypeOf(&core.SobolModel{})))

	// Decoders. Names form a flat namespace and are the discriminants
	// stamped on encoded documents.
	must(r.RegisterDecoder("Arm", &core.Arm{}, armFromDoc))
	must(r.RegisterDecoder("Trial", &core.Trial{}, trialFromDoc))
	must(r.RegisterDecoder("Experiment", &core.Experiment{}, experimentFromDoc))
	must(r.RegisterDecoder("SearchSpace", &core.SearchSpace{}, searchSpaceFromDoc))
	must(r.RegisterDecoder("RangeParameter", &core.RangeParameter{}, rangeParameterFromDoc))
	must(r.RegisterDecoder("ChoiceParameter", &core.ChoiceParameter{}, choiceParameterFromDoc))
	must(r.RegisterDecoder("FixedParameter", &core.FixedParameter{}, fixedParameterFromDoc))
	must(r.RegisterDecoder("Objective", &core.Objective{}, objectiveFromDoc))
	must(r.RegisterDecoder("OptimizationConfig", &core.OptimizationConfig{}, optimizationConfigFromDoc))
	must(r.RegisterDecoder("GenerationStep", &core.GenerationStep{}, generationStepFromDoc))
	must(r.RegisterDecoder("GenerationStrategy", &core.GenerationStrategy{}, generationStrategyFromDoc))
	must(r.RegisterDecoder("TrialStatus", core.TrialStatusCandidate, trialStatusFromDoc))
	must(r.RegisterDecoder("ParameterType", core.ParameterTypeInt, parameterTypeFromDoc))
	must(r.RegisterDecoder("BenchmarkMetric", &benchmark.BenchmarkMetric{}, benchmarkMetricFromDoc))
	must(r.RegisterDecoder("GroundTruthBenchmarkMetric", &benchmark.GroundTruthBenchmarkMetric{}, groundTruthMetricFromDoc))
	must(r.RegisterDecoder("BraninMetric", &benchmark.BraninMetric{}, braninMetricFromDoc))
	must(r.RegisterDecoder("Hartmann6Metric", &benchmark.Hartmann6Metric{}, hartmann6MetricFromDoc))
	must(r.RegisterDecoder("SyntheticRunner", &benchmark.SyntheticRunner{}, syntheticRunnerFromDoc))

	return r
}

func must(err error) {
	if err != nil {
		panic(fmt.Sprintf("jsonstore: building core registry: %v", err))
	}
}

// Encoders. Each returns a document of raw field values; the dispatcher
// encodes nested values and stamps the discriminant.

func armToDoc(obj any) (*Document, error) {
	a, ok := obj.(*core.Arm)
	if !ok {
		return nil, fmt.Errorf("expected *core.Arm, got %T", obj)
	}
	doc := NewDocument("")
	doc.Set("name", a.Name)
	doc.Set("parameters", a.Parameters)
	return doc, nil
}

func trialToDoc(obj any) (*Document, error) {
	t, ok := obj.(*core.Trial)
	if !ok {
		return nil, fmt.Errorf("expected *core.Trial, got %T", obj)
	}
	doc := NewDocument("")
	doc.Set("index", t.Index)
	doc.Set("status", t.Status)
	doc.Set("arms", t.Arms)
	doc.Set("run_metadata", t.RunMetadata)
	doc.Set("time_created", t.TimeCreated)
	doc.Set("time_completed", t.TimeCompleted)
	return doc, nil
}

func experimentToDoc(obj any) (*Document, error) {
	e, ok := obj.(*core.Experiment)
	if !ok {
		return nil, fmt.Errorf("expected *core.Experiment, got %T", obj)
	}
	doc := NewDocument("")
	doc.Set("name", e.Name)
	doc.Set("description", e.Description)
	doc.Set("search_space", e.SearchSpace)
	doc.Set("optimization_config", e.OptimizationConfig)
	doc.Set("tracking_metrics", e.TrackingMetrics)
	doc.Set("trials", e.Trials)
	doc.Set("time_created", e.TimeCreated)
	return doc, nil
}

func searchSpaceToDoc(obj any) (*Document, error) {
	s, ok := obj.(*core.SearchSpace)
	if !ok {
		return nil, fmt.Errorf("expected *core.SearchSpace, got %T", obj)
	}
	doc := NewDocument("")
	doc.Set("parameters", s.Parameters)
	return doc, nil
}

func rangeParameterToDoc(obj any) (*Document, error) {
	p, ok := obj.(*core.RangeParameter)
	if !ok {
		return nil, fmt.Errorf("expected *core.RangeParameter, got %T", obj)
	}
	doc := NewDocument("")
	doc.Set("name", p.Name)
	doc.Set("parameter_type", p.Type)
	doc.Set("lower", p.Lower)
	doc.Set("upper", p.Upper)
	doc.Set("log_scale", p.LogScale)
	return doc, nil
}

func choiceParameterToDoc(obj any) (*Document, error) {
	p, ok := obj.(*core.ChoiceParameter)
	if !ok {
		return nil, fmt.Errorf("expected *core.ChoiceParameter, got %T", obj)
	}
	doc := NewDocument("")
	doc.Set("name", p.Name)
	doc.Set("parameter_type", p.Type)
	doc.Set("values", p.Values)
	doc.Set("is_ordered", p.IsOrdered)
	return doc, nil
}

func fixedParameterToDoc(obj any) (*Document, error) {
	p, ok := obj.(*core.FixedParameter)
	if !ok {
		return nil, fmt.Errorf("expected *core.FixedParameter, got %T", obj)
	}
	doc := NewDocument("")
	doc.Set("name", p.Name)
	doc.Set("parameter_type", p.Type)
	doc.Set("value", p.Value)
	return doc, nil
}

func objectiveToDoc(obj any) (*Document, error) {
	o, ok := obj.(*core.Objective)
	if !ok {
		return nil, fmt.Errorf("expected *core.Objective, got %T", obj)
	}
	doc := NewDocument("")
	doc.Set("metric", o.Metric)
	doc.Set("minimize", o.Minimize)
	return doc, nil
}

func optimizationConfigToDoc(obj any) (*Document, error) {
	c, ok := obj.(*core.OptimizationConfig)
	if !ok {
		return nil, fmt.Errorf("expected *core.OptimizationConfig, got %T", obj)
	}
	doc := NewDocument("")
	doc.Set("objective", c.Objective)
	return doc, nil
}

func generationStepToDoc(obj any) (*Document, error) {
	s, ok := obj.(*core.GenerationStep)
	if !ok {
		return nil, fmt.Errorf("expected *core.GenerationStep, got %T", obj)
	}
	doc := NewDocument("")
	doc.Set("model", s.Model)
	doc.Set("num_trials", s.NumTrials)
	doc.Set("min_trials_observed", s.MinTrialsObserved)
	return doc, nil
}

func generationStrategyToDoc(obj any) (*Document, error) {
	g, ok := obj.(*core.GenerationStrategy)
	if !ok {
		return nil, fmt.Errorf("expected *core.GenerationStrategy, got %T", obj)
	}
	doc := NewDocument("")
	doc.Set("name", g.Name)
	doc.Set("steps", g.Steps)
	return doc, nil
}

func trialStatusToDoc(obj any) (*Document, error) {
	s, ok := obj.(core.TrialStatus)
	if !ok {
		return nil, fmt.Errorf("expected core.TrialStatus, got %T", obj)
	}
	doc := NewDocument("")
	doc.Set("name", s.String())
	return doc, nil
}

func parameterTypeToDoc(obj any) (*Document, error) {
	p, ok := obj.(core.ParameterType)
	if !ok {
		return nil, fmt.Errorf("expected core.ParameterType, got %T", obj)
	}
	doc := NewDocument("")
	doc.Set("name", p.String())
	return doc, nil
}

func benchmarkMetricToDoc(obj any) (*Document, error) {
	m, ok := obj.(benchmark.Metric)
	if !ok {
		return nil, fmt.Errorf("expected benchmark.Metric, got %T", obj)
	}
	doc := NewDocument("")
	doc.Set("name", m.MetricName())
	doc.Set("lower_is_better", m.LowerIsBetter())
	doc.Set("observe_noise_sd", m.ObserveNoiseSD())
	doc.Set("outcome_index", m.OutcomeIndex())
	return doc, nil
}

func syntheticRunnerToDoc(obj any) (*Document, error) {
	r, ok := obj.(*benchmark.SyntheticRunner)
	if !ok {
		return nil, fmt.Errorf("expected *benchmark.SyntheticRunner, got %T", obj)
	}
	if r.Problem == nil {
		return nil, fmt.Errorf("synthetic runner has no problem")
	}
	doc := NewDocument("")
	doc.Set("problem", r.Problem.ProblemName())
	doc.Set("noise_sd", r.NoiseSD)
	doc.Set("seed", r.Seed)
	return doc, nil
}

// Decoders. Field values arrive fully decoded (children before parent).

func armFromDoc(doc *Document) (any, error) {
	name, err := doc.String("name")
	if err != nil {
		return nil, err
	}
	parameters, err := doc.StringMap("parameters")
	if err != nil {
		return nil, err
	}
	return core.NewArm(name, parameters), nil
}

func trialFromDoc(doc *Document) (any, error) {
	index, err := doc.Int("index")
	if err != nil {
		return nil, err
	}
	status, err := fieldAs[core.TrialStatus](doc, "status")
	if err != nil {
		return nil, err
	}
	rawArms, err := doc.Slice("arms")
	if err != nil {
		return nil, err
	}
	arms, err := typedSlice[*core.Arm](rawArms)
	if err != nil {
		return nil, err
	}
	runMetadata, err := doc.StringMap("run_metadata")
	if err != nil {
		return nil, err
	}
	created, err := doc.OptionalDateTime("time_created")
	if err != nil {
		return nil, err
	}
	completed, err := doc.OptionalDateTime("time_completed")
	if err != nil {
		return nil, err
	}
	return &core.Trial{
		Index:         index,
		Status:        status,
		Arms:          arms,
		RunMetadata:   runMetadata,
		TimeCreated:   created,
		TimeCompleted: completed,
	}, nil
}

func experimentFromDoc(doc *Document) (any, error) {
	name, err := doc.String("name")
	if err != nil {
		return nil, err
	}
	description, err := doc.String("description")
	if err != nil {
		return nil, err
	}
	space, err := optionalFieldAs[*core.SearchSpace](doc, "search_space")
	if err != nil {
		return nil, err
	}
	optConfig, err := optionalFieldAs[*core.OptimizationConfig](doc, "optimization_config")
	if err != nil {
		return nil, err
	}
	rawMetrics, err := doc.Slice("tracking_metrics")
	if err != nil {
		return nil, err
	}
	metrics, err := typedSlice[core.Metric](rawMetrics)
	if err != nil {
		return nil, err
	}
	rawTrials, err := doc.Slice("trials")
	if err != nil {
		return nil, err
	}
	trials, err := typedSlice[*core.Trial](rawTrials)
	if err != nil {
		return nil, err
	}
	created, err := doc.OptionalDateTime("time_created")
	if err != nil {
		return nil, err
	}
	return &core.Experiment{
		Name:               name,
		Description:        description,
		SearchSpace:        space,
		OptimizationConfig: optConfig,
		TrackingMetrics:    metrics,
		Trials:             trials,
		TimeCreated:        created,
	}, nil
}

func searchSpaceFromDoc(doc *Document) (any, error) {
	raw, err := doc.Slice("parameters")
	if err != nil {
		return nil, err
	}
	parameters, err := typedSlice[core.Parameter](raw)
	if err != nil {
		return nil, err
	}
	return core.NewSearchSpace(parameters...)
}

func rangeParameterFromDoc(doc *Document) (any, error) {
	name, err := doc.String("name")
	if err != nil {
		return nil, err
	}
	paramType, err := fieldAs[core.ParameterType](doc, "parameter_type")
	if err != nil {
		return nil, err
	}
	lower, err := doc.Float("lower")
	if err != nil {
		return nil, err
	}
	upper, err := doc.Float("upper")
	if err != nil {
		return nil, err
	}
	logScale, err := doc.Bool("log_scale")
	if err != nil {
		return nil, err
	}
	return &core.RangeParameter{Name: name, Type: paramType, Lower: lower, Upper: upper, LogScale: logScale}, nil
}

func choiceParameterFromDoc(doc *Document) (any, error) {
	name, err := doc.String("name")
	if err != nil {
		return nil, err
	}
	paramType, err := fieldAs[core.ParameterType](doc, "parameter_type")
	if err != nil {
		return nil, err
	}
	values, err := doc.Slice("values")
	if err != nil {
		return nil, err
	}
	isOrdered, err := doc.Bool("is_ordered")
	if err != nil {
		return nil, err
	}
	return &core.ChoiceParameter{Name: name, Type: paramType, Values: values, IsOrdered: isOrdered}, nil
}

func fixedParameterFromDoc(doc *Document) (any, error) {
	name, err := doc.String("name")
	if err != nil {
		return nil, err
	}
	paramType, err := fieldAs[core.ParameterType](doc, "parameter_type")
	if err != nil {
		return nil, err
	}
	return &core.FixedParameter{Name: name, Type: paramType, Value: doc.Value("value")}, nil
}

func objectiveFromDoc(doc *Document) (any, error) {
	metric, err := fieldAs[core.Metric](doc, "metric")
	if err != nil {
		return nil, err
	}
	minimize, err := doc.Bool("minimize")
	if err != nil {
		return nil, err
	}
	return &core.Objective{Metric: metric, Minimize: minimize}, nil
}

func optimizationConfigFromDoc(doc *Document) (any, error) {
	objective, err := optionalFieldAs[*core.Objective](doc, "objective")
	if err != nil {
		return nil, err
	}
	return &core.OptimizationConfig{Objective: objective}, nil
}

func generationStepFromDoc(doc *Document) (any, error) {
	model, err := fieldAs[reflect.Type](doc, "model")
	if err != nil {
		return nil, err
	}
	numTrials, err := doc.Int("num_trials")
	if err != nil {
		return nil, err
	}
	minObserved, err := doc.Int("min_trials_observed")
	if err != nil {
		return nil, err
	}
	return &core.GenerationStep{Model: model, NumTrials: numTrials, MinTrialsObserved: minObserved}, nil
}

func generationStrategyFromDoc(doc *Document) (any, error) {
	name, err := doc.String("name")
	if err != nil {
		return nil, err
	}
	rawSteps, err := doc.Slice("steps")
	if err != nil {
		return nil, err
	}
	steps, err := typedSlice[*core.GenerationStep](rawSteps)
	if err != nil {
		return nil, err
	}
	return &core.GenerationStrategy{Name: name, Steps: steps}, nil
}

func trialStatusFromDoc(doc *Document) (any, error) {
	name, err := doc.String("name")
	if err != nil {
		return nil, err
	}
	return core.ParseTrialStatus(name)
}

func parameterTypeFromDoc(doc *Document) (any, error) {
	name, err := doc.String("name")
	if err != nil {
		return nil, err
	}
	return core.ParseParameterType(name)
}

func benchmarkMetricFromDoc(doc *Document) (any, error) {
	name, lowerIsBetter, observeNoiseSD, outcomeIndex, err := metricFields(doc)
	if err != nil {
		return nil, err
	}
	return benchmark.NewBenchmarkMetric(name, lowerIsBetter, observeNoiseSD, outcomeIndex), nil
}

func groundTruthMetricFromDoc(doc *Document) (any, error) {
	name, lowerIsBetter, _, outcomeIndex, err := metricFields(doc)
	if err != nil {
		return nil, err
	}
	return benchmark.NewGroundTruthBenchmarkMetric(name, lowerIsBetter, outcomeIndex), nil
}

func braninMetricFromDoc(doc *Document) (any, error) {
	name, lowerIsBetter, observeNoiseSD, outcomeIndex, err := metricFields(doc)
	if err != nil {
		return nil, err
	}
	return &benchmark.BraninMetric{
		BenchmarkMetric: *benchmark.NewBenchmarkMetric(name, lowerIsBetter, observeNoiseSD, outcomeIndex),
	}, nil
}

func hartmann6MetricFromDoc(doc *Document) (any, error) {
	name, lowerIsBetter, observeNoiseSD, outcomeIndex, err := metricFields(doc)
	if err != nil {
		return nil, err
	}
	return &benchmark.Hartmann6Metric{
		BenchmarkMetric: *benchmark.NewBenchmarkMetric(name, lowerIsBetter, observeNoiseSD, outcomeIndex),
	}, nil
}

func metricFields(doc *Document) (name string, lowerIsBetter, observeNoiseSD bool, outcomeIndex *int, err error) {
	if name, err = doc.String("name"); err != nil {
		return
	}
	if lowerIsBetter, err = doc.Bool("lower_is_better"); err != nil {
		return
	}
	if observeNoiseSD, err = doc.Bool("observe_noise_sd"); err != nil {
		return
	}
	outcomeIndex, err = doc.OptionalInt("outcome_index")
	return
}

func syntheticRunnerFromDoc(doc *Document) (any, error) {
	problemName, err := doc.String("problem")
	if err != nil {
		return nil, err
	}
	problem, err := benchmark.ProblemByName(problemName)
	if err != nil {
		return nil, err
	}
	noiseSD, err := doc.Float("noise_sd")
	if err != nil {
		return nil, err
	}
	seed, err := doc.Int("seed")
	if err != nil {
		return nil, err
	}
	return benchmark.NewSyntheticRunner(problem, noiseSD, int64(seed)), nil
}

// classFromDoc decodes a type-reference document into a type handle via the
// registry's name table.
func classFromDoc(r *Registry) DecodeFunc {
	return func(doc *Document) (any, error) {
		name, err := doc.String("name")
		if err != nil {
			return nil, err
		}
		t, ok := r.TypeByName(name)
		if !ok {
			return nil, errors.NewUnknownTypeNameError(name)
		}
		return t, nil
	}
}

// fieldAs returns a decoded field asserted to type T.
func fieldAs[T any](doc *Document, key string) (T, error) {
	var zero T
	v, ok := doc.Get(key)
	if !ok {
		return zero, fmt.Errorf("document %q: missing field %q", doc.TypeName(), key)
	}
	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("document %q: field %q is %T, want %T", doc.TypeName(), key, v, zero)
	}
	return typed, nil
}

// optionalFieldAs is fieldAs for nullable fields: missing or null yields the
// zero value of T.
func optionalFieldAs[T any](doc *Document, key string) (T, error) {
	var zero T
	v, ok := doc.Get(key)
	if !ok || v == nil {
		return zero, nil
	}
	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("document %q: field %q is %T, want %T", doc.TypeName(), key, v, zero)
	}
	return typed, nil
}

// typedSlice converts a decoded []any into a typed slice. A nil input stays
// nil so round-tripped objects compare equal.
func typedSlice[T any](items []any) ([]T, error) {
	if items == nil {
		return nil, nil
	}
	out := make([]T, len(items))
	for i, item := range items {
		typed, ok := item.(T)
		if !ok {
			var zero T
			return nil, fmt.Errorf("sequence element %d is %T, want %T", i, item, zero)
		}
		out[i] = typed
	}
	return out, nil
}
