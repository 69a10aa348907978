/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package jsonstore

import (
	"context"
	"encoding/json"
	"reflect"
	"testing"

	"github.com/go-openapi/strfmt"

	"github.com/suparena/benchstore/benchmark"
	"github.com/suparena/benchstore/core"
	"github.com/suparena/benchstore/errors"
)

func mustDateTime(t *testing.T, s string) *strfmt.DateTime {
	t.Helper()
	dt, err := strfmt.ParseDateTime(s)
	if err != nil {
		t.Fatalf("parsing %q: %v", s, err)
	}
	return &dt
}

// roundTrip encodes an object, marshals the document to JSON, parses it back,
// and decodes it with the same registry.
func roundTrip(t *testing.T, r *Registry, obj any) any {
	t.Helper()
	doc, err := r.Encode(obj)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	var restored Document
	if err := json.Unmarshal(data, &restored); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	decoded, err := r.Decode(&restored)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	return decoded
}

func TestMetricEncodesToExactJSON(t *testing.T) {
	metric := &benchmark.BraninMetric{
		BenchmarkMetric: *benchmark.NewBenchmarkMetric("accuracy", false, true, nil),
	}

	doc, err := CoreRegistry().Encode(metric)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	expected := `{"__type":"BraninMetric","name":"accuracy","lower_is_better":false,"observe_noise_sd":true,"outcome_index":null}`
	if string(data) != expected {
		t.Errorf("Expected %s, got %s", expected, data)
	}
}

func TestMetricRoundTripKeepsConcreteType(t *testing.T) {
	r := CoreRegistry()
	idx := 1
	cases := []benchmark.Metric{
		benchmark.NewBenchmarkMetric("m", false, true, &idx),
		benchmark.NewGroundTruthBenchmarkMetric("m__GROUND_TRUTH", false, &idx),
		benchmark.NewBraninMetric("branin", true),
		benchmark.NewHartmann6Metric("hartmann6", false),
	}
	for _, metric := range cases {
		decoded := roundTrip(t, r, metric)
		if reflect.TypeOf(decoded) != reflect.TypeOf(metric) {
			t.Errorf("Expected %T after round trip, got %T", metric, decoded)
			continue
		}
		if !reflect.DeepEqual(decoded, metric) {
			t.Errorf("%T round trip mismatch:\n  got  %#v\n  want %#v", metric, decoded, metric)
		}
	}
}

// latencyMetric is a metric subtype with no exact encoder entry: encoding must
// fall back to the shared metric encoder via the ancestor table while keeping
// the subtype's own discriminant.
type latencyMetric struct {
	benchmark.BenchmarkMetric
}

func TestAncestorDispatchKeepsSubtypeDiscriminant(t *testing.T) {
	r := CoreRegistry()
	err := r.RegisterDecoder("LatencyMetric", &latencyMetric{}, func(doc *Document) (any, error) {
		name, lowerIsBetter, observeNoiseSD, outcomeIndex, err := metricFields(doc)
		if err != nil {
			return nil, err
		}
		return &latencyMetric{
			BenchmarkMetric: *benchmark.NewBenchmarkMetric(name, lowerIsBetter, observeNoiseSD, outcomeIndex),
		}, nil
	})
	if err != nil {
		t.Fatalf("RegisterDecoder failed: %v", err)
	}

	metric := &latencyMetric{BenchmarkMetric: *benchmark.NewBenchmarkMetric("latency", true, true, nil)}

	doc, err := r.Encode(metric)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if doc.TypeName() != "LatencyMetric" {
		t.Errorf("Expected LatencyMetric discriminant, got %q", doc.TypeName())
	}

	decoded := roundTrip(t, r, metric)
	if !reflect.DeepEqual(decoded, metric) {
		t.Errorf("Round trip mismatch:\n  got  %#v\n  want %#v", decoded, metric)
	}
}

func TestExperimentRoundTrip(t *testing.T) {
	r := CoreRegistry()

	space, err := core.NewSearchSpace(
		&core.RangeParameter{Name: "x1", Type: core.ParameterTypeFloat, Lower: -5, Upper: 10},
		&core.RangeParameter{Name: "x2", Type: core.ParameterTypeFloat, Lower: 0, Upper: 15},
	)
	if err != nil {
		t.Fatalf("NewSearchSpace failed: %v", err)
	}

	trial := &core.Trial{
		Index:  0,
		Status: core.TrialStatusCompleted,
		Arms: []*core.Arm{
			core.NewArm("0_0", map[string]any{"x1": -3.14, "x2": 12.27}),
		},
		RunMetadata: map[string]any{
			"Ys":      map[string]any{"0_0": []any{0.42}},
			"Ys_true": map[string]any{"0_0": []any{0.4}},
			"Yvars":   map[string]any{"0_0": []any{0.01}},
		},
		TimeCreated:   mustDateTime(t, "2025-06-01T10:00:00.000Z"),
		TimeCompleted: mustDateTime(t, "2025-06-01T10:05:00.000Z"),
	}

	experiment := &core.Experiment{
		Name:        "branin_bench",
		Description: "noisy branin benchmark",
		SearchSpace: space,
		OptimizationConfig: &core.OptimizationConfig{
			Objective: &core.Objective{Metric: benchmark.NewBraninMetric("branin", true), Minimize: true},
		},
		TrackingMetrics: []core.Metric{
			benchmark.NewGroundTruthBenchmarkMetric("branin__GROUND_TRUTH", true, nil),
		},
		Trials:      []*core.Trial{trial},
		TimeCreated: mustDateTime(t, "2025-06-01T09:00:00.000Z"),
	}

	decoded := roundTrip(t, r, experiment)
	restored, ok := decoded.(*core.Experiment)
	if !ok {
		t.Fatalf("Expected *core.Experiment, got %T", decoded)
	}
	if !reflect.DeepEqual(restored, experiment) {
		t.Errorf("Round trip mismatch:\n  got  %#v\n  want %#v", restored, experiment)
	}
}

func TestIntParameterValuesSurviveRoundTrip(t *testing.T) {
	r := CoreRegistry()

	space, err := core.NewSearchSpace(
		&core.RangeParameter{Name: "n", Type: core.ParameterTypeInt, Lower: 1, Upper: 10},
	)
	if err != nil {
		t.Fatalf("NewSearchSpace failed: %v", err)
	}
	arms, err := (&core.RandomModel{Seed: 3}).GenerateArms(context.Background(), space, 2)
	if err != nil {
		t.Fatalf("GenerateArms failed: %v", err)
	}

	trial := core.NewTrial(0, arms...)
	trial.TimeCreated = mustDateTime(t, "2025-06-01T10:00:00.000Z")

	decoded := roundTrip(t, r, trial)
	restored, ok := decoded.(*core.Trial)
	if !ok {
		t.Fatalf("Expected *core.Trial, got %T", decoded)
	}
	if !reflect.DeepEqual(restored, trial) {
		t.Errorf("Round trip mismatch:\n  got  %#v\n  want %#v", restored, trial)
	}

	// Membership answers must not change after a round trip.
	for _, arm := range restored.Arms {
		if !space.CheckMembership(arm) {
			t.Errorf("Restored arm %s (%v) fell outside the search space", arm.Name, arm.Parameters)
		}
	}
}

func TestParameterRoundTrip(t *testing.T) {
	r := CoreRegistry()
	cases := []core.Parameter{
		&core.RangeParameter{Name: "lr", Type: core.ParameterTypeFloat, Lower: 1e-5, Upper: 0.1, LogScale: true},
		&core.ChoiceParameter{Name: "optimizer", Type: core.ParameterTypeString, Values: []any{"adam", "sgd"}, IsOrdered: false},
		&core.FixedParameter{Name: "use_bias", Type: core.ParameterTypeBool, Value: true},
	}
	for _, param := range cases {
		decoded := roundTrip(t, r, param)
		if !reflect.DeepEqual(decoded, param) {
			t.Errorf("%T round trip mismatch:\n  got  %#v\n  want %#v", param, decoded, param)
		}
	}
}

func TestGenerationStrategyRoundTrip(t *testing.T) {
	r := CoreRegistry()

	strategy := &core.GenerationStrategy{
		Name: "sobol_then_random",
		Steps: []*core.GenerationStep{
			{Model: reflect.TypeOf(&core.SobolModel{}), NumTrials: 5},
			{Model: reflect.TypeOf(&core.RandomModel{}), NumTrials: -1, MinTrialsObserved: 3},
		},
	}

	doc, err := r.Encode(strategy)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	steps, err := doc.Slice("steps")
	if err != nil || len(steps) != 2 {
		t.Fatalf("Expected 2 encoded steps, got %v (err %v)", steps, err)
	}
	stepDoc, ok := steps[0].(*Document)
	if !ok {
		t.Fatalf("Expected step document, got %T", steps[0])
	}
	modelDoc, ok := stepDoc.Value("model").(*Document)
	if !ok {
		t.Fatalf("Expected model reference document, got %T", stepDoc.Value("model"))
	}
	if modelDoc.TypeName() != "Type[Model]" {
		t.Errorf("Expected Type[Model] discriminant, got %q", modelDoc.TypeName())
	}
	if name, _ := modelDoc.String("name"); name != "SobolModel" {
		t.Errorf("Expected SobolModel reference, got %q", name)
	}

	decoded := roundTrip(t, r, strategy)
	restored, ok := decoded.(*core.GenerationStrategy)
	if !ok {
		t.Fatalf("Expected *core.GenerationStrategy, got %T", decoded)
	}
	if !reflect.DeepEqual(restored, strategy) {
		t.Errorf("Round trip mismatch:\n  got  %#v\n  want %#v", restored, strategy)
	}

	// The restored type handle must still instantiate.
	model, err := restored.Steps[0].NewModel()
	if err != nil {
		t.Fatalf("NewModel failed: %v", err)
	}
	if _, ok := model.(*core.SobolModel); !ok {
		t.Errorf("Expected *core.SobolModel instance, got %T", model)
	}
}

func TestEncodeUnregisteredType(t *testing.T) {
	r := CoreRegistry()

	type stranger struct{ X int }
	_, err := r.Encode(&stranger{X: 1})
	if !errors.IsUnregisteredType(err) {
		t.Errorf("Expected UnregisteredTypeError, got %v", err)
	}

	if _, err := r.Encode(nil); !errors.IsUnregisteredType(err) {
		t.Errorf("Expected UnregisteredTypeError for nil, got %v", err)
	}

	// A type handle outside every class table is unregistered too.
	if _, err := r.Encode(reflect.TypeOf(42)); !errors.IsUnregisteredType(err) {
		t.Errorf("Expected UnregisteredTypeError for unknown type handle, got %v", err)
	}
}

func TestDecodeUnknownTypeName(t *testing.T) {
	r := CoreRegistry()

	doc := NewDocument("Mystery")
	doc.Set("name", "m")
	if _, err := r.Decode(doc); !errors.IsUnknownTypeName(err) {
		t.Errorf("Expected UnknownTypeNameError, got %v", err)
	}

	// An unknown discriminant nested anywhere in the tree aborts the whole
	// decode.
	outer := NewDocument("Objective")
	outer.Set("metric", NewDocument("Mystery").Set("name", "m"))
	outer.Set("minimize", true)
	if _, err := r.Decode(outer); !errors.IsUnknownTypeName(err) {
		t.Errorf("Expected UnknownTypeNameError for nested document, got %v", err)
	}
}

func TestDecodePlainMapping(t *testing.T) {
	r := CoreRegistry()

	doc := NewDocument("")
	doc.Set("alpha", 1.5)
	doc.Set("beta", "two")

	decoded, err := r.Decode(doc)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	expected := map[string]any{"alpha": 1.5, "beta": "two"}
	if !reflect.DeepEqual(decoded, expected) {
		t.Errorf("Expected %v, got %v", expected, decoded)
	}
}

func TestEnumRoundTrip(t *testing.T) {
	r := CoreRegistry()

	if decoded := roundTrip(t, r, core.TrialStatusRunning); decoded != core.TrialStatusRunning {
		t.Errorf("Expected RUNNING status, got %v", decoded)
	}
	if decoded := roundTrip(t, r, core.ParameterTypeString); decoded != core.ParameterTypeString {
		t.Errorf("Expected STRING parameter type, got %v", decoded)
	}
}
