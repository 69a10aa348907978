/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package core

import "testing"

// stubMetric is the minimal core.Metric for experiment bookkeeping tests.
type stubMetric struct {
	name string
}

func (m stubMetric) MetricName() string  { return m.name }
func (m stubMetric) LowerIsBetter() bool { return true }

func TestExperimentTrialIndexing(t *testing.T) {
	space := testSpace(t)
	e := NewExperiment("exp", space)

	first := e.NewTrial(NewArm("0_0", map[string]any{"x1": 1.0, "x2": 2.0}))
	second := e.NewTrial()

	if first.Index != 0 || second.Index != 1 {
		t.Errorf("Expected indices 0 and 1, got %d and %d", first.Index, second.Index)
	}
	if first.Status != TrialStatusCandidate {
		t.Errorf("Expected new trials to be candidates, got %s", first.Status)
	}

	got, err := e.Trial(1)
	if err != nil {
		t.Fatalf("Trial(1) failed: %v", err)
	}
	if got != second {
		t.Error("Trial(1) returned the wrong trial")
	}
	if _, err := e.Trial(2); err == nil {
		t.Error("Expected error for an out-of-range trial index")
	}
}

func TestExperimentCompletedTrials(t *testing.T) {
	e := NewExperiment("exp", testSpace(t))
	e.NewTrial()
	e.NewTrial().MarkCompleted()
	e.NewTrial().MarkCompleted()

	if got := e.CompletedTrials(); got != 2 {
		t.Errorf("Expected 2 completed trials, got %d", got)
	}
}

func TestExperimentMetrics(t *testing.T) {
	e := NewExperiment("exp", testSpace(t))
	e.OptimizationConfig = &OptimizationConfig{
		Objective: &Objective{Metric: stubMetric{name: "loss"}, Minimize: true},
	}
	e.TrackingMetrics = []Metric{stubMetric{name: "latency"}}

	metrics := e.Metrics()
	if len(metrics) != 2 {
		t.Fatalf("Expected 2 metrics, got %d", len(metrics))
	}
	if metrics[0].MetricName() != "loss" {
		t.Errorf("Expected the objective metric first, got %q", metrics[0].MetricName())
	}

	m, err := e.MetricByName("latency")
	if err != nil {
		t.Fatalf("MetricByName failed: %v", err)
	}
	if m.MetricName() != "latency" {
		t.Errorf("Expected latency, got %q", m.MetricName())
	}
	if _, err := e.MetricByName("throughput"); err == nil {
		t.Error("Expected error for an unknown metric name")
	}
}

func TestMarkCompleted(t *testing.T) {
	trial := NewTrial(0)
	if trial.TimeCompleted != nil {
		t.Error("Expected no completion time on a candidate trial")
	}

	trial.MarkCompleted()
	if trial.Status != TrialStatusCompleted {
		t.Errorf("Expected COMPLETED, got %s", trial.Status)
	}
	if trial.TimeCompleted == nil {
		t.Error("Expected a completion timestamp")
	}
}

func TestTrialArmLookup(t *testing.T) {
	trial := NewTrial(0, NewArm("0_0", nil), NewArm("0_1", nil))

	if arm := trial.Arm("0_1"); arm == nil || arm.Name != "0_1" {
		t.Errorf("Expected arm 0_1, got %v", arm)
	}
	if arm := trial.Arm("9_9"); arm != nil {
		t.Errorf("Expected nil for an unknown arm, got %v", arm)
	}
}

func TestParseTrialStatus(t *testing.T) {
	statuses := []TrialStatus{
		TrialStatusCandidate, TrialStatusStaged, TrialStatusRunning,
		TrialStatusCompleted, TrialStatusFailed, TrialStatusAbandoned,
	}
	for _, s := range statuses {
		parsed, err := ParseTrialStatus(s.String())
		if err != nil {
			t.Errorf("ParseTrialStatus(%q) failed: %v", s.String(), err)
		}
		if parsed != s {
			t.Errorf("ParseTrialStatus(%q) = %v, want %v", s.String(), parsed, s)
		}
	}
	if _, err := ParseTrialStatus("PONDERING"); err == nil {
		t.Error("Expected error for an unknown status name")
	}
}

func TestNewArmCanonicalizesNumericValues(t *testing.T) {
	arm := NewArm("a", map[string]any{
		"i":   3,
		"i64": int64(4),
		"f32": float32(2.5),
		"f":   1.5,
		"s":   "text",
		"b":   true,
	})

	for key, want := range map[string]float64{"i": 3, "i64": 4, "f32": 2.5, "f": 1.5} {
		v, ok := arm.Parameters[key].(float64)
		if !ok {
			t.Errorf("Expected %q to be float64, got %T", key, arm.Parameters[key])
			continue
		}
		if v != want {
			t.Errorf("Expected %q = %v, got %v", key, want, v)
		}
	}
	if _, ok := arm.Parameters["s"].(string); !ok {
		t.Errorf("Expected string value to pass through, got %T", arm.Parameters["s"])
	}
	if _, ok := arm.Parameters["b"].(bool); !ok {
		t.Errorf("Expected bool value to pass through, got %T", arm.Parameters["b"])
	}
}

func TestArmFloatCoercion(t *testing.T) {
	arm := NewArm("a", map[string]any{
		"f": 1.5,
		"i": 3,
		"s": "nope",
	})

	if v, ok := arm.Float("f"); !ok || v != 1.5 {
		t.Errorf("Float(f) = %v, %v", v, ok)
	}
	if v, ok := arm.Float("i"); !ok || v != 3.0 {
		t.Errorf("Float(i) = %v, %v", v, ok)
	}
	if _, ok := arm.Float("s"); ok {
		t.Error("Expected string parameter to not coerce")
	}
	if _, ok := arm.Float("missing"); ok {
		t.Error("Expected missing parameter to not coerce")
	}
}
