/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package core

import "testing"

func TestRangeParameterContains(t *testing.T) {
	p := &RangeParameter{Name: "x", Type: ParameterTypeFloat, Lower: -5, Upper: 10}

	tests := []struct {
		name  string
		value any
		want  bool
	}{
		{"inside", 0.5, true},
		{"lower bound", -5.0, true},
		{"upper bound", 10.0, true},
		{"below", -5.1, false},
		{"above", 10.5, false},
		{"integer value", 3, true},
		{"non numeric", "three", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Contains(tt.value); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestChoiceParameterContains(t *testing.T) {
	p := &ChoiceParameter{Name: "opt", Type: ParameterTypeString, Values: []any{"adam", "sgd"}}

	if !p.Contains("adam") {
		t.Error("Expected adam to be a member")
	}
	if p.Contains("rmsprop") {
		t.Error("Expected rmsprop to not be a member")
	}
}

func TestFixedParameterContains(t *testing.T) {
	p := &FixedParameter{Name: "bias", Type: ParameterTypeBool, Value: true}

	if !p.Contains(true) {
		t.Error("Expected the pinned value to be a member")
	}
	if p.Contains(false) {
		t.Error("Expected other values to not be members")
	}
}

func TestContainsNumericRepresentations(t *testing.T) {
	// int and float64 spellings of the same number are the same domain value;
	// a parameterization read back from storage always carries float64.
	choice := &ChoiceParameter{Name: "layers", Type: ParameterTypeInt, Values: []any{1, 2, 4}}
	if !choice.Contains(2.0) {
		t.Error("Expected float64 2 to match choice value int 2")
	}
	if !choice.Contains(4) {
		t.Error("Expected int 4 to match choice value int 4")
	}
	if choice.Contains(3.0) {
		t.Error("Expected 3 to not be a member")
	}
	if choice.Contains("2") {
		t.Error("Expected string value to not match a numeric choice")
	}

	fixed := &FixedParameter{Name: "n", Type: ParameterTypeInt, Value: 3}
	if !fixed.Contains(3.0) {
		t.Error("Expected float64 3 to match pinned int 3")
	}
	if fixed.Contains(3.5) {
		t.Error("Expected 3.5 to not match pinned 3")
	}
}

func TestNewSearchSpaceRejectsDuplicates(t *testing.T) {
	_, err := NewSearchSpace(
		&RangeParameter{Name: "x", Type: ParameterTypeFloat, Lower: 0, Upper: 1},
		&FixedParameter{Name: "x", Type: ParameterTypeInt, Value: 1},
	)
	if err == nil {
		t.Error("Expected error for duplicate parameter names")
	}
}

func TestSearchSpaceCheckMembership(t *testing.T) {
	space, err := NewSearchSpace(
		&RangeParameter{Name: "x1", Type: ParameterTypeFloat, Lower: 0, Upper: 1},
		&ChoiceParameter{Name: "opt", Type: ParameterTypeString, Values: []any{"adam", "sgd"}},
	)
	if err != nil {
		t.Fatalf("NewSearchSpace failed: %v", err)
	}

	tests := []struct {
		name   string
		params map[string]any
		want   bool
	}{
		{"member", map[string]any{"x1": 0.5, "opt": "adam"}, true},
		{"out of range", map[string]any{"x1": 1.5, "opt": "adam"}, false},
		{"unknown choice", map[string]any{"x1": 0.5, "opt": "rmsprop"}, false},
		{"missing parameter", map[string]any{"x1": 0.5}, false},
		{"extra parameter", map[string]any{"x1": 0.5, "opt": "adam", "y": 1.0}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			arm := NewArm("a", tt.params)
			if got := space.CheckMembership(arm); got != tt.want {
				t.Errorf("CheckMembership = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseParameterType(t *testing.T) {
	for _, pt := range []ParameterType{ParameterTypeInt, ParameterTypeFloat, ParameterTypeString, ParameterTypeBool} {
		parsed, err := ParseParameterType(pt.String())
		if err != nil {
			t.Errorf("ParseParameterType(%q) failed: %v", pt.String(), err)
		}
		if parsed != pt {
			t.Errorf("ParseParameterType(%q) = %v, want %v", pt.String(), parsed, pt)
		}
	}
	if _, err := ParseParameterType("COMPLEX"); err == nil {
		t.Error("Expected error for unknown parameter type name")
	}
}
