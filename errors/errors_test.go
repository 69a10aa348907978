/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestUnregisteredTypeError(t *testing.T) {
	err := NewUnregisteredTypeError("*core.Arm")

	// Test error message
	expected := "no encoder registered for type *core.Arm"
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}

	// Test Is method
	if !errors.Is(err, ErrUnregisteredType) {
		t.Error("UnregisteredTypeError should match ErrUnregisteredType")
	}

	// Test helper function
	if !IsUnregisteredType(err) {
		t.Error("IsUnregisteredType should return true for UnregisteredTypeError")
	}
}

func TestUnknownTypeNameError(t *testing.T) {
	err := NewUnknownTypeNameError("BogusMetric")

	expected := `no decoder registered for type name "BogusMetric"`
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}

	if !errors.Is(err, ErrUnknownTypeName) {
		t.Error("UnknownTypeNameError should match ErrUnknownTypeName")
	}

	if !IsUnknownTypeName(err) {
		t.Error("IsUnknownTypeName should return true for UnknownTypeNameError")
	}
}

func TestAmbiguousRegistrationError(t *testing.T) {
	err := NewAmbiguousRegistrationError("*benchmark.BenchmarkMetric")

	if !errors.Is(err, ErrAmbiguousRegistration) {
		t.Error("AmbiguousRegistrationError should match ErrAmbiguousRegistration")
	}

	if !IsAmbiguousRegistration(err) {
		t.Error("IsAmbiguousRegistration should return true for AmbiguousRegistrationError")
	}
}

func TestUnsupportedArgumentError(t *testing.T) {
	tests := []struct {
		name      string
		method    string
		arguments []string
		expected  string
	}{
		{
			name:      "with arguments",
			method:    "BenchmarkMetric.FetchTrialData",
			arguments: []string{"timeout", "retries"},
			expected:  "arguments timeout, retries are not supported in BenchmarkMetric.FetchTrialData",
		},
		{
			name:     "without arguments",
			method:   "BenchmarkMetric.FetchTrialData",
			expected: "unsupported arguments in BenchmarkMetric.FetchTrialData",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewUnsupportedArgumentError(tt.method, tt.arguments...)

			if err.Error() != tt.expected {
				t.Errorf("Expected error message %q, got %q", tt.expected, err.Error())
			}

			if !IsUnsupportedArgument(err) {
				t.Error("IsUnsupportedArgument should return true")
			}
		})
	}
}

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("Experiment", "EXPERIMENT#branin")

	expected := `Experiment with key "EXPERIMENT#branin" not found`
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}

	if !errors.Is(err, ErrNotFound) {
		t.Error("NotFoundError should match ErrNotFound")
	}

	if !IsNotFound(err) {
		t.Error("IsNotFound should return true for NotFoundError")
	}
}

func TestErrorWrapping(t *testing.T) {
	base := NewAlreadyRegisteredError("decoder", "Arm")
	wrapped := fmt.Errorf("building core registry: %w", base)

	if !IsAlreadyRegistered(wrapped) {
		t.Error("IsAlreadyRegistered should see through fmt.Errorf wrapping")
	}

	var typed *AlreadyRegisteredError
	if !errors.As(wrapped, &typed) {
		t.Fatal("errors.As should extract AlreadyRegisteredError")
	}
	if typed.Kind != "decoder" || typed.Key != "Arm" {
		t.Errorf("Unexpected fields: %+v", typed)
	}
}
