/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package core

import "fmt"

// ParameterType identifies the value domain of a parameter.
type ParameterType int

const (
	ParameterTypeInt ParameterType = iota
	ParameterTypeFloat
	ParameterTypeString
	ParameterTypeBool
)

var parameterTypeNames = map[ParameterType]string{
	ParameterTypeInt:    "INT",
	ParameterTypeFloat:  "FLOAT",
	ParameterTypeString: "STRING",
	ParameterTypeBool:   "BOOL",
}

func (p ParameterType) String() string {
	if name, ok := parameterTypeNames[p]; ok {
		return name
	}
	return "UNKNOWN"
}

// ParseParameterType maps a parameter type name back to its value.
func ParseParameterType(name string) (ParameterType, error) {
	for p, n := range parameterTypeNames {
		if n == name {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown parameter type %q", name)
}

// Parameter is one dimension of a search space.
type Parameter interface {
	ParameterName() string
	ParameterType() ParameterType
	// Contains reports whether a value is a member of the parameter's domain.
	Contains(value any) bool
}

// RangeParameter is a bounded numeric parameter.
type RangeParameter struct {
	Name     string
	Type     ParameterType
	Lower    float64
	Upper    float64
	LogScale bool
}

func (p *RangeParameter) ParameterName() string        { return p.Name }
func (p *RangeParameter) ParameterType() ParameterType { return p.Type }

func (p *RangeParameter) Contains(value any) bool {
	v, ok := asFloat(value)
	if !ok {
		return false
	}
	return v >= p.Lower && v <= p.Upper
}

// ChoiceParameter is a parameter with an explicit finite domain.
type ChoiceParameter struct {
	Name      string
	Type      ParameterType
	Values    []any
	IsOrdered bool
}

func (p *ChoiceParameter) ParameterName() string        { return p.Name }
func (p *ChoiceParameter) ParameterType() ParameterType { return p.Type }

func (p *ChoiceParameter) Contains(value any) bool {
	for _, v := range p.Values {
		if valueEqual(v, value) {
			return true
		}
	}
	return false
}

// FixedParameter pins a parameter to a single value.
type FixedParameter struct {
	Name  string
	Type  ParameterType
	Value any
}

func (p *FixedParameter) ParameterName() string        { return p.Name }
func (p *FixedParameter) ParameterType() ParameterType { return p.Type }

func (p *FixedParameter) Contains(value any) bool {
	return valueEqual(p.Value, value)
}

// valueEqual compares domain values, treating every numeric representation of
// the same number as equal: int 3 and float64 3 denote the same value once a
// parameterization has crossed the JSON wire.
func valueEqual(a, b any) bool {
	af, aok := asFloat(a)
	bf, bok := asFloat(b)
	if aok || bok {
		return aok && bok && af == bf
	}
	return a == b
}

func asFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

// SearchSpace is the set of parameters an experiment searches over.
// Parameter names are unique within a search space.
type SearchSpace struct {
	Parameters []Parameter
}

// NewSearchSpace creates a search space, rejecting duplicate parameter names.
func NewSearchSpace(parameters ...Parameter) (*SearchSpace, error) {
	seen := make(map[string]struct{}, len(parameters))
	for _, p := range parameters {
		name := p.ParameterName()
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("duplicate parameter %q in search space", name)
		}
		seen[name] = struct{}{}
	}
	return &SearchSpace{Parameters: parameters}, nil
}

// Parameter returns the named parameter, or nil.
func (s *SearchSpace) Parameter(name string) Parameter {
	for _, p := range s.Parameters {
		if p.ParameterName() == name {
			return p
		}
	}
	return nil
}

// CheckMembership reports whether an arm's parameterization lies within the
// search space: every parameter is present and every value is in its domain.
func (s *SearchSpace) CheckMembership(arm *Arm) bool {
	if len(arm.Parameters) != len(s.Parameters) {
		return false
	}
	for _, p := range s.Parameters {
		v, ok := arm.Parameters[p.ParameterName()]
		if !ok || !p.Contains(v) {
			return false
		}
	}
	return true
}
