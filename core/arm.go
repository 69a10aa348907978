/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package core

// Arm is a single parameterization to be evaluated. Parameter values are
// restricted to JSON-representable scalars (bool, string, float64). Numeric
// values are canonicalized to float64, the JSON number shape, so a
// parameterization compares equal before and after a storage round trip.
type Arm struct {
	Name       string
	Parameters map[string]any
}

// NewArm creates an arm with the given name and parameter assignment.
// Integer and float32 values are canonicalized to float64.
func NewArm(name string, parameters map[string]any) *Arm {
	canonical := make(map[string]any, len(parameters))
	for k, v := range parameters {
		canonical[k] = canonicalScalar(v)
	}
	return &Arm{Name: name, Parameters: canonical}
}

// canonicalScalar maps every numeric representation onto float64.
func canonicalScalar(v any) any {
	switch x := v.(type) {
	case int:
		return float64(x)
	case int32:
		return float64(x)
	case int64:
		return float64(x)
	case float32:
		return float64(x)
	default:
		return v
	}
}

// Float returns the named parameter coerced to float64. Integer-valued
// parameters coerce losslessly; everything else reports false.
func (a *Arm) Float(name string) (float64, bool) {
	v, ok := a.Parameters[name]
	if !ok {
		return 0, false
	}
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	default:
		return 0, false
	}
}
