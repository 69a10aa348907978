/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package core

import (
	"context"
	"fmt"
	"math/rand"
	"reflect"
)

// Model proposes new arms to evaluate. Implementations are opaque to the
// storage layer; generation strategies reference them by type and construct
// them on demand.
type Model interface {
	GenerateArms(ctx context.Context, space *SearchSpace, n int) ([]*Arm, error)
}

// RandomModel samples arms uniformly at random from the search space.
type RandomModel struct {
	Seed int64
}

func (m *RandomModel) GenerateArms(ctx context.Context, space *SearchSpace, n int) ([]*Arm, error) {
	rng := rand.New(rand.NewSource(m.Seed))
	arms := make([]*Arm, 0, n)
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		params := make(map[string]any, len(space.Parameters))
		for _, p := range space.Parameters {
			v, err := sampleParameter(p, rng.Float64())
			if err != nil {
				return nil, err
			}
			params[p.ParameterName()] = v
		}
		arms = append(arms, NewArm(fmt.Sprintf("%d_0", i), params))
	}
	return arms, nil
}

// SobolModel generates quasi-random arms using a per-dimension radical
// inverse sequence. Deterministic for a given search space and count.
type SobolModel struct {
	Skip int
}

func (m *SobolModel) GenerateArms(ctx context.Context, space *SearchSpace, n int) ([]*Arm, error) {
	arms := make([]*Arm, 0, n)
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		params := make(map[string]any, len(space.Parameters))
		for d, p := range space.Parameters {
			u := radicalInverse(uint64(m.Skip+i+1), primes[d%len(primes)])
			v, err := sampleParameter(p, u)
			if err != nil {
				return nil, err
			}
			params[p.ParameterName()] = v
		}
		arms = append(arms, NewArm(fmt.Sprintf("%d_0", i), params))
	}
	return arms, nil
}

var primes = []uint64{2, 3, 5, 7, 11, 13, 17, 19, 23, 29}

// radicalInverse reflects the base-b digits of i around the radix point,
// yielding a low-discrepancy point in [0, 1).
func radicalInverse(i, base uint64) float64 {
	inv := 1.0 / float64(base)
	var value float64
	f := inv
	for i > 0 {
		value += float64(i%base) * f
		i /= base
		f *= inv
	}
	return value
}

// sampleParameter maps a unit-interval draw onto a parameter's domain.
func sampleParameter(p Parameter, u float64) (any, error) {
	switch param := p.(type) {
	case *RangeParameter:
		v := param.Lower + u*(param.Upper-param.Lower)
		if param.Type == ParameterTypeInt {
			// Integer domains carry integral float64 values, the canonical
			// scalar shape.
			return float64(int(v)), nil
		}
		return v, nil
	case *ChoiceParameter:
		if len(param.Values) == 0 {
			return nil, fmt.Errorf("choice parameter %q has no values", param.Name)
		}
		idx := int(u * float64(len(param.Values)))
		if idx >= len(param.Values) {
			idx = len(param.Values) - 1
		}
		return param.Values[idx], nil
	case *FixedParameter:
		return param.Value, nil
	default:
		return nil, fmt.Errorf("cannot sample parameter type %T", p)
	}
}

// GenerationStep is one phase of a generation strategy: which model to use
// and for how many trials. NumTrials of -1 means unlimited.
type GenerationStep struct {
	// Model is a type reference (a pointer-to-struct type implementing Model),
	// not a model instance. The step instantiates a fresh model per call.
	Model             reflect.Type
	NumTrials         int
	MinTrialsObserved int
}

// NewModel instantiates the step's model type with zero-valued configuration.
func (s *GenerationStep) NewModel() (Model, error) {
	t := s.Model
	if t == nil {
		return nil, fmt.Errorf("generation step has no model type")
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	m, ok := reflect.New(t).Interface().(Model)
	if !ok {
		return nil, fmt.Errorf("type %s does not implement core.Model", s.Model)
	}
	return m, nil
}

// GenerationStrategy is an ordered sequence of generation steps.
type GenerationStrategy struct {
	Name  string
	Steps []*GenerationStep
}

// CurrentStep selects the step responsible for the next trial, given how many
// trials have been generated so far.
func (g *GenerationStrategy) CurrentStep(generated int) (*GenerationStep, error) {
	remaining := generated
	for _, step := range g.Steps {
		if step.NumTrials < 0 || remaining < step.NumTrials {
			return step, nil
		}
		remaining -= step.NumTrials
	}
	return nil, fmt.Errorf("generation strategy %q exhausted after %d trials", g.Name, generated)
}

// GenerateArms instantiates the current step's model and asks it for n arms.
func (g *GenerationStrategy) GenerateArms(ctx context.Context, space *SearchSpace, generated, n int) ([]*Arm, error) {
	step, err := g.CurrentStep(generated)
	if err != nil {
		return nil, err
	}
	model, err := step.NewModel()
	if err != nil {
		return nil, err
	}
	return model.GenerateArms(ctx, space, n)
}
