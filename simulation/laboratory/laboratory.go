package laboratory

import (
	"errors"
	"fmt"
	"math"

	"github.com/scooter-solver/contest/strategies"
)

var ErrMissingParameter = errors.New("parametrization is missing a parameter")

type ParameterType string

const (
	ParameterTypeInt   ParameterType = "int"
	ParameterTypeFloat ParameterType = "float"
)

const (
	DefaultObjectiveName = "E[u]-indv1"
	DefaultMCSamples     = 100
	DefaultTotalTrials   = 30

	ExpectedUtilityMetric = "expected_utility"

	minConsideration = 1 + 1e-6
)

type RangeParameter struct {
	Name  string
	Type  ParameterType
	Lower float64
	Upper float64
}

// Contains reports whether v is a finite value of the parameter's type within
// its bounds. An infinite bound leaves that side open.
func (p RangeParameter) Contains(v float64) bool {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return false
	}
	if p.Type == ParameterTypeInt && v != math.Trunc(v) {
		return false
	}
	return v >= p.Lower && v <= p.Upper
}

// ParameterConstraint holds when sum(weight * value) <= Bound.
type ParameterConstraint struct {
	Weights map[string]float64
	Bound   float64
}

func (c ParameterConstraint) Satisfied(p map[string]float64) bool {
	total := 0.0
	for name, weight := range c.Weights {
		total += weight * p[name]
	}
	return total <= c.Bound
}

type SearchSpace struct {
	Parameters  []RangeParameter
	Constraints []ParameterConstraint
}

// Satisfies reports whether p gives every parameter an in-range value and meets
// every constraint.
func (s SearchSpace) Satisfies(p map[string]float64) bool {
	for _, parameter := range s.Parameters {
		v, ok := p[parameter.Name]
		if !ok || !parameter.Contains(v) {
			return false
		}
	}
	for _, constraint := range s.Constraints {
		if !constraint.Satisfied(p) {
			return false
		}
	}
	return true
}

// Evaluator estimates the expected utility of a custom bid set.
type Evaluator interface {
	Evaluate(params strategies.CustomParams, samples int) (mean float64, stdDev float64, err error)
}

// ExperimentBuilder describes the search over custom bid sets of N bids. Unit
// counts must be pairwise distinct, which the linear constraints express with
// one binary parameter per pair.
type ExperimentBuilder struct {
	N             int
	Name          string
	MCSamples     int
	ObjectiveName string
	Minimize      bool
	TotalTrials   int
}

func NewExperimentBuilder(n int, name string) *ExperimentBuilder {
	return &ExperimentBuilder{
		N:             n,
		Name:          name,
		MCSamples:     DefaultMCSamples,
		ObjectiveName: DefaultObjectiveName,
		Minimize:      false,
		TotalTrials:   DefaultTotalTrials,
	}
}

func UnitsName(i int) string         { return fmt.Sprintf("u%d", i) }
func ConsiderationName(i int) string { return fmt.Sprintf("c%d", i) }
func DistinctName(i, j int) string   { return fmt.Sprintf("D%d,%d", i, j) }

func (b *ExperimentBuilder) BuildParameters() []RangeParameter {
	parameters := []RangeParameter{}
	for i := 0; i < b.N; i++ {
		parameters = append(parameters, RangeParameter{Name: UnitsName(i), Type: ParameterTypeInt, Lower: 1, Upper: strategies.MaxUnits})
	}
	for i := 0; i < b.N; i++ {
		parameters = append(parameters, RangeParameter{Name: ConsiderationName(i), Type: ParameterTypeFloat, Lower: minConsideration, Upper: math.Inf(1)})
	}
	for i := 0; i < b.N; i++ {
		for j := 0; j < i; j++ {
			parameters = append(parameters, RangeParameter{Name: DistinctName(i, j), Type: ParameterTypeInt, Lower: 0, Upper: 1})
		}
	}
	return parameters
}

// BuildConstraints forces u_i != u_j for every pair. With D = 0 the first
// constraint demands u_i < u_j, with D = 1 the second demands u_i > u_j.
func (b *ExperimentBuilder) BuildConstraints() []ParameterConstraint {
	const m = strategies.MaxUnits

	constraints := []ParameterConstraint{}
	for i := 0; i < b.N; i++ {
		for j := 0; j < i; j++ {
			ui, uj, d := UnitsName(i), UnitsName(j), DistinctName(i, j)
			constraints = append(constraints,
				ParameterConstraint{Weights: map[string]float64{ui: 1, uj: -1, d: -m}, Bound: -1},
				ParameterConstraint{Weights: map[string]float64{ui: -1, uj: 1, d: m}, Bound: m - 1},
			)
		}
	}
	return constraints
}

func (b *ExperimentBuilder) Build() SearchSpace {
	return SearchSpace{
		Parameters:  b.BuildParameters(),
		Constraints: b.BuildConstraints(),
	}
}

// Decode turns a parametrization into the bid set it describes, bid i having
// priority i+1.
func (b *ExperimentBuilder) Decode(p map[string]float64) (strategies.CustomParams, error) {
	params := strategies.CustomParams{
		Units:         make([]int, b.N),
		Consideration: make([]float64, b.N),
	}

	for i := 0; i < b.N; i++ {
		u, ok := p[UnitsName(i)]
		if !ok {
			return strategies.CustomParams{}, fmt.Errorf("%w: %s", ErrMissingParameter, UnitsName(i))
		}
		c, ok := p[ConsiderationName(i)]
		if !ok {
			return strategies.CustomParams{}, fmt.Errorf("%w: %s", ErrMissingParameter, ConsiderationName(i))
		}
		params.Units[i] = int(math.Round(u))
		params.Consideration[i] = c
	}

	return params, nil
}

// Encode is the inverse of Decode, filling in the pairwise order parameters.
func (b *ExperimentBuilder) Encode(params strategies.CustomParams) map[string]float64 {
	p := map[string]float64{}
	for i := 0; i < b.N && i < len(params.Units) && i < len(params.Consideration); i++ {
		p[UnitsName(i)] = float64(params.Units[i])
		p[ConsiderationName(i)] = params.Consideration[i]
	}
	for i := 0; i < b.N; i++ {
		for j := 0; j < i; j++ {
			if p[UnitsName(i)] > p[UnitsName(j)] {
				p[DistinctName(i, j)] = 1
			} else {
				p[DistinctName(i, j)] = 0
			}
		}
	}
	return p
}

// Evaluate decodes p and reports the expected utility as (mean, standard
// deviation) under the expected utility metric.
func (b *ExperimentBuilder) Evaluate(evaluator Evaluator, p map[string]float64) (map[string][2]float64, error) {
	params, err := b.Decode(p)
	if err != nil {
		return nil, err
	}

	mean, stdDev, err := evaluator.Evaluate(params, b.MCSamples)
	if err != nil {
		return nil, err
	}

	return map[string][2]float64{
		ExpectedUtilityMetric: {mean, stdDev},
	}, nil
}
