package strategies

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/scooter-solver/contest/contesttypes"
	"github.com/scooter-solver/contest/util"
	"gonum.org/v1/gonum/stat/distuv"
)

var ErrInvalidBidCount = errors.New("invalid number of bids")

const (
	MaxBids  = 20
	MaxUnits = 35

	gammaScale           = 0.75
	gammaShape           = 6
	aggressiveGammaShape = 12
)

// UniformCompany bids on distinct unit counts drawn uniformly from 1..34.
//
//	N ~ Uniform{1, ..., 20}
//	u_i drawn without replacement from {1, ..., 34}
//	c_i ~ 1 + Gamma(6, 3/4)
type UniformCompany struct {
	name string
	r    *rand.Rand
}

func NewUniformCompany(name string, r *rand.Rand) *UniformCompany {
	return &UniformCompany{name: name, r: r}
}

func (c *UniformCompany) Name() string {
	return c.name
}

func (c *UniformCompany) Bid() (contesttypes.BidSet, error) {
	return c.BidN(0)
}

// BidN bids n times; n == 0 draws the number of bids.
func (c *UniformCompany) BidN(n int) (contesttypes.BidSet, error) {
	if n == 0 {
		n = util.RandomIntIn(c.r, 1, MaxBids)
	}

	options := unitOptions()
	if n < 0 || n > len(options) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBidCount, n)
	}

	units := make([]int, n)
	for i, idx := range c.r.Perm(len(options))[:n] {
		units[i] = options[idx]
	}

	return buildBidSet(c.name, units, considerations(c.r, gammaShape, n)), nil
}

// NeutralCompany slightly prefers larger allocations.
//
//	N ~ Uniform{1, ..., 20}
//	u_i drawn without replacement from {1, ..., 34}, weight proportional to 35 - u
//	c_i ~ 1 + Gamma(6, 3/4)
type NeutralCompany struct {
	name string
	r    *rand.Rand
}

func NewNeutralCompany(name string, r *rand.Rand) *NeutralCompany {
	return &NeutralCompany{name: name, r: r}
}

func (c *NeutralCompany) Name() string {
	return c.name
}

func (c *NeutralCompany) Bid() (contesttypes.BidSet, error) {
	return c.BidN(0)
}

func (c *NeutralCompany) BidN(n int) (contesttypes.BidSet, error) {
	if n == 0 {
		n = util.RandomIntIn(c.r, 1, MaxBids)
	}

	options := unitOptions()
	if n < 0 || n > len(options) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBidCount, n)
	}

	weights := make([]float64, len(options))
	for i, u := range options {
		weights[i] = float64(MaxUnits - u)
	}

	units := sampleWithoutReplacement(c.r, options, weights, n)
	return buildBidSet(c.name, units, considerations(c.r, gammaShape, n)), nil
}

// AggressiveCompany asks for the largest allocations and pays well for them.
//
//	N ~ Categorical over {1, ..., 20}, weight proportional to (21 - i)^2
//	u_i = 36 - i
//	c_i ~ 1 + Gamma(12, 3/4)
type AggressiveCompany struct {
	name string
	r    *rand.Rand
}

func NewAggressiveCompany(name string, r *rand.Rand) *AggressiveCompany {
	return &AggressiveCompany{name: name, r: r}
}

func (c *AggressiveCompany) Name() string {
	return c.name
}

func (c *AggressiveCompany) Bid() (contesttypes.BidSet, error) {
	return c.BidN(0)
}

func (c *AggressiveCompany) BidN(n int) (contesttypes.BidSet, error) {
	if n == 0 {
		weights := make([]float64, MaxBids)
		for i := range weights {
			w := float64(MaxBids - i)
			weights[i] = w * w
		}
		n = int(distuv.NewCategorical(weights, c.r).Rand()) + 1
	}

	if n < 0 || n > MaxUnits {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBidCount, n)
	}

	units := make([]int, n)
	for i := range units {
		units[i] = MaxUnits - i
	}

	return buildBidSet(c.name, units, considerations(c.r, aggressiveGammaShape, n)), nil
}

type CustomParams struct {
	Units         []int     `json:"units"`
	Consideration []float64 `json:"consideration"`
}

// CustomCompany always submits the same bids, in the given order of preference.
type CustomCompany struct {
	name   string
	params CustomParams
}

func NewCustomCompany(name string, params CustomParams) *CustomCompany {
	return &CustomCompany{name: name, params: params}
}

func (c *CustomCompany) Name() string {
	return c.name
}

func (c *CustomCompany) Params() CustomParams {
	return c.params
}

func (c *CustomCompany) Bid() (contesttypes.BidSet, error) {
	if len(c.params.Units) != len(c.params.Consideration) {
		return nil, fmt.Errorf("%w: %d units, %d considerations", contesttypes.ErrMismatchedBidParams, len(c.params.Units), len(c.params.Consideration))
	}
	if len(c.params.Units) == 0 {
		return nil, contesttypes.ErrEmptyBidSet
	}

	return buildBidSet(c.name, c.params.Units, c.params.Consideration), nil
}

func unitOptions() []int {
	options := make([]int, MaxUnits-1)
	for i := range options {
		options[i] = i + 1
	}
	return options
}

func considerations(r *rand.Rand, shape float64, n int) []float64 {
	gamma := distuv.Gamma{Alpha: shape, Beta: 1 / gammaScale, Src: r}
	out := make([]float64, n)
	for i := range out {
		out[i] = 1 + gamma.Rand()
	}
	return out
}

func sampleWithoutReplacement(r *rand.Rand, options []int, weights []float64, n int) []int {
	if n == 0 {
		return []int{}
	}

	categorical := distuv.NewCategorical(weights, r)
	out := make([]int, n)
	for i := range out {
		idx := int(categorical.Rand())
		out[i] = options[idx]
		if i < n-1 {
			categorical.Reweight(idx, 0)
		}
	}
	return out
}

func buildBidSet(name string, units []int, considerations []float64) contesttypes.BidSet {
	bidSet := make(contesttypes.BidSet, len(units))
	for i := range units {
		bidSet[i] = contesttypes.Bid{
			Company:       name,
			Units:         units[i],
			Consideration: considerations[i],
			Priority:      i + 1,
		}
	}
	return bidSet
}
