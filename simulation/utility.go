package simulation

import (
	"errors"
	"math"
	"sync"
	"time"

	"code.cloudfoundry.org/clock"
	"code.cloudfoundry.org/lager"
	"code.cloudfoundry.org/workpool"
	"github.com/GaryBoone/GoStats/stats"
	"github.com/scooter-solver/contest/config"
	"github.com/scooter-solver/contest/contestrunner"
	"github.com/scooter-solver/contest/contesttypes"
	"github.com/scooter-solver/contest/strategies"
	"github.com/scooter-solver/contest/util"
)

var ErrNoUsableSamples = errors.New("every sampled contest was skipped")

// Outcome is what a single sampled contest meant for the custom company.
type Outcome struct {
	Seed uint64

	// Skipped contests had too many scenarios to enumerate and carry no utility.
	Skipped  bool
	Feasible bool
	Won      bool

	Units         int
	Consideration float64
	Allocated     int
	Utility       float64

	Winners contesttypes.ScenarioTable
}

type Batch struct {
	Outcomes []Outcome
	Duration time.Duration
}

// Utilities returns the utility of every sample that was not skipped.
func (b Batch) Utilities() []float64 {
	utilities := []float64{}
	for _, outcome := range b.Outcomes {
		if !outcome.Skipped {
			utilities = append(utilities, outcome.Utility)
		}
	}
	return utilities
}

type ExpectedUtility struct {
	Mean   float64
	StdDev float64
}

// IndependentUtilityFunction scores a custom bid set by the utility it earns
// across randomly drawn contests. Units, market presence and consideration
// contribute independently, added or multiplied together.
type IndependentUtilityFunction struct {
	Rho      float64
	Additive bool
	Params   strategies.CustomParams

	logger lager.Logger
	clock  clock.Clock
	namer  *strategies.Namer
	cfg    config.Config
}

func NewIndependentUtilityFunction(
	logger lager.Logger,
	clock clock.Clock,
	namer *strategies.Namer,
	params strategies.CustomParams,
	cfg config.Config,
) *IndependentUtilityFunction {
	return &IndependentUtilityFunction{
		Rho:      cfg.Sampler.Rho,
		Additive: cfg.Sampler.Additive,
		Params:   params,
		logger:   logger,
		clock:    clock,
		namer:    namer,
		cfg:      cfg,
	}
}

func (f *IndependentUtilityFunction) PartialUnits(u int) float64 {
	return float64(u) / strategies.MaxUnits
}

// PartialMarketPresence rewards sharing the city with few other companies.
func (f *IndependentUtilityFunction) PartialMarketPresence(e int) float64 {
	switch {
	case e <= 2:
		return 2.0
	case e == 3:
		return 1.0
	case e == 4:
		return 0.25
	default:
		return 0
	}
}

// PartialConsideration is logarithmic up to (rho+1)/rho and linear beyond.
func (f *IndependentUtilityFunction) PartialConsideration(c float64) float64 {
	intercept := (f.Rho + 1) / f.Rho
	if c <= intercept {
		return -math.Log(f.Rho * (c - 1))
	}
	return intercept - c
}

func (f *IndependentUtilityFunction) Eval(u, e int, c float64) float64 {
	if f.Additive {
		return f.PartialUnits(u) + f.PartialMarketPresence(e) + f.PartialConsideration(c)
	}
	return f.PartialUnits(u) * f.PartialMarketPresence(e) * f.PartialConsideration(c)
}

// SampleOne runs one contest against freshly drawn rivals.
func (f *IndependentUtilityFunction) SampleOne(seed uint64) (Outcome, error) {
	outcome := Outcome{Seed: seed, Utility: f.cfg.Sampler.DeclineUtility}

	factory := strategies.NewCompanyFactory(f.namer, util.NewRand(seed, f.clock))
	custom := factory.NewCustom(f.Params)

	contest, err := contestrunner.New(f.logger, factory, f.cfg.Rivals.Aggressive, f.cfg.Rivals.Neutral, custom, f.cfg.Contest)
	if err != nil {
		return Outcome{}, err
	}

	winners, err := contest.GetWinners()
	if errors.Is(err, contesttypes.ErrTooManyScenarios) {
		outcome.Skipped = true
		return outcome, nil
	}
	if err != nil {
		return Outcome{}, err
	}

	outcome.Winners = winners
	outcome.Feasible = len(winners) > 0
	outcome.Allocated = winners.NumAllocated()

	row, ok := winners.ForCompany(custom.Name())
	if !ok || row.Units == 0 {
		return outcome, nil
	}

	outcome.Won = true
	outcome.Units = row.Units
	outcome.Consideration = row.Consideration
	outcome.Utility = f.Eval(row.Units, outcome.Allocated, row.Consideration)

	return outcome, nil
}

// Sample runs size contests on a pool of workers. Sample i is seeded from the
// base seed and i, so a fixed base seed reproduces the batch.
func (f *IndependentUtilityFunction) Sample(size int) (Batch, error) {
	logger := f.logger.Session("sample", lager.Data{"size": size, "custom-bids": len(f.Params.Units)})

	base := f.cfg.Sampler.Seed
	if base == 0 {
		base = util.NewRand(0, f.clock).Uint64()
	}

	workPool, err := workpool.NewWorkPool(f.cfg.Sampler.Workers)
	if err != nil {
		return Batch{}, err
	}
	defer workPool.Stop()

	outcomes := make([]Outcome, size)
	errs := make([]error, size)

	startTime := f.clock.Now()
	logger.Info("starting", lager.Data{"seed": base})

	wg := &sync.WaitGroup{}
	wg.Add(size)
	for i := 0; i < size; i++ {
		i := i
		workPool.Submit(func() {
			defer wg.Done()
			outcomes[i], errs[i] = f.SampleOne(util.DeriveSeed(base, i))
		})
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			logger.Error("failed-to-sample", err, lager.Data{"sample": i})
			return Batch{}, err
		}
	}

	batch := Batch{Outcomes: outcomes, Duration: f.clock.Since(startTime)}
	logger.Info("done", lager.Data{"duration": batch.Duration.String(), "used": len(batch.Utilities())})

	return batch, nil
}

// Evaluate estimates the expected utility over size contests.
func (f *IndependentUtilityFunction) Evaluate(size int) (ExpectedUtility, error) {
	batch, err := f.Sample(size)
	if err != nil {
		return ExpectedUtility{}, err
	}

	utilities := batch.Utilities()
	if len(utilities) == 0 {
		return ExpectedUtility{}, ErrNoUsableSamples
	}

	return ExpectedUtility{
		Mean:   stats.StatsMean(utilities),
		StdDev: stats.StatsPopulationStandardDeviation(utilities),
	}, nil
}
