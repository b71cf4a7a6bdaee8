package laboratory

import (
	"code.cloudfoundry.org/clock"
	"code.cloudfoundry.org/lager"
	"github.com/scooter-solver/contest/config"
	"github.com/scooter-solver/contest/simulation"
	"github.com/scooter-solver/contest/strategies"
)

// UtilityEvaluator evaluates bid sets with the independent utility function.
type UtilityEvaluator struct {
	logger lager.Logger
	clock  clock.Clock
	namer  *strategies.Namer
	cfg    config.Config
}

func NewUtilityEvaluator(logger lager.Logger, clock clock.Clock, namer *strategies.Namer, cfg config.Config) *UtilityEvaluator {
	return &UtilityEvaluator{
		logger: logger.Session("evaluator"),
		clock:  clock,
		namer:  namer,
		cfg:    cfg,
	}
}

func (e *UtilityEvaluator) Evaluate(params strategies.CustomParams, samples int) (float64, float64, error) {
	f := simulation.NewIndependentUtilityFunction(e.logger, e.clock, e.namer, params, e.cfg)
	expected, err := f.Evaluate(samples)
	if err != nil {
		return 0, 0, err
	}
	return expected.Mean, expected.StdDev, nil
}
