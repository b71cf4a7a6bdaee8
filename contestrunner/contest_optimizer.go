package contestrunner

import (
	"math"
	"sort"

	"code.cloudfoundry.org/lager"
	"github.com/scooter-solver/contest/config"
	"github.com/scooter-solver/contest/contesttypes"
	"github.com/shopspring/decimal"
)

type ContestOptimizer struct {
	logger    lager.Logger
	capacity  int
	distance  DistanceFunc
	tolerance decimal.Decimal
}

func NewContestOptimizer(logger lager.Logger, cfg config.ContestConfig) (*ContestOptimizer, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, err
	}

	distance, err := DistanceByName(cfg.Distance)
	if err != nil {
		return nil, err
	}

	return &ContestOptimizer{
		logger:    logger,
		capacity:  cfg.Capacity,
		distance:  distance,
		tolerance: decimal.New(1, -cfg.ValuePrecision),
	}, nil
}

// FilterNumberUnits keeps the scenarios that allocate no more than the capacity.
func (o *ContestOptimizer) FilterNumberUnits(scenarios contesttypes.ScenarioTable) contesttypes.ScenarioTable {
	admissible := []int{}
	for id, rows := range scenarios.GroupByScenario() {
		if rows.TotalUnits() <= o.capacity {
			admissible = append(admissible, id)
		}
	}

	return scenarios.Keep(admissible...)
}

// OptimizeConsideration keeps every scenario whose total units x consideration
// ties the best one.
func (o *ContestOptimizer) OptimizeConsideration(scenarios contesttypes.ScenarioTable) contesttypes.ScenarioTable {
	totals := map[int]float64{}
	for _, row := range scenarios {
		totals[row.ScenarioID] += float64(row.Units) * row.Consideration
	}

	return scenarios.Keep(o.keepBest(totals, true)...)
}

// BreakTiePriority keeps the scenarios granting the most companies their first
// choice.
func (o *ContestOptimizer) BreakTiePriority(scenarios contesttypes.ScenarioTable) contesttypes.ScenarioTable {
	if scenarios.NumScenarios() == 1 {
		return scenarios
	}

	firstChoices := map[int]float64{}
	for _, row := range scenarios {
		if _, ok := firstChoices[row.ScenarioID]; !ok {
			firstChoices[row.ScenarioID] = 0
		}
		if row.Priority == 1 {
			firstChoices[row.ScenarioID]++
		}
	}

	return scenarios.Keep(o.keepBest(firstChoices, true)...)
}

// BreakTieEntropy keeps the scenarios whose units are spread most evenly among
// the companies. Ties that survive are returned as they are.
func (o *ContestOptimizer) BreakTieEntropy(scenarios contesttypes.ScenarioTable) contesttypes.ScenarioTable {
	if scenarios.NumScenarios() == 1 {
		return scenarios
	}

	distances := map[int]float64{}
	unallocated := []int{}
	for id, rows := range scenarios.GroupByScenario() {
		units := make([]float64, len(rows))
		for i, row := range rows {
			units[i] = float64(row.Units)
		}

		d := o.distance(units)
		if math.IsInf(d, 1) {
			unallocated = append(unallocated, id)
			continue
		}
		distances[id] = d
	}

	if len(distances) == 0 {
		return scenarios.Keep(unallocated...)
	}

	return scenarios.Keep(o.keepBest(distances, false)...)
}

// PickLowestScenario settles a tie left by both tie breakers by keeping the
// lowest scenario id.
func (o *ContestOptimizer) PickLowestScenario(scenarios contesttypes.ScenarioTable) contesttypes.ScenarioTable {
	ids := scenarios.ScenarioIDs()
	if len(ids) <= 1 {
		return scenarios
	}

	o.logger.Info("unresolved-tie", lager.Data{"tied-scenarios": ids, "picked": ids[0]})
	return scenarios.Keep(ids[0])
}

func (o *ContestOptimizer) Optimize(scenarios contesttypes.ScenarioTable) contesttypes.ScenarioTable {
	logger := o.logger.Session("optimize")
	logger.Debug("starting", lager.Data{"scenarios": scenarios.NumScenarios()})

	scenarios = o.FilterNumberUnits(scenarios)
	logger.Debug("filtered-number-units", lager.Data{"scenarios": scenarios.NumScenarios()})
	if len(scenarios) == 0 {
		logger.Info("no-admissible-scenario", lager.Data{"capacity": o.capacity})
		return scenarios
	}

	scenarios = o.OptimizeConsideration(scenarios)
	logger.Debug("optimized-consideration", lager.Data{"scenarios": scenarios.NumScenarios()})

	scenarios = o.BreakTiePriority(scenarios)
	logger.Debug("broke-tie-priority", lager.Data{"scenarios": scenarios.NumScenarios()})

	scenarios = o.BreakTieEntropy(scenarios)
	logger.Debug("broke-tie-entropy", lager.Data{"scenarios": scenarios.NumScenarios()})

	scenarios = o.PickLowestScenario(scenarios)
	if scenarios.TotalUnits() == 0 {
		logger.Info("no-allocation")
		return contesttypes.ScenarioTable{}
	}
	logger.Debug("done", lager.Data{"scenario-ids": scenarios.ScenarioIDs()})

	return scenarios
}

// keepBest returns, in ascending order, the ids whose score is within tolerance
// of the best score. Infinite scores only tie with an equal score and NaN
// scores are never kept.
func (o *ContestOptimizer) keepBest(scores map[int]float64, maximize bool) []int {
	best := math.NaN()
	for _, score := range scores {
		if math.IsNaN(score) {
			continue
		}
		if math.IsNaN(best) || (maximize && score > best) || (!maximize && score < best) {
			best = score
		}
	}

	ids := []int{}
	if math.IsNaN(best) {
		return ids
	}

	bestDecimal := decimal.Zero
	if !math.IsInf(best, 0) {
		bestDecimal = decimal.NewFromFloat(best)
	}

	for id, score := range scores {
		if math.IsNaN(score) {
			continue
		}
		if math.IsInf(best, 0) || math.IsInf(score, 0) {
			if score == best {
				ids = append(ids, id)
			}
			continue
		}
		if decimal.NewFromFloat(score).Sub(bestDecimal).Abs().LessThanOrEqual(o.tolerance) {
			ids = append(ids, id)
		}
	}

	sort.Ints(ids)
	return ids
}
