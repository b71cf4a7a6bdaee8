package visualization

import (
	"time"

	"github.com/GaryBoone/GoStats/stats"
	"github.com/scooter-solver/contest/simulation"
)

type Report struct {
	Name     string
	Outcomes []simulation.Outcome
	Duration time.Duration
}

type Stat struct {
	Min    float64
	Max    float64
	Mean   float64
	StdDev float64
	Total  float64
}

func NewStat(data []float64) Stat {
	if len(data) == 0 {
		return Stat{}
	}

	return Stat{
		Min:    stats.StatsMin(data),
		Max:    stats.StatsMax(data),
		Mean:   stats.StatsMean(data),
		StdDev: stats.StatsPopulationStandardDeviation(data),
		Total:  stats.StatsSum(data),
	}
}

func NewReport(name string, batch simulation.Batch) *Report {
	return &Report{
		Name:     name,
		Outcomes: batch.Outcomes,
		Duration: batch.Duration,
	}
}

func (r *Report) NSamples() int {
	return len(r.Outcomes)
}

func (r *Report) NSkipped() int {
	return r.count(func(o simulation.Outcome) bool { return o.Skipped })
}

func (r *Report) NInfeasible() int {
	return r.count(func(o simulation.Outcome) bool { return !o.Skipped && !o.Feasible })
}

func (r *Report) NWon() int {
	return r.count(func(o simulation.Outcome) bool { return o.Won })
}

// WinRate is the fraction of contests that were run in which the custom
// company got units.
func (r *Report) WinRate() float64 {
	used := r.NSamples() - r.NSkipped()
	if used == 0 {
		return 0
	}
	return float64(r.NWon()) / float64(used)
}

func (r *Report) Utilities() []float64 {
	return simulation.Batch{Outcomes: r.Outcomes}.Utilities()
}

func (r *Report) UtilityStats() Stat {
	return NewStat(r.Utilities())
}

func (r *Report) WonUnitsStats() Stat {
	units := []float64{}
	for _, outcome := range r.Outcomes {
		if outcome.Won {
			units = append(units, float64(outcome.Units))
		}
	}
	return NewStat(units)
}

func (r *Report) AllocatedStats() Stat {
	allocated := []float64{}
	for _, outcome := range r.Outcomes {
		if outcome.Feasible {
			allocated = append(allocated, float64(outcome.Allocated))
		}
	}
	return NewStat(allocated)
}

// SlotUnits is the mean number of units the winning scenarios gave each
// participant slot, in participant order.
func (r *Report) SlotUnits() []float64 {
	totals := []float64{}
	n := 0
	for _, outcome := range r.Outcomes {
		if !outcome.Feasible {
			continue
		}
		n++
		for i, row := range outcome.Winners {
			if i >= len(totals) {
				totals = append(totals, 0)
			}
			totals[i] += float64(row.Units)
		}
	}

	for i := range totals {
		totals[i] /= float64(n)
	}
	return totals
}

func (r *Report) SamplesPerSecond() float64 {
	if r.Duration <= 0 {
		return 0
	}
	return float64(r.NSamples()) / r.Duration.Seconds()
}

func (r *Report) count(predicate func(simulation.Outcome) bool) int {
	n := 0
	for _, outcome := range r.Outcomes {
		if predicate(outcome) {
			n++
		}
	}
	return n
}
