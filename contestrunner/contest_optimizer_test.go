package contestrunner_test

import (
	"math"

	"github.com/scooter-solver/contest/config"
	. "github.com/scooter-solver/contest/contestrunner"
	"github.com/scooter-solver/contest/contesttypes"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("ContestOptimizer", func() {
	var cfg config.ContestConfig
	var optimizer *ContestOptimizer

	BeforeEach(func() {
		cfg = config.DefaultContestConfig()
	})

	JustBeforeEach(func() {
		var err error
		optimizer, err = NewContestOptimizer(logger, cfg)
		Ω(err).ShouldNot(HaveOccurred())
	})

	It("refuses an invalid config", func() {
		cfg.Distance = "cosine"
		_, err := NewContestOptimizer(logger, cfg)
		Ω(err).Should(MatchError(config.ErrInvalidConfig))
	})

	Describe("FilterNumberUnits", func() {
		It("drops scenarios above the capacity", func() {
			scenarios := BuildRows([]int{1, 1, 1, 2, 2}, []int{35, 20, 20, 30, 35}, nil, nil)
			clean := optimizer.FilterNumberUnits(scenarios)
			Ω(clean.ScenarioIDs()).Should(Equal([]int{2}))
			Ω(clean).Should(HaveLen(2))
		})

		It("keeps scenarios exactly at the capacity", func() {
			scenarios := BuildRows([]int{1, 1}, []int{35, 35}, nil, nil)
			Ω(optimizer.FilterNumberUnits(scenarios).ScenarioIDs()).Should(Equal([]int{1}))
		})

		It("returns an empty table when nothing fits", func() {
			scenarios := BuildRows([]int{1, 2}, []int{71, 80}, nil, nil)
			Ω(optimizer.FilterNumberUnits(scenarios)).Should(BeEmpty())
		})

		Context("with a configured capacity", func() {
			BeforeEach(func() {
				cfg.Capacity = 100
			})

			It("uses it", func() {
				scenarios := BuildRows([]int{1, 1, 1, 2, 2}, []int{35, 20, 20, 30, 35}, nil, nil)
				Ω(optimizer.FilterNumberUnits(scenarios).ScenarioIDs()).Should(Equal([]int{1, 2}))
			})
		})
	})

	Describe("OptimizeConsideration", func() {
		It("keeps every scenario tied for the highest value", func() {
			scenarios := BuildRows(
				[]int{1, 1, 1, 2, 2, 3},
				[]int{1, 2, 3, 1, 2, 6},
				[]float64{100, 100, 100, 10, 10, 100},
				nil,
			)
			clean := optimizer.OptimizeConsideration(scenarios)
			Ω(clean.ScenarioIDs()).Should(Equal([]int{1, 3}))
			Ω(clean).Should(HaveLen(4))
		})

		It("treats values equal within the precision as ties", func() {
			scenarios := BuildRows(
				[]int{1, 1, 2},
				[]int{1, 1, 1},
				[]float64{0.1, 0.2, 0.3},
				nil,
			)
			Ω(optimizer.OptimizeConsideration(scenarios).ScenarioIDs()).Should(Equal([]int{1, 2}))
		})

		It("propagates an empty table", func() {
			Ω(optimizer.OptimizeConsideration(contesttypes.ScenarioTable{})).Should(BeEmpty())
		})

		It("keeps a value that overflows to infinity as the best", func() {
			scenarios := BuildRows([]int{1, 2}, []int{35, 35}, []float64{math.MaxFloat64, 2}, nil)
			Ω(optimizer.OptimizeConsideration(scenarios).ScenarioIDs()).Should(Equal([]int{1}))
		})

		It("ties infinite values only with each other", func() {
			scenarios := BuildRows([]int{1, 2, 3}, []int{1, 1, 1}, []float64{math.Inf(1), 2, math.Inf(1)}, nil)
			Ω(optimizer.OptimizeConsideration(scenarios).ScenarioIDs()).Should(Equal([]int{1, 3}))
		})

		It("never keeps a value that is not a number", func() {
			scenarios := BuildRows([]int{1, 2}, []int{1, 1}, []float64{math.NaN(), 2}, nil)
			Ω(optimizer.OptimizeConsideration(scenarios).ScenarioIDs()).Should(Equal([]int{2}))
		})
	})

	Describe("BreakTiePriority", func() {
		It("keeps the scenarios with the most first choices", func() {
			scenarios := BuildRows([]int{1, 1, 2, 2, 3, 3}, nil, nil, []int{1, 1, 1, 2, 3, 4})
			Ω(optimizer.BreakTiePriority(scenarios).ScenarioIDs()).Should(Equal([]int{1}))
		})

		It("keeps every scenario tied on first choices", func() {
			scenarios := BuildRows([]int{1, 1, 2, 2, 2, 3, 3, 3}, nil, nil, []int{1, 1, 1, 2, 1, 3, 4, 4})
			Ω(optimizer.BreakTiePriority(scenarios).ScenarioIDs()).Should(Equal([]int{1, 2}))
		})

		It("leaves a single scenario alone", func() {
			scenarios := BuildRows([]int{4, 4}, nil, nil, []int{2, 3})
			Ω(optimizer.BreakTiePriority(scenarios)).Should(Equal(scenarios))
		})

		It("propagates an empty table", func() {
			Ω(optimizer.BreakTiePriority(contesttypes.ScenarioTable{})).Should(BeEmpty())
		})
	})

	Describe("BreakTieEntropy", func() {
		It("keeps the most evenly spread scenario", func() {
			scenarios := BuildRows([]int{1, 1, 1, 2, 2}, []int{1, 1, 1, 1, 7}, nil, nil)
			Ω(optimizer.BreakTieEntropy(scenarios).ScenarioIDs()).Should(Equal([]int{1}))
		})

		It("does not break a remaining tie", func() {
			scenarios := BuildRows([]int{1, 1, 2, 2}, []int{10, 20, 20, 10}, nil, nil)
			Ω(optimizer.BreakTieEntropy(scenarios).ScenarioIDs()).Should(Equal([]int{1, 2}))
		})

		It("prefers any allocation over none", func() {
			scenarios := BuildRows([]int{1, 1, 2, 2}, []int{0, 0, 0, 9}, nil, nil)
			Ω(optimizer.BreakTieEntropy(scenarios).ScenarioIDs()).Should(Equal([]int{2}))
		})

		It("propagates an empty table", func() {
			Ω(optimizer.BreakTieEntropy(contesttypes.ScenarioTable{})).Should(BeEmpty())
		})

		Context("with the KL divergence", func() {
			BeforeEach(func() {
				cfg.Distance = config.DistanceKL
			})

			It("agrees on the most evenly spread scenario", func() {
				scenarios := BuildRows([]int{1, 1, 1, 2, 2}, []int{1, 1, 1, 1, 7}, nil, nil)
				Ω(optimizer.BreakTieEntropy(scenarios).ScenarioIDs()).Should(Equal([]int{1}))
			})
		})
	})

	Describe("PickLowestScenario", func() {
		It("keeps the lowest scenario id", func() {
			scenarios := BuildRows([]int{5, 5, 3, 3}, []int{10, 20, 20, 10}, nil, nil)
			Ω(optimizer.PickLowestScenario(scenarios).ScenarioIDs()).Should(Equal([]int{3}))
		})
	})

	Describe("Optimize", func() {
		It("returns a single winner", func() {
			scenarios := BuildRows(
				[]int{0, 0, 1, 1, 2, 2, 3, 3},
				[]int{40, 40, 30, 30, 40, 0, 0, 0},
				[]float64{2, 2, 2, 2, 2, 0, 0, 0},
				[]int{1, 1, 1, 2, 1, 3, 3, 3},
			)
			winner := optimizer.Optimize(scenarios)
			Ω(winner.ScenarioIDs()).Should(Equal([]int{1}))
			Ω(winner).Should(HaveLen(2))
		})

		It("settles a tie that survives both tie breakers on the lowest id", func() {
			scenarios := BuildRows(
				[]int{7, 7, 4, 4},
				[]int{10, 20, 20, 10},
				[]float64{1, 1, 1, 1},
				[]int{1, 2, 2, 1},
			)
			Ω(optimizer.Optimize(scenarios).ScenarioIDs()).Should(Equal([]int{4}))
		})

		It("returns an empty table when nothing is admissible", func() {
			scenarios := BuildRows([]int{1, 2}, []int{71, 80}, []float64{1, 1}, nil)
			Ω(optimizer.Optimize(scenarios)).Should(BeEmpty())
		})

		It("crowns a company whose total value overflows", func() {
			scenarios, err := NewProposalCleaner(0).CreateScenarios([]contesttypes.BidSet{
				BuildBidSet("lone", []int{35}, []float64{math.MaxFloat64}),
			})
			Ω(err).ShouldNot(HaveOccurred())

			winner := optimizer.Optimize(scenarios)
			row, ok := winner.ForCompany("lone")
			Ω(ok).Should(BeTrue())
			Ω(row.Units).Should(Equal(35))
		})

		It("returns an empty table when the best outcome allocates nothing", func() {
			scenarios := BuildRows([]int{0, 1}, []int{80, 0}, []float64{1.5, 0}, []int{1, 2})
			Ω(optimizer.Optimize(scenarios)).Should(BeEmpty())
		})
	})
})
