package contestrunner_test

import (
	"math"

	"github.com/scooter-solver/contest/config"
	. "github.com/scooter-solver/contest/contestrunner"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Distance to uniform", func() {
	for _, name := range []string{config.DistanceWasserstein, config.DistanceKL} {
		name := name

		Context("with "+name, func() {
			var distance DistanceFunc

			BeforeEach(func() {
				var err error
				distance, err = DistanceByName(name)
				Ω(err).ShouldNot(HaveOccurred())
			})

			It("is zero for uniform vectors of any length", func() {
				for n := 1; n <= 10; n++ {
					weights := make([]float64, n)
					for i := range weights {
						weights[i] = 7
					}
					Ω(distance(weights)).Should(BeNumerically("~", 0, 1e-12))
				}
			})

			It("is positive for skewed vectors", func() {
				Ω(distance([]float64{1, 7})).Should(BeNumerically(">", 0))
				Ω(distance([]float64{0, 3, 3})).Should(BeNumerically(">", 0))
				Ω(distance([]float64{35, 34, 1, 0})).Should(BeNumerically(">", 0))
			})

			It("ranks more even spreads closer to uniform", func() {
				Ω(distance([]float64{30, 35})).Should(BeNumerically("<", distance([]float64{5, 35})))
			})

			It("puts vectors without mass infinitely far away", func() {
				Ω(math.IsInf(distance([]float64{0, 0}), 1)).Should(BeTrue())
			})
		})
	}

	It("computes the earth mover's distance of a two point split", func() {
		Ω(WassersteinToUniform([]float64{1, 7})).Should(BeNumerically("~", 0.375, 1e-12))
	})

	It("rejects unknown distances", func() {
		_, err := DistanceByName("cosine")
		Ω(err).Should(MatchError(config.ErrInvalidConfig))
	})
})
