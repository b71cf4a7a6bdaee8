package util_test

import (
	"time"

	"code.cloudfoundry.org/clock/fakeclock"
	. "github.com/scooter-solver/contest/util"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Util", func() {
	var fakeClock *fakeclock.FakeClock
	BeforeEach(func() {
		fakeClock = fakeclock.NewFakeClock(time.Unix(1000, 0))
	})

	Describe("NewRand", func() {
		It("is reproducible for a fixed seed", func() {
			a := NewRand(42, fakeClock)
			b := NewRand(42, fakeClock)
			for i := 0; i < 10; i++ {
				Ω(a.IntN(1000)).Should(Equal(b.IntN(1000)))
			}
		})

		It("seeds from the clock when the seed is zero", func() {
			a := NewRand(0, fakeClock)
			b := NewRand(uint64(time.Unix(1000, 0).UnixNano()), fakeClock)
			Ω(a.Uint64()).Should(Equal(b.Uint64()))
		})
	})

	Describe("DeriveSeed", func() {
		It("gives different samples different seeds", func() {
			seen := map[uint64]bool{}
			for i := 0; i < 100; i++ {
				seen[DeriveSeed(7, i)] = true
			}
			Ω(seen).Should(HaveLen(100))
		})
	})

	Describe("RandomIntIn", func() {
		It("stays within the bounds", func() {
			r := NewRand(3, fakeClock)
			for i := 0; i < 200; i++ {
				Ω(RandomIntIn(r, 1, 20)).Should(BeNumerically(">=", 1))
				Ω(RandomIntIn(r, 1, 20)).Should(BeNumerically("<=", 20))
			}
		})
	})
})
