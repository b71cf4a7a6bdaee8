package contesttypes_test

import (
	"math"

	. "github.com/scooter-solver/contest/contesttypes"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("BidSet", func() {
	var bids BidSet
	BeforeEach(func() {
		bids = BidSet{
			{Company: "lime", Units: 35, Consideration: 2, Priority: 1},
			{Company: "lime", Units: 30, Consideration: 1.5, Priority: 2},
		}
	})

	Describe("Validate", func() {
		It("accepts a single-company bid set", func() {
			Ω(bids.Validate()).Should(Succeed())
		})

		It("rejects an empty bid set", func() {
			Ω(BidSet{}.Validate()).Should(MatchError(ErrEmptyBidSet))
		})

		It("rejects bids from more than one company", func() {
			bids = append(bids, Bid{Company: "bird", Units: 1, Consideration: 1, Priority: 3})
			Ω(bids.Validate()).Should(MatchError(ErrMixedCompanies))
		})

		It("rejects a gap in the priorities", func() {
			bids[1].Priority = 3
			Ω(bids.Validate()).Should(MatchError(ErrInvalidPriorities))
		})

		It("rejects a repeated priority", func() {
			bids[1].Priority = 1
			Ω(bids.Validate()).Should(MatchError(ErrInvalidPriorities))
		})

		It("accepts priorities listed out of order", func() {
			bids[0].Priority, bids[1].Priority = 2, 1
			Ω(bids.Validate()).Should(Succeed())
		})

		It("rejects a consideration that is not finite", func() {
			bids[1].Consideration = math.Inf(1)
			Ω(bids.Validate()).Should(MatchError(ErrInvalidConsideration))

			bids[1].Consideration = math.NaN()
			Ω(bids.Validate()).Should(MatchError(ErrInvalidConsideration))
		})
	})

	Describe("WithNullBid", func() {
		It("appends a zero-unit bid at the lowest priority", func() {
			augmented := bids.WithNullBid()
			Ω(augmented).Should(HaveLen(3))
			Ω(augmented[:2]).Should(Equal(bids))
			Ω(augmented[2]).Should(Equal(Bid{Company: "lime", Units: 0, Consideration: 0, Priority: 3}))
		})

		It("leaves the receiver unchanged", func() {
			bids.WithNullBid()
			Ω(bids).Should(HaveLen(2))
		})
	})

	Describe("Priorities", func() {
		It("returns the priorities in order", func() {
			Ω(bids.Priorities()).Should(Equal([]int{1, 2}))
		})
	})
})

var _ = Describe("ValidateBidSets", func() {
	It("names the offending participant", func() {
		err := ValidateBidSets([]BidSet{
			{{Company: "lime", Units: 1, Priority: 1}},
			{},
		})
		Ω(err).Should(MatchError(ErrEmptyBidSet))
		Ω(err.Error()).Should(ContainSubstring("participant 1"))
	})

	It("rejects duplicate companies", func() {
		err := ValidateBidSets([]BidSet{
			{{Company: "lime", Units: 1, Priority: 1}},
			{{Company: "lime", Units: 2, Priority: 1}},
		})
		Ω(err).Should(MatchError(ErrDuplicateCompany))
	})

	It("concatenates bid sets into a joint view", func() {
		joint := JoinBidSets([]BidSet{
			{{Company: "lime", Units: 1, Priority: 1}},
			{{Company: "bird", Units: 2, Priority: 1}, {Company: "bird", Units: 3, Priority: 2}},
		})
		Ω(joint).Should(HaveLen(3))
		Ω(joint[2].Company).Should(Equal("bird"))
	})
})
