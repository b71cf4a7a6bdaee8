package contesttypes

import (
	"fmt"
	"math"
)

func (b BidSet) Company() string {
	if len(b) == 0 {
		return ""
	}
	return b[0].Company
}

func (b BidSet) Validate() error {
	if len(b) == 0 {
		return ErrEmptyBidSet
	}

	company := b[0].Company
	for _, bid := range b[1:] {
		if bid.Company != company {
			return fmt.Errorf("%w: %q and %q", ErrMixedCompanies, company, bid.Company)
		}
	}

	seen := make([]bool, len(b)+1)
	for _, bid := range b {
		if bid.Priority < 1 || bid.Priority > len(b) || seen[bid.Priority] {
			return fmt.Errorf("%w: priority %d among %d bids", ErrInvalidPriorities, bid.Priority, len(b))
		}
		seen[bid.Priority] = true

		if math.IsInf(bid.Consideration, 0) || math.IsNaN(bid.Consideration) {
			return fmt.Errorf("%w: %v at priority %d", ErrInvalidConsideration, bid.Consideration, bid.Priority)
		}
	}

	return nil
}

// WithNullBid returns a copy of the bid set with a trailing zero-unit bid at the
// lowest priority, standing for "this company is not allocated".
func (b BidSet) WithNullBid() BidSet {
	out := make(BidSet, len(b), len(b)+1)
	copy(out, b)
	return append(out, Bid{
		Company:       b.Company(),
		Units:         0,
		Consideration: 0,
		Priority:      len(b) + 1,
	})
}

func (b BidSet) Priorities() []int {
	priorities := make([]int, len(b))
	for i, bid := range b {
		priorities[i] = bid.Priority
	}
	return priorities
}

func ValidateBidSets(bidSets []BidSet) error {
	seen := map[string]int{}
	for i, bidSet := range bidSets {
		err := bidSet.Validate()
		if err != nil {
			return fmt.Errorf("participant %d (%q): %w", i, bidSet.Company(), err)
		}

		if j, ok := seen[bidSet.Company()]; ok {
			return fmt.Errorf("participants %d and %d (%q): %w", j, i, bidSet.Company(), ErrDuplicateCompany)
		}
		seen[bidSet.Company()] = i
	}

	return nil
}

func JoinBidSets(bidSets []BidSet) BidSet {
	joint := BidSet{}
	for _, bidSet := range bidSets {
		joint = append(joint, bidSet...)
	}
	return joint
}
