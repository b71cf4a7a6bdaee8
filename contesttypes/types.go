package contesttypes

import "errors"

var ErrEmptyBidSet = errors.New("bid set has no bids")
var ErrMixedCompanies = errors.New("bid set mixes more than one company")
var ErrDuplicateCompany = errors.New("company submitted more than one bid set")
var ErrMismatchedBidParams = errors.New("units and consideration have different lengths")
var ErrInvalidPriorities = errors.New("priorities must run from 1 to the number of bids")
var ErrInvalidConsideration = errors.New("consideration must be finite")
var ErrTooManyScenarios = errors.New("scenario space exceeds the enumeration limit")

// DefaultCapacity is the fleet-size ceiling: the most units a single scenario may
// allocate across all companies.
const DefaultCapacity = 70

type Bid struct {
	Company       string  `json:"company"`
	Units         int     `json:"units"`
	Consideration float64 `json:"consideration"`
	Priority      int     `json:"priority"`
}

// BidSet is one company's ranked list of bids. Priority 1 is the most preferred.
type BidSet []Bid

// Bidder is anything that can take part in a contest.
type Bidder interface {
	Name() string
	Bid() (BidSet, error)
}

type ScenarioRow struct {
	ScenarioID    int     `json:"scenario_id"`
	Company       string  `json:"company"`
	Priority      int     `json:"priority"`
	Units         int     `json:"units"`
	Consideration float64 `json:"consideration"`
}

// ScenarioTable is the long form of a set of scenarios: one row per
// (scenario, company) pair.
type ScenarioTable []ScenarioRow
