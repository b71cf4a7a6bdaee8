package contestrunner

import (
	"fmt"

	"github.com/scooter-solver/contest/contesttypes"
)

type ProposalCleaner struct {
	maxScenarios int
}

// NewProposalCleaner returns a cleaner that refuses to enumerate more than
// maxScenarios scenarios. Zero means no limit.
func NewProposalCleaner(maxScenarios int) *ProposalCleaner {
	return &ProposalCleaner{
		maxScenarios: maxScenarios,
	}
}

func (c *ProposalCleaner) AddNullProposals(proposals []contesttypes.BidSet) []contesttypes.BidSet {
	augmented := make([]contesttypes.BidSet, len(proposals))
	for i, proposal := range proposals {
		augmented[i] = proposal.WithNullBid()
	}
	return augmented
}

type companyPriority struct {
	company  string
	priority int
}

/*
CreateScenarios enumerates every joint outcome of the contest: the cartesian
product of each company's priorities, once the null proposal has been added.
Scenario ids follow product order with the last participant varying fastest.
Every company appears exactly once in every scenario.
*/
func (c *ProposalCleaner) CreateScenarios(proposals []contesttypes.BidSet) (contesttypes.ScenarioTable, error) {
	err := contesttypes.ValidateBidSets(proposals)
	if err != nil {
		return nil, err
	}

	participants := make([]string, len(proposals))
	for i, proposal := range proposals {
		participants[i] = proposal.Company()
	}

	augmented := c.AddNullProposals(proposals)

	numScenarios, err := c.countScenarios(augmented)
	if err != nil {
		return nil, err
	}

	lookup := map[companyPriority]contesttypes.Bid{}
	for _, proposal := range augmented {
		for _, bid := range proposal {
			lookup[companyPriority{bid.Company, bid.Priority}] = bid
		}
	}

	if len(participants) == 0 {
		return contesttypes.ScenarioTable{}, nil
	}

	scenarios := make(contesttypes.ScenarioTable, 0, numScenarios*len(participants))
	choice := make([]int, len(augmented))
	for scenarioID := 0; scenarioID < numScenarios; scenarioID++ {
		for i, company := range participants {
			priority := augmented[i][choice[i]].Priority
			bid := lookup[companyPriority{company, priority}]
			scenarios = append(scenarios, contesttypes.ScenarioRow{
				ScenarioID:    scenarioID,
				Company:       company,
				Priority:      priority,
				Units:         bid.Units,
				Consideration: bid.Consideration,
			})
		}

		for i := len(choice) - 1; i >= 0; i-- {
			choice[i]++
			if choice[i] < len(augmented[i]) {
				break
			}
			choice[i] = 0
		}
	}

	return scenarios, nil
}

func (c *ProposalCleaner) countScenarios(augmented []contesttypes.BidSet) (int, error) {
	count := 1
	for _, proposal := range augmented {
		if c.maxScenarios > 0 && count > c.maxScenarios/len(proposal) {
			return 0, fmt.Errorf("%w: more than %d scenarios", contesttypes.ErrTooManyScenarios, c.maxScenarios)
		}
		count *= len(proposal)
	}
	return count, nil
}
