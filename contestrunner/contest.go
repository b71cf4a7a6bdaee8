package contestrunner

import (
	"errors"
	"fmt"
	"sync"

	"code.cloudfoundry.org/lager"
	"github.com/google/uuid"
	"github.com/scooter-solver/contest/config"
	"github.com/scooter-solver/contest/contesttypes"
)

var ErrNegativeParticipants = errors.New("participant counts must be non-negative")

// RivalFactory builds the randomly bidding companies a contest is held against.
type RivalFactory interface {
	NewNeutral() contesttypes.Bidder
	NewAggressive() contesttypes.Bidder
}

type Contest struct {
	logger lager.Logger
	id     string

	participants   []contesttypes.Bidder
	proposals      []contesttypes.BidSet
	jointProposals contesttypes.BidSet

	cleaner   *ProposalCleaner
	optimizer *ContestOptimizer

	lock     sync.Mutex
	optimal  contesttypes.ScenarioTable
	resolved bool
}

// New builds numNeutral neutral rivals, then numAggressive aggressive ones, then
// appends custom when it is not nil, and collects one bid set from each.
func New(
	logger lager.Logger,
	factory RivalFactory,
	numAggressive int,
	numNeutral int,
	custom contesttypes.Bidder,
	cfg config.ContestConfig,
) (*Contest, error) {
	if numAggressive < 0 || numNeutral < 0 {
		return nil, ErrNegativeParticipants
	}

	id := uuid.NewString()
	logger = logger.Session("contest", lager.Data{"contest-id": id})

	optimizer, err := NewContestOptimizer(logger, cfg)
	if err != nil {
		return nil, err
	}

	c := &Contest{
		logger:    logger,
		id:        id,
		cleaner:   NewProposalCleaner(cfg.MaxScenarios),
		optimizer: optimizer,
	}

	c.participants = createParticipants(factory, numAggressive, numNeutral, custom)

	err = c.receiveProposals()
	if err != nil {
		logger.Error("failed-to-receive-proposals", err)
		return nil, err
	}

	return c, nil
}

func createParticipants(factory RivalFactory, numAggressive, numNeutral int, custom contesttypes.Bidder) []contesttypes.Bidder {
	participants := []contesttypes.Bidder{}
	for i := 0; i < numNeutral; i++ {
		participants = append(participants, factory.NewNeutral())
	}
	for i := 0; i < numAggressive; i++ {
		participants = append(participants, factory.NewAggressive())
	}
	if custom != nil {
		participants = append(participants, custom)
	}
	return participants
}

func (c *Contest) receiveProposals() error {
	proposals := make([]contesttypes.BidSet, 0, len(c.participants))
	for i, participant := range c.participants {
		proposal, err := participant.Bid()
		if err != nil {
			return fmt.Errorf("participant %d (%q): %w", i, participant.Name(), err)
		}

		err = proposal.Validate()
		if err != nil {
			return fmt.Errorf("participant %d (%q): %w", i, participant.Name(), err)
		}
		proposals = append(proposals, proposal)
	}

	err := contesttypes.ValidateBidSets(proposals)
	if err != nil {
		return err
	}

	c.proposals = proposals
	c.jointProposals = contesttypes.JoinBidSets(proposals)
	c.logger.Debug("received-proposals", lager.Data{"participants": len(proposals), "bids": len(c.jointProposals)})
	return nil
}

func (c *Contest) ID() string {
	return c.id
}

func (c *Contest) Participants() []contesttypes.Bidder {
	return c.participants
}

func (c *Contest) Proposals() []contesttypes.BidSet {
	return c.proposals
}

func (c *Contest) JointProposals() contesttypes.BidSet {
	return c.jointProposals
}

func (c *Contest) Cleaner() *ProposalCleaner {
	return c.cleaner
}

func (c *Contest) Optimizer() *ContestOptimizer {
	return c.optimizer
}

// GetWinners resolves the contest on first call and returns the cached winning
// scenario afterwards. An empty table means no scenario fits the capacity.
func (c *Contest) GetWinners() (contesttypes.ScenarioTable, error) {
	c.lock.Lock()
	defer c.lock.Unlock()

	if c.resolved {
		return c.optimal, nil
	}

	logger := c.logger.Session("get-winners")

	scenarios, err := c.cleaner.CreateScenarios(c.proposals)
	if err != nil {
		logger.Error("failed-to-create-scenarios", err)
		return nil, err
	}
	logger.Debug("created-scenarios", lager.Data{"rows": len(scenarios)})

	c.optimal = c.optimizer.Optimize(scenarios)
	c.resolved = true

	return c.optimal, nil
}
