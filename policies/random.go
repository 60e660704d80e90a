package policies

import (
	"errors"
	"time"

	erand "golang.org/x/exp/rand"

	"github.com/zeu5/rl-experiment/core"
)

var (
	ErrNoActions = errors.New("no actions to pick from")
)

// RandomAgent picks an action in [0, numActions) uniformly and does not learn
type RandomAgent struct {
	numActions int
	rand       *erand.Rand
}

var _ core.Agent = &RandomAgent{}

func NewRandomAgent(numActions int, seed uint64) *RandomAgent {
	return &RandomAgent{
		numActions: numActions,
		rand:       erand.New(erand.NewSource(seed)),
	}
}

func (r *RandomAgent) SelectAction(_ core.TimeStep) (core.Action, error) {
	if r.numActions <= 0 {
		return nil, ErrNoActions
	}
	return r.rand.Intn(r.numActions), nil
}

func (r *RandomAgent) Update(_ core.TimeStep, _ core.Action, _ core.TimeStep) error {
	return nil
}

// seedSequence hands out consecutive seeds, starting from the clock when
// the first seed is 0
type seedSequence struct {
	next uint64
}

func newSeedSequence(seed uint64) *seedSequence {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &seedSequence{next: seed}
}

func (s *seedSequence) Next() uint64 {
	seed := s.next
	s.next++
	return seed
}

type RandomAgentConstructor struct {
	numActions int
	seeds      *seedSequence
}

var _ core.AgentConstructor = &RandomAgentConstructor{}

// NewRandomAgentConstructor seeds the i-th agent with seed+i
func NewRandomAgentConstructor(numActions int, seed uint64) *RandomAgentConstructor {
	return &RandomAgentConstructor{
		numActions: numActions,
		seeds:      newSeedSequence(seed),
	}
}

func (r *RandomAgentConstructor) NewAgent() core.Agent {
	return NewRandomAgent(r.numActions, r.seeds.Next())
}
