package policies

import (
	"fmt"
	"strconv"

	erand "golang.org/x/exp/rand"

	"github.com/zeu5/rl-experiment/core"
)

// StateKey maps a timestep to the key its values are stored under
type StateKey func(core.TimeStep) string

func ObservationKey(t core.TimeStep) string {
	return fmt.Sprint(t.Observation)
}

type QLearningParams struct {
	NumActions int
	Alpha      float64
	Discount   float64
	Epsilon    float64
	// Key defaults to ObservationKey
	Key StateKey
}

// QLearningAgent is an epsilon greedy tabular Q-learning agent over integer
// actions in [0, NumActions)
type QLearningAgent struct {
	params  QLearningParams
	qTable  *QTable
	actions []string
	rand    *erand.Rand
}

var _ core.Agent = &QLearningAgent{}

func NewQLearningAgent(params QLearningParams, seed uint64) *QLearningAgent {
	if params.Key == nil {
		params.Key = ObservationKey
	}
	actions := make([]string, params.NumActions)
	for i := range actions {
		actions[i] = strconv.Itoa(i)
	}
	rand := erand.New(erand.NewSource(seed))
	return &QLearningAgent{
		params:  params,
		qTable:  NewQTable(rand),
		actions: actions,
		rand:    rand,
	}
}

func (q *QLearningAgent) SelectAction(t core.TimeStep) (core.Action, error) {
	if q.params.NumActions <= 0 {
		return nil, ErrNoActions
	}
	if q.rand.Float64() < q.params.Epsilon {
		return q.rand.Intn(q.params.NumActions), nil
	}
	maxAction, _ := q.qTable.MaxAmong(q.params.Key(t), q.actions, 0)
	action, err := strconv.Atoi(maxAction)
	if err != nil {
		return nil, err
	}
	return action, nil
}

func (q *QLearningAgent) Update(t core.TimeStep, a core.Action, next core.TimeStep) error {
	action, ok := a.(int)
	if !ok {
		return fmt.Errorf("unexpected action type %T", a)
	}
	state := q.params.Key(t)
	actionKey := strconv.Itoa(action)

	// a terminated episode has a zero discount, a truncated one still
	// bootstraps from the state it was cut at
	_, nextVal := q.qTable.MaxAmong(q.params.Key(next), q.actions, 0)
	target := next.Reward + q.params.Discount*next.Discount*nextVal

	curVal := q.qTable.Get(state, actionKey, 0)
	q.qTable.Set(state, actionKey, (1-q.params.Alpha)*curVal+q.params.Alpha*target)
	return nil
}

// States is the number of states with learnt values
func (q *QLearningAgent) States() int {
	return q.qTable.Size()
}

// Value of taking action in the state keyed by state
func (q *QLearningAgent) Value(state string, action int) float64 {
	return q.qTable.Get(state, strconv.Itoa(action), 0)
}

type QLearningAgentConstructor struct {
	params QLearningParams
	seeds  *seedSequence
}

var _ core.AgentConstructor = &QLearningAgentConstructor{}

func NewQLearningAgentConstructor(params QLearningParams, seed uint64) *QLearningAgentConstructor {
	return &QLearningAgentConstructor{
		params: params,
		seeds:  newSeedSequence(seed),
	}
}

func (c *QLearningAgentConstructor) NewAgent() core.Agent {
	return NewQLearningAgent(c.params, c.seeds.Next())
}
