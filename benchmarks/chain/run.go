package chain

import (
	"fmt"

	"github.com/zeu5/rl-experiment/benchmarks/common"
	"github.com/zeu5/rl-experiment/core"
	"github.com/zeu5/rl-experiment/experiment"
	"github.com/zeu5/rl-experiment/policies"
)

const (
	AgentRandom    = "random"
	AgentQLearning = "qlearning"
)

// PrepareExperiment runs the agent named by flags on a chain built from flags
func PrepareExperiment(flags *common.Flags) (*experiment.ExperimentConstructor, error) {
	var agent core.AgentConstructor
	var name string
	switch flags.Agent {
	case AgentRandom:
		name = "Random"
		agent = policies.NewRandomAgentConstructor(NumActions, flags.Seed)
	case AgentQLearning:
		name = "QLearning"
		agent = policies.NewQLearningAgentConstructor(policies.QLearningParams{
			NumActions: NumActions,
			Alpha:      flags.Alpha,
			Discount:   flags.Discount,
			Epsilon:    flags.Epsilon,
			Key:        StateKey,
		}, flags.Seed)
	default:
		return nil, fmt.Errorf("unknown agent %q", flags.Agent)
	}

	return &experiment.ExperimentConstructor{
		Name: fmt.Sprintf("%s_Chain%d", name, flags.Length),
		Environment: NewEnvironmentConstructor(Config{
			Length:   flags.Length,
			MaxSteps: flags.MaxSteps,
		}),
		Agent: agent,
	}, nil
}
