// Package experiment launches agent/environment runs with terminal logging.
package experiment

import (
	"os"

	"github.com/zeu5/rl-experiment/core"
	"github.com/zeu5/rl-experiment/logging"
)

// Run plays episodes episodes of agent on env. A verbose run also logs
// episode results to the terminal.
func Run(agent core.Agent, env core.Environment, episodes int, verbose bool) error {
	return core.NewRunner(logging.WrapEnvironment).Run(agent, env, episodes, verbose)
}

type Experiment struct {
	Name        string
	Environment core.Environment
	Agent       core.Agent
	// Logger receives episode records on verbose runs. Defaults to a
	// terminal logger on stdout.
	Logger logging.Logger
}

type Result struct {
	Name     string
	Episodes int
	// Summary is only collected on verbose runs
	Summary *logging.Summary
}

func (e *Experiment) Run(episodes int, verbose bool) (*Result, error) {
	var wrapped *logging.Environment
	wrap := func(env core.Environment, logEvery bool) core.Environment {
		if e.Logger == nil {
			e.Logger = logging.NewTerminalLogger(os.Stdout)
		}
		wrapped = logging.Wrap(env, e.Logger, logEvery)
		return wrapped
	}

	if err := core.NewRunner(wrap).Run(e.Agent, e.Environment, episodes, verbose); err != nil {
		return nil, err
	}

	result := &Result{
		Name:     e.Name,
		Episodes: episodes,
	}
	if wrapped != nil {
		summary := wrapped.Summary()
		result.Summary = &summary
	}
	return result, nil
}

// ExperimentConstructor builds a fresh agent and environment for every run
type ExperimentConstructor struct {
	Name        string
	Environment core.EnvironmentConstructor
	Agent       core.AgentConstructor
	Logger      logging.Logger
}

func (p *ExperimentConstructor) NewExperiment(instance int) *Experiment {
	return &Experiment{
		Name:        p.Name,
		Environment: p.Environment.NewEnvironment(instance),
		Agent:       p.Agent.NewAgent(),
		Logger:      p.Logger,
	}
}
