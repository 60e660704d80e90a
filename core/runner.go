package core

// Runner sequences the interaction between one agent and one environment
// for a fixed number of episodes. It keeps no state between runs.
type Runner struct {
	// Wrap decorates the environment when a run is verbose. Nil leaves the
	// environment as is.
	Wrap EnvironmentWrapper
}

func NewRunner(wrap EnvironmentWrapper) *Runner {
	return &Runner{
		Wrap: wrap,
	}
}

// Run plays episodes episodes of agent on env. The first error returned by
// the environment, the agent or the wrapper aborts the run and is returned
// as is.
//
// An episode only ends when the environment returns a timestep for which
// Last is true, there is no step limit.
func (r *Runner) Run(agent Agent, env Environment, episodes int, verbose bool) error {
	if verbose && r.Wrap != nil {
		env = r.Wrap(env, false)
	}

	for episode := 0; episode < episodes; episode++ {
		if err := runEpisode(agent, env); err != nil {
			return err
		}
	}
	return nil
}

func runEpisode(agent Agent, env Environment) error {
	timestep, err := env.Reset()
	if err != nil {
		return err
	}
	for !timestep.Last() {
		action, err := agent.SelectAction(timestep)
		if err != nil {
			return err
		}
		nextTimestep, err := env.Step(action)
		if err != nil {
			return err
		}
		if err := agent.Update(timestep, action, nextTimestep); err != nil {
			return err
		}
		timestep = nextTimestep
	}
	return nil
}
