package core

type Environment interface {
	// Reset starts a new episode and returns its first timestep
	Reset() (TimeStep, error)
	// Step advances the episode with the given action
	Step(Action) (TimeStep, error)
}

// Action is produced by an Agent and consumed by an Environment. The runner
// never inspects it.
type Action interface{}

// EnvironmentWrapper decorates an environment while keeping the same
// capability set. logEvery asks for a log record after every episode instead
// of a sparse schedule.
type EnvironmentWrapper func(env Environment, logEvery bool) Environment

type EnvironmentConstructor interface {
	// NewEnvironment creates a new environment with the given instance number.
	NewEnvironment(int) Environment
}
