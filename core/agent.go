package core

type Agent interface {
	SelectAction(TimeStep) (Action, error)
	// Update is called with the transition in order: the timestep the action
	// was selected on, the action, and the timestep the environment returned
	Update(TimeStep, Action, TimeStep) error
}

type AgentConstructor interface {
	NewAgent() Agent
}
