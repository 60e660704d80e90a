package chain

import (
	"errors"
	"fmt"
	"strconv"

	"gonum.org/v1/gonum/mat"

	"github.com/zeu5/rl-experiment/core"
)

var (
	ErrInvalidAction = errors.New("invalid action")
	ErrEpisodeOver   = errors.New("episode is over, reset the environment")
)

const (
	ActionLeft = iota
	ActionRight

	NumActions = 2
)

type Config struct {
	// Number of positions, the episode ends when the last one is reached
	Length int
	// Truncates episodes after this many steps, 0 disables the limit
	MaxSteps int
}

// Environment is a chain of positions starting at 0. Moving right onto the
// last position pays 1 and ends the episode, every other step pays 0.
// Observations are one-hot vectors of the position.
type Environment struct {
	config Config

	position int
	steps    int
	done     bool
}

var _ core.Environment = &Environment{}

func NewEnvironment(config Config) *Environment {
	if config.Length < 1 {
		config.Length = 1
	}
	return &Environment{
		config: config,
		done:   true,
	}
}

func (e *Environment) observation() *mat.VecDense {
	obs := mat.NewVecDense(e.config.Length, nil)
	obs.SetVec(e.position, 1)
	return obs
}

func (e *Environment) atGoal() bool {
	return e.position == e.config.Length-1
}

// Reset moves back to position 0. A chain of length 1 starts at its goal and
// the first timestep is already terminal.
func (e *Environment) Reset() (core.TimeStep, error) {
	e.position = 0
	e.steps = 0
	e.done = e.atGoal()
	if e.done {
		return core.Termination(0, e.observation()), nil
	}
	return core.Restart(e.observation()), nil
}

func (e *Environment) Step(a core.Action) (core.TimeStep, error) {
	if e.done {
		return core.TimeStep{}, ErrEpisodeOver
	}
	action, ok := a.(int)
	if !ok || action < 0 || action >= NumActions {
		return core.TimeStep{}, fmt.Errorf("%w: %v", ErrInvalidAction, a)
	}

	e.steps++
	switch action {
	case ActionLeft:
		if e.position > 0 {
			e.position--
		}
	case ActionRight:
		e.position++
	}

	if e.atGoal() {
		e.done = true
		return core.Termination(1, e.observation()), nil
	}
	if e.config.MaxSteps > 0 && e.steps >= e.config.MaxSteps {
		e.done = true
		return core.Truncation(0, e.observation(), 1), nil
	}
	return core.Transition(0, e.observation(), 1), nil
}

// StateKey keys a chain timestep by its position
func StateKey(t core.TimeStep) string {
	obs, ok := t.Observation.(*mat.VecDense)
	if !ok {
		return ""
	}
	for i := 0; i < obs.Len(); i++ {
		if obs.AtVec(i) == 1 {
			return strconv.Itoa(i)
		}
	}
	return ""
}

// Position of the agent on the chain
func (e *Environment) Position() int {
	return e.position
}

type EnvironmentConstructor struct {
	config Config
}

var _ core.EnvironmentConstructor = &EnvironmentConstructor{}

func NewEnvironmentConstructor(config Config) *EnvironmentConstructor {
	return &EnvironmentConstructor{
		config: config,
	}
}

func (c *EnvironmentConstructor) NewEnvironment(_ int) core.Environment {
	return NewEnvironment(c.config)
}
