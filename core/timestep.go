package core

// StepType marks where a TimeStep sits in an episode
type StepType int

const (
	StepFirst StepType = iota
	StepMid
	StepLast
)

func (s StepType) String() string {
	switch s {
	case StepFirst:
		return "first"
	case StepMid:
		return "mid"
	case StepLast:
		return "last"
	}
	return "unknown"
}

// TimeStep is the observation/reward/termination bundle emitted by an
// environment after a reset or a step. Values are passed by copy and never
// modified once produced.
type TimeStep struct {
	Type        StepType
	Reward      float64
	Discount    float64
	Observation interface{}
}

func (t TimeStep) First() bool {
	return t.Type == StepFirst
}

func (t TimeStep) Mid() bool {
	return t.Type == StepMid
}

// Last reports whether the timestep terminates the episode
func (t TimeStep) Last() bool {
	return t.Type == StepLast
}

// Restart is the first timestep of an episode
func Restart(observation interface{}) TimeStep {
	return TimeStep{
		Type:        StepFirst,
		Observation: observation,
	}
}

func Transition(reward float64, observation interface{}, discount float64) TimeStep {
	return TimeStep{
		Type:        StepMid,
		Reward:      reward,
		Discount:    discount,
		Observation: observation,
	}
}

// Termination ends the episode with a zero discount
func Termination(reward float64, observation interface{}) TimeStep {
	return TimeStep{
		Type:        StepLast,
		Reward:      reward,
		Discount:    0,
		Observation: observation,
	}
}

// Truncation ends the episode but keeps the discount, the episode was cut
// short rather than reaching a terminal state
func Truncation(reward float64, observation interface{}, discount float64) TimeStep {
	return TimeStep{
		Type:        StepLast,
		Reward:      reward,
		Discount:    discount,
		Observation: observation,
	}
}
