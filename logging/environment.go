package logging

import (
	"os"

	"github.com/zeu5/rl-experiment/core"
	"gonum.org/v1/gonum/stat"
)

// Environment forwards every call to the wrapped environment and writes a
// Record to its logger when an episode ends. With logEvery unset only the
// episodes on the logarithmic schedule are logged.
type Environment struct {
	env      core.Environment
	logger   Logger
	logEvery bool

	steps         int
	episode       int
	totalReturn   float64
	episodeLen    int
	episodeReturn float64

	returns []float64
}

var _ core.Environment = &Environment{}

func Wrap(env core.Environment, logger Logger, logEvery bool) *Environment {
	return &Environment{
		env:      env,
		logger:   logger,
		logEvery: logEvery,
		returns:  make([]float64, 0),
	}
}

// WrapEnvironment logs to the terminal, it can be used as a
// core.EnvironmentWrapper
func WrapEnvironment(env core.Environment, logEvery bool) core.Environment {
	return Wrap(env, NewTerminalLogger(os.Stdout), logEvery)
}

func (e *Environment) Reset() (core.TimeStep, error) {
	timestep, err := e.env.Reset()
	if err != nil {
		return timestep, err
	}
	return timestep, e.track(timestep)
}

func (e *Environment) Step(a core.Action) (core.TimeStep, error) {
	timestep, err := e.env.Step(a)
	if err != nil {
		return timestep, err
	}
	return timestep, e.track(timestep)
}

// track counts transitions and closes the episode on a terminal timestep
func (e *Environment) track(timestep core.TimeStep) error {
	if !timestep.First() {
		e.steps++
		e.episodeLen++
	}
	e.episodeReturn += timestep.Reward
	e.totalReturn += timestep.Reward

	if !timestep.Last() {
		return nil
	}
	e.episode++
	e.returns = append(e.returns, e.episodeReturn)

	var err error
	if e.logEvery || logarithmicSchedule(e.episode) {
		err = e.logger.Write(e.record())
	}
	e.episodeLen = 0
	e.episodeReturn = 0
	return err
}

func (e *Environment) record() Record {
	return Record{
		Steps:         e.steps,
		Episode:       e.episode,
		TotalReturn:   e.totalReturn,
		EpisodeLen:    e.episodeLen,
		EpisodeReturn: e.episodeReturn,
	}
}

// Summary aggregates the finished episodes seen so far
type Summary struct {
	Episodes    int     `json:"episodes"`
	Steps       int     `json:"steps"`
	TotalReturn float64 `json:"total_return"`
	MeanReturn  float64 `json:"mean_return"`
	StdReturn   float64 `json:"std_return"`
}

func (e *Environment) Summary() Summary {
	s := Summary{
		Episodes:    e.episode,
		Steps:       e.steps,
		TotalReturn: e.totalReturn,
	}
	switch len(e.returns) {
	case 0:
	case 1:
		s.MeanReturn = e.returns[0]
	default:
		s.MeanReturn, s.StdReturn = stat.MeanStdDev(e.returns, nil)
	}
	return s
}
