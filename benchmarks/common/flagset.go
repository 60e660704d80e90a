package common

import (
	"path"

	"github.com/zeu5/rl-experiment/util"
)

const (
	LogFormatTerminal = "terminal"
	LogFormatSlog     = "slog"
)

type Flags struct {
	SavePath string
	RunFlags
	AgentFlags
	ChainFlags
	Debug bool
}

type RunFlags struct {
	NumRuns  int
	Episodes int
	Verbose  bool
	// Seed of the first run, 0 picks one from the clock
	Seed uint64
	// LogFormat of verbose runs, LogFormatTerminal or LogFormatSlog
	LogFormat string
}

type AgentFlags struct {
	Agent    string
	Alpha    float64
	Discount float64
	Epsilon  float64
}

type ChainFlags struct {
	Length   int
	MaxSteps int
}

func DefaultFlags() *Flags {
	return &Flags{
		SavePath: "results",
		RunFlags: RunFlags{
			NumRuns:   1,
			Episodes:  100,
			Verbose:   false,
			Seed:      0,
			LogFormat: LogFormatTerminal,
		},
		AgentFlags: AgentFlags{
			Agent:    "random",
			Alpha:    0.2,
			Discount: 0.95,
			Epsilon:  0.05,
		},
		ChainFlags: ChainFlags{
			Length:   10,
			MaxSteps: 1000,
		},
		Debug: false,
	}
}

func (f *Flags) ConfigPath() string {
	return path.Join(f.SavePath, "config.json")
}

// Record saves the flags under the save path
func (f *Flags) Record() error {
	return util.SaveJson(f.ConfigPath(), f)
}
