package cmd

import (
	"github.com/spf13/pflag"

	"github.com/zeu5/rl-experiment/benchmarks/common"
)

var (
	flags    *common.Flags = common.DefaultFlags()
	savePath string
	debug    bool

	numRuns  int
	episodes int
	verbose  bool
	seed     uint64

	logFormat string

	agent    string
	alpha    float64
	discount float64
	epsilon  float64

	length   int
	maxSteps int
)

func AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&savePath, "save-path", flags.SavePath, "Path to save results")
	fs.BoolVar(&debug, "debug", flags.Debug, "Enable debug logs")

	fs.IntVar(&numRuns, "num-runs", flags.NumRuns, "Number of runs")
	fs.IntVar(&episodes, "episodes", flags.Episodes, "Number of episodes per run")
	fs.BoolVarP(&verbose, "verbose", "v", flags.Verbose, "Log episode results to the terminal")
	fs.Uint64Var(&seed, "seed", flags.Seed, "Seed of the first run, 0 seeds from the clock")
	fs.StringVar(&logFormat, "log-format", flags.LogFormat, "Episode log format of verbose runs: terminal or slog")
}

func AddAgentFlags(fs *pflag.FlagSet) {
	fs.StringVar(&agent, "agent", flags.Agent, "Agent to run: random or qlearning")
	fs.Float64Var(&alpha, "alpha", flags.Alpha, "Learning rate of the qlearning agent")
	fs.Float64Var(&discount, "discount", flags.Discount, "Discount of the qlearning agent")
	fs.Float64Var(&epsilon, "epsilon", flags.Epsilon, "Exploration rate of the qlearning agent")
}

func AddChainFlags(fs *pflag.FlagSet) {
	fs.IntVar(&length, "length", flags.Length, "Number of positions in the chain")
	fs.IntVar(&maxSteps, "max-steps", flags.MaxSteps, "Truncate episodes after this many steps, 0 disables")
}

func UpdateFlags() {
	flags.SavePath = savePath
	flags.Debug = debug

	flags.NumRuns = numRuns
	flags.Episodes = episodes
	flags.Verbose = verbose
	flags.Seed = seed
	flags.LogFormat = logFormat

	flags.Agent = agent
	flags.Alpha = alpha
	flags.Discount = discount
	flags.Epsilon = epsilon

	flags.Length = length
	flags.MaxSteps = maxSteps
}
