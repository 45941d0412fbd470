package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/bradleyombachi/rrsim/sim"
	"github.com/bradleyombachi/rrsim/workload"
)

var ErrNoWorkload = errors.New("no workload: pass a CSV path or URL, or set source or processes in --config")

// runFlags mirrors the flags of the run command.
type runFlags struct {
	Quantum      int64
	MaxSeqLen    int
	LogLevel     string
	ConfigPath   string
	SortArrivals bool
}

// runOptions is the fully resolved input of one simulation.
type runOptions struct {
	Config       sim.Config
	LogLevel     string
	Source       string
	SortArrivals bool
	Processes    []sim.Process
}

var flags runFlags

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "rrsim",
	Short: "Discrete-event simulator of Round-Robin CPU scheduling",
}

// runCmd simulates a workload using parameters from CLI flags and an optional config file
var runCmd = &cobra.Command{
	Use:          "run [workload.csv | url]",
	Short:        "Run the Round-Robin simulation",
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := resolveOptions(flags, cmd.Flags().Changed, args)
		if err != nil {
			return err
		}

		// Set up logging
		level, err := logrus.ParseLevel(opts.LogLevel)
		if err != nil {
			return fmt.Errorf("invalid log level %q", opts.LogLevel)
		}
		logrus.SetLevel(level)

		return runSimulation(cmd.Context(), cmd.OutOrStdout(), opts)
	},
}

// resolveOptions merges flag values with the config file: an explicitly set flag wins over
// the file, the file wins over flag defaults. A positional source wins over both.
func resolveOptions(f runFlags, changed func(name string) bool, args []string) (runOptions, error) {
	opts := runOptions{
		Config:       sim.Config{Quantum: f.Quantum, MaxSeqLen: f.MaxSeqLen},
		LogLevel:     f.LogLevel,
		SortArrivals: f.SortArrivals,
	}
	if f.ConfigPath != "" {
		cfg, err := LoadRunConfig(f.ConfigPath)
		if err != nil {
			return runOptions{}, err
		}
		if cfg.Quantum != nil && !changed("quantum") {
			opts.Config.Quantum = *cfg.Quantum
		}
		if cfg.MaxSeqLen != nil && !changed("max-seq-len") {
			opts.Config.MaxSeqLen = *cfg.MaxSeqLen
		}
		if cfg.LogLevel != "" && !changed("log") {
			opts.LogLevel = cfg.LogLevel
		}
		if cfg.SortArrivals != nil && !changed("sort-arrivals") {
			opts.SortArrivals = *cfg.SortArrivals
		}
		opts.Source = cfg.Source
		opts.Processes = cfg.SimProcesses()
	}
	if len(args) == 1 {
		opts.Source = args[0]
		opts.Processes = nil
	}
	if opts.Source == "" && len(opts.Processes) == 0 {
		return runOptions{}, ErrNoWorkload
	}
	return opts, nil
}

// runSimulation loads the workload and writes the Round-Robin report to w.
func runSimulation(ctx context.Context, w io.Writer, opts runOptions) error {
	processes := opts.Processes
	if opts.Source != "" {
		loaded, err := workload.Load(ctx, opts.Source)
		if err != nil {
			return err
		}
		processes = loaded
	}
	if opts.SortArrivals {
		sim.SortByArrival(processes)
	}

	logrus.Infof("Starting simulation of %d processes, quantum=%d, max-seq-len=%d",
		len(processes), opts.Config.Quantum, opts.Config.MaxSeqLen)
	if err := RRSchedule(w, "Round-robin", opts.Config, processes); err != nil {
		return fmt.Errorf("simulating: %w", err)
	}
	logrus.Info("Simulation complete.")
	return nil
}

func init() {
	runCmd.Flags().Int64Var(&flags.Quantum, "quantum", 2, "Time quantum given to a process before it is preempted")
	runCmd.Flags().IntVar(&flags.MaxSeqLen, "max-seq-len", 100, "Maximum number of execution sequence entries to report")
	runCmd.Flags().StringVar(&flags.LogLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().StringVar(&flags.ConfigPath, "config", "", "Path to a YAML run configuration")
	runCmd.Flags().BoolVar(&flags.SortArrivals, "sort-arrivals", false, "Stable-sort processes by arrival time before simulating")

	rootCmd.AddCommand(runCmd)
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
