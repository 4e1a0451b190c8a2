package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/auction-sim/auction-sim/sim"
	"github.com/auction-sim/auction-sim/sim/trace"
)

var (
	// CLI flags for the simulation run
	seed            int64   // Master seed for the partitioned RNG
	items           int     // Number of auction rounds
	bidderMean      float64 // Mean bidder population per round
	roundDuration   float64 // Round length in time units
	graceTimeout    float64 // First-bid watchdog deadline
	cooldown        float64 // Market pause between rounds
	increment       float64 // Bid increment as a fraction of current price
	confidenceBoost float64 // Patience added after a successful bid
	logLevel        string  // Log verbosity level
	bidLogPath      string  // Append-only bid log destination (CSV)
	scenarioName    string  // Named preset from the scenario file
	scenarioFile    string  // YAML scenario preset file
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "auction-sim",
	Short: "Discrete-event simulator for ascending-price auction strategies",
}

// runCmd executes the simulation using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the auction simulation",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		cfg := sim.DefaultConfig()
		if scenarioName != "" {
			if err := ApplyScenario(scenarioFile, scenarioName, &cfg); err != nil {
				logrus.Fatalf("unable to apply scenario %q: %v", scenarioName, err)
			}
		}

		// Explicit flags override both defaults and scenario presets.
		cfg.Seed = seed
		if cmd.Flags().Changed("items") {
			cfg.Items = items
		}
		if cmd.Flags().Changed("bidders") {
			cfg.Population.BidderMean = bidderMean
		}
		if cmd.Flags().Changed("duration") {
			cfg.Round.Duration = roundDuration
		}
		if cmd.Flags().Changed("grace") {
			cfg.Round.GraceTimeout = graceTimeout
		}
		if cmd.Flags().Changed("cooldown") {
			cfg.Round.Cooldown = cooldown
		}
		if cmd.Flags().Changed("increment") {
			cfg.Round.IncrementFraction = increment
		}
		if cmd.Flags().Changed("confidence-boost") {
			cfg.Strategy.ConfidenceBoost = confidenceBoost
		}

		s, err := sim.NewSimulator(cfg)
		if err != nil {
			logrus.Fatalf("invalid configuration: %v", err)
		}

		logrus.Infof("starting simulation: %d rounds, mean population %.1f, duration %.1f, grace %.1f, seed %d",
			cfg.Items, cfg.Population.BidderMean, cfg.Round.Duration, cfg.Round.GraceTimeout, cfg.Seed)

		s.Run()
		s.Metrics.Print()
		trace.Summarize(s.Trace).Write(os.Stdout)

		if bidLogPath != "" {
			f, err := os.Create(bidLogPath)
			if err != nil {
				logrus.Fatalf("unable to create bid log %s: %v", bidLogPath, err)
			}
			defer f.Close()
			if err := s.Trace.WriteBidLog(f); err != nil {
				logrus.Fatalf("unable to write bid log: %v", err)
			}
			logrus.Infof("bid log written to %s (%d bids)", bidLogPath, len(s.Trace.Bids))
		}

		logrus.Info("Simulation complete.")
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().Int64Var(&seed, "seed", 42, "Master seed for deterministic runs")
	runCmd.Flags().IntVar(&items, "items", 100, "Number of auction rounds to run")
	runCmd.Flags().Float64Var(&bidderMean, "bidders", 20.0, "Mean bidder population per round")
	runCmd.Flags().Float64Var(&roundDuration, "duration", 60.0, "Round duration in time units")
	runCmd.Flags().Float64Var(&graceTimeout, "grace", 30.0, "First-bid grace timeout in time units")
	runCmd.Flags().Float64Var(&cooldown, "cooldown", 5.0, "Pause between rounds in time units")
	runCmd.Flags().Float64Var(&increment, "increment", 0.02, "Bid increment as a fraction of current price")
	runCmd.Flags().Float64Var(&confidenceBoost, "confidence-boost", 0.0, "Patience gained after a successful bid (0 disables)")
	runCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().StringVar(&bidLogPath, "bid-log", "", "Write the append-only bid log (CSV) to this path")
	runCmd.Flags().StringVar(&scenarioName, "scenario", "", "Named scenario preset to load")
	runCmd.Flags().StringVar(&scenarioFile, "scenario-file", "scenarios.yaml", "YAML file holding scenario presets")

	rootCmd.AddCommand(runCmd)
}
