// horde is a fixed-step horde survival simulation you can play in the
// terminal, serve over SSH or run headless as a benchmark.
//
// Usage:
//
//	horde list                - List available scenarios
//	horde play <scenario>     - Play a scenario
//	horde menu                - Pick scenarios interactively
//	horde serve               - Start SSH server for remote play
//	horde scores <scenario>   - Show best runs for a scenario
//	horde bench <scenario>    - Run a scenario headless and report throughput
//	horde config              - Print the effective simulation config
//
// Global flags:
//
//	--tps <rate>        - Simulation ticks per second (default: 60)
//	--seed <value>      - RNG seed for reproducible runs
//	--db <path>         - Run history database (default: ~/.horde/runs.db)
//	--config <path>     - Simulation config YAML
//	--difficulty <name> - Difficulty preset: easy, normal, hard, fixed
//	--log-level <name>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/horde/internal/config"
	"github.com/vovakirdan/horde/internal/core"

	// Register the built-in scenarios
	_ "github.com/vovakirdan/horde/internal/scenarios"
)

var (
	// Global flags
	flagTPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "horde",
	Short: "Horde - survive the swarm in your terminal",
	Long: `Horde is a fixed-step horde survival simulation. Enemies arrive in
waves, your weapons fire on their own, and you steer.

Available commands:
  list     - Show all available scenarios
  play     - Play a specific scenario directly
  menu     - Interactive scenario picker
  serve    - Start SSH server for remote play
  scores   - View best runs
  bench    - Run a scenario headless
  config   - Print the effective simulation config

Examples:
  horde list
  horde play survival
  horde play arena --difficulty hard
  horde bench stress --ticks 36000
  horde serve --ssh :2222`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagTPS, "tps", 60, "Simulation ticks per second")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.horde/runs.db", "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to simulation config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig loads the simulation config and applies the difficulty preset.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}

	switch p := config.DifficultyPreset(flagDifficulty); p {
	case "":
	case config.DifficultyEasy, config.DifficultyNormal, config.DifficultyHard, config.DifficultyFixed:
		config.ApplyPreset(&cfg, p)
	default:
		return config.Config{}, fmt.Errorf("unknown difficulty %q", flagDifficulty)
	}
	return cfg, nil
}

// runtimeConfig sizes the viewport from the terminal, falling back to 80x24.
func runtimeConfig() core.RuntimeConfig {
	rt := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		rt.ScreenW = w
		rt.ScreenH = h
	}
	rt.TickRate = flagTPS
	rt.Seed = flagSeed
	return rt
}

// newLogger builds the process logger. Headless commands log to stderr.
func newLogger(prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", flagLogLevel, err)
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	}), nil
}

// newFileLogger builds a logger for full-screen commands, which own the
// terminal. It writes to ~/.horde/horde.log.
func newFileLogger() (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", flagLogLevel, err)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, nil, fmt.Errorf("cannot get home directory: %w", err)
	}
	dir := filepath.Join(home, ".horde")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("cannot create %s: %w", dir, err)
	}
	f, err := os.OpenFile(filepath.Join(dir, "horde.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "horde",
		Level:           level,
	})
	return logger, func() { _ = f.Close() }, nil
}
