package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/horde/internal/config"
	"github.com/vovakirdan/horde/internal/guard"
	"github.com/vovakirdan/horde/internal/registry"
)

var configCmd = &cobra.Command{
	Use:   "config [scenario]",
	Short: "Print the effective simulation config",
	Long: `Print the simulation config as YAML after loading --config, applying
--difficulty and, if given, the scenario's adjustments. Out-of-range values
are logged on stderr and printed as the value the simulation would use.

Examples:
  horde config > ~/.horde/config.yaml
  horde config stress --difficulty hard`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfig,
}

func runConfig(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if len(args) == 1 {
		scenario, err := registry.Create(args[0])
		if err != nil {
			return err
		}
		cfg = cfg.Clone()
		scenario.Configure(&cfg)
	}

	logger, err := newLogger("horde-config")
	if err != nil {
		return err
	}
	if err := config.Validate(&cfg, guard.NewValidator(logger, nil)); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	data, err := config.Encode(cfg)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}
