package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/horde/internal/config"
	"github.com/vovakirdan/horde/internal/core"
)

func TestLoadConfigDifficulty(t *testing.T) {
	defer func(prev string) { flagDifficulty = prev }(flagDifficulty)
	defer func(prev string) { flagConfig = prev }(flagConfig)

	// An empty document keeps every default and skips the user's own config.
	flagConfig = filepath.Join(t.TempDir(), "horde.yaml")
	if err := os.WriteFile(flagConfig, []byte("{}\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		preset  string
		wantErr bool
		enabled bool
	}{
		{"", false, config.Default().Waves.Difficulty.Enabled},
		{"easy", false, true},
		{"hard", false, true},
		{"fixed", false, false},
		{"nightmare", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.preset, func(t *testing.T) {
			flagDifficulty = tt.preset
			cfg, err := loadConfig()
			if (err != nil) != tt.wantErr {
				t.Fatalf("loadConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if cfg.Waves.Difficulty.Enabled != tt.enabled {
				t.Errorf("Difficulty.Enabled = %v, expected %v", cfg.Waves.Difficulty.Enabled, tt.enabled)
			}
		})
	}
}

func TestCircleInput(t *testing.T) {
	tests := []struct {
		tick uint64
		want core.Action
	}{
		{0, core.ActionMoveRight},
		{119, core.ActionMoveRight},
		{120, core.ActionMoveDown},
		{240, core.ActionMoveLeft},
		{360, core.ActionMoveUp},
		{480, core.ActionMoveRight},
	}

	for _, tt := range tests {
		in := circleInput(tt.tick, 60)
		if !in.Has(tt.want) {
			t.Errorf("circleInput(%d) missing %v", tt.tick, tt.want)
		}
	}
}
