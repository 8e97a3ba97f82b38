package scenarios

import (
	"testing"

	"github.com/vovakirdan/horde/internal/config"
	"github.com/vovakirdan/horde/internal/core"
	"github.com/vovakirdan/horde/internal/registry"
	"github.com/vovakirdan/horde/internal/sim"
)

func TestScenariosRegistered(t *testing.T) {
	for _, id := range []string{"arena", "stress", "survival"} {
		if !registry.Exists(id) {
			t.Errorf("scenario %q not registered", id)
		}
	}

	list := registry.List()
	if len(list) < 3 {
		t.Fatalf("List() returned %d scenarios, expected at least 3", len(list))
	}
	for i := 1; i < len(list); i++ {
		if list[i-1].ID >= list[i].ID {
			t.Errorf("List() not sorted: %q before %q", list[i-1].ID, list[i].ID)
		}
	}
}

func TestScenariosBuildValidWorlds(t *testing.T) {
	tests := []struct {
		id    string
		ticks int
	}{
		{"survival", 600},
		{"stress", 600},
		{"arena", 600},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			w, err := registry.NewWorld(tt.id, config.Default(), core.RuntimeConfig{TickRate: 60, Seed: 11}, sim.Options{})
			if err != nil {
				t.Fatalf("NewWorld(%q) error = %v", tt.id, err)
			}
			for range tt.ticks {
				w.Step(core.NewInputFrame())
			}
			if w.Wave() == 0 {
				t.Errorf("no waves after %d ticks", tt.ticks)
			}
		})
	}
}

func TestStressConfigure(t *testing.T) {
	cfg := config.Default()
	shared := cfg.Player.Weapons
	Stress{}.Configure(&cfg)

	if len(cfg.Player.Weapons) != len(cfg.Weapons) {
		t.Errorf("equipped %d weapons, expected all %d", len(cfg.Player.Weapons), len(cfg.Weapons))
	}
	if shared[0] != config.Default().Player.Weapons[0] {
		t.Error("Configure mutated the caller's weapon list")
	}
	if cfg.Waves.Difficulty.Enabled {
		t.Error("stress difficulty should be fixed")
	}
}

func TestArenaConfigure(t *testing.T) {
	cfg := config.Default()
	Arena{}.Configure(&cfg)

	if cfg.World.Width >= config.Default().World.Width {
		t.Errorf("arena width = %v, expected smaller than default", cfg.World.Width)
	}
	if cfg.Waves.Difficulty.Progression.Type != "score" {
		t.Errorf("progression = %q, expected score", cfg.Waves.Difficulty.Progression.Type)
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, err := registry.Create("nope"); err == nil {
		t.Error("Create(nope) error = nil, expected error")
	}
	if _, err := registry.NewWorld("nope", config.Default(), core.RuntimeConfig{}, sim.Options{}); err == nil {
		t.Error("NewWorld(nope) error = nil, expected error")
	}
}
