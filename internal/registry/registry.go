// Package registry provides a global registry for scenario factories.
// Scenarios register themselves in init() functions, allowing the CLI and
// the platform to discover and start them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/horde/internal/config"
	"github.com/vovakirdan/horde/internal/core"
	"github.com/vovakirdan/horde/internal/sim"
)

// Scenario is a named variation of a simulation run.
// It only shapes the configuration; the simulation itself lives in sim.World.
type Scenario interface {
	// ID returns a unique identifier (e.g., "survival", "stress").
	// Used for CLI commands and run storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Description is a one-line summary shown in menus and `horde list`.
	Description() string

	// Configure adjusts a loaded configuration for this scenario.
	Configure(cfg *config.Config)
}

// Info contains metadata about a registered scenario.
type Info struct {
	ID          string
	Title       string
	Description string
}

// Factory is a function that creates a new instance of a scenario.
type Factory func() Scenario

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]Info)
	mu        sync.RWMutex
)

// Register adds a scenario factory to the registry.
// Typically called from a scenario's init() function.
// Panics if a scenario with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: scenario %q already registered", id))
	}

	factories[id] = f

	s := f()
	infos[id] = Info{ID: id, Title: s.Title(), Description: s.Description()}
}

// List returns information about all registered scenarios, sorted by ID.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a scenario by its ID.
// Returns an error if the ID is not registered.
func Create(id string) (Scenario, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown scenario %q", id)
	}

	return f(), nil
}

// Exists checks if a scenario with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}

// NewWorld applies the scenario to a copy of cfg and builds a world from it.
func NewWorld(id string, cfg config.Config, rt core.RuntimeConfig, opts sim.Options) (*sim.World, error) {
	s, err := Create(id)
	if err != nil {
		return nil, err
	}
	cfg = cfg.Clone()
	s.Configure(&cfg)
	return sim.NewWorld(cfg, rt, opts)
}
