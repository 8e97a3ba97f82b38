package scenarios

import "github.com/vovakirdan/horde/internal/config"

const survivalID = "survival"

// Survival is the standard run: the loaded configuration unchanged,
// difficulty ramping with time.
type Survival struct{}

func (Survival) ID() string          { return survivalID }
func (Survival) Title() string       { return "Survival" }
func (Survival) Description() string { return "Outlast the horde as waves grow over time" }

// Configure leaves the configuration as loaded.
func (Survival) Configure(*config.Config) {}
