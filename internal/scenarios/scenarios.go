// Package scenarios holds the built-in scenario definitions. Importing it for
// side effects registers every scenario with the registry.
package scenarios

import "github.com/vovakirdan/horde/internal/registry"

func init() {
	registry.Register(survivalID, func() registry.Scenario { return Survival{} })
	registry.Register(stressID, func() registry.Scenario { return Stress{} })
	registry.Register(arenaID, func() registry.Scenario { return Arena{} })
}
