// Package entity defines the records the simulation pools and collides.
//
// Records are plain structs owned by pools. They carry a stable Handle and a
// Removed flag; once Removed is set nothing may interact with the record
// again until it is reclaimed and recycled.
package entity

import (
	"github.com/vovakirdan/horde/internal/core"
	"github.com/vovakirdan/horde/internal/status"
)

// Faction tags what side an entity is on.
type Faction uint8

const (
	FactionPlayer Faction = iota
	FactionEnemy
	FactionProjectile
	FactionPickup
)

// String returns the faction name.
func (f Faction) String() string {
	switch f {
	case FactionPlayer:
		return "player"
	case FactionEnemy:
		return "enemy"
	case FactionProjectile:
		return "projectile"
	case FactionPickup:
		return "pickup"
	default:
		return "unknown"
	}
}

// Split spawns children when an enemy dies.
type Split struct {
	Count     int // Number of children
	Archetype int // Enemy table index of the children
}

// Actor is the player or an enemy.
type Actor struct {
	Handle    core.Handle
	Faction   Faction
	Archetype int // Enemy table index; -1 for the player

	Pos    core.Vec
	Vel    core.Vec
	Speed  float64 // World units per second
	Radius float64

	Health    float64
	MaxHealth float64

	ContactDamage float64
	Invuln        float64 // Seconds of contact immunity left (player only)

	Value int     // Score on kill
	XP    float64 // Gem value dropped on kill
	Split Split

	BornTick uint64
	Removed  bool
}

// Circle returns the actor's collision shape.
func (a *Actor) Circle() core.Circle {
	return core.Circle{Center: a.Pos, R: a.Radius}
}

// Alive reports whether the actor can still be interacted with.
func (a *Actor) Alive() bool {
	return !a.Removed && a.Health > 0
}

// Reset zeroes the actor for reuse.
func (a *Actor) Reset() {
	*a = Actor{}
}

// OnHit is the payload a projectile delivers on top of its damage.
type OnHit struct {
	Status          status.Kind
	StatusMagnitude float64
	StatusDuration  float64

	ExplodeRadius float64 // Zero means no explosion
	ExplodeDamage float64
	ExplodeDelay  float64 // Seconds; zero detonates in the same tick
}

// Projectile is a pooled shot fired by the player.
type Projectile struct {
	Handle core.Handle
	Owner  core.Handle
	Weapon int // Weapon table index

	Pos    core.Vec
	Vel    core.Vec
	Radius float64
	Damage float64

	// Pierce is the number of extra targets the projectile passes through.
	// A hit with Pierce == 0 removes it; otherwise Pierce is decremented.
	Pierce int
	Life   float64 // Seconds left before culling
	OnHit  OnHit

	hits []core.Handle

	BornTick uint64
	Removed  bool
}

// Circle returns the projectile's collision shape.
func (p *Projectile) Circle() core.Circle {
	return core.Circle{Center: p.Pos, R: p.Radius}
}

// HasHit reports whether the projectile already struck h.
func (p *Projectile) HasHit(h core.Handle) bool {
	for _, hit := range p.hits {
		if hit == h {
			return true
		}
	}
	return false
}

// RecordHit remembers h so the projectile never strikes it twice.
func (p *Projectile) RecordHit(h core.Handle) {
	p.hits = append(p.hits, h)
}

// Hits returns the number of distinct targets struck.
func (p *Projectile) Hits() int {
	return len(p.hits)
}

// Reset zeroes the projectile for reuse, keeping the hit list's capacity.
func (p *Projectile) Reset() {
	hits := p.hits[:0]
	*p = Projectile{}
	p.hits = hits
}

// PickupKind distinguishes pickup rewards.
type PickupKind uint8

const (
	PickupGem  PickupKind = iota // Experience
	PickupCoin                   // Score
)

// String returns the pickup kind name.
func (k PickupKind) String() string {
	if k == PickupCoin {
		return "coin"
	}
	return "gem"
}

// Pickup is a pooled reward dropped by a dead enemy.
type Pickup struct {
	Handle core.Handle
	Kind   PickupKind

	Pos    core.Vec
	Radius float64
	Value  float64
	Life   float64 // Seconds left before despawning

	Attracted bool // Inside the player's magnet radius at least once

	BornTick uint64
	Removed  bool
}

// Circle returns the pickup's collision shape.
func (p *Pickup) Circle() core.Circle {
	return core.Circle{Center: p.Pos, R: p.Radius}
}

// Reset zeroes the pickup for reuse.
func (p *Pickup) Reset() {
	*p = Pickup{}
}

// Blast is an area of effect damaging every enemy it overlaps once.
// Doom bursts and projectile explosions both resolve as blasts.
type Blast struct {
	Source core.Handle
	Pos    core.Vec
	Radius float64
	Damage float64
}
