package sim

import (
	"fmt"
	"math"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/horde/internal/core"
	"github.com/vovakirdan/horde/internal/entity"
)

// ActorState is the snapshot of one player or enemy.
type ActorState struct {
	Handle    core.Handle `msgpack:"h"`
	Archetype int         `msgpack:"a"`
	X         float64     `msgpack:"x"`
	Y         float64     `msgpack:"y"`
	Radius    float64     `msgpack:"r"`
	Health    float64     `msgpack:"hp"`
	MaxHealth float64     `msgpack:"mhp"`
}

// ProjectileState is the snapshot of one projectile.
type ProjectileState struct {
	Handle core.Handle `msgpack:"h"`
	Weapon int         `msgpack:"w"`
	X      float64     `msgpack:"x"`
	Y      float64     `msgpack:"y"`
	VX     float64     `msgpack:"vx"`
	VY     float64     `msgpack:"vy"`
	Pierce int         `msgpack:"p"`
}

// PickupState is the snapshot of one pickup.
type PickupState struct {
	Handle core.Handle       `msgpack:"h"`
	Kind   entity.PickupKind `msgpack:"k"`
	X      float64           `msgpack:"x"`
	Y      float64           `msgpack:"y"`
	Value  float64           `msgpack:"v"`
}

// Snapshot is a read-only copy of the world at the end of a tick.
// Entities appear in pool acquisition order.
type Snapshot struct {
	Tick     uint64  `msgpack:"t"`
	Seed     int64   `msgpack:"seed"`
	Score    int     `msgpack:"score"`
	Kills    int     `msgpack:"kills"`
	Wave     int     `msgpack:"wave"`
	XP       float64 `msgpack:"xp"`
	GameOver bool    `msgpack:"over"`

	Player      ActorState        `msgpack:"player"`
	Enemies     []ActorState      `msgpack:"enemies"`
	Projectiles []ProjectileState `msgpack:"projectiles"`
	Pickups     []PickupState     `msgpack:"pickups"`

	Faults core.Faults `msgpack:"faults"`
}

func actorState(a *entity.Actor) ActorState {
	return ActorState{
		Handle:    a.Handle,
		Archetype: a.Archetype,
		X:         a.Pos.X,
		Y:         a.Pos.Y,
		Radius:    a.Radius,
		Health:    a.Health,
		MaxHealth: a.MaxHealth,
	}
}

// Snapshot copies the current world state. Removed entities are omitted.
func (w *World) Snapshot() Snapshot {
	s := Snapshot{
		Tick:     w.tick,
		Seed:     w.rt.Seed,
		Score:    w.score,
		Kills:    w.kills,
		Wave:     w.wave,
		XP:       w.xp,
		GameOver: w.over,
		Player:   actorState(&w.player),
		Faults:   w.faults,
	}

	s.Enemies = make([]ActorState, 0, w.enemies.ActiveLen())
	for _, e := range w.enemies.Active() {
		if !e.Removed {
			s.Enemies = append(s.Enemies, actorState(e))
		}
	}
	s.Projectiles = make([]ProjectileState, 0, w.projectiles.ActiveLen())
	for _, p := range w.projectiles.Active() {
		if !p.Removed {
			s.Projectiles = append(s.Projectiles, ProjectileState{
				Handle: p.Handle,
				Weapon: p.Weapon,
				X:      p.Pos.X,
				Y:      p.Pos.Y,
				VX:     p.Vel.X,
				VY:     p.Vel.Y,
				Pierce: p.Pierce,
			})
		}
	}
	s.Pickups = make([]PickupState, 0, w.pickups.ActiveLen())
	for _, k := range w.pickups.Active() {
		if !k.Removed {
			s.Pickups = append(s.Pickups, PickupState{
				Handle: k.Handle,
				Kind:   k.Kind,
				X:      k.Pos.X,
				Y:      k.Pos.Y,
				Value:  k.Value,
			})
		}
	}
	return s
}

// Encode serializes the snapshot with msgpack.
func (s *Snapshot) Encode() ([]byte, error) {
	data, err := msgpack.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("sim: cannot encode snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot parses a snapshot produced by Encode.
func DecodeSnapshot(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := msgpack.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("sim: cannot decode snapshot: %w", err)
	}
	return s, nil
}

// Hash folds the gameplay state into a single value. Two runs from the same
// seed and input stream produce the same hash at every tick. Fault counts are
// not part of the hash.
func (s *Snapshot) Hash() uint64 {
	h := uint64(17)
	mix := func(v uint64) {
		h = h*31 + v
	}
	mixF := func(f float64) {
		mix(math.Float64bits(f))
	}
	mixActor := func(a ActorState) {
		mix(uint64(a.Handle))
		mix(uint64(a.Archetype)) //#nosec G115 -- bit pattern only
		mixF(a.X)
		mixF(a.Y)
		mixF(a.Health)
	}

	mix(s.Tick)
	mix(uint64(s.Score)) //#nosec G115 -- bit pattern only
	mix(uint64(s.Kills)) //#nosec G115 -- bit pattern only
	mix(uint64(s.Wave))  //#nosec G115 -- bit pattern only
	mixF(s.XP)
	mixActor(s.Player)
	for _, e := range s.Enemies {
		mixActor(e)
	}
	for _, p := range s.Projectiles {
		mix(uint64(p.Handle))
		mixF(p.X)
		mixF(p.Y)
		mix(uint64(p.Pierce)) //#nosec G115 -- bit pattern only
	}
	for _, k := range s.Pickups {
		mix(uint64(k.Handle))
		mix(uint64(k.Kind))
		mixF(k.X)
		mixF(k.Y)
	}
	return h
}
