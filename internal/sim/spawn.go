package sim

import (
	"math"

	"github.com/vovakirdan/horde/internal/collision"
	"github.com/vovakirdan/horde/internal/core"
	"github.com/vovakirdan/horde/internal/entity"
	"github.com/vovakirdan/horde/internal/status"
)

// Children of a split scatter this far from the parent.
const splitScatter = 12

// spawnWave runs the wave director: a batch of weighted archetypes on a ring
// around the camera, scaled by the current difficulty level.
func (w *World) spawnWave() {
	w.wave++
	level := w.Level()
	batch := w.difficulty.Batch(w.cfg.Waves.Batch, level)

	spawned := 0
	for range batch {
		arch := w.pickArchetype(level)
		if arch < 0 {
			break
		}
		pos := w.camera.Pos.Add(unit(w.rng.Angle()).Scale(w.cfg.Waves.RingDistance))
		if w.spawnEnemy(arch, w.bounds().ClampPoint(pos), level) == nil {
			break
		}
		spawned++
	}
	w.logger.Debug("wave", "n", w.wave, "level", level, "spawned", spawned, "enemies", w.enemies.ActiveLen())
}

// pickArchetype draws an enemy index by weight among the archetypes unlocked
// at level. If nothing is unlocked yet the lowest unlock wins.
func (w *World) pickArchetype(level float64) int {
	total := 0.0
	lowest := -1
	for i, def := range w.cfg.Enemies {
		if def.Weight <= 0 {
			continue
		}
		if def.MinLevel <= level {
			total += def.Weight
		}
		if lowest < 0 || def.MinLevel < w.cfg.Enemies[lowest].MinLevel {
			lowest = i
		}
	}
	if total <= 0 {
		return lowest
	}

	r := w.rng.Float64() * total
	last := lowest
	for i, def := range w.cfg.Enemies {
		if def.Weight <= 0 || def.MinLevel > level {
			continue
		}
		last = i
		if r < def.Weight {
			return i
		}
		r -= def.Weight
	}
	return last
}

// spawnGroup places count enemies of one archetype around origin.
func (w *World) spawnGroup(arch, count int, origin core.Vec) {
	if arch < 0 || arch >= len(w.cfg.Enemies) {
		w.v.Reject("event.archetype", float64(arch))
		return
	}
	level := w.Level()
	for i := range count {
		angle := 2 * math.Pi * float64(i) / float64(count)
		pos := origin.Add(unit(angle).Scale(splitScatter))
		if w.spawnEnemy(arch, w.bounds().ClampPoint(pos), level) == nil {
			return
		}
	}
}

func (w *World) split(pos core.Vec, s entity.Split) {
	w.spawnGroup(s.Archetype, s.Count, pos)
}

// spawnEnemy takes an actor from the pool. It returns nil when the enemy cap
// is reached. The new enemy is born this tick and skipped by its collisions.
func (w *World) spawnEnemy(arch int, pos core.Vec, level float64) *entity.Actor {
	if w.enemies.ActiveLen() >= w.cfg.Waves.MaxEnemies {
		return nil
	}
	def := &w.cfg.Enemies[arch]
	health := w.difficulty.Health(def.Health, level)

	e := w.enemies.Get()
	e.Handle = w.handles.Next()
	e.Faction = entity.FactionEnemy
	e.Archetype = arch
	e.Pos = pos
	e.Speed = w.difficulty.Speed(def.Speed, level)
	e.Radius = def.Radius
	e.Health = health
	e.MaxHealth = health
	e.ContactDamage = def.ContactDamage
	e.Value = def.Value
	e.XP = def.XP
	if def.Split.Count > 0 {
		e.Split = entity.Split{Count: def.Split.Count, Archetype: w.cfg.EnemyIndex(def.Split.Into)}
	}
	e.BornTick = w.tick
	w.actors[e.Handle] = e

	if def.Shield > 0 {
		w.engine.Apply(e.Handle, status.Shielded, def.Shield, spawnShieldDuration)
	}
	return e
}

// kill scores a dead enemy and drops its rewards.
func (w *World) kill(e *entity.Actor) {
	w.kills++
	w.score += e.Value
	if e.XP > 0 {
		w.drop(entity.PickupGem, e.Pos, e.XP)
	}
	if w.rng.Float64() < w.cfg.Pickups.CoinChance {
		w.drop(entity.PickupCoin, e.Pos, w.cfg.Pickups.CoinValue)
	}
}

func (w *World) drop(kind entity.PickupKind, pos core.Vec, value float64) {
	k := w.pickups.Get()
	k.Handle = w.handles.Next()
	k.Kind = kind
	k.Pos = pos
	k.Radius = w.cfg.Pickups.Radius
	k.Value = value
	k.Life = w.cfg.Pickups.Lifetime
	k.BornTick = w.tick
}

func (w *World) collect(ev collision.PickupEvent) {
	switch ev.Kind {
	case entity.PickupGem:
		w.xp += ev.Value
	case entity.PickupCoin:
		w.score += int(ev.Value)
	}
}

// fireWeapons counts weapon cooldowns down and fires a volley at the nearest
// enemy whenever one is ready. A ready weapon with no target holds its shot.
func (w *World) fireWeapons() {
	for i := range w.weapons {
		slot := &w.weapons[i]
		slot.cooldown -= w.dt
		if slot.cooldown > timerSlack {
			continue
		}
		slot.cooldown = 0

		target := w.nearestEnemy()
		if target == nil {
			continue
		}
		def := &w.cfg.Weapons[slot.def]
		aim := math.Atan2(target.Pos.Y-w.player.Pos.Y, target.Pos.X-w.player.Pos.X)
		w.volley(slot.def, aim)
		slot.cooldown = def.Cooldown
	}
}

func (w *World) volley(weapon int, aim float64) {
	def := &w.cfg.Weapons[weapon]
	first := aim - def.Spread*float64(def.Count-1)/2
	for n := range def.Count {
		dir := unit(first + def.Spread*float64(n))

		p := w.projectiles.Get()
		p.Handle = w.handles.Next()
		p.Owner = w.player.Handle
		p.Weapon = weapon
		p.Pos = w.player.Pos
		p.Vel = dir.Scale(def.Speed)
		p.Radius = def.Radius
		p.Damage = def.Damage
		p.Pierce = def.Pierce
		p.Life = def.Lifetime
		p.OnHit = entity.OnHit{
			Status:          def.OnHit.Status,
			StatusMagnitude: def.OnHit.Magnitude,
			StatusDuration:  def.OnHit.Duration,
			ExplodeRadius:   def.OnHit.ExplodeRadius,
			ExplodeDamage:   def.OnHit.ExplodeDamage,
			ExplodeDelay:    def.OnHit.ExplodeDelay,
		}
		p.BornTick = w.tick
	}
}

func (w *World) nearestEnemy() *entity.Actor {
	var best *entity.Actor
	bestD := math.Inf(1)
	for _, e := range w.enemies.Active() {
		if e.Removed {
			continue
		}
		if d := core.DistSq(e.Pos, w.player.Pos); d < bestD {
			best, bestD = e, d
		}
	}
	return best
}

func unit(angle float64) core.Vec {
	return core.V(math.Cos(angle), math.Sin(angle))
}
