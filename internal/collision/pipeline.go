// Package collision resolves every overlap of one simulation tick.
//
// Run rebuilds the spatial grid from the tick's snapshot, then resolves, in
// order: projectile hits, blasts (explosions and doom bursts), enemy contact
// with the player, and pickup attraction/collection. Hits are applied one
// at a time in iteration order and anything flagged Removed is skipped by
// every later check in the same tick.
package collision

import (
	"github.com/vovakirdan/horde/internal/core"
	"github.com/vovakirdan/horde/internal/entity"
	"github.com/vovakirdan/horde/internal/guard"
	"github.com/vovakirdan/horde/internal/spatial"
	"github.com/vovakirdan/horde/internal/status"
)

// Float error from summing dt below which a countdown counts as finished.
const timerSlack = 1e-9

// Cause tells where a damage event came from.
type Cause uint8

const (
	CauseProjectile Cause = iota
	CauseBlast
	CauseContact
)

// String returns the cause name.
func (c Cause) String() string {
	switch c {
	case CauseProjectile:
		return "projectile"
	case CauseBlast:
		return "blast"
	case CauseContact:
		return "contact"
	default:
		return "unknown"
	}
}

// DamageEvent records one resolved hit. Raw is the value as authored,
// Amount what reached health after the shield.
type DamageEvent struct {
	Source core.Handle
	Target core.Handle
	Cause  Cause
	Raw    float64
	Amount float64
	Killed bool
}

// PickupEvent records a collected pickup.
type PickupEvent struct {
	Pickup core.Handle
	Kind   entity.PickupKind
	Value  float64
}

// SpawnKind selects what a SpawnRequest asks for.
type SpawnKind uint8

const (
	SpawnExplosion SpawnKind = iota // Delayed blast
	SpawnSplit                      // Children of a dead enemy
)

// SpawnRequest asks the owner of the pools to create something. Nothing
// spawned this way takes part in the current tick.
type SpawnRequest struct {
	Kind   SpawnKind
	Source core.Handle
	Pos    core.Vec
	Blast  entity.Blast // SpawnExplosion
	Delay  float64      // SpawnExplosion, seconds
	Split  entity.Split // SpawnSplit
}

// DamageFunc applies a guarded, non-negative ev.Amount to target and reports
// whether the target died. It may rewrite ev.Amount to what was actually
// applied. Pipeline.ApplyDamage is the default.
type DamageFunc func(target *entity.Actor, ev *DamageEvent) bool

// SpawnFunc receives explosion and split requests.
type SpawnFunc func(req SpawnRequest)

// Config holds the tuning the pipeline needs.
type Config struct {
	MagnetRadius float64 // Pickups inside this distance start homing
	AttractSpeed float64 // Homing speed, world units per second
	InvulnWindow float64 // Seconds of contact immunity after the player is hit
}

// Input is one tick's snapshot. The slices are owned by the caller; the
// pipeline mutates the records they point to but never retains them.
type Input struct {
	Tick        uint64
	Dt          float64
	Player      *entity.Actor
	Enemies     []*entity.Actor
	Projectiles []*entity.Projectile
	Pickups     []*entity.Pickup
	Blasts      []entity.Blast // Scheduled blasts due this tick

	Damage DamageFunc // nil means ApplyDamage
	Spawn  SpawnFunc  // nil drops explosions and splits
}

// Result reports what the tick's collisions did. Slices are reused by the
// next Run.
type Result struct {
	Damage    []DamageEvent
	Collected []PickupEvent
	Kills     []*entity.Actor // Enemies killed this tick

	PlayerHit  bool
	PlayerDied bool

	Candidates   int // Broad-phase references examined
	NarrowTests  int // Exact overlap tests run
	Dropped      int // Events dropped for a bad magnitude
	StaleSkips   int // References skipped because the target was already removed
	OverCapacity int // Entities the grid refused to index

	Grid spatial.Stats
}

// Pipeline holds the reusable state for resolving collisions.
type Pipeline struct {
	grid   *spatial.Grid
	engine *status.Engine
	v      *guard.Validator
	cfg    Config

	in     *Input
	res    Result
	buf    []spatial.Ref
	blasts []entity.Blast

	// Largest indexed enemy radius; projectile and blast queries are widened by it.
	maxEnemyRadius float64
}

// New creates a pipeline. engine and v may be nil.
func New(grid *spatial.Grid, engine *status.Engine, v *guard.Validator, cfg Config) *Pipeline {
	if grid == nil {
		grid = spatial.NewGrid(spatial.DefaultCellSize, spatial.DefaultMaxCells)
	}
	if engine == nil {
		engine = status.NewEngine(v)
	}
	return &Pipeline{
		grid:   grid,
		engine: engine,
		v:      v,
		cfg:    cfg,
	}
}

// Grid returns the spatial index the pipeline rebuilds.
func (p *Pipeline) Grid() *spatial.Grid {
	return p.grid
}

// Run resolves one tick of collisions. The returned Result is owned by the
// pipeline and overwritten by the next Run.
func (p *Pipeline) Run(in Input) *Result {
	p.in = &in
	p.resetResult()
	p.blasts = append(p.blasts[:0], in.Blasts...)

	p.rebuild()
	p.projectiles()
	p.resolveBlasts()
	p.contact()
	p.pickups()

	p.res.Grid = p.grid.Stats()
	p.in = nil
	return &p.res
}

func (p *Pipeline) resetResult() {
	clear(p.res.Kills)
	p.res = Result{
		Damage:    p.res.Damage[:0],
		Collected: p.res.Collected[:0],
		Kills:     p.res.Kills[:0],
	}
}

// excluded reports whether a record takes no part in this tick.
func (p *Pipeline) excluded(removed bool, born uint64) bool {
	return removed || born == p.in.Tick
}

func (p *Pipeline) rebuild() {
	p.grid.Clear()
	p.maxEnemyRadius = 0

	for i, e := range p.in.Enemies {
		if p.excluded(e.Removed, e.BornTick) {
			continue
		}
		if !p.grid.Insert(spatial.Ref{Kind: spatial.KindEnemy, Index: int32(i)}, e.Pos.X, e.Pos.Y, e.Radius) {
			p.res.OverCapacity++
			continue
		}
		p.maxEnemyRadius = max(p.maxEnemyRadius, e.Radius)
	}
	for i, pr := range p.in.Projectiles {
		if p.excluded(pr.Removed, pr.BornTick) {
			continue
		}
		if !p.grid.Insert(spatial.Ref{Kind: spatial.KindProjectile, Index: int32(i)}, pr.Pos.X, pr.Pos.Y, pr.Radius) {
			p.res.OverCapacity++
		}
	}
}

func (p *Pipeline) projectiles() {
	for _, pr := range p.in.Projectiles {
		if p.excluded(pr.Removed, pr.BornTick) {
			continue
		}

		p.buf = p.grid.QueryKind(spatial.KindEnemy, pr.Pos.X, pr.Pos.Y, pr.Radius+p.maxEnemyRadius, p.buf)
		p.res.Candidates += len(p.buf)

		for _, ref := range p.buf {
			if pr.Removed {
				break
			}
			target := p.in.Enemies[ref.Index]
			if target.Removed {
				p.res.StaleSkips++
				continue
			}
			if pr.HasHit(target.Handle) {
				continue
			}
			p.res.NarrowTests++
			if !pr.Circle().Overlaps(target.Circle()) {
				continue
			}
			p.hit(pr, target)
		}
	}
}

func (p *Pipeline) hit(pr *entity.Projectile, target *entity.Actor) {
	pr.RecordHit(target.Handle)

	// A non-finite magnitude drops this event only; the hit still consumes
	// pierce. A finite negative one is clamped to zero and the payload lands.
	if guard.Finite(pr.Damage) {
		killed := p.damage(target, DamageEvent{
			Source: pr.Handle,
			Target: target.Handle,
			Cause:  CauseProjectile,
			Raw:    pr.Damage,
			Amount: p.v.Damage("projectile.damage", pr.Damage, 0),
		})
		if !killed && pr.OnHit.Status.Valid() {
			p.engine.Apply(target.Handle, pr.OnHit.Status, pr.OnHit.StatusMagnitude, pr.OnHit.StatusDuration)
		}
		p.explode(pr, target.Pos)
	} else {
		p.drop("projectile.damage", pr.Damage)
	}

	if pr.Pierce <= 0 {
		pr.Removed = true
	} else {
		pr.Pierce--
	}
}

func (p *Pipeline) explode(pr *entity.Projectile, at core.Vec) {
	oh := pr.OnHit
	if oh.ExplodeRadius == 0 {
		return
	}
	blast := entity.Blast{Source: pr.Handle, Pos: at, Radius: oh.ExplodeRadius, Damage: oh.ExplodeDamage}
	if oh.ExplodeDelay > 0 && guard.Finite(oh.ExplodeDelay) {
		if p.in.Spawn != nil {
			p.in.Spawn(SpawnRequest{Kind: SpawnExplosion, Source: pr.Handle, Pos: at, Blast: blast, Delay: oh.ExplodeDelay})
		}
		return
	}
	p.blasts = append(p.blasts, blast)
}

// resolveBlasts damages every live enemy overlapping each blast once.
// Blasts appended while resolving (none today) would also be handled.
func (p *Pipeline) resolveBlasts() {
	for i := 0; i < len(p.blasts); i++ {
		b := p.blasts[i]
		if !guard.PositiveFinite(b.Radius) || !guard.Finite(b.Pos.X) || !guard.Finite(b.Pos.Y) {
			p.drop("blast.radius", b.Radius)
			continue
		}
		if !guard.Finite(b.Damage) || b.Damage < 0 {
			p.drop("blast.damage", b.Damage)
			continue
		}

		p.buf = p.grid.QueryKind(spatial.KindEnemy, b.Pos.X, b.Pos.Y, b.Radius+p.maxEnemyRadius, p.buf)
		p.res.Candidates += len(p.buf)
		zone := core.Circle{Center: b.Pos, R: b.Radius}

		for _, ref := range p.buf {
			target := p.in.Enemies[ref.Index]
			if target.Removed {
				p.res.StaleSkips++
				continue
			}
			p.res.NarrowTests++
			if !zone.Overlaps(target.Circle()) {
				continue
			}
			p.damage(target, DamageEvent{
				Source: b.Source,
				Target: target.Handle,
				Cause:  CauseBlast,
				Raw:    b.Damage,
				Amount: b.Damage,
			})
		}
	}
}

func (p *Pipeline) contact() {
	player := p.in.Player
	if player == nil || !player.Alive() {
		return
	}
	if player.Invuln > 0 {
		player.Invuln -= guard.Damage(p.in.Dt, 0)
		if player.Invuln > timerSlack {
			return
		}
		player.Invuln = 0
	}

	body := player.Circle()
	for _, e := range p.in.Enemies {
		if p.excluded(e.Removed, e.BornTick) {
			continue
		}
		p.res.NarrowTests++
		if !body.Overlaps(e.Circle()) {
			continue
		}
		if !guard.Finite(e.ContactDamage) || e.ContactDamage < 0 {
			p.drop("enemy.contact_damage", e.ContactDamage)
			continue
		}

		p.res.PlayerHit = true
		died := p.damage(player, DamageEvent{
			Source: e.Handle,
			Target: player.Handle,
			Cause:  CauseContact,
			Raw:    e.ContactDamage,
			Amount: e.ContactDamage,
		})
		player.Invuln = guard.Damage(p.cfg.InvulnWindow, 0)
		p.res.PlayerDied = died
		// One hit per invulnerability window.
		return
	}
}

func (p *Pipeline) pickups() {
	player := p.in.Player
	if player == nil || !player.Alive() {
		return
	}

	magnet := guard.Damage(p.cfg.MagnetRadius, 0)
	step := guard.Damage(p.cfg.AttractSpeed*p.in.Dt, 0)
	body := player.Circle()

	for _, k := range p.in.Pickups {
		if p.excluded(k.Removed, k.BornTick) {
			continue
		}
		if !k.Attracted && core.DistSq(k.Pos, player.Pos) <= magnet*magnet {
			k.Attracted = true
		}
		if k.Attracted {
			k.Pos = core.MoveToward(k.Pos, player.Pos, step)
		}

		p.res.NarrowTests++
		if !body.Overlaps(k.Circle()) {
			continue
		}
		k.Removed = true
		p.res.Collected = append(p.res.Collected, PickupEvent{Pickup: k.Handle, Kind: k.Kind, Value: k.Value})
	}
}

// damage runs one event through the damage callback and records kills.
func (p *Pipeline) damage(target *entity.Actor, ev DamageEvent) bool {
	apply := p.in.Damage
	if apply == nil {
		apply = p.ApplyDamage
	}
	killed := apply(target, &ev)
	ev.Killed = killed
	p.res.Damage = append(p.res.Damage, ev)

	if killed && target.Faction == entity.FactionEnemy {
		p.res.Kills = append(p.res.Kills, target)
		if target.Split.Count > 0 && p.in.Spawn != nil {
			p.in.Spawn(SpawnRequest{Kind: SpawnSplit, Source: target.Handle, Pos: target.Pos, Split: target.Split})
		}
	}
	return killed
}

// ApplyDamage is the default DamageFunc: the shield absorbs first, the rest
// comes off health, and a target at zero health is flagged Removed.
func (p *Pipeline) ApplyDamage(target *entity.Actor, ev *DamageEvent) bool {
	if target.Removed {
		return false
	}
	ev.Amount = p.engine.Absorb(target.Handle, ev.Amount)
	target.Health = guard.Health(target.Health-ev.Amount, 0)
	if target.Health > 0 {
		return false
	}
	target.Removed = true
	return true
}

func (p *Pipeline) drop(field string, value float64) {
	p.res.Dropped++
	p.v.Reject(field, value)
}
