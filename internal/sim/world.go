// Package sim is the fixed-timestep simulation scheduler.
//
// A World owns every pool, the status engine, the collision pipeline and the
// countdown list of delayed events, and advances all of them by exactly one
// fixed quantum per Step. Nothing inside Step blocks, returns an error or
// reaches for global state; non-fatal problems are counted in core.Faults.
package sim

import (
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/horde/internal/collision"
	"github.com/vovakirdan/horde/internal/config"
	"github.com/vovakirdan/horde/internal/core"
	"github.com/vovakirdan/horde/internal/entity"
	"github.com/vovakirdan/horde/internal/guard"
	"github.com/vovakirdan/horde/internal/pool"
	"github.com/vovakirdan/horde/internal/spatial"
	"github.com/vovakirdan/horde/internal/status"
)

const (
	// Float error from summing dt below which a countdown counts as finished.
	timerSlack = 1e-9

	// Spawn shields last for the enemy's lifetime in practice.
	spawnShieldDuration = 3600

	// First wave arrives this many seconds into a run, or sooner if the
	// configured interval is shorter.
	firstWaveDelay = 1.0
)

// Options configures a World beyond its content config.
type Options struct {
	Logger *log.Logger // nil discards
}

// TickStats describes the work done by the last tick.
type TickStats struct {
	Tick        uint64
	Enemies     int
	Projectiles int
	Pickups     int
	Candidates  int
	NarrowTests int
	Dropped     int
	StaleSkips  int
	Hits        int
	Kills       int
	Grid        spatial.Stats
}

type weaponSlot struct {
	def      int
	cooldown float64
}

// World is one simulation run. It is not safe for concurrent use; the frame
// driver owns it.
type World struct {
	cfg    config.Config
	rt     core.RuntimeConfig
	dt     float64
	logger *log.Logger
	v      *guard.Validator
	faults core.Faults

	rng     *RNG
	handles core.HandleSource
	tick    uint64

	player      entity.Actor
	enemies     *pool.Pool[entity.Actor]
	projectiles *pool.Pool[entity.Projectile]
	pickups     *pool.Pool[entity.Pickup]
	actors      map[core.Handle]*entity.Actor

	engine     *status.Engine
	pipeline   *collision.Pipeline
	difficulty config.Ramp
	events     countdown
	weapons    []weaponSlot
	camera     Camera

	edges  core.EdgeSampler
	paused bool
	over   bool

	score int
	kills int
	xp    float64
	wave  int

	// Per-tick scratch, reused across ticks.
	enemySnap []*entity.Actor
	projSnap  []*entity.Projectile
	pickSnap  []*entity.Pickup
	blasts    []entity.Blast

	last TickStats
}

// NewWorld validates cfg and builds a world ready to Step.
// rt.TickRate overrides cfg.Tick.Rate when positive.
func NewWorld(cfg config.Config, rt core.RuntimeConfig, opts Options) (*World, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	w := &World{
		cfg:    cfg.Clone(),
		logger: logger,
		actors: make(map[core.Handle]*entity.Actor),
	}
	w.v = guard.NewValidator(logger, &w.faults)
	if err := config.Validate(&w.cfg, w.v); err != nil {
		return nil, fmt.Errorf("sim: invalid config: %w", err)
	}

	if rt.TickRate <= 0 {
		rt.TickRate = w.cfg.Tick.Rate
	}
	w.rt = rt
	w.dt = 1.0 / float64(rt.TickRate)

	capacity := w.cfg.Waves.MaxEnemies
	w.enemies = pool.New[entity.Actor](nil, capacity/4)
	w.enemies.OnRelease = (*entity.Actor).Reset
	w.projectiles = pool.New[entity.Projectile](nil, 64)
	w.projectiles.OnRelease = (*entity.Projectile).Reset
	w.pickups = pool.New[entity.Pickup](nil, capacity/4)
	w.pickups.OnRelease = (*entity.Pickup).Reset

	w.engine = status.NewEngine(w.v)
	w.pipeline = collision.New(
		spatial.NewGrid(w.cfg.World.CellSize, w.cfg.World.MaxQueryCells),
		w.engine,
		w.v,
		collision.Config{
			MagnetRadius: w.cfg.Pickups.MagnetRadius,
			AttractSpeed: w.cfg.Pickups.AttractSpeed,
			InvulnWindow: w.cfg.Player.InvulnWindow,
		},
	)
	w.difficulty = w.cfg.Waves.Difficulty.Ramp()

	w.Reset()
	return w, nil
}

// Reset starts the run over from the seed. Counted faults are kept.
func (w *World) Reset() {
	w.enemies.ReleaseAll()
	w.projectiles.ReleaseAll()
	w.pickups.ReleaseAll()
	clear(w.actors)
	w.engine.Reset()
	w.events.reset()
	w.handles.Reset()
	w.edges.Reset()

	w.rng = NewRNG(w.rt.Seed)
	w.tick = 0
	w.paused = false
	w.over = false
	w.score, w.kills, w.xp, w.wave = 0, 0, 0, 0
	w.blasts = w.blasts[:0]
	w.last = TickStats{}

	center := core.V(w.cfg.World.Width/2, w.cfg.World.Height/2)
	w.player = entity.Actor{
		Handle:    w.handles.Next(),
		Faction:   entity.FactionPlayer,
		Archetype: -1,
		Pos:       center,
		Speed:     w.cfg.Player.Speed,
		Radius:    w.cfg.Player.Radius,
		Health:    w.cfg.Player.Health,
		MaxHealth: w.cfg.Player.Health,
	}
	w.actors[w.player.Handle] = &w.player
	w.camera = Camera{Pos: center}

	w.weapons = w.weapons[:0]
	for _, name := range w.cfg.Player.Weapons {
		w.weapons = append(w.weapons, weaponSlot{def: w.cfg.WeaponIndex(name)})
	}

	w.events.schedule(math.Min(firstWaveDelay, w.cfg.Waves.Interval), Event{Kind: EventWave})
}

// Restart resets the world with a new seed.
func (w *World) Restart(seed int64) {
	w.rt.Seed = seed
	w.Reset()
}

// Step advances the simulation by one fixed tick:
// sample input edges, integrate movement, tick status effects, run spawn
// and weapon cadence, resolve collisions, reclaim removed entities, then
// move the camera.
func (w *World) Step(in core.InputFrame) {
	edges := w.edges.Sample(in)
	if w.over {
		if edges.Pressed.Has(core.ActionRestart) {
			w.Reset()
		}
		return
	}
	if edges.Pressed.Has(core.ActionPause) {
		w.paused = !w.paused
	}
	if w.paused {
		return
	}

	w.tick++
	w.integrate(edges.Held)
	w.tickStatus()
	w.cadence()
	w.collide()
	w.reclaim()
	w.camera.Follow(w.player.Pos, w.cfg.World.CameraLerp)
}

func (w *World) bounds() core.Rect {
	return core.Rect{W: w.cfg.World.Width, H: w.cfg.World.Height}
}

func (w *World) integrate(held core.InputFrame) {
	bounds := w.bounds()
	dt := w.dt

	p := &w.player
	p.Vel = held.Direction().Scale(p.Speed * w.engine.MoveFactor(p.Handle))
	p.Pos = bounds.ClampPoint(p.Pos.Add(p.Vel.Scale(dt)))

	for _, e := range w.enemies.Active() {
		if e.Removed {
			continue
		}
		toward := p.Pos.Sub(e.Pos).Normalize()
		e.Vel = toward.Scale(e.Speed * w.engine.MoveFactor(e.Handle))
		e.Pos = e.Pos.Add(e.Vel.Scale(dt))
	}

	for _, pr := range w.projectiles.Active() {
		if pr.Removed {
			continue
		}
		pr.Pos = pr.Pos.Add(pr.Vel.Scale(dt))
		pr.Life -= dt
		if pr.Life <= timerSlack || !bounds.Contains(pr.Pos) {
			pr.Removed = true
		}
	}

	for _, k := range w.pickups.Active() {
		if k.Removed {
			continue
		}
		k.Life -= dt
		if k.Life <= timerSlack {
			k.Removed = true
		}
	}
}

func (w *World) tickStatus() {
	for _, ev := range w.engine.Tick(w.dt) {
		a := w.actors[ev.Actor]
		if a == nil || a.Removed {
			w.faults.Add(core.FaultStaleReference, 1)
			continue
		}

		switch ev.Type {
		case status.EventPoisonTick:
			w.statusDamage(a, ev.Amount)
		case status.EventDoomBurst:
			w.blasts = append(w.blasts, entity.Blast{
				Source: a.Handle,
				Pos:    a.Pos,
				Radius: w.cfg.Status.DoomRadius,
				Damage: ev.Amount,
			})
		}
	}
}

// statusDamage applies periodic effect damage outside the collision pass.
func (w *World) statusDamage(a *entity.Actor, amount float64) {
	ev := collision.DamageEvent{
		Target: a.Handle,
		Raw:    amount,
		Amount: w.v.Damage("status.damage", amount, 0),
	}
	if !w.pipeline.ApplyDamage(a, &ev) {
		return
	}
	switch a.Faction {
	case entity.FactionPlayer:
		w.gameOver()
	case entity.FactionEnemy:
		w.kill(a)
		if a.Split.Count > 0 {
			w.split(a.Pos, a.Split)
		}
	}
}

func (w *World) cadence() {
	for _, ev := range w.events.advance(w.dt) {
		switch ev.Kind {
		case EventBlast:
			w.blasts = append(w.blasts, ev.Blast)
		case EventSpawn:
			w.spawnGroup(ev.Archetype, ev.Count, ev.Blast.Pos)
		case EventWave:
			w.spawnWave()
			w.events.schedule(w.difficulty.Interval(w.cfg.Waves.Interval, w.Level()), Event{Kind: EventWave})
		}
	}
	w.fireWeapons()
}

func (w *World) collide() {
	w.enemySnap = append(w.enemySnap[:0], w.enemies.Active()...)
	w.projSnap = append(w.projSnap[:0], w.projectiles.Active()...)
	w.pickSnap = append(w.pickSnap[:0], w.pickups.Active()...)

	res := w.pipeline.Run(collision.Input{
		Tick:        w.tick,
		Dt:          w.dt,
		Player:      &w.player,
		Enemies:     w.enemySnap,
		Projectiles: w.projSnap,
		Pickups:     w.pickSnap,
		Blasts:      w.blasts,
		Spawn:       w.onSpawn,
	})
	w.blasts = w.blasts[:0]

	for _, k := range res.Kills {
		w.kill(k)
	}
	for _, c := range res.Collected {
		w.collect(c)
	}
	if res.PlayerDied {
		w.gameOver()
	}

	w.faults.Add(core.FaultStaleReference, res.StaleSkips)
	w.faults.Add(core.FaultCapacity, res.OverCapacity)

	w.last = TickStats{
		Tick:        w.tick,
		Enemies:     len(w.enemySnap),
		Projectiles: len(w.projSnap),
		Pickups:     len(w.pickSnap),
		Candidates:  res.Candidates,
		NarrowTests: res.NarrowTests,
		Dropped:     res.Dropped,
		StaleSkips:  res.StaleSkips,
		Hits:        len(res.Damage),
		Kills:       len(res.Kills),
		Grid:        res.Grid,
	}

	clear(w.enemySnap)
	clear(w.projSnap)
	clear(w.pickSnap)
}

func (w *World) onSpawn(req collision.SpawnRequest) {
	switch req.Kind {
	case collision.SpawnExplosion:
		w.events.schedule(req.Delay, Event{Kind: EventBlast, Blast: req.Blast})
	case collision.SpawnSplit:
		w.split(req.Pos, req.Split)
	}
}

func (w *World) reclaim() {
	w.enemies.ForEachActive(func(e *entity.Actor) {
		if !e.Removed {
			return
		}
		w.engine.ClearActor(e.Handle)
		delete(w.actors, e.Handle)
		if !w.enemies.Release(e) {
			w.faults.Add(core.FaultDoubleRelease, 1)
		}
	})
	w.projectiles.ForEachActive(func(p *entity.Projectile) {
		if p.Removed && !w.projectiles.Release(p) {
			w.faults.Add(core.FaultDoubleRelease, 1)
		}
	})
	w.pickups.ForEachActive(func(k *entity.Pickup) {
		if k.Removed && !w.pickups.Release(k) {
			w.faults.Add(core.FaultDoubleRelease, 1)
		}
	})
}

func (w *World) gameOver() {
	if w.over {
		return
	}
	w.over = true
	w.logger.Info("player died", "tick", w.tick, "score", w.score, "kills", w.kills, "wave", w.wave)
}

// Schedule queues a delayed event, due after delay seconds of simulation
// time. A bad delay is guarded to zero (due on the next tick).
func (w *World) Schedule(delay float64, ev Event) EventID {
	return w.events.schedule(w.v.Damage("event.delay", delay, 0), ev)
}

// Cancel removes a pending event. It reports false if the event already
// fired or never existed.
func (w *World) Cancel(id EventID) bool {
	return w.events.cancel(id)
}

// Level returns the current difficulty level in [0, 1]. Time progression
// counts ticks at the configured nominal rate, so a run overridden to a
// different tick rate ramps up over the same simulated time.
func (w *World) Level() float64 {
	nominal := math.Round(float64(w.tick) * w.dt * float64(w.cfg.Tick.Rate))
	return w.difficulty.Level(w.score, uint64(nominal))
}

// Tick returns the number of ticks simulated since the last reset.
func (w *World) Tick() uint64 {
	return w.tick
}

// Dt returns the fixed tick length in seconds.
func (w *World) Dt() float64 {
	return w.dt
}

// RuntimeConfig returns the runtime settings the world was built with.
func (w *World) RuntimeConfig() core.RuntimeConfig {
	return w.rt
}

// Config returns the validated configuration.
func (w *World) Config() config.Config {
	return w.cfg
}

// State returns the externally visible run status.
func (w *World) State() core.GameState {
	return core.GameState{Score: w.score, GameOver: w.over, Paused: w.paused}
}

// Player returns a copy of the player actor.
func (w *World) Player() entity.Actor {
	return w.player
}

// Kills returns the number of enemies killed this run.
func (w *World) Kills() int {
	return w.kills
}

// Wave returns the number of waves spawned this run.
func (w *World) Wave() int {
	return w.wave
}

// XP returns the experience collected this run.
func (w *World) XP() float64 {
	return w.xp
}

// Faults returns the counted non-fatal faults.
func (w *World) Faults() core.Faults {
	return w.faults
}

// Stats returns the work done by the last tick.
func (w *World) Stats() TickStats {
	return w.last
}

// Counts returns the number of active enemies, projectiles and pickups.
func (w *World) Counts() (enemies, projectiles, pickups int) {
	return w.enemies.ActiveLen(), w.projectiles.ActiveLen(), w.pickups.ActiveLen()
}

// PendingEvents returns the number of events on the countdown list.
func (w *World) PendingEvents() int {
	return w.events.pending()
}

// Camera returns the camera.
func (w *World) Camera() Camera {
	return w.camera
}

// Camera follows the player with exponential smoothing.
type Camera struct {
	Pos core.Vec
}

// Follow closes lerp of the gap to target. A non-positive lerp snaps.
func (c *Camera) Follow(target core.Vec, lerp float64) {
	if lerp <= 0 || lerp >= 1 {
		c.Pos = target
		return
	}
	c.Pos = c.Pos.Add(target.Sub(c.Pos).Scale(lerp))
}
