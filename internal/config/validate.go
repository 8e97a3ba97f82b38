package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/horde/internal/guard"
)

// Validate sanitizes every number in cfg through the guard, substituting the
// default for anything out of domain, and reports structural problems (bad
// names, dangling references) as an error. Numbers are sanitized either way;
// a non-nil error means the tables cannot be used.
func Validate(cfg *Config, v *guard.Validator) error {
	d := Default()
	var errs []error

	w := &cfg.World
	w.Width = v.Radius("world.width", w.Width, d.World.Width)
	w.Height = v.Radius("world.height", w.Height, d.World.Height)
	w.CellSize = v.Radius("world.cell_size", w.CellSize, d.World.CellSize)
	w.MaxQueryCells = positiveInt(v, "world.max_query_cells", w.MaxQueryCells, d.World.MaxQueryCells)
	w.CameraLerp = v.Percent("world.camera_lerp", w.CameraLerp, d.World.CameraLerp)

	t := &cfg.Tick
	t.Rate = positiveInt(v, "tick.rate", t.Rate, d.Tick.Rate)
	if t.Rate > 1000 {
		v.Reject("tick.rate", float64(t.Rate))
		t.Rate = 1000
	}
	t.MaxTicksPerFrame = positiveInt(v, "tick.max_ticks_per_frame", t.MaxTicksPerFrame, d.Tick.MaxTicksPerFrame)

	p := &cfg.Player
	p.Health = v.Health("player.health", p.Health, d.Player.Health)
	if p.Health == 0 {
		errs = append(errs, errors.New("config: player.health must be positive"))
	}
	p.Radius = v.Radius("player.radius", p.Radius, d.Player.Radius)
	p.Speed = v.Damage("player.speed", p.Speed, d.Player.Speed)
	p.InvulnWindow = v.Damage("player.invuln_window", p.InvulnWindow, d.Player.InvulnWindow)

	k := &cfg.Pickups
	k.Radius = v.Radius("pickups.radius", k.Radius, d.Pickups.Radius)
	k.MagnetRadius = v.Damage("pickups.magnet_radius", k.MagnetRadius, d.Pickups.MagnetRadius)
	k.AttractSpeed = v.Damage("pickups.attract_speed", k.AttractSpeed, d.Pickups.AttractSpeed)
	k.CoinValue = v.Damage("pickups.coin_value", k.CoinValue, d.Pickups.CoinValue)
	k.CoinChance = v.Percent("pickups.coin_chance", k.CoinChance, d.Pickups.CoinChance)
	k.Lifetime = v.Duration("pickups.lifetime", k.Lifetime, d.Pickups.Lifetime)

	wv := &cfg.Waves
	wv.Interval = v.Duration("waves.interval", wv.Interval, d.Waves.Interval)
	wv.Batch = positiveInt(v, "waves.batch", wv.Batch, d.Waves.Batch)
	wv.RingDistance = v.Radius("waves.ring_distance", wv.RingDistance, d.Waves.RingDistance)
	wv.MaxEnemies = positiveInt(v, "waves.max_enemies", wv.MaxEnemies, d.Waves.MaxEnemies)

	diff := &wv.Difficulty
	diff.InitialLevel = v.Percent("waves.difficulty.initial_level", diff.InitialLevel, 0)
	switch diff.Progression.Type {
	case "score", "time", "none":
	case "":
		diff.Progression.Type = "none"
	default:
		errs = append(errs, fmt.Errorf("config: unknown difficulty progression %q", diff.Progression.Type))
	}
	s := &diff.Scaling
	s.SpeedMultiplier = v.Damage("waves.difficulty.speed_multiplier", s.SpeedMultiplier, 0)
	s.HealthMultiplier = v.Damage("waves.difficulty.health_multiplier", s.HealthMultiplier, 0)
	s.IntervalReduction = v.Percent("waves.difficulty.interval_reduction", s.IntervalReduction, 0)
	if s.BatchGrowth < 0 {
		v.Reject("waves.difficulty.batch_growth", float64(s.BatchGrowth))
		s.BatchGrowth = 0
	}

	cfg.Status.DoomRadius = v.Radius("status.doom_radius", cfg.Status.DoomRadius, d.Status.DoomRadius)

	errs = append(errs, validateEnemies(cfg, v)...)
	errs = append(errs, validateWeapons(cfg, v)...)

	for _, name := range cfg.Player.Weapons {
		if cfg.WeaponIndex(name) < 0 {
			errs = append(errs, fmt.Errorf("config: player weapon %q is not defined", name))
		}
	}

	return errors.Join(errs...)
}

func validateEnemies(cfg *Config, v *guard.Validator) []error {
	var errs []error
	if len(cfg.Enemies) == 0 {
		return []error{errors.New("config: no enemies defined")}
	}

	seen := make(map[string]bool, len(cfg.Enemies))
	spawnable := false
	for i := range cfg.Enemies {
		e := &cfg.Enemies[i]
		if e.Name == "" {
			errs = append(errs, fmt.Errorf("config: enemy #%d has no name", i))
		} else if seen[e.Name] {
			errs = append(errs, fmt.Errorf("config: duplicate enemy %q", e.Name))
		}
		seen[e.Name] = true

		field := "enemies." + e.Name
		e.Health = v.Health(field+".health", e.Health, 1)
		e.Radius = v.Radius(field+".radius", e.Radius, 8)
		e.Speed = v.Damage(field+".speed", e.Speed, 0)
		e.ContactDamage = v.Damage(field+".contact_damage", e.ContactDamage, 0)
		e.XP = v.Damage(field+".xp", e.XP, 0)
		e.Weight = v.Damage(field+".weight", e.Weight, 0)
		e.MinLevel = v.Percent(field+".min_level", e.MinLevel, 0)
		e.Shield = v.Damage(field+".shield", e.Shield, 0)
		if e.Value < 0 {
			v.Reject(field+".value", float64(e.Value))
			e.Value = 0
		}
		if e.Weight > 0 {
			spawnable = true
		}
	}

	for i := range cfg.Enemies {
		e := &cfg.Enemies[i]
		if e.Split.Count < 0 {
			v.Reject("enemies."+e.Name+".split.count", float64(e.Split.Count))
			e.Split.Count = 0
		}
		if e.Split.Count == 0 {
			continue
		}
		switch j := cfg.EnemyIndex(e.Split.Into); {
		case j < 0:
			errs = append(errs, fmt.Errorf("config: enemy %q splits into unknown enemy %q", e.Name, e.Split.Into))
		case j == i:
			errs = append(errs, fmt.Errorf("config: enemy %q cannot split into itself", e.Name))
		}
	}

	if !spawnable {
		errs = append(errs, errors.New("config: no enemy has a positive spawn weight"))
	}
	return errs
}

func validateWeapons(cfg *Config, v *guard.Validator) []error {
	var errs []error
	seen := make(map[string]bool, len(cfg.Weapons))
	for i := range cfg.Weapons {
		w := &cfg.Weapons[i]
		if w.Name == "" {
			errs = append(errs, fmt.Errorf("config: weapon #%d has no name", i))
		} else if seen[w.Name] {
			errs = append(errs, fmt.Errorf("config: duplicate weapon %q", w.Name))
		}
		seen[w.Name] = true

		field := "weapons." + w.Name
		w.Damage = v.Damage(field+".damage", w.Damage, 0)
		w.Radius = v.Radius(field+".radius", w.Radius, 4)
		w.Speed = v.Damage(field+".speed", w.Speed, 0)
		w.Cooldown = v.Duration(field+".cooldown", w.Cooldown, 1)
		w.Lifetime = v.Duration(field+".lifetime", w.Lifetime, 1)
		w.Spread = v.Damage(field+".spread", w.Spread, 0)
		if w.Pierce < 0 {
			v.Reject(field+".pierce", float64(w.Pierce))
			w.Pierce = 0
		}
		w.Count = positiveInt(v, field+".count", w.Count, 1)

		oh := &w.OnHit
		if oh.Status.Valid() {
			oh.Duration = v.Duration(field+".on_hit.duration", oh.Duration, 1)
		}
		oh.ExplodeRadius = v.Damage(field+".on_hit.explode_radius", oh.ExplodeRadius, 0)
		oh.ExplodeDamage = v.Damage(field+".on_hit.explode_damage", oh.ExplodeDamage, 0)
		oh.ExplodeDelay = v.Damage(field+".on_hit.explode_delay", oh.ExplodeDelay, 0)
	}
	return errs
}

func positiveInt(v *guard.Validator, field string, x, fallback int) int {
	if x > 0 {
		return x
	}
	v.Reject(field, float64(x))
	if fallback > 0 {
		return fallback
	}
	return 1
}
