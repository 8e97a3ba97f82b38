package status

import (
	"github.com/vovakirdan/horde/internal/core"
	"github.com/vovakirdan/horde/internal/guard"
)

const (
	// PoisonInterval is the effect time between poison damage ticks, in seconds.
	PoisonInterval = 0.5

	// Timer slack absorbing accumulated float error from summing dt.
	epsilon = 1e-9
)

// Effect is one active effect instance on an actor.
type Effect struct {
	Kind      Kind
	Remaining float64 // Seconds left
	Duration  float64 // Seconds at the last apply
	Magnitude float64
	Accum     float64 // Sub-interval accumulator for periodic effects
}

// EventType tells the simulation what an effect did this tick.
type EventType uint8

const (
	EventPoisonTick EventType = iota // Amount = damage to apply
	EventDoomBurst                   // Amount = burst damage centered on the actor
	EventExpired                     // Effect ran out
)

// Event is emitted by Tick. Events are transient and only valid until the next Tick.
type Event struct {
	Actor  core.Handle
	Kind   Kind
	Type   EventType
	Amount float64
}

type behavior struct {
	field     string
	magnitude func(v *guard.Validator, field string, x float64) float64
	tick      func(e *Effect, actor core.Handle, step float64, out []Event) []Event
	expire    func(e *Effect, actor core.Handle, out []Event) []Event
}

var behaviors = [kindCount]behavior{
	Frozen: {
		field: "status.frozen.magnitude",
		magnitude: func(v *guard.Validator, field string, x float64) float64 {
			return v.Percent(field, x, 0.5)
		},
	},
	Poisoned: {
		field: "status.poisoned.magnitude",
		magnitude: func(v *guard.Validator, field string, x float64) float64 {
			return v.Damage(field, x, 0)
		},
		tick:   tickPoison,
		expire: flushPoison,
	},
	Doomed: {
		field: "status.doomed.magnitude",
		magnitude: func(v *guard.Validator, field string, x float64) float64 {
			return v.Damage(field, x, 0)
		},
		expire: func(e *Effect, actor core.Handle, out []Event) []Event {
			return append(out, Event{Actor: actor, Kind: Doomed, Type: EventDoomBurst, Amount: e.Magnitude})
		},
	},
	Shielded: {
		field: "status.shielded.magnitude",
		magnitude: func(v *guard.Validator, field string, x float64) float64 {
			return v.Damage(field, x, 0)
		},
	},
}

// tickPoison fires a damage tick for every full interval of effect time.
// step is already capped to the time the effect has left, so the number of
// ticks over a whole effect does not depend on the frame rate.
func tickPoison(e *Effect, actor core.Handle, step float64, out []Event) []Event {
	e.Accum += step
	for e.Accum+epsilon >= PoisonInterval {
		e.Accum -= PoisonInterval
		out = append(out, Event{
			Actor:  actor,
			Kind:   Poisoned,
			Type:   EventPoisonTick,
			Amount: e.Magnitude * PoisonInterval,
		})
	}
	return out
}

// flushPoison deals the partial interval left when the effect runs out, so a
// whole effect deals exactly magnitude times duration.
func flushPoison(e *Effect, actor core.Handle, out []Event) []Event {
	if e.Accum <= epsilon {
		return out
	}
	out = append(out, Event{
		Actor:  actor,
		Kind:   Poisoned,
		Type:   EventPoisonTick,
		Amount: e.Magnitude * e.Accum,
	})
	e.Accum = 0
	return out
}

type slot struct {
	effects [kindCount]Effect
	active  uint8 // Bit per Kind
}

func (s *slot) has(k Kind) bool {
	return s.active&(1<<k) != 0
}

// Engine owns every active status effect. It is not safe for concurrent use.
type Engine struct {
	v      *guard.Validator
	actors map[core.Handle]*slot
	order  []core.Handle // First-application order, for deterministic events
	spare  []*slot
	events []Event
}

// NewEngine creates an engine. A nil validator still guards values, it just
// does not record them.
func NewEngine(v *guard.Validator) *Engine {
	return &Engine{
		v:      v,
		actors: make(map[core.Handle]*slot),
	}
}

// Apply starts kind on actor, or refreshes it if already active: remaining
// duration and magnitude are replaced by the new values, never summed.
// A duration that is not positive and finite rejects the call with no
// state change. The magnitude is guarded per kind.
func (e *Engine) Apply(actor core.Handle, kind Kind, magnitude, duration float64) bool {
	if actor == core.NoHandle || !kind.Valid() {
		return false
	}
	if !guard.PositiveFinite(duration) {
		e.v.Reject("status.duration", duration)
		return false
	}

	b := behaviors[kind]
	magnitude = b.magnitude(e.v, b.field, magnitude)

	s, ok := e.actors[actor]
	if !ok {
		s = e.newSlot()
		e.actors[actor] = s
		e.order = append(e.order, actor)
	}

	eff := &s.effects[kind]
	if s.has(kind) {
		eff.Remaining = duration
		eff.Duration = duration
		eff.Magnitude = magnitude
		return true
	}

	*eff = Effect{
		Kind:      kind,
		Remaining: duration,
		Duration:  duration,
		Magnitude: magnitude,
	}
	s.active |= 1 << kind
	return true
}

// Tick advances every effect by dt seconds and returns what happened, in
// actor first-application order then Kinds order. The returned slice is
// reused by the next call. A dt that is not positive and finite is ignored.
func (e *Engine) Tick(dt float64) []Event {
	e.events = e.events[:0]
	if !guard.PositiveFinite(dt) {
		if dt != 0 {
			e.v.Reject("status.dt", dt)
		}
		return e.events
	}

	emptied := false
	for _, actor := range e.order {
		s := e.actors[actor]
		for _, kind := range Kinds {
			if !s.has(kind) {
				continue
			}
			eff := &s.effects[kind]
			b := behaviors[kind]

			step := min(dt, eff.Remaining)
			if b.tick != nil {
				e.events = b.tick(eff, actor, step, e.events)
			}

			eff.Remaining -= dt
			if eff.Remaining > epsilon {
				continue
			}
			if b.expire != nil {
				e.events = b.expire(eff, actor, e.events)
			}
			e.events = append(e.events, Event{Actor: actor, Kind: kind, Type: EventExpired})
			s.active &^= 1 << kind
			*eff = Effect{}
		}
		if s.active == 0 {
			emptied = true
		}
	}

	if emptied {
		e.compact()
	}
	return e.events
}

// Query returns the remaining duration of kind on actor.
func (e *Engine) Query(actor core.Handle, kind Kind) (float64, bool) {
	s, ok := e.actors[actor]
	if !ok || !kind.Valid() || !s.has(kind) {
		return 0, false
	}
	return s.effects[kind].Remaining, true
}

// Magnitude returns the magnitude of kind on actor.
func (e *Engine) Magnitude(actor core.Handle, kind Kind) (float64, bool) {
	s, ok := e.actors[actor]
	if !ok || !kind.Valid() || !s.has(kind) {
		return 0, false
	}
	return s.effects[kind].Magnitude, true
}

// Has reports whether kind is active on actor.
func (e *Engine) Has(actor core.Handle, kind Kind) bool {
	_, ok := e.Query(actor, kind)
	return ok
}

// MoveFactor is the multiplier applied to an actor's speed: 1 minus the
// Frozen suppression, or 1 when not frozen.
func (e *Engine) MoveFactor(actor core.Handle) float64 {
	m, ok := e.Magnitude(actor, Frozen)
	if !ok {
		return 1
	}
	return 1 - m
}

// Absorb runs incoming damage through actor's shield and returns what is
// left to apply to health. A depleted shield clears immediately.
func (e *Engine) Absorb(actor core.Handle, damage float64) float64 {
	damage = guard.Damage(damage, 0)
	s, ok := e.actors[actor]
	if !ok || !s.has(Shielded) || damage == 0 {
		return damage
	}

	eff := &s.effects[Shielded]
	if damage < eff.Magnitude {
		eff.Magnitude -= damage
		return 0
	}
	left := damage - eff.Magnitude
	e.Remove(actor, Shielded)
	return left
}

// Remove clears one effect without firing its expiry behavior.
func (e *Engine) Remove(actor core.Handle, kind Kind) bool {
	s, ok := e.actors[actor]
	if !ok || !kind.Valid() || !s.has(kind) {
		return false
	}
	s.active &^= 1 << kind
	s.effects[kind] = Effect{}
	if s.active == 0 {
		e.compact()
	}
	return true
}

// ClearActor drops every effect on actor without firing any of them.
// Called when the actor is reclaimed.
func (e *Engine) ClearActor(actor core.Handle) {
	s, ok := e.actors[actor]
	if !ok {
		return
	}
	s.active = 0
	e.compact()
}

// Effects calls fn for every active effect on actor in Kinds order.
func (e *Engine) Effects(actor core.Handle, fn func(Effect)) {
	s, ok := e.actors[actor]
	if !ok {
		return
	}
	for _, kind := range Kinds {
		if s.has(kind) {
			fn(s.effects[kind])
		}
	}
}

// Len returns the number of actors with at least one active effect.
func (e *Engine) Len() int {
	return len(e.order)
}

// Reset drops every effect.
func (e *Engine) Reset() {
	for _, actor := range e.order {
		s := e.actors[actor]
		*s = slot{}
		e.spare = append(e.spare, s)
	}
	clear(e.actors)
	e.order = e.order[:0]
	e.events = e.events[:0]
}

func (e *Engine) newSlot() *slot {
	if n := len(e.spare); n > 0 {
		s := e.spare[n-1]
		e.spare = e.spare[:n-1]
		return s
	}
	return &slot{}
}

// compact removes actors with no active effects, keeping order stable.
func (e *Engine) compact() {
	kept := e.order[:0]
	for _, actor := range e.order {
		s := e.actors[actor]
		if s.active != 0 {
			kept = append(kept, actor)
			continue
		}
		delete(e.actors, actor)
		*s = slot{}
		e.spare = append(e.spare, s)
	}
	clear(e.order[len(kept):])
	e.order = kept
}
