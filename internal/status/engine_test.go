package status

import (
	"math"
	"testing"

	"github.com/vovakirdan/horde/internal/core"
	"github.com/vovakirdan/horde/internal/guard"
)

const actor core.Handle = 7

func tickFor(e *Engine, total, dt float64) []Event {
	var all []Event
	steps := int(math.Round(total / dt))
	for range steps {
		all = append(all, e.Tick(dt)...)
	}
	return all
}

func TestApplyRejectsBadDuration(t *testing.T) {
	tests := []struct {
		name     string
		duration float64
	}{
		{"negative", -1},
		{"zero", 0},
		{"NaN", math.NaN()},
		{"infinite", math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := guard.NewValidator(nil, nil)
			e := NewEngine(v)
			if e.Apply(actor, Frozen, 0.5, tt.duration) {
				t.Error("Apply() should be rejected")
			}
			if e.Has(actor, Frozen) {
				t.Error("rejected Apply() must not change state")
			}
			if e.MoveFactor(actor) != 1 {
				t.Errorf("MoveFactor() = %v, expected 1", e.MoveFactor(actor))
			}
			if v.Count("status.duration") != 1 {
				t.Errorf("rejection should be recorded, Count() = %d", v.Count("status.duration"))
			}
		})
	}
}

func TestApplyRejectsInvalidTarget(t *testing.T) {
	e := NewEngine(nil)
	if e.Apply(core.NoHandle, Frozen, 0.5, 1) {
		t.Error("Apply() to NoHandle should be rejected")
	}
	if e.Apply(actor, KindNone, 0.5, 1) {
		t.Error("Apply() of KindNone should be rejected")
	}
}

func TestFrozenExpires(t *testing.T) {
	e := NewEngine(nil)
	if !e.Apply(actor, Frozen, 0.75, 2.0) {
		t.Fatal("Apply() should succeed")
	}
	if got := e.MoveFactor(actor); got != 0.25 {
		t.Errorf("MoveFactor() = %v, expected 0.25", got)
	}

	tickFor(e, 1.0, 1.0/60)
	if !e.Has(actor, Frozen) {
		t.Fatal("Frozen should still be active halfway through")
	}

	events := tickFor(e, 1.0, 1.0/60)
	if e.Has(actor, Frozen) {
		t.Error("Frozen should clear after ticks totaling its duration")
	}
	if e.Len() != 0 {
		t.Errorf("Len() = %d, expected 0 once every effect expired", e.Len())
	}
	if len(events) != 1 || events[0].Type != EventExpired || events[0].Kind != Frozen {
		t.Errorf("events = %+v, expected a single Frozen expiry", events)
	}
}

func TestRefreshDoesNotStack(t *testing.T) {
	e := NewEngine(nil)
	e.Apply(actor, Frozen, 0.2, 2.0)
	tickFor(e, 1.5, 0.5)

	e.Apply(actor, Frozen, 0.9, 3.0)
	remaining, ok := e.Query(actor, Frozen)
	if !ok || remaining != 3.0 {
		t.Errorf("Query() after refresh = %v, %v; expected 3.0, true", remaining, ok)
	}
	if m, _ := e.Magnitude(actor, Frozen); m != 0.9 {
		t.Errorf("Magnitude() after refresh = %v, expected 0.9", m)
	}

	// Re-applying a shorter duration shortens it: refresh replaces, never sums.
	e.Apply(actor, Frozen, 0.9, 0.5)
	if remaining, _ := e.Query(actor, Frozen); remaining != 0.5 {
		t.Errorf("Query() after shorter refresh = %v, expected 0.5", remaining)
	}
}

func TestPoisonFrameRateInvariant(t *testing.T) {
	rates := []float64{1.0 / 144, 1.0 / 60, 1.0 / 30, 0.1, 0.25}

	for _, dt := range rates {
		e := NewEngine(nil)
		e.Apply(actor, Poisoned, 10, 2.0) // 10 dps for 2s

		var total float64
		var ticks int
		for _, ev := range tickFor(e, 3.0, dt) {
			if ev.Type == EventPoisonTick {
				total += ev.Amount
				ticks++
			}
		}

		if ticks != 4 {
			t.Errorf("dt=%v: %d poison ticks, expected 4", dt, ticks)
		}
		if math.Abs(total-20) > 1e-9 {
			t.Errorf("dt=%v: total poison damage = %v, expected 20", dt, total)
		}
	}
}

func TestPoisonPartialInterval(t *testing.T) {
	tests := []struct {
		duration float64
		ticks    int
	}{
		{0.3, 1},
		{0.75, 2},
		{1.2, 3},
		{2.0, 4},
	}

	for _, tt := range tests {
		for _, dt := range []float64{1.0 / 144, 1.0 / 60, 1.0 / 30} {
			e := NewEngine(nil)
			e.Apply(actor, Poisoned, 10, tt.duration)

			var total float64
			var ticks int
			for _, ev := range tickFor(e, tt.duration+1, dt) {
				if ev.Type == EventPoisonTick {
					total += ev.Amount
					ticks++
				}
			}

			if ticks != tt.ticks {
				t.Errorf("duration=%v dt=%v: %d poison ticks, expected %d", tt.duration, dt, ticks, tt.ticks)
			}
			if want := 10 * tt.duration; math.Abs(total-want) > 1e-6 {
				t.Errorf("duration=%v dt=%v: total poison damage = %v, expected %v", tt.duration, dt, total, want)
			}
		}
	}
}

func TestDoomBurstsOnceAtExpiry(t *testing.T) {
	e := NewEngine(nil)
	e.Apply(actor, Doomed, 50, 1.0)

	var bursts []Event
	for range 30 {
		for _, ev := range e.Tick(0.05) {
			if ev.Type == EventDoomBurst {
				bursts = append(bursts, ev)
			}
		}
	}

	if len(bursts) != 1 {
		t.Fatalf("%d doom bursts, expected 1", len(bursts))
	}
	if bursts[0].Amount != 50 || bursts[0].Actor != actor {
		t.Errorf("burst = %+v", bursts[0])
	}
	if e.Has(actor, Doomed) {
		t.Error("Doomed should clear after bursting")
	}
}

func TestClearActorDropsDoom(t *testing.T) {
	e := NewEngine(nil)
	e.Apply(actor, Doomed, 50, 0.1)
	e.ClearActor(actor)

	for _, ev := range tickFor(e, 1, 0.05) {
		if ev.Type == EventDoomBurst {
			t.Fatal("a cleared actor must not burst")
		}
	}
}

func TestShieldAbsorb(t *testing.T) {
	e := NewEngine(nil)
	e.Apply(actor, Shielded, 30, 10)

	if left := e.Absorb(actor, 20); left != 0 {
		t.Errorf("Absorb(20) = %v, expected 0", left)
	}
	if m, _ := e.Magnitude(actor, Shielded); m != 10 {
		t.Errorf("shield after absorbing 20 = %v, expected 10", m)
	}
	if left := e.Absorb(actor, 25); left != 15 {
		t.Errorf("Absorb(25) = %v, expected 15", left)
	}
	if e.Has(actor, Shielded) {
		t.Error("a depleted shield should clear early")
	}
	if left := e.Absorb(actor, math.NaN()); left != 0 {
		t.Errorf("Absorb(NaN) = %v, expected 0", left)
	}
}

func TestEffectsCompose(t *testing.T) {
	e := NewEngine(nil)
	e.Apply(actor, Poisoned, 4, 1)
	e.Apply(actor, Frozen, 1, 0.5)

	if e.MoveFactor(actor) != 0 {
		t.Errorf("fully frozen MoveFactor() = %v, expected 0", e.MoveFactor(actor))
	}

	tickFor(e, 0.5, 0.25)
	if e.Has(actor, Frozen) || !e.Has(actor, Poisoned) {
		t.Error("kinds should expire independently")
	}
	if e.MoveFactor(actor) != 1 {
		t.Error("movement should be restored once Frozen expires")
	}

	var kinds []Kind
	e.Effects(actor, func(eff Effect) { kinds = append(kinds, eff.Kind) })
	if len(kinds) != 1 || kinds[0] != Poisoned {
		t.Errorf("Effects() = %v, expected [poisoned]", kinds)
	}
}

func TestEventOrderDeterministic(t *testing.T) {
	e := NewEngine(nil)
	for _, h := range []core.Handle{9, 3, 5} {
		e.Apply(h, Poisoned, 2, 0.5)
	}

	events := e.Tick(0.5)
	var got []core.Handle
	for _, ev := range events {
		if ev.Type == EventPoisonTick {
			got = append(got, ev.Actor)
		}
	}
	want := []core.Handle{9, 3, 5}
	if len(got) != len(want) {
		t.Fatalf("poison order = %v, expected %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("poison order = %v, expected %v", got, want)
			break
		}
	}
}

func TestMagnitudeGuarded(t *testing.T) {
	v := guard.NewValidator(nil, nil)
	e := NewEngine(v)

	e.Apply(actor, Frozen, 5, 1)
	if m, _ := e.Magnitude(actor, Frozen); m != 1 {
		t.Errorf("Frozen magnitude = %v, expected clamp to 1", m)
	}
	e.Apply(actor, Poisoned, math.Inf(1), 1)
	if m, _ := e.Magnitude(actor, Poisoned); m != 0 {
		t.Errorf("Poisoned magnitude = %v, expected fallback 0", m)
	}
	if v.Total() != 2 {
		t.Errorf("Total() = %d, expected 2", v.Total())
	}
}

func TestReset(t *testing.T) {
	e := NewEngine(nil)
	e.Apply(1, Frozen, 0.5, 1)
	e.Apply(2, Shielded, 5, 1)
	e.Reset()

	if e.Len() != 0 || e.Has(1, Frozen) || e.Has(2, Shielded) {
		t.Error("Reset() should drop every effect")
	}
	if len(e.Tick(1)) != 0 {
		t.Error("Tick() after Reset() should emit nothing")
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in       string
		expected Kind
		wantErr  bool
	}{
		{"frozen", Frozen, false},
		{" Poison ", Poisoned, false},
		{"doom", Doomed, false},
		{"shield", Shielded, false},
		{"", KindNone, false},
		{"burning", KindNone, true},
	}

	for _, tt := range tests {
		got, err := ParseKind(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseKind(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.expected {
			t.Errorf("ParseKind(%q) = %v, expected %v", tt.in, got, tt.expected)
		}
	}
}
