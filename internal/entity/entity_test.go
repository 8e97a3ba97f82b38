package entity

import (
	"testing"

	"github.com/vovakirdan/horde/internal/core"
	"github.com/vovakirdan/horde/internal/status"
)

func TestProjectileHitMemory(t *testing.T) {
	p := &Projectile{Handle: 1, Pierce: 2}

	if p.HasHit(5) {
		t.Error("fresh projectile should not have hit anything")
	}
	p.RecordHit(5)
	p.RecordHit(9)
	if !p.HasHit(5) || !p.HasHit(9) {
		t.Error("HasHit should report recorded targets")
	}
	if p.Hits() != 2 {
		t.Errorf("Hits() = %d, expected 2", p.Hits())
	}

	p.OnHit = OnHit{Status: status.Frozen, StatusDuration: 1}
	p.Reset()
	if p.HasHit(5) || p.Hits() != 0 {
		t.Error("Reset() should forget hits")
	}
	if p.Handle != core.NoHandle || p.Pierce != 0 || p.OnHit.Status != status.KindNone {
		t.Errorf("Reset() left fields set: %+v", p)
	}
}

func TestActorAlive(t *testing.T) {
	tests := []struct {
		name     string
		actor    Actor
		expected bool
	}{
		{"healthy", Actor{Health: 10}, true},
		{"dead", Actor{Health: 0}, false},
		{"removed", Actor{Health: 10, Removed: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.actor.Alive(); got != tt.expected {
				t.Errorf("Alive() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestCircles(t *testing.T) {
	a := &Actor{Pos: core.V(0, 0), Radius: 5}
	p := &Projectile{Pos: core.V(8, 0), Radius: 3}
	k := &Pickup{Pos: core.V(20, 0), Radius: 2}

	if !a.Circle().Overlaps(p.Circle()) {
		t.Error("touching actor and projectile should overlap")
	}
	if a.Circle().Overlaps(k.Circle()) {
		t.Error("distant pickup should not overlap")
	}
}
