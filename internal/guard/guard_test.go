package guard

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/horde/internal/core"
)

var (
	nan  = math.NaN()
	pInf = math.Inf(1)
	nInf = math.Inf(-1)
)

func TestDamage(t *testing.T) {
	tests := []struct {
		name     string
		x, fb    float64
		expected float64
	}{
		{"positive passes", 12.5, 0, 12.5},
		{"zero passes", 0, 3, 0},
		{"negative clamps", -4, 3, 0},
		{"NaN uses fallback", nan, 3, 3},
		{"+Inf uses fallback", pInf, 3, 3},
		{"-Inf uses fallback", nInf, 3, 3},
		{"negative fallback clamps", nan, -3, 0},
		{"bad fallback yields zero", nan, nan, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Damage(tt.x, tt.fb); got != tt.expected {
				t.Errorf("Damage(%v, %v) = %v, expected %v", tt.x, tt.fb, got, tt.expected)
			}
			if got := Health(tt.x, tt.fb); got != tt.expected {
				t.Errorf("Health(%v, %v) = %v, expected %v", tt.x, tt.fb, got, tt.expected)
			}
		})
	}
}

func TestRadiusDuration(t *testing.T) {
	tests := []struct {
		name     string
		x, fb    float64
		radius   float64
		duration float64
	}{
		{"valid passes", 2.5, 9, 2.5, 2.5},
		{"zero uses fallback", 0, 9, 9, 9},
		{"negative uses fallback", -1, 9, 9, 9},
		{"NaN uses fallback", nan, 9, 9, 9},
		{"+Inf uses fallback", pInf, 9, 9, 9},
		{"bad fallback uses floor", nan, -2, MinRadius, MinDuration},
		{"infinite fallback uses floor", 0, pInf, MinRadius, MinDuration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Radius(tt.x, tt.fb); got != tt.radius {
				t.Errorf("Radius(%v, %v) = %v, expected %v", tt.x, tt.fb, got, tt.radius)
			}
			if got := Duration(tt.x, tt.fb); got != tt.duration {
				t.Errorf("Duration(%v, %v) = %v, expected %v", tt.x, tt.fb, got, tt.duration)
			}
		})
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		x, fb    float64
		expected float64
	}{
		{0.25, 0, 0.25},
		{1.5, 0, 1},
		{-0.5, 0, 0},
		{nan, 0.4, 0.4},
		{pInf, 2, 1},
		{nan, nan, 0},
	}

	for _, tt := range tests {
		if got := Percent(tt.x, tt.fb); got != tt.expected {
			t.Errorf("Percent(%v, %v) = %v, expected %v", tt.x, tt.fb, got, tt.expected)
		}
	}
}

func TestDivide(t *testing.T) {
	tests := []struct {
		n, d, fb float64
		expected float64
	}{
		{10, 4, 0, 2.5},
		{1, 0, 7, 7},
		{0, 0, 7, 7},
		{nan, 2, 7, 7},
		{1e308, 1e-308, 7, 7},
		{1, 0, nan, 0},
	}

	for _, tt := range tests {
		if got := Divide(tt.n, tt.d, tt.fb); got != tt.expected {
			t.Errorf("Divide(%v, %v, %v) = %v, expected %v", tt.n, tt.d, tt.fb, got, tt.expected)
		}
	}
}

func TestIdempotent(t *testing.T) {
	inputs := []float64{-1e9, -1, -0.1, 0, 1e-9, 0.5, 1, 2, 1e9, nan, pInf, nInf}
	fallbacks := []float64{-1, 0, 0.5, 3, nan, pInf}

	guards := map[string]func(x, fb float64) float64{
		"Damage":   Damage,
		"Health":   Health,
		"Radius":   Radius,
		"Duration": Duration,
		"Percent":  Percent,
	}

	for name, g := range guards {
		for _, x := range inputs {
			for _, fb := range fallbacks {
				once := g(x, fb)
				twice := g(once, fb)
				if once != twice || !Finite(once) {
					t.Errorf("%s: g(%v, %v) = %v, g(g(x)) = %v", name, x, fb, once, twice)
				}
			}
		}
	}
}

// For all finite x, Damage(x) == max(x, 0); for all non-finite x, Duration(x, d) == d.
func TestGuardProperties(t *testing.T) {
	for i := -1000; i <= 1000; i++ {
		x := float64(i) * 0.37
		if got := Damage(x, 0); got != math.Max(x, 0) {
			t.Fatalf("Damage(%v) = %v, expected %v", x, got, math.Max(x, 0))
		}
	}
	for _, x := range []float64{nan, pInf, nInf} {
		for _, d := range []float64{0.1, 1, 30} {
			if got := Duration(x, d); got != d {
				t.Errorf("Duration(%v, %v) = %v, expected %v", x, d, got, d)
			}
		}
	}
}

func TestValidatorRecords(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Prefix: "test"})
	var faults core.Faults
	v := NewValidator(logger, &faults)

	if got := v.Damage("skill.damage", 10, 0); got != 10 {
		t.Errorf("Damage() = %v, expected 10", got)
	}
	if v.Total() != 0 {
		t.Errorf("valid value should not be recorded, Total() = %d", v.Total())
	}

	v.Radius("enemy.radius", nan, 8)
	v.Radius("enemy.radius", -1, 8)
	v.Radius("enemy.radius", 0, 8)
	v.Percent("weapon.slow", 3, 0)

	if v.Count("enemy.radius") != 3 {
		t.Errorf("Count(enemy.radius) = %d, expected 3", v.Count("enemy.radius"))
	}
	if faults.Count(core.FaultValidation) != 4 {
		t.Errorf("validation faults = %d, expected 4", faults.Count(core.FaultValidation))
	}
	if fields := v.Fields(); len(fields) != 2 || fields[0] != "enemy.radius" {
		t.Errorf("Fields() = %v", fields)
	}

	// 1st and 2nd rejections of enemy.radius are logged, the 3rd is not.
	if n := strings.Count(buf.String(), "enemy.radius"); n != 2 {
		t.Errorf("enemy.radius logged %d times, expected 2", n)
	}
}

func TestNilValidator(t *testing.T) {
	var v *Validator
	if got := v.Duration("x", nan, 2); got != 2 {
		t.Errorf("nil Validator Duration() = %v, expected 2", got)
	}
	if v.Total() != 0 {
		t.Error("nil Validator should report zero rejections")
	}

	v = NewValidator(nil, nil)
	v.Health("actor.health", nan, 5)
	if v.Count("actor.health") != 1 {
		t.Error("Validator without logger or faults should still count")
	}
}
