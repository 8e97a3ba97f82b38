package guard

import (
	"io"
	"math"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/horde/internal/core"
)

// Validator applies the guard functions by field name and records every
// substitution as a validation fault. Warnings are rate-limited per field:
// the 1st, 2nd, 4th, 8th... rejection of a field is logged.
type Validator struct {
	logger *log.Logger
	faults *core.Faults
	counts map[string]uint64
}

// NewValidator creates a validator. A nil logger discards output; a nil
// faults counter is allowed.
func NewValidator(logger *log.Logger, faults *core.Faults) *Validator {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Validator{
		logger: logger,
		faults: faults,
		counts: make(map[string]uint64),
	}
}

// Damage is the recording form of Damage.
func (v *Validator) Damage(field string, x, fallback float64) float64 {
	return v.check(field, x, Damage(x, fallback))
}

// Health is the recording form of Health.
func (v *Validator) Health(field string, x, fallback float64) float64 {
	return v.check(field, x, Health(x, fallback))
}

// Radius is the recording form of Radius.
func (v *Validator) Radius(field string, x, fallback float64) float64 {
	return v.check(field, x, Radius(x, fallback))
}

// Duration is the recording form of Duration.
func (v *Validator) Duration(field string, x, fallback float64) float64 {
	return v.check(field, x, Duration(x, fallback))
}

// Percent is the recording form of Percent.
func (v *Validator) Percent(field string, x, fallback float64) float64 {
	return v.check(field, x, Percent(x, fallback))
}

// Divide is the recording form of Divide.
func (v *Validator) Divide(field string, n, d, fallback float64) float64 {
	out := Divide(n, d, fallback)
	if d == 0 || !Finite(n/d) {
		v.Reject(field, d)
	}
	return out
}

// Reject records a value that was refused outright rather than substituted.
func (v *Validator) Reject(field string, value float64) {
	if v == nil {
		return
	}
	v.counts[field]++
	if v.faults != nil {
		v.faults.Add(core.FaultValidation, 1)
	}
	if n := v.counts[field]; n&(n-1) == 0 {
		v.logger.Warn("guard rejected value", "field", field, "value", value, "count", n)
	}
}

func (v *Validator) check(field string, in, out float64) float64 {
	if out != in || math.IsNaN(in) {
		v.Reject(field, in)
	}
	return out
}

// Count returns how many values of a field have been rejected.
func (v *Validator) Count(field string) uint64 {
	if v == nil {
		return 0
	}
	return v.counts[field]
}

// Total returns the number of rejections across all fields.
func (v *Validator) Total() uint64 {
	if v == nil {
		return 0
	}
	var total uint64
	for _, n := range v.counts {
		total += n
	}
	return total
}

// Fields returns the names of every field with at least one rejection, sorted.
func (v *Validator) Fields() []string {
	if v == nil {
		return nil
	}
	fields := make([]string, 0, len(v.counts))
	for f := range v.counts {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}
