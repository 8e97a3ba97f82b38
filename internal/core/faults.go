package core

// Fault classifies the non-fatal conditions the simulation absorbs during a tick.
// None of them abort the tick.
type Fault uint8

const (
	FaultValidation     Fault = iota // Bad numeric input, fallback substituted
	FaultCapacity                    // Spatial overlap spanned more cells than the ceiling
	FaultDoubleRelease               // Released a pooled entity that was not active
	FaultStaleReference              // Tried to act on an entity already flagged removed
	faultCount
)

// String returns the fault name used in logs and reports.
func (f Fault) String() string {
	switch f {
	case FaultValidation:
		return "validation_rejected"
	case FaultCapacity:
		return "capacity_exceeded"
	case FaultDoubleRelease:
		return "double_release"
	case FaultStaleReference:
		return "stale_reference"
	default:
		return "unknown"
	}
}

// Faults counts absorbed faults by kind.
type Faults [faultCount]uint64

// Add records n occurrences of a fault.
func (f *Faults) Add(kind Fault, n int) {
	if kind >= faultCount || n <= 0 {
		return
	}
	f[kind] += uint64(n)
}

// Count returns the number of recorded faults of the given kind.
func (f Faults) Count(kind Fault) uint64 {
	if kind >= faultCount {
		return 0
	}
	return f[kind]
}

// Total returns the number of recorded faults of all kinds.
func (f Faults) Total() uint64 {
	var total uint64
	for _, n := range f {
		total += n
	}
	return total
}

// Each calls fn for every fault kind in declaration order.
func (f Faults) Each(fn func(kind Fault, n uint64)) {
	for i, n := range f {
		fn(Fault(i), n)
	}
}
