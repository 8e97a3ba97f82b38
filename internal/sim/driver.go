package sim

import (
	"fmt"
	"io"
	"runtime/debug"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/horde/internal/core"
)

// Stepper is anything advanced one fixed tick at a time.
type Stepper interface {
	Step(in core.InputFrame)
	Tick() uint64
}

// Driver feeds wall-clock frame intervals into a Stepper through a Clock.
// It is the outermost layer of the simulation: a panic escaping Step is
// recovered here, logged, and reported so the caller can skip that render.
type Driver struct {
	sim    Stepper
	clock  *Clock
	logger *log.Logger
	panics int
}

// NewDriver creates a driver. A nil logger discards.
func NewDriver(s Stepper, clock *Clock, logger *log.Logger) *Driver {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Driver{sim: s, clock: clock, logger: logger}
}

// Frame advances the simulation by elapsed wall time with the input held
// this frame. It returns the number of ticks run. A non-nil error means
// a tick panicked; the remaining ticks of the frame are abandoned.
func (d *Driver) Frame(elapsed time.Duration, in core.InputFrame) (n int, err error) {
	defer func() {
		if r := recover(); r != nil {
			d.panics++
			d.clock.discard()
			d.logger.Error("tick panicked", "tick", d.sim.Tick(), "panic", r, "stack", string(debug.Stack()))
			err = fmt.Errorf("sim: tick %d panicked: %v", d.sim.Tick(), r)
		}
	}()
	n = d.clock.Advance(elapsed, func() {
		d.sim.Step(in)
	})
	return n, nil
}

// Clock returns the driver's clock.
func (d *Driver) Clock() *Clock {
	return d.clock
}

// Panics returns the number of frames abandoned to a panic.
func (d *Driver) Panics() int {
	return d.panics
}
