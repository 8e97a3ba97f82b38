package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/horde/internal/core"
	"github.com/vovakirdan/horde/internal/registry"
	"github.com/vovakirdan/horde/internal/sim"
	"github.com/vovakirdan/horde/internal/storage"
)

var (
	flagBenchTicks uint64
	flagBenchSave  bool
	flagBenchIdle  bool
)

var benchCmd = &cobra.Command{
	Use:   "bench <scenario>",
	Short: "Run a scenario headless and report throughput",
	Long: `Run the scenario without a terminal for a fixed number of ticks, as
fast as the machine allows, then print throughput and the last tick's work.

By default the player circles the arena so the horde keeps moving;
--idle leaves it standing still. The run stops early on game over or Ctrl+C.

Examples:
  horde bench stress
  horde bench survival --ticks 36000 --seed 7
  horde bench stress --save`,
	Args: cobra.ExactArgs(1),
	RunE: runBench,
}

func init() {
	benchCmd.Flags().Uint64Var(&flagBenchTicks, "ticks", 18000, "Number of ticks to simulate")
	benchCmd.Flags().BoolVar(&flagBenchSave, "save", false, "Record the run in the history database")
	benchCmd.Flags().BoolVar(&flagBenchIdle, "idle", false, "Leave the player standing still")
}

// circleInput steers the player through the four directions, two seconds
// each.
func circleInput(tick uint64, rate int) core.InputFrame {
	var in core.InputFrame
	dirs := [...]core.Action{core.ActionMoveRight, core.ActionMoveDown, core.ActionMoveLeft, core.ActionMoveUp}
	in.Set(dirs[(tick/uint64(2*rate))%uint64(len(dirs))]) //#nosec G115 -- rate is positive
	return in
}

func runBench(cmd *cobra.Command, args []string) error {
	scenario := args[0]
	if !registry.Exists(scenario) {
		return fmt.Errorf("unknown scenario %q (run 'horde list' to see available scenarios)", scenario)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger("horde-bench")
	if err != nil {
		return err
	}

	rt := core.DefaultConfig()
	rt.TickRate = flagTPS
	rt.Seed = flagSeed
	if rt.Seed == 0 {
		rt.Seed = time.Now().UnixNano()
	}

	world, err := registry.NewWorld(scenario, cfg, rt, sim.Options{Logger: logger.With("scenario", scenario)})
	if err != nil {
		return err
	}
	rate := world.RuntimeConfig().TickRate
	clock := sim.NewClock(world.RuntimeConfig().FixedStep(), world.Config().Tick.MaxTicksPerFrame)
	driver := sim.NewDriver(world, clock, logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("bench started", "scenario", scenario, "ticks", flagBenchTicks, "seed", rt.Seed, "rate", rate)

	var (
		peakEnemies int
		panics      int
	)
	start := time.Now()
	for world.Tick() < flagBenchTicks && !world.State().GameOver {
		if world.Tick()%1024 == 0 && ctx.Err() != nil {
			logger.Warn("bench interrupted", "tick", world.Tick())
			break
		}

		var in core.InputFrame
		if !flagBenchIdle {
			in = circleInput(world.Tick(), rate)
		}
		if _, err := driver.Frame(clock.Step(), in); err != nil {
			panics++
			if panics > 3 {
				return fmt.Errorf("giving up after %d panicked ticks: %w", panics, err)
			}
		}
		peakEnemies = max(peakEnemies, world.Stats().Enemies)
	}
	elapsed := time.Since(start)

	report(world, elapsed, peakEnemies)

	if flagBenchSave {
		if err := saveBenchRun(scenario, world); err != nil {
			return err
		}
		fmt.Println("Run saved.")
	}
	return nil
}

func report(w *sim.World, elapsed time.Duration, peakEnemies int) {
	ticks := w.Tick()
	tps := 0.0
	if elapsed > 0 {
		tps = float64(ticks) / elapsed.Seconds()
	}
	simSeconds := float64(ticks) * w.Dt()
	st := w.Stats()
	snap := w.Snapshot()

	fmt.Printf("Ticks:        %d (%.1fs simulated in %s)\n", ticks, simSeconds, elapsed.Round(time.Millisecond))
	fmt.Printf("Throughput:   %.0f ticks/s (%.1fx real time)\n", tps, tps*w.Dt())
	fmt.Printf("Outcome:      score %d, kills %d, wave %d, game over %t\n", w.State().Score, w.Kills(), w.Wave(), w.State().GameOver)
	fmt.Printf("Population:   %d enemies (peak %d), %d projectiles, %d pickups\n", st.Enemies, peakEnemies, st.Projectiles, st.Pickups)
	fmt.Printf("Last tick:    %d candidates, %d narrow tests, %d hits, %d kills, %d stale skips, %d dropped\n",
		st.Candidates, st.NarrowTests, st.Hits, st.Kills, st.StaleSkips, st.Dropped)
	fmt.Printf("Grid:         %d cells, %d queries, %d rejected (%d over capacity)\n",
		st.Grid.CellCount, st.Grid.Queries, st.Grid.Rejected, st.Grid.OverCapacity)

	faults := w.Faults()
	if faults.Total() == 0 {
		fmt.Println("Faults:       none")
	} else {
		fmt.Print("Faults:      ")
		faults.Each(func(kind core.Fault, n uint64) {
			if n > 0 {
				fmt.Printf(" %s=%d", kind, n)
			}
		})
		fmt.Println()
	}
	fmt.Printf("State hash:   %016x\n", snap.Hash())
}

func saveBenchRun(scenario string, w *sim.World) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening run database: %w", err)
	}
	defer store.Close()

	run, err := storage.RunFromWorld(scenario, w)
	if err != nil {
		return err
	}
	_, err = store.SaveRun(run)
	return err
}
