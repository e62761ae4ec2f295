package simulation

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/lao-tseu-is-alive/go-boids-simulation/pkg/geometry"
)

// Phase is the externally visible state of the world's command machine.
type Phase int

const (
	// PhaseSetup has no boids active; the world waits for CmdStart.
	PhaseSetup Phase = iota
	// PhaseRunning executes the full tick pipeline.
	PhaseRunning
	// PhasePaused freezes the boids; only population and transition
	// commands have an effect.
	PhasePaused
)

func (p Phase) String() string {
	switch p {
	case PhaseSetup:
		return "setup"
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// Command is a discrete instruction received with each tick. The world never
// polls input itself; the presentation layer translates raw events into these.
type Command int

const (
	CmdNone Command = iota
	CmdStart
	CmdPause
	CmdResume
	CmdReset
	CmdGrow
	CmdShrink
)

// World owns the boid population, the spatial grid and the tuning constants,
// and advances them one deterministic tick at a time. It is not safe for
// concurrent use; one tick is one uninterrupted single-threaded pipeline.
type World struct {
	cfg   *Config
	rng   *rand.Rand
	grid  *SpatialGrid
	phase Phase

	// boids is the current (read) snapshot, next the write buffer; the two
	// are swapped at the end of every tick so no boid ever observes another
	// boid's already-updated state.
	boids []Boid
	next  []Boid

	population int

	// scratch holds candidate indices between queries to avoid per-boid
	// allocations on the hot path.
	scratch []int
}

// NewWorld validates cfg and builds an empty world in the Setup phase.
// The grid cell size is tied to the visual range, so one query scans only a
// small, constant neighborhood of cells. The same seed with the same sequence
// of tick inputs reproduces the exact same simulation.
func NewWorld(cfg *Config, seed uint64) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	grid, err := NewSpatialGrid(cfg.WorldWidth, cfg.WorldHeight, cfg.VisualRange)
	if err != nil {
		return nil, err
	}
	return &World{
		cfg:        cfg,
		rng:        rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		grid:       grid,
		phase:      PhaseSetup,
		population: cfg.InitialPopulation,
	}, nil
}

// Config returns the world's tuning constants.
func (w *World) Config() *Config { return w.cfg }

// Grid exposes the spatial index, mainly for diagnostics overlays.
func (w *World) Grid() *SpatialGrid { return w.grid }

// Phase returns the current phase of the command machine.
func (w *World) Phase() Phase { return w.phase }

// Population returns the target population used when (re)seeding.
func (w *World) Population() int { return w.population }

// Boids returns the current snapshot in index order, ready for rendering.
// Callers must treat the slice as read-only; it is reused across ticks.
func (w *World) Boids() []Boid { return w.boids }

// Step applies cmd and, if the world ends up Running, advances the simulation
// by dt seconds with the given obstacle point. It returns the post-tick boid
// snapshot. A negative or non-finite dt is a caller bug and is rejected
// rather than silently clamped.
func (w *World) Step(dt float64, obstacle geometry.Vector2D, cmd Command) ([]Boid, error) {
	if dt < 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return nil, fmt.Errorf("%w: elapsed seconds must be finite and non-negative, got %g",
			ErrInvalidTick, dt)
	}

	w.apply(cmd)

	if w.phase == PhaseRunning {
		w.tick(dt, obstacle)
	}
	return w.boids, nil
}

// apply runs the phase transition function. Unknown or inapplicable commands
// are ignored, not errors: the presentation layer may emit them freely.
func (w *World) apply(cmd Command) {
	switch cmd {
	case CmdStart:
		if w.phase == PhaseSetup {
			w.seed(w.population)
			w.phase = PhaseRunning
		}
	case CmdPause:
		if w.phase == PhaseRunning {
			w.phase = PhasePaused
		}
	case CmdResume:
		if w.phase == PhasePaused {
			w.phase = PhaseRunning
		}
	case CmdReset:
		// Back to Setup with the boids discarded. The adjusted population
		// target survives a reset; the next CmdStart reseeds at that count.
		w.boids = w.boids[:0]
		w.next = w.next[:0]
		w.phase = PhaseSetup
	case CmdGrow:
		if w.phase != PhaseSetup {
			w.seed(w.population + w.cfg.PopulationStep)
		}
	case CmdShrink:
		if w.phase != PhaseSetup && w.population-w.cfg.PopulationStep >= w.cfg.MinPopulation {
			w.seed(w.population - w.cfg.PopulationStep)
		}
	}
}

// seed discards the whole population and reseeds a fresh one at count. Resizes
// are wholesale by design, never an incremental add/remove.
func (w *World) seed(count int) {
	w.population = count
	w.boids = w.boids[:0]
	for i := 0; i < count; i++ {
		w.boids = append(w.boids, NewBoid(w.rng, w.cfg.WorldWidth, w.cfg.WorldHeight, w.cfg.SpeedLimit))
	}
	if cap(w.next) < count {
		w.next = make([]Boid, count)
	}
	w.next = w.next[:count]
}

// tick runs one Running step:
//
//	rebuild grid -> per-boid candidates -> behavior + speed clamp (reading the
//	frozen pre-tick snapshot, writing the back buffer) -> position integration
//	-> boundary/obstacle steering -> buffer swap.
//
// The rebuild must fully complete before any behavior runs; that ordering is
// the only synchronization boundary a parallel variant would need to keep.
func (w *World) tick(dt float64, obstacle geometry.Vector2D) {
	w.grid.Clear()
	for i := range w.boids {
		w.grid.Insert(i, w.boids[i].Pos)
	}

	for i := range w.boids {
		w.scratch = w.grid.QueryCandidates(w.boids[i].Pos, w.cfg.VisualRange, w.scratch[:0])

		b := w.boids[i]
		b.Flock(i, w.scratch, w.boids, w.cfg)
		b.LimitSpeed(w.cfg.SpeedLimit)
		w.next[i] = b
	}

	for i := range w.next {
		w.next[i].Advance(dt)
		w.next[i].Steer(obstacle, w.cfg)
	}

	w.boids, w.next = w.next, w.boids
}
