package sim

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/san-kum/shakerbed/internal/bed"
	"github.com/san-kum/shakerbed/internal/clock"
	"github.com/san-kum/shakerbed/internal/metrics"
	"github.com/san-kum/shakerbed/internal/motion"
	"github.com/san-kum/shakerbed/internal/tilt"
)

// Controller owns the world, the sequencer and the command queue, and
// advances them together one fixed tick at a time. Everything is owned
// by the single goroutine calling Tick; Push must be called from that
// goroutine too.
type Controller struct {
	cfg   Config
	seed  int64
	rng   *rand.Rand
	seqr  *motion.Sequencer
	world *bed.World

	pending []Command
	quit    bool
	tick    int
	posBuf  []tilt.Vec2
}

// NewController builds an idle controller with a uniformly spread bed.
// The clock source feeds the sequencer; pass a mock for deterministic runs.
func NewController(cfg Config, src clock.Clock) *Controller {
	cfg = cfg.withDefaults()
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	return &Controller{
		cfg:    cfg,
		seed:   seed,
		rng:    rng,
		seqr:   motion.NewSequencer(src, rng),
		world:  bed.New(bed.UniformSpread(rng, cfg.Pellets)),
		posBuf: make([]tilt.Vec2, 0, cfg.Pellets),
	}
}

// Push queues a command for the next Tick.
func (c *Controller) Push(cmd Command) {
	c.pending = append(c.pending, cmd)
}

// Seed returns the seed in effect, resolved from config or the wall clock.
func (c *Controller) Seed() int64 { return c.seed }

// Config returns the resolved run configuration.
func (c *Controller) Config() Config { return c.cfg }

// Done reports whether a quit command has been consumed.
func (c *Controller) Done() bool { return c.quit }

// Select rebuilds the bed with the gesture's starting layout and starts
// its sequence: a centered pile for a flatten, a uniform spread otherwise.
func (c *Controller) Select(g motion.Gesture) error {
	switch g {
	case motion.Flatten:
		c.world.Reset(bed.MountainPile(c.rng, c.cfg.Pellets))
	case motion.Scramble, motion.Dump:
		c.world.Reset(bed.UniformSpread(c.rng, c.cfg.Pellets))
	default:
		return fmt.Errorf("%w: %q", motion.ErrUnknownGesture, g)
	}
	return c.seqr.Start(g)
}

func (c *Controller) apply(cmd Command) {
	switch cmd {
	case CmdFlatten:
		c.Select(motion.Flatten)
	case CmdScramble:
		c.Select(motion.Scramble)
	case CmdDump:
		c.Select(motion.Dump)
	case CmdTogglePause:
		c.seqr.TogglePause()
	case CmdToggleLoop:
		c.seqr.ToggleLoop()
	case CmdQuit:
		c.quit = true
	}
}

// Tick runs one fixed step of the loop: drain queued commands, advance
// the sequencer, convert lifts to a drive force, step the world, then
// snapshot. While paused the sequencer and physics both hold still and
// the snapshot repeats the frozen state.
func (c *Controller) Tick() Snapshot {
	for _, cmd := range c.pending {
		c.apply(cmd)
	}
	c.pending = c.pending[:0]

	lifts, impulse := c.seqr.Advance()
	force := tilt.SlopeForce(lifts, bed.Radius, motion.ForceFactor)

	if !c.seqr.Paused() {
		c.world.ApplyForce(force, impulse)
		c.world.Step(c.cfg.Dt)
		c.tick++
	}

	c.posBuf = c.world.Positions(c.posBuf[:0])
	return Snapshot{
		Tick:      c.tick,
		Time:      float64(c.tick) * c.cfg.Dt,
		Positions: c.posBuf,
		Lifts:     lifts,
		Impulse:   impulse,
		Force:     force,
		Gesture:   c.seqr.Gesture(),
		State:     c.seqr.State(),
		StepIndex: c.seqr.StepIndex(),
		StepCount: c.seqr.StepCount(),
		Loop:      c.seqr.Loop(),
		Agitation: c.world.MeanSpeed(),
		Spread:    metrics.Spread(c.posBuf),
		Centroid:  metrics.Centroid(c.posBuf),
	}
}
