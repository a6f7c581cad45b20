package sim

import (
	"fmt"

	"github.com/san-kum/shakerbed/internal/bed"
	"github.com/san-kum/shakerbed/internal/motion"
	"github.com/san-kum/shakerbed/internal/tilt"
)

// DefaultDt is the physics timestep matching the 60 Hz tick cadence.
const DefaultDt = 1.0 / 60.0

// Command is a discrete control event drained at the top of a tick.
type Command int

const (
	CmdFlatten Command = iota
	CmdScramble
	CmdDump
	CmdTogglePause
	CmdToggleLoop
	CmdQuit
)

// GestureCommand maps a gesture to its select command.
func GestureCommand(g motion.Gesture) (Command, error) {
	switch g {
	case motion.Flatten:
		return CmdFlatten, nil
	case motion.Scramble:
		return CmdScramble, nil
	case motion.Dump:
		return CmdDump, nil
	}
	return 0, fmt.Errorf("%w: %q", motion.ErrUnknownGesture, g)
}

// Snapshot is the read-only per-tick state handed to presentation and
// recording. Positions aliases a controller-owned buffer that is valid
// until the next Tick; copy it to retain.
type Snapshot struct {
	Tick      int
	Time      float64
	Positions []tilt.Vec2
	Lifts     tilt.Lifts
	Impulse   float64
	Force     tilt.Vec2
	Gesture   motion.Gesture
	State     motion.State
	StepIndex int
	StepCount int
	Loop      bool
	Agitation float64
	Spread    float64
	Centroid  tilt.Vec2
}

// Config sets up a controller run.
type Config struct {
	Pellets int
	Seed    int64 // 0 draws a seed from the wall clock
	Dt      float64
}

func (c Config) withDefaults() Config {
	if c.Pellets <= 0 {
		c.Pellets = bed.DefaultPellets
	}
	if c.Dt <= 0 {
		c.Dt = DefaultDt
	}
	return c
}

// Result holds the recorded series and summary metrics of one headless run.
type Result struct {
	Gesture motion.Gesture
	Seed    int64
	Pellets int
	Dt      float64
	Ticks   int
	Seconds float64
	Loop    bool

	Times     []float64
	Lifts     []tilt.Lifts
	Impulses  []float64
	Agitation []float64
	Spread    []float64
	Centroids []tilt.Vec2

	Final   []tilt.Vec2
	Metrics map[string]float64
}
