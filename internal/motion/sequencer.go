package motion

import (
	"math/rand"
	"time"

	"github.com/san-kum/shakerbed/internal/clock"
	"github.com/san-kum/shakerbed/internal/tilt"
)

// State reports what the sequencer is currently doing.
type State int

const (
	Idle State = iota
	Running
	Paused
)

func (s State) String() string {
	switch s {
	case Running:
		return "RUNNING"
	case Paused:
		return "PAUSED"
	}
	return "IDLE"
}

// Sequencer plays gesture sequences one timed step at a time. It owns no
// goroutine; the caller drives it by calling Advance once per tick. Pausing
// freezes the underlying clock so a resumed step continues where it left off.
//
// A Sequencer is not safe for concurrent use.
type Sequencer struct {
	clk *clock.Pausable
	rng *rand.Rand

	seq       Sequence
	idx       int
	stepStart time.Time
	running   bool
	loop      bool

	lifts   tilt.Lifts
	impulse float64
}

// NewSequencer builds an idle sequencer reading time from src.
func NewSequencer(src clock.Clock, rng *rand.Rand) *Sequencer {
	return &Sequencer{
		clk:     clock.NewPausable(src),
		rng:     rng,
		idx:     -1,
		impulse: defaultImpulse,
	}
}

// Start generates and installs the sequence for g, clearing any prior
// playback state including a pending pause.
func (s *Sequencer) Start(g Gesture) error {
	seq, err := Generate(g, s.rng)
	if err != nil {
		return err
	}
	s.clk.Resume()
	s.seq = seq
	s.idx = -1
	s.running = true
	s.lifts = tilt.Lifts{}
	s.impulse = defaultImpulse
	return nil
}

// Advance moves playback forward to the current time and returns the
// active actuator lifts and impulse scale. While paused the previous
// outputs are held; once idle the outputs revert to a flat bed at unit
// impulse.
func (s *Sequencer) Advance() (tilt.Lifts, float64) {
	if s.running && !s.clk.Paused() {
		now := s.clk.Now()
		if s.idx == -1 || now.Sub(s.stepStart).Seconds() > s.seq.Steps[s.idx].Duration {
			s.idx++
			if s.idx >= len(s.seq.Steps) {
				if s.loop && !s.seq.OneShot {
					s.idx = 0
					if s.seq.Gesture == Scramble {
						s.seq = NewScramble(s.rng)
					}
				} else {
					s.running = false
					s.idx = -1
				}
			}
			if s.running {
				s.stepStart = now
				step := s.seq.Steps[s.idx]
				s.lifts = step.Lifts
				s.impulse = step.Impulse
			}
		}
	}
	if !s.running {
		s.lifts = tilt.Lifts{}
		s.impulse = defaultImpulse
	}
	return s.lifts, s.impulse
}

// State returns Paused whenever the clock is frozen, Running during
// playback and Idle otherwise.
func (s *Sequencer) State() State {
	switch {
	case s.clk.Paused():
		return Paused
	case s.running:
		return Running
	}
	return Idle
}

// Gesture returns the most recently installed gesture, or "" before the
// first Start.
func (s *Sequencer) Gesture() Gesture { return s.seq.Gesture }

// Sequence returns the currently installed sequence.
func (s *Sequencer) Sequence() Sequence { return s.seq }

// StepIndex returns the zero-based index of the active step, or -1 when
// playback has not reached the first step or has finished.
func (s *Sequencer) StepIndex() int { return s.idx }

// StepCount returns the number of steps in the installed sequence.
func (s *Sequencer) StepCount() int { return len(s.seq.Steps) }

// Elapsed returns seconds spent in the active step. Frozen while paused.
func (s *Sequencer) Elapsed() float64 {
	if !s.running || s.idx < 0 {
		return 0
	}
	return s.clk.Now().Sub(s.stepStart).Seconds()
}

// TogglePause flips the pause state and reports the new value.
func (s *Sequencer) TogglePause() bool { return s.clk.Toggle() }

// Paused reports whether playback and physics should hold.
func (s *Sequencer) Paused() bool { return s.clk.Paused() }

// ToggleLoop flips the loop flag and reports the new value. The flag has
// no effect on one-shot sequences.
func (s *Sequencer) ToggleLoop() bool {
	s.loop = !s.loop
	return s.loop
}

// Loop reports whether finished sequences wrap back to step zero.
func (s *Sequencer) Loop() bool { return s.loop }
