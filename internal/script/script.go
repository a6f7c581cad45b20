// Package script runs YAML gesture timelines headlessly: each step
// selects a gesture and plays it for a span of simulated seconds before
// the next one takes over.
package script

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/shakerbed/internal/clock"
	"github.com/san-kum/shakerbed/internal/motion"
	"github.com/san-kum/shakerbed/internal/sim"
	"github.com/san-kum/shakerbed/internal/tilt"
)

var (
	ErrEmptyScenario = errors.New("script: scenario has no steps")
	ErrBadStep       = errors.New("script: invalid step")
)

// Scenario is a named timeline of gesture steps.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Steps       []Step `yaml:"steps"`
}

// Step plays one gesture for a span of simulated seconds. Loop re-arms
// the gesture for the whole span; it has no effect on flatten.
type Step struct {
	Gesture string  `yaml:"gesture"`
	Seconds float64 `yaml:"seconds"`
	Loop    bool    `yaml:"loop"`
}

// Load reads and validates a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("script: %s: %w", path, err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Validate checks every step for a known gesture and a positive span.
func (sc *Scenario) Validate() error {
	if len(sc.Steps) == 0 {
		return ErrEmptyScenario
	}
	for i, step := range sc.Steps {
		if _, err := motion.ParseGesture(step.Gesture); err != nil {
			return fmt.Errorf("%w %d: %v", ErrBadStep, i+1, err)
		}
		if step.Seconds <= 0 {
			return fmt.Errorf("%w %d: seconds must be positive, got %f", ErrBadStep, i+1, step.Seconds)
		}
	}
	return nil
}

// Duration returns the total simulated time of the scenario in seconds.
func (sc *Scenario) Duration() float64 {
	var total float64
	for _, step := range sc.Steps {
		total += step.Seconds
	}
	return total
}

// Run plays the whole scenario on one controller and mock clock,
// recording every tick. The result carries the scenario name in place
// of a single gesture. Progress notes go to progress when non-nil.
func Run(ctx context.Context, cfg sim.Config, sc *Scenario, progress func(i int, step Step)) (*sim.Result, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}

	mock := clock.NewMock(time.Unix(0, 0))
	ctrl := sim.NewController(cfg, mock)
	rec := sim.NewRecorder(ctrl.Config().Dt)

	dt := ctrl.Config().Dt
	tickStep := time.Duration(dt * float64(time.Second))
	looping := false

	var last sim.Snapshot
	for i, step := range sc.Steps {
		if progress != nil {
			progress(i, step)
		}

		gesture, _ := motion.ParseGesture(step.Gesture)
		cmd, err := sim.GestureCommand(gesture)
		if err != nil {
			return nil, err
		}
		if step.Loop != looping {
			ctrl.Push(sim.CmdToggleLoop)
			looping = step.Loop
		}
		ctrl.Push(cmd)

		ticks := int(step.Seconds / dt)
		for n := 0; n < ticks; n++ {
			if n%600 == 0 {
				select {
				case <-ctx.Done():
					return nil, ctx.Err()
				default:
				}
			}
			last = ctrl.Tick()
			rec.Observe(last)
			mock.Advance(tickStep)
		}
	}

	final := make([]tilt.Vec2, len(last.Positions))
	copy(final, last.Positions)

	// the scenario name stands in for a single gesture in the metadata
	res := rec.Result(ctrl, motion.Gesture(sc.Name), final)
	res.Loop = looping
	return res, nil
}
