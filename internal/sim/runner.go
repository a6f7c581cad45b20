package sim

import (
	"context"
	"fmt"
	"time"

	"github.com/san-kum/shakerbed/internal/clock"
	"github.com/san-kum/shakerbed/internal/metrics"
	"github.com/san-kum/shakerbed/internal/motion"
	"github.com/san-kum/shakerbed/internal/tilt"
)

// maxRunTicks caps open-ended runs at ten simulated minutes.
const maxRunTicks = 36000

// Recorder accumulates per-tick series and run-level metrics from
// controller snapshots.
type Recorder struct {
	dt        float64
	times     []float64
	lifts     []tilt.Lifts
	impulses  []float64
	agitation []float64
	spread    []float64
	centroids []tilt.Vec2

	effort  *metrics.Effort
	settled *metrics.Settled
}

func NewRecorder(dt float64) *Recorder {
	return &Recorder{
		dt:      dt,
		effort:  metrics.NewEffort(dt),
		settled: metrics.NewSettled(metrics.DefaultSettleThreshold, metrics.DefaultSettleWindow),
	}
}

// Observe appends one snapshot to the recorded series.
func (r *Recorder) Observe(s Snapshot) {
	r.times = append(r.times, s.Time)
	r.lifts = append(r.lifts, s.Lifts)
	r.impulses = append(r.impulses, s.Impulse)
	r.agitation = append(r.agitation, s.Agitation)
	r.spread = append(r.spread, s.Spread)
	r.centroids = append(r.centroids, s.Centroid)

	r.effort.Observe(s.Force.Length(), s.Impulse)
	r.settled.Observe(s.Agitation)
}

// Settled reports whether the bed has been quiet for a full window.
func (r *Recorder) Settled() bool { return r.settled.Done() }

// Result folds the series into a Result for the given controller.
func (r *Recorder) Result(ctrl *Controller, gesture motion.Gesture, final []tilt.Vec2) *Result {
	cfg := ctrl.Config()
	res := &Result{
		Gesture:   gesture,
		Seed:      ctrl.Seed(),
		Pellets:   cfg.Pellets,
		Dt:        cfg.Dt,
		Ticks:     len(r.times),
		Times:     r.times,
		Lifts:     r.lifts,
		Impulses:  r.impulses,
		Agitation: r.agitation,
		Spread:    r.spread,
		Centroids: r.centroids,
		Final:     final,
		Metrics:   make(map[string]float64),
	}
	if n := len(r.times); n > 0 {
		res.Seconds = r.times[n-1] + cfg.Dt
	}

	var meanAgit, peakAgit float64
	for _, a := range r.agitation {
		meanAgit += a
		if a > peakAgit {
			peakAgit = a
		}
	}
	if len(r.agitation) > 0 {
		meanAgit /= float64(len(r.agitation))
	}

	res.Metrics[r.effort.Name()] = r.effort.Value()
	res.Metrics[r.settled.Name()] = r.settled.Value()
	res.Metrics["mean_agitation"] = meanAgit
	res.Metrics["peak_agitation"] = peakAgit
	if n := len(r.spread); n > 0 {
		res.Metrics["final_spread"] = r.spread[n-1]
	}
	return res
}

// Run executes one gesture headlessly on a mock clock stepped in
// lock-step with the physics, so the outcome depends only on the seed.
// A non-positive seconds runs until the sequencer goes idle and the bed
// settles, capped at ten simulated minutes; looped runs must give an
// explicit duration.
func Run(ctx context.Context, cfg Config, gesture motion.Gesture, seconds float64, loop bool) (*Result, error) {
	cfg = cfg.withDefaults()
	if loop && seconds <= 0 {
		return nil, fmt.Errorf("sim: looped %s run needs an explicit duration", gesture)
	}

	mock := clock.NewMock(time.Unix(0, 0))
	ctrl := NewController(cfg, mock)

	cmd, err := GestureCommand(gesture)
	if err != nil {
		return nil, err
	}
	if loop {
		ctrl.Push(CmdToggleLoop)
	}
	ctrl.Push(cmd)

	rec := NewRecorder(cfg.Dt)
	tickStep := time.Duration(cfg.Dt * float64(time.Second))
	limit := int(seconds / cfg.Dt)
	if seconds <= 0 {
		limit = maxRunTicks
	}

	for i := 0; i < limit; i++ {
		if i%600 == 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
		}

		snap := ctrl.Tick()
		rec.Observe(snap)
		mock.Advance(tickStep)

		if seconds <= 0 && snap.State == motion.Idle && rec.Settled() {
			break
		}
	}

	final := make([]tilt.Vec2, len(ctrl.posBuf))
	copy(final, ctrl.posBuf)
	res := rec.Result(ctrl, gesture, final)
	res.Loop = loop
	return res, nil
}
