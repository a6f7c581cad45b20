package motion

import (
	"fmt"
	"math/rand"

	"github.com/san-kum/shakerbed/internal/tilt"
)

// Drive parameters shared with the physics layer.
const (
	// LiftHeight is the full actuator extension in world units.
	LiftHeight = 1.5

	// ForceFactor scales the projected slope normal into a drive force.
	ForceFactor = 100.0
)

// Gesture tuning. Durations in seconds, impulses dimensionless.
const (
	flattenRampDur    = 1.5
	flattenRampSteps  = 10
	flattenRamDur     = 0.01
	flattenRamImpulse = 3.5
	flattenHoldDur    = 2.0
	flattenSettleDur  = 2.0

	scrambleThumpDur = 0.15
	scrambleImpulse  = 3.0
	scramblePauseDur = 5.0

	dumpCycles  = 10
	dumpHoldDur = 0.8
	dumpImpulse = 2.5
)

// defaultImpulse applies to steps without an extra kick and to the idle bed.
const defaultImpulse = 1.0

// NewFlatten builds the one-shot wall-lift choreography: actuators 1 and 2
// ramp up in equal increments to form containment walls, actuator 0 rams
// the pile with a short high-impulse pulse, holds, then the bed settles flat.
func NewFlatten() Sequence {
	steps := make([]Step, 0, flattenRampSteps+3)
	for i := 0; i < flattenRampSteps; i++ {
		h := float64(i+1) / flattenRampSteps * LiftHeight
		steps = append(steps, Step{
			Lifts:    tilt.Lifts{0, h, h},
			Duration: flattenRampDur / flattenRampSteps,
			Impulse:  defaultImpulse,
		})
	}
	steps = append(steps,
		Step{Lifts: tilt.Lifts{LiftHeight, 0, 0}, Duration: flattenRamDur, Impulse: flattenRamImpulse},
		Step{Lifts: tilt.Lifts{LiftHeight, 0, 0}, Duration: flattenHoldDur, Impulse: defaultImpulse},
		Step{Lifts: tilt.Lifts{}, Duration: flattenSettleDur, Impulse: defaultImpulse},
	)
	return Sequence{Gesture: Flatten, Steps: steps, OneShot: true}
}

// NewScramble thumps one uniformly chosen actuator and rests flat. Callers
// looping a scramble should regenerate it each pass so the choice varies.
func NewScramble(rng *rand.Rand) Sequence {
	var thump tilt.Lifts
	thump[rng.Intn(tilt.ActuatorCount)] = LiftHeight
	return Sequence{
		Gesture: Scramble,
		Steps: []Step{
			{Lifts: thump, Duration: scrambleThumpDur, Impulse: scrambleImpulse},
			{Lifts: tilt.Lifts{}, Duration: scramblePauseDur, Impulse: defaultImpulse},
		},
	}
}

// NewDump lifts each actuator in round-robin order for a fixed hold,
// repeated for a fixed number of cycles. The rolling tilt walks material
// across the bed and over the rim.
func NewDump() Sequence {
	steps := make([]Step, 0, dumpCycles*tilt.ActuatorCount)
	for c := 0; c < dumpCycles; c++ {
		for i := 0; i < tilt.ActuatorCount; i++ {
			var lifts tilt.Lifts
			lifts[i] = LiftHeight
			steps = append(steps, Step{Lifts: lifts, Duration: dumpHoldDur, Impulse: dumpImpulse})
		}
	}
	return Sequence{Gesture: Dump, Steps: steps}
}

// Generate builds the step sequence for a gesture. Only gestures with a
// random element draw from rng.
func Generate(g Gesture, rng *rand.Rand) (Sequence, error) {
	switch g {
	case Flatten:
		return NewFlatten(), nil
	case Scramble:
		return NewScramble(rng), nil
	case Dump:
		return NewDump(), nil
	}
	return Sequence{}, fmt.Errorf("%w: %q", ErrUnknownGesture, g)
}
