// Package motion defines the actuator choreography for the shaker bed.
//
// A [Gesture] names a built-in routine, a [Sequence] is its expansion into
// timed [Step] values and a [Sequencer] plays sequences back against an
// injected clock:
//
//   - [Flatten]: wall-lift, ram and settle; always one-shot
//   - [Scramble]: random single-actuator thump, regenerated per loop
//   - [Dump]: round-robin rim lifts that spill material over the edge
//
// # Playback
//
// The sequencer is tick-driven and holds no goroutine:
//
//	seqr := motion.NewSequencer(clock.NewSystem(), rng)
//	seqr.Start(motion.Scramble)
//	for range ticker.C {
//	    lifts, impulse := seqr.Advance()
//	    // feed lifts and impulse to the physics step
//	}
//
// Pausing is implemented with a pause-aware clock, so a step resumed after
// a pause continues from its frozen elapsed time rather than skipping ahead.
package motion
