package motion_test

import (
	"math/rand"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/shakerbed/internal/clock"
	"github.com/san-kum/shakerbed/internal/motion"
	"github.com/san-kum/shakerbed/internal/tilt"
)

var _ = Describe("Sequencer", func() {
	const dt = time.Second / 60

	var (
		mock *clock.Mock
		seqr *motion.Sequencer
	)

	BeforeEach(func() {
		mock = clock.NewMock(time.Unix(0, 0))
		seqr = motion.NewSequencer(mock, rand.New(rand.NewSource(11)))
	})

	// tick advances time by one frame and plays the sequencer, n times.
	tick := func(n int) (tilt.Lifts, float64) {
		var lifts tilt.Lifts
		impulse := 0.0
		for i := 0; i < n; i++ {
			mock.Advance(dt)
			lifts, impulse = seqr.Advance()
		}
		return lifts, impulse
	}

	// skipStep jumps time past the whole active step in one advance.
	skipStep := func() {
		i := seqr.StepIndex()
		Expect(i).To(BeNumerically(">=", 0))
		dur := seqr.Sequence().Steps[i].Duration
		mock.Advance(time.Duration(dur*float64(time.Second)) + time.Millisecond)
		seqr.Advance()
	}

	It("outputs a flat bed at unit impulse when idle", func() {
		lifts, impulse := seqr.Advance()
		Expect(lifts).To(Equal(tilt.Lifts{}))
		Expect(impulse).To(Equal(1.0))
		Expect(seqr.State()).To(Equal(motion.Idle))
		Expect(seqr.StepIndex()).To(Equal(-1))
	})

	It("activates the first step on the next advance after start", func() {
		Expect(seqr.Start(motion.Flatten)).To(Succeed())
		Expect(seqr.StepIndex()).To(Equal(-1))

		lifts, impulse := seqr.Advance()
		Expect(seqr.StepIndex()).To(Equal(0))
		Expect(lifts).To(Equal(seqr.Sequence().Steps[0].Lifts))
		Expect(impulse).To(Equal(1.0))
	})

	It("holds a step for its full duration before advancing", func() {
		Expect(seqr.Start(motion.Dump)).To(Succeed())
		seqr.Advance()
		t0 := mock.Now()

		mock.Set(t0.Add(800 * time.Millisecond))
		seqr.Advance()
		Expect(seqr.StepIndex()).To(Equal(0), "elapsed equal to duration is not past it")

		mock.Advance(time.Nanosecond)
		seqr.Advance()
		Expect(seqr.StepIndex()).To(Equal(1))
	})

	It("goes idle after one pass when looping is off", func() {
		Expect(seqr.Start(motion.Scramble)).To(Succeed())
		seqr.Advance()
		skipStep()
		skipStep()

		Expect(seqr.State()).To(Equal(motion.Idle))
		lifts, impulse := seqr.Advance()
		Expect(lifts).To(Equal(tilt.Lifts{}))
		Expect(impulse).To(Equal(1.0))
	})

	It("never re-arms a flatten even when looping", func() {
		seqr.ToggleLoop()
		Expect(seqr.Start(motion.Flatten)).To(Succeed())
		seqr.Advance()

		for i := 0; i < 20 && seqr.State() == motion.Running; i++ {
			skipStep()
		}
		Expect(seqr.State()).To(Equal(motion.Idle))

		lifts, impulse := tick(30)
		Expect(lifts).To(Equal(tilt.Lifts{}))
		Expect(impulse).To(Equal(1.0))
		Expect(seqr.State()).To(Equal(motion.Idle), "one-shot gesture ignores the loop flag")
	})

	It("redraws the scramble actuator every loop", func() {
		seqr.ToggleLoop()
		Expect(seqr.Start(motion.Scramble)).To(Succeed())
		seqr.Advance()

		seen := map[int]bool{}
		for loop := 0; loop < 100; loop++ {
			Expect(seqr.State()).To(Equal(motion.Running))
			seen[raisedActuator(seqr.Sequence().Steps[0].Lifts)] = true
			skipStep()
			skipStep()
		}
		Expect(len(seen)).To(BeNumerically(">=", 2))
	})

	It("replays a dump from the top when looping", func() {
		seqr.ToggleLoop()
		Expect(seqr.Start(motion.Dump)).To(Succeed())
		seqr.Advance()

		for i := 0; i < 30; i++ {
			skipStep()
		}
		Expect(seqr.State()).To(Equal(motion.Running))
		Expect(seqr.StepIndex()).To(Equal(0))
		Expect(seqr.StepCount()).To(Equal(30))

		lifts, impulse := tick(1)
		Expect(lifts).To(Equal(tilt.Lifts{motion.LiftHeight, 0, 0}))
		Expect(impulse).To(BeNumerically(">", 1.0))
	})

	It("freezes step index and elapsed while paused", func() {
		Expect(seqr.Start(motion.Dump)).To(Succeed())
		tick(10)
		idx := seqr.StepIndex()
		elapsed := seqr.Elapsed()

		Expect(seqr.TogglePause()).To(BeTrue())
		Expect(seqr.State()).To(Equal(motion.Paused))
		tick(200)
		Expect(seqr.StepIndex()).To(Equal(idx))
		Expect(seqr.Elapsed()).To(Equal(elapsed))

		Expect(seqr.TogglePause()).To(BeFalse())
		Expect(seqr.State()).To(Equal(motion.Running))
		tick(1)
		Expect(seqr.StepIndex()).To(Equal(idx), "resumes the same step")
		Expect(seqr.Elapsed()).To(BeNumerically(">", elapsed))
	})

	It("clears a pending pause on start", func() {
		seqr.TogglePause()
		Expect(seqr.State()).To(Equal(motion.Paused))

		Expect(seqr.Start(motion.Dump)).To(Succeed())
		Expect(seqr.State()).To(Equal(motion.Running))
		tick(1)
		Expect(seqr.StepIndex()).To(Equal(0))
	})

	It("rejects unknown gestures without disturbing playback", func() {
		Expect(seqr.Start(motion.Dump)).To(Succeed())
		tick(1)

		Expect(seqr.Start(motion.Gesture("wobble"))).To(MatchError(motion.ErrUnknownGesture))
		Expect(seqr.State()).To(Equal(motion.Running))
		Expect(seqr.Gesture()).To(Equal(motion.Dump))
	})

	It("reports loop toggles", func() {
		Expect(seqr.Loop()).To(BeFalse())
		Expect(seqr.ToggleLoop()).To(BeTrue())
		Expect(seqr.ToggleLoop()).To(BeFalse())
	})
})
