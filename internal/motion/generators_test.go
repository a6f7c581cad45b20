package motion_test

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/shakerbed/internal/motion"
	"github.com/san-kum/shakerbed/internal/tilt"
)

// raisedActuator returns the index of the single nonzero lift, or -1.
func raisedActuator(l tilt.Lifts) int {
	idx := -1
	for i, v := range l {
		if v == 0 {
			continue
		}
		if idx != -1 {
			return -1
		}
		idx = i
	}
	return idx
}

var _ = Describe("Generators", func() {
	Describe("Flatten", func() {
		var seq motion.Sequence

		BeforeEach(func() {
			seq = motion.NewFlatten()
		})

		It("is always one-shot", func() {
			Expect(seq.OneShot).To(BeTrue())
			Expect(seq.Gesture).To(Equal(motion.Flatten))
		})

		It("ramps the wall actuators in equal increments", func() {
			Expect(len(seq.Steps)).To(BeNumerically(">", 10))
			prev := 0.0
			for i := 0; i < 10; i++ {
				step := seq.Steps[i]
				Expect(step.Lifts[0]).To(BeZero(), "ram actuator stays down during the ramp")
				Expect(step.Lifts[1]).To(Equal(step.Lifts[2]), "walls rise together")
				Expect(step.Lifts[1]).To(BeNumerically(">", prev))
				Expect(step.Impulse).To(Equal(1.0))
				prev = step.Lifts[1]
			}
			Expect(prev).To(BeNumerically("~", motion.LiftHeight, 1e-12))
		})

		It("rams, holds, then settles flat", func() {
			Expect(seq.Steps).To(HaveLen(13))

			ram := seq.Steps[10]
			Expect(ram.Lifts).To(Equal(tilt.Lifts{motion.LiftHeight, 0, 0}))
			Expect(ram.Impulse).To(BeNumerically(">", 1.0))
			Expect(ram.Duration).To(BeNumerically("<", 0.1), "ram is a near-instant pulse")

			hold := seq.Steps[11]
			Expect(hold.Lifts).To(Equal(ram.Lifts))
			Expect(hold.Impulse).To(Equal(1.0))

			settle := seq.Steps[12]
			Expect(settle.Lifts).To(Equal(tilt.Lifts{}))
			Expect(settle.Duration).To(BeNumerically(">", 0))
		})
	})

	Describe("Scramble", func() {
		It("thumps exactly one actuator then rests flat", func() {
			rng := rand.New(rand.NewSource(3))
			seq := motion.NewScramble(rng)

			Expect(seq.Steps).To(HaveLen(2))
			Expect(seq.OneShot).To(BeFalse())

			thump := seq.Steps[0]
			Expect(raisedActuator(thump.Lifts)).To(BeNumerically(">=", 0))
			Expect(thump.Impulse).To(BeNumerically(">", 1.0))

			rest := seq.Steps[1]
			Expect(rest.Lifts).To(Equal(tilt.Lifts{}))
			Expect(rest.Duration).To(BeNumerically(">", thump.Duration))
		})

		It("chooses varied actuators across generations", func() {
			rng := rand.New(rand.NewSource(7))
			seen := map[int]bool{}
			for i := 0; i < 100; i++ {
				seq := motion.NewScramble(rng)
				seen[raisedActuator(seq.Steps[0].Lifts)] = true
			}
			Expect(len(seen)).To(BeNumerically(">=", 2))
			Expect(seen).NotTo(HaveKey(-1))
		})
	})

	Describe("Dump", func() {
		It("walks the rim round-robin for ten cycles", func() {
			seq := motion.NewDump()

			Expect(seq.Steps).To(HaveLen(30))
			Expect(seq.OneShot).To(BeFalse())
			for i, step := range seq.Steps {
				Expect(raisedActuator(step.Lifts)).To(Equal(i%tilt.ActuatorCount))
				Expect(step.Lifts[i%tilt.ActuatorCount]).To(Equal(motion.LiftHeight))
				Expect(step.Duration).To(Equal(seq.Steps[0].Duration))
				Expect(step.Impulse).To(Equal(seq.Steps[0].Impulse))
			}
		})
	})

	Describe("Generate", func() {
		It("dispatches every known gesture", func() {
			rng := rand.New(rand.NewSource(1))
			for _, g := range motion.Gestures() {
				seq, err := motion.Generate(g, rng)
				Expect(err).NotTo(HaveOccurred())
				Expect(seq.Gesture).To(Equal(g))
				Expect(seq.Steps).NotTo(BeEmpty())
				Expect(seq.Duration()).To(BeNumerically(">", 0))
			}
		})

		It("rejects unknown gestures", func() {
			rng := rand.New(rand.NewSource(1))
			_, err := motion.Generate("wiggle", rng)
			Expect(err).To(MatchError(motion.ErrUnknownGesture))
		})
	})

	Describe("ParseGesture", func() {
		It("accepts case-insensitive names", func() {
			g, err := motion.ParseGesture("  Flatten ")
			Expect(err).NotTo(HaveOccurred())
			Expect(g).To(Equal(motion.Flatten))
		})

		It("rejects unknown names", func() {
			_, err := motion.ParseGesture("jiggle")
			Expect(err).To(MatchError(motion.ErrUnknownGesture))
		})
	})
})
