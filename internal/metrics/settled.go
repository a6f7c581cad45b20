package metrics

// Defaults for the settled detector at a 60 Hz tick rate.
const (
	DefaultSettleThreshold = 0.05
	DefaultSettleWindow    = 60
)

// Settled watches the mean pellet speed and records the tick at which
// the bed has stayed below a threshold for a full window. Renewed motion
// clears the mark.
type Settled struct {
	name      string
	threshold float64
	window    int
	streak    int
	ticks     int
	settledAt int
}

func NewSettled(threshold float64, window int) *Settled {
	return &Settled{
		name:      "settled_tick",
		threshold: threshold,
		window:    window,
		settledAt: -1,
	}
}

func (s *Settled) Name() string {
	return s.name
}

func (s *Settled) Observe(meanSpeed float64) {
	s.ticks++
	if meanSpeed < s.threshold {
		s.streak++
		if s.streak == s.window {
			s.settledAt = s.ticks
		}
	} else {
		s.streak = 0
		s.settledAt = -1
	}
}

// Done reports whether the bed is currently considered settled.
func (s *Settled) Done() bool {
	return s.settledAt >= 0
}

// Value returns the settling tick, or -1 while unsettled.
func (s *Settled) Value() float64 {
	return float64(s.settledAt)
}

func (s *Settled) Reset() {
	s.streak = 0
	s.ticks = 0
	s.settledAt = -1
}
