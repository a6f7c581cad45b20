package metrics

type Effort struct {
	name string
	dt   float64
	sum  float64
}

// NewEffort integrates drive effort, the impulse-scaled force magnitude
// summed over time.
func NewEffort(dt float64) *Effort {
	return &Effort{
		name: "drive_effort",
		dt:   dt,
	}
}

func (e *Effort) Name() string {
	return e.name
}

func (e *Effort) Observe(forceMag, impulse float64) {
	e.sum += forceMag * impulse * e.dt
}

func (e *Effort) Value() float64 {
	return e.sum
}

func (e *Effort) Reset() {
	e.sum = 0
}
