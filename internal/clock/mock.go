package clock

import (
	"sync"
	"time"
)

// Mock is a manually driven clock. Headless runs advance it by exactly
// one physics timestep per tick, which keeps sequencer timing exact.
type Mock struct {
	mu      sync.RWMutex
	current time.Time
}

func NewMock(start time.Time) *Mock {
	return &Mock{current: start}
}

func (m *Mock) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Set jumps the clock to t.
func (m *Mock) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = t
}

// Advance moves the clock forward by d.
func (m *Mock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = m.current.Add(d)
}
