package clock

import (
	"sync"
	"time"
)

// Pausable wraps a Clock and subtracts accumulated pause time from its
// readings. While paused, Now returns the same instant on every call,
// so elapsed-time comparisons against it stay frozen; on resume they
// continue from the pause point.
type Pausable struct {
	mu          sync.Mutex
	src         Clock
	paused      bool
	pauseStart  time.Time
	pausedTotal time.Duration
}

func NewPausable(src Clock) *Pausable {
	return &Pausable{src: src}
}

func (p *Pausable) Now() time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.paused {
		return p.pauseStart.Add(-p.pausedTotal)
	}
	return p.src.Now().Add(-p.pausedTotal)
}

func (p *Pausable) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.paused {
		return
	}
	p.paused = true
	p.pauseStart = p.src.Now()
}

func (p *Pausable) Resume() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.paused {
		return
	}
	p.paused = false
	p.pausedTotal += p.src.Now().Sub(p.pauseStart)
}

func (p *Pausable) Paused() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.paused
}

// Toggle flips the pause state and reports the new state.
func (p *Pausable) Toggle() bool {
	if p.Paused() {
		p.Resume()
		return false
	}
	p.Pause()
	return true
}
