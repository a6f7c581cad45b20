package clock

import (
	"testing"
	"time"
)

func TestMockAdvance(t *testing.T) {
	start := time.Unix(1000, 0)
	m := NewMock(start)

	if !m.Now().Equal(start) {
		t.Errorf("expected start time, got %v", m.Now())
	}

	m.Advance(250 * time.Millisecond)
	want := start.Add(250 * time.Millisecond)
	if !m.Now().Equal(want) {
		t.Errorf("expected %v, got %v", want, m.Now())
	}

	m.Set(start.Add(time.Hour))
	if !m.Now().Equal(start.Add(time.Hour)) {
		t.Errorf("set did not take, got %v", m.Now())
	}
}

func TestPausableFreezesTime(t *testing.T) {
	base := NewMock(time.Unix(0, 0))
	p := NewPausable(base)

	base.Advance(2 * time.Second)
	before := p.Now()

	p.Pause()
	base.Advance(10 * time.Second)
	if !p.Now().Equal(before) {
		t.Errorf("paused clock moved from %v to %v", before, p.Now())
	}

	p.Resume()
	if !p.Now().Equal(before) {
		t.Errorf("resume jumped from %v to %v", before, p.Now())
	}

	base.Advance(3 * time.Second)
	want := before.Add(3 * time.Second)
	if !p.Now().Equal(want) {
		t.Errorf("expected %v after resume, got %v", want, p.Now())
	}
}

func TestPausableToggle(t *testing.T) {
	p := NewPausable(NewMock(time.Unix(0, 0)))

	if p.Paused() {
		t.Error("new clock should not be paused")
	}
	if !p.Toggle() {
		t.Error("first toggle should pause")
	}
	if !p.Paused() {
		t.Error("expected paused after toggle")
	}
	if p.Toggle() {
		t.Error("second toggle should resume")
	}
	if p.Paused() {
		t.Error("expected running after second toggle")
	}
}

func TestPausableDoublePause(t *testing.T) {
	base := NewMock(time.Unix(0, 0))
	p := NewPausable(base)

	p.Pause()
	base.Advance(time.Second)
	p.Pause() // no-op, must not reset the pause start
	base.Advance(time.Second)
	p.Resume()
	p.Resume() // no-op

	base.Advance(time.Second)
	want := time.Unix(0, 0).Add(time.Second)
	if !p.Now().Equal(want) {
		t.Errorf("expected %v, got %v", want, p.Now())
	}
}
