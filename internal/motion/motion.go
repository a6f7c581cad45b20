package motion

import (
	"errors"
	"fmt"
	"strings"

	"github.com/san-kum/shakerbed/internal/tilt"
)

// ErrUnknownGesture indicates a gesture name with no registered generator.
var ErrUnknownGesture = errors.New("motion: unknown gesture")

// Gesture names a built-in actuator choreography.
type Gesture string

const (
	// Flatten raises two rim actuators as containment walls, rams the
	// pile with the third and settles back to flat. Always one-shot.
	Flatten Gesture = "flatten"

	// Scramble thumps one randomly chosen actuator and rests. A fresh
	// actuator is drawn every loop iteration.
	Scramble Gesture = "scramble"

	// Dump rolls the lift around the rim to spill material over the edge.
	Dump Gesture = "dump"
)

// Gestures returns every built-in gesture in menu order.
func Gestures() []Gesture {
	return []Gesture{Flatten, Scramble, Dump}
}

// ParseGesture resolves a user-supplied name to a Gesture.
func ParseGesture(name string) (Gesture, error) {
	switch g := Gesture(strings.ToLower(strings.TrimSpace(name))); g {
	case Flatten, Scramble, Dump:
		return g, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownGesture, name)
}

// Step is a single actuator target held for a fixed duration.
type Step struct {
	Lifts    tilt.Lifts
	Duration float64 // seconds
	Impulse  float64
}

// Sequence is an ordered list of steps realizing one gesture. OneShot
// sequences never loop regardless of the loop flag.
type Sequence struct {
	Gesture Gesture
	Steps   []Step
	OneShot bool
}

// Duration returns the total playback time of one pass in seconds.
func (s Sequence) Duration() float64 {
	var total float64
	for _, st := range s.Steps {
		total += st.Duration
	}
	return total
}
