package metrics

import (
	"math"

	"github.com/san-kum/shakerbed/internal/tilt"
)

// Centroid returns the mean pellet position.
func Centroid(positions []tilt.Vec2) tilt.Vec2 {
	if len(positions) == 0 {
		return tilt.Vec2{}
	}
	var c tilt.Vec2
	for _, p := range positions {
		c.X += p.X
		c.Y += p.Y
	}
	n := float64(len(positions))
	return tilt.Vec2{X: c.X / n, Y: c.Y / n}
}

// Spread returns the RMS pellet distance from the centroid. A fresh
// mountain pile reads low, a fully spread bed reads near half the rim
// radius.
func Spread(positions []tilt.Vec2) float64 {
	if len(positions) == 0 {
		return 0
	}
	c := Centroid(positions)
	var sum float64
	for _, p := range positions {
		dx := p.X - c.X
		dy := p.Y - c.Y
		sum += dx*dx + dy*dy
	}
	return math.Sqrt(sum / float64(len(positions)))
}
