package bed

import (
	"math"
	"math/rand"

	"github.com/san-kum/shakerbed/internal/tilt"
)

// MountainPile concentrates n pellets in a tight heap around the bed
// center, the starting layout for a flatten pass.
func MountainPile(rng *rand.Rand, n int) []tilt.Vec2 {
	return disk(rng, n, 0.3*Radius)
}

// UniformSpread scatters n pellets across the whole bed, keeping a
// pellet diameter of clearance from the rim.
func UniformSpread(rng *rand.Rand, n int) []tilt.Vec2 {
	return disk(rng, n, Radius-2*PelletRadius)
}

// disk samples n points uniformly over a disk of radius r. The square
// root on the radial draw keeps the area density uniform.
func disk(rng *rand.Rand, n int, r float64) []tilt.Vec2 {
	pts := make([]tilt.Vec2, n)
	for i := range pts {
		rad := math.Sqrt(rng.Float64()) * r
		ang := rng.Float64() * 2 * math.Pi
		pts[i] = tilt.Vec2{X: rad * math.Cos(ang), Y: rad * math.Sin(ang)}
	}
	return pts
}
