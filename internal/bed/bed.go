package bed

import (
	"math"

	"github.com/ByteArena/box2d"

	"github.com/san-kum/shakerbed/internal/tilt"
)

// Bed geometry and material constants.
const (
	// Radius is the bed rim radius in world units.
	Radius = 9.0

	// PelletRadius is the collision radius of one pellet.
	PelletRadius = 0.2

	// PelletMass is the mass of one pellet.
	PelletMass = 1.0

	// DefaultPellets is the stock pellet count for a full bed.
	DefaultPellets = 500

	// WallSegments is the number of straight edges approximating the rim.
	WallSegments = 36
)

const (
	wallElasticity   = 0.5
	wallFriction     = 1.5
	pelletElasticity = 0.1
	pelletFriction   = 1.2

	// The bed is viewed from above with gravity off, so body damping
	// stands in for rolling resistance against the bed surface.
	linearDamping  = 25.0
	angularDamping = 25.0

	velocityIterations = 8
	positionIterations = 3
)

const pelletDensity = PelletMass / (math.Pi * PelletRadius * PelletRadius)

// World wraps a zero-gravity planar physics world holding the rim walls
// and one dynamic body per pellet. It is not safe for concurrent use.
type World struct {
	world   box2d.B2World
	pellets []*box2d.B2Body
}

// New builds a world with rim walls and a pellet at each position.
func New(positions []tilt.Vec2) *World {
	w := &World{}
	w.Reset(positions)
	return w
}

// Reset discards the prior world and builds a fresh one: new rim walls,
// new pellets at the given positions, everything at rest.
func (w *World) Reset(positions []tilt.Vec2) {
	w.world = box2d.MakeB2World(box2d.MakeB2Vec2(0, 0))
	w.pellets = w.pellets[:0]
	w.addWalls()
	for _, p := range positions {
		w.addPellet(p)
	}
}

func (w *World) addWalls() {
	bd := box2d.MakeB2BodyDef()
	rim := w.world.CreateBody(&bd)
	for i := 0; i < WallSegments; i++ {
		a1 := 2 * math.Pi * float64(i) / WallSegments
		a2 := 2 * math.Pi * float64(i+1) / WallSegments

		edge := box2d.MakeB2EdgeShape()
		edge.Set(
			box2d.MakeB2Vec2(Radius*math.Cos(a1), Radius*math.Sin(a1)),
			box2d.MakeB2Vec2(Radius*math.Cos(a2), Radius*math.Sin(a2)),
		)

		fd := box2d.MakeB2FixtureDef()
		fd.Shape = &edge
		fd.Friction = wallFriction
		fd.Restitution = wallElasticity
		rim.CreateFixtureFromDef(&fd)
	}
}

func (w *World) addPellet(at tilt.Vec2) {
	bd := box2d.MakeB2BodyDef()
	bd.Type = box2d.B2BodyType.B2_dynamicBody
	bd.Position.Set(at.X, at.Y)
	bd.LinearDamping = linearDamping
	bd.AngularDamping = angularDamping
	body := w.world.CreateBody(&bd)

	shape := box2d.MakeB2CircleShape()
	shape.M_radius = PelletRadius

	fd := box2d.MakeB2FixtureDef()
	fd.Shape = &shape
	fd.Density = pelletDensity
	fd.Friction = pelletFriction
	fd.Restitution = pelletElasticity
	body.CreateFixtureFromDef(&fd)

	w.pellets = append(w.pellets, body)
}

// ApplyForce applies the same planar force, scaled by impulse, to the
// center of every pellet. A zero force is skipped so resting bodies can
// stay asleep.
func (w *World) ApplyForce(f tilt.Vec2, impulse float64) {
	if f.IsZero() || impulse == 0 {
		return
	}
	force := box2d.MakeB2Vec2(f.X*impulse, f.Y*impulse)
	for _, b := range w.pellets {
		b.ApplyForce(force, b.GetWorldCenter(), true)
	}
}

// Step advances the physics by dt seconds. Call exactly once per tick so
// animation timing and physics timing stay in lock-step.
func (w *World) Step(dt float64) {
	w.world.Step(dt, velocityIterations, positionIterations)
}

// Positions appends every pellet position to dst and returns it. Pass a
// slice with spare capacity to avoid a per-tick allocation.
func (w *World) Positions(dst []tilt.Vec2) []tilt.Vec2 {
	for _, b := range w.pellets {
		p := b.GetPosition()
		dst = append(dst, tilt.Vec2{X: p.X, Y: p.Y})
	}
	return dst
}

// Count returns the number of pellets in the world.
func (w *World) Count() int { return len(w.pellets) }

// MeanSpeed returns the average pellet speed in world units per second.
func (w *World) MeanSpeed() float64 {
	if len(w.pellets) == 0 {
		return 0
	}
	var sum float64
	for _, b := range w.pellets {
		v := b.GetLinearVelocity()
		sum += math.Sqrt(v.X*v.X + v.Y*v.Y)
	}
	return sum / float64(len(w.pellets))
}

// KineticEnergy returns the total translational kinetic energy.
func (w *World) KineticEnergy() float64 {
	var total float64
	for _, b := range w.pellets {
		v := b.GetLinearVelocity()
		total += 0.5 * b.GetMass() * (v.X*v.X + v.Y*v.Y)
	}
	return total
}
