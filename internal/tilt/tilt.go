// Package tilt maps actuator lift heights to the bed's plane normal and
// the effective in-plane gravity force. All functions are pure.
package tilt

import "math"

// ActuatorCount is the number of lift points on the bed rim.
const ActuatorCount = 3

// Actuator bearings around the rim, degrees counterclockwise from +X.
var actuatorAngles = [ActuatorCount]float64{90, 210, 330}

// Lifts holds one height per actuator, in bed units. Heights are >= 0.
type Lifts [ActuatorCount]float64

// degenerate is the squared-length floor below which the plane normal
// falls back to straight up.
const degenerate = 1e-6

// Anchor returns the 3D anchor point of actuator i on a rim of the given
// radius, at the given lift height.
func Anchor(i int, radius, lift float64) Vec3 {
	a := actuatorAngles[i] * math.Pi / 180
	return Vec3{X: radius * math.Cos(a), Y: lift, Z: radius * math.Sin(a)}
}

// AnchorXY returns actuator i's position in the bed plane.
func AnchorXY(i int, radius float64) Vec2 {
	p := Anchor(i, radius, 0)
	return Vec2{X: p.X, Y: p.Z}
}

// PlaneNormal computes the unit normal of the plane through the three
// actuator anchors. The Y component is always >= 0. A degenerate
// configuration (radius near zero) yields the flat normal (0, 1, 0).
func PlaneNormal(lifts Lifts, radius float64) Vec3 {
	p0 := Anchor(0, radius, lifts[0])
	p1 := Anchor(1, radius, lifts[1])
	p2 := Anchor(2, radius, lifts[2])

	n := p1.Sub(p0).Cross(p2.Sub(p0))
	if n.Y < 0 {
		n = n.Scale(-1)
	}
	if n.Length() < degenerate {
		return Vec3{Y: 1}
	}
	return n.Normalize()
}

// SlopeForce is the downhill drive force for a lift configuration: the
// plane normal projected onto the bed plane and scaled by factor. The
// projection keeps only (-N.x, -N.z); the magnitude is deliberately not
// corrected by the slope angle's sine.
func SlopeForce(lifts Lifts, radius, factor float64) Vec2 {
	n := PlaneNormal(lifts, radius)
	return Vec2{X: -n.X * factor, Y: -n.Z * factor}
}

// PlaneHeight evaluates the tilted surface's height at a point in the
// bed plane. The surface pivots about the bed center, so the plane
// passes through the origin with the tilt normal. Used by presentation
// to place pellets on the surface.
func PlaneHeight(lifts Lifts, radius float64, at Vec2) float64 {
	n := PlaneNormal(lifts, radius)
	if math.Abs(n.Y) < degenerate {
		return 0
	}
	return -(n.X*at.X + n.Z*at.Y) / n.Y
}
