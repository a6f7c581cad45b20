package viz

import (
	"math"

	"github.com/san-kum/shakerbed/internal/bed"
	"github.com/san-kum/shakerbed/internal/tilt"
)

// View geometry. The camera sits front-above the bed at a fixed
// elevation; lift heights are exaggerated so the shallow tilt reads on
// a terminal raster.
const (
	viewElevation = 55 * math.Pi / 180
	liftEmphasis  = 2.5
)

// Projector maps bed-space points onto canvas dot coordinates with a
// fixed oblique view: the flat rim projects to an ellipse, lifted rim
// points rise on screen.
type Projector struct {
	cx, cy int
	scale  float64
	cosE   float64
	sinE   float64
}

// NewProjector fits the whole bed, with lift headroom, onto the canvas.
func NewProjector(c *Canvas) Projector {
	w, h := float64(c.DotWidth()), float64(c.DotHeight())
	sinE := math.Sin(viewElevation)

	// horizontal extent 2R, vertical extent 2R·sinE plus lifted rim
	margin := 4.0
	sx := (w - 2*margin) / (2 * bed.Radius)
	sy := (h - 2*margin - liftEmphasis*motionHeadroom) / (2 * bed.Radius * sinE)

	return Projector{
		cx:    c.DotWidth() / 2,
		cy:    c.DotHeight() / 2,
		scale: math.Min(sx, sy),
		cosE:  math.Cos(viewElevation),
		sinE:  sinE,
	}
}

// motionHeadroom is the dot budget reserved for the tallest lift.
const motionHeadroom = 12.0

// Point projects a bed-space point (X across, Y up, Z toward the
// viewer) to dot coordinates.
func (pr Projector) Point(p tilt.Vec3) (int, int) {
	u := p.X * pr.scale
	v := p.Y*liftEmphasis*pr.cosE - p.Z*pr.sinE*pr.scale
	return pr.cx + int(math.Round(u)), pr.cy - int(math.Round(v))
}

// surface lifts a bed-plane point onto the tilted surface.
func surface(lifts tilt.Lifts, at tilt.Vec2) tilt.Vec3 {
	return tilt.Vec3{X: at.X, Y: tilt.PlaneHeight(lifts, bed.Radius, at), Z: at.Y}
}

// DrawScene renders the tilted rim, the pellets riding the surface and
// the three actuator anchors onto the canvas.
func DrawScene(c *Canvas, positions []tilt.Vec2, lifts tilt.Lifts) {
	c.Clear()
	pr := NewProjector(c)

	drawRim(c, pr, lifts)
	for _, p := range positions {
		x, y := pr.Point(surface(lifts, p))
		c.Dot(x, y)
	}
	drawActuators(c, pr, lifts)
}

func drawRim(c *Canvas, pr Projector, lifts tilt.Lifts) {
	prevX, prevY := 0, 0
	for i := 0; i <= bed.WallSegments; i++ {
		a := 2 * math.Pi * float64(i) / bed.WallSegments
		at := tilt.Vec2{X: bed.Radius * math.Cos(a), Y: bed.Radius * math.Sin(a)}
		x, y := pr.Point(surface(lifts, at))
		if i > 0 {
			c.Line(prevX, prevY, x, y)
		}
		prevX, prevY = x, y
	}
}

// drawActuators marks each anchor with a short vertical strut from the
// flat plane up to its current lift.
func drawActuators(c *Canvas, pr Projector, lifts tilt.Lifts) {
	for i := 0; i < tilt.ActuatorCount; i++ {
		base := tilt.AnchorXY(i, bed.Radius)
		x0, y0 := pr.Point(tilt.Vec3{X: base.X, Z: base.Y})
		x1, y1 := pr.Point(tilt.Vec3{X: base.X, Y: lifts[i], Z: base.Y})
		c.Line(x0, y0, x1, y1)
		c.Dot(x1, y1)
	}
}
