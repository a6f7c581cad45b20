// Package bed adapts a planar rigid-body engine to the shaker bed.
//
// The bed is modeled from above as a zero-gravity 2D world: a circular
// rim of static wall segments containing one small dynamic body per
// pellet. Tilt never appears here directly; the tilt package projects
// the bed plane into a single in-plane force vector and [World.ApplyForce]
// spreads it uniformly over the pellets. High body damping plays the
// role of rolling resistance against the bed surface.
//
// [MountainPile] and [UniformSpread] produce seeded initial layouts, so
// a run is reproducible from its RNG seed alone.
package bed
