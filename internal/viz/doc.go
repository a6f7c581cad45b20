// Package viz is the terminal presentation layer: a Bubble Tea program
// that draws the tilting bed and its pellets on a braille canvas at
// 60 Hz, next to a HUD with lift bars and an agitation sparkline.
//
// # Key bindings
//
//	1     - Flatten (mountain pile, one-shot)
//	2     - Scramble (loopable)
//	3     - Dump (loopable)
//	Space - Pause/Resume
//	L     - Toggle loop
//	R     - Re-roll the current gesture
//	T     - Cycle color themes
//	Q     - Quit
//
// The view only consumes controller snapshots; it never reaches into
// the simulation state.
package viz
