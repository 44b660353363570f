// Package viz provides the terminal front-end for cellview.
//
// The grid is drawn by the regular renderer onto an in-memory raster, which
// is then sampled into a braille [Canvas] (2x4 dots per terminal cell). The
// Bubble Tea tick message is the refresh signal: each tick flushes a
// [frame.Queue], so the viewer's frame loop runs exactly as it does in a
// window.
//
//   - [Model]: live view of one controller
//   - [App]: preset menu that opens a [Model]
//
// # Key Bindings
//
//	Space - Pause/Resume
//	N     - Step one generation while paused
//	R     - Reset the engine
//	T     - Cycle color themes
//	?     - Toggle full help
//	Q     - Quit
//
// A left click toggles the cell under the pointer.
package viz
