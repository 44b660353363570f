// Package engine defines the contract between the viewer and a
// cellular-automaton engine.
//
// The viewer never sees how an engine stores or advances its cells. It only
// relies on:
//
//   - [Engine]: grid dimensions, a one-generation Tick, ToggleCell, and the
//     location of the bit-packed cell buffer inside a shared linear memory
//   - [Factory]: creates a fresh engine handle at mount or reset
//   - [Register] / [Lookup]: a name registry of available engines
//
// # Memory Ownership
//
// The slice returned by Memory and the offset returned by CellsPointer are
// valid until the next call to Tick, ToggleCell or any resize. Engines are
// free to reallocate their memory at those points, so callers must borrow a
// fresh view every frame and never keep one across a tick.
package engine
