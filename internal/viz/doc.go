// Package viz provides terminal-based visualization of a running gas
// simulation.
//
// The package implements a live TUI using the Bubble Tea framework:
//
//   - [RunLive]: runs an engine and renders every tick frame
//   - [Canvas]: Braille-based pixel canvas for high-fidelity rendering
//
// The engine executes in its own goroutine and hands frames to the UI
// through its tick callback, which blocks until the UI is ready for the
// next frame. Pausing the view therefore pauses the simulation itself.
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	Q     - Quit (stops the engine cleanly)
package viz
