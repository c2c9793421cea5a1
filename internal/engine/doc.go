// Package engine implements an event-driven simulation of hard discs in the
// unit square.
//
// Instead of stepping time at a fixed rate, the engine predicts every future
// collision analytically and processes them in time order:
//
//   - [Engine]: owns the particle set and the simulation clock
//   - event: a predicted collision (particle pair, wall, or tick), queued on
//     a min-heap keyed by time
//   - [TickFunc]: periodic observation hook fed read-only snapshots
//   - [Observer]: receives every accepted event, for telemetry and tests
//
// Predictions are invalidated lazily: each event snapshots the collision
// counts of the particles it references, and a popped event whose counts no
// longer match is discarded without side effects. This avoids removing
// arbitrary heap entries when a collision changes a particle's trajectory.
//
// # Thread Safety
//
// Engine instances are NOT thread-safe. Run executes fully synchronously;
// the only transfer of control outward is the tick callback, which may block
// for as long as it likes.
package engine
