// Package anim interpolates the visual position of cells for a batch of
// adjacent swaps and then commits the swap to the grid.
//
// A [Session] is stepped by an external clock:
//
//	s := animator.Animate(pairs, grid.Column)
//	for !s.Step(dt) {
//	}
//
// The grid is mutated exactly once per session, on the step where progress
// reaches 1.0, and only after every interpolation step. The renderer is asked
// to redraw immediately after the commit.
//
// # Thread Safety
//
// Animator and Session are NOT thread-safe. Only one session may run against
// a grid at a time; callers serialise sessions through the script run-lock.
package anim
