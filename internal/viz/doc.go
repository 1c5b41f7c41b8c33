// Package viz is the interactive terminal front end, built on Bubble Tea.
//
// The board is drawn on a braille [Canvas] from the engine's cell positions,
// so swaps are shown sliding rather than jumping. A [TickMsg] at the
// configured frame rate steps the running script; typing is ignored while a
// script holds the run-lock.
//
// # Key Bindings
//
//	Enter   - Run the typed script
//	F1-F12  - Run a single token (in token order) when the input is empty
//	Esc     - Clear input
//	Ctrl+T  - Cycle colour themes
//	Ctrl+C  - Quit
package viz
