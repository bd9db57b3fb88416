// Package viz provides the live terminal view of a running simulation.
//
// The view is a Bubble Tea program that owns its State and advances it a few
// steps per frame, so rendering always happens between steps:
//
//   - density mode: the sampled density field as digits 1-9
//   - particle mode: a braille plot of every particle and the duck outline
//   - a stats panel with the step diagnostics and a max-density chart
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	R     - Reset to initial state
//	V     - Toggle density / particle view
//	Tab   - Cycle tunable parameters
//	Up/K  - Increase parameter (+5%)
//	Down/J - Decrease parameter (-5%)
//	+/-   - More / fewer steps per frame
//	Q     - Quit
package viz
