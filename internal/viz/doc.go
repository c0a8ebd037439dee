// Package viz renders the plane in the terminal.
//
//   - [Canvas]: Braille dot matrix used by the curve preview
//   - [Inspector]: Bubble Tea program with two domain-coloured panels and a
//     hover annotation driven by mouse motion
//   - progress bar, themes and boxes for CLI output
//
// # Key Bindings
//
//	T     - Cycle colour themes
//	Q/Esc - Quit
package viz
