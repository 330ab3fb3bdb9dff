// Package viz provides the terminal front-end of the field lab.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Session]: the lab itself; owns the scene and all UI state
//   - [Canvas]: Braille-based pixel canvas mapped onto the world viewport
//   - Theme selection with 4 built-in color schemes
//
// # Key Bindings
//
//	Arrows/hjkl  - Move the cursor one cell
//	1-8          - Select a tool (+q, -q, erase, dielectric, remove
//	               dielectric, probe, shield, remove shield)
//	Space/Enter  - Apply the tool at the cursor
//	Esc          - Cancel a pending rectangle corner
//	PgUp/PgDn    - Scroll the probe panel
//	V            - Toggle the vector grid
//	T            - Cycle color themes
//	C            - Clear the scene
//
// Rectangles take two applications of the tool: the first fixes a corner,
// the second commits. With mouse support enabled, press and release on the
// canvas do the same.
package viz
