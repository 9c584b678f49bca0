// Package viz replays finished flights in the terminal.
//
// The package implements a Bubble Tea TUI over a completed run:
//
//   - [Model]: replay application with a scrubable timeline
//   - [Canvas]: Braille-based pixel canvas for the ascent profile
//
// # Key Bindings
//
//	Space - Pause/Resume playback
//	R     - Restart from ignition
//	[]/   - Scrub backward/forward
//	Up/Dn - Playback speed
//	Q     - Quit
package viz
