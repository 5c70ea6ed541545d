// Package viz draws a running gravity session in the terminal.
//
// [Model] is a Bubble Tea model that ticks a [session.Session] once per frame
// and renders bodies and trails on a braille [Canvas], with a side panel of
// orbital diagnostics and an asciigraph chart of body speeds. The [Viewport]
// follows the bodies on a harmonica spring. [App] is a preset picker in
// front of it.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Reset to the stored initial conditions
//	+/-   - Double/halve the speed multiplier
//	[/]   - Halve/double the trail capacity
//	E     - Edit initial conditions (applied on reset)
//	T     - Cycle colour themes
//	?     - Show help overlay
package viz
