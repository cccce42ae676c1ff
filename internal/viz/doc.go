// Package viz renders cluster state for the terminal.
//
// The centerpiece is [Canvas], a braille pixel canvas addressed in
// 2x4-dot subpixels. World coordinates map onto it through the left-up
// display transform, so the canvas center tracks the display origin of
// whatever reference frame the cluster holds. [CanvasPool] recycles
// frame canvases, and the style block plus [Sparkline] cover the
// chrome around the drawing.
package viz
