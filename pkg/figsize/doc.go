// Package figsize picks a canvas size for a layout from its bounding box.
//
// The size follows a power law fitted once to a small calibration table of
// structures whose figure sizes were chosen by hand:
//
//	scale(area) = a · (area − b)^c
//	width       = box width  / scale(area)
//	height      = box height / scale(area)
//
// The result is in inches. It is a heuristic: callers should [Clamp] it
// before use. Boxes with no area (a single residue, or a perfectly straight
// layout) skip the rescale and use their raw extents.
package figsize
