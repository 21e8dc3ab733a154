// Package nodelink renders the helix/loop segment tree of a structure as a
// node-link diagram.
//
// # Usage
//
// Convert a tree to DOT format, then render to SVG:
//
//	tree, _ := layout.BuildTree(pm)
//	dot := nodelink.ToDOT(tree, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(dot)
//
// For PDF or PNG output, use the render functions:
//
//	pdf, err := nodelink.RenderPDF(dot)
//	png, err := nodelink.RenderPNG(dot, 2.0)  // 2x scale
//
// # DOT Format
//
// The generated DOT uses top-to-bottom layout (rankdir=TB). Loops are
// ellipses labelled with their kind (exterior, hairpin, interior,
// multiloop) and unpaired count; helices are rounded boxes labelled with
// their length in base pairs.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
