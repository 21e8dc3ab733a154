// Package render provides the drawing backends for RNA secondary structure
// diagrams.
//
// # Overview
//
// This package contains the rendering boundary that turns coordinates and
// colours into files. It provides:
//
//   - Generic format conversion (SVG to PDF/PNG)
//   - Structure diagrams (in [diagram] subpackage)
//   - Segment tree diagrams (in [nodelink] subpackage)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). PDF output of both diagram
// kinds goes through [ToPDF]; structure diagrams are rasterised natively.
//
//	svg := sink.RenderSVG(scene)
//	pdf, err := render.ToPDF(svg)
//
// # Structure Diagrams
//
// The [diagram] subpackage maps a layout onto a canvas, and its subpackages
// write it out:
//   - [diagram/sink]: Output formats (SVG, PNG, PDF, JSON)
//   - [diagram/styles]: Residue styles (circles, letters)
//
// # Segment Trees
//
// The [nodelink] subpackage renders the helix/loop tree that drives the
// layout as a Graphviz diagram, which helps when debugging odd layouts.
//
//	dot := nodelink.ToDOT(tree, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(dot)
//
// [diagram]: github.com/matzehuels/rnadraw/pkg/render/diagram
// [diagram/sink]: github.com/matzehuels/rnadraw/pkg/render/diagram/sink
// [diagram/styles]: github.com/matzehuels/rnadraw/pkg/render/diagram/styles
// [nodelink]: github.com/matzehuels/rnadraw/pkg/render/nodelink
package render
