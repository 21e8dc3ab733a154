// Package sink writes a [diagram.Scene] in the supported output formats.
//
//   - [RenderSVG]: standalone SVG, styled by [styles.Style]
//   - [RenderPNG]: raster image painted natively with gg
//   - [RenderPDF]: the SVG converted by rsvg-convert
//   - [RenderJSON]: residue coordinates, colours and pairs
//
// [diagram.Scene]: github.com/matzehuels/rnadraw/pkg/render/diagram.Scene
// [styles.Style]: github.com/matzehuels/rnadraw/pkg/render/diagram/styles.Style
package sink
