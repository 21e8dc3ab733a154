// Package diagram turns a computed layout and resolved colours into a
// drawable scene.
//
// A [Scene] is expressed in canvas pixels: layout coordinates are padded by
// the cell padding, scaled uniformly to fit the canvas, centred, and flipped
// so that layout +y points up on screen. The [sink] subpackage writes a scene
// as SVG, PNG, PDF or JSON; the [styles] subpackage controls how residues
// and pairs look in SVG.
//
//	res, _ := layout.Compute(pm, layout.DefaultSpacing())
//	colors, _ := coloring.Resolve(seq, pm, coloring.Inputs{Scheme: "paired"})
//	scene, _ := diagram.Build(res, colors, seq, diagram.Options{Width: 800, Height: 600})
//	svg := sink.RenderSVG(scene)
//
// [sink]: github.com/matzehuels/rnadraw/pkg/render/diagram/sink
// [styles]: github.com/matzehuels/rnadraw/pkg/render/diagram/styles
package diagram
