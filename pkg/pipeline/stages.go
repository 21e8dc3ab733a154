package pipeline

import (
	"github.com/matzehuels/rnadraw/pkg/coloring"
	"github.com/matzehuels/rnadraw/pkg/errors"
	"github.com/matzehuels/rnadraw/pkg/figsize"
	"github.com/matzehuels/rnadraw/pkg/layout"
	"github.com/matzehuels/rnadraw/pkg/render/diagram"
	"github.com/matzehuels/rnadraw/pkg/structure"
)

// Parse converts the structure to a pair map and checks the sequence
// against it.
func Parse(opts Options) (structure.PairMap, error) {
	pm, err := structure.Parse(opts.Structure)
	if err != nil {
		return nil, err
	}
	if err := errors.ValidateSequenceLength(opts.Sequence, pm.Len()); err != nil {
		return nil, err
	}
	return pm, nil
}

// Layout computes residue coordinates.
func Layout(pm structure.PairMap, opts Options) (*layout.Result, error) {
	return layout.Compute(pm, opts.Spacing)
}

// Colors resolves one colour per residue.
func Colors(pm structure.PairMap, opts Options) ([]coloring.Color, error) {
	return coloring.Resolve(opts.Sequence, pm, opts.Inputs)
}

// CanvasSize picks the canvas for a layout. Explicit Width and Height win;
// otherwise the figure-size model sizes the unpadded bounding box it was
// calibrated on and the result is clamped to [MinInches, MaxInches]. Cell
// padding is added later, when the scene maps the box onto the canvas.
func CanvasSize(res *layout.Result, opts Options) Size {
	if opts.Width > 0 && opts.Height > 0 {
		return Size{
			WidthInches:  float64(opts.Width) / opts.DPI,
			HeightInches: float64(opts.Height) / opts.DPI,
			Width:        opts.Width,
			Height:       opts.Height,
		}
	}

	w, h := figsize.Default().SizeFor(res.Box.Width(), res.Box.Height())
	w, h = figsize.Clamp(w, h, opts.MinInches, opts.MaxInches)
	pw, ph := figsize.Pixels(w, h, opts.DPI)
	return Size{WidthInches: w, HeightInches: h, Width: pw, Height: ph}
}

// BuildScene maps a layout and its colours onto the canvas.
func BuildScene(res *layout.Result, colors []coloring.Color, size Size, opts Options) (diagram.Scene, error) {
	return diagram.Build(res, colors, opts.Sequence, diagram.Options{
		Width:      size.Width,
		Height:     size.Height,
		Letters:    opts.IsLetters(),
		Background: opts.Background,
		Backbone:   !opts.NoBackbone,
	})
}
