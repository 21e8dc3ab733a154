package diagram

import (
	"fmt"
	"math"

	"github.com/matzehuels/rnadraw/pkg/coloring"
	"github.com/matzehuels/rnadraw/pkg/layout"
)

// DefaultBackground is the canvas colour when none is configured.
const DefaultBackground = "#ffffff"

// Options configures scene construction.
type Options struct {
	// Width and Height are the canvas size in pixels. Zero derives the
	// size from the padded bounding box at one pixel per layout unit.
	Width, Height int
	// Letters draws nucleotide letters instead of filled circles.
	Letters bool
	// Background is the canvas colour; "none" leaves it transparent.
	Background string
	// Backbone draws the line connecting consecutive residues.
	Backbone bool
}

// Residue is one residue in canvas coordinates.
type Residue struct {
	Index  int
	Letter string
	X, Y   float64
	R      float64
	Color  coloring.Color
}

// Pair is a base pair edge in canvas coordinates.
type Pair struct {
	From, To       int
	X1, Y1, X2, Y2 float64
	Width          float64
	Color          string
	Pseudoknot     bool
}

// Scene is everything a sink needs to paint a diagram.
type Scene struct {
	Width, Height float64
	// Scale is the number of pixels per layout unit.
	Scale      float64
	Background string
	Letters    bool
	Backbone   bool
	Residues   []Residue
	Pairs      []Pair
	// Box is the padded layout bounding box shown on the canvas.
	Box layout.BoundingBox
}

// Build maps res onto a canvas. colors must hold one colour per residue;
// seq may be empty.
func Build(res *layout.Result, colors []coloring.Color, seq string, opts Options) (Scene, error) {
	n := res.Len()
	if len(colors) != n {
		return Scene{}, fmt.Errorf("have %d colours for %d residues", len(colors), n)
	}
	if seq != "" && len(seq) != n {
		return Scene{}, fmt.Errorf("have %d letters for %d residues", len(seq), n)
	}

	box := res.Box.Pad(math.Max(res.Spacing.CellPadding, res.Spacing.NodeRadius))
	w, h := float64(opts.Width), float64(opts.Height)
	if w <= 0 || h <= 0 {
		w, h = math.Ceil(box.Width()), math.Ceil(box.Height())
	}
	scale := math.Min(w/box.Width(), h/box.Height())
	offX := (w - box.Width()*scale) / 2
	offY := (h - box.Height()*scale) / 2
	toCanvas := func(p layout.Point) (float64, float64) {
		return offX + (p.X-box.MinX)*scale, offY + (box.MaxY-p.Y)*scale
	}

	bg := opts.Background
	if bg == "" {
		bg = DefaultBackground
	}
	s := Scene{
		Width: w, Height: h, Scale: scale,
		Background: bg,
		Letters:    opts.Letters && seq != "",
		Backbone:   opts.Backbone,
		Box:        box,
		Residues:   make([]Residue, n),
		Pairs:      make([]Pair, 0, len(res.Edges)),
	}
	for i, p := range res.Points {
		x, y := toCanvas(p)
		r := Residue{Index: i, X: x, Y: y, R: res.Spacing.NodeRadius * scale, Color: colors[i]}
		if seq != "" {
			r.Letter = seq[i : i+1]
		}
		s.Residues[i] = r
	}
	for _, e := range res.Edges {
		a, b := s.Residues[e.From], s.Residues[e.To]
		s.Pairs = append(s.Pairs, Pair{
			From: e.From, To: e.To,
			X1: a.X, Y1: a.Y, X2: b.X, Y2: b.Y,
			Width:      math.Max(1, e.Weight*0.3*res.Spacing.NodeRadius*scale),
			Color:      e.Color,
			Pseudoknot: e.Pseudoknot,
		})
	}
	return s, nil
}
