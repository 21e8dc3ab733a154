package sink

import (
	"encoding/json"

	"github.com/matzehuels/rnadraw/pkg/render/diagram"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	structure string
	title     string
}

// WithJSONStructure records the dot-bracket string in the output.
func WithJSONStructure(db string) JSONOption { return func(r *jsonRenderer) { r.structure = db } }

// WithJSONTitle records a title in the output.
func WithJSONTitle(t string) JSONOption { return func(r *jsonRenderer) { r.title = t } }

type jsonOutput struct {
	Title     string        `json:"title,omitempty"`
	Structure string        `json:"structure,omitempty"`
	Width     float64       `json:"width"`
	Height    float64       `json:"height"`
	Scale     float64       `json:"scale"`
	Letters   bool          `json:"letters,omitempty"`
	Residues  []jsonResidue `json:"residues"`
	Pairs     []jsonPair    `json:"pairs"`
}

type jsonResidue struct {
	Index  int     `json:"index"`
	Letter string  `json:"letter,omitempty"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"r"`
	Color  string  `json:"color"`
}

type jsonPair struct {
	From       int     `json:"from"`
	To         int     `json:"to"`
	Width      float64 `json:"width"`
	Color      string  `json:"color"`
	Pseudoknot bool    `json:"pseudoknot,omitempty"`
}

// RenderJSON exports the scene as a pretty-printed JSON document with
// canvas coordinates, colours and pairs, for drawing with other tools.
func RenderJSON(s diagram.Scene, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Title:     r.title,
		Structure: r.structure,
		Width:     s.Width,
		Height:    s.Height,
		Scale:     s.Scale,
		Letters:   s.Letters,
		Residues:  make([]jsonResidue, len(s.Residues)),
		Pairs:     make([]jsonPair, len(s.Pairs)),
	}
	for i, res := range s.Residues {
		out.Residues[i] = jsonResidue{
			Index: res.Index, Letter: res.Letter,
			X: res.X, Y: res.Y, Radius: res.R,
			Color: res.Color.Hex(),
		}
	}
	for i, p := range s.Pairs {
		out.Pairs[i] = jsonPair{From: p.From, To: p.To, Width: p.Width, Color: p.Color, Pseudoknot: p.Pseudoknot}
	}
	return json.MarshalIndent(out, "", "  ")
}
