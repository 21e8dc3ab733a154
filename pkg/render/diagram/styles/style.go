package styles

import (
	"bytes"

	"github.com/matzehuels/rnadraw/pkg/render/diagram"
)

// Style defines the visual appearance of residues and pairs in SVG.
type Style interface {
	// RenderDefs writes SVG <defs> content.
	RenderDefs(buf *bytes.Buffer)
	// RenderBackbone writes the line through consecutive residues.
	RenderBackbone(buf *bytes.Buffer, rs []diagram.Residue)
	// RenderPair writes one base pair edge.
	RenderPair(buf *bytes.Buffer, p diagram.Pair)
	// RenderResidue writes one residue.
	RenderResidue(buf *bytes.Buffer, r diagram.Residue)
}

// For returns the style matching the scene: [Letters] when the scene draws
// letters, [Circles] otherwise.
func For(s diagram.Scene) Style {
	if s.Letters {
		return Letters{}
	}
	return Circles{}
}
