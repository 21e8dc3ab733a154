package styles

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/rnadraw/pkg/render/diagram"
)

// Letters draws each residue as its nucleotide letter in the residue
// colour.
type Letters struct{}

func (Letters) RenderDefs(buf *bytes.Buffer) {
	buf.WriteString("  <defs>\n    <style>.residue-letter { font-family: Helvetica, Arial, sans-serif; font-weight: bold; }</style>\n  </defs>\n")
}

func (Letters) RenderBackbone(buf *bytes.Buffer, rs []diagram.Residue) {
	renderBackbone(buf, rs)
}

func (Letters) RenderPair(buf *bytes.Buffer, p diagram.Pair) {
	renderPair(buf, p)
}

func (Letters) RenderResidue(buf *bytes.Buffer, r diagram.Residue) {
	letter := r.Letter
	if letter == "" {
		letter = "N"
	}
	fmt.Fprintf(buf, `  <text id="res-%d" class="residue-letter" x="%.2f" y="%.2f" font-size="%.1f" fill="%s" text-anchor="middle" dominant-baseline="central">%s</text>`+"\n",
		r.Index, r.X, r.Y, 2*FontSize(r), r.Color.Hex(), escape(letter))
}
