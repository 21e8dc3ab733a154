package styles

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/rnadraw/pkg/render/diagram"
)

const backboneColor = "#b3b3b3"

// Circles draws residues as filled discs.
type Circles struct{}

func (Circles) RenderDefs(buf *bytes.Buffer) {}

func (Circles) RenderBackbone(buf *bytes.Buffer, rs []diagram.Residue) {
	renderBackbone(buf, rs)
}

func (Circles) RenderPair(buf *bytes.Buffer, p diagram.Pair) {
	renderPair(buf, p)
}

func (Circles) RenderResidue(buf *bytes.Buffer, r diagram.Residue) {
	fmt.Fprintf(buf, `  <circle id="res-%d" class="residue" cx="%.2f" cy="%.2f" r="%.2f" fill="%s"/>`+"\n",
		r.Index, r.X, r.Y, r.R, r.Color.Hex())
	if r.Letter == "" {
		return
	}
	fmt.Fprintf(buf, `  <text class="residue-text" x="%.2f" y="%.2f" font-size="%.1f" fill="%s" text-anchor="middle" dominant-baseline="central">%s</text>`+"\n",
		r.X, r.Y, FontSize(r), TextColor(r.Color), escape(r.Letter))
}

func renderBackbone(buf *bytes.Buffer, rs []diagram.Residue) {
	if len(rs) < 2 {
		return
	}
	buf.WriteString(`  <polyline class="backbone" fill="none" stroke="` + backboneColor + `" stroke-width="1.5" points="`)
	for i, r := range rs {
		if i > 0 {
			buf.WriteByte(' ')
		}
		fmt.Fprintf(buf, "%.2f,%.2f", r.X, r.Y)
	}
	buf.WriteString(`"/>` + "\n")
}

func renderPair(buf *bytes.Buffer, p diagram.Pair) {
	dash := ""
	if p.Pseudoknot {
		dash = fmt.Sprintf(` stroke-dasharray="%.1f %.1f"`, 3*p.Width, 2*p.Width)
	}
	fmt.Fprintf(buf, `  <line class="pair" data-from="%d" data-to="%d" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%.2f" stroke-linecap="round"%s/>`+"\n",
		p.From, p.To, p.X1, p.Y1, p.X2, p.Y2, p.Color, p.Width, dash)
}
