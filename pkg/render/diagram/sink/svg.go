package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/rnadraw/pkg/render/diagram"
	"github.com/matzehuels/rnadraw/pkg/render/diagram/styles"
)

const residueInteractionCSS = `
    .residue, .residue-letter { transition: stroke-width 0.2s ease; }
    .residue:hover { stroke: #000; stroke-width: 2; }
    .pair.highlight { stroke: #e31a1c; }`

const residueInteractionJS = `
    document.querySelectorAll('.residue, .residue-letter').forEach(el => {
      const i = el.id.replace('res-', '');
      el.addEventListener('mouseenter', () => document.querySelectorAll('.pair').forEach(p =>
        p.classList.toggle('highlight', p.dataset.from === i || p.dataset.to === i)));
      el.addEventListener('mouseleave', () => document.querySelectorAll('.pair').forEach(p =>
        p.classList.remove('highlight')));
    });`

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style       styles.Style
	interactive bool
	title       string
}

func WithStyle(s styles.Style) SVGOption { return func(r *svgRenderer) { r.style = s } }
func WithInteraction() SVGOption        { return func(r *svgRenderer) { r.interactive = true } }
func WithTitle(t string) SVGOption      { return func(r *svgRenderer) { r.title = t } }

// RenderSVG writes s as a standalone SVG document. Pairs are drawn below
// residues so discs cover the ends of pair lines.
func RenderSVG(s diagram.Scene, opts ...SVGOption) []byte {
	r := svgRenderer{style: styles.For(s)}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		s.Width, s.Height, s.Width, s.Height)
	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", escapeText(r.title))
	}
	r.style.RenderDefs(&buf)
	if s.Background != "none" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", s.Background)
	}

	if s.Backbone {
		r.style.RenderBackbone(&buf, s.Residues)
	}
	for _, p := range s.Pairs {
		r.style.RenderPair(&buf, p)
	}
	for _, res := range s.Residues {
		r.style.RenderResidue(&buf, res)
	}

	if r.interactive {
		fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", residueInteractionCSS)
		fmt.Fprintf(&buf, "  <script type=\"text/javascript\"><![CDATA[%s\n  ]]></script>\n", residueInteractionJS)
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func escapeText(s string) string {
	var b bytes.Buffer
	for _, c := range s {
		switch c {
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '&':
			b.WriteString("&amp;")
		default:
			b.WriteRune(c)
		}
	}
	return b.String()
}
