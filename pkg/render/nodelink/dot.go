package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/rnadraw/pkg/layout"
	"github.com/matzehuels/rnadraw/pkg/render"
)

// Options configures segment tree rendering.
type Options struct {
	// Detailed adds residue indices to node labels. When false, helices
	// show their length and loops their kind and size.
	Detailed bool
}

// ToDOT converts a segment tree to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG], [RenderPDF], or [RenderPNG].
//
// Helices are boxes, loops are ellipses; the exterior loop is filled grey.
// Edges run from each loop to the helices branching off it, and from each
// helix to the loop it closes.
func ToDOT(t *layout.Tree, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	ids := make(map[*layout.Loop]string)
	var edges []string
	t.Walk(func(l *layout.Loop, _ int) {
		id := fmt.Sprintf("L%d", len(ids))
		ids[l] = id
		fmt.Fprintf(&buf, "  %q [%s];\n", id, strings.Join(loopAttrs(l, opts.Detailed), ", "))

		for _, it := range l.Items {
			if !it.IsHelix() {
				continue
			}
			hid := helixID(it.Helix)
			fmt.Fprintf(&buf, "  %q [label=%q];\n", hid, helixLabel(it.Helix, opts.Detailed))
			edges = append(edges, fmt.Sprintf("  %q -> %q;\n", id, hid))
		}
	})
	for _, h := range t.Helices() {
		if h.Loop != nil {
			edges = append(edges, fmt.Sprintf("  %q -> %q;\n", helixID(h), ids[h.Loop]))
		}
	}

	buf.WriteString("\n")
	for _, e := range edges {
		buf.WriteString(e)
	}
	buf.WriteString("}\n")
	return buf.String()
}

func helixID(h *layout.Helix) string {
	o := h.Outer()
	return fmt.Sprintf("H%d-%d", o.I, o.J)
}

func helixLabel(h *layout.Helix, detailed bool) string {
	label := fmt.Sprintf("helix\n%d bp", len(h.Pairs))
	if !detailed {
		return label
	}
	o, in := h.Outer(), h.Inner()
	return label + fmt.Sprintf("\n%d-%d / %d-%d", o.I, in.I, in.J, o.J)
}

func loopAttrs(l *layout.Loop, detailed bool) []string {
	label := fmt.Sprintf("%s\n%d nt", l.Kind(), l.Unpaired())
	if detailed && l.Unpaired() > 0 {
		var idx []string
		for _, it := range l.Items {
			if !it.IsHelix() {
				idx = append(idx, strconv.Itoa(it.Residue))
			}
		}
		label += "\n" + strings.Join(idx, ",")
	}
	attrs := []string{fmt.Sprintf("label=%q", label), "shape=ellipse"}
	if l.Kind() == layout.ExteriorLoop {
		attrs = append(attrs, "fillcolor=lightgrey")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPDF].
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPNG].
//
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
