package sink

import (
	"bytes"
	"encoding/json"
	"image/png"
	"strings"
	"testing"

	"github.com/matzehuels/rnadraw/pkg/coloring"
	"github.com/matzehuels/rnadraw/pkg/layout"
	"github.com/matzehuels/rnadraw/pkg/render/diagram"
	"github.com/matzehuels/rnadraw/pkg/render/diagram/styles"
	"github.com/matzehuels/rnadraw/pkg/structure"
)

func testScene(t *testing.T, db, seq string, opts diagram.Options) diagram.Scene {
	t.Helper()
	pm := structure.MustParse(db)
	res, err := layout.Compute(pm, layout.DefaultSpacing())
	if err != nil {
		t.Fatal(err)
	}
	colors, err := coloring.Resolve(seq, pm, coloring.Inputs{Scheme: "paired"})
	if err != nil {
		t.Fatal(err)
	}
	s, err := diagram.Build(res, colors, seq, opts)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestRenderSVG(t *testing.T) {
	s := testScene(t, "((..[[..))..]]", "", diagram.Options{Width: 300, Height: 200, Backbone: true})
	svg := string(RenderSVG(s, WithTitle("knot <1>")))

	if !strings.HasPrefix(svg, "<svg") || !strings.HasSuffix(svg, "</svg>\n") {
		t.Fatalf("not an SVG document:\n%s", svg)
	}
	if got := strings.Count(svg, `class="residue"`); got != 14 {
		t.Errorf("residues = %d, want 14", got)
	}
	if got := strings.Count(svg, `class="pair"`); got != 4 {
		t.Errorf("pairs = %d, want 4", got)
	}
	if got := strings.Count(svg, "stroke-dasharray"); got != 2 {
		t.Errorf("dashed pairs = %d, want 2", got)
	}
	for _, want := range []string{`viewBox="0 0 300.0 200.0"`, "polyline", "<title>knot &lt;1&gt;</title>"} {
		if !strings.Contains(svg, want) {
			t.Errorf("SVG missing %s", want)
		}
	}
	if strings.Contains(svg, "<script") {
		t.Error("script present without WithInteraction")
	}
}

func TestRenderSVGLetters(t *testing.T) {
	s := testScene(t, "((...))", "GGAAACC", diagram.Options{Letters: true, Background: "none"})
	svg := string(RenderSVG(s, WithInteraction()))
	if got := strings.Count(svg, `class="residue-letter"`); got != 7 {
		t.Errorf("letters = %d, want 7", got)
	}
	if strings.Contains(svg, "<rect") {
		t.Error("background drawn for transparent scene")
	}
	if !strings.Contains(svg, "<script") {
		t.Error("interaction script missing")
	}

	svg = string(RenderSVG(s, WithStyle(styles.Circles{})))
	if !strings.Contains(svg, "<circle") {
		t.Error("WithStyle did not override the letter style")
	}
}

func TestRenderPNG(t *testing.T) {
	s := testScene(t, "((((....))))", "GGGGAAAACCCC", diagram.Options{Width: 120, Height: 90})
	data, err := RenderPNG(s, WithScale(2))
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 240 || b.Dy() != 180 {
		t.Errorf("size = %dx%d, want 240x180", b.Dx(), b.Dy())
	}

	if _, err := RenderPNG(s, WithScale(0)); err == nil {
		t.Error("expected error for zero scale")
	}
}

func TestRenderJSON(t *testing.T) {
	s := testScene(t, "((..))", "GGAACC", diagram.Options{Width: 100, Height: 100})
	data, err := RenderJSON(s, WithJSONStructure("((..))"), WithJSONTitle("hp"))
	if err != nil {
		t.Fatal(err)
	}
	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if out.Structure != "((..))" || out.Title != "hp" {
		t.Errorf("structure = %q, title = %q", out.Structure, out.Title)
	}
	if len(out.Residues) != 6 || len(out.Pairs) != 2 {
		t.Errorf("residues = %d, pairs = %d", len(out.Residues), len(out.Pairs))
	}
	if out.Residues[2].Letter != "A" || !strings.HasPrefix(out.Residues[2].Color, "#") {
		t.Errorf("residue 2 = %+v", out.Residues[2])
	}
}
