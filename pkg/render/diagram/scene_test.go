package diagram

import (
	"math"
	"testing"

	"github.com/matzehuels/rnadraw/pkg/coloring"
	"github.com/matzehuels/rnadraw/pkg/layout"
	"github.com/matzehuels/rnadraw/pkg/structure"
)

func buildScene(t *testing.T, db, seq string, opts Options) Scene {
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
	s, err := Build(res, colors, seq, opts)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestBuildFitsCanvas(t *testing.T) {
	s := buildScene(t, "((((....))))", "GGGGAAAACCCC", Options{Width: 400, Height: 300})
	if s.Width != 400 || s.Height != 300 {
		t.Errorf("canvas = %vx%v", s.Width, s.Height)
	}
	for _, r := range s.Residues {
		if r.X-r.R < -1e-9 || r.X+r.R > s.Width+1e-9 || r.Y-r.R < -1e-9 || r.Y+r.R > s.Height+1e-9 {
			t.Errorf("residue %d at (%v, %v) r=%v leaves the canvas", r.Index, r.X, r.Y, r.R)
		}
	}
	if len(s.Pairs) != 4 {
		t.Errorf("pairs = %d, want 4", len(s.Pairs))
	}
	if s.Residues[0].Letter != "G" {
		t.Errorf("letter = %q", s.Residues[0].Letter)
	}
}

func TestBuildFlipsY(t *testing.T) {
	// The lone helix grows up in layout space, so the hairpin loop must
	// sit above the stem on the canvas.
	s := buildScene(t, "((((....))))", "", Options{})
	if s.Residues[5].Y >= s.Residues[0].Y {
		t.Errorf("loop y %v not above stem y %v", s.Residues[5].Y, s.Residues[0].Y)
	}
	if s.Letters {
		t.Error("letters enabled without a sequence")
	}
}

func TestBuildNaturalSize(t *testing.T) {
	s := buildScene(t, "..", "", Options{})
	if math.Abs(s.Scale-1) > 1e-9 {
		t.Errorf("scale = %v, want 1", s.Scale)
	}
	if s.Background != DefaultBackground {
		t.Errorf("background = %q", s.Background)
	}
}

func TestBuildMismatch(t *testing.T) {
	res, err := layout.Compute(structure.MustParse("(..)"), layout.DefaultSpacing())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Build(res, make([]coloring.Color, 3), "", Options{}); err == nil {
		t.Error("expected colour count error")
	}
	if _, err := Build(res, make([]coloring.Color, 4), "ACG", Options{}); err == nil {
		t.Error("expected sequence length error")
	}
}
