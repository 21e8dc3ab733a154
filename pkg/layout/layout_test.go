package layout

import (
	"math"
	"strings"
	"testing"

	"github.com/matzehuels/rnadraw/pkg/errors"
	"github.com/matzehuels/rnadraw/pkg/structure"
)

const eps = 1e-6

func mustCompute(t *testing.T, db string, sp Spacing) *Result {
	t.Helper()
	res, err := Compute(structure.MustParse(db), sp)
	if err != nil {
		t.Fatalf("Compute(%q): %v", db, err)
	}
	return res
}

var layoutCases = []string{
	".",
	"..",
	"...",
	"((....))",
	"((((....))))",
	"..((...))..",
	"((.((...))))",
	"((..((...))..((...))..))",
	"((...))((...))",
	"..((..((...))..((..))..))..((...)).((((....))))",
	"(())",
	"((..[[..))..]]",
}

func TestComputeDeterministic(t *testing.T) {
	for _, db := range layoutCases {
		a := mustCompute(t, db, DefaultSpacing())
		b := mustCompute(t, db, DefaultSpacing())
		for i := range a.Points {
			if a.Points[i] != b.Points[i] {
				t.Errorf("%q: residue %d differs: %v vs %v", db, i, a.Points[i], b.Points[i])
			}
		}
		if a.Box != b.Box {
			t.Errorf("%q: box differs", db)
		}
	}
}

func TestComputeFinite(t *testing.T) {
	for _, db := range layoutCases {
		res := mustCompute(t, db, DefaultSpacing())
		if res.Len() != len(db) {
			t.Errorf("%q: %d points, want %d", db, res.Len(), len(db))
		}
		for i, p := range res.Points {
			if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
				t.Errorf("%q: residue %d at %v", db, i, p)
			}
		}
	}
}

func TestComputePairDistance(t *testing.T) {
	sp := DefaultSpacing()
	for _, db := range layoutCases {
		pm := structure.MustParse(db)
		nested, _ := pm.Nested()
		res := mustCompute(t, db, sp)
		for _, p := range nested.Pairs() {
			if d := res.Points[p.I].Distance(res.Points[p.J]); math.Abs(d-sp.PairSpace) > eps {
				t.Errorf("%q: pair (%d,%d) distance %v, want %v", db, p.I, p.J, d, sp.PairSpace)
			}
		}
	}
}

func TestComputeHairpinSpacing(t *testing.T) {
	sp := DefaultSpacing()
	res := mustCompute(t, "((((....))))", sp)

	// Loop residues are evenly spaced, never closer than one backbone link.
	first := res.Points[3].Distance(res.Points[4])
	if first < sp.PrimarySpace-eps {
		t.Errorf("link 3-4 = %v, want at least %v", first, sp.PrimarySpace)
	}
	for i := 4; i < 8; i++ {
		if d := res.Points[i].Distance(res.Points[i+1]); math.Abs(d-first) > eps {
			t.Errorf("link %d-%d = %v, want %v", i, i+1, d, first)
		}
	}
	// Stacked residues advance by one helix step.
	for i := 0; i < 3; i++ {
		if d := res.Points[i].Distance(res.Points[i+1]); math.Abs(d-sp.HelixStep()) > eps {
			t.Errorf("stack %d-%d = %v, want %v", i, i+1, d, sp.HelixStep())
		}
	}
	// The lone helix grows up from the 5' end at the origin.
	if res.Points[0] != (Point{}) || res.Points[1].Y <= res.Points[0].Y {
		t.Errorf("helix does not grow upward from the origin: %v %v", res.Points[0], res.Points[1])
	}
}

// minDistance returns the closest approach of two residues.
func minDistance(pts []Point) (d float64, a, b int) {
	d = math.Inf(1)
	for i := range pts {
		for j := i + 1; j < len(pts); j++ {
			if dd := pts[i].Distance(pts[j]); dd < d {
				d, a, b = dd, i, j
			}
		}
	}
	return d, a, b
}

func TestComputeNoOverlap(t *testing.T) {
	sp := DefaultSpacing()
	for _, db := range []string{
		"((((....))))",
		"((..((...))..((...))..))",
		"..((...))..",
		"(...(((.....)........)......))",
		"((.........((...))))",
		"((((...((((....))))........))))",
		"((((..((((...))))...((((....))))..((((.....))))....((((..))))...))))",
		"((((((...)))).((((...))))..(((...)))((...))((...)).((((...))))..))",
		"((...))((...))((((((((...)))))))).((...))",
	} {
		res := mustCompute(t, db, sp)
		if d, i, j := minDistance(res.Points); d < 2*sp.NodeRadius-eps {
			t.Errorf("%q: residues %d and %d overlap (distance %v)", db, i, j, d)
		}
	}
}

func TestComputeNoOverlapGenerated(t *testing.T) {
	sp := DefaultSpacing()
	g := &structureGen{state: 1}
	for n := 0; n < 60; n++ {
		db := g.structure()
		res := mustCompute(t, db, sp)
		if d, i, j := minDistance(res.Points); d < 2*sp.NodeRadius-eps {
			t.Errorf("%q: residues %d and %d overlap (distance %v)", db, i, j, d)
		}
	}
}

func TestComputeBoxGrowsWithSpacing(t *testing.T) {
	base := DefaultSpacing()
	for _, db := range []string{"((((....))))", "((..((...))..((...))..))", "....."} {
		prev := mustCompute(t, db, base).Box.Area()
		for _, k := range []float64{1.25, 1.5, 2} {
			sp := base
			sp.PrimarySpace *= k
			sp.PairSpace *= k
			area := mustCompute(t, db, sp).Box.Area()
			if area < prev-eps {
				t.Errorf("%q: area shrank from %v to %v at scale %v", db, prev, area, k)
			}
			prev = area
		}
	}
}

func TestComputeScalesHomogeneously(t *testing.T) {
	sp := DefaultSpacing()
	double := Spacing{NodeRadius: 2 * sp.NodeRadius, PrimarySpace: 2 * sp.PrimarySpace, PairSpace: 2 * sp.PairSpace, CellPadding: sp.CellPadding}
	for _, db := range layoutCases {
		a := mustCompute(t, db, sp)
		b := mustCompute(t, db, double)
		for i := range a.Points {
			if d := b.Points[i].Distance(a.Points[i].scale(2)); d > 1e-6*math.Max(1, a.Box.Width()+a.Box.Height()) {
				t.Errorf("%q: residue %d not scaled: %v vs %v", db, i, b.Points[i], a.Points[i])
			}
		}
	}
}

func TestComputeBoxGrowsPerParameter(t *testing.T) {
	bases := []Spacing{
		DefaultSpacing(),
		{NodeRadius: 10, PrimarySpace: 30, PairSpace: 45},
		{NodeRadius: 10, PrimarySpace: 25, PairSpace: 30},
	}
	steps := []struct {
		name string
		grow func(Spacing) Spacing
	}{
		{"primary x1.2", func(s Spacing) Spacing { s.PrimarySpace *= 1.2; return s }},
		{"pair x1.2", func(s Spacing) Spacing { s.PairSpace *= 1.2; return s }},
		{"primary +1", func(s Spacing) Spacing { s.PrimarySpace++; return s }},
		{"pair +1", func(s Spacing) Spacing { s.PairSpace++; return s }},
	}

	g := &structureGen{state: 1}
	for n := 0; n < 60; n++ {
		db := g.structure()
		pm := structure.MustParse(db)
		for _, base := range bases {
			before, err := Compute(pm, base)
			if err != nil {
				t.Fatal(err)
			}
			for _, step := range steps {
				after, err := Compute(pm, step.grow(base))
				if err != nil {
					t.Fatal(err)
				}
				if a, b := before.Box.Area(), after.Box.Area(); b < a*(1-1e-9) {
					t.Errorf("%q: %s from %+v shrinks the box from %v to %v", db, step.name, base, a, b)
				}
			}
		}
	}
}

func TestComputeLinearExterior(t *testing.T) {
	res := mustCompute(t, "..", DefaultSpacing())
	if res.Points[0] != (Point{}) || res.Points[1] != (Point{X: DefaultPrimarySpace}) {
		t.Errorf("points = %v", res.Points)
	}
	single := mustCompute(t, ".", DefaultSpacing())
	if single.Points[0] != (Point{}) {
		t.Errorf("single residue at %v, want origin", single.Points[0])
	}
	if single.Box.Area() != 0 {
		t.Errorf("single residue area = %v", single.Box.Area())
	}
}

func TestComputeExteriorBaseline(t *testing.T) {
	sp := DefaultSpacing()
	for _, db := range layoutCases {
		res := mustCompute(t, db, sp)
		if res.Points[0] != (Point{}) {
			t.Errorf("%q: 5' end at %v, want origin", db, res.Points[0])
		}
		x := math.Inf(-1)
		for _, it := range res.Tree.Root.Items {
			i := it.Residue
			if it.IsHelix() {
				i = it.Helix.Outer().I
				if j := it.Helix.Outer().J; res.Points[j].Y != 0 {
					t.Errorf("%q: helix root %d off the axis at %v", db, j, res.Points[j])
				}
			}
			if p := res.Points[i]; p.Y != 0 || p.X < x+sp.PrimarySpace-eps {
				t.Errorf("%q: exterior residue %d at %v, previous anchor at x=%v", db, i, p, x)
			}
			x = res.Points[i].X
			if it.IsHelix() {
				x = res.Points[it.Helix.Outer().J].X
			}
		}
	}
}

func TestComputeEdges(t *testing.T) {
	res := mustCompute(t, "((..[[..))..]]", DefaultSpacing())
	if len(res.Edges) != 4 {
		t.Fatalf("edges = %d, want 4", len(res.Edges))
	}
	knots := 0
	for _, e := range res.Edges {
		if e.Weight != 1.0 {
			t.Errorf("edge %v weight = %v", e, e.Weight)
		}
		if e.Color != DefaultEdgeColor {
			t.Errorf("edge %v color = %q", e, e.Color)
		}
		if e.Pseudoknot {
			knots++
		}
	}
	if knots != 2 {
		t.Errorf("pseudoknot edges = %d, want 2", knots)
	}
}

func TestComputeErrors(t *testing.T) {
	tests := []struct {
		name string
		pm   structure.PairMap
		sp   Spacing
		code errors.Code
	}{
		{"asymmetric", structure.PairMap{1, structure.Unpaired}, DefaultSpacing(), errors.ErrCodeLayout},
		{"self pair", structure.PairMap{0}, DefaultSpacing(), errors.ErrCodeLayout},
		{"out of range", structure.PairMap{5, structure.Unpaired}, DefaultSpacing(), errors.ErrCodeLayout},
		{"zero pair space", structure.MustParse("(...)"), Spacing{NodeRadius: 10, PrimarySpace: 25}, errors.ErrCodeInvalidSpacingParameters},
		{"negative radius", structure.MustParse("(...)"), Spacing{NodeRadius: -1, PrimarySpace: 25, PairSpace: 45}, errors.ErrCodeInvalidSpacingParameters},
		{"nan primary", structure.MustParse("(...)"), Spacing{NodeRadius: 10, PrimarySpace: math.NaN(), PairSpace: 45}, errors.ErrCodeInvalidSpacingParameters},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compute(tt.pm, tt.sp)
			if !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestComputeWidePairSpace(t *testing.T) {
	sp := Spacing{NodeRadius: 5, PrimarySpace: 10, PairSpace: 200}
	res := mustCompute(t, "((...))", sp)
	for i, p := range res.Points {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) {
			t.Fatalf("residue %d at %v", i, p)
		}
	}
}

func TestSpacingWithDefaults(t *testing.T) {
	got := Spacing{PairSpace: 50}.WithDefaults()
	want := Spacing{NodeRadius: DefaultNodeRadius, PrimarySpace: DefaultPrimarySpace, PairSpace: 50, CellPadding: DefaultCellPadding}
	if got != want {
		t.Errorf("WithDefaults = %+v, want %+v", got, want)
	}
	if s := (Spacing{NodeRadius: 20, PrimarySpace: 25}).HelixStep(); s != 40 {
		t.Errorf("HelixStep = %v, want 40", s)
	}
}

// structureGen produces reproducible random structures from a splitmix64
// sequence: nested helices, interior loops and multiloops with uneven
// unpaired runs.
type structureGen struct{ state uint64 }

func (g *structureGen) intn(n int) int {
	g.state += 0x9e3779b97f4a7c15
	z := g.state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return int((z ^ (z >> 31)) % uint64(n))
}

func (g *structureGen) dots(choices ...int) string {
	return strings.Repeat(".", choices[g.intn(len(choices))])
}

func (g *structureGen) helix(depth int) string {
	stack := 1 + g.intn(4)
	var inner strings.Builder
	if depth >= 2 || g.intn(4) == 0 {
		inner.WriteString(strings.Repeat(".", 3+g.intn(5)))
	} else {
		branches := 1 + g.intn(4)
		for range branches {
			inner.WriteString(g.dots(0, 0, 1, 2, 5, 9))
			inner.WriteString(g.helix(depth + 1))
		}
		inner.WriteString(g.dots(0, 1, 3, 8))
	}
	return strings.Repeat("(", stack) + inner.String() + strings.Repeat(")", stack)
}

func (g *structureGen) structure() string {
	var b strings.Builder
	b.WriteString(g.dots(0, 1, 2, 3))
	b.WriteString(g.helix(0))
	b.WriteString(g.dots(0, 1, 2, 3))
	if g.intn(2) == 0 {
		b.WriteString(g.helix(1))
	}
	return b.String()
}
