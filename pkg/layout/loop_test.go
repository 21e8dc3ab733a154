package layout

import (
	"math"
	"testing"

	"github.com/matzehuels/rnadraw/pkg/structure"
)

func TestSpread(t *testing.T) {
	tests := []struct {
		name     string
		from, to edge
		n        int
		want     []float64
		ok       bool
	}{
		{"even", edge{0, 0}, edge{1, 1}, 3, []float64{0.25, 0.5, 0.75}, true},
		{"pushed out of a sector", edge{0, 0.6}, edge{1, 1}, 2, []float64{0.65, 0.75}, true},
		{"tight", edge{0, 0}, edge{1, 1}, 9, nil, true},
		{"too many", edge{0, 0}, edge{1, 1}, 10, nil, false},
		{"direct link", edge{0, 0}, edge{1, 1}, 0, nil, true},
		{"link too short", edge{0, 0}, edge{0.05, 0.05}, 0, nil, false},
		{"sectors cross", edge{0, 0.7}, edge{1, 0.5}, 0, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := spread(tt.from, tt.to, tt.n, 0.1, 0.05)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if !ok {
				return
			}
			if len(got) != tt.n {
				t.Fatalf("got %d angles, want %d", len(got), tt.n)
			}
			for i := range tt.want {
				if math.Abs(got[i]-tt.want[i]) > 1e-12 {
					t.Errorf("angle %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
			for i := 1; i < len(got); i++ {
				if got[i]-got[i-1] < 0.1-1e-9 {
					t.Errorf("angles %d and %d closer than one link: %v", i-1, i, got)
				}
			}
		})
	}
}

func mustLoop(t *testing.T, db string) *Loop {
	t.Helper()
	tree, err := BuildTree(structure.MustParse(db))
	if err != nil {
		t.Fatal(err)
	}
	return tree.Root.Items[0].Helix.Loop
}

func TestFanSolveIsTight(t *testing.T) {
	e := newEngine(DefaultSpacing())
	for _, db := range []string{"(....)", "(.........)", "(..(...)..(...).)", "(((...)).....)"} {
		l := mustLoop(t, db)
		var kids []shape
		for _, it := range l.Items {
			if it.IsHelix() {
				kids = append(kids, e.helix(it.Helix))
			}
		}
		f := newFan(e, l, kids)
		fi := f.solve()

		if _, ok := f.at(fi.radius); !ok {
			t.Errorf("%q: solved radius %v is not feasible", db, fi.radius)
		}
		// The floor may be what holds the circle open; otherwise a slightly
		// smaller circle must break a constraint.
		if lo := math.Hypot(f.floor, e.sp.PairSpace/2); fi.radius > lo*(1+1e-9) {
			if _, ok := f.at(fi.radius * (1 - 1e-6)); ok {
				t.Errorf("%q: radius %v is not the smallest feasible", db, fi.radius)
			}
		}
		if want := math.Sqrt(fi.radius*fi.radius - e.sp.PairSpace*e.sp.PairSpace/4); math.Abs(fi.apothem-want) > 1e-9 {
			t.Errorf("%q: apothem = %v, want %v", db, fi.apothem, want)
		}
	}
}

func TestFanDirectionsIgnoreSpacing(t *testing.T) {
	l := mustLoop(t, "((..((...))...((....)).(...)..))")
	a := newFan(newEngine(DefaultSpacing()), l, nil)
	b := newFan(newEngine(Spacing{NodeRadius: 3, PrimarySpace: 70, PairSpace: 12}), l, nil)
	if len(a.dirs) != 3 {
		t.Fatalf("dirs = %v, want 3 branches", a.dirs)
	}
	for k := range a.dirs {
		if a.dirs[k] != b.dirs[k] {
			t.Errorf("branch %d direction %v changes to %v with spacing", k, a.dirs[k], b.dirs[k])
		}
		if a.dirs[k] <= 0 || a.dirs[k] >= 2*math.Pi || (k > 0 && a.dirs[k] <= a.dirs[k-1]) {
			t.Errorf("directions not ordered clockwise inside (0, 2π): %v", a.dirs)
		}
	}
}

func TestLeaves(t *testing.T) {
	tests := []struct {
		db   string
		want int
	}{
		{"((...))", 1},
		{"(())", 1},
		{"((..((...))..((...))..))", 2},
		{"((.((...))((.((...))((...)))).))", 3},
	}
	for _, tt := range tests {
		tree, err := BuildTree(structure.MustParse(tt.db))
		if err != nil {
			t.Fatal(err)
		}
		if got := leaves(tree.Root.Items[0].Helix); got != tt.want {
			t.Errorf("leaves(%q) = %d, want %d", tt.db, got, tt.want)
		}
	}
}
