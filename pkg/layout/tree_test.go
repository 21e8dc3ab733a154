package layout

import (
	"testing"

	"github.com/matzehuels/rnadraw/pkg/errors"
	"github.com/matzehuels/rnadraw/pkg/structure"
)

func TestBuildTree(t *testing.T) {
	tests := []struct {
		name      string
		db        string
		rootItems int
		helices   int
		kinds     map[LoopKind]int
	}{
		{"empty", "", 0, 0, map[LoopKind]int{ExteriorLoop: 1}},
		{"unpaired", "....", 4, 0, map[LoopKind]int{ExteriorLoop: 1}},
		{"hairpin", "((((....))))", 1, 1, map[LoopKind]int{ExteriorLoop: 1, HairpinLoop: 1}},
		{"tails", "..((...)).", 4, 1, map[LoopKind]int{ExteriorLoop: 1, HairpinLoop: 1}},
		{"bulge", "((.((...))))", 1, 2, map[LoopKind]int{ExteriorLoop: 1, InteriorLoop: 1, HairpinLoop: 1}},
		{"multiloop", "((..((...))..((...))..))", 1, 3, map[LoopKind]int{ExteriorLoop: 1, MultiLoop: 1, HairpinLoop: 2}},
		{"two domains", "((...))((...))", 2, 2, map[LoopKind]int{ExteriorLoop: 1, HairpinLoop: 2}},
		{"empty hairpin", "(())", 1, 1, map[LoopKind]int{ExteriorLoop: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := BuildTree(structure.MustParse(tt.db))
			if err != nil {
				t.Fatalf("BuildTree: %v", err)
			}
			if got := len(tree.Root.Items); got != tt.rootItems {
				t.Errorf("root items = %d, want %d", got, tt.rootItems)
			}
			if got := len(tree.Helices()); got != tt.helices {
				t.Errorf("helices = %d, want %d", got, tt.helices)
			}
			kinds := map[LoopKind]int{}
			tree.Walk(func(l *Loop, _ int) { kinds[l.Kind()]++ })
			for k, want := range tt.kinds {
				if kinds[k] != want {
					t.Errorf("%s loops = %d, want %d", k, kinds[k], want)
				}
			}
		})
	}
}

func TestBuildTreeCoversEveryResidue(t *testing.T) {
	db := "..((..((...))..((..))..))..((...)).."
	pm := structure.MustParse(db)
	tree, err := BuildTree(pm)
	if err != nil {
		t.Fatal(err)
	}

	seen := make([]int, len(db))
	tree.Walk(func(l *Loop, _ int) {
		for _, it := range l.Items {
			if !it.IsHelix() {
				seen[it.Residue]++
			}
		}
	})
	for _, h := range tree.Helices() {
		for _, p := range h.Pairs {
			seen[p.I]++
			seen[p.J]++
		}
	}
	for i, n := range seen {
		if n != 1 {
			t.Errorf("residue %d covered %d times", i, n)
		}
	}
}

func TestBuildTreeHelixStacks(t *testing.T) {
	tree, err := BuildTree(structure.MustParse("(((.((...)).)))"))
	if err != nil {
		t.Fatal(err)
	}
	hs := tree.Helices()
	if len(hs) != 2 {
		t.Fatalf("helices = %d, want 2", len(hs))
	}
	if got := len(hs[0].Pairs); got != 3 {
		t.Errorf("outer helix pairs = %d, want 3", got)
	}
	if got := hs[0].Outer(); got != (structure.Pair{I: 0, J: 14}) {
		t.Errorf("outer pair = %v", got)
	}
	if got := hs[1].Inner(); got != (structure.Pair{I: 5, J: 9}) {
		t.Errorf("inner pair = %v", got)
	}
}

func TestBuildTreeRejectsCrossing(t *testing.T) {
	_, err := BuildTree(structure.MustParse("((..[[..))..]]"))
	if !errors.Is(err, errors.ErrCodeLayout) {
		t.Errorf("err = %v, want LAYOUT", err)
	}
}
