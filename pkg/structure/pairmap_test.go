package structure

import (
	"slices"
	"testing"

	"github.com/matzehuels/rnadraw/pkg/errors"
)

func TestPairs(t *testing.T) {
	pm := MustParse("((..))")
	want := []Pair{{0, 5}, {1, 4}}
	if got := pm.Pairs(); !slices.Equal(got, want) {
		t.Errorf("Pairs() = %v, want %v", got, want)
	}
	if pm.PairCount() != 2 {
		t.Errorf("PairCount() = %d, want 2", pm.PairCount())
	}
	if pm.IsPaired(2) || pm.IsPaired(3) {
		t.Error("residues 2 and 3 should be unpaired")
	}
	if pm.Partner(0) != 5 || pm.Partner(5) != 0 {
		t.Error("residues 0 and 5 should be partners")
	}
}

func TestFromPairs(t *testing.T) {
	pm, err := FromPairs(6, []Pair{{5, 0}, {1, 4}})
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(pm, MustParse("((..))")) {
		t.Errorf("FromPairs = %v", []int(pm))
	}

	bad := []struct {
		name  string
		pairs []Pair
	}{
		{"out of range", []Pair{{0, 6}}},
		{"negative", []Pair{{-1, 3}}},
		{"self pair", []Pair{{2, 2}}},
		{"reused residue", []Pair{{0, 5}, {0, 4}}},
	}
	for _, tt := range bad {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromPairs(6, tt.pairs)
			if !errors.Is(err, errors.ErrCodeLayout) {
				t.Errorf("FromPairs error = %v, want %s", err, errors.ErrCodeLayout)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		pm      PairMap
		wantErr bool
	}{
		{"valid", PairMap{5, 4, -1, -1, 1, 0}, false},
		{"empty", PairMap{}, false},
		{"self pair", PairMap{0}, true},
		{"asymmetric", PairMap{2, -1, -1}, true},
		{"disagreeing partner", PairMap{2, 2, 0}, true},
		{"out of range", PairMap{7, -1}, true},
		{"negative partner", PairMap{-4, -1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.pm.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeLayout) {
				t.Errorf("Validate() code = %s, want %s", errors.GetCode(err), errors.ErrCodeLayout)
			}
		})
	}
}

func TestNested(t *testing.T) {
	pm := MustParse("((.[[.)).]]")
	if pm.IsNested() {
		t.Fatal("pseudoknot reported as nested")
	}

	nested, knotted := pm.Nested()
	if !nested.IsNested() {
		t.Errorf("Nested() result still crosses: %v", nested)
	}
	if got := nested.PairCount() + len(knotted); got != pm.PairCount() {
		t.Errorf("Nested() lost pairs: %d nested + %d knotted != %d", nested.PairCount(), len(knotted), pm.PairCount())
	}
	if len(knotted) != 2 {
		t.Errorf("knotted = %v, want 2 pairs", knotted)
	}
	for _, p := range knotted {
		if nested.IsPaired(p.I) || nested.IsPaired(p.J) {
			t.Errorf("knotted pair %v still present in nested map", p)
		}
	}

	plain := MustParse("((..))..((..))")
	n2, k2 := plain.Nested()
	if len(k2) != 0 || !slices.Equal(n2, plain) {
		t.Errorf("Nested() changed a nested structure: %v %v", n2, k2)
	}
}

func TestPairCrosses(t *testing.T) {
	tests := []struct {
		a, b Pair
		want bool
	}{
		{Pair{0, 5}, Pair{1, 4}, false},
		{Pair{0, 5}, Pair{3, 8}, true},
		{Pair{3, 8}, Pair{0, 5}, true},
		{Pair{0, 2}, Pair{3, 5}, false},
	}
	for _, tt := range tests {
		if got := tt.a.Crosses(tt.b); got != tt.want {
			t.Errorf("%v.Crosses(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
