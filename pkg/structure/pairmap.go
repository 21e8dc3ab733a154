package structure

import (
	"cmp"
	"slices"

	"github.com/matzehuels/rnadraw/pkg/errors"
)

// PairMap maps every residue index to its partner index, or to [Unpaired].
type PairMap []int

// Pair is one base pair with I < J.
type Pair struct {
	I, J int
}

// Span is the number of residues enclosed by the pair, both ends included.
func (p Pair) Span() int { return p.J - p.I + 1 }

// Crosses reports whether p and q interleave (i < k < j < l).
func (p Pair) Crosses(q Pair) bool {
	return (p.I < q.I && q.I < p.J && p.J < q.J) || (q.I < p.I && p.I < q.J && q.J < p.J)
}

// New returns a PairMap of n unpaired residues.
func New(n int) PairMap {
	pm := make(PairMap, n)
	for i := range pm {
		pm[i] = Unpaired
	}
	return pm
}

// FromPairs builds a PairMap of n residues from an explicit pair list.
// It fails with [errors.ErrCodeLayout] when a pair is out of range, pairs a
// residue with itself, or reuses a residue.
func FromPairs(n int, pairs []Pair) (PairMap, error) {
	pm := New(n)
	for _, p := range pairs {
		i, j := p.I, p.J
		if i > j {
			i, j = j, i
		}
		switch {
		case i < 0 || j >= n:
			return nil, errors.New(errors.ErrCodeLayout, "pair (%d,%d) outside 0..%d", p.I, p.J, n-1)
		case i == j:
			return nil, errors.New(errors.ErrCodeLayout, "residue %d paired with itself", i)
		case pm[i] != Unpaired || pm[j] != Unpaired:
			return nil, errors.New(errors.ErrCodeLayout, "pair (%d,%d) reuses a paired residue", i, j)
		}
		pm[i], pm[j] = j, i
	}
	return pm, nil
}

// Len returns the number of residues.
func (pm PairMap) Len() int { return len(pm) }

// Partner returns the partner of residue i, or [Unpaired].
func (pm PairMap) Partner(i int) int { return pm[i] }

// IsPaired reports whether residue i has a partner.
func (pm PairMap) IsPaired(i int) bool { return pm[i] != Unpaired }

// Pairs returns every pair once, ordered by the 5' residue.
func (pm PairMap) Pairs() []Pair {
	var pairs []Pair
	for i, j := range pm {
		if j > i {
			pairs = append(pairs, Pair{I: i, J: j})
		}
	}
	return pairs
}

// PairCount returns the number of base pairs.
func (pm PairMap) PairCount() int {
	n := 0
	for i, j := range pm {
		if j > i {
			n++
		}
	}
	return n
}

// Clone returns an independent copy.
func (pm PairMap) Clone() PairMap { return slices.Clone(pm) }

// Validate checks the invariants of a pairing relation: every partner is in
// range, no residue pairs with itself, and the relation is symmetric.
// Violations are reported with [errors.ErrCodeLayout].
func (pm PairMap) Validate() error {
	n := len(pm)
	for i, j := range pm {
		if j == Unpaired {
			continue
		}
		switch {
		case j < 0 || j >= n:
			return errors.New(errors.ErrCodeLayout, "residue %d has partner %d outside 0..%d", i, j, n-1)
		case j == i:
			return errors.New(errors.ErrCodeLayout, "residue %d paired with itself", i)
		case pm[j] != i:
			return errors.New(errors.ErrCodeLayout, "residue %d pairs with %d but %d pairs with %d", i, j, j, pm[j])
		}
	}
	return nil
}

// Nested splits the pairs into a non-crossing subset and the remaining
// pseudoknotted pairs. Shorter pairs are kept first, so a long pair that
// spans a knot is the one set aside. The split is deterministic.
func (pm PairMap) Nested() (nested PairMap, knotted []Pair) {
	pairs := pm.Pairs()
	slices.SortStableFunc(pairs, func(a, b Pair) int {
		if c := cmp.Compare(a.Span(), b.Span()); c != 0 {
			return c
		}
		return cmp.Compare(a.I, b.I)
	})

	nested = New(len(pm))
	var kept []Pair
	for _, p := range pairs {
		if crossesAny(p, kept) {
			knotted = append(knotted, p)
			continue
		}
		kept = append(kept, p)
		nested[p.I], nested[p.J] = p.J, p.I
	}
	slices.SortFunc(knotted, func(a, b Pair) int { return cmp.Compare(a.I, b.I) })
	return nested, knotted
}

// IsNested reports whether no two pairs cross.
func (pm PairMap) IsNested() bool {
	var open []int
	for i, j := range pm {
		switch {
		case j == Unpaired:
		case j > i:
			open = append(open, i)
		default:
			if len(open) == 0 || open[len(open)-1] != j {
				return false
			}
			open = open[:len(open)-1]
		}
	}
	return true
}

func crossesAny(p Pair, kept []Pair) bool {
	for _, q := range kept {
		if p.Crosses(q) {
			return true
		}
	}
	return false
}
