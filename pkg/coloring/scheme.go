package coloring

import (
	"strings"

	"github.com/matzehuels/rnadraw/pkg/errors"
	"github.com/matzehuels/rnadraw/pkg/structure"
)

// Scheme is a named colouring strategy.
type Scheme int

const (
	// SchemeNone colours nothing; residues fall through to the default.
	SchemeNone Scheme = iota
	// SchemeResType colours A, C, G and U with the first four palette
	// colours. Other letters fall through.
	SchemeResType
	// SchemePaired colours paired residues with the first palette colour
	// and unpaired residues with the second.
	SchemePaired
	// SchemeStrand gives every helix its own palette colour. Unpaired
	// residues fall through.
	SchemeStrand
)

var schemeNames = map[Scheme]string{
	SchemeNone:    "none",
	SchemeResType: "res_type",
	SchemePaired:  "paired",
	SchemeStrand:  "strand",
}

func (s Scheme) String() string { return schemeNames[s] }

// SchemeNames lists the accepted scheme keywords.
func SchemeNames() []string { return []string{"res_type", "paired", "strand", "none"} }

// ParseScheme parses a scheme keyword, case-insensitively. The empty
// string is [SchemeNone].
func ParseScheme(name string) (Scheme, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return SchemeNone, nil
	}
	for s, n := range schemeNames {
		if n == key {
			return s, nil
		}
	}
	return SchemeNone, errors.New(errors.ErrCodeUnknownScheme, "unknown colour scheme %q (available: %s)",
		name, strings.Join(SchemeNames(), ", "))
}

// apply returns the scheme colour of every residue; ok[i] is false where
// the scheme has no opinion.
func (s Scheme) apply(seq string, pm structure.PairMap, pal Categorical) (colors []Color, ok []bool) {
	n := pm.Len()
	colors, ok = make([]Color, n), make([]bool, n)
	switch s {
	case SchemeResType:
		for i := 0; i < n && i < len(seq); i++ {
			if k := strings.IndexByte("ACGU", seq[i]); k >= 0 {
				colors[i], ok[i] = pal.At(k), true
			}
		}
	case SchemePaired:
		for i := range n {
			if pm.IsPaired(i) {
				colors[i] = pal.At(0)
			} else {
				colors[i] = pal.At(1)
			}
			ok[i] = true
		}
	case SchemeStrand:
		for i, h := range helixIDs(pm) {
			if h >= 0 {
				colors[i], ok[i] = pal.At(h), true
			}
		}
	}
	return colors, ok
}

// helixIDs numbers the stacked runs of pairs in 5' order; unpaired residues
// get -1.
func helixIDs(pm structure.PairMap) []int {
	ids := make([]int, pm.Len())
	for i := range ids {
		ids[i] = -1
	}
	next := 0
	for _, p := range pm.Pairs() {
		if p.I > 0 && p.J+1 < pm.Len() && pm[p.I-1] == p.J+1 {
			ids[p.I] = ids[p.I-1]
		} else {
			ids[p.I] = next
			next++
		}
		ids[p.J] = ids[p.I]
	}
	return ids
}
