// Package structure parses RNA secondary structures written in dot-bracket
// notation into a pairing relation.
//
// # Notation
//
// A structure is a string with one character per residue. The unpaired
// symbol is '.'. Paired residues are marked with an open and a close symbol
// of the same bracket channel. Each channel nests independently, which is
// how crossing (pseudoknotted) pairs are written:
//
//	((((....[[[.))))..]]]
//
// The recognised channels, in priority order, are (), [], {}, <> and the
// letter pairs A/a through Z/z.
//
// # Pair maps
//
// [Parse] returns a [PairMap]: for every residue index the index of its
// partner, or [Unpaired]. A PairMap is symmetric and never pairs a residue
// with itself. [PairMap.DotBracket] serialises it back; parsing that string
// yields the same PairMap again.
//
//	pm, err := structure.Parse("((..))")
//	// pm == PairMap{5, 4, -1, -1, 1, 0}
package structure
