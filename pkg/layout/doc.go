// Package layout computes 2-D coordinates for every residue of an RNA
// secondary structure.
//
// # Segment tree
//
// [BuildTree] turns a nested [structure.PairMap] into a tree of two kinds of
// segments:
//
//   - [Helix]: a maximal run of stacked pairs (i,j), (i+1,j-1), ...
//   - [Loop]: the unpaired residues and branching helices enclosed by a
//     helix (hairpin, interior, bulge or multi-branch loop), or the exterior
//     loop at the root.
//
// # Placement
//
// Helices are drawn as ladders: the two strands run parallel, PairSpace
// apart, and consecutive pairs advance by [Spacing.HelixStep]. Every closed
// loop sits on a circle through both residues of its closing pair. The
// direction of each branch around that circle depends only on the loop's
// shape: the closing pair, each branch and each unpaired residue take a
// share of the turn, branches weighted by the hairpins they carry. The
// radius is the smallest one for which backbone neighbours on the circle
// are at least PrimarySpace apart and every branch, laid out in full, stays
// inside an angular sector of its own. Unpaired residues are spread evenly
// between the pairs around them and kept out of those sectors.
//
// Subtrees are laid out bottom-up, so a branch is placed as a rigid shape
// and nested sectors keep residues of different branches apart. A wider
// spacing never gives a loop a smaller circle.
//
// The exterior loop runs left to right along the x axis from the 5' end at
// the origin. Unpaired residues sit on the axis and each helix grows upward
// from it, side by side with its neighbours and never overlapping them.
//
// [Compute] is a pure function: identical inputs give bit-identical
// coordinates, and nothing is cached between calls.
//
//	pm, _ := structure.Parse("((((....))))")
//	res, err := layout.Compute(pm, layout.DefaultSpacing())
//	fmt.Println(res.Box.Width(), res.Box.Height())
//
// Pseudoknotted pairs (pairs crossing the nested subset chosen by
// [structure.PairMap.Nested]) do not shape the layout; their residues are
// placed as unpaired and the pair is reported as an [Edge] with Pseudoknot
// set.
package layout
