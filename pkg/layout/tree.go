package layout

import (
	"slices"

	"github.com/matzehuels/rnadraw/pkg/errors"
	"github.com/matzehuels/rnadraw/pkg/structure"
)

// LoopKind classifies a loop by its number of branches.
type LoopKind int

const (
	// ExteriorLoop is the root loop, not closed by any pair.
	ExteriorLoop LoopKind = iota
	// HairpinLoop is closed by one pair and has no branches.
	HairpinLoop
	// InteriorLoop has exactly one branch. Bulges are interior loops with
	// unpaired residues on one side only.
	InteriorLoop
	// MultiLoop has two or more branches.
	MultiLoop
)

func (k LoopKind) String() string {
	switch k {
	case ExteriorLoop:
		return "exterior"
	case HairpinLoop:
		return "hairpin"
	case InteriorLoop:
		return "interior"
	case MultiLoop:
		return "multiloop"
	}
	return "unknown"
}

// Helix is a maximal run of stacked pairs, outermost pair first.
type Helix struct {
	Pairs []structure.Pair
	// Loop is the loop enclosed by the innermost pair. It is nil when the
	// innermost pair encloses no residues.
	Loop *Loop
}

// Outer returns the helix's first (outermost) pair.
func (h *Helix) Outer() structure.Pair { return h.Pairs[0] }

// Inner returns the helix's last (innermost) pair.
func (h *Helix) Inner() structure.Pair { return h.Pairs[len(h.Pairs)-1] }

// Item is one element on a loop's backbone: either an unpaired residue or
// a branching helix.
type Item struct {
	// Residue is the index of an unpaired residue, or structure.Unpaired
	// when the item is a helix.
	Residue int
	Helix   *Helix
}

// IsHelix reports whether the item is a branching helix.
func (it Item) IsHelix() bool { return it.Helix != nil }

// Loop is a set of residues and branches closed by a helix, or the
// exterior loop when Closing is nil.
type Loop struct {
	Closing *Helix
	Items   []Item
}

// Branches returns the number of helices branching off the loop.
func (l *Loop) Branches() int {
	n := 0
	for _, it := range l.Items {
		if it.IsHelix() {
			n++
		}
	}
	return n
}

// Unpaired returns the number of unpaired residues in the loop.
func (l *Loop) Unpaired() int { return len(l.Items) - l.Branches() }

// Kind classifies the loop.
func (l *Loop) Kind() LoopKind {
	switch {
	case l.Closing == nil:
		return ExteriorLoop
	case l.Branches() == 0:
		return HairpinLoop
	case l.Branches() == 1:
		return InteriorLoop
	default:
		return MultiLoop
	}
}

// Tree is the segment tree of a nested structure.
type Tree struct {
	Root *Loop
	// Len is the number of residues covered.
	Len int
}

// BuildTree builds the segment tree of pm in a single left-to-right scan.
// pm must be valid and free of crossing pairs; use [structure.PairMap.Nested]
// first when it may contain pseudoknots.
func BuildTree(pm structure.PairMap) (*Tree, error) {
	if err := pm.Validate(); err != nil {
		return nil, err
	}

	type frame struct {
		loop   *Loop
		end    int // index of the closing residue that ends the loop
		resume int // where the scan continues once the loop is done
	}

	n := pm.Len()
	root := &Loop{}
	stack := []frame{{loop: root, end: n, resume: n}}

	for i := 0; i < n; {
		top := stack[len(stack)-1]
		if i == top.end {
			stack = stack[:len(stack)-1]
			i = top.resume
			continue
		}

		j := pm[i]
		switch {
		case j == structure.Unpaired:
			top.loop.Items = append(top.loop.Items, Item{Residue: i})
			i++

		case j > i:
			h := &Helix{Pairs: []structure.Pair{{I: i, J: j}}}
			for a, b := i+1, j-1; a < b && pm[a] == b; a, b = a+1, b-1 {
				h.Pairs = append(h.Pairs, structure.Pair{I: a, J: b})
			}
			top.loop.Items = append(top.loop.Items, Item{Residue: structure.Unpaired, Helix: h})

			in := h.Inner()
			if in.J-in.I > 1 {
				h.Loop = &Loop{Closing: h}
				stack = append(stack, frame{loop: h.Loop, end: in.J, resume: j + 1})
				i = in.I + 1
			} else {
				i = j + 1
			}

		default:
			return nil, errors.New(errors.ErrCodeLayout, "pair (%d,%d) crosses an enclosing pair", j, i)
		}
	}
	if len(stack) != 1 {
		return nil, errors.New(errors.ErrCodeLayout, "unterminated loop in segment tree")
	}
	return &Tree{Root: root, Len: n}, nil
}

// Walk visits every loop of the tree in depth-first, 5' to 3' order.
func (t *Tree) Walk(fn func(l *Loop, depth int)) {
	type entry struct {
		loop  *Loop
		depth int
	}
	stack := []entry{{t.Root, 0}}
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		fn(e.loop, e.depth)
		for k := len(e.loop.Items) - 1; k >= 0; k-- {
			if h := e.loop.Items[k].Helix; h != nil && h.Loop != nil {
				stack = append(stack, entry{h.Loop, e.depth + 1})
			}
		}
	}
}

// Helices returns every helix of the tree in 5' order.
func (t *Tree) Helices() []*Helix {
	var out []*Helix
	t.Walk(func(l *Loop, _ int) {
		for _, it := range l.Items {
			if it.IsHelix() {
				out = append(out, it.Helix)
			}
		}
	})
	slices.SortFunc(out, func(a, b *Helix) int { return a.Outer().I - b.Outer().I })
	return out
}
