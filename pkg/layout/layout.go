package layout

import (
	"math"

	"github.com/matzehuels/rnadraw/pkg/errors"
	"github.com/matzehuels/rnadraw/pkg/structure"
)

// DefaultEdgeColor is the stroke colour of pair edges.
const DefaultEdgeColor = "#4d4d4d"

// Edge is a drawn base pair.
type Edge struct {
	From       int     `json:"from"`
	To         int     `json:"to"`
	Weight     float64 `json:"weight"`
	Color      string  `json:"color"`
	Pseudoknot bool    `json:"pseudoknot,omitempty"`
}

// Result is a computed layout.
type Result struct {
	// Points holds one position per residue, indexed like the pair map.
	Points []Point `json:"points"`
	// Box bounds Points, without padding.
	Box     BoundingBox `json:"box"`
	Edges   []Edge      `json:"edges"`
	Spacing Spacing     `json:"spacing"`
	// Tree is the segment tree of the nested pairs that shaped the layout.
	Tree *Tree `json:"-"`
}

// Len returns the number of residues.
func (r *Result) Len() int { return len(r.Points) }

// Compute lays out pm. Pairs crossing the nested subset are reported as
// pseudoknot edges but do not affect coordinates. An invalid pair map yields
// an error with code LAYOUT; invalid spacing yields INVALID_SPACING.
func Compute(pm structure.PairMap, spacing Spacing) (*Result, error) {
	if err := spacing.Validate(); err != nil {
		return nil, err
	}
	if err := pm.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeLayout, err, "invalid pairing relation")
	}

	nested, knotted := pm.Nested()
	tree, err := BuildTree(nested)
	if err != nil {
		return nil, err
	}

	e := newEngine(spacing)
	pts := make([]Point, pm.Len())
	e.exterior(tree.Root, pts)

	for i, p := range pts {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			return nil, errors.New(errors.ErrCodeLayout, "residue %d has no finite position", i)
		}
	}

	knot := make(map[structure.Pair]bool, len(knotted))
	for _, p := range knotted {
		knot[p] = true
	}
	pairs := pm.Pairs()
	edges := make([]Edge, len(pairs))
	for k, p := range pairs {
		edges[k] = Edge{From: p.I, To: p.J, Weight: 1.0, Color: DefaultEdgeColor, Pseudoknot: knot[p]}
	}

	return &Result{
		Points:  pts,
		Box:     Bounds(pts),
		Edges:   edges,
		Spacing: spacing,
		Tree:    tree,
	}, nil
}

// shape is a laid-out helix and everything it encloses, in the helix's own
// frame: the outer pair is centred on the origin with its 5' residue on the
// left, and the helix grows along +y.
type shape struct {
	idx []int
	pts []Point
}

func (s *shape) put(i int, p Point) {
	s.idx = append(s.idx, i)
	s.pts = append(s.pts, p)
}

// xRange returns the smallest and largest x of the shape's residues.
func (s *shape) xRange() (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, p := range s.pts {
		lo, hi = math.Min(lo, p.X), math.Max(hi, p.X)
	}
	return lo, hi
}

type engine struct {
	sp   Spacing
	step float64
	// clearance is the radius of the disc each residue keeps to itself. It
	// is the node radius unless the spacing packs residues tighter.
	clearance float64
}

func newEngine(sp Spacing) *engine {
	return &engine{
		sp:        sp,
		step:      sp.HelixStep(),
		clearance: math.Min(sp.NodeRadius, math.Min(sp.PrimarySpace, sp.PairSpace)/2),
	}
}

// helix lays out h and its enclosed loop bottom-up, so that every branch of
// the loop is fitted knowing the full extent of its own subtree.
func (e *engine) helix(h *Helix) shape {
	var s shape
	half := e.sp.PairSpace / 2
	for m, pr := range h.Pairs {
		y := float64(m) * e.step
		s.put(pr.I, Point{-half, y})
		s.put(pr.J, Point{half, y})
	}
	if h.Loop != nil {
		e.loop(h.Loop, float64(len(h.Pairs)-1)*e.step, &s)
	}
	return s
}

// loop places l on a circle above the closing pair at height top, and each
// branch along its own direction out of the centre.
func (e *engine) loop(l *Loop, top float64, s *shape) {
	var kids []shape
	for _, it := range l.Items {
		if it.IsHelix() {
			kids = append(kids, e.helix(it.Helix))
		}
	}
	f := newFan(e, l, kids)
	fi := f.solve()
	center := Point{0, top + fi.apothem}

	k, g, u := 0, 0, 0
	for _, it := range l.Items {
		if !it.IsHelix() {
			s.put(it.Residue, center.add(ray(fi.gaps[g][u]).scale(fi.radius)))
			u++
			continue
		}
		out, across := ray(f.dirs[k]), tangent(f.dirs[k])
		for n, i := range kids[k].idx {
			p := kids[k].pts[n]
			s.put(i, center.add(out.scale(fi.apothem+p.Y)).add(across.scale(p.X)))
		}
		k, g, u = k+1, g+1, 0
	}
}

// exterior lays the root loop along the x axis from the 5' end at the
// origin, with every helix growing up. Neighbours are at least PrimarySpace
// apart, and each element keeps a vertical slab of its own so no subtree
// can reach into the next.
func (e *engine) exterior(l *Loop, pts []Point) {
	c, half := e.clearance, e.sp.PairSpace/2
	var anchor, reach float64
	for n, it := range l.Items {
		if !it.IsHelix() {
			x := 0.0
			if n > 0 {
				x = math.Max(anchor+e.sp.PrimarySpace, reach+c)
			}
			pts[it.Residue] = Point{X: x}
			anchor, reach = x, x+c
			continue
		}
		s := e.helix(it.Helix)
		lo, hi := s.xRange()
		base := half
		if n > 0 {
			base = math.Max(anchor+e.sp.PrimarySpace+half, reach+c-lo)
		}
		for m, i := range s.idx {
			pts[i] = s.pts[m].add(Point{X: base})
		}
		anchor, reach = base+half, base+hi+c
	}
}
