package layout

import "math"

const (
	bisectIterations = 200
	maxDoublings     = 64
)

// Angles on a loop circle run clockwise from the closing pair, whose chord
// midpoint lies at angle 0 straight below the centre.

// ray returns the outward unit vector at angle t.
func ray(t float64) Point { return Point{-math.Sin(t), -math.Cos(t)} }

// tangent returns the clockwise unit tangent at angle t.
func tangent(t float64) Point { return Point{-math.Cos(t), math.Sin(t)} }

// fan is a loop waiting to be fitted onto a circle. Branch directions are
// fixed by the loop's shape alone; only the radius depends on the spacing.
type fan struct {
	e     *engine
	items []Item
	kids  []shape
	dirs  []float64
	// floor is the least distance between the centre and the closing chord.
	floor float64
}

// fit is a fan on a circle of a given radius.
type fit struct {
	radius float64
	// apothem is the distance from the centre to every pair chord.
	apothem float64
	// gaps holds the angles of the unpaired residues between consecutive
	// pairs, starting after the closing pair.
	gaps [][]float64
}

// edge is the side of a loop element facing a gap: the backbone angle where
// the strand leaves it and the outermost angle its residues occupy.
type edge struct {
	link, reach float64
}

func newFan(e *engine, l *Loop, kids []shape) *fan {
	f := &fan{e: e, items: l.Items, kids: kids}

	// Weights share the circle: the closing pair and every branch take room
	// for their neighbourhood, unpaired residues one slot each.
	const closingWeight = 3.0
	weights := make([]float64, len(l.Items))
	total := closingWeight
	for k, it := range l.Items {
		weights[k] = 1
		if it.IsHelix() {
			weights[k] = 2 + float64(leaves(it.Helix))
		}
		total += weights[k]
	}
	acc := closingWeight / 2
	for k, it := range l.Items {
		if it.IsHelix() {
			f.dirs = append(f.dirs, 2*math.Pi*(acc+weights[k]/2)/total)
		}
		acc += weights[k]
	}

	links := float64(len(l.Items) + 1)
	f.floor = e.sp.PrimarySpace / (2 * math.Sin(math.Pi/math.Max(links, 2)))
	return f
}

// leaves counts the hairpins at the tips of the subtree rooted at h.
func leaves(h *Helix) int {
	if h.Loop == nil {
		return 1
	}
	n := 0
	for _, it := range h.Loop.Items {
		if it.IsHelix() {
			n += leaves(it.Helix)
		}
	}
	return max(n, 1)
}

// solve returns the fan on the smallest circle that keeps every backbone
// link at least PrimarySpace long and every branch inside a sector of its
// own. Growing the radius only relaxes these constraints, so the smallest
// feasible radius is found by bisection.
func (f *fan) solve() fit {
	lo := math.Hypot(f.floor, f.e.sp.PairSpace/2)
	if fi, ok := f.at(lo); ok {
		return fi
	}
	hi := 2 * math.Max(lo, math.Max(f.e.sp.PairSpace, f.e.sp.PrimarySpace))
	for i := 0; i < maxDoublings; i++ {
		if _, ok := f.at(hi); ok {
			break
		}
		lo, hi = hi, 2*hi
	}
	for i := 0; i < bisectIterations && hi-lo > 1e-13*hi; i++ {
		mid := (lo + hi) / 2
		if _, ok := f.at(mid); ok {
			hi = mid
		} else {
			lo = mid
		}
	}
	fi, _ := f.at(hi)
	return fi
}

// at fits the fan on a circle of radius r. ok is false when a link would be
// shorter than PrimarySpace or two elements would share a sector.
func (f *fan) at(r float64) (fi fit, ok bool) {
	sp, c := f.e.sp, f.e.clearance
	if 2*r < sp.PairSpace {
		return fit{}, false
	}
	fi = fit{radius: r, apothem: math.Sqrt(math.Max(0, r*r-sp.PairSpace*sp.PairSpace/4))}
	chord := 2 * math.Asin(math.Min(1, sp.PairSpace/(2*r)))
	link := 2 * math.Asin(math.Min(1, sp.PrimarySpace/(2*r)))
	disc := math.Asin(math.Min(1, c/r))

	prev := edge{link: chord / 2, reach: chord/2 + disc}
	k, waiting := 0, 0
	gap := func(next edge) bool {
		angles, ok := spread(prev, next, waiting, link, disc)
		fi.gaps = append(fi.gaps, angles)
		return ok
	}
	for _, it := range f.items {
		if !it.IsHelix() {
			waiting++
			continue
		}
		lo, hi, ok := f.sector(k, fi.apothem)
		if !ok {
			return fit{}, false
		}
		t := f.dirs[k]
		if !gap(edge{link: t - chord/2, reach: t + lo}) {
			return fit{}, false
		}
		prev, waiting = edge{link: t + chord/2, reach: t + hi}, 0
		k++
	}
	if !gap(edge{link: 2*math.Pi - chord/2, reach: 2*math.Pi - chord/2 - disc}) {
		return fit{}, false
	}
	return fi, true
}

// sector returns the angles, relative to its direction, that branch k
// covers when its outer pair sits at the given distance from the centre.
// Residues are discs of the engine's clearance radius.
func (f *fan) sector(k int, apothem float64) (lo, hi float64, ok bool) {
	c := f.e.clearance
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, p := range f.kids[k].pts {
		y := apothem + p.Y
		d := math.Hypot(p.X, y)
		if d <= c {
			return 0, 0, false
		}
		a, w := math.Atan2(p.X, y), math.Asin(c/d)
		lo, hi = math.Min(lo, a-w), math.Max(hi, a+w)
	}
	return lo, hi, true
}

// spread places n unpaired residues between two loop elements. They are
// evenly spaced between the two backbone anchors where possible and pushed
// out of either element's sector otherwise, never closer than one link.
func spread(from, to edge, n int, link, disc float64) ([]float64, bool) {
	const tol = 1e-9
	if n == 0 {
		return nil, to.link-from.link >= link-tol && to.reach >= from.reach-tol
	}
	first := math.Max(from.link+link, from.reach+disc)
	last := math.Min(to.link-link, to.reach-disc)
	if last-first < float64(n-1)*link-tol {
		return nil, false
	}
	step := (to.link - from.link) / float64(n+1)
	angles := make([]float64, n)
	for i := range angles {
		even := from.link + float64(i+1)*step
		angles[i] = math.Min(math.Max(even, first+float64(i)*link), last-float64(n-1-i)*link)
	}
	return angles, true
}
