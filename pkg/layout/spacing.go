package layout

import (
	"math"

	"github.com/matzehuels/rnadraw/pkg/errors"
)

// Default spacing values, in layout units.
const (
	DefaultNodeRadius   = 10.0
	DefaultPrimarySpace = 25.0
	DefaultPairSpace    = 45.0
	DefaultCellPadding  = 40.0
)

// Spacing holds the immutable distances that shape a layout.
type Spacing struct {
	// NodeRadius is the drawn radius of one residue.
	NodeRadius float64 `json:"node_r" toml:"node_r"`
	// PrimarySpace is the distance between backbone neighbours in loops.
	PrimarySpace float64 `json:"primary_space" toml:"primary_space"`
	// PairSpace is the distance between the two residues of a pair.
	PairSpace float64 `json:"pair_space" toml:"pair_space"`
	// CellPadding is the margin added around the bounding box when drawing.
	CellPadding float64 `json:"cell_padding" toml:"cell_padding"`
}

// DefaultSpacing returns the spacing used when none is configured.
func DefaultSpacing() Spacing {
	return Spacing{
		NodeRadius:   DefaultNodeRadius,
		PrimarySpace: DefaultPrimarySpace,
		PairSpace:    DefaultPairSpace,
		CellPadding:  DefaultCellPadding,
	}
}

// WithDefaults fills zero fields from [DefaultSpacing].
func (s Spacing) WithDefaults() Spacing {
	d := DefaultSpacing()
	if s.NodeRadius == 0 {
		s.NodeRadius = d.NodeRadius
	}
	if s.PrimarySpace == 0 {
		s.PrimarySpace = d.PrimarySpace
	}
	if s.PairSpace == 0 {
		s.PairSpace = d.PairSpace
	}
	if s.CellPadding == 0 {
		s.CellPadding = d.CellPadding
	}
	return s
}

// Validate checks that every distance is finite and positive (padding may
// be zero).
func (s Spacing) Validate() error {
	check := func(name string, v float64, allowZero bool) error {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 || (v == 0 && !allowZero) {
			return errors.New(errors.ErrCodeInvalidSpacingParameters, "%s must be positive, got %v", name, v)
		}
		return nil
	}
	if err := check("node_r", s.NodeRadius, false); err != nil {
		return err
	}
	if err := check("primary_space", s.PrimarySpace, false); err != nil {
		return err
	}
	if err := check("pair_space", s.PairSpace, false); err != nil {
		return err
	}
	return check("cell_padding", s.CellPadding, true)
}

// HelixStep is the distance between consecutive stacked pairs. It never
// drops below one residue diameter so stacked residues do not overlap.
func (s Spacing) HelixStep() float64 {
	return math.Max(s.PrimarySpace, 2*s.NodeRadius)
}
