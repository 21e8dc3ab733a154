package coloring

import (
	"strings"

	"github.com/matzehuels/rnadraw/pkg/errors"
	"github.com/matzehuels/rnadraw/pkg/structure"
)

// Inputs are the raw colouring inputs of one drawing. Every field is
// optional.
type Inputs struct {
	// Ranges is a range description, see [ParseRangeSpec].
	Ranges string `json:"color_str,omitempty"`
	// Scheme is a scheme keyword, see [ParseScheme].
	Scheme string `json:"scheme,omitempty"`
	// Palette names the categorical palette used by the scheme.
	Palette string `json:"color_palette,omitempty"`
	// Data is an optional numeric series.
	Data *Data `json:"data,omitempty"`
	// Default is the colour of residues nothing else colours.
	Default string `json:"default_color,omitempty"`
}

// sourceKind tags the closed set of colour sources.
type sourceKind int

const (
	sourceRange sourceKind = iota
	sourceData
	sourceScheme
	sourceDefault
)

// source is one colouring input, ready to be queried per residue.
type source struct {
	kind   sourceKind
	ranges RangeSpec
	colors []Color // data and scheme colours, per residue
	has    []bool
	color  Color // default colour
}

func (s *source) at(i int) (Color, bool) {
	switch s.kind {
	case sourceRange:
		return s.ranges.Lookup(i)
	case sourceData, sourceScheme:
		return s.colors[i], s.has[i]
	case sourceDefault:
		return s.color, true
	}
	return Color{}, false
}

// Resolve returns one colour per residue of pm. seq may be empty; when it
// is not, its length must equal the number of residues. Sources are tried
// in precedence order: ranges, data, scheme, default, [Fallback].
func Resolve(seq string, pm structure.PairMap, in Inputs) ([]Color, error) {
	n := pm.Len()
	seq = normalizeSequence(seq)
	if seq != "" && len(seq) != n {
		return nil, errors.New(errors.ErrCodeSequenceLengthMismatch,
			"sequence has %d residues, structure has %d", len(seq), n)
	}

	sources, err := buildSources(seq, pm, in)
	if err != nil {
		return nil, err
	}

	out := make([]Color, n)
	for i := range out {
		out[i] = Fallback
		for k := range sources {
			if c, ok := sources[k].at(i); ok {
				out[i] = c
				break
			}
		}
	}
	return out, nil
}

func buildSources(seq string, pm structure.PairMap, in Inputs) ([]source, error) {
	n := pm.Len()
	var sources []source

	if strings.TrimSpace(in.Ranges) != "" {
		spec, err := ParseRangeSpec(in.Ranges)
		if err != nil {
			return nil, err
		}
		if err := spec.Check(n); err != nil {
			return nil, err
		}
		sources = append(sources, source{kind: sourceRange, ranges: spec})
	}

	if in.Data != nil {
		if len(in.Data.Values) != n {
			return nil, errors.New(errors.ErrCodeDataLengthMismatch,
				"data has %d values, structure has %d residues", len(in.Data.Values), n)
		}
		colors, has, err := in.Data.apply(seq)
		if err != nil {
			return nil, err
		}
		sources = append(sources, source{kind: sourceData, colors: colors, has: has})
	}

	scheme, err := ParseScheme(in.Scheme)
	if err != nil {
		return nil, err
	}
	if scheme != SchemeNone {
		pal, err := CategoricalPalette(in.Palette)
		if err != nil {
			return nil, err
		}
		colors, has := scheme.apply(seq, pm, pal)
		sources = append(sources, source{kind: sourceScheme, colors: colors, has: has})
	}

	if strings.TrimSpace(in.Default) != "" {
		c, err := ParseColor(in.Default)
		if err != nil {
			return nil, err
		}
		sources = append(sources, source{kind: sourceDefault, color: c})
	}
	return sources, nil
}

// normalizeSequence upper-cases seq and reads T as U.
func normalizeSequence(seq string) string {
	return strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(seq)), "T", "U")
}
