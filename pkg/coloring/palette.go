package coloring

import (
	"maps"
	"math"
	"slices"
	"strings"

	"github.com/matzehuels/rnadraw/pkg/errors"
)

// Default palette names.
const (
	DefaultCategorical = "deep"
	DefaultContinuous  = "viridis"
)

// Categorical is an ordered list of distinct colours. Index k wraps around.
type Categorical []Color

// At returns the k-th colour, cycling when k exceeds the palette.
func (p Categorical) At(k int) Color { return p[k%len(p)] }

// Continuous maps [0, 1] to a colour by interpolating between stops.
type Continuous struct {
	Name  string
	stops []Color
}

// At returns the colour at t, clamped to [0, 1].
func (p Continuous) At(t float64) Color {
	if math.IsNaN(t) || t <= 0 {
		return p.stops[0]
	}
	if t >= 1 {
		return p.stops[len(p.stops)-1]
	}
	x := t * float64(len(p.stops)-1)
	k := int(x)
	return blend(p.stops[k], p.stops[k+1], x-float64(k))
}

// Reversed returns the palette running from its last stop to its first.
func (p Continuous) Reversed() Continuous {
	stops := slices.Clone(p.stops)
	slices.Reverse(stops)
	return Continuous{Name: p.Name + "_r", stops: stops}
}

// Seaborn's ten-colour qualitative palettes.
var categorical = map[string][]string{
	"deep":       {"#4c72b0", "#dd8452", "#55a868", "#c44e52", "#8172b3", "#937860", "#da8bc3", "#8c8c8c", "#ccb974", "#64b5cd"},
	"muted":      {"#4878d0", "#ee854a", "#6acc64", "#d65f5f", "#956cb4", "#8c613c", "#dc7ec0", "#797979", "#d5bb67", "#82c6e2"},
	"pastel":     {"#a1c9f4", "#ffb482", "#8de5a1", "#ff9f9b", "#d0bbff", "#debb9b", "#fab0e4", "#cfcfcf", "#fffea3", "#b9f2f0"},
	"bright":     {"#023eff", "#ff7c00", "#1ac938", "#e8000b", "#8b2be2", "#9f4800", "#f14cc1", "#a3a3a3", "#ffc400", "#00d7ff"},
	"dark":       {"#001c7f", "#b1400d", "#12711c", "#8c0800", "#591e71", "#592f0d", "#a23582", "#3c3c3c", "#b8850a", "#006374"},
	"colorblind": {"#0173b2", "#de8f05", "#029e73", "#d55e00", "#cc78bc", "#ca9161", "#fbafe4", "#949494", "#ece133", "#56b4e9"},
}

// Matplotlib colormaps, sampled at evenly spaced stops.
var continuous = map[string][]string{
	"viridis":  {"#440154", "#482878", "#3e4989", "#31688e", "#26828e", "#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725"},
	"magma":    {"#000004", "#180f3d", "#440f76", "#721f81", "#9e2f7f", "#cd4071", "#f1605d", "#fd9668", "#feca8d", "#fcfdbf"},
	"plasma":   {"#0d0887", "#46039f", "#7201a8", "#9c179e", "#bd3786", "#d8576b", "#ed7953", "#fb9f3a", "#fdca26", "#f0f921"},
	"inferno":  {"#000004", "#1b0c41", "#4a0c6b", "#781c6d", "#a52c60", "#cf4446", "#ed6925", "#fb9b06", "#f7d13d", "#fcffa4"},
	"coolwarm": {"#3b4cc0", "#6788ee", "#9abbff", "#c9d7f0", "#edd1c2", "#f7a889", "#e26952", "#b40426"},
	"bwr":      {"#0000ff", "#ffffff", "#ff0000"},
	"Reds":     {"#fff5f0", "#fcbba1", "#fb6a4a", "#cb181d", "#67000d"},
	"Blues":    {"#f7fbff", "#c6dbef", "#6baed6", "#2171b5", "#08306b"},
	"Greens":   {"#f7fcf5", "#c7e9c0", "#74c476", "#238b45", "#00441b"},
	"Greys":    {"#ffffff", "#d9d9d9", "#969696", "#525252", "#000000"},
	"YlOrRd":   {"#ffffcc", "#fed976", "#fd8d3c", "#e31a1c", "#800026"},
}

func lookup(table map[string][]string, name string) (string, []string, bool) {
	if stops, ok := table[name]; ok {
		return name, stops, true
	}
	for k, stops := range table {
		if strings.EqualFold(k, name) {
			return k, stops, true
		}
	}
	return "", nil, false
}

func parseAll(hexes []string) []Color {
	out := make([]Color, len(hexes))
	for i, h := range hexes {
		out[i] = MustParseColor(h)
	}
	return out
}

// CategoricalPalette returns the named qualitative palette. An empty name
// selects [DefaultCategorical].
func CategoricalPalette(name string) (Categorical, error) {
	if name == "" {
		name = DefaultCategorical
	}
	_, hexes, ok := lookup(categorical, strings.TrimSpace(name))
	if !ok {
		return nil, errors.New(errors.ErrCodeUnknownPalette, "unknown colour palette %q (available: %s)",
			name, strings.Join(CategoricalNames(), ", "))
	}
	return parseAll(hexes), nil
}

// ContinuousPalette returns the named continuous palette. A "_r" suffix
// reverses it; an empty name selects [DefaultContinuous].
func ContinuousPalette(name string) (Continuous, error) {
	if name == "" {
		name = DefaultContinuous
	}
	name = strings.TrimSpace(name)
	base, reversed := name, false
	if len(name) > 2 && strings.EqualFold(name[len(name)-2:], "_r") {
		base, reversed = name[:len(name)-2], true
	}
	key, hexes, ok := lookup(continuous, base)
	if !ok {
		return Continuous{}, errors.New(errors.ErrCodeUnknownPalette, "unknown data palette %q (available: %s)",
			name, strings.Join(ContinuousNames(), ", "))
	}
	p := Continuous{Name: key, stops: parseAll(hexes)}
	if reversed {
		p = p.Reversed()
	}
	return p, nil
}

// CategoricalNames lists the qualitative palettes in sorted order.
func CategoricalNames() []string { return slices.Sorted(maps.Keys(categorical)) }

// ContinuousNames lists the continuous palettes in sorted order.
func ContinuousNames() []string { return slices.Sorted(maps.Keys(continuous)) }
