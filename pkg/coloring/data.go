package coloring

import (
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/rnadraw/pkg/errors"
)

// Data is a per-residue numeric series mapped through a continuous palette.
type Data struct {
	// Values holds one value per residue; NaN marks a missing value.
	Values []float64 `json:"values"`
	// Palette names the continuous palette (default viridis).
	Palette string `json:"palette,omitempty"`
	// Min and Max bound the palette. Nil means the data minimum/maximum.
	Min *float64 `json:"vmin,omitempty"`
	Max *float64 `json:"vmax,omitempty"`
	// Ignore lists nucleotide letters excluded from data colouring, e.g. "GU".
	Ignore string `json:"ignore,omitempty"`
}

// ParseData parses a data series. Lines are split on commas or semicolons
// when present, otherwise on whitespace. "nan" and empty fields between
// separators are missing values; infinities are rejected.
func ParseData(s string) ([]float64, error) {
	var out []float64
	for lineNo, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var fields []string
		if strings.ContainsAny(line, ",;") {
			fields = strings.Split(strings.ReplaceAll(line, ";", ","), ",")
			if strings.TrimSpace(fields[len(fields)-1]) == "" {
				fields = fields[:len(fields)-1]
			}
		} else {
			fields = strings.Fields(line)
		}
		for _, f := range fields {
			f = strings.TrimSpace(f)
			if f == "" {
				out = append(out, math.NaN())
				continue
			}
			v, err := strconv.ParseFloat(f, 64)
			if err != nil || math.IsInf(v, 0) {
				return nil, errors.New(errors.ErrCodeDataSyntax, "line %d: invalid data value %q", lineNo+1, f)
			}
			out = append(out, v)
		}
	}
	return out, nil
}

// missing reports whether v carries no value. Infinities only reach here
// through Data built in code, and are treated like NaN.
func missing(v float64) bool { return math.IsNaN(v) || math.IsInf(v, 0) }

// bounds returns the effective [vmin, vmax] range. A bound left unset is the
// data extreme, widened to include the bound that was set so that a single
// vmin above the data maximum (or vmax below the minimum) still yields a
// valid range.
func (d *Data) bounds() (lo, hi float64, err error) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range d.Values {
		if missing(v) {
			continue
		}
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}
	switch {
	case d.Min != nil && d.Max != nil:
		lo, hi = *d.Min, *d.Max
		if lo > hi {
			return 0, 0, errors.New(errors.ErrCodeInvalidInput, "data vmin %v is greater than vmax %v", lo, hi)
		}
	case d.Min != nil:
		lo = *d.Min
		hi = math.Max(hi, lo)
	case d.Max != nil:
		hi = *d.Max
		lo = math.Min(lo, hi)
	}
	return lo, hi, nil
}

// apply maps every value through the palette after clamping it to
// [vmin, vmax]. ok[i] is false for missing values and ignored residues.
func (d *Data) apply(seq string) (colors []Color, ok []bool, err error) {
	pal, err := ContinuousPalette(d.Palette)
	if err != nil {
		return nil, nil, err
	}
	lo, hi, err := d.bounds()
	if err != nil {
		return nil, nil, err
	}
	ignore := normalizeSequence(d.Ignore)

	colors, ok = make([]Color, len(d.Values)), make([]bool, len(d.Values))
	for i, v := range d.Values {
		if missing(v) {
			continue
		}
		if i < len(seq) && ignore != "" && strings.IndexByte(ignore, seq[i]) >= 0 {
			continue
		}
		v = math.Max(lo, math.Min(hi, v))
		t := 0.0
		if hi > lo {
			t = (v - lo) / (hi - lo)
		}
		colors[i], ok[i] = pal.At(t), true
	}
	return colors, ok, nil
}
