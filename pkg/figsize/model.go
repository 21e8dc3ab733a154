package figsize

import (
	"math"
	"slices"
	"sync"
)

// Observation relates a bounding-box area to a hand-picked figure size.
type Observation struct {
	Name    string
	Area    float64
	FigSize float64
}

var calibration = [...]Observation{
	{"hairpin", 3781, 25},
	{"tRNA", 126207, 30},
	{"SARS-CoV-2 5' UTR", 1150472, 35},
	{"50S ribosome", 4286761, 40},
}

// Calibration returns a copy of the built-in calibration table.
func Calibration() []Observation { return slices.Clone(calibration[:]) }

// Model holds the fitted coefficients of scale(area) = A·(area − B)^C.
type Model struct {
	A, B, C float64
}

// Default is the model fitted to [Calibration], computed on first use and
// shared read-only afterwards.
var Default = sync.OnceValue(func() Model {
	m, err := Fit(Calibration())
	if err != nil {
		panic("figsize: calibration fit failed: " + err.Error())
	}
	return m
})

// Scale returns a·(area − b)^c. ok is false when area is outside the
// model's domain or the result is not a positive finite number.
func (m Model) Scale(area float64) (s float64, ok bool) {
	if !(area > m.B) {
		return 0, false
	}
	s = m.A * math.Pow(area-m.B, m.C)
	if math.IsNaN(s) || math.IsInf(s, 0) || s <= 0 {
		return 0, false
	}
	return s, true
}

// SizeFor returns the figure size in inches for a layout whose bounding box
// is width × height layout units. The result is always positive and
// finite.
func (m Model) SizeFor(width, height float64) (w, h float64) {
	width, height = finite(width), finite(height)
	if width > 0 && height > 0 {
		if s, ok := m.Scale(width * height); ok {
			w, h = width/s, height/s
			if w > 0 && h > 0 && !math.IsInf(w, 0) && !math.IsInf(h, 0) {
				return w, h
			}
		}
	}
	return math.Max(width, 1), math.Max(height, 1)
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// Clamp scales (w, h) uniformly so the larger side is at most hi, then
// bounds each side to [lo, hi].
func Clamp(w, h, lo, hi float64) (float64, float64) {
	if m := math.Max(w, h); m > hi {
		w, h = w*hi/m, h*hi/m
	}
	return math.Min(hi, math.Max(lo, w)), math.Min(hi, math.Max(lo, h))
}

// Pixels converts a size in inches to whole pixels at dpi.
func Pixels(w, h, dpi float64) (int, int) {
	return max(1, int(math.Round(w*dpi))), max(1, int(math.Round(h*dpi)))
}
