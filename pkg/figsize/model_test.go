package figsize

import (
	"math"
	"testing"
)

func TestFitCalibration(t *testing.T) {
	obs := Calibration()
	m, err := Fit(obs)
	if err != nil {
		t.Fatal(err)
	}
	if m.B >= obs[0].Area {
		t.Errorf("b = %v not below the smallest area", m.B)
	}
	for _, o := range obs {
		s, ok := m.Scale(o.Area)
		if !ok {
			t.Fatalf("%s: area %v outside model domain", o.Name, o.Area)
		}
		if r := math.Abs(s - o.FigSize); r > 1 {
			t.Errorf("%s: fitted %v, observed %v", o.Name, s, o.FigSize)
		}
	}
	if got, start := sse(obs, m), sse(obs, initialGuess(obs)); got > start {
		t.Errorf("fit cost %v worse than starting cost %v", got, start)
	}
}

func TestFitErrors(t *testing.T) {
	if _, err := Fit(Calibration()[:2]); err == nil {
		t.Error("expected error for two observations")
	}
	bad := Calibration()
	bad[1].Area = -1
	if _, err := Fit(bad); err == nil {
		t.Error("expected error for negative area")
	}
}

func TestCalibrationIsCopied(t *testing.T) {
	c := Calibration()
	c[0].Area = 1
	if Calibration()[0].Area == 1 {
		t.Error("Calibration exposes the shared table")
	}
}

func TestDefaultIsShared(t *testing.T) {
	if Default() != Default() {
		t.Error("Default returned different models")
	}
}

func TestSizeFor(t *testing.T) {
	m := Default()
	tests := []struct {
		name          string
		width, height float64
	}{
		{"zero", 0, 0},
		{"linear", 200, 0},
		{"hairpin", 60, 63},
		{"large", 2000, 2100},
		{"nan", math.NaN(), 10},
		{"inf", math.Inf(1), 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := m.SizeFor(tt.width, tt.height)
			for _, v := range []float64{w, h} {
				if !(v > 0) || math.IsInf(v, 0) {
					t.Errorf("SizeFor(%v, %v) = (%v, %v), want positive finite", tt.width, tt.height, w, h)
				}
			}
		})
	}
}

func TestSizeForDegenerateUsesExtents(t *testing.T) {
	w, h := Default().SizeFor(200, 0)
	if w != 200 || h != 1 {
		t.Errorf("SizeFor(200, 0) = (%v, %v), want (200, 1)", w, h)
	}
}

func TestSizeForKeepsAspect(t *testing.T) {
	w, h := Default().SizeFor(300, 150)
	if math.Abs(w/h-2) > 1e-9 {
		t.Errorf("aspect = %v, want 2", w/h)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		w, h, lo, hi float64
		ww, wh       float64
	}{
		{10, 5, 1, 40, 10, 5},
		{80, 40, 1, 40, 40, 20},
		{0.1, 0.2, 1, 40, 1, 1},
		{400, 1, 2, 40, 40, 2},
	}
	for _, tt := range tests {
		w, h := Clamp(tt.w, tt.h, tt.lo, tt.hi)
		if math.Abs(w-tt.ww) > 1e-9 || math.Abs(h-tt.wh) > 1e-9 {
			t.Errorf("Clamp(%v, %v) = (%v, %v), want (%v, %v)", tt.w, tt.h, w, h, tt.ww, tt.wh)
		}
	}
}

func TestPixels(t *testing.T) {
	w, h := Pixels(4, 2.5, 100)
	if w != 400 || h != 250 {
		t.Errorf("Pixels = (%d, %d)", w, h)
	}
	if w, h := Pixels(0, 0, 100); w != 1 || h != 1 {
		t.Errorf("Pixels(0, 0) = (%d, %d), want (1, 1)", w, h)
	}
}
