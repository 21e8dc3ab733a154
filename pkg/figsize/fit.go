package figsize

import (
	"fmt"
	"math"
)

const (
	maxIterations = 500
	tolerance     = 1e-12
)

// Fit fits scale(area) = a·(area − b)^c to obs by nonlinear least squares,
// using Levenberg-Marquardt from a log-linear starting point with b = 0.
// b is kept below the smallest observed area.
func Fit(obs []Observation) (Model, error) {
	if len(obs) < 3 {
		return Model{}, fmt.Errorf("need at least 3 observations, got %d", len(obs))
	}
	minArea := math.Inf(1)
	for _, o := range obs {
		if o.Area <= 0 || o.FigSize <= 0 {
			return Model{}, fmt.Errorf("observation %q: area and size must be positive", o.Name)
		}
		minArea = math.Min(minArea, o.Area)
	}

	p := initialGuess(obs)
	cost := sse(obs, p)
	lambda := 1e-3

	for iter := 0; iter < maxIterations; iter++ {
		jtj, jtr := normalEquations(obs, p)
		improved := false
		for try := 0; try < 50; try++ {
			var a [3][3]float64
			for i := range 3 {
				a[i] = jtj[i]
				a[i][i] += lambda * math.Max(jtj[i][i], 1e-12)
			}
			step, ok := solve3(a, jtr)
			if !ok {
				lambda *= 10
				continue
			}
			next := Model{A: p.A + step[0], B: p.B + step[1], C: p.C + step[2]}
			if next.A <= 0 || next.B >= minArea {
				lambda *= 10
				continue
			}
			if c := sse(obs, next); c < cost {
				done := cost-c <= tolerance*(1+cost)
				p, cost = next, c
				lambda = math.Max(lambda/10, 1e-12)
				improved = true
				if done {
					return p, nil
				}
				break
			}
			lambda *= 10
		}
		if !improved {
			break
		}
	}
	if math.IsNaN(cost) || math.IsInf(cost, 0) {
		return Model{}, fmt.Errorf("fit diverged")
	}
	return p, nil
}

// initialGuess regresses log(size) on log(area), which fits the model
// exactly when b = 0.
func initialGuess(obs []Observation) Model {
	var sx, sy, sxx, sxy float64
	n := float64(len(obs))
	for _, o := range obs {
		x, y := math.Log(o.Area), math.Log(o.FigSize)
		sx += x
		sy += y
		sxx += x * x
		sxy += x * y
	}
	c := (n*sxy - sx*sy) / (n*sxx - sx*sx)
	return Model{A: math.Exp((sy - c*sx) / n), B: 0, C: c}
}

func sse(obs []Observation, m Model) float64 {
	s := 0.0
	for _, o := range obs {
		r := o.FigSize - m.A*math.Pow(o.Area-m.B, m.C)
		s += r * r
	}
	return s
}

// normalEquations returns JᵀJ and Jᵀr for the residuals r = y − f.
func normalEquations(obs []Observation, m Model) (jtj [3][3]float64, jtr [3]float64) {
	for _, o := range obs {
		d := o.Area - m.B
		pow := math.Pow(d, m.C)
		f := m.A * pow
		j := [3]float64{pow, -m.A * m.C * pow / d, f * math.Log(d)}
		r := o.FigSize - f
		for i := range 3 {
			jtr[i] += j[i] * r
			for k := range 3 {
				jtj[i][k] += j[i] * j[k]
			}
		}
	}
	return jtj, jtr
}

// solve3 solves a·x = b by Gaussian elimination with partial pivoting.
func solve3(a [3][3]float64, b [3]float64) ([3]float64, bool) {
	for col := range 3 {
		piv := col
		for r := col + 1; r < 3; r++ {
			if math.Abs(a[r][col]) > math.Abs(a[piv][col]) {
				piv = r
			}
		}
		if math.Abs(a[piv][col]) < 1e-300 {
			return [3]float64{}, false
		}
		a[col], a[piv] = a[piv], a[col]
		b[col], b[piv] = b[piv], b[col]
		for r := col + 1; r < 3; r++ {
			f := a[r][col] / a[col][col]
			for k := col; k < 3; k++ {
				a[r][k] -= f * a[col][k]
			}
			b[r] -= f * b[col]
		}
	}
	var x [3]float64
	for r := 2; r >= 0; r-- {
		s := b[r]
		for k := r + 1; k < 3; k++ {
			s -= a[r][k] * x[k]
		}
		x[r] = s / a[r][r]
	}
	return x, true
}
