// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.8.16
//

package goclk

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/interp"
)

// Interpolation basis (0: natural cubic spline, 1: Akima spline, 2: piecewise linear, 3: polynomial)
type InterpMethod int

const (
	CubicSpline = iota
	AkimaSpline
	PiecewiseLinear
	Polynomial
)

func (p *InterpMethod) Set(s string) error {
	switch strings.ToLower(s) {
	case "spline", "cubicspline":
		*p = CubicSpline
	case "akima", "akimaspline":
		*p = AkimaSpline
	case "linear", "piecewiselinear":
		*p = PiecewiseLinear
	case "poly", "polynomial":
		*p = Polynomial
	default:
		return fmt.Errorf("unknown interpolation method %q", s)
	}
	return nil
}

func (p *InterpMethod) String() string {
	switch *p {
	case CubicSpline:
		return "CubicSpline"
	case AkimaSpline:
		return "AkimaSpline"
	case PiecewiseLinear:
		return "PiecewiseLinear"
	case Polynomial:
		return "Polynomial"
	default:
		return "UNKNOWN!"
	}
}

// A polynomial through more samples than this is too ill-conditioned to keep
// the interpolation exact at its samples, so the Polynomial window is capped.
const maxPolyRadius = 4

// Function fit to a window of clock samples of one satellite.
// It reproduces the windowed sample values at the sample times; between
// samples it follows the chosen basis. Outside the window span it
// extrapolates and makes no accuracy promise.
type Interpolant struct {
	Method InterpMethod
	xs     []float64 // Windowed epoch times [ms since the GPS epoch]
	pred   interp.Predictor
}

// Evaluate the clock bias [s] at time t [ms since the GPS epoch]
func (p *Interpolant) At(t float64) float64 {
	return p.pred.Predict(t)
}

// First and last epoch time of the window
func (p *Interpolant) TimeSpan() (float64, float64) {
	return p.xs[0], p.xs[len(p.xs)-1]
}

// Predictor for a one-sample window
type constPredictor float64

func (c constPredictor) Predict(x float64) float64 {
	return float64(c)
}

// Build an interpolant for one satellite from a window of up to ipos samples
// on each side of idx. The window is clamped at the series boundaries, so
// samples near the first or last epoch get an asymmetric window and a lower
// accuracy fit. The record is not modified.
func ExtractClk(c *Clk, idx int, ipos int, method InterpMethod) (*Interpolant, error) {
	n := c.Len()
	if idx < 0 || idx >= n {
		return nil, fmt.Errorf("index %d out of range [0,%d) for %s", idx, n, c.Sat)
	}
	w := ipos
	if method == Polynomial && w > maxPolyRadius {
		w = maxPolyRadius
	}
	lo := idx - w
	if lo < 0 {
		lo = 0
	}
	hi := idx + w + 1
	if hi > n {
		hi = n
	}
	xs := make([]float64, hi-lo)
	ys := make([]float64, hi-lo)
	copy(xs, c.Tym[lo:hi])
	copy(ys, c.ClkBias[lo:hi])

	f := &Interpolant{Method: method, xs: xs}
	if len(xs) < 2 {
		f.pred = constPredictor(ys[0])
		return f, nil
	}
	switch method {
	case CubicSpline:
		var nc interp.NaturalCubic
		if err := nc.Fit(xs, ys); err != nil {
			return nil, err
		}
		f.pred = &nc
	case AkimaSpline:
		var as interp.AkimaSpline
		if err := as.Fit(xs, ys); err != nil {
			return nil, err
		}
		f.pred = &as
	case PiecewiseLinear:
		var pl interp.PiecewiseLinear
		if err := pl.Fit(xs, ys); err != nil {
			return nil, err
		}
		f.pred = &pl
	case Polynomial:
		pp, err := newPolyPredictor(xs, ys)
		if err != nil {
			return nil, err
		}
		f.pred = pp
	default:
		return nil, fmt.Errorf("unknown interpolation method %d", method)
	}
	return f, nil
}

// Epoch times are in milliseconds while drift is reported in seconds per second
const msecPerSec = 1000.0

// Evaluate clock bias [s] and clock drift [s/s] at cxtime [ms since the GPS
// epoch]. Drift is the centered finite difference with step hstep [ms].
func ClkSnapshot(f *Interpolant, cxtime float64, hstep float64) (bias float64, drift float64) {
	bias = f.At(cxtime)
	drift = (f.At(cxtime+hstep) - f.At(cxtime-hstep)) / (2 * hstep) * msecPerSec
	return
}
