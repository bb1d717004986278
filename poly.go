// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.8.16
//

package goclk

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Polynomial through all window samples, evaluated on a shifted and scaled
// abscissa to keep the Vandermonde system well conditioned
type polyPredictor struct {
	coef  []float64 // Coefficients, constant term first
	x0    float64   // Center of the window span
	scale float64   // Half width of the window span
}

func (p *polyPredictor) Predict(x float64) float64 {
	u := (x - p.x0) / p.scale
	v := 0.0
	for i := len(p.coef) - 1; i >= 0; i-- {
		v = v*u + p.coef[i]
	}
	return v
}

// Solve the Vandermonde system V c = ys for the polynomial coefficients
// - xs must be strictly increasing (guaranteed by ReadClk)
func newPolyPredictor(xs, ys []float64) (*polyPredictor, error) {

	n := len(xs)
	if n < 2 {
		return nil, fmt.Errorf("not enough samples for a polynomial fit (%d)", n)
	}
	x0 := (xs[0] + xs[n-1]) / 2
	scale := (xs[n-1] - xs[0]) / 2

	// V (rows are powers of the scaled abscissa)
	V := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		u := (xs[i] - x0) / scale
		v := 1.0
		for j := 0; j < n; j++ {
			V.Set(i, j, v)
			v *= u
		}
	}
	b := mat.NewVecDense(n, ys)

	// Solve for the coefficients (c = V^-1 b)
	var c mat.VecDense
	if err := c.SolveVec(V, b); err != nil {
		return nil, err
	}

	if DBG_ >= 3 {
		PrintA("--- Vandermonde system ---\n")
		PrintMat(V)
		PrintMat(&c)
	}

	coef := make([]float64, n)
	for i := 0; i < n; i++ {
		coef[i] = c.AtVec(i)
	}
	return &polyPredictor{
		coef:  coef,
		x0:    x0,
		scale: scale,
	}, nil
}
