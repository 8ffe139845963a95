// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package v0r implements the inner-potential shift optimizer
package v0r

import (
	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/mat"
)

// FitParabola solves the weighted least-squares problem for the parabola
//
//    y = a・x² + b・x + c
//
// given samples (x[k], y[k]) with weights w[k] ≥ 0. The 3×3 normal system
// is symmetric positive definite whenever three or more distinct abscissae
// carry positive weight; it is factorized symmetrically (Cholesky). A
// failed factorization means the system is singular.
func FitParabola(x, y, w []float64) (a, b, c float64, err error) {
	var s4, s3, s2, s1, s0 float64
	var t2, t1, t0 float64
	for k := 0; k < len(x); k++ {
		if w[k] == 0 {
			continue
		}
		xk, wk := x[k], w[k]
		xx := xk * xk
		s4 += wk * xx * xx
		s3 += wk * xx * xk
		s2 += wk * xx
		s1 += wk * xk
		s0 += wk
		t2 += wk * xx * y[k]
		t1 += wk * xk * y[k]
		t0 += wk * y[k]
	}
	A := mat.NewSymDense(3, []float64{
		s4, s3, s2,
		s3, s2, s1,
		s2, s1, s0,
	})
	var chol mat.Cholesky
	if ok := chol.Factorize(A); !ok {
		return 0, 0, 0, chk.Err("singular parabola least-squares system")
	}
	var sol mat.VecDense
	err = chol.SolveVecTo(&sol, mat.NewVecDense(3, []float64{t2, t1, t0}))
	if err != nil {
		return 0, 0, 0, chk.Err("cannot solve parabola least-squares system: %v", err)
	}
	return sol.AtVec(0), sol.AtVec(1), sol.AtVec(2), nil
}

// Rsquared computes the weighted coefficient of determination
//
//    R² = 1 - SS_res/SS_tot
//
// of the parabola (a,b,c) with respect to the weighted samples. A zero
// total sum of squares (constant data) yields R² = 1.
func Rsquared(x, y, w []float64, a, b, c float64) float64 {
	var sw, ybar float64
	for k := 0; k < len(x); k++ {
		sw += w[k]
		ybar += w[k] * y[k]
	}
	if sw == 0 {
		return 0
	}
	ybar /= sw
	var ssres, sstot float64
	for k := 0; k < len(x); k++ {
		f := a*x[k]*x[k] + b*x[k] + c
		ssres += w[k] * (y[k] - f) * (y[k] - f)
		sstot += w[k] * (y[k] - ybar) * (y[k] - ybar)
	}
	if sstot == 0 {
		return 1
	}
	return 1 - ssres/sstot
}
