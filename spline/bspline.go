// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package spline implements natural B-splines for interpolating intensity curves
package spline

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// Spline holds a fitted natural B-spline
//
//    S(x) = Σ_j C[j]・B_{j,deg}(x; T)
//
// The knot vector T follows the "natural" rule: the interior knots are the
// data abscissae and the boundary knots are repeated (deg+1) times. The
// boundary coefficients are determined by natural end conditions, i.e. the
// derivatives of orders 2..(deg+1)/2 vanish at both ends.
type Spline struct {
	Deg  int         // degree of basis functions. 3 (cubic) or 5 (quintic)
	T    []float64   // knot vector
	C    []float64   // basis coefficients; len(C) == len(T)-Deg-1
	span int         // cached knot interval from the last evaluation
	ws   [][]float64 // workspace for basis values and first derivatives
}

// Nbasis returns the number of basis functions == number of coefficients
func (o *Spline) Nbasis() int {
	return len(o.T) - o.Deg - 1
}

// Fit computes the coefficients of the natural B-spline interpolating y(x).
// x must be strictly increasing with len(x) ≥ 2・deg+1. The banded collocation
// system, augmented with the natural end conditions, is assembled in sparse
// (triplet) form and handed to the linear solver named by lsname; e.g.
// "umfpack". Returns an error if the system is singular.
func Fit(x, y []float64, deg int, lsname string) (o *Spline, err error) {

	// check
	n := len(x)
	if deg != 3 && deg != 5 {
		return nil, chk.Err("spline degree must be 3 or 5. deg=%d is invalid", deg)
	}
	if n < 2*deg+1 {
		return nil, chk.Err("need at least %d samples to fit a degree %d spline. n=%d is insufficient", 2*deg+1, deg, n)
	}
	if len(y) != n {
		return nil, chk.Err("len(y)=%d must equal len(x)=%d", len(y), n)
	}
	for i := 1; i < n; i++ {
		if x[i] <= x[i-1] {
			return nil, chk.Err("x must be strictly increasing. x[%d]=%g ≥ x[%d]=%g", i-1, x[i-1], i, x[i])
		}
	}

	// natural knot vector: (deg+1)-fold boundary repetitions around interior data
	o = &Spline{Deg: deg}
	o.T = make([]float64, n+2*deg)
	for i := 0; i <= deg; i++ {
		o.T[i] = x[0]
		o.T[n+2*deg-1-i] = x[n-1]
	}
	for i := 1; i < n-1; i++ {
		o.T[deg+i] = x[i]
	}
	nt := o.Nbasis() // == n + deg - 1

	// number of natural end conditions per boundary and highest derivative order
	ncond := (deg - 1) / 2
	nders := 1 + ncond

	// assemble banded system in triplet form. row layout:
	//   rows 0..ncond-1        natural conditions at x[0]
	//   rows ncond..ncond+n-1  collocation at the data points
	//   rows ncond+n..nt-1     natural conditions at x[n-1]
	var tt la.Triplet
	tt.Init(nt, nt, (n+2*ncond)*(deg+1))
	rhs := make([]float64, nt)
	ders := alloc2(nders+1, deg+1)

	// left end conditions
	o.span = deg
	dersBasisFuns(o.T, deg, deg, nders, x[0], ders)
	for k := 0; k < ncond; k++ {
		for j := 0; j <= deg; j++ {
			tt.Put(k, j, ders[2+k][j])
		}
	}

	// collocation rows
	for i := 0; i < n; i++ {
		s := o.locate(x[i])
		basisFuns(o.T, s, deg, x[i], ders[0])
		for j := 0; j <= deg; j++ {
			tt.Put(ncond+i, s-deg+j, ders[0][j])
		}
		rhs[ncond+i] = y[i]
	}

	// right end conditions
	s := nt - 1
	dersBasisFuns(o.T, s, deg, nders, x[n-1], ders)
	for k := 0; k < ncond; k++ {
		for j := 0; j <= deg; j++ {
			tt.Put(ncond+n+k, s-deg+j, ders[2+k][j])
		}
	}

	// solve
	o.C = make([]float64, nt)
	lis := la.GetSolver(lsname)
	defer lis.Free()
	err = lis.InitR(&tt, false, false, false)
	if err != nil {
		return nil, chk.Err("cannot initialise linear solver for spline fit: %v", err)
	}
	err = lis.Fact()
	if err != nil {
		return nil, chk.Err("singular spline collocation system: %v", err)
	}
	err = lis.SolveR(o.C, rhs, false)
	if err != nil {
		return nil, chk.Err("singular spline collocation system: %v", err)
	}
	o.span = deg
	o.ws = alloc2(2, deg+1)
	return
}

// Eval computes the spline value and its first derivative at xt.
// xt must lie within [T[Deg], T[Nbasis()]]; the right endpoint belongs to
// the last interval. Successive calls with non-decreasing xt reuse the
// cached interval from the previous call.
func (o *Spline) Eval(xt float64) (s, ds float64) {
	span := o.locate(xt)
	dersBasisFuns(o.T, span, o.Deg, 1, xt, o.ws)
	for j := 0; j <= o.Deg; j++ {
		s += o.C[span-o.Deg+j] * o.ws[0][j]
		ds += o.C[span-o.Deg+j] * o.ws[1][j]
	}
	return
}

// EvalGrid evaluates the spline and its first derivative on the
// non-decreasing abscissae xts, writing into vals and ders (both of
// len(xts)). All targets must be contained in the fitted range.
func (o *Spline) EvalGrid(xts, vals, ders []float64) (err error) {
	nt := o.Nbasis()
	for i, xt := range xts {
		if xt < o.T[o.Deg] || xt > o.T[nt] {
			return chk.Err("evaluation target %g is outside the fitted range [%g,%g]", xt, o.T[o.Deg], o.T[nt])
		}
		if i > 0 && xt < xts[i-1] {
			return chk.Err("evaluation targets must be non-decreasing. xts[%d]=%g < xts[%d]=%g", i, xt, i-1, xts[i-1])
		}
		vals[i], ders[i] = o.Eval(xt)
	}
	return
}

// locate returns the knot interval index ℓ such that T[ℓ] ≤ x < T[ℓ+1],
// with the right endpoint closed into the last interval. The search is a
// linear scan from the cached position, upwards or, if x lies below the
// cached interval, downwards.
func (o *Spline) locate(x float64) int {
	nt := o.Nbasis()
	if x >= o.T[nt] {
		o.span = nt - 1
		return o.span
	}
	if o.span < o.Deg {
		o.span = o.Deg
	}
	if o.span > nt-1 {
		o.span = nt - 1
	}
	for o.span > o.Deg && x < o.T[o.span] {
		o.span--
	}
	for o.span < nt-1 && x >= o.T[o.span+1] {
		o.span++
	}
	return o.span
}

// basisFuns computes the deg+1 nonvanishing basis functions at x (span ℓ),
// after [Piegl & Tiller, "The NURBS Book", algorithm A2.2]
func basisFuns(t []float64, span, deg int, x float64, vals []float64) {
	left := make([]float64, deg+1)
	right := make([]float64, deg+1)
	vals[0] = 1.0
	for j := 1; j <= deg; j++ {
		left[j] = x - t[span+1-j]
		right[j] = t[span+j] - x
		saved := 0.0
		for r := 0; r < j; r++ {
			tmp := vals[r] / (right[r+1] + left[j-r])
			vals[r] = saved + right[r+1]*tmp
			saved = left[j-r] * tmp
		}
		vals[j] = saved
	}
}

// dersBasisFuns computes the nonvanishing basis functions and their
// derivatives up to order nders at x (span ℓ), after [Piegl & Tiller,
// algorithm A2.3]. ders[k][j] holds the k-th derivative of basis j.
func dersBasisFuns(t []float64, span, deg, nders int, x float64, ders [][]float64) {
	ndu := alloc2(deg+1, deg+1)
	a := alloc2(2, deg+1)
	left := make([]float64, deg+1)
	right := make([]float64, deg+1)
	ndu[0][0] = 1.0
	for j := 1; j <= deg; j++ {
		left[j] = x - t[span+1-j]
		right[j] = t[span+j] - x
		saved := 0.0
		for r := 0; r < j; r++ {
			ndu[j][r] = right[r+1] + left[j-r]
			tmp := ndu[r][j-1] / ndu[j][r]
			ndu[r][j] = saved + right[r+1]*tmp
			saved = left[j-r] * tmp
		}
		ndu[j][j] = saved
	}
	for j := 0; j <= deg; j++ {
		ders[0][j] = ndu[j][deg]
	}
	for r := 0; r <= deg; r++ {
		s1, s2 := 0, 1
		a[0][0] = 1.0
		for k := 1; k <= nders; k++ {
			d := 0.0
			rk, pk := r-k, deg-k
			if r >= k {
				a[s2][0] = a[s1][0] / ndu[pk+1][rk]
				d = a[s2][0] * ndu[rk][pk]
			}
			j1 := 1
			if rk < -1 {
				j1 = -rk
			}
			j2 := k - 1
			if r-1 > pk {
				j2 = deg - r
			}
			for j := j1; j <= j2; j++ {
				a[s2][j] = (a[s1][j] - a[s1][j-1]) / ndu[pk+1][rk+j]
				d += a[s2][j] * ndu[rk+j][pk]
			}
			if r <= pk {
				a[s2][k] = -a[s1][k-1] / ndu[pk+1][r]
				d += a[s2][k] * ndu[r][pk]
			}
			ders[k][r] = d
			s1, s2 = s2, s1
		}
	}
	f := float64(deg)
	for k := 1; k <= nders; k++ {
		for j := 0; j <= deg; j++ {
			ders[k][j] *= f
		}
		f *= float64(deg - k)
	}
}

// alloc2 allocates a rectangular matrix
func alloc2(m, n int) (mat [][]float64) {
	mat = make([][]float64, m)
	for i := 0; i < m; i++ {
		mat[i] = make([]float64, n)
	}
	return
}
