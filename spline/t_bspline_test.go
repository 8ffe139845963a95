// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spline

import (
	"testing"

	"github.com/AJPfleger/viperleed/ana"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

func Test_spl01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("spl01. cubic interpolation of a Gaussian bump")

	bump := ana.Bump{A: 3.0, E0: 75.0, Sig: 10.0}
	x := utl.LinSpace(50, 100, 101)
	y := make([]float64, 101)
	bump.Sample(x, y, nil)

	sp, err := Fit(x, y, 3, "umfpack")
	if err != nil {
		tst.Errorf("Fit failed: %v\n", err)
		return
	}
	chk.IntAssert(sp.Nbasis(), 103)
	chk.IntAssert(len(sp.C), 103)

	// interpolation property: S(x[i]) = y[i]
	for i, xi := range x {
		s, _ := sp.Eval(xi)
		chk.Scalar(tst, io.Sf("S(%g)", xi), 1e-10, s, y[i])
	}

	// derivative against the exact curve, away from the natural ends
	for _, xi := range utl.LinSpace(55, 95, 17) {
		_, ds := sp.Eval(xi)
		chk.Scalar(tst, io.Sf("S'(%g)", xi), 1e-3, ds, bump.DIdE(xi))
	}
}

func Test_spl02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("spl02. spline derivative consistency")

	peaks := ana.Peaks{
		A:  []float64{2.0, 1.5, 2.5},
		E0: []float64{60.0, 75.0, 92.0},
		W:  []float64{4.0, 6.0, 5.0},
	}
	x := utl.LinSpace(50, 100, 101)
	y := make([]float64, 101)
	peaks.Sample(x, y, nil)

	sp, err := Fit(x, y, 3, "umfpack")
	if err != nil {
		tst.Errorf("Fit failed: %v\n", err)
		return
	}

	// the evaluated derivative must match the numerical derivative of the
	// evaluated spline itself
	for _, xi := range utl.LinSpace(51, 99, 13) {
		_, ds := sp.Eval(xi)
		chk.DerivScaSca(tst, io.Sf("S'(%g)", xi), 1e-6, ds, xi, 1e-3, chk.Verbose, func(xx float64) (float64, error) {
			s, _ := sp.Eval(xx)
			return s, nil
		})
	}
}

func Test_spl03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("spl03. grid evaluation and precondition checks")

	bump := ana.Bump{A: 1.0, E0: 20.0, Sig: 5.0}
	x := utl.LinSpace(10, 30, 21)
	y := make([]float64, 21)
	bump.Sample(x, y, nil)

	sp, err := Fit(x, y, 3, "umfpack")
	if err != nil {
		tst.Errorf("Fit failed: %v\n", err)
		return
	}

	// dense grid inside the fitted range; right endpoint included
	xt := utl.LinSpace(10, 30, 81)
	vals := make([]float64, 81)
	ders := make([]float64, 81)
	if err = sp.EvalGrid(xt, vals, ders); err != nil {
		tst.Errorf("EvalGrid failed: %v\n", err)
		return
	}
	chk.Scalar(tst, "S(xmin)", 1e-10, vals[0], y[0])
	chk.Scalar(tst, "S(xmax)", 1e-10, vals[80], y[20])

	// too few samples
	if _, err = Fit(x[:5], y[:5], 3, "umfpack"); err == nil {
		tst.Errorf("Fit must fail with fewer than 2deg+1 samples\n")
		return
	}

	// non-increasing abscissae
	xbad := []float64{0, 1, 1, 2, 3, 4, 5, 6, 7}
	if _, err = Fit(xbad, make([]float64, 9), 3, "umfpack"); err == nil {
		tst.Errorf("Fit must fail with non-increasing abscissae\n")
		return
	}

	// target outside the fitted range
	if err = sp.EvalGrid([]float64{9.5}, vals[:1], ders[:1]); err == nil {
		tst.Errorf("EvalGrid must fail outside the fitted range\n")
		return
	}

	// invalid degree
	if _, err = Fit(x, y, 4, "umfpack"); err == nil {
		tst.Errorf("Fit must fail with an unsupported degree\n")
		return
	}
}
