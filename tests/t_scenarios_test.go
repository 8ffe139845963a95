// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tests

import (
	"testing"

	"github.com/AJPfleger/viperleed/ana"
	"github.com/AJPfleger/viperleed/beams"
	"github.com/AJPfleger/viperleed/inp"
	"github.com/AJPfleger/viperleed/rfactor"
	"github.com/AJPfleger/viperleed/v0r"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/utl"
)

// newSet samples the given curves into a full-support beam set on E
func newSet(E []float64, curves ...func(e float64) float64) *beams.Set {
	nb := len(curves)
	o := &beams.Set{
		E:      E,
		Inten:  la.MatAlloc(nb, len(E)),
		Start:  make([]int, nb),
		Length: make([]int, nb),
	}
	for b, f := range curves {
		o.Length[b] = len(E)
		for k, e := range E {
			o.Inten[b][k] = f(e)
		}
	}
	return o
}

// prepare runs the pipeline or stops the test
func prepare(tst *testing.T, set *beams.Set, nb int, eout []float64, rd *inp.RunData) *beams.Prepared {
	scheme := make([]int, nb)
	for b := 0; b < nb; b++ {
		scheme[b] = b + 1
	}
	prep, _, err := beams.Prepare(set, scheme, nb, eout, rd)
	if err != nil {
		tst.Errorf("Prepare failed: %v\n", err)
		return nil
	}
	return prep
}

func Test_scen01(tst *testing.T) {

	//Verbose()
	chk.PrintTitle("scen01. identical beams at zero shift")

	bump := ana.Bump{A: 3.0, E0: 75.0, Sig: 10.0}
	Ein := utl.LinSpace(40, 110, 141)
	eout, _ := beams.UniformGrid(50, 100, 0.5)
	var rd inp.RunData
	rd.SetDefault()

	exp := prepare(tst, newSet(Ein, bump.I), 1, eout, &rd)
	theo := prepare(tst, newSet(Ein, bump.I), 1, eout, &rd)
	if exp == nil || theo == nil {
		return
	}

	rtot, rbeams, novers, code := rfactor.RbeamsetY(exp.Y, theo.Y, exp.Start, theo.Start, exp.Length, theo.Length, 0, exp.Estep)
	chk.IntAssert(int(code), 0)
	chk.Ints(tst, "novers", novers, []int{101})
	chk.Scalar(tst, "R beam", 1e-15, rbeams[0], 0)
	chk.Scalar(tst, "R total", 1e-15, rtot, 0)
}

func Test_scen02(tst *testing.T) {

	//Verbose()
	chk.PrintTitle("scen02. constant intensity offset")

	bump := ana.Bump{A: 3.0, E0: 75.0, Sig: 10.0}
	Ein := utl.LinSpace(40, 110, 141)
	eout, _ := beams.UniformGrid(50, 100, 0.5)
	var rd inp.RunData
	rd.SetDefault()

	exp := prepare(tst, newSet(Ein, bump.I), 1, eout, &rd)
	if exp == nil {
		return
	}

	rlast := 0.0
	for _, offset := range []float64{0.1, 0.2, 0.3} {
		off := offset
		theo := prepare(tst, newSet(Ein, func(e float64) float64 { return bump.I(e) + off }), 1, eout, &rd)
		if theo == nil {
			return
		}
		rtot, _, _, code := rfactor.RbeamsetY(exp.Y, theo.Y, exp.Start, theo.Start, exp.Length, theo.Length, 0, exp.Estep)
		chk.IntAssert(int(code), 0)
		if rtot <= rlast {
			tst.Errorf("R must increase with the offset. R(%g)=%g ≤ %g\n", off, rtot, rlast)
			return
		}
		if rtot > 2.0 {
			tst.Errorf("R=%g is above the saturation bound\n", rtot)
			return
		}
		rlast = rtot
	}
}

func Test_scen03(tst *testing.T) {

	//Verbose()
	chk.PrintTitle("scen03. shift recovery by the V0r optimizer")

	exp := ana.Bump{A: 3.0, E0: 75.0, Sig: 5.0}
	theo := ana.Bump{A: 3.0, E0: 73.0, Sig: 5.0} // I2(E) = I1(E + 2.0)
	Ein := utl.LinSpace(40, 110, 281)            // step 0.25
	eout, _ := beams.UniformGrid(50, 100, 0.5)

	var rd inp.RunData
	rd.SetDefault()
	rd.Opt.Smin, rd.Opt.Smax = -10, 10
	rd.Opt.Guess = [3]int{-5, 0, 5}

	pexp := prepare(tst, newSet(Ein, exp.I), 1, eout, &rd)
	ptheo := prepare(tst, newSet(Ein, theo.I), 1, eout, &rd)
	if pexp == nil || ptheo == nil {
		return
	}

	out, err := v0r.OptimizeRun(&rd, pexp, ptheo, chk.Verbose)
	if err != nil {
		tst.Errorf("OptimizeRun failed: %v\n", err)
		return
	}
	if out.Code.Fatal() {
		tst.Errorf("optimizer failed with code %v\n", out.Code)
		return
	}
	chk.IntAssert(out.BestInt, 4)
	if out.BestR > 1e-6 {
		tst.Errorf("best R=%g must be below 1e-6\n", out.BestR)
		return
	}
	chk.Ints(tst, "novers", out.Novers, []int{97})

	// the returned best cannot be worse than any of the guesses
	for _, g := range rd.Opt.Guess {
		rg, _, _, _ := rfactor.RbeamsetY(pexp.Y, ptheo.Y, pexp.Start, ptheo.Start, pexp.Length, ptheo.Length, g, pexp.Estep)
		if out.BestR > rg {
			tst.Errorf("best R=%g is worse than R(%d)=%g\n", out.BestR, g, rg)
			return
		}
	}
}
