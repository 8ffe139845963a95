// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package v0r

import (
	"math"

	"github.com/AJPfleger/viperleed/beams"
	"github.com/AJPfleger/viperleed/inp"
	"github.com/AJPfleger/viperleed/rfactor"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Input bundles the data for one V0r optimization: the Y-functions of the
// experimental (1) and theoretical (2) beam sets on a common uniform grid,
// the integer shift range with three initial guesses, and the parabola
// search controls.
type Input struct {
	Smin, Smax  int         // shift grid bounds (inclusive)
	Guess       [3]int      // initial shifts; must lie within [Smin,Smax]
	Fast        bool        // parabola search; false = plain grid scan
	TolR        float64     // R² above which the parabola fit is good
	TolR2       float64     // R² above which the fit is still acceptable
	MaxFitRange int         // initial half-width of the fitting window
	Estep       float64     // output grid step
	Y1, Y2      [][]float64 // Y-functions; one row per beam
	Start1      []int       // per-beam first valid sample of set 1
	Start2      []int       // per-beam first valid sample of set 2
	Len1        []int       // per-beam number of valid samples of set 1
	Len2        []int       // per-beam number of valid samples of set 2
}

// Output holds the optimization results. BestInt is the best evaluated
// grid shift; BestReal refines it with the parabola minimum when the fit
// converged, and equals float64(BestInt) otherwise. Rbeams and Novers are
// the per-beam decomposition at BestInt.
type Output struct {
	BestInt  int          // best evaluated integer shift
	BestReal float64      // interpolated best shift
	BestR    float64      // aggregate R at the reported minimum
	Rbeams   []float64    // per-beam R at BestInt
	Novers   []int        // per-beam overlap counts at BestInt
	Neval    int          // number of R-factor evaluations
	Code     rfactor.Code // final status; informational unless Fatal()
}

// Objective evaluates the aggregate R and its per-beam decomposition at
// one integer shift
type Objective func(shift int) (rtot float64, rbeams []float64, novers []int, code rfactor.Code)

// optimizer holds the state of the finite-state search loop
type optimizer struct {
	in    *Input
	obj   Objective
	n     int           // number of grid points
	done  []bool        // evaluated flags
	r     []float64     // aggregate R per grid point
	rb    [][]float64   // per-beam R per grid point
	nov   [][]int       // per-beam overlap counts per grid point
	neval int           // evaluation counter
	best  int           // index of the running best; -1 while unset
	nan   bool          // a NaN aggregate was observed
}

// Optimize finds the integer shift minimizing the aggregate Pendry
// R-factor over [Smin,Smax], using a least-squares parabola search with
// brute-force fallback. The shift grid must have at least 6 points
// (ErrRangeTooSmall otherwise). Soft statuses (ErrOutOfRange,
// ErrParabolaPoor, ErrWeakMinimum) still come with a valid best point.
func Optimize(in *Input, verbose bool) (out *Output, err error) {
	return OptimizeObj(in, func(shift int) (float64, []float64, []int, rfactor.Code) {
		return rfactor.RbeamsetY(in.Y1, in.Y2, in.Start1, in.Start2, in.Len1, in.Len2, shift, in.Estep)
	}, verbose)
}

// OptimizeObj runs the search loop of Optimize against an arbitrary
// objective; the Y-set fields of in are not consulted
func OptimizeObj(in *Input, obj Objective, verbose bool) (out *Output, err error) {

	// check range
	n := in.Smax - in.Smin + 1
	if n < 6 {
		out = &Output{Code: rfactor.ErrRangeTooSmall}
		err = chk.Err("shift range [%d,%d] has %d grid points; at least 6 are needed", in.Smin, in.Smax, n)
		return
	}
	for _, g := range in.Guess {
		if g < in.Smin || g > in.Smax {
			out = &Output{Code: rfactor.ErrRangeTooSmall}
			err = chk.Err("initial guess %d is outside the shift range [%d,%d]", g, in.Smin, in.Smax)
			return
		}
	}

	// state
	o := &optimizer{
		in:   in,
		obj:  obj,
		n:    n,
		done: make([]bool, n),
		r:    make([]float64, n),
		rb:   make([][]float64, n),
		nov:  make([][]int, n),
		best: -1,
	}

	// brute-force scan requested
	if !in.Fast {
		o.evalAll()
		return o.finish(rfactor.Ok, verbose), nil
	}

	// init states: evaluate the three guesses
	for _, g := range in.Guess {
		o.eval(g - in.Smin)
	}

	// first parabola fit on the guesses
	a, b, _, ferr := o.fit(0, o.n-1)
	if ferr != nil {
		out = &Output{Code: rfactor.ErrSingularPar, Neval: o.neval}
		err = chk.Err("initial parabola fit failed: %v", ferr)
		return
	}
	if 2*a <= curvatureMin {
		o.evalAll()
		return o.finish(rfactor.ErrParabolaPoor, verbose), nil
	}
	cidx := int(math.Round(-b/(2*a))) - in.Smin

	// refine loop
	fr := in.MaxFitRange
	minfr := fr - 6
	if minfr < 5 {
		minfr = 5
	}
	for {

		// window must stay on the grid
		if cidx-fr < 0 || cidx+fr > o.n-1 {
			o.evalAll()
			return o.finish(rfactor.ErrOutOfRange, verbose), nil
		}

		// at least 4 evaluated points are needed for a meaningful fit
		if o.countWin(cidx, fr) < 4 {
			if !o.evalNearest(cidx, fr) {
				return o.finish(rfactor.ErrAllEvaluated, verbose), nil
			}
			continue
		}

		// refit on the window
		var c float64
		a, b, c, ferr = o.fit(cidx-fr, cidx+fr)
		if ferr != nil {
			out = &Output{Code: rfactor.ErrSingularPar, Neval: o.neval}
			err = chk.Err("parabola fit failed: %v", ferr)
			return
		}
		if 2*a <= curvatureMin {
			o.evalAll()
			return o.finish(rfactor.ErrParabolaPoor, verbose), nil
		}
		newc := int(math.Round(-b/(2*a))) - in.Smin
		if newc <= cidx-fr || newc >= cidx+fr {
			o.evalAll()
			return o.finish(rfactor.ErrParabolaPoor, verbose), nil
		}

		// quality of the fit on the fitted window
		r2 := o.rsq(cidx-fr, cidx+fr, a, b, c)
		cidx = newc
		if r2 > in.TolR {
			out = o.finish(rfactor.Ok, verbose)
			out.BestReal = -b / (2 * a)
			out.BestR = c - b*b/(4*a)
			return out, nil
		}
		if o.countWin(cidx, fr) < 2*fr+1 {
			if !o.evalNearest(cidx, fr) {
				return o.finish(rfactor.ErrAllEvaluated, verbose), nil
			}
			continue
		}
		if r2 > in.TolR2 {
			fr--
			if fr < minfr {
				return o.finish(rfactor.ErrWeakMinimum, verbose), nil
			}
			continue
		}
		o.evalAll()
		return o.finish(rfactor.ErrParabolaPoor, verbose), nil
	}
}

// OptimizeRun assembles the optimizer input from the run data and two
// prepared beam sets (experimental and theoretical) and runs Optimize
func OptimizeRun(rd *inp.RunData, exp, theo *beams.Prepared, verbose bool) (*Output, error) {
	return Optimize(&Input{
		Smin:        rd.Opt.Smin,
		Smax:        rd.Opt.Smax,
		Guess:       rd.Opt.Guess,
		Fast:        rd.Opt.Fast,
		TolR:        rd.Opt.TolR,
		TolR2:       rd.Opt.TolR2,
		MaxFitRange: rd.Opt.MaxFitRange,
		Estep:       exp.Estep,
		Y1:          exp.Y,
		Y2:          theo.Y,
		Start1:      exp.Start,
		Start2:      theo.Start,
		Len1:        exp.Length,
		Len2:        theo.Length,
	}, verbose)
}

// curvatureMin is the smallest second derivative 2a accepted as a genuine minimum
const curvatureMin = 0.005

// eval computes the beam-set R at grid index i, caching the results and
// updating the running best (strict <; first-seen wins among ties)
func (o *optimizer) eval(i int) {
	if o.done[i] {
		return
	}
	rtot, rb, nov, code := o.obj(o.in.Smin + i)
	o.done[i] = true
	o.r[i] = rtot
	o.rb[i] = rb
	o.nov[i] = nov
	o.neval++
	if code == rfactor.ErrBeamNaN || math.IsNaN(rtot) {
		o.nan = true
		return
	}
	if o.best < 0 || rtot < o.r[o.best] {
		o.best = i
	}
}

// evalAll evaluates every remaining grid point
func (o *optimizer) evalAll() {
	for i := 0; i < o.n; i++ {
		o.eval(i)
	}
}

// evalNearest evaluates the unevaluated point nearest to c within the
// window [c-fr, c+fr], preferring the lower neighbour: c, c-1, c+1, c-2, ...
// Returns false if the window is fully evaluated.
func (o *optimizer) evalNearest(c, fr int) bool {
	for d := 0; d <= fr; d++ {
		if i := c - d; i >= c-fr && !o.done[i] {
			o.eval(i)
			return true
		}
		if i := c + d; i <= c+fr && !o.done[i] {
			o.eval(i)
			return true
		}
	}
	return false
}

// countWin counts the evaluated non-NaN points in the window [c-fr, c+fr]
func (o *optimizer) countWin(c, fr int) (cnt int) {
	for i := c - fr; i <= c+fr; i++ {
		if o.done[i] && !math.IsNaN(o.r[i]) {
			cnt++
		}
	}
	return
}

// fit runs the parabola least-squares over the evaluated points in
// [ilo,ihi], with unit weight per point. NaN evaluations carry no weight.
func (o *optimizer) fit(ilo, ihi int) (a, b, c float64, err error) {
	var x, y, w []float64
	for i := ilo; i <= ihi; i++ {
		if !o.done[i] || math.IsNaN(o.r[i]) {
			continue
		}
		x = append(x, float64(o.in.Smin+i))
		y = append(y, o.r[i])
		w = append(w, 1.0)
	}
	return FitParabola(x, y, w)
}

// rsq computes the coefficient of determination of the fitted parabola
// over the evaluated points in [ilo,ihi]
func (o *optimizer) rsq(ilo, ihi int, a, b, c float64) float64 {
	var x, y, w []float64
	for i := ilo; i <= ihi; i++ {
		if !o.done[i] || math.IsNaN(o.r[i]) {
			continue
		}
		x = append(x, float64(o.in.Smin+i))
		y = append(y, o.r[i])
		w = append(w, 1.0)
	}
	return Rsquared(x, y, w, a, b, c)
}

// finish packs the running best into an Output with the given status
func (o *optimizer) finish(code rfactor.Code, verbose bool) (out *Output) {
	out = &Output{Neval: o.neval, Code: code}
	if o.best < 0 {
		out.BestInt = o.in.Smin
		out.BestReal = math.NaN()
		out.BestR = math.NaN()
		if o.nan {
			out.Code = rfactor.ErrBeamNaN
		}
		return
	}
	out.BestInt = o.in.Smin + o.best
	out.BestReal = float64(out.BestInt)
	out.BestR = o.r[o.best]
	out.Rbeams = o.rb[o.best]
	out.Novers = o.nov[o.best]
	if verbose {
		io.Pf("V0r optimization: best shift = %d  R = %g  (%d evaluations, status %v)\n", out.BestInt, out.BestR, out.Neval, out.Code)
	}
	return
}
