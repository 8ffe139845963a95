// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package beams

import (
	"math"

	"github.com/AJPfleger/viperleed/inp"
	"github.com/AJPfleger/viperleed/rfactor"
	"github.com/AJPfleger/viperleed/spline"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// Prepare runs the five-stage preparation pipeline on a beam set:
//
//   1 range limit    clip per-beam supports to the output window
//   2 avg/reorder    average symmetry-equivalent beams; discard scheme-0 beams
//   3 smoothing      hook; a no-op here
//   4 interpolation  natural B-spline onto the uniform output grid + dI/dE
//   5 Y-function     Pendry Y from intensity and derivative
//
// scheme maps each input beam to its 1-based output group; 0 discards the
// beam. nbout is the number of output beams. eout is the strictly uniform
// output grid. Stages can be disabled via rd.Skip.
//
// Fatal problems come back through err together with their code. The code
// alone carries informational statuses (ErrBeamTooShort) for which the
// returned Prepared value is still usable.
func Prepare(set *Set, scheme []int, nbout int, eout []float64, rd *inp.RunData) (o *Prepared, code rfactor.Code, err error) {

	// check input
	if err = set.Check(); err != nil {
		return
	}
	nb := set.Nbeams()
	if len(scheme) != nb {
		err = chk.Err("scheme must have one entry per input beam. nb=%d nscheme=%d", nb, len(scheme))
		return
	}
	if !IsUniform(eout, 1e-8) {
		err = chk.Err("output grid must be strictly uniform")
		return
	}
	deg := rd.Deg
	nmin := 2*deg + 1

	// working copies; the input set is read-only
	sch := make([]int, nb)
	starts := make([]int, nb)
	lens := make([]int, nb)
	copy(sch, scheme)
	copy(starts, set.Start)
	copy(lens, set.Length)

	// stage 1: range limit
	if !rd.Skip.RangeLimit {
		ilo, ihi := RangeWithin(set.E, eout[0], eout[len(eout)-1])
		if ilo >= len(set.E) || ihi < 0 || ihi < ilo {
			err = chk.Err("output window [%g,%g] does not intersect the input grid", eout[0], eout[len(eout)-1])
			return
		}
		for b := 0; b < nb; b++ {
			a := imax(starts[b], ilo)
			e := imin(starts[b]+lens[b]-1, ihi)
			l := e - a + 1
			if l < nmin {
				if sch[b] != 0 {
					sch[b] = 0
					code = rfactor.ErrBeamTooShort
				}
				starts[b], lens[b] = a, 0
				continue
			}
			starts[b], lens[b] = a, l
		}
	}

	// stage 2: average/reorder/discard
	if rd.Skip.AvgReorder {
		if nbout != nb {
			code = rfactor.ErrSchemeMismatch
			err = chk.Err("averaging is skipped but the number of output beams differs from the input. nb=%d nbout=%d", nb, nbout)
			return
		}
	} else if nbout > nb || nbout < 1 {
		code = rfactor.ErrSchemeInvalid
		err = chk.Err("invalid averaging scheme. nb=%d nbout=%d", nb, nbout)
		return
	}
	gstart := make([]int, nbout)     // per-group start on the input grid
	glen := make([]int, nbout)       // per-group support length
	gint := make([][]float64, nbout) // per-group (averaged) intensities
	if rd.Skip.AvgReorder {
		for b := 0; b < nb; b++ {
			if sch[b] == 0 || lens[b] == 0 {
				continue
			}
			gstart[b], glen[b] = starts[b], lens[b]
			gint[b] = set.Inten[b][starts[b] : starts[b]+lens[b]]
		}
	} else {
		for g := 0; g < nbout; g++ {
			a, e, nmem := 0, len(set.E)-1, 0
			for b := 0; b < nb; b++ {
				if sch[b] != g+1 {
					continue
				}
				a = imax(a, starts[b])
				e = imin(e, starts[b]+lens[b]-1)
				nmem++
			}
			if nmem == 0 {
				code = rfactor.ErrSchemeInvalid
				err = chk.Err("output group %d has no members", g+1)
				return
			}
			l := e - a + 1
			if l < nmin {
				code = rfactor.ErrGroupTooShort
				err = chk.Err("averaged support of output group %d has %d samples; at least %d are needed", g+1, l, nmin)
				return
			}
			avg := make([]float64, l)
			for b := 0; b < nb; b++ {
				if sch[b] != g+1 {
					continue
				}
				for k := 0; k < l; k++ {
					avg[k] += set.Inten[b][a+k]
				}
			}
			for k := 0; k < l; k++ {
				avg[k] /= float64(nmem)
			}
			gstart[g], glen[g], gint[g] = a, l, avg
		}
	}

	// stage 3: smoothing (pass-through hook)
	_ = rd.Skip.Smoothing

	// stage 4: interpolation onto the output grid
	nEout := len(eout)
	o = &Prepared{
		E:      eout,
		Estep:  eout[1] - eout[0],
		Inten:  la.MatAlloc(nbout, nEout),
		Deriv:  la.MatAlloc(nbout, nEout),
		Start:  make([]int, nbout),
		Length: make([]int, nbout),
	}
	for g := 0; g < nbout; g++ {
		if glen[g] == 0 {
			continue
		}
		elo := set.E[gstart[g]]
		ehi := set.E[gstart[g]+glen[g]-1]
		jlo, jhi := RangeWithin(eout, elo, ehi)
		l := jhi - jlo + 1
		if l < nmin {
			code = rfactor.ErrBeamTooShort
			continue
		}
		if rd.Skip.Interpolation {
			if err = copyOnGrid(set.E[gstart[g]:gstart[g]+glen[g]], gint[g], eout, jlo, o.Inten[g], o.Deriv[g]); err != nil {
				return
			}
		} else {
			var sp *spline.Spline
			sp, err = spline.Fit(set.E[gstart[g]:gstart[g]+glen[g]], gint[g], deg, rd.LinSol.Name)
			if err != nil {
				return
			}
			if err = sp.EvalGrid(eout[jlo:jhi+1], o.Inten[g][jlo:jhi+1], o.Deriv[g][jlo:jhi+1]); err != nil {
				return
			}
		}
		o.Start[g], o.Length[g] = jlo, l
	}

	// stage 5: Pendry Y-function
	if !rd.Skip.Yfunction {
		o.Y = la.MatAlloc(nbout, nEout)
		for g := 0; g < nbout; g++ {
			a, l := o.Start[g], o.Length[g]
			if l == 0 {
				continue
			}
			rfactor.PendryY(o.Inten[g][a:a+l], o.Deriv[g][a:a+l], rd.V0i, o.Y[g][a:a+l])
		}
	}
	return
}

// copyOnGrid transfers samples already living on the output grid, checking
// that abscissae match, and computes the first derivative with central
// differences (one-sided at the ends)
func copyOnGrid(ein, inten, eout []float64, jlo int, vals, ders []float64) (err error) {
	n := len(ein)
	h := eout[1] - eout[0]
	if jlo+n > len(eout) {
		return chk.Err("interpolation is skipped but %d samples do not fit on the output grid", n)
	}
	for k := 0; k < n; k++ {
		if math.Abs(ein[k]-eout[jlo+k]) > 1e-8*h {
			return chk.Err("interpolation is skipped but the input samples are not on the output grid. E=%g vs %g", ein[k], eout[jlo+k])
		}
		vals[jlo+k] = inten[k]
	}
	for k := 0; k < n; k++ {
		switch k {
		case 0:
			ders[jlo+k] = (inten[1] - inten[0]) / h
		case n - 1:
			ders[jlo+k] = (inten[n-1] - inten[n-2]) / h
		default:
			ders[jlo+k] = (inten[k+1] - inten[k-1]) / (2.0 * h)
		}
	}
	return
}

// imin returns the min between two ints
func imin(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// imax returns the max between two ints
func imax(a, b int) int {
	if a > b {
		return a
	}
	return b
}
