// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rfactor

import (
	"math"
)

// PendryY computes the Pendry Y-function
//
//    Y = I・I' / (I² + v0i²・I'²)
//
// pointwise over the n samples of inten and deriv, writing into y (len n).
// v0i is the imaginary part of the inner potential; with v0i > 0 the
// denominator is strictly positive for finite samples. The 0/0 case with
// v0i = 0 yields Y = 0.
func PendryY(inten, deriv []float64, v0i float64, y []float64) {
	for i := 0; i < len(inten); i++ {
		den := inten[i]*inten[i] + v0i*v0i*deriv[i]*deriv[i]
		if den == 0 {
			y[i] = 0
			continue
		}
		y[i] = inten[i] * deriv[i] / den
	}
}

// Trapz integrates f sampled with constant step dx using the trapezoidal rule
func Trapz(f []float64, dx float64) (res float64) {
	n := len(f)
	if n < 2 {
		return 0
	}
	res = (f[0] + f[n-1]) / 2.0
	for i := 1; i < n-1; i++ {
		res += f[i]
	}
	return res * dx
}

// RbeamY computes the Pendry R-factor between two Y-curves of one beam at
// an integer shift of the second curve against the first.
//
// y1 and y2 are full-length vectors on the common uniform output grid with
// step estep; (start1,len1) and (start2,len2) delimit the valid samples
// (0-based). The second curve is translated by shift grid steps. Returns
// the per-beam R together with its numerator, denominator and the number
// of overlapping samples. With fewer than 2 overlapping samples there is
// no overlap: R is NaN and num = den = 0, nover = 0.
func RbeamY(y1, y2 []float64, start1, start2, len1, len2, shift int, estep float64) (r, num, den float64, nover int) {
	a1, a2 := start1, start2+shift
	b1, b2 := a1+len1-1, a2+len2-1
	ilo, ihi := a1, a2
	if a2 > a1 {
		ilo = a2
	}
	if b1 < b2 {
		ihi = b1
	} else {
		ihi = b2
	}
	n := ihi - ilo + 1
	if n < 2 {
		return math.NaN(), 0, 0, 0
	}

	// trapezoidal sums of (Y1-Y2)² and Y1²+Y2² on the overlap
	wend := 0.5
	for k := ilo; k <= ihi; k++ {
		w := 1.0
		if k == ilo || k == ihi {
			w = wend
		}
		d := y1[k] - y2[k-shift]
		s := y1[k]*y1[k] + y2[k-shift]*y2[k-shift]
		num += w * d * d
		den += w * s
	}
	num *= estep
	den *= estep
	return num / den, num, den, n
}

// RbeamsetY computes per-beam Pendry R-factors at a common shift and their
// weighted aggregate
//
//    Rtot = Σ_b (num_b/den_b)・N_b / Σ_b N_b
//
// where N_b is the per-beam overlap count. y1 and y2 hold one row per beam.
// Beams without overlap (N_b = 0) are excluded from the aggregate but keep
// R = NaN in rbeams. If a beam with overlap yields a NaN R, the aggregate
// is NaN and ErrBeamNaN is returned; per-beam outputs remain valid.
func RbeamsetY(y1, y2 [][]float64, start1, start2, len1, len2 []int, shift int, estep float64) (rtot float64, rbeams []float64, novers []int, code Code) {
	nb := len(y1)
	rbeams = make([]float64, nb)
	novers = make([]int, nb)
	sumRN, sumN := 0.0, 0
	poisoned := false
	for b := 0; b < nb; b++ {
		r, _, _, n := RbeamY(y1[b], y2[b], start1[b], start2[b], len1[b], len2[b], shift, estep)
		rbeams[b] = r
		novers[b] = n
		if n == 0 {
			continue
		}
		if math.IsNaN(r) {
			poisoned = true
			continue
		}
		sumRN += r * float64(n)
		sumN += n
	}
	if poisoned || sumN == 0 {
		return math.NaN(), rbeams, novers, ErrBeamNaN
	}
	return sumRN / float64(sumN), rbeams, novers, Ok
}

// RbeamsetGroupedY is RbeamsetY with beams grouped by the integer labels in
// types (e.g. integer/fractional order). Each group receives its own
// weighted aggregate, computed with the same formula as the joint total.
func RbeamsetGroupedY(y1, y2 [][]float64, start1, start2, len1, len2 []int, shift int, estep float64, types []int) (rtot float64, rgroups map[int]float64, rbeams []float64, novers []int, code Code) {
	rtot, rbeams, novers, code = RbeamsetY(y1, y2, start1, start2, len1, len2, shift, estep)
	rgroups = make(map[int]float64)
	sumRN := make(map[int]float64)
	sumN := make(map[int]int)
	nan := make(map[int]bool)
	for b := 0; b < len(rbeams); b++ {
		g := types[b]
		if novers[b] == 0 {
			continue
		}
		if math.IsNaN(rbeams[b]) {
			nan[g] = true
			continue
		}
		sumRN[g] += rbeams[b] * float64(novers[b])
		sumN[g] += novers[b]
	}
	for b := 0; b < len(rbeams); b++ {
		g := types[b]
		if _, done := rgroups[g]; done {
			continue
		}
		if nan[g] || sumN[g] == 0 {
			rgroups[g] = math.NaN()
			continue
		}
		rgroups[g] = sumRN[g] / float64(sumN[g])
	}
	return
}
