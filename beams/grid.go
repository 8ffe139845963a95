// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package beams

import (
	"math"
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// UniformGrid builds the uniform output energy grid starting at emin with
// step estep, containing every point not exceeding emax
func UniformGrid(emin, emax, estep float64) (E []float64, err error) {
	if estep <= 0 {
		return nil, chk.Err("grid step must be positive. estep=%g is invalid", estep)
	}
	if emax <= emin {
		return nil, chk.Err("grid bounds are empty. emin=%g emax=%g", emin, emax)
	}
	n := int(math.Floor((emax-emin)/estep+1e-9)) + 1
	return utl.LinSpace(emin, emin+float64(n-1)*estep, n), nil
}

// IsUniform tells whether E is strictly uniform within the relative
// tolerance tol on the step
func IsUniform(E []float64, tol float64) bool {
	if len(E) < 2 {
		return false
	}
	h := E[1] - E[0]
	if h <= 0 {
		return false
	}
	for i := 2; i < len(E); i++ {
		if math.Abs((E[i]-E[i-1])-h) > tol*h {
			return false
		}
	}
	return true
}

// IndexAtOrAbove returns the smallest index i with E[i] ≥ e on the sorted
// grid E, or len(E) if no such index exists
func IndexAtOrAbove(E []float64, e float64) int {
	return sort.SearchFloat64s(E, e)
}

// IndexAtOrBelow returns the largest index i with E[i] ≤ e, or -1 if no
// such index exists
func IndexAtOrBelow(E []float64, e float64) int {
	i := sort.SearchFloat64s(E, e)
	if i < len(E) && E[i] == e {
		return i
	}
	return i - 1
}

// RangeWithin returns the index window [ilo,ihi] of the grid E contained
// in [elo,ehi]. The window is empty if ihi < ilo.
func RangeWithin(E []float64, elo, ehi float64) (ilo, ihi int) {
	ilo = IndexAtOrAbove(E, elo)
	ihi = IndexAtOrBelow(E, ehi)
	return
}
