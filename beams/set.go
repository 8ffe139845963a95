// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package beams implements the packed beam-set data model and the
// preparation pipeline producing Pendry Y-functions on a uniform grid
package beams

import (
	"github.com/cpmech/gosl/chk"
)

// Set holds a packed collection of I(E) curves. The intensity matrix has
// one row per beam: Inten[b][k] is the intensity of beam b at energy E[k].
// Only the samples within [Start[b], Start[b]+Length[b]) are defined;
// samples outside are never read. A Set is borrowed immutably by all
// pipeline stages.
type Set struct {
	E      []float64   // energy grid; strictly increasing
	Inten  [][]float64 // intensities; one row per beam
	Start  []int       // 0-based index of the first valid sample, per beam
	Length []int       // number of consecutive valid samples, per beam
}

// Nbeams returns the number of beams
func (o *Set) Nbeams() int {
	return len(o.Inten)
}

// Check verifies the invariants of the packed representation
func (o *Set) Check() (err error) {
	nE := len(o.E)
	if nE < 2 {
		return chk.Err("energy grid must have at least 2 points. nE=%d is invalid", nE)
	}
	for i := 1; i < nE; i++ {
		if o.E[i] <= o.E[i-1] {
			return chk.Err("energy grid must be strictly increasing. E[%d]=%g ≥ E[%d]=%g", i-1, o.E[i-1], i, o.E[i])
		}
	}
	nb := o.Nbeams()
	if len(o.Start) != nb || len(o.Length) != nb {
		return chk.Err("start and length vectors must have one entry per beam. nb=%d nstart=%d nlength=%d", nb, len(o.Start), len(o.Length))
	}
	for b := 0; b < nb; b++ {
		if o.Length[b] < 0 {
			return chk.Err("beam %d has negative length %d", b, o.Length[b])
		}
		if o.Start[b] < 0 || o.Start[b]+o.Length[b] > nE {
			return chk.Err("beam %d support [%d,%d) is outside the grid with %d points", b, o.Start[b], o.Start[b]+o.Length[b], nE)
		}
		if len(o.Inten[b]) != nE {
			return chk.Err("beam %d intensity row has %d samples but the grid has %d points", b, len(o.Inten[b]), nE)
		}
	}
	return
}

// Prepared holds the outcome of the preparation pipeline: intensities,
// first derivatives and Pendry Y-functions of the output beams on the
// strictly uniform output grid. Y is nil if the Y-function stage was
// skipped. All rows are owned by the pipeline invocation.
type Prepared struct {
	E      []float64   // uniform output energy grid
	Estep  float64     // grid step
	Inten  [][]float64 // interpolated intensities; one row per output beam
	Deriv  [][]float64 // first derivatives dI/dE
	Y      [][]float64 // Pendry Y-functions
	Start  []int       // 0-based index of the first valid sample, per beam
	Length []int       // number of valid samples, per beam; 0 = discarded
}
