// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the run data read from a (.run) JSON file
package inp

import (
	"encoding/json"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// SkipData holds the flags disabling individual preparation stages.
// All stages execute by default.
type SkipData struct {
	RangeLimit    bool `json:"range_limit"`   // skip clipping to the output window
	AvgReorder    bool `json:"avg_reorder"`   // skip averaging/reordering/discarding
	Smoothing     bool `json:"smoothing"`     // skip the smoothing hook
	Interpolation bool `json:"interpolation"` // skip spline interpolation onto the output grid
	Yfunction     bool `json:"y_function"`    // skip the Pendry Y-function
}

// LinSolData holds data for the linear solver used by the spline fits
type LinSolData struct {
	Name    string `json:"name"`    // "mumps" or "umfpack"
	Verbose bool   `json:"verbose"` // verbose?
}

// SetDefault sets default values
func (o *LinSolData) SetDefault() {
	o.Name = "umfpack"
}

// OptData holds data for the V0r optimizer
type OptData struct {
	Smin        int     `json:"smin"`        // lower bound of the shift grid
	Smax        int     `json:"smax"`        // upper bound of the shift grid
	Guess       [3]int  `json:"guess"`       // initial shift guesses
	Fast        bool    `json:"fast"`        // use the parabola search; false = brute force
	TolR        float64 `json:"tolr"`        // R² above which the parabola fit is good
	TolR2       float64 `json:"tolr2"`       // R² above which the fit is still acceptable
	MaxFitRange int     `json:"maxfitrange"` // initial half-width of the fitting window
}

// SetDefault sets default values
func (o *OptData) SetDefault() {
	o.Fast = true
	o.TolR = 0.95
	o.TolR2 = 0.8
	o.MaxFitRange = 11
}

// RunData holds all input data for one R-factor computation
type RunData struct {

	// global information
	Desc string `json:"desc"` // description of run

	// beam preparation
	Deg   int     `json:"deg"`   // spline degree; 3 or 5
	V0i   float64 `json:"v0i"`   // imaginary inner potential [eV]
	Emin  float64 `json:"emin"`  // lower bound of the output energy grid [eV]
	Emax  float64 `json:"emax"`  // upper bound of the output energy grid [eV]
	Estep float64 `json:"estep"` // step of the output energy grid [eV]

	// options
	Skip   SkipData   `json:"skip"`   // stage skip flags
	LinSol LinSolData `json:"linsol"` // linear solver data
	Opt    OptData    `json:"opt"`    // V0r optimizer data
}

// SetDefault sets default values
func (o *RunData) SetDefault() {
	o.Deg = 3
	o.V0i = 5.0
	o.Estep = 0.5
	o.LinSol.SetDefault()
	o.Opt.SetDefault()
}

// ReadRun reads a run file
// Note: panics (chk.Panic) if the file cannot be read or decoded, or if
// deg, estep or v0i is invalid
func ReadRun(runfilepath string) *RunData {

	// new run data with defaults
	var o RunData
	o.SetDefault()

	// read file
	b, err := io.ReadFile(runfilepath)
	if err != nil {
		chk.Panic("ReadRun: cannot read run file %q", runfilepath)
	}

	// decode
	err = json.Unmarshal(b, &o)
	if err != nil {
		chk.Panic("ReadRun: cannot unmarshal run file %q", runfilepath)
	}

	// check
	if o.Deg != 3 && o.Deg != 5 {
		chk.Panic("ReadRun: spline degree must be 3 or 5. deg=%d is invalid", o.Deg)
	}
	if o.Estep <= 0 {
		chk.Panic("ReadRun: energy step must be positive. estep=%g is invalid", o.Estep)
	}
	if o.V0i < 0 {
		chk.Panic("ReadRun: imaginary inner potential cannot be negative. v0i=%g is invalid", o.V0i)
	}
	return &o
}
