// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package rfactor implements the Pendry Y-function and R-factor kernels
package rfactor

import "github.com/cpmech/gosl/io"

// Code is the integer status of a pipeline or optimizer call
type Code int

// canonical status codes
const (
	Ok                Code = 0   // success
	ErrBeamTooShort   Code = 211 // one or more beams dropped because support < 2・deg+1
	ErrSchemeInvalid  Code = 220 // more output beams than input beams, or an empty output group
	ErrGroupTooShort  Code = 221 // averaged overlap of an output group < 2・deg+1
	ErrSchemeMismatch Code = 223 // averaging skipped but number of output beams differs from input
	ErrBeamNaN        Code = 811 // at least one per-beam R is NaN; aggregate is NaN
	ErrRangeTooSmall  Code = 851 // shift range has fewer than 6 grid points
	ErrAllEvaluated   Code = 852 // optimizer ran out of unevaluated points
	ErrOutOfRange     Code = 854 // parabola window leaves the grid; fell back to brute force
	ErrParabolaPoor   Code = 855 // parabola fit too poor; fell back to brute force
	ErrWeakMinimum    Code = 856 // minimum found but fit weak; returned best grid point
	ErrSingularPar    Code = 860 // parabola least-squares solve failed
)

// Fatal tells whether a code invalidates the whole call. Informational
// codes still come with usable results.
func (o Code) Fatal() bool {
	switch o {
	case ErrSchemeInvalid, ErrGroupTooShort, ErrSchemeMismatch, ErrRangeTooSmall, ErrSingularPar:
		return true
	}
	return false
}

// String returns a short description
func (o Code) String() string {
	switch o {
	case Ok:
		return "ok"
	case ErrBeamTooShort:
		return "beam support too short; beam discarded"
	case ErrSchemeInvalid:
		return "invalid averaging scheme"
	case ErrGroupTooShort:
		return "averaged group support too short"
	case ErrSchemeMismatch:
		return "averaging skipped but beam counts differ"
	case ErrBeamNaN:
		return "per-beam R is NaN"
	case ErrRangeTooSmall:
		return "shift range too small"
	case ErrAllEvaluated:
		return "all shift grid points evaluated"
	case ErrOutOfRange:
		return "parabola window left the shift grid"
	case ErrParabolaPoor:
		return "parabola fit poor"
	case ErrWeakMinimum:
		return "weak minimum; best grid point returned"
	case ErrSingularPar:
		return "singular parabola least-squares system"
	}
	return io.Sf("unknown code %d", int(o))
}
