// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ana provides closed-form I(E) curves with exact derivatives
package ana

import "math"

// Bump is a Gaussian intensity peak
//
//    I(E) = A・exp(-(E-E0)²/(2・Sig²))
//
type Bump struct {
	A   float64 // amplitude
	E0  float64 // peak position
	Sig float64 // width
}

// I computes the intensity at energy e
func (o Bump) I(e float64) float64 {
	z := (e - o.E0) / o.Sig
	return o.A * math.Exp(-z*z/2.0)
}

// DIdE computes the exact first derivative at energy e
func (o Bump) DIdE(e float64) float64 {
	z := (e - o.E0) / o.Sig
	return -o.A * z / o.Sig * math.Exp(-z*z/2.0)
}

// Sample fills inten (and deriv, if non-nil) with the curve sampled on E
func (o Bump) Sample(E, inten, deriv []float64) {
	for i, e := range E {
		inten[i] = o.I(e)
		if deriv != nil {
			deriv[i] = o.DIdE(e)
		}
	}
}

// Peaks is a sum of Lorentzian intensity peaks resembling a LEED I(V)
// spectrum
//
//    I(E) = Σ_k A[k]・W[k]² / ((E-E0[k])² + W[k]²)
//
type Peaks struct {
	A  []float64 // amplitudes
	E0 []float64 // peak positions
	W  []float64 // half-widths
}

// I computes the intensity at energy e
func (o Peaks) I(e float64) (res float64) {
	for k := range o.A {
		d := e - o.E0[k]
		res += o.A[k] * o.W[k] * o.W[k] / (d*d + o.W[k]*o.W[k])
	}
	return
}

// DIdE computes the exact first derivative at energy e
func (o Peaks) DIdE(e float64) (res float64) {
	for k := range o.A {
		d := e - o.E0[k]
		den := d*d + o.W[k]*o.W[k]
		res -= 2.0 * o.A[k] * o.W[k] * o.W[k] * d / (den * den)
	}
	return
}

// Sample fills inten (and deriv, if non-nil) with the curve sampled on E
func (o Peaks) Sample(E, inten, deriv []float64) {
	for i, e := range E {
		inten[i] = o.I(e)
		if deriv != nil {
			deriv[i] = o.DIdE(e)
		}
	}
}
