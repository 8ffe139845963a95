// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package beams

import (
	"testing"

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

func Test_grid01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("grid01. uniform output grid")

	E, err := UniformGrid(50, 100, 0.5)
	if err != nil {
		tst.Errorf("UniformGrid failed: %v\n", err)
		return
	}
	chk.IntAssert(len(E), 101)
	chk.Scalar(tst, "E[0]", 1e-15, E[0], 50)
	chk.Scalar(tst, "E[100]", 1e-15, E[100], 100)
	if !IsUniform(E, 1e-8) {
		tst.Errorf("grid must be uniform\n")
		return
	}

	// emax not on the grid: last point must not exceed it
	E, err = UniformGrid(50, 100.2, 0.5)
	if err != nil {
		tst.Errorf("UniformGrid failed: %v\n", err)
		return
	}
	chk.IntAssert(len(E), 101)

	// invalid bounds
	if _, err = UniformGrid(50, 50, 0.5); err == nil {
		tst.Errorf("UniformGrid must fail with empty bounds\n")
		return
	}
	if _, err = UniformGrid(50, 100, 0); err == nil {
		tst.Errorf("UniformGrid must fail with a zero step\n")
		return
	}
}

func Test_grid02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("grid02. correspondence indices")

	E := utl.LinSpace(10, 20, 11)

	chk.IntAssert(IndexAtOrAbove(E, 10.0), 0)
	chk.IntAssert(IndexAtOrAbove(E, 12.5), 3)
	chk.IntAssert(IndexAtOrAbove(E, 13.0), 3)
	chk.IntAssert(IndexAtOrAbove(E, 20.0), 10)
	chk.IntAssert(IndexAtOrAbove(E, 20.5), 11)

	chk.IntAssert(IndexAtOrBelow(E, 10.0), 0)
	chk.IntAssert(IndexAtOrBelow(E, 12.5), 2)
	chk.IntAssert(IndexAtOrBelow(E, 13.0), 3)
	chk.IntAssert(IndexAtOrBelow(E, 9.5), -1)
	chk.IntAssert(IndexAtOrBelow(E, 25.0), 10)

	ilo, ihi := RangeWithin(E, 11.2, 18.7)
	chk.Ints(tst, "window", []int{ilo, ihi}, []int{2, 8})

	ilo, ihi = RangeWithin(E, 14.1, 14.9)
	if ihi >= ilo {
		tst.Errorf("window must be empty. ilo=%d ihi=%d\n", ilo, ihi)
		return
	}

	if IsUniform([]float64{0, 1, 2.5}, 1e-8) {
		tst.Errorf("non-uniform grid detected as uniform\n")
		return
	}
}
