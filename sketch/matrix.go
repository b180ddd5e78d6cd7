// Copyright 2024 The Sketch Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sketch

// denseMatrix is a square m×m matrix of float64 stored column-major:
// N[r,c] lives at data[r+c*m]. It exists so the normal
// matrix has an explicit, cheap row-swap (the Gaussian elimination pivot
// step swaps whole rows, which is a strided walk in column-major storage
// but touches no more memory than the row-major equivalent).
type denseMatrix struct {
	m    int
	data []float64
}

// newDenseMatrix returns an m×m matrix of zeros.
func newDenseMatrix(m int) *denseMatrix {
	return &denseMatrix{m: m, data: make([]float64, m*m)}
}

func (d *denseMatrix) at(r, c int) float64 {
	return d.data[r+c*d.m]
}

func (d *denseMatrix) set(r, c int, v float64) {
	d.data[r+c*d.m] = v
}

func (d *denseMatrix) swapRows(a, b int) {
	if a == b {
		return
	}
	for c := 0; c < d.m; c++ {
		ia, ib := a+c*d.m, b+c*d.m
		d.data[ia], d.data[ib] = d.data[ib], d.data[ia]
	}
}
