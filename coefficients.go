/*
 * coefficients.go, part of pwharv.
 *
 * Copyright 2024 The pwharv Authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package pw

import "fmt"

// Coefficients is a band-major matrix of plane-wave coefficients. Each
// row is one band. For non-collinear spinors the rows are twice the number of
// plane waves long, the first half being the up component.
type Coefficients struct {
	nbnd  int
	width int
	data  []complex128
}

// NewCoefficients returns a (nbnd, width) Coefficients backed by data, which is not copied.
// If data is nil, a zeroed slice is allocated.
func NewCoefficients(nbnd, width int, data []complex128) (*Coefficients, error) {
	if data == nil {
		data = make([]complex128, nbnd*width)
	}
	if len(data) != nbnd*width {
		return nil, NewShapeError(fmt.Sprintf("coefficients for %d bands of width %d", nbnd, width), len(data), nbnd*width)
	}
	return &Coefficients{nbnd: nbnd, width: width, data: data}, nil
}

// Dims returns the number of bands and the length of each band.
func (C *Coefficients) Dims() (int, int) {
	return C.nbnd, C.width
}

// Band returns a slice with the coefficients of band i. It is not a copy.
func (C *Coefficients) Band(i int) []complex128 {
	if i < 0 || i >= C.nbnd {
		panic(fmt.Sprintf("pw.Coefficients: band %d out of range [0,%d)", i, C.nbnd))
	}
	return C.data[i*C.width : (i+1)*C.width]
}

// RawData returns the underlying slice.
func (C *Coefficients) RawData() []complex128 {
	return C.data
}

// Spinor returns true if the bands are two-component spinors for npw plane waves.
func (C *Coefficients) Spinor(npw int) bool {
	return C.width == 2*npw && npw > 0
}

// CheckWidth returns a ShapeError unless the band length is npw or 2*npw.
func (C *Coefficients) CheckWidth(npw int) error {
	if C.width != npw && C.width != 2*npw {
		return NewShapeError("coefficients per band", C.width, npw, 2*npw)
	}
	return nil
}

// Concat returns a new Coefficients with the bands of up followed by those of dn.
func Concat(up, dn *Coefficients) (*Coefficients, error) {
	if up.width != dn.width {
		return nil, NewShapeError("down channel coefficients per band", dn.width, up.width)
	}
	data := make([]complex128, 0, len(up.data)+len(dn.data))
	data = append(data, up.data...)
	data = append(data, dn.data...)
	return &Coefficients{nbnd: up.nbnd + dn.nbnd, width: up.width, data: data}, nil
}

// SplitBands splits the receiver at the middle band. The first half are the
// up bands and the second the down ones, the order in which Concat puts them.
// The returned values are views of the receiver.
func (C *Coefficients) SplitBands() (*Coefficients, *Coefficients) {
	h := C.nbnd / 2
	up := &Coefficients{nbnd: h, width: C.width, data: C.data[:h*C.width]}
	dn := &Coefficients{nbnd: C.nbnd - h, width: C.width, data: C.data[h*C.width:]}
	return up, dn
}

// SplitWeights splits a weight vector at its middle, like SplitBands does with bands.
func SplitWeights(w []float64) ([]float64, []float64) {
	h := len(w) / 2
	return w[:h], w[h:]
}
