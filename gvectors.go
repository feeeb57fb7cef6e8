/*
 * gvectors.go, part of pwharv.
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

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// GVectors is an ordered set of Miller indices, each one identifying
// the reciprocal-lattice component of one plane wave.
type GVectors [][3]int

// Len returns the number of plane waves.
func (G GVectors) Len() int {
	return len(G)
}

// Equal compares the receiver with other, element by element, as floating point
// numbers with tolerance tol. If they are not equal, the returned string says why.
func (G GVectors) Equal(other GVectors, tol float64) (bool, string) {
	if len(G) != len(other) {
		return false, fmt.Sprintf("%d vs %d plane waves", len(G), len(other))
	}
	var a, b [3]float64
	for i, g := range G {
		for j := range g {
			a[j], b[j] = float64(g[j]), float64(other[i][j])
		}
		if !floats.EqualApprox(a[:], b[:], tol) {
			return false, fmt.Sprintf("G-vector %d is %v vs %v", i, g, other[i])
		}
	}
	return true, ""
}

// MaxAbs returns, for each axis, the largest absolute value of the Miller indices.
func (G GVectors) MaxAbs() [3]int {
	var ret [3]int
	for _, g := range G {
		for j, v := range g {
			if v < 0 {
				v = -v
			}
			if v > ret[j] {
				ret[j] = v
			}
		}
	}
	return ret
}

// GVectorsFromInts builds a GVectors from a flat, row-major, (n,3) slice.
func GVectorsFromInts(flat []int32) (GVectors, error) {
	if len(flat)%3 != 0 {
		return nil, NewShapeError("Miller indices", len(flat), 3*(len(flat)/3))
	}
	ret := make(GVectors, len(flat)/3)
	for i := range ret {
		ret[i] = [3]int{int(flat[3*i]), int(flat[3*i+1]), int(flat[3*i+2])}
	}
	return ret, nil
}

// Ints returns the Miller indices as a flat, row-major, (n,3) slice.
func (G GVectors) Ints() []int32 {
	ret := make([]int32, 0, 3*len(G))
	for _, g := range G {
		ret = append(ret, int32(g[0]), int32(g[1]), int32(g[2]))
	}
	return ret
}
