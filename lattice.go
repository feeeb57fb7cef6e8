/*
 * lattice.go, part of pwharv.
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
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// KPoint is a point of the Brillouin zone, with the occupations of its bands.
// Weight is the symmetry weight, which the density accumulation does not use.
type KPoint struct {
	Index       int
	Frac        [3]float64
	Weight      float64
	Occupations []float64
}

// Cartesian returns a (npw,3) matrix with the Cartesian vectors (G+k)·B, where the
// rows of recip, B, are the reciprocal basis vectors and k is given in fractional coordinates.
func Cartesian(gvs GVectors, kfrac [3]float64, recip mat.Matrix) *mat.Dense {
	npw := len(gvs)
	if npw == 0 {
		return nil
	}
	frac := mat.NewDense(npw, 3, nil)
	for i, g := range gvs {
		for j := 0; j < 3; j++ {
			frac.Set(i, j, float64(g[j])+kfrac[j])
		}
	}
	ret := mat.NewDense(npw, 3, nil)
	ret.Mul(frac, recip)
	return ret
}

// SquaredNorms returns the squared norm of each row of m.
func SquaredNorms(m *mat.Dense) []float64 {
	if m == nil {
		return nil
	}
	r, _ := m.Dims()
	ret := make([]float64, r)
	for i := range ret {
		row := m.RawRowView(i)
		ret[i] = floats.Dot(row, row)
	}
	return ret
}

// CellVolume returns the volume of the real-space cell that corresponds to the
// reciprocal lattice recip, (2π)³/|det B|.
func CellVolume(recip mat.Matrix) float64 {
	return math.Pow(2*math.Pi, 3) / math.Abs(mat.Det(recip))
}
