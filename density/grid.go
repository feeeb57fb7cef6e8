/*
 * grid.go, part of pwharv.
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

package density

import (
	"fmt"

	pw "github.com/pwharv/pwharv"
	"gonum.org/v1/gonum/floats"
)

// Grid is a real function on the FFT mesh, stored row-major with x as the slowest axis.
// The densities produced by this package hold Ω·ρ(r), so their average over the
// mesh is the number of electrons in the cell.
type Grid struct {
	shape [3]int
	data  []float64
}

// NewGrid returns a zeroed grid.
func NewGrid(shape [3]int) *Grid {
	return &Grid{shape: shape, data: make([]float64, shape[0]*shape[1]*shape[2])}
}

// GridFromData returns a grid backed by data, which is not copied.
func GridFromData(shape [3]int, data []float64) (*Grid, error) {
	if n := shape[0] * shape[1] * shape[2]; len(data) != n {
		return nil, pw.NewShapeError(fmt.Sprintf("grid data for a %v mesh", shape), len(data), n)
	}
	return &Grid{shape: shape, data: data}, nil
}

func (G *Grid) Shape() [3]int {
	return G.shape
}

func (G *Grid) Len() int {
	return len(G.data)
}

// Data returns the underlying slice.
func (G *Grid) Data() []float64 {
	return G.data
}

func (G *Grid) index(i, j, k int) int {
	if i < 0 || j < 0 || k < 0 || i >= G.shape[0] || j >= G.shape[1] || k >= G.shape[2] {
		panic(fmt.Sprintf("density.Grid: (%d,%d,%d) out of range %v", i, j, k, G.shape))
	}
	return (i*G.shape[1]+j)*G.shape[2] + k
}

func (G *Grid) At(i, j, k int) float64 {
	return G.data[G.index(i, j, k)]
}

func (G *Grid) Set(i, j, k int, v float64) {
	G.data[G.index(i, j, k)] = v
}

// Copy returns a deep copy of the grid.
func (G *Grid) Copy() *Grid {
	d := make([]float64, len(G.data))
	copy(d, G.data)
	return &Grid{shape: G.shape, data: d}
}

func (G *Grid) Sum() float64 {
	return floats.Sum(G.data)
}

// Integral integrates the grid over the cell, in reduced coordinates. For the
// densities of this package, it is the number of electrons.
func (G *Grid) Integral() float64 {
	if len(G.data) == 0 {
		return 0
	}
	return G.Sum() / float64(len(G.data))
}

// Scale multiplies every value by f, in place.
func (G *Grid) Scale(f float64) {
	floats.Scale(f, G.data)
}

// Add adds other to the receiver, in place.
func (G *Grid) Add(other *Grid) error {
	if other.shape != G.shape {
		return pw.NewShapeError(fmt.Sprintf("grid added to a %v grid, shape %v", G.shape, other.shape), other.Len(), G.Len())
	}
	floats.Add(G.data, other.data)
	return nil
}

// PerVolume returns a copy of the grid divided by the cell volume, i.e.,
// the density in electrons per cubic bohr.
func (G *Grid) PerVolume(volume float64) *Grid {
	ret := G.Copy()
	ret.Scale(1 / volume)
	return ret
}

// PlanarAverage averages the grid over the planes perpendicular to axis (0, 1 or 2)
// and returns one value per plane.
func (G *Grid) PlanarAverage(axis int) ([]float64, error) {
	if axis < 0 || axis > 2 {
		return nil, pw.NewConfigurationError("axis %d for a planar average", axis)
	}
	ret := make([]float64, G.shape[axis])
	var c [3]int
	for c[0] = 0; c[0] < G.shape[0]; c[0]++ {
		for c[1] = 0; c[1] < G.shape[1]; c[1]++ {
			for c[2] = 0; c[2] < G.shape[2]; c[2]++ {
				ret[c[axis]] += G.data[(c[0]*G.shape[1]+c[1])*G.shape[2]+c[2]]
			}
		}
	}
	if len(ret) > 0 {
		floats.Scale(float64(len(ret))/float64(len(G.data)), ret)
	}
	return ret, nil
}
