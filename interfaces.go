/*
 * interfaces.go, part of pwharv.
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

import "gonum.org/v1/gonum/mat"

// Metadata is the interface for anything that can describe a plane-wave
// calculation: the reciprocal lattice, the k-point list with its occupations,
// the FFT mesh and the spin treatment. Reading it from the program's own output
// is left to the implementations (see package meta).
type Metadata interface {

	//ReciprocalLattice returns a 3x3 matrix, each row is a reciprocal basis vector.
	ReciprocalLattice() *mat.Dense

	//KFractions returns the k-points in fractional (crystal) coordinates.
	KFractions() [][3]float64

	//Occupations returns, for each k-point, the occupation weight of every band.
	//For spin-polarized runs, the up bands come first, then the down ones.
	Occupations() [][]float64

	//MeshShape is the shape of the dense FFT mesh.
	MeshShape() [3]int

	//SpinPolarized is true for collinear spin-polarized (lsda) calculations.
	SpinPolarized() bool

	NKPoints() int
}

// Loader gives the G-vectors and coefficients of every k-point. For spin-polarized
// calculations the coefficients of both channels come concatenated along the band axis.
type Loader interface {
	LoadAll() ([]GVectors, []*Coefficients, error)
}

//Errors

// Error is the interface for errors that all packages in this library implement. The Decorate method allows to add and retrieve info from the
// error, without changing it's type or wrapping it around something else.
type Error interface {
	Error() string
	Decorate(string) []string //The slice should contain the functions in the calling stack, in the format "FunctionName: Extra info". An empty string doesn't get added.
	Critical() bool
}
