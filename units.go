/*
 * units.go, part of pwharv.
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

// The kinetic energy operator is T = -λ∇². The value of λ depends on the units.
const (
	HartreeLambda = 0.5 //Hartree atomic units, T = -½∇²
	RydbergLambda = 1.0 //Rydberg atomic units, T = -∇²
)

const (
	//DefaultWeightTol is the occupation below which a band is not added to the density.
	DefaultWeightTol = 1e-8
	//GVectorTol is the tolerance used when comparing the G-vectors of both spin channels.
	GVectorTol = 1e-8
)

// Spin channel labels, as used in the wavefunction file names.
const (
	SpinUp   = "up"
	SpinDown = "dw"
)
