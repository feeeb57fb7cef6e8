/*
 * doc.go, part of pwharv.
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

/*Package pw is the root package of the pwharv library. It holds the data model shared by
the rest of the packages: Miller-index sets, plane-wave coefficient matrices, k-points,
reciprocal-lattice helpers, the unit constants and the error types used across the library.

pwharv post-processes plane-wave electronic structure calculations (the pwscf.save
directory of a Quantum Espresso run, converted to the dset container). It reconstructs
real-space orbitals from their sparse reciprocal-space coefficients and aggregates them into
observables that quantum Monte Carlo workflows need.


	**pwharv capabilities**

    Finds and reads the per k-point/spin wavefunction files, checking that every
	expected file exists and that the up and down channels share their G-vectors.

    Reconstructs real-space orbitals on a dense FFT mesh (package fftmesh).

    Accumulates the electron density, total or spin-resolved, serially or with
	one FFT arena per worker (package density).

    Computes the kinetic energy from the momentum distribution (package kinetic).

    Reads the calculation metadata from a YAML file (package meta) and plots
	planar averages and per k-point energies (package pwplot).

The library uses Hartree atomic units unless a function says otherwise.

*/
package pw
