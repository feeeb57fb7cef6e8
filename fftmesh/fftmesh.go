/*
 * fftmesh.go, part of pwharv.
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

//Package fftmesh reconstructs real-space orbitals from their plane-wave coefficients.
//
//A Mesh is a dense complex 3D buffer (row-major, x slowest) with one FFT plan per axis.
//Coefficients are scattered to the cells addressed by their Miller indices (negative
//indices wrap around, as usual for FFT grids) and the buffer is inverse-transformed
//without normalization, so a single plane wave of coefficient c has amplitude |c|
//everywhere in real space.
//
//A Mesh is scratch space that is cleared and reused on every call. It is not safe
//for concurrent use: concurrent workers must each get their own, for instance from a Pool.
package fftmesh

import (
	"fmt"

	pw "github.com/pwharv/pwharv"
	"gonum.org/v1/gonum/dsp/fourier"
)

// Mesh is a dense FFT mesh and its transform plans.
type Mesh struct {
	shape [3]int
	n     int
	psi   []complex128
	plans [3]*fourier.CmplxFFT
	line  []complex128
	mark  []uint32 //cells filled by the current Scatter are marked with gen
	gen   uint32
}

// New returns a zeroed mesh of the given shape.
func New(shape [3]int) (*Mesh, error) {
	if err := CheckShape(shape); err != nil {
		return nil, err
	}
	M := &Mesh{shape: shape, n: shape[0] * shape[1] * shape[2]}
	M.psi = make([]complex128, M.n)
	M.mark = make([]uint32, M.n)
	longest := 0
	for i, v := range shape {
		M.plans[i] = fourier.NewCmplxFFT(v)
		if v > longest {
			longest = v
		}
	}
	M.line = make([]complex128, longest)
	return M, nil
}

// CheckShape returns a *pw.ConfigurationError unless all the dimensions are positive.
func CheckShape(shape [3]int) error {
	for _, v := range shape {
		if v <= 0 {
			return pw.NewConfigurationError("invalid FFT mesh %v", shape)
		}
	}
	return nil
}

// Shape returns the shape of the mesh.
func (M *Mesh) Shape() [3]int {
	return M.shape
}

// Len returns the total number of cells.
func (M *Mesh) Len() int {
	return M.n
}

// Data returns the buffer. It is not a copy.
func (M *Mesh) Data() []complex128 {
	return M.psi
}

// Clear zeroes the buffer.
func (M *Mesh) Clear() {
	for i := range M.psi {
		M.psi[i] = 0
	}
}

// Index returns the position in the buffer of the cell for the Miller index g, which must
// satisfy -n <= g < n on each axis of length n. Two indices that differ by n along an axis
// share a cell; Check rejects sets where that happens.
func (M *Mesh) Index(g [3]int) (int, error) {
	var c [3]int
	for i, v := range g {
		n := M.shape[i]
		if v < -n || v >= n {
			return -1, pw.NewConfigurationError("Miller index %v does not fit in the FFT mesh %v, the mesh is too small", g, M.shape)
		}
		if v < 0 {
			v += n
		}
		c[i] = v
	}
	return (c[0]*M.shape[1]+c[1])*M.shape[2] + c[2], nil
}

// Check returns a *pw.ConfigurationError if any of the Miller indices in gvs
// falls outside the mesh, or if two of them wrap to the same cell.
func (M *Mesh) Check(gvs pw.GVectors) error {
	return CheckGVectors(M.shape, gvs)
}

// CheckGVectors is like Mesh.Check, for a mesh with the given shape.
func CheckGVectors(shape [3]int, gvs pw.GVectors) error {
	m := gvs.MaxAbs()
	for i := range m {
		//the most negative index allowed is -n, the most positive, n-1
		if m[i] > shape[i] {
			return pw.NewConfigurationError("Miller indices up to %d along axis %d do not fit in the FFT mesh %v, the mesh is too small", m[i], i, shape)
		}
	}
	seen := make(map[[3]int]int, len(gvs))
	for j, g := range gvs {
		var c [3]int
		for i, v := range g {
			if v >= shape[i] {
				return pw.NewConfigurationError("Miller index %v does not fit in the FFT mesh %v, the mesh is too small", g, shape)
			}
			if v < 0 {
				v += shape[i]
			}
			c[i] = v
		}
		if prev, ok := seen[c]; ok {
			return pw.NewConfigurationError("Miller indices %v and %v share a cell of the FFT mesh %v, the mesh is too small", gvs[prev], g, shape)
		}
		seen[c] = j
	}
	return nil
}

// Scatter clears the mesh and puts each coefficient in the cell of its Miller index.
// It returns a *pw.ConfigurationError if an index is out of the mesh or two indices
// share a cell.
func (M *Mesh) Scatter(gvs pw.GVectors, coef []complex128) error {
	if len(coef) != len(gvs) {
		return pw.NewShapeError("coefficients to scatter", len(coef), len(gvs))
	}
	M.Clear()
	M.gen++
	if M.gen == 0 {
		for i := range M.mark {
			M.mark[i] = 0
		}
		M.gen = 1
	}
	for i, g := range gvs {
		idx, err := M.Index(g)
		if err != nil {
			return err
		}
		if M.mark[idx] == M.gen {
			return pw.NewConfigurationError("Miller index %v wraps to a cell already used in the FFT mesh %v, the mesh is too small", g, M.shape)
		}
		M.mark[idx] = M.gen
		M.psi[idx] = coef[i]
	}
	return nil
}

// Gather puts in dst the values of the cells addressed by gvs. If dst is nil or too short,
// a new slice is allocated.
func (M *Mesh) Gather(gvs pw.GVectors, dst []complex128) ([]complex128, error) {
	if len(dst) < len(gvs) {
		dst = make([]complex128, len(gvs))
	}
	dst = dst[:len(gvs)]
	for i, g := range gvs {
		idx, err := M.Index(g)
		if err != nil {
			return nil, err
		}
		dst[i] = M.psi[idx]
	}
	return dst, nil
}

// InvFFT scatters coef, the coefficients of one orbital (or one spinor component) for
// the plane waves gvs, and transforms them to real space. The transform is not normalized,
// i.e. psi(r) = sum_G c(G) exp(iG·r). The returned slice is the mesh buffer, so it is only
// valid until the next call that uses the mesh.
func (M *Mesh) InvFFT(gvs pw.GVectors, coef []complex128) ([]complex128, error) {
	if err := M.Scatter(gvs, coef); err != nil {
		return nil, err
	}
	M.transform(true)
	return M.psi, nil
}

// FwdFFT transforms psir, a real-space function on the mesh, to reciprocal space, normalized so
// that it undoes InvFFT. psir may be the mesh buffer itself. The result is left in the buffer
// and returned.
func (M *Mesh) FwdFFT(psir []complex128) ([]complex128, error) {
	if len(psir) != M.n {
		return nil, pw.NewShapeError(fmt.Sprintf("real-space function on a %v mesh", M.shape), len(psir), M.n)
	}
	copy(M.psi, psir)
	M.transform(false)
	f := complex(1/float64(M.n), 0)
	for i := range M.psi {
		M.psi[i] *= f
	}
	return M.psi, nil
}

// AddDensity adds wt*|psi|^2, for the current content of the buffer, to dst.
func (M *Mesh) AddDensity(dst []float64, wt float64) {
	if len(dst) != M.n {
		panic(fmt.Sprintf("fftmesh: density of length %d for a mesh of %d cells", len(dst), M.n))
	}
	for i, v := range M.psi {
		re, im := real(v), imag(v)
		dst[i] += wt * (re*re + im*im)
	}
}

// transform applies the 1D transform along the three axes.
func (M *Mesh) transform(inverse bool) {
	nx, ny, nz := M.shape[0], M.shape[1], M.shape[2]
	do := func(p *fourier.CmplxFFT, l []complex128) {
		if inverse {
			p.Sequence(l, l)
		} else {
			p.Coefficients(l, l)
		}
	}
	//z is contiguous
	for b := 0; b < M.n; b += nz {
		do(M.plans[2], M.psi[b:b+nz])
	}
	line := M.line[:ny]
	for i := 0; i < nx; i++ {
		for k := 0; k < nz; k++ {
			base := i*ny*nz + k
			for j := range line {
				line[j] = M.psi[base+j*nz]
			}
			do(M.plans[1], line)
			for j, v := range line {
				M.psi[base+j*nz] = v
			}
		}
	}
	line = M.line[:nx]
	stride := ny * nz
	for base := 0; base < stride; base++ {
		for i := range line {
			line[i] = M.psi[base+i*stride]
		}
		do(M.plans[0], line)
		for i, v := range line {
			M.psi[base+i*stride] = v
		}
	}
}
