/*
 * density.go, part of pwharv.
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

//Package density accumulates the electron density of a plane-wave calculation on
//its FFT mesh, from the coefficients of the occupied orbitals.
//
//For each k-point and each band with an occupation above a threshold, the orbital is
//reconstructed in real space and its weighted squared modulus is added to the grid. The
//result is divided by the number of k-points. Note that this is a plain average: the
//symmetry weights of the k-points are not used, which is right only for a uniform mesh
//of k-points with no symmetry reduction.
package density

import (
	"context"
	"fmt"

	pw "github.com/pwharv/pwharv"
	"github.com/pwharv/pwharv/fftmesh"
	"golang.org/x/sync/errgroup"
)

// Options for the density accumulation.
type Options struct {
	WeightTol float64 //bands with occupations not larger than this are skipped
	Workers   int     //k-points are processed concurrently if larger than 1
}

// DefaultOptions returns the default options: a weight threshold of 1e-8 and one worker.
func DefaultOptions() *Options {
	O := new(Options)
	O.SetDefaults()
	return O
}

func (O *Options) SetDefaults() {
	O.WeightTol = pw.DefaultWeightTol
	O.Workers = 1
}

// Validate checks, before any work is done, that the per k-point inputs agree with each
// other and with the mesh.
func Validate(shape [3]int, gvl []pw.GVectors, evl []*pw.Coefficients, wtl [][]float64) error {
	if err := fftmesh.CheckShape(shape); err != nil {
		return err
	}
	if len(gvl) == 0 {
		return pw.NewConfigurationError("no k-points")
	}
	if len(evl) != len(gvl) {
		return pw.NewShapeError("coefficient sets (one per k-point)", len(evl), len(gvl))
	}
	if len(wtl) != len(gvl) {
		return pw.NewShapeError("occupation vectors (one per k-point)", len(wtl), len(gvl))
	}
	for ik, gvs := range gvl {
		if err := fftmesh.CheckGVectors(shape, gvs); err != nil {
			return pw.ErrDecorate(err, fmt.Sprintf("k-point %d", ik))
		}
		if err := evl[ik].CheckWidth(gvs.Len()); err != nil {
			return pw.ErrDecorate(err, fmt.Sprintf("k-point %d", ik))
		}
		if nbnd, _ := evl[ik].Dims(); nbnd != len(wtl[ik]) {
			return pw.NewShapeError(fmt.Sprintf("occupations of k-point %d", ik), len(wtl[ik]), nbnd)
		}
	}
	return nil
}

// RhoOfR returns the density for the given mesh shape, G-vectors, coefficients and occupations (one
// element per k-point in each slice). If opts is nil, DefaultOptions are used.
func RhoOfR(shape [3]int, gvl []pw.GVectors, evl []*pw.Coefficients, wtl [][]float64, opts *Options) (*Grid, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if err := Validate(shape, gvl, evl, wtl); err != nil {
		return nil, pw.ErrDecorate(err, "density.RhoOfR")
	}
	var rho *Grid
	var err error
	if opts.Workers > 1 && len(gvl) > 1 {
		rho, err = rhoParallel(shape, gvl, evl, wtl, opts)
	} else {
		rho, err = rhoSerial(shape, gvl, evl, wtl, opts)
	}
	if err != nil {
		return nil, pw.ErrDecorate(err, "density.RhoOfR")
	}
	rho.Scale(1 / float64(len(gvl)))
	return rho, nil
}

func rhoSerial(shape [3]int, gvl []pw.GVectors, evl []*pw.Coefficients, wtl [][]float64, opts *Options) (*Grid, error) {
	rho := NewGrid(shape)
	M, err := fftmesh.New(shape)
	if err != nil {
		return nil, err
	}
	for ik, gvs := range gvl {
		if err := addKPoint(M, rho.data, gvs, evl[ik], wtl[ik], opts.WeightTol); err != nil {
			return nil, err
		}
	}
	return rho, nil
}

// rhoParallel deals the k-points round-robin to the workers. Each worker has its
// own mesh and partial grid; the partial grids are added in worker order, so the result
// doesn't depend on scheduling.
func rhoParallel(shape [3]int, gvl []pw.GVectors, evl []*pw.Coefficients, wtl [][]float64, opts *Options) (*Grid, error) {
	workers := opts.Workers
	if workers > len(gvl) {
		workers = len(gvl)
	}
	pool, err := fftmesh.NewPool(shape, workers)
	if err != nil {
		return nil, err
	}
	partial := make([]*Grid, workers)
	g, ctx := errgroup.WithContext(context.Background())
	for w := 0; w < workers; w++ {
		w := w // per-iteration copy; go directive lowered to 1.21 for the local toolchain
		g.Go(func() error {
			M := pool.Get()
			defer pool.Put(M)
			part := NewGrid(shape)
			for ik := w; ik < len(gvl); ik += workers {
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := addKPoint(M, part.data, gvl[ik], evl[ik], wtl[ik], opts.WeightTol); err != nil {
					return err
				}
			}
			partial[w] = part
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	rho := partial[0]
	for _, p := range partial[1:] {
		if err := rho.Add(p); err != nil {
			return nil, err
		}
	}
	return rho, nil
}

// addKPoint adds wt*|psi|^2 for every band of one k-point with weight above tol.
// Spinor components are reconstructed separately and both added.
func addKPoint(M *fftmesh.Mesh, dst []float64, gvs pw.GVectors, ev *pw.Coefficients, wts []float64, tol float64) error {
	npw := gvs.Len()
	spinor := ev.Spinor(npw)
	for b, wt := range wts {
		if wt <= tol {
			continue
		}
		band := ev.Band(b)
		if spinor {
			for _, half := range [2][]complex128{band[:npw], band[npw:]} {
				if _, err := M.InvFFT(gvs, half); err != nil {
					return err
				}
				M.AddDensity(dst, wt)
			}
			continue
		}
		if _, err := M.InvFFT(gvs, band); err != nil {
			return err
		}
		M.AddDensity(dst, wt)
	}
	return nil
}

// SpinRhoOfR returns the up and down densities. The coefficients and occupations of each
// k-point must hold the up bands followed by the down bands, as wfc.Store.LoadAll gives them,
// and they are split in halves. lsda must be true, otherwise a *pw.ConfigurationError is returned.
func SpinRhoOfR(shape [3]int, gvl []pw.GVectors, evl []*pw.Coefficients, wtl [][]float64, lsda bool, opts *Options) (*Grid, *Grid, error) {
	if !lsda {
		err := pw.NewConfigurationError("cannot calculate spin-resolved density for lsda=%v", lsda)
		return nil, nil, pw.ErrDecorate(err, "density.SpinRhoOfR")
	}
	if len(evl) != len(gvl) || len(wtl) != len(gvl) {
		return nil, nil, pw.ErrDecorate(Validate(shape, gvl, evl, wtl), "density.SpinRhoOfR")
	}
	evup := make([]*pw.Coefficients, len(evl))
	evdn := make([]*pw.Coefficients, len(evl))
	wtup := make([][]float64, len(wtl))
	wtdn := make([][]float64, len(wtl))
	for ik := range evl {
		evup[ik], evdn[ik] = evl[ik].SplitBands()
		wtup[ik], wtdn[ik] = pw.SplitWeights(wtl[ik])
	}
	//both halves are validated before any FFT
	if err := Validate(shape, gvl, evup, wtup); err != nil {
		return nil, nil, pw.ErrDecorate(err, "density.SpinRhoOfR: up")
	}
	if err := Validate(shape, gvl, evdn, wtdn); err != nil {
		return nil, nil, pw.ErrDecorate(err, "density.SpinRhoOfR: down")
	}
	up, err := RhoOfR(shape, gvl, evup, wtup, opts)
	if err != nil {
		return nil, nil, pw.ErrDecorate(err, "density.SpinRhoOfR")
	}
	dn, err := RhoOfR(shape, gvl, evdn, wtdn, opts)
	if err != nil {
		return nil, nil, pw.ErrDecorate(err, "density.SpinRhoOfR")
	}
	return up, dn, nil
}

// Calc obtains the density of the calculation described by md, with the orbitals given by ld.
// It returns one grid, or two (up and down) if spinResolved is true. The spin request is checked
// against md before anything is loaded.
func Calc(md pw.Metadata, ld pw.Loader, spinResolved bool, opts *Options) ([]*Grid, error) {
	if spinResolved && !md.SpinPolarized() {
		err := pw.NewConfigurationError("cannot calculate spin-resolved density for lsda=%v", md.SpinPolarized())
		return nil, pw.ErrDecorate(err, "density.Calc")
	}
	gvl, evl, err := ld.LoadAll()
	if err != nil {
		return nil, pw.ErrDecorate(err, "density.Calc")
	}
	shape := md.MeshShape()
	wtl := md.Occupations()
	if spinResolved {
		up, dn, err := SpinRhoOfR(shape, gvl, evl, wtl, true, opts)
		if err != nil {
			return nil, pw.ErrDecorate(err, "density.Calc")
		}
		return []*Grid{up, dn}, nil
	}
	rho, err := RhoOfR(shape, gvl, evl, wtl, opts)
	if err != nil {
		return nil, pw.ErrDecorate(err, "density.Calc")
	}
	return []*Grid{rho}, nil
}

// FromChargeG returns the real part of the inverse transform of rhog, the plane-wave
// components of a density (e.g. the "rhotot_g" dataset of a charge-density file).
// It uses the same convention as the orbitals, so a density with only the G=0 component
// c is c everywhere.
func FromChargeG(shape [3]int, gvs pw.GVectors, rhog []complex128) (*Grid, error) {
	M, err := fftmesh.New(shape)
	if err != nil {
		return nil, err
	}
	if err := M.Check(gvs); err != nil {
		return nil, pw.ErrDecorate(err, "density.FromChargeG")
	}
	psi, err := M.InvFFT(gvs, rhog)
	if err != nil {
		return nil, pw.ErrDecorate(err, "density.FromChargeG")
	}
	rho := NewGrid(shape)
	for i, v := range psi {
		rho.data[i] = real(v)
	}
	return rho, nil
}
