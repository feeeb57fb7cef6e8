/*
 * kinetic.go, part of pwharv.
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

//Package kinetic computes the kinetic energy of a plane-wave calculation from the
//momentum distribution of its occupied orbitals.
//
//At each k-point, n(G) = sum_b w_b |c_b(G)|^2 and the kinetic energy is
//sum_G |G+k|^2 n(G). The total is λ times the average over k-points, with λ = 1/2
//in Hartree atomic units (see pw.HartreeLambda).
package kinetic

import (
	"fmt"

	pw "github.com/pwharv/pwharv"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// MomentumDistribution returns n(G) = sum_b w_b |c_b(G)|^2 for one k-point. For spinors,
// the result is as long as the bands, i.e. twice the number of plane waves.
func MomentumDistribution(ev *pw.Coefficients, wts []float64) ([]float64, error) {
	nbnd, width := ev.Dims()
	if len(wts) != nbnd {
		return nil, pw.NewShapeError("occupations", len(wts), nbnd)
	}
	nk := make([]float64, width)
	for b, w := range wts {
		if w == 0 {
			continue
		}
		for i, c := range ev.Band(b) {
			nk[i] += w * (real(c)*real(c) + imag(c)*imag(c))
		}
	}
	return nk, nil
}

// PerKPoint returns sum_G |G+k|^2 n(G) for every k-point. recip has the reciprocal basis vectors
// as rows and kfracs are the k-points in fractional coordinates.
func PerKPoint(recip mat.Matrix, kfracs [][3]float64, gvl []pw.GVectors, evl []*pw.Coefficients, wtl [][]float64) ([]float64, error) {
	if r, c := recip.Dims(); r != 3 || c != 3 {
		return nil, pw.NewConfigurationError("reciprocal lattice of %dx%d, not 3x3", r, c)
	}
	nkpt := len(kfracs)
	if len(gvl) != nkpt || len(evl) != nkpt || len(wtl) != nkpt {
		return nil, pw.NewShapeError(fmt.Sprintf("per k-point inputs for %d k-points (G-vectors, coefficients, occupations)", nkpt), minLen(len(gvl), len(evl), len(wtl)), nkpt)
	}
	//everything is checked before computing anything
	for ik := range kfracs {
		if err := evl[ik].CheckWidth(gvl[ik].Len()); err != nil {
			return nil, pw.ErrDecorate(err, fmt.Sprintf("kinetic.PerKPoint: k-point %d", ik))
		}
		if nbnd, _ := evl[ik].Dims(); nbnd != len(wtl[ik]) {
			return nil, pw.NewShapeError(fmt.Sprintf("occupations of k-point %d", ik), len(wtl[ik]), nbnd)
		}
	}
	ret := make([]float64, nkpt)
	for ik, kfrac := range kfracs {
		npw := gvl[ik].Len()
		if npw == 0 {
			continue
		}
		k2 := pw.SquaredNorms(pw.Cartesian(gvl[ik], kfrac, recip))
		nk, err := MomentumDistribution(evl[ik], wtl[ik])
		if err != nil {
			return nil, err
		}
		if len(nk) == 2*npw {
			ret[ik] = floats.Dot(k2, nk[:npw]) + floats.Dot(k2, nk[npw:])
		} else {
			ret[ik] = floats.Dot(k2, nk)
		}
	}
	return ret, nil
}

func minLen(l ...int) int {
	m := l[0]
	for _, v := range l[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

// Compute returns the kinetic energy per k-point (without the λ factor) and
// lam times their mean.
func Compute(recip mat.Matrix, kfracs [][3]float64, gvl []pw.GVectors, evl []*pw.Coefficients, wtl [][]float64, lam float64) ([]float64, float64, error) {
	if len(kfracs) == 0 {
		return nil, 0, pw.NewConfigurationError("no k-points")
	}
	perk, err := PerKPoint(recip, kfracs, gvl, evl, wtl)
	if err != nil {
		return nil, 0, pw.ErrDecorate(err, "kinetic.Compute")
	}
	return perk, lam * stat.Mean(perk, nil), nil
}

// Calc computes the kinetic energy for the calculation described by md, with orbitals from ld.
func Calc(md pw.Metadata, ld pw.Loader, lam float64) ([]float64, float64, error) {
	gvl, evl, err := ld.LoadAll()
	if err != nil {
		return nil, 0, pw.ErrDecorate(err, "kinetic.Calc")
	}
	perk, t, err := Compute(md.ReciprocalLattice(), md.KFractions(), gvl, evl, md.Occupations(), lam)
	if err != nil {
		return nil, 0, pw.ErrDecorate(err, "kinetic.Calc")
	}
	return perk, t, nil
}
