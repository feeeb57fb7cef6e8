/*
 * kinetic_test.go, part of pwharv.
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

package kinetic

import (
	"errors"
	"math"
	"testing"

	pw "github.com/pwharv/pwharv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

var eye = mat.NewDense(3, 3, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1})

func coefs(Te *testing.T, nbnd, width int, data []complex128) *pw.Coefficients {
	c, err := pw.NewCoefficients(nbnd, width, data)
	require.NoError(Te, err)
	return c
}

func TestKineticZero(Te *testing.T) {
	perk, t, err := Compute(eye, [][3]float64{{0, 0, 0}}, []pw.GVectors{{{0, 0, 0}}},
		[]*pw.Coefficients{coefs(Te, 1, 1, []complex128{1})}, [][]float64{{1}}, pw.HartreeLambda)
	require.NoError(Te, err)
	assert.Equal(Te, []float64{0}, perk)
	assert.Equal(Te, 0.0, t)
}

func TestKineticPlaneWave(Te *testing.T) {
	//|G+k|^2 = 4 in three different ways
	cases := []struct {
		recip *mat.Dense
		k     [3]float64
		g     [3]int
	}{
		{eye, [3]float64{0, 0, 0}, [3]int{2, 0, 0}},
		{mat.NewDense(3, 3, []float64{4, 0, 0, 0, 1, 0, 0, 0, 1}), [3]float64{0.5, 0, 0}, [3]int{0, 0, 0}},
		{mat.NewDense(3, 3, []float64{0, 0, 2, 0, 1, 0, 1, 0, 0}), [3]float64{0, 0, 0}, [3]int{1, 0, 0}},
	}
	for i, c := range cases {
		perk, t, err := Compute(c.recip, [][3]float64{c.k}, []pw.GVectors{{c.g}},
			[]*pw.Coefficients{coefs(Te, 1, 1, []complex128{1i})}, [][]float64{{1}}, pw.HartreeLambda)
		require.NoError(Te, err)
		assert.InDelta(Te, 4.0, perk[0], 1e-12, "case %d", i)
		assert.InDelta(Te, 2.0, t, 1e-12, "case %d", i)
	}
}

func TestKineticAverage(Te *testing.T) {
	gvl := []pw.GVectors{{{0, 0, 0}, {1, 0, 0}}, {{0, 0, 0}, {0, 1, 1}}}
	s := complex(math.Sqrt(0.5), 0)
	evl := []*pw.Coefficients{
		coefs(Te, 2, 2, []complex128{s, s, 1, 0}),
		coefs(Te, 2, 2, []complex128{0, 1, 1, 0}),
	}
	wtl := [][]float64{{2, 1}, {1, 0}}
	perk, t, err := Compute(eye, [][3]float64{{0, 0, 0}, {0, 0, 0}}, gvl, evl, wtl, pw.RydbergLambda)
	require.NoError(Te, err)
	//first: 2*0.5*1 = 1; second: 1*1*2 = 2
	assert.InDeltaSlice(Te, []float64{1, 2}, perk, 1e-12)
	assert.InDelta(Te, 1.5, t, 1e-12)
}

func TestKineticSpinor(Te *testing.T) {
	gvl := []pw.GVectors{{{0, 0, 0}, {1, 0, 0}}}
	//up: all in G=(1,0,0), down: all in G=0 -> only the up half counts
	evl := []*pw.Coefficients{coefs(Te, 1, 4, []complex128{0, 0.6, 0.8, 0})}
	perk, _, err := Compute(eye, [][3]float64{{0, 0, 0}}, gvl, evl, [][]float64{{1}}, pw.HartreeLambda)
	require.NoError(Te, err)
	assert.InDelta(Te, 0.36, perk[0], 1e-12)
	nk, err := MomentumDistribution(evl[0], []float64{1})
	require.NoError(Te, err)
	assert.Len(Te, nk, 4)
}

func TestKineticErrors(Te *testing.T) {
	gvl := []pw.GVectors{{{0, 0, 0}, {1, 0, 0}}}
	var se *pw.ShapeError
	_, _, err := Compute(eye, [][3]float64{{0, 0, 0}}, gvl, []*pw.Coefficients{coefs(Te, 1, 3, nil)}, [][]float64{{1}}, 0.5)
	assert.True(Te, errors.As(err, &se), "width: %v", err)
	_, _, err = Compute(eye, [][3]float64{{0, 0, 0}}, gvl, []*pw.Coefficients{coefs(Te, 1, 2, nil)}, [][]float64{{1, 1}}, 0.5)
	assert.True(Te, errors.As(err, &se), "occupations: %v", err)
	_, _, err = Compute(eye, [][3]float64{{0, 0, 0}, {0, 0, 0}}, gvl, []*pw.Coefficients{coefs(Te, 1, 2, nil)}, [][]float64{{1}}, 0.5)
	assert.True(Te, errors.As(err, &se), "k-points: %v", err)
	var ce *pw.ConfigurationError
	_, _, err = Compute(eye, nil, nil, nil, nil, 0.5)
	assert.True(Te, errors.As(err, &ce))
	_, _, err = Compute(mat.NewDense(2, 2, nil), [][3]float64{{0, 0, 0}}, gvl, []*pw.Coefficients{coefs(Te, 1, 2, nil)}, [][]float64{{1}}, 0.5)
	assert.True(Te, errors.As(err, &ce))
}
