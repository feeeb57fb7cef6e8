/*
 * pw_test.go, part of pwharv.
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
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestGVectors(Te *testing.T) {
	a := GVectors{{0, 0, 0}, {1, -2, 3}, {-4, 0, 1}}
	ok, _ := a.Equal(GVectors{{0, 0, 0}, {1, -2, 3}, {-4, 0, 1}}, GVectorTol)
	assert.True(Te, ok)
	ok, why := a.Equal(GVectors{{0, 0, 0}, {1, -2, 3}}, GVectorTol)
	assert.False(Te, ok)
	fmt.Println("expected mismatch:", why)
	ok, why = a.Equal(GVectors{{0, 0, 0}, {1, 2, 3}, {-4, 0, 1}}, GVectorTol)
	assert.False(Te, ok)
	assert.Contains(Te, why, "G-vector 1")
	ok, _ = a.Equal(GVectors{{0, 0, 0}, {1, -2, 3}, {-4, 0, 2}}, GVectorTol)
	assert.False(Te, ok)
	assert.Equal(Te, [3]int{4, 2, 3}, a.MaxAbs())
	back, err := GVectorsFromInts(a.Ints())
	require.NoError(Te, err)
	assert.Equal(Te, a, back)
	_, err = GVectorsFromInts([]int32{1, 2})
	assert.Error(Te, err)
}

func TestCoefficients(Te *testing.T) {
	up, err := NewCoefficients(2, 3, []complex128{1, 2, 3, 4, 5, 6})
	require.NoError(Te, err)
	dn, err := NewCoefficients(2, 3, []complex128{7i, 8i, 9i, 10i, 11i, 12i})
	require.NoError(Te, err)
	both, err := Concat(up, dn)
	require.NoError(Te, err)
	n, w := both.Dims()
	assert.Equal(Te, 4, n)
	assert.Equal(Te, 3, w)
	assert.Equal(Te, []complex128{10i, 11i, 12i}, both.Band(3))
	u, d := both.SplitBands()
	assert.Equal(Te, up.RawData(), u.RawData())
	assert.Equal(Te, dn.RawData(), d.RawData())
	wu, wd := SplitWeights([]float64{1, 1, 0.5, 0})
	assert.Equal(Te, []float64{1, 1}, wu)
	assert.Equal(Te, []float64{0.5, 0}, wd)
	assert.NoError(Te, up.CheckWidth(3))
	assert.False(Te, up.Spinor(3))
	var se *ShapeError
	assert.True(Te, errors.As(up.CheckWidth(2), &se))
	_, err = NewCoefficients(2, 2, []complex128{1})
	assert.True(Te, errors.As(err, &se))
	other, _ := NewCoefficients(1, 2, nil)
	_, err = Concat(up, other)
	assert.Error(Te, err)
	assert.Panics(Te, func() { up.Band(2) })
}

func TestLattice(Te *testing.T) {
	b := mat.NewDense(3, 3, []float64{1, 1, 0, 0, 2, 0, 0, 0, 3})
	c := Cartesian(GVectors{{1, 0, 0}, {0, 1, -1}}, [3]float64{0.5, 0, 0}, b)
	assert.Equal(Te, []float64{1.5, 1.5, 0}, c.RawRowView(0))
	assert.Equal(Te, []float64{0.5, 2.5, -3}, c.RawRowView(1))
	assert.InDeltaSlice(Te, []float64{4.5, 15.5}, SquaredNorms(c), 1e-12)
	assert.InDelta(Te, math.Pow(2*math.Pi, 3)/6, CellVolume(b), 1e-9)
	assert.Nil(Te, Cartesian(nil, [3]float64{}, b))
}

func TestErrors(Te *testing.T) {
	var err error = NewMissingFileError(1, 2, []string{"save/wfc2.dat"})
	ErrDecorate(err, "Discover")
	ErrDecorate(err, "LoadAll")
	assert.Equal(Te, "found 1/2 wavefunction files, missing: save/wfc2.dat (Discover <- LoadAll)", err.Error())
	e, ok := err.(Error)
	require.True(Te, ok)
	assert.True(Te, e.Critical())
	assert.Equal(Te, []string{"Discover", "LoadAll"}, e.Decorate(""))
	for _, err := range []error{NewMismatchError(3, "x"), NewConfigurationError("mesh %v", [3]int{1, 2, 3}), NewShapeError("evc", 3, 4, 8)} {
		_, ok := err.(Error)
		assert.True(Te, ok, "%T", err)
		fmt.Println(err)
	}
	assert.Equal(Te, "evc: length 3, expected 4 or 8", NewShapeError("evc", 3, 4, 8).Error())
	plain := errors.New("plain")
	assert.Equal(Te, plain, ErrDecorate(plain, "x"))
	assert.Nil(Te, ErrDecorate(nil, "x"))
}
