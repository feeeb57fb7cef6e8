/*
 * wfc_test.go, part of pwharv.
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

package wfc

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	pw "github.com/pwharv/pwharv"
	"github.com/pwharv/pwharv/dset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func coefs(Te *testing.T, nbnd, width int, first complex128) *pw.Coefficients {
	data := make([]complex128, nbnd*width)
	for i := range data {
		data[i] = first + complex(float64(i), 0)
	}
	c, err := pw.NewCoefficients(nbnd, width, data)
	require.NoError(Te, err)
	return c
}

var gvs = pw.GVectors{{0, 0, 0}, {1, 0, 0}, {-1, 0, 0}, {0, 1, -1}}

func TestWfcNames(Te *testing.T) {
	S := New("out/pwscf.save", 2, true)
	exp := S.Expected()
	want := []string{"wfcup1.dat", "wfcup2.dat", "wfcdw1.dat", "wfcdw2.dat"}
	require.Len(Te, exp, len(want))
	for i, v := range want {
		assert.Equal(Te, filepath.Join("out/pwscf.save", v), exp[i])
	}
	S = New("save", 3, false)
	S.Ext = ".zst"
	assert.Equal(Te, []string{"save/wfc1.zst", "save/wfc2.zst", "save/wfc3.zst"}, S.Expected())
}

func TestWfcMissing(Te *testing.T) {
	dir := Te.TempDir()
	var logs bytes.Buffer
	S := New(dir, 2, true)
	S.Logger = slog.New(slog.NewTextHandler(&logs, nil))
	require.NoError(Te, WriteWfc(S.FileName(0, pw.SpinUp), gvs, coefs(Te, 2, 4, 0)))
	require.NoError(Te, WriteWfc(S.FileName(1, pw.SpinUp), gvs, coefs(Te, 2, 4, 0)))
	require.NoError(Te, WriteWfc(S.FileName(0, pw.SpinDown), gvs, coefs(Te, 2, 4, 0)))
	_, _, err := S.LoadAll()
	var mf *pw.MissingFileError
	require.True(Te, errors.As(err, &mf), "got %v", err)
	assert.Equal(Te, 3, mf.Found)
	assert.Equal(Te, 4, mf.Expected)
	assert.Equal(Te, []string{S.FileName(1, pw.SpinDown)}, mf.Missing)
	assert.Contains(Te, err.Error(), "found 3/4")
	assert.Contains(Te, logs.String(), "wfcdw2.dat")
	assert.Equal(Te, []string{"wfc.Discover", "wfc.LoadAll"}, mf.Decorate(""))
}

func TestWfcSpinConcat(Te *testing.T) {
	dir := Te.TempDir()
	S := New(dir, 2, true)
	S.Ext = ".zst"
	for ik := 0; ik < 2; ik++ {
		require.NoError(Te, WriteWfc(S.FileName(ik, pw.SpinUp), gvs, coefs(Te, 2, 4, 100)))
		require.NoError(Te, WriteWfc(S.FileName(ik, pw.SpinDown), gvs, coefs(Te, 3, 4, 200i)))
	}
	gvl, evl, err := S.LoadAll()
	require.NoError(Te, err)
	require.Len(Te, evl, 2)
	for ik := range evl {
		assert.Equal(Te, gvs, gvl[ik])
		nbnd, width := evl[ik].Dims()
		assert.Equal(Te, 5, nbnd)
		assert.Equal(Te, 4, width)
		assert.Equal(Te, complex(100, 0), evl[ik].Band(0)[0])
		assert.Equal(Te, complex(0, 200), evl[ik].Band(2)[0])
	}
}

func TestWfcMismatch(Te *testing.T) {
	dir := Te.TempDir()
	S := New(dir, 1, true)
	other := pw.GVectors{{0, 0, 0}, {1, 0, 0}, {-1, 0, 0}, {0, 1, 1}}
	require.NoError(Te, WriteWfc(S.FileName(0, pw.SpinUp), gvs, coefs(Te, 1, 4, 0)))
	require.NoError(Te, WriteWfc(S.FileName(0, pw.SpinDown), other, coefs(Te, 1, 4, 0)))
	_, _, err := S.LoadAll()
	var me *pw.MismatchError
	require.True(Te, errors.As(err, &me), "got %v", err)
	assert.Equal(Te, 0, me.KPoint)
	assert.True(Te, strings.Contains(me.Reason, "G-vector 3"))
}

func TestWfcShape(Te *testing.T) {
	name := filepath.Join(Te.TempDir(), "wfc1.dat")
	//3 coefficients per band for 4 plane waves.
	require.NoError(Te, dset.WriteFile(name,
		dset.NewInts(MillerName, gvs.Ints(), 4, 3),
		dset.NewComplex(EvcName, 1, 3, []complex128{1, 2, 3})))
	_, _, err := ReadWfc(name)
	var se *pw.ShapeError
	require.True(Te, errors.As(err, &se), "got %v", err)
	assert.Equal(Te, 3, se.Got)
	assert.Equal(Te, []int{4, 8}, se.Want)
	//spinors are fine
	require.NoError(Te, WriteWfc(name, gvs, coefs(Te, 2, 8, 0)))
	_, c, err := ReadWfc(name)
	require.NoError(Te, err)
	assert.True(Te, c.Spinor(gvs.Len()))
}

func TestWfcNoCollinear(Te *testing.T) {
	dir := Te.TempDir()
	S := New(dir, 1, false)
	require.NoError(Te, WriteWfc(S.FileName(0, ""), gvs, coefs(Te, 3, 4, 1i)))
	gvl, evl, err := S.LoadAll()
	require.NoError(Te, err)
	assert.Equal(Te, gvs, gvl[0])
	n, _ := evl[0].Dims()
	assert.Equal(Te, 3, n)
	_, _, err = S.Load(1, "")
	assert.Error(Te, err)
	require.NoError(Te, os.Remove(S.FileName(0, "")))
	_, err = S.Discover()
	assert.Error(Te, err)
}
