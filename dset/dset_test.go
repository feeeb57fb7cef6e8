/*
 * dset_test.go, part of pwharv.
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

package dset

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDsetFiles(Te *testing.T) {
	dir := Te.TempDir()
	miller := []int32{0, 0, 0, 1, 0, -1, -2, 3, 1}
	evc := []complex128{1 + 2i, -0.5i, 3, 0.25 - 0.25i, 0, 1e-9 + 1e9i}
	for _, ext := range []string{".dat", ".zst", ".gz", ".lzw", ".flate"} {
		name := filepath.Join(dir, "wfc1"+ext)
		err := WriteFile(name, NewInts("MillerIndices", miller, 3, 3), NewComplex("evc", 2, 3, evc))
		require.NoError(Te, err, ext)
		sets, err := ReadFile(name)
		require.NoError(Te, err, ext)
		fmt.Println("read", name, len(sets), "datasets")
		g := sets["MillerIndices"]
		require.NotNil(Te, g)
		assert.Equal(Te, []int{3, 3}, g.Shape)
		assert.Equal(Te, miller, g.Ints)
		c, rows, cols, err := sets["evc"].Complex()
		require.NoError(Te, err)
		assert.Equal(Te, 2, rows)
		assert.Equal(Te, 3, cols)
		assert.Equal(Te, evc, c)
	}
}

func TestDsetCompression(Te *testing.T) {
	cases := map[string]string{
		"a.zst": "zst", "a.ZSTD": "zst", "a.gz": "gz", "a.lzw": "lzw", "a.flate": "flate", "a.dat": "", "a": "",
	}
	for f, want := range cases {
		if got := Compression(f); got != want {
			Te.Errorf("Compression(%s)=%q, want %q", f, got, want)
		}
	}
}

func TestDsetErrors(Te *testing.T) {
	var b bytes.Buffer
	bad := NewFloats("rho", []float64{1, 2, 3}, 2, 2)
	assert.Error(Te, Write(&b, bad))
	_, err := Read(bytes.NewReader([]byte("HDF5....")))
	assert.Error(Te, err)
	_, _, _, err = NewFloats("odd", []float64{1, 2, 3}, 3).Complex()
	assert.Error(Te, err)
	name := filepath.Join(Te.TempDir(), "trunc.dat")
	require.NoError(Te, WriteFile(name, NewFloats("rho", []float64{1, 2, 3, 4}, 2, 2)))
	raw, err := os.ReadFile(name)
	require.NoError(Te, err)
	_, err = Read(bytes.NewReader(raw[:len(raw)-5]))
	assert.Error(Te, err)
}

// header returns a file with one float64 dataset of the given shape and no data.
func header(shape ...uint64) []byte {
	var b bytes.Buffer
	le := binary.LittleEndian
	b.WriteString("PWDS")
	binary.Write(&b, le, uint32(1))
	binary.Write(&b, le, uint32(1))
	binary.Write(&b, le, uint16(3))
	b.WriteString("rho")
	b.Write([]byte{Float64, byte(len(shape))})
	for _, d := range shape {
		binary.Write(&b, le, d)
	}
	return b.Bytes()
}

//Corrupt shapes are rejected before anything is allocated.
func TestDsetBadShape(Te *testing.T) {
	for _, shape := range [][]uint64{
		{1 << 40},
		{math.MaxUint64},
		{1 << 31, 1 << 31},
		{1 << 20, 1 << 20, 1 << 20},
		{math.MaxInt32, 5},
	} {
		_, err := Read(bytes.NewReader(header(shape...)))
		if assert.Error(Te, err, "%v", shape) {
			assert.Contains(Te, err.Error(), "too large", "%v", shape)
		}
	}
	//a valid header with the data missing is an IO error, not a size one
	_, err := Read(bytes.NewReader(header(2, 3)))
	if assert.Error(Te, err) {
		assert.NotContains(Te, err.Error(), "too large")
	}
}
