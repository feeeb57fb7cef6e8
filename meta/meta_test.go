/*
 * meta_test.go, part of pwharv.
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

package meta

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	pw "github.com/pwharv/pwharv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
prefix: si
lsda: true
mesh: [12, 12, 16]
reciprocal_lattice:
  - [1.0, 0.0, 0.0]
  - [0.0, 1.0, 0.0]
  - [0.0, 0.0, 0.5]
kpoints:
  - frac: [0.0, 0.0, 0.0]
    weight: 0.25
    occupations: [1, 1, 1, 0]
  - frac: [0.5, 0.0, 0.25]
    weight: 0.75
    occupations: [1, 0.5, 1, 0.5]
`

func TestMetaRead(Te *testing.T) {
	dir := Te.TempDir()
	fname := filepath.Join(dir, "si.yaml")
	require.NoError(Te, os.WriteFile(fname, []byte(sample), 0o644))
	M, err := Read(fname)
	require.NoError(Te, err)
	var md pw.Metadata = M
	assert.True(Te, md.SpinPolarized())
	assert.Equal(Te, 2, md.NKPoints())
	assert.Equal(Te, [3]int{12, 12, 16}, md.MeshShape())
	assert.Equal(Te, [3]float64{0.5, 0, 0.25}, md.KFractions()[1])
	assert.Equal(Te, []float64{1, 0.5, 1, 0.5}, md.Occupations()[1])
	assert.Equal(Te, 0.5, md.ReciprocalLattice().At(2, 2))
	assert.InDelta(Te, 3.0, M.Electrons(), 1e-12)
	assert.InDelta(Te, 2*math.Pow(2*math.Pi, 3), M.CellVolume(), 1e-9)
	assert.Equal(Te, filepath.Join(dir, "si.save"), M.SavePath())
	S := M.Store(".zst")
	assert.Equal(Te, filepath.Join(dir, "si.save", "wfcdw2.zst"), S.FileName(1, pw.SpinDown))
	k := M.PWKPoints()
	assert.Equal(Te, 1, k[1].Index)
	assert.Equal(Te, 0.75, k[1].Weight)
}

func TestMetaInvalid(Te *testing.T) {
	var ce *pw.ConfigurationError
	var se *pw.ShapeError
	_, err := Parse([]byte("mesh: [4, 0, 4]\n"))
	assert.True(Te, errors.As(err, &ce), "%v", err)
	_, err = Parse([]byte("mesh: [4, 4, 4]\nreciprocal_lattice: [[1,0,0],[0,1,0]]\n"))
	assert.True(Te, errors.As(err, &se), "%v", err)
	_, err = Parse([]byte("mesh: [4, 4, 4]\nreciprocal_lattice: [[1,0,0],[0,1,0],[1,1,0]]\n"))
	assert.True(Te, errors.As(err, &ce), "%v", err)
	noK := "mesh: [4, 4, 4]\nreciprocal_lattice: [[1,0,0],[0,1,0],[0,0,1]]\n"
	_, err = Parse([]byte(noK))
	assert.True(Te, errors.As(err, &ce), "%v", err)
	_, err = Parse([]byte(noK + "lsda: true\nkpoints: [{frac: [0,0,0], occupations: [1, 1, 0]}]\n"))
	assert.True(Te, errors.As(err, &se), "%v", err)
	_, err = Parse([]byte(noK + "kpoints: [{frac: [0,0,0], occupations: [1, -1]}]\n"))
	assert.True(Te, errors.As(err, &ce), "%v", err)
	_, err = Parse([]byte("mesh: {"))
	assert.Error(Te, err)
	M, err := Parse([]byte(noK + "kpoints: [{frac: [0,0,0], occupations: [2]}]\n"))
	require.NoError(Te, err)
	assert.Equal(Te, "pwscf.save", M.SavePath())
}
