/*
 * meta.go, part of pwharv.
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

//Package meta reads the description of a plane-wave calculation from a YAML file, and
//implements pw.Metadata with it. A file looks like:
//
//	prefix: pwscf
//	save_dir: pwscf.save
//	lsda: true
//	mesh: [24, 24, 24]
//	reciprocal_lattice:
//	  - [0.8, 0.0, 0.0]
//	  - [0.0, 0.8, 0.0]
//	  - [0.0, 0.0, 0.8]
//	kpoints:
//	  - frac: [0.0, 0.0, 0.0]
//	    weight: 1.0
//	    occupations: [1, 1, 0, 1, 0, 0]
//
//The reciprocal lattice vectors are rows, in inverse bohr. For lsda runs the occupations of
//the up bands come first. A relative save_dir is taken from the directory of the YAML file.
package meta

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	pw "github.com/pwharv/pwharv"
	"github.com/pwharv/pwharv/wfc"
	"gonum.org/v1/gonum/mat"
	"gopkg.in/yaml.v3"
)

// KPoint is one k-point of the YAML file.
type KPoint struct {
	Frac        [3]float64 `yaml:"frac"`
	Weight      float64    `yaml:"weight"`
	Occupations []float64  `yaml:"occupations"`
}

// Meta is the content of a metadata file.
type Meta struct {
	Prefix   string       `yaml:"prefix"`
	SaveDir  string       `yaml:"save_dir"`
	LSDA     bool         `yaml:"lsda"`
	Noncolin bool         `yaml:"noncolin"`
	Mesh     [3]int       `yaml:"mesh"`
	Recip    [][3]float64 `yaml:"reciprocal_lattice"`
	KPoints  []KPoint     `yaml:"kpoints"`

	dir string
}

// Read reads and validates the metadata file fname.
func Read(fname string) (*Meta, error) {
	b, err := os.ReadFile(fname)
	if err != nil {
		return nil, err
	}
	M, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	M.dir = filepath.Dir(fname)
	return M, nil
}

// Parse parses and validates YAML metadata.
func Parse(b []byte) (*Meta, error) {
	M := new(Meta)
	if err := yaml.Unmarshal(b, M); err != nil {
		return nil, err
	}
	if err := M.Validate(); err != nil {
		return nil, pw.ErrDecorate(err, "meta.Parse")
	}
	return M, nil
}

// Validate checks that the metadata is complete and consistent.
func (M *Meta) Validate() error {
	for _, v := range M.Mesh {
		if v <= 0 {
			return pw.NewConfigurationError("invalid FFT mesh %v", M.Mesh)
		}
	}
	if len(M.Recip) != 3 {
		return pw.NewShapeError("reciprocal lattice vectors", len(M.Recip), 3)
	}
	if math.Abs(mat.Det(M.ReciprocalLattice())) < 1e-12 {
		return pw.NewConfigurationError("singular reciprocal lattice %v", M.Recip)
	}
	if len(M.KPoints) == 0 {
		return pw.NewConfigurationError("no k-points")
	}
	for ik, k := range M.KPoints {
		if M.LSDA && len(k.Occupations)%2 != 0 {
			return pw.NewShapeError(fmt.Sprintf("occupations of k-point %d, lsda run", ik), len(k.Occupations), len(k.Occupations)+1)
		}
		for b, w := range k.Occupations {
			if w < 0 {
				return pw.NewConfigurationError("negative occupation %g for band %d of k-point %d", w, b, ik)
			}
		}
	}
	if M.LSDA && M.Noncolin {
		return pw.NewConfigurationError("lsda and noncolin can't both be set")
	}
	return nil
}

func (M *Meta) ReciprocalLattice() *mat.Dense {
	ret := mat.NewDense(3, 3, nil)
	for i, v := range M.Recip {
		ret.SetRow(i, v[:])
	}
	return ret
}

func (M *Meta) KFractions() [][3]float64 {
	ret := make([][3]float64, len(M.KPoints))
	for i, k := range M.KPoints {
		ret[i] = k.Frac
	}
	return ret
}

func (M *Meta) Occupations() [][]float64 {
	ret := make([][]float64, len(M.KPoints))
	for i, k := range M.KPoints {
		ret[i] = k.Occupations
	}
	return ret
}

func (M *Meta) MeshShape() [3]int { return M.Mesh }

func (M *Meta) SpinPolarized() bool { return M.LSDA }

func (M *Meta) NKPoints() int { return len(M.KPoints) }

// PWKPoints returns the k-points as pw.KPoint values.
func (M *Meta) PWKPoints() []pw.KPoint {
	ret := make([]pw.KPoint, len(M.KPoints))
	for i, k := range M.KPoints {
		ret[i] = pw.KPoint{Index: i, Frac: k.Frac, Weight: k.Weight, Occupations: k.Occupations}
	}
	return ret
}

// Electrons returns the sum of the occupations, averaged over k-points, which is
// what the density should integrate to.
func (M *Meta) Electrons() float64 {
	var n float64
	for _, k := range M.KPoints {
		for _, w := range k.Occupations {
			n += w
		}
	}
	return n / float64(len(M.KPoints))
}

// CellVolume returns the volume of the real-space cell, in cubic bohr.
func (M *Meta) CellVolume() float64 {
	return pw.CellVolume(M.ReciprocalLattice())
}

// SavePath returns the save directory. If not given, it is prefix.save.
func (M *Meta) SavePath() string {
	d := M.SaveDir
	if d == "" {
		p := M.Prefix
		if p == "" {
			p = "pwscf"
		}
		d = p + ".save"
	}
	if !filepath.IsAbs(d) && M.dir != "" {
		d = filepath.Join(M.dir, d)
	}
	return d
}

// Store returns a wfc.Store for the wavefunction files of the calculation, with extension ext.
// If ext is empty, the default is used.
func (M *Meta) Store(ext string) *wfc.Store {
	S := wfc.New(M.SavePath(), M.NKPoints(), M.LSDA)
	if ext != "" {
		S.Ext = ext
	}
	return S
}
