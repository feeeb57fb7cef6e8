/*
 * wfc.go, part of pwharv.
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

//Package wfc finds and reads the per k-point, per spin, wavefunction files of a
//plane-wave calculation. Each file is a dset container with the Miller indices
//of the plane waves ("MillerIndices", int32, (npw,3)) and the coefficients of every
//band ("evc", float64, (nbnd, 2*width), real and imaginary parts interleaved).
package wfc

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	pw "github.com/pwharv/pwharv"
	"github.com/pwharv/pwharv/dset"
)

// Default dataset names, the same used by pwscf's hdf5 output.
const (
	MillerName = "MillerIndices"
	EvcName    = "evc"
	DefaultExt = ".dat"
)

// Store knows where the wavefunction files of a calculation are, and reads them.
type Store struct {
	Dir      string //the save directory
	Ext      string //extension of the files, including the dot. It also selects the compression.
	NKPoints int
	LSDA     bool //collinear spin-polarized run, one file per spin channel.
	Logger   *slog.Logger
}

// New returns a Store for the nk k-points in the directory dir, with the default extension.
func New(dir string, nk int, lsda bool) *Store {
	return &Store{Dir: dir, Ext: DefaultExt, NKPoints: nk, LSDA: lsda}
}

func (S *Store) logger() *slog.Logger {
	if S.Logger == nil {
		return slog.Default()
	}
	return S.Logger
}

// FileName returns the location of the file for the k-point ik (0-based) and the
// spin channel spin, which is ignored unless the store is spin-polarized.
func (S *Store) FileName(ik int, spin string) string {
	ext := S.Ext
	if ext == "" {
		ext = DefaultExt
	}
	if !S.LSDA {
		spin = ""
	}
	return filepath.Join(S.Dir, fmt.Sprintf("wfc%s%d%s", spin, ik+1, ext))
}

// Expected returns, in order, the locations of all the files the store should have.
// For spin-polarized runs, all the up files come first and then all the down files.
func (S *Store) Expected() []string {
	if !S.LSDA {
		ret := make([]string, 0, S.NKPoints)
		for ik := 0; ik < S.NKPoints; ik++ {
			ret = append(ret, S.FileName(ik, ""))
		}
		return ret
	}
	ret := make([]string, 0, 2*S.NKPoints)
	for _, spin := range []string{pw.SpinUp, pw.SpinDown} {
		for ik := 0; ik < S.NKPoints; ik++ {
			ret = append(ret, S.FileName(ik, spin))
		}
	}
	return ret
}

// Discover checks that every expected file exists and returns their locations.
// If any is missing, it returns a *pw.MissingFileError listing all the missing ones.
func (S *Store) Discover() ([]string, error) {
	files := S.Expected()
	var missing []string
	for _, f := range files {
		st, err := os.Stat(f)
		if err != nil || st.IsDir() {
			S.logger().Warn("wavefunction file not found", slog.String("file", f))
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		err := pw.NewMissingFileError(len(files)-len(missing), len(files), missing)
		return nil, pw.ErrDecorate(err, "wfc.Discover")
	}
	return files, nil
}

// Load reads the G-vectors and coefficients for the k-point ik (0-based) and spin channel.
func (S *Store) Load(ik int, spin string) (pw.GVectors, *pw.Coefficients, error) {
	if ik < 0 || ik >= S.NKPoints {
		return nil, nil, pw.NewConfigurationError("k-point %d out of range [0,%d)", ik, S.NKPoints)
	}
	gvs, evc, err := ReadWfc(S.FileName(ik, spin))
	if err != nil {
		return nil, nil, pw.ErrDecorate(err, fmt.Sprintf("wfc.Load: k-point %d %s", ik, spin))
	}
	return gvs, evc, nil
}

// LoadAll reads the files of every k-point. Nothing is read until all the files are known to exist.
// For spin-polarized runs the up and down bands of each k-point are concatenated, up first,
// after checking that both channels have the same G-vectors. A *pw.MismatchError is returned otherwise.
func (S *Store) LoadAll() ([]pw.GVectors, []*pw.Coefficients, error) {
	if _, err := S.Discover(); err != nil {
		return nil, nil, pw.ErrDecorate(err, "wfc.LoadAll")
	}
	gvl := make([]pw.GVectors, S.NKPoints)
	evl := make([]*pw.Coefficients, S.NKPoints)
	if !S.LSDA {
		for ik := range gvl {
			var err error
			gvl[ik], evl[ik], err = S.Load(ik, "")
			if err != nil {
				return nil, nil, pw.ErrDecorate(err, "wfc.LoadAll")
			}
		}
		return gvl, evl, nil
	}
	dnl := make([]*pw.Coefficients, S.NKPoints)
	gdnl := make([]pw.GVectors, S.NKPoints)
	for ik := range gvl {
		var err error
		gvl[ik], evl[ik], err = S.Load(ik, pw.SpinUp)
		if err != nil {
			return nil, nil, pw.ErrDecorate(err, "wfc.LoadAll")
		}
	}
	for ik := range gvl {
		var err error
		gdnl[ik], dnl[ik], err = S.Load(ik, pw.SpinDown)
		if err != nil {
			return nil, nil, pw.ErrDecorate(err, "wfc.LoadAll")
		}
	}
	for ik := range gvl {
		if ok, why := gvl[ik].Equal(gdnl[ik], pw.GVectorTol); !ok {
			return nil, nil, pw.ErrDecorate(pw.NewMismatchError(ik, why), "wfc.LoadAll")
		}
		ev, err := pw.Concat(evl[ik], dnl[ik])
		if err != nil {
			return nil, nil, pw.ErrDecorate(err, fmt.Sprintf("wfc.LoadAll: k-point %d", ik))
		}
		evl[ik] = ev
	}
	S.logger().Debug("wavefunctions loaded", slog.Int("kpoints", S.NKPoints), slog.Bool("lsda", S.LSDA))
	return gvl, evl, nil
}

// ReadSave reads a file with Miller indices in the dataset xname and complex values
// in the dataset name. It returns the indices, the values, and the number of rows and columns
// of the complex values. It is used for the wavefunction and the charge density files.
func ReadSave(fname, name, xname string) (pw.GVectors, []complex128, int, int, error) {
	sets, err := dset.ReadFile(fname)
	if err != nil {
		return nil, nil, 0, 0, err
	}
	xs, ok := sets[xname]
	if !ok || xs.Type != dset.Int32 {
		return nil, nil, 0, 0, fmt.Errorf("%s: no int32 dataset %q", fname, xname)
	}
	if len(xs.Shape) != 2 || xs.Shape[1] != 3 {
		return nil, nil, 0, 0, pw.NewShapeError(fmt.Sprintf("%s: %s shape %v, last dimension", fname, xname, xs.Shape), lastDim(xs.Shape), 3)
	}
	gvs, err := pw.GVectorsFromInts(xs.Ints)
	if err != nil {
		return nil, nil, 0, 0, err
	}
	ys, ok := sets[name]
	if !ok {
		return nil, nil, 0, 0, fmt.Errorf("%s: no dataset %q", fname, name)
	}
	y, rows, cols, err := ys.Complex()
	if err != nil {
		return nil, nil, 0, 0, err
	}
	return gvs, y, rows, cols, nil
}

func lastDim(s []int) int {
	if len(s) == 0 {
		return 0
	}
	return s[len(s)-1]
}

// ReadWfc reads one wavefunction file. It returns a *pw.ShapeError if the coefficients of a
// band are neither as many as the plane waves nor twice as many (spinors).
func ReadWfc(fname string) (pw.GVectors, *pw.Coefficients, error) {
	gvs, evc, nbnd, width, err := ReadSave(fname, EvcName, MillerName)
	if err != nil {
		return nil, nil, err
	}
	coef, err := pw.NewCoefficients(nbnd, width, evc)
	if err != nil {
		return nil, nil, pw.ErrDecorate(err, "wfc.ReadWfc: "+fname)
	}
	if err := coef.CheckWidth(gvs.Len()); err != nil {
		return nil, nil, pw.ErrDecorate(err, "wfc.ReadWfc: "+fname)
	}
	return gvs, coef, nil
}

// WriteWfc writes a wavefunction file that ReadWfc can read.
func WriteWfc(fname string, gvs pw.GVectors, coef *pw.Coefficients) error {
	nbnd, width := coef.Dims()
	return dset.WriteFile(fname,
		dset.NewInts(MillerName, gvs.Ints(), gvs.Len(), 3),
		dset.NewComplex(EvcName, nbnd, width, coef.RawData()))
}
