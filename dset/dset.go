/*
 * dset.go, part of pwharv.
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

//Package dset implements a small container of named, typed, n-dimensional arrays
//(datasets). It is the format of the per k-point wavefunction files, which hold a
//"MillerIndices" int32 dataset and an "evc" float64 dataset of interleaved real and
//imaginary parts, and of the density grids written by pwharv.
//
//The file starts with the magic "PWDS", a version and the number of datasets, all
//little-endian. Each dataset has a name, a type byte ('i' for int32, 'f' for float64),
//its shape and its data, in row-major order. The whole stream may be compressed; the
//compression is chosen from the file extension (see Compression).
package dset

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

const (
	magic   = "PWDS"
	version = uint32(1)
	maxDims = 8
	maxSize = math.MaxInt32 * 4 //elements in one dataset
)

const (
	Int32   byte = 'i'
	Float64 byte = 'f'
)

// Dataset is a named n-dimensional array. Only one of Ints or Floats is used, depending on Type.
type Dataset struct {
	Name   string
	Type   byte
	Shape  []int
	Ints   []int32
	Floats []float64
}

// Size returns the number of elements the shape calls for.
func (D *Dataset) Size() int {
	if len(D.Shape) == 0 {
		return 0
	}
	n := 1
	for _, v := range D.Shape {
		n *= v
	}
	return n
}

func (D *Dataset) check() error {
	var l int
	switch D.Type {
	case Int32:
		l = len(D.Ints)
	case Float64:
		l = len(D.Floats)
	default:
		return fmt.Errorf("dataset %s: unknown type %q", D.Name, D.Type)
	}
	if l != D.Size() {
		return fmt.Errorf("dataset %s: %d elements for shape %v", D.Name, l, D.Shape)
	}
	return nil
}

// NewInts returns an int32 dataset.
func NewInts(name string, data []int32, shape ...int) *Dataset {
	return &Dataset{Name: name, Type: Int32, Shape: shape, Ints: data}
}

// NewFloats returns a float64 dataset.
func NewFloats(name string, data []float64, shape ...int) *Dataset {
	return &Dataset{Name: name, Type: Float64, Shape: shape, Floats: data}
}

// NewComplex returns a float64 dataset with shape (rows, 2*cols) where each complex
// number of data, a (rows, cols) row-major matrix, is stored as a real, imaginary pair.
func NewComplex(name string, rows, cols int, data []complex128) *Dataset {
	f := make([]float64, 0, 2*len(data))
	for _, v := range data {
		f = append(f, real(v), imag(v))
	}
	return NewFloats(name, f, rows, 2*cols)
}

// Complex reinterprets a float64 dataset with an even last dimension as complex numbers.
// It returns the data and the number of rows and columns of the complex matrix.
func (D *Dataset) Complex() ([]complex128, int, int, error) {
	if D.Type != Float64 {
		return nil, 0, 0, fmt.Errorf("dataset %s is not float64", D.Name)
	}
	if len(D.Shape) == 0 || D.Shape[len(D.Shape)-1]%2 != 0 {
		return nil, 0, 0, fmt.Errorf("dataset %s: shape %v can't hold real/imaginary pairs", D.Name, D.Shape)
	}
	cols := D.Shape[len(D.Shape)-1] / 2
	rows := 1
	for _, v := range D.Shape[:len(D.Shape)-1] {
		rows *= v
	}
	ret := make([]complex128, len(D.Floats)/2)
	for i := range ret {
		ret[i] = complex(D.Floats[2*i], D.Floats[2*i+1])
	}
	return ret, rows, cols, nil
}

// Write writes the datasets to w.
func Write(w io.Writer, sets ...*Dataset) error {
	bw := bufio.NewWriter(w)
	le := binary.LittleEndian
	if _, err := bw.WriteString(magic); err != nil {
		return err
	}
	if err := binary.Write(bw, le, version); err != nil {
		return err
	}
	if err := binary.Write(bw, le, uint32(len(sets))); err != nil {
		return err
	}
	for _, s := range sets {
		if err := s.check(); err != nil {
			return err
		}
		if len(s.Name) > math.MaxUint16 || len(s.Shape) > maxDims {
			return fmt.Errorf("dataset %s: name or shape too long", s.Name)
		}
		if err := binary.Write(bw, le, uint16(len(s.Name))); err != nil {
			return err
		}
		if _, err := bw.WriteString(s.Name); err != nil {
			return err
		}
		if err := binary.Write(bw, le, [2]byte{s.Type, byte(len(s.Shape))}); err != nil {
			return err
		}
		for _, d := range s.Shape {
			if err := binary.Write(bw, le, uint64(d)); err != nil {
				return err
			}
		}
		var err error
		if s.Type == Int32 {
			err = binary.Write(bw, le, s.Ints)
		} else {
			err = binary.Write(bw, le, s.Floats)
		}
		if err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Read reads all the datasets in r, and returns them in a map, by name.
func Read(r io.Reader) (map[string]*Dataset, error) {
	br := bufio.NewReader(r)
	le := binary.LittleEndian
	var m [4]byte
	if _, err := io.ReadFull(br, m[:]); err != nil {
		return nil, fmt.Errorf("reading magic: %w", err)
	}
	if string(m[:]) != magic {
		return nil, errors.New("not a dset file")
	}
	var ver, n uint32
	if err := binary.Read(br, le, &ver); err != nil {
		return nil, err
	}
	if ver != version {
		return nil, fmt.Errorf("unsupported dset version %d", ver)
	}
	if err := binary.Read(br, le, &n); err != nil {
		return nil, err
	}
	ret := make(map[string]*Dataset, n)
	for i := uint32(0); i < n; i++ {
		s, err := readOne(br)
		if err != nil {
			return nil, fmt.Errorf("dataset %d: %w", i, err)
		}
		ret[s.Name] = s
	}
	return ret, nil
}

func readOne(br *bufio.Reader) (*Dataset, error) {
	le := binary.LittleEndian
	var nl uint16
	if err := binary.Read(br, le, &nl); err != nil {
		return nil, err
	}
	name := make([]byte, nl)
	if _, err := io.ReadFull(br, name); err != nil {
		return nil, err
	}
	var td [2]byte
	if err := binary.Read(br, le, &td); err != nil {
		return nil, err
	}
	if td[1] > maxDims {
		return nil, fmt.Errorf("%d dimensions", td[1])
	}
	s := &Dataset{Name: string(name), Type: td[0], Shape: make([]int, td[1])}
	size := uint64(1)
	for i := range s.Shape {
		var d uint64
		if err := binary.Read(br, le, &d); err != nil {
			return nil, err
		}
		if d > math.MaxInt32 {
			return nil, fmt.Errorf("dataset %s: dimension %d too large", s.Name, d)
		}
		if d != 0 && size > maxSize/d {
			return nil, fmt.Errorf("dataset %s: shape too large", s.Name)
		}
		size *= d
		s.Shape[i] = int(d)
	}
	if len(s.Shape) == 0 {
		size = 0
	}
	var err error
	switch s.Type {
	case Int32:
		s.Ints = make([]int32, size)
		err = binary.Read(br, le, s.Ints)
	case Float64:
		s.Floats = make([]float64, size)
		err = binary.Read(br, le, s.Floats)
	default:
		return nil, fmt.Errorf("unknown type %q", s.Type)
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// WriteFile writes the datasets to the file fname, compressed according to its extension.
func WriteFile(fname string, sets ...*Dataset) error {
	t, err := prepTarget(fname)
	if err != nil {
		return err
	}
	if err := Write(t, sets...); err != nil {
		t.Close()
		return fmt.Errorf("%s: %w", fname, err)
	}
	return t.Close()
}

// ReadFile reads all datasets in the file fname.
func ReadFile(fname string) (map[string]*Dataset, error) {
	s, err := prepSource(fname)
	if err != nil {
		return nil, err
	}
	defer s.Close()
	ret, err := Read(s)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return ret, nil
}
