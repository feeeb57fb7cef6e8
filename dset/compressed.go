/*
 * compressed.go, part of pwharv.
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
	"bufio"
	"compress/flate"
	"compress/gzip"
	"compress/lzw"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
)

const (
	lzwOrder        = lzw.MSB
	lzwLitwidth int = 8
)

// Compression returns the compression format that corresponds to
// the extension of fname: "zst", "gz", "lzw", "flate" or "" (none).
func Compression(fname string) string {
	switch strings.ToLower(filepath.Ext(fname)) {
	case ".zst", ".zstd":
		return "zst"
	case ".gz":
		return "gz"
	case ".lzw":
		return "lzw"
	case ".flate":
		return "flate"
	}
	return ""
}

// The zstd decoder doesn't implement io.ReadCloser, as its Close
// doesn't return anything.
type zstdReadCloser struct {
	*zstd.Decoder
}

func (z zstdReadCloser) Close() error {
	z.Decoder.Close()
	return nil
}

// source wraps the open file and the (maybe) decompressing reader on top of it.
type source struct {
	f *os.File
	r io.Reader
	c io.Closer //the decompressor, may be nil
}

func (s *source) Read(p []byte) (int, error) { return s.r.Read(p) }

func (s *source) Close() error {
	if s.c != nil {
		s.c.Close()
	}
	return s.f.Close()
}

// prepSource opens fname and returns an object that will read data from the file,
// either 'as is' or decompressing first, depending on the file extension.
func prepSource(fname string) (io.ReadCloser, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	buf := bufio.NewReader(f)
	s := &source{f: f, r: buf}
	switch Compression(fname) {
	case "zst":
		d, err := zstd.NewReader(buf)
		if err != nil {
			f.Close()
			return nil, err
		}
		s.c = zstdReadCloser{d}
		s.r = d
	case "gz":
		g, err := gzip.NewReader(buf)
		if err != nil {
			f.Close()
			return nil, err
		}
		s.c = g
		s.r = g
	case "lzw":
		l := lzw.NewReader(buf, lzwOrder, lzwLitwidth)
		s.c = l
		s.r = l
	case "flate":
		fl := flate.NewReader(buf)
		s.c = fl
		s.r = fl
	}
	return s, nil
}

// target is the writing counterpart of source. Closing it flushes the compressor,
// then the buffer and then closes the file.
type target struct {
	f   *os.File
	buf *bufio.Writer
	w   io.Writer
	c   io.Closer
}

func (t *target) Write(p []byte) (int, error) { return t.w.Write(p) }

func (t *target) Close() error {
	var err error
	if t.c != nil {
		err = t.c.Close()
	}
	if err2 := t.buf.Flush(); err == nil {
		err = err2
	}
	if err2 := t.f.Close(); err == nil {
		err = err2
	}
	return err
}

// prepTarget creates fname and returns an io.WriteCloser that will write data, crude or
// compressed, depending on the file extension.
func prepTarget(fname string) (io.WriteCloser, error) {
	f, err := os.Create(fname)
	if err != nil {
		return nil, err
	}
	buf := bufio.NewWriter(f)
	t := &target{f: f, buf: buf, w: buf}
	switch Compression(fname) {
	case "zst":
		z, err := zstd.NewWriter(buf, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			f.Close()
			return nil, err
		}
		t.w, t.c = z, z
	case "gz":
		g := gzip.NewWriter(buf)
		t.w, t.c = g, g
	case "lzw":
		l := lzw.NewWriter(buf, lzwOrder, lzwLitwidth)
		t.w, t.c = l, l
	case "flate":
		fl, err := flate.NewWriter(buf, flate.DefaultCompression)
		if err != nil {
			f.Close()
			return nil, err
		}
		t.w, t.c = fl, fl
	}
	return t, nil
}
