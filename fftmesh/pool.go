/*
 * pool.go, part of pwharv.
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

package fftmesh

// Pool keeps meshes of one shape so that concurrent workers can each take
// their own arena and give it back when done.
type Pool struct {
	shape [3]int
	free  chan *Mesh
}

// NewPool returns a pool for meshes of the given shape that keeps at most size idle meshes.
func NewPool(shape [3]int, size int) (*Pool, error) {
	if err := CheckShape(shape); err != nil {
		return nil, err
	}
	if size < 1 {
		size = 1
	}
	return &Pool{shape: shape, free: make(chan *Mesh, size)}, nil
}

// Get returns an idle mesh, or a new one if there is none. The content
// of the buffer is undefined.
func (P *Pool) Get() *Mesh {
	select {
	case m := <-P.free:
		return m
	default:
	}
	m, _ := New(P.shape) //the shape was checked in NewPool
	return m
}

// Put gives a mesh back to the pool. Meshes of other shapes, and those that don't fit, are dropped.
func (P *Pool) Put(m *Mesh) {
	if m == nil || m.shape != P.shape {
		return
	}
	select {
	case P.free <- m:
	default:
	}
}
