/*
 * io.go, part of pwharv.
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

package density

import (
	"fmt"

	pw "github.com/pwharv/pwharv"
	"github.com/pwharv/pwharv/dset"
	"github.com/pwharv/pwharv/wfc"
)

// Dataset names used for density grids.
const (
	RhoName   = "rhor"
	RhoUpName = "rhor_up"
	RhoDnName = "rhor_dn"
	RhoGName  = "rhotot_g" //plane-wave components in a charge-density file
)

// WriteGrids writes the grids to fname, one dataset per grid, with the given names.
// The file is compressed according to its extension.
func WriteGrids(fname string, names []string, grids ...*Grid) error {
	if len(names) != len(grids) {
		return pw.NewShapeError("dataset names", len(names), len(grids))
	}
	sets := make([]*dset.Dataset, len(grids))
	for i, g := range grids {
		s := g.Shape()
		sets[i] = dset.NewFloats(names[i], g.Data(), s[0], s[1], s[2])
	}
	return dset.WriteFile(fname, sets...)
}

// ReadGrid reads the grid stored as the dataset name in fname.
func ReadGrid(fname, name string) (*Grid, error) {
	sets, err := dset.ReadFile(fname)
	if err != nil {
		return nil, err
	}
	s, ok := sets[name]
	if !ok || s.Type != dset.Float64 {
		return nil, fmt.Errorf("%s: no float64 dataset %q", fname, name)
	}
	if len(s.Shape) != 3 {
		return nil, pw.NewShapeError(fmt.Sprintf("%s: dimensions of %s", fname, name), len(s.Shape), 3)
	}
	return GridFromData([3]int{s.Shape[0], s.Shape[1], s.Shape[2]}, s.Floats)
}

// ReadChargeDensity reads a charge-density file (Miller indices and "rhotot_g") and returns
// the density on a mesh of the given shape.
func ReadChargeDensity(fname string, shape [3]int) (*Grid, error) {
	gvs, rhog, _, _, err := wfc.ReadSave(fname, RhoGName, wfc.MillerName)
	if err != nil {
		return nil, err
	}
	return FromChargeG(shape, gvs, rhog)
}
