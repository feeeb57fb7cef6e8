/*
 * main.go, part of pwharv.
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

// pwharv post-processes the wavefunctions of a plane-wave calculation: it computes
// the electron density on the FFT mesh and the kinetic energy.
//
// Usage:
//
//	pwharv find    --meta calc.yaml
//	pwharv rho     --meta calc.yaml [--spin] [--out rho.zst] [--profile rho.png --axis 2]
//	pwharv kinetic --meta calc.yaml [--lam 0.5] [--plot tkin.png]
//	pwharv charge  --meta calc.yaml [--file charge-density.dat] [--out rho.zst]
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "pwharv:", err)
		os.Exit(1)
	}
}
