/*
 * run.go, part of pwharv.
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

package main

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"path/filepath"
	"time"

	"github.com/pwharv/pwharv/density"
	"github.com/pwharv/pwharv/kinetic"
	"github.com/pwharv/pwharv/meta"
	"github.com/pwharv/pwharv/pwplot"
	"github.com/pwharv/pwharv/wfc"
)

func store(md *meta.Meta, f *flags, logger *slog.Logger) *wfc.Store {
	S := md.Store(f.ext)
	S.Logger = logger
	return S
}

func runFind(out io.Writer, md *meta.Meta, f *flags, logger *slog.Logger) error {
	files, err := store(md, f, logger).Discover()
	if err != nil {
		return err
	}
	for _, v := range files {
		fmt.Fprintln(out, v)
	}
	logger.Info("all wavefunction files found", slog.Int("files", len(files)))
	return nil
}

// warnWeights logs a warning if the k-points don't all have the same weight, as the
// density is a plain average over k-points.
func warnWeights(md *meta.Meta, logger *slog.Logger) {
	kpts := md.PWKPoints()
	if len(kpts) == 0 {
		return
	}
	for _, k := range kpts[1:] {
		if math.Abs(k.Weight-kpts[0].Weight) > 1e-8 {
			logger.Warn("k-point weights differ, the density is a plain average over k-points",
				slog.Int("kpoint", k.Index+1),
				slog.Float64("weight", k.Weight),
				slog.Float64("first", kpts[0].Weight))
			return
		}
	}
}

func runRho(out io.Writer, md *meta.Meta, f *flags, logger *slog.Logger) error {
	warnWeights(md, logger)
	opts := &density.Options{WeightTol: f.wtol, Workers: f.workers}
	start := time.Now()
	grids, err := density.Calc(md, store(md, f, logger), f.spin, opts)
	if err != nil {
		return err
	}
	names := []string{density.RhoName}
	if f.spin {
		names = []string{density.RhoUpName, density.RhoDnName}
	}
	for i, g := range grids {
		logger.Info("density accumulated",
			slog.String("dataset", names[i]),
			slog.Float64("electrons", g.Integral()),
			slog.Duration("elapsed", time.Since(start)))
		fmt.Fprintf(out, "%s: %.8f electrons (expected %.8f in total)\n", names[i], g.Integral(), md.Electrons())
		if f.perVolume {
			grids[i] = g.PerVolume(md.CellVolume())
		}
	}
	if err := density.WriteGrids(f.out, names, grids...); err != nil {
		return err
	}
	logger.Info("density written", slog.String("file", f.out))
	if f.profile == "" {
		return nil
	}
	total := grids[0].Copy()
	for _, g := range grids[1:] {
		if err := total.Add(g); err != nil {
			return err
		}
	}
	prof, err := total.PlanarAverage(f.axis)
	if err != nil {
		return err
	}
	title := fmt.Sprintf("Planar average of the density, %s", filepath.Base(f.metaFile))
	if err := pwplot.ProfilePlot(prof, f.axis, title, f.profile); err != nil {
		return err
	}
	logger.Info("profile plotted", slog.String("file", f.profile), slog.Int("axis", f.axis))
	return nil
}

func runKinetic(out io.Writer, md *meta.Meta, f *flags, logger *slog.Logger) error {
	perk, t, err := kinetic.Calc(md, store(md, f, logger), f.lam)
	if err != nil {
		return err
	}
	for ik, v := range perk {
		fmt.Fprintf(out, "k-point %4d %16.10f\n", ik+1, v)
	}
	fmt.Fprintf(out, "kinetic energy %.10f\n", t)
	logger.Info("kinetic energy computed", slog.Float64("lambda", f.lam), slog.Float64("energy", t))
	if f.plot == "" {
		return nil
	}
	return pwplot.KineticPlot(perk, fmt.Sprintf("Kinetic energy per k-point, %s", filepath.Base(f.metaFile)), f.plot)
}

func runCharge(out io.Writer, md *meta.Meta, f *flags, logger *slog.Logger) error {
	fname := f.chargeFile
	if fname == "" {
		ext := f.ext
		if ext == "" {
			ext = wfc.DefaultExt
		}
		fname = filepath.Join(md.SavePath(), "charge-density"+ext)
	}
	rho, err := density.ReadChargeDensity(fname, md.MeshShape())
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s: %.8f electrons\n", fname, rho.Integral())
	if err := density.WriteGrids(f.out, []string{density.RhoName}, rho); err != nil {
		return err
	}
	logger.Info("charge density converted", slog.String("from", fname), slog.String("to", f.out))
	return nil
}
