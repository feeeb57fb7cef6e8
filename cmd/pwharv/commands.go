/*
 * commands.go, part of pwharv.
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
	"strings"

	pw "github.com/pwharv/pwharv"
	"github.com/pwharv/pwharv/meta"
	"github.com/spf13/cobra"
)

// flags holds the values of every command line flag.
type flags struct {
	metaFile string
	ext      string
	workers  int
	logLevel string

	spin      bool
	wtol      float64
	out       string
	profile   string
	axis      int
	perVolume bool

	lam  float64
	plot string

	chargeFile string
}

func newRootCmd() *cobra.Command {
	f := new(flags)
	var logger *slog.Logger

	rootCmd := &cobra.Command{
		Use:   "pwharv",
		Short: "Post-process the wavefunctions of a plane-wave calculation",
		Long: `pwharv reads the per k-point wavefunction files of a plane-wave calculation,
described by a YAML metadata file, and computes the electron density on the
FFT mesh and the kinetic energy.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			logger, err = newLogger(cmd.ErrOrStderr(), f.logLevel)
			return err
		},
	}
	rootCmd.PersistentFlags().StringVarP(&f.metaFile, "meta", "m", "pwscf.yaml", "YAML file describing the calculation")
	rootCmd.PersistentFlags().StringVar(&f.ext, "ext", "", "extension of the wavefunction files (default .dat), it selects the compression")
	rootCmd.PersistentFlags().IntVarP(&f.workers, "workers", "j", 1, "number of k-points processed concurrently")
	rootCmd.PersistentFlags().StringVar(&f.logLevel, "log-level", "info", "debug, info, warn or error")

	findCmd := &cobra.Command{
		Use:   "find",
		Short: "List the wavefunction files, failing if any is missing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			md, err := readMeta(f, logger)
			if err != nil {
				return err
			}
			return runFind(cmd.OutOrStdout(), md, f, logger)
		},
	}

	rhoCmd := &cobra.Command{
		Use:   "rho",
		Short: "Compute the electron density on the FFT mesh",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			md, err := readMeta(f, logger)
			if err != nil {
				return err
			}
			return runRho(cmd.OutOrStdout(), md, f, logger)
		},
	}
	rhoCmd.Flags().BoolVar(&f.spin, "spin", false, "write the up and down densities (lsda runs only)")
	rhoCmd.Flags().Float64Var(&f.wtol, "wtol", pw.DefaultWeightTol, "bands with occupations not above this are skipped")
	rhoCmd.Flags().StringVarP(&f.out, "out", "o", "rhor.dat", "output file, the extension selects the compression")
	rhoCmd.Flags().StringVar(&f.profile, "profile", "", "if given, plot the planar average of the density to this file")
	rhoCmd.Flags().IntVar(&f.axis, "axis", 2, "lattice axis of the planar average (0, 1 or 2)")
	rhoCmd.Flags().BoolVar(&f.perVolume, "per-volume", false, "write electrons per cubic bohr instead of Ω·ρ")

	kineticCmd := &cobra.Command{
		Use:   "kinetic",
		Short: "Compute the kinetic energy from the momentum distribution",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			md, err := readMeta(f, logger)
			if err != nil {
				return err
			}
			return runKinetic(cmd.OutOrStdout(), md, f, logger)
		},
	}
	kineticCmd.Flags().Float64Var(&f.lam, "lam", pw.HartreeLambda, "λ in T=-λ∇²: 0.5 for Hartree, 1 for Rydberg units")
	kineticCmd.Flags().StringVar(&f.plot, "plot", "", "if given, plot the kinetic energy per k-point to this file")

	chargeCmd := &cobra.Command{
		Use:   "charge",
		Short: "Compute the real-space density from a charge-density file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			md, err := readMeta(f, logger)
			if err != nil {
				return err
			}
			return runCharge(cmd.OutOrStdout(), md, f, logger)
		},
	}
	chargeCmd.Flags().StringVar(&f.chargeFile, "file", "", "charge-density file (default: charge-density in the save directory)")
	chargeCmd.Flags().StringVarP(&f.out, "out", "o", "rhor.dat", "output file, the extension selects the compression")

	rootCmd.AddCommand(findCmd, rhoCmd, kineticCmd, chargeCmd)
	return rootCmd
}

func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		return nil, fmt.Errorf("invalid log level %q", level)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l})), nil
}

func readMeta(f *flags, logger *slog.Logger) (*meta.Meta, error) {
	md, err := meta.Read(f.metaFile)
	if err != nil {
		return nil, err
	}
	logger.Info("metadata read",
		slog.String("file", f.metaFile),
		slog.Int("kpoints", md.NKPoints()),
		slog.Bool("lsda", md.SpinPolarized()),
		slog.Any("mesh", md.MeshShape()))
	return md, nil
}
