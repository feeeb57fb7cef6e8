/*
 * errors.go, part of pwharv.
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

package pw

import (
	"fmt"
	"strings"
)

//None of the errors in this file can be recovered from. They are all
//about malformed or incomplete input, so the library returns them as soon as
//possible, before the numerical work starts.

// deco is embedded in every error type of the package.
type deco struct {
	d []string
}

// Decorate adds dec to the decoration slice of the error, unless dec is empty,
// and returns the resulting slice.
func (D *deco) Decorate(dec string) []string {
	if dec != "" {
		D.d = append(D.d, dec)
	}
	return D.d
}

// Critical is always true for this library's errors.
func (D *deco) Critical() bool { return true }

func (D *deco) trace() string {
	if len(D.d) == 0 {
		return ""
	}
	return " (" + strings.Join(D.d, " <- ") + ")"
}

// MissingFileError is returned when some of the expected per k-point/spin files are absent.
type MissingFileError struct {
	Found    int
	Expected int
	Missing  []string
	deco
}

func NewMissingFileError(found, expected int, missing []string) *MissingFileError {
	return &MissingFileError{Found: found, Expected: expected, Missing: missing}
}

func (err *MissingFileError) Error() string {
	return fmt.Sprintf("found %d/%d wavefunction files, missing: %s%s", err.Found, err.Expected, strings.Join(err.Missing, ", "), err.trace())
}

// MismatchError means that the up and down channels of a k-point don't have the same G-vectors.
type MismatchError struct {
	KPoint int
	Reason string
	deco
}

func NewMismatchError(kpoint int, reason string) *MismatchError {
	return &MismatchError{KPoint: kpoint, Reason: reason}
}

func (err *MismatchError) Error() string {
	return fmt.Sprintf("up and down G-vectors differ at k-point %d: %s%s", err.KPoint, err.Reason, err.trace())
}

// ConfigurationError is returned for requests that the input can't satisfy, such as
// a mesh too small for some G-vector, or a spin-resolved density of a non-polarized run.
type ConfigurationError struct {
	Msg string
	deco
}

func NewConfigurationError(format string, a ...interface{}) *ConfigurationError {
	return &ConfigurationError{Msg: fmt.Sprintf(format, a...)}
}

func (err *ConfigurationError) Error() string {
	return err.Msg + err.trace()
}

// ShapeError is returned when an array doesn't have the length it should.
type ShapeError struct {
	What string
	Got  int
	Want []int //any of these is acceptable
	deco
}

func NewShapeError(what string, got int, want ...int) *ShapeError {
	return &ShapeError{What: what, Got: got, Want: want}
}

func (err *ShapeError) Error() string {
	w := make([]string, len(err.Want))
	for i, v := range err.Want {
		w[i] = fmt.Sprint(v)
	}
	return fmt.Sprintf("%s: length %d, expected %s%s", err.What, err.Got, strings.Join(w, " or "), err.trace())
}

// ErrDecorate decorates err with caller, if err implements Error, and returns it.
// Other errors are returned untouched.
func ErrDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	if e, ok := err.(Error); ok {
		e.Decorate(caller)
	}
	return err
}
