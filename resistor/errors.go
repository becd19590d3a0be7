// Copyright 2019 Richard Hartmann
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package resistor

import (
	"errors"
	"fmt"
)

// ErrorKind names the ways a conversion can fail.
type ErrorKind int

const (
	// InvalidBandCount is returned for band sequences that are not 4 or 5
	// bands long.
	InvalidBandCount ErrorKind = iota + 1
	// UnknownColorBand is returned for band names outside the colour table.
	UnknownColorBand
	// InvalidSMDFormat is returned for SMD codes that are not 3 or 4 decimal
	// digits.
	InvalidSMDFormat
	// InvalidBandPosition is returned by strict calculators when Gold or
	// Silver appear as a significant digit or multiplier.
	InvalidBandPosition
)

var kindMessages = map[ErrorKind]string{
	InvalidBandCount:    "Invalid bands",
	UnknownColorBand:    "Invalid color band",
	InvalidSMDFormat:    "Invalid SMD format",
	InvalidBandPosition: "Invalid band position",
}

var kindNames = map[ErrorKind]string{
	InvalidBandCount:    "invalid_band_count",
	UnknownColorBand:    "unknown_color_band",
	InvalidSMDFormat:    "invalid_smd_format",
	InvalidBandPosition: "invalid_band_position",
}

// Message returns the text shown to users for this kind of failure.
func (k ErrorKind) Message() string {
	if m, ok := kindMessages[k]; ok {
		return m
	}
	return "Invalid input"
}

// String returns a short snake_case identifier, suitable as a label value.
func (k ErrorKind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("error_kind_%d", int(k))
}

// Error is returned by all conversions in this package.
type Error struct {
	Kind ErrorKind
	// Input is the offending band name or code, empty for band count errors.
	Input string
}

// Error implements the Golang error interface.
func (e *Error) Error() string {
	if e.Input == "" {
		return e.Kind.Message()
	}
	return fmt.Sprintf("%s: %q", e.Kind.Message(), e.Input)
}

// KindOf returns the kind of err if it is, or wraps, an *Error.
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// Message returns the display message for err: the kind's message for
// errors of this package, err.Error() otherwise.
func Message(err error) string {
	if k, ok := KindOf(err); ok {
		return k.Message()
	}
	return err.Error()
}
