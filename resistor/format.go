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
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	kiloOhm = 1e3
	megaOhm = 1e6
)

// Resistance is a resistance value in ohms.
type Resistance struct {
	Ohms float64
	// Fractional is set for values computed with a negative multiplier
	// exponent. Below one kilo-ohm they print with a decimal point even when
	// the value happens to be integral.
	Fractional bool
}

// String implements fmt.Stringer.
func (r Resistance) String() string {
	return Format(r)
}

// Format renders r with a magnitude suffix: mega-ohms and kilo-ohms to one
// decimal place, plain ohms as an integer.
func Format(r Resistance) string {
	switch {
	case r.Ohms >= megaOhm:
		return fmt.Sprintf("%.1fM Ω", r.Ohms/megaOhm)
	case r.Ohms >= kiloOhm:
		return fmt.Sprintf("%.1fK Ω", r.Ohms/kiloOhm)
	case r.Fractional:
		s := strconv.FormatFloat(r.Ohms, 'f', -1, 64)
		if !strings.ContainsRune(s, '.') {
			s += ".0"
		}
		return s + " Ω"
	default:
		return fmt.Sprintf("%d Ω", int64(r.Ohms))
	}
}

// FormatOhms is Format for a bare ohm value. Non-integral values are treated
// as fractional.
func FormatOhms(ohms float64) string {
	return Format(Resistance{Ohms: ohms, Fractional: ohms != math.Trunc(ohms)})
}

// scale returns significand * 10^exponent.
func scale(significand, exponent int) Resistance {
	return Resistance{
		Ohms:       float64(significand) * math.Pow10(exponent),
		Fractional: exponent < 0,
	}
}
