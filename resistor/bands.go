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

import "fmt"

// DefaultTolerance applies when the tolerance band is neither Gold nor
// Silver.
const DefaultTolerance = 20

var tolerances = map[string]int{
	Gold:   5,
	Silver: 10,
}

// Reading is the result of decoding a band sequence.
type Reading struct {
	Resistance Resistance
	// Tolerance in percent.
	Tolerance int
}

// String renders the reading as "<value> ± <tolerance>%".
func (r Reading) String() string {
	return fmt.Sprintf("%s ± %d%%", r.Resistance, r.Tolerance)
}

// Calculator decodes band sequences.
//
// The zero value is permissive: Gold and Silver are accepted as significant
// digits and multipliers and contribute -1 and -2, yielding negative or
// fractional values. Strict calculators reject them instead.
type Calculator struct {
	Strict bool
}

// Calculate decodes a 4-band or 5-band sequence. The last band is the
// tolerance, the one before it the multiplier exponent and the rest are
// significant digits.
func (c Calculator) Calculate(bands []string) (Reading, error) {
	if len(bands) != 4 && len(bands) != 5 {
		return Reading{}, &Error{Kind: InvalidBandCount}
	}

	n := len(bands)
	significand := 0
	for _, name := range bands[:n-2] {
		d, err := c.digit(name)
		if err != nil {
			return Reading{}, err
		}
		significand = significand*10 + d
	}

	exponent, err := c.digit(bands[n-2])
	if err != nil {
		return Reading{}, err
	}

	return Reading{
		Resistance: scale(significand, exponent),
		Tolerance:  Tolerance(bands[n-1]),
	}, nil
}

func (c Calculator) digit(name string) (int, error) {
	col, ok := LookupColor(name)
	if !ok {
		return 0, &Error{Kind: UnknownColorBand, Input: name}
	}
	if c.Strict && isToleranceOnly(col) {
		return 0, &Error{Kind: InvalidBandPosition, Input: name}
	}
	return col.Digit, nil
}

// Tolerance returns the tolerance in percent encoded by a tolerance band.
// Any band other than Gold or Silver, including unknown names, yields
// DefaultTolerance.
func Tolerance(band string) int {
	if t, ok := tolerances[band]; ok {
		return t
	}
	return DefaultTolerance
}

// Calculate decodes bands with a permissive Calculator.
func Calculate(bands []string) (Reading, error) {
	return Calculator{}.Calculate(bands)
}

// CalculateString decodes bands and returns either the formatted reading or
// the display message of the failure.
func CalculateString(bands []string) string {
	r, err := Calculate(bands)
	if err != nil {
		return Message(err)
	}
	return r.String()
}
