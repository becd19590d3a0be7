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

// Package resistor converts resistor colour bands and SMD codes into
// resistance values.
package resistor

// Color is a single band colour as printed on a through-hole resistor.
type Color struct {
	Name string
	// Digit is the significant digit or multiplier exponent the colour
	// encodes. Gold and Silver are tolerance colours and carry -1 and -2.
	Digit int
	// Hex is the RGB colour used when rendering the band.
	Hex string
}

const (
	Gold   = "Gold"
	Silver = "Silver"
)

var colors = []Color{
	{"Black", 0, "#000000"},
	{"Brown", 1, "#A52A2A"},
	{"Red", 2, "#FF0000"},
	{"Orange", 3, "#FFA500"},
	{"Yellow", 4, "#FFFF00"},
	{"Green", 5, "#008000"},
	{"Blue", 6, "#0000FF"},
	{"Violet", 7, "#8A2BE2"},
	{"Gray", 8, "#808080"},
	{"White", 9, "#FFFFFF"},
	{Gold, -1, "#FFD700"},
	{Silver, -2, "#C0C0C0"},
}

var colorsByName = func() map[string]Color {
	m := make(map[string]Color, len(colors))
	for _, c := range colors {
		m[c.Name] = c
	}
	return m
}()

// Colors returns the colour table in digit order, followed by the tolerance
// colours Gold and Silver. The returned slice is a copy.
func Colors() []Color {
	c := make([]Color, len(colors))
	copy(c, colors)
	return c
}

// LookupColor returns the colour with the given name.
func LookupColor(name string) (Color, bool) {
	c, ok := colorsByName[name]
	return c, ok
}

// DigitFor returns the digit encoded by the named colour, or an
// UnknownColorBand error when the name is not a band colour.
func DigitFor(name string) (int, error) {
	c, ok := colorsByName[name]
	if !ok {
		return 0, &Error{Kind: UnknownColorBand, Input: name}
	}
	return c.Digit, nil
}

func isToleranceOnly(c Color) bool {
	return c.Digit < 0
}
