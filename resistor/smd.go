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

// Decode decodes a 3-digit (two significant digits) or 4-digit (three
// significant digits) SMD code. The last digit is the power-of-ten exponent.
func Decode(code string) (Resistance, error) {
	if len(code) != 3 && len(code) != 4 {
		return Resistance{}, &Error{Kind: InvalidSMDFormat, Input: code}
	}

	significand := 0
	for i := 0; i < len(code)-1; i++ {
		d, ok := decimal(code[i])
		if !ok {
			return Resistance{}, &Error{Kind: InvalidSMDFormat, Input: code}
		}
		significand = significand*10 + d
	}

	exponent, ok := decimal(code[len(code)-1])
	if !ok {
		return Resistance{}, &Error{Kind: InvalidSMDFormat, Input: code}
	}

	return scale(significand, exponent), nil
}

func decimal(b byte) (int, bool) {
	if b < '0' || b > '9' {
		return 0, false
	}
	return int(b - '0'), true
}

// DecodeString decodes code and returns either the formatted value or the
// display message of the failure.
func DecodeString(code string) string {
	r, err := Decode(code)
	if err != nil {
		return Message(err)
	}
	return r.String()
}
