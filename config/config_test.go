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

package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/RichiH/resistor_calculator/resistor"
)

func TestCheckTarget(t *testing.T) {
	tests := []struct {
		input   string
		isValid bool
	}{
		{"localhost:1502", true},
		{"192.168.0.23:502", true},
		{"[::1]:502", true},
		{"192.168.0.3333.043", false},
		{":7070", false},
		{"localhost:0", false},
		{"localhost:99999", false},
		{"localhost:modbus", false},
		{"/dev/ttyUSB0", false},
	}
	for i, loopTest := range tests {
		test := loopTest

		t.Run(strconv.Itoa(i), func(t *testing.T) {
			err := CheckTarget(test.input)
			if test.isValid && err != nil {
				t.Fatalf("expected %v to be valid but got %v", test.input, err)
			}
			if !test.isValid {
				if _, ok := err.(*TargetValidationError); !ok {
					t.Fatalf("expected %v to fail with a TargetValidationError but got %v", test.input, err)
				}
			}
		})
	}
}

func TestPartValidate(t *testing.T) {
	for _, test := range []struct {
		name        string
		part        Part
		strict      bool
		expectedErr string
	}{
		{
			name: "bands",
			part: Part{Name: "r1", Bands: []string{"Red", "Violet", "Orange", "Gold"}},
		},
		{
			name: "smd",
			part: Part{Name: "r2", SMD: "102"},
		},
		{
			name: "device",
			part: Part{Name: "r3", Device: &Device{
				Target: "localhost:1502", Kind: CodeKindBands, Count: 4,
			}},
		},
		{
			name:        "no name",
			part:        Part{SMD: "102"},
			expectedErr: "part without name",
		},
		{
			name:        "no source",
			part:        Part{Name: "r4"},
			expectedErr: "must define exactly one of bands, smd or device",
		},
		{
			name:        "two sources",
			part:        Part{Name: "r5", SMD: "102", Bands: []string{"Red", "Red", "Red", "Gold"}},
			expectedErr: "must define exactly one of bands, smd or device",
		},
		{
			name:        "unknown color",
			part:        Part{Name: "r6", Bands: []string{"Foo", "Red", "Red", "Gold"}},
			expectedErr: "Invalid color band",
		},
		{
			name: "gold digit permissive",
			part: Part{Name: "r7", Bands: []string{"Gold", "Red", "Red", "Gold"}},
		},
		{
			name:        "gold digit strict",
			part:        Part{Name: "r7", Bands: []string{"Gold", "Red", "Red", "Gold"}},
			strict:      true,
			expectedErr: "Invalid band position",
		},
		{
			name:        "bad smd",
			part:        Part{Name: "r8", SMD: "12a"},
			expectedErr: "Invalid SMD format",
		},
		{
			name: "bad device",
			part: Part{Name: "r9", Device: &Device{
				Target: "nowhere", Kind: "colors", Count: 4, Timeout: -1,
			}},
			expectedErr: "expected one of the following code kinds",
		},
		{
			name:        "invalid label name",
			part:        Part{Name: "r11", SMD: "102", Labels: map[string]string{"board-id": "1"}},
			expectedErr: "invalid label name \"board-id\"",
		},
		{
			name:        "reserved label name",
			part:        Part{Name: "r12", SMD: "102", Labels: map[string]string{"source": "x"}},
			expectedErr: "reserved label name \"source\"",
		},
		{
			name: "smd device count",
			part: Part{Name: "r10", Device: &Device{
				Target: "localhost:1502", Kind: CodeKindSMD, Count: 5,
			}},
			expectedErr: "smd devices need a count of 3 or 4",
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			err := test.part.validate(resistor.Calculator{Strict: test.strict})

			if test.expectedErr == "" {
				if err != nil {
					t.Fatalf("expected no error but got %v", err)
				}
				return
			}

			if err == nil {
				t.Fatalf("expected err to contain %q but got nil", test.expectedErr)
			}
			if !strings.Contains(err.Error(), test.expectedErr) {
				t.Fatalf("expected err to contain %q but got %v", test.expectedErr, err)
			}
		})
	}
}

func TestParse(t *testing.T) {
	c, err := Parse([]byte(`
strict: true
parts:
  - name: pullup
    bands: [Red, Violet, Orange, Gold]
    labels:
      board: main
  - name: r12
    smd: "102"
  - name: bench
    device:
      target: 127.0.0.1:1502
      id: 1
      address: 22
      kind: bands
      count: 4
      timeout: 500
`))
	if err != nil {
		t.Fatal(err)
	}

	if !c.Strict || !c.Calculator().Strict {
		t.Fatal("expected strict mode to be enabled")
	}
	if len(c.Parts) != 3 {
		t.Fatalf("expected 3 parts but got %v", len(c.Parts))
	}
	if !c.HasPart("r12") || c.HasPart("r13") {
		t.Fatal("unexpected part lookup result")
	}

	bench := c.GetPart("bench")
	if bench.Source() != SourceDevice {
		t.Fatalf("expected device source but got %v", bench.Source())
	}
	if bench.Device.Address != 22 || bench.Device.ID != 1 || bench.Device.Timeout != 500 {
		t.Fatalf("unexpected device definition %+v", *bench.Device)
	}
	if c.GetPart("pullup").Labels["board"] != "main" {
		t.Fatalf("expected label board=main but got %v", c.GetPart("pullup").Labels)
	}
	if c.GetPart("r12").Source() != SourceSMD {
		t.Fatalf("expected smd source but got %v", c.GetPart("r12").Source())
	}
}

func TestParseAggregatesErrors(t *testing.T) {
	_, err := Parse([]byte(`
parts:
  - name: a
    smd: "12"
  - name: a
    bands: [Red]
`))
	if err == nil {
		t.Fatal("expected config to be rejected")
	}
	for _, want := range []string{"duplicate part name \"a\"", "Invalid SMD format", "Invalid bands"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected error to contain %q but got %v", want, err)
		}
	}
}

func TestParseUnknownField(t *testing.T) {
	_, err := Parse([]byte("parts:\n  - name: a\n    smd: \"102\"\n    colour: red\n"))
	if err == nil {
		t.Fatal("expected unknown field to be rejected")
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resistors.yml")
	if err := os.WriteFile(path, []byte("parts:\n  - name: a\n    smd: \"472\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if !c.HasPart("a") {
		t.Fatal("expected part a to be loaded")
	}

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yml")); !os.IsNotExist(err) {
		t.Fatalf("expected not-exist error but got %v", err)
	}
}

func TestExampleConfig(t *testing.T) {
	c, err := LoadConfig("../resistors.yml")
	if err != nil {
		t.Fatal(err)
	}
	if len(c.Parts) != 5 {
		t.Fatalf("expected 5 parts in the example inventory but got %v", len(c.Parts))
	}
}
