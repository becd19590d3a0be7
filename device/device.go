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

// Package device reads resistor codes from Modbus TCP component testers.
//
// A tester exposes the code of the part under test in consecutive holding
// registers: either one colour table index per band or one decimal digit per
// SMD code character.
package device

import (
	"encoding/binary"
	"fmt"
	"strings"
	"time"

	"github.com/goburrow/modbus"

	"github.com/RichiH/resistor_calculator/config"
	"github.com/RichiH/resistor_calculator/resistor"
)

// Code is a resistor code as read from a tester.
type Code struct {
	Kind  config.CodeKind
	Bands []string
	SMD   string
}

// String implements fmt.Stringer.
func (c Code) String() string {
	if c.Kind == config.CodeKindSMD {
		return c.SMD
	}
	return strings.Join(c.Bands, ",")
}

// Read connects to the tester described by d and reads its current code.
func Read(d config.Device) (Code, error) {
	handler := modbus.NewTCPClientHandler(d.Target)
	if d.Timeout != 0 {
		handler.Timeout = time.Duration(d.Timeout) * time.Millisecond
	}
	handler.SlaveId = d.ID

	if err := handler.Connect(); err != nil {
		return Code{}, fmt.Errorf("unable to connect with target %s: %v", d.Target, err)
	}
	defer handler.Close()

	c := modbus.NewClient(handler)

	return readCode(d, c.ReadHoldingRegisters)
}

// modbus read function type
type modbusFunc func(address, quantity uint16) ([]byte, error)

func readCode(d config.Device, f modbusFunc) (Code, error) {
	if d.Count <= 0 {
		return Code{}, fmt.Errorf("expected a positive register count but got %v", d.Count)
	}

	raw, err := f(d.Address, uint16(d.Count))
	if err != nil {
		return Code{}, err
	}

	regs, err := parseRegisters(raw, d.Count)
	if err != nil {
		return Code{}, err
	}

	switch d.Kind {
	case config.CodeKindBands:
		return Code{Kind: d.Kind, Bands: bandNames(regs)}, nil
	case config.CodeKindSMD:
		return Code{Kind: d.Kind, SMD: smdDigits(regs)}, nil
	default:
		return Code{}, fmt.Errorf("unknown code kind '%v'", d.Kind)
	}
}

// InsufficientRegistersError is returned whenever a tester answers with
// fewer registers than requested.
type InsufficientRegistersError struct {
	e string
}

// Error implements the Golang error interface.
func (e *InsufficientRegistersError) Error() string {
	return fmt.Sprintf("insufficient amount of registers provided: %v", e.e)
}

func parseRegisters(raw []byte, count int) ([]uint16, error) {
	if len(raw) < count*2 {
		return nil, &InsufficientRegistersError{fmt.Sprintf("expected %v, got %v", count, len(raw)/2)}
	}

	regs := make([]uint16, count)
	for i := range regs {
		regs[i] = binary.BigEndian.Uint16(raw[i*2:])
	}

	return regs, nil
}

// bandNames maps colour table indexes to colour names. Indexes outside the
// table map to names the calculator rejects as unknown colours.
func bandNames(regs []uint16) []string {
	colors := resistor.Colors()

	names := make([]string, len(regs))
	for i, r := range regs {
		if int(r) < len(colors) {
			names[i] = colors[r].Name
		} else {
			names[i] = fmt.Sprintf("#%d", r)
		}
	}

	return names
}

// smdDigits renders one digit per register. Values above 9 render as '?',
// which the decoder rejects.
func smdDigits(regs []uint16) string {
	var b strings.Builder
	for _, r := range regs {
		if r > 9 {
			b.WriteByte('?')
			continue
		}
		b.WriteByte(byte('0' + r))
	}
	return b.String()
}
