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
	"fmt"
	"net"
	"strconv"

	multierror "github.com/hashicorp/go-multierror"
	"github.com/prometheus/common/model"

	"github.com/RichiH/resistor_calculator/resistor"
)

// Config represents the configuration of the resistor calculator.
type Config struct {
	// Strict rejects Gold and Silver as significant digits or multipliers.
	Strict bool   `yaml:"strict"`
	Parts  []Part `yaml:"parts"`
}

// Calculator returns the band calculator matching the configured strictness.
func (c *Config) Calculator() resistor.Calculator {
	return resistor.Calculator{Strict: c.Strict}
}

// Validate semantically validates the given config. LoadConfig already does
// this; call it again after changing the config, e.g. its strictness.
func (c *Config) Validate() error {
	return c.validate()
}

// validate semantically validates the given config.
func (c *Config) validate() error {
	var err error

	seen := map[string]bool{}
	for i := range c.Parts {
		p := &c.Parts[i]
		if p.Name != "" && seen[p.Name] {
			err = multierror.Append(err, fmt.Errorf("duplicate part name \"%s\"", p.Name))
		}
		seen[p.Name] = true

		if partErr := p.validate(c.Calculator()); partErr != nil {
			err = multierror.Append(err, partErr)
		}
	}

	return err
}

// HasPart returns whether the given config has a part with the given name.
func (c *Config) HasPart(n string) bool {
	return c.GetPart(n) != nil
}

// GetPart returns the part matching the given string or nil if none was
// found.
func (c *Config) GetPart(n string) *Part {
	for i := range c.Parts {
		if c.Parts[i].Name == n {
			return &c.Parts[i]
		}
	}

	return nil
}

// Part is a single resistor of the inventory. Exactly one of Bands, SMD and
// Device has to be set.
type Part struct {
	Name string `yaml:"name"`

	// Labels to be applied to the part's metrics.
	Labels map[string]string `yaml:"labels"`

	Bands  []string `yaml:"bands,omitempty"`
	SMD    string   `yaml:"smd,omitempty"`
	Device *Device  `yaml:"device,omitempty"`
}

// Source returns which of the part's value sources is in use.
func (p *Part) Source() SourceKind {
	switch {
	case p.Device != nil:
		return SourceDevice
	case p.SMD != "":
		return SourceSMD
	default:
		return SourceBands
	}
}

// SourceKind names where a part's value comes from.
type SourceKind string

const (
	SourceBands  SourceKind = "bands"
	SourceSMD    SourceKind = "smd"
	SourceDevice SourceKind = "device"
)

// validate tries to find inconsistencies in the definition of a part.
func (p *Part) validate(calc resistor.Calculator) error {
	var err error

	if p.Name == "" {
		err = multierror.Append(err, fmt.Errorf("part without name"))
	}

	for name := range p.Labels {
		if !model.LabelName(name).IsValid() {
			err = multierror.Append(err, fmt.Errorf("invalid label name \"%s\" in part \"%s\"", name, p.Name))
		}
		if name == "part" || name == "source" {
			err = multierror.Append(err, fmt.Errorf("reserved label name \"%s\" in part \"%s\"", name, p.Name))
		}
	}

	sources := 0
	if len(p.Bands) != 0 {
		sources++
	}
	if p.SMD != "" {
		sources++
	}
	if p.Device != nil {
		sources++
	}
	if sources != 1 {
		err = multierror.Append(err, fmt.Errorf(
			"part \"%s\" must define exactly one of bands, smd or device", p.Name))
		return err
	}

	switch p.Source() {
	case SourceBands:
		if _, calcErr := calc.Calculate(p.Bands); calcErr != nil {
			err = multierror.Append(err, fmt.Errorf("invalid bands in part \"%s\": %v", p.Name, calcErr))
		}
	case SourceSMD:
		if _, decErr := resistor.Decode(p.SMD); decErr != nil {
			err = multierror.Append(err, fmt.Errorf("invalid smd code in part \"%s\": %v", p.Name, decErr))
		}
	case SourceDevice:
		if devErr := p.Device.validate(); devErr != nil {
			err = multierror.Append(err, fmt.Errorf("invalid device in part \"%s\": %v", p.Name, devErr))
		}
	}

	return err
}

// CodeKind specifies how the registers of a device are interpreted.
type CodeKind string

const (
	// CodeKindBands reads one colour table index per register.
	CodeKindBands CodeKind = "bands"
	// CodeKindSMD reads one decimal digit per register.
	CodeKindSMD CodeKind = "smd"
)

func (k *CodeKind) validate() error {
	possibleCodeKinds := []CodeKind{
		CodeKindBands,
		CodeKindSMD,
	}

	if k == nil {
		return fmt.Errorf("expected code kind not to be nil")
	}

	for _, possibleKind := range possibleCodeKinds {
		if *k == possibleKind {
			return nil
		}
	}

	return fmt.Errorf("expected one of the following code kinds %v but got '%v'",
		possibleCodeKinds,
		*k)
}

// Device is a Modbus TCP component tester the part's code is read from.
type Device struct {
	// Target is the host:port of the tester.
	Target string `yaml:"target"`
	ID     byte   `yaml:"id"`
	// Address of the first holding register.
	Address uint16   `yaml:"address"`
	Kind    CodeKind `yaml:"kind"`
	// Count is the number of registers, one per band or SMD digit.
	Count int `yaml:"count"`
	// Timeout in milliseconds, 0 for the client default.
	Timeout int `yaml:"timeout"`
}

func (d *Device) validate() error {
	var err error

	if portErr := CheckTarget(d.Target); portErr != nil {
		err = multierror.Append(err, portErr)
	}

	if kindErr := d.Kind.validate(); kindErr != nil {
		err = multierror.Append(err, kindErr)
	}

	switch d.Kind {
	case CodeKindBands:
		if d.Count != 4 && d.Count != 5 {
			err = multierror.Append(err, fmt.Errorf("band devices need a count of 4 or 5 but got %v", d.Count))
		}
	case CodeKindSMD:
		if d.Count != 3 && d.Count != 4 {
			err = multierror.Append(err, fmt.Errorf("smd devices need a count of 3 or 4 but got %v", d.Count))
		}
	}

	if d.Timeout < 0 {
		err = multierror.Append(err, fmt.Errorf("invalid negative timeout %v", d.Timeout))
	}

	return err
}

// TargetValidationError is returned on invalid device target addresses.
type TargetValidationError struct {
	e string
}

// Error implements the Golang error interface.
func (e *TargetValidationError) Error() string {
	return e.e
}

// CheckTarget checks that the given address has the form host:port with a
// numeric port.
func CheckTarget(address string) error {
	host, port, err := net.SplitHostPort(address)
	if err != nil {
		return &TargetValidationError{fmt.Sprintf("invalid target address '%v': %v", address, err)}
	}

	if host == "" {
		return &TargetValidationError{fmt.Sprintf("target address '%v' is missing a host", address)}
	}

	if p, err := strconv.Atoi(port); err != nil || p <= 0 || p > 65535 {
		return &TargetValidationError{fmt.Sprintf("target address '%v' has an invalid port", address)}
	}

	return nil
}
