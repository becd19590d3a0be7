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

// Package config contains all the configuration related components
package config

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v2"
)

// LoadConfig unmarshals and validates the configuration file.
func LoadConfig(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	return Parse(b)
}

// Parse unmarshals and validates a configuration document. Unknown fields
// are rejected.
func Parse(b []byte) (Config, error) {
	c := Config{}
	if err := yaml.UnmarshalStrict(b, &c); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %v", err)
	}

	if err := c.validate(); err != nil {
		return Config{}, fmt.Errorf("failed to validate config: %v", err)
	}

	return c, nil
}
