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

// Package parts exports the resistors of the configured inventory as
// Prometheus metrics.
package parts

import (
	"fmt"
	"sort"
	"time"

	"github.com/go-kit/log"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/RichiH/resistor_calculator/config"
	"github.com/RichiH/resistor_calculator/device"
	"github.com/RichiH/resistor_calculator/glog"
	"github.com/RichiH/resistor_calculator/resistor"
)

// Exporter resolves inventory parts to resistance values, reading device
// backed parts from their tester on every scrape.
type Exporter struct {
	config config.Config
	errors *glog.Deduper

	readDevice func(config.Device) (device.Code, error)
}

// NewExporter returns a new parts exporter.
func NewExporter(config config.Config, logger log.Logger) *Exporter {
	return &Exporter{
		config:     config,
		errors:     glog.New(logger, glog.DefaultInterval),
		readDevice: device.Read,
	}
}

// GetConfig returns the exporter's configuration.
func (e *Exporter) GetConfig() *config.Config {
	return &e.config
}

// Value is a resolved part.
type Value struct {
	Part   *config.Part
	Source config.SourceKind
	// Code is the band sequence or SMD code the value was computed from.
	Code       string
	Resistance resistor.Resistance
	// Tolerance in percent, 0 for SMD codes.
	Tolerance int
}

// String renders v the way the calculator displays it.
func (v Value) String() string {
	if v.Tolerance == 0 {
		return v.Resistance.String()
	}
	return resistor.Reading{Resistance: v.Resistance, Tolerance: v.Tolerance}.String()
}

// Resolve computes the value of the named part.
func (e *Exporter) Resolve(partName string) (Value, error) {
	part := e.config.GetPart(partName)
	if part == nil {
		return Value{}, fmt.Errorf("failed to find %v in config", partName)
	}

	v, err := e.resolve(part)
	if err != nil {
		e.errors.Log(err, "part", part.Name)
		return Value{}, err
	}

	return v, nil
}

func (e *Exporter) resolve(part *config.Part) (Value, error) {
	bands, smd := part.Bands, part.SMD

	if part.Device != nil {
		code, err := e.readDevice(*part.Device)
		if err != nil {
			return Value{}, fmt.Errorf("[%s] %v", part.Name, err)
		}
		bands, smd = code.Bands, code.SMD
	}

	v := Value{Part: part, Source: part.Source()}

	if smd != "" {
		r, err := resistor.Decode(smd)
		if err != nil {
			return Value{}, fmt.Errorf("[%s] %w", part.Name, err)
		}
		v.Code = smd
		v.Resistance = r
		return v, nil
	}

	reading, err := e.config.Calculator().Calculate(bands)
	if err != nil {
		return Value{}, fmt.Errorf("[%s] %w", part.Name, err)
	}
	v.Code = device.Code{Kind: config.CodeKindBands, Bands: bands}.String()
	v.Resistance = reading.Resistance
	v.Tolerance = reading.Tolerance

	return v, nil
}

// Scrape resolves the named part returning a Prometheus gatherer with the
// resulting metrics.
func (e *Exporter) Scrape(partName string) (prometheus.Gatherer, error) {
	part := e.config.GetPart(partName)
	if part == nil {
		return nil, fmt.Errorf("failed to find %v in config", partName)
	}

	start := time.Now()
	v, err := e.Resolve(partName)
	if err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	request := newScrapeRequest(reg, part)
	request.set(v, time.Since(start))

	return reg, nil
}

type scrapeRequest struct {
	labelValues []string

	resistance *prometheus.GaugeVec
	tolerance  *prometheus.GaugeVec
	info       *prometheus.GaugeVec
	duration   *prometheus.GaugeVec
}

func newScrapeRequest(reg prometheus.Registerer, part *config.Part) *scrapeRequest {
	labelNames, labelValues := partLabels(part)
	request := &scrapeRequest{labelValues: labelValues}

	request.resistance = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "resistor_resistance_ohms",
			Help: "Nominal resistance of the part.",
		},
		labelNames,
	)
	request.tolerance = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "resistor_tolerance_percent",
			Help: "Tolerance of the part as encoded by its tolerance band.",
		},
		labelNames,
	)
	request.info = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "resistor_part_info",
			Help: "Band sequence or SMD code the part was resolved from, always 1.",
		},
		[]string{"part", "source", "code"},
	)
	request.duration = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "resistor_scrape_duration_seconds",
			Help: "Time it took to resolve the part.",
		},
		[]string{"part"},
	)

	reg.MustRegister(
		request.resistance,
		request.tolerance,
		request.info,
		request.duration,
	)

	return request
}

func (r *scrapeRequest) set(v Value, d time.Duration) {
	r.resistance.WithLabelValues(r.labelValues...).Set(v.Resistance.Ohms)
	if v.Tolerance != 0 {
		r.tolerance.WithLabelValues(r.labelValues...).Set(float64(v.Tolerance))
	}
	r.info.WithLabelValues(v.Part.Name, string(v.Source), v.Code).Set(1)
	r.duration.WithLabelValues(v.Part.Name).Set(d.Seconds())
}

// partLabels returns the fixed part and source labels followed by the
// part's configured labels in name order.
func partLabels(part *config.Part) ([]string, []string) {
	names := []string{"part", "source"}
	values := []string{part.Name, string(part.Source())}

	custom := make([]string, 0, len(part.Labels))
	for k := range part.Labels {
		if k == "part" || k == "source" {
			continue
		}
		custom = append(custom, k)
	}
	sort.Strings(custom)

	for _, k := range custom {
		names = append(names, k)
		values = append(values, part.Labels[k])
	}

	return names, values
}
