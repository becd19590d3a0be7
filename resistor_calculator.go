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

package main

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	kingpin "github.com/alecthomas/kingpin/v2"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/common/promlog"
	"github.com/prometheus/common/promlog/flag"
	"github.com/prometheus/common/version"
	"github.com/prometheus/exporter-toolkit/web"
	webflag "github.com/prometheus/exporter-toolkit/web/kingpinflag"

	"github.com/RichiH/resistor_calculator/config"
	"github.com/RichiH/resistor_calculator/parts"
	"github.com/RichiH/resistor_calculator/resistor"
)

const (
	programName       = "resistor_calculator"
	defaultConfigFile = "resistors.yml"
)

func main() {
	configFile := kingpin.Flag(
		"config.file",
		"Sets the configuration file. Defaults to "+defaultConfigFile+" if present.",
	).String()
	strict := kingpin.Flag(
		"strict",
		"Reject Gold and Silver as significant digits or multipliers.",
	).Bool()

	serveCmd := kingpin.Command("serve", "Serve calculations and the parts inventory over HTTP.").Default()
	toolkitFlags := webflag.AddFlags(kingpin.CommandLine, ":9603")

	bandsCmd := kingpin.Command("bands", "Calculate the value of a 4-band or 5-band resistor.")
	bandsArg := bandsCmd.Arg("band", "Band colors, e.g. Red Violet Orange Gold.").Required().Strings()

	smdCmd := kingpin.Command("smd", "Decode a 3-digit or 4-digit SMD code.")
	smdArg := smdCmd.Arg("code", "SMD code, e.g. 102.").Required().String()

	colorsCmd := kingpin.Command("colors", "List the band colors.")

	promlogConfig := &promlog.Config{}
	flag.AddFlags(kingpin.CommandLine, promlogConfig)
	kingpin.Version(version.Print(programName))
	kingpin.HelpFlag.Short('h')
	cmd := kingpin.Parse()

	logger := promlog.New(promlogConfig)

	cfg, err := commandConfig(*configFile, *strict, cmd == serveCmd.FullCommand(), logger)
	if err != nil {
		level.Error(logger).Log("msg", "Error loading config", "err", err)
		os.Exit(1)
	}

	telemetryRegistry := prometheus.NewRegistry()
	calc := newCalculator(cfg.Calculator(), telemetryRegistry)

	switch cmd {
	case bandsCmd.FullCommand():
		if err := runBands(os.Stdout, calc, *bandsArg); err != nil {
			os.Exit(1)
		}
	case smdCmd.FullCommand():
		if err := runSMD(os.Stdout, calc, *smdArg); err != nil {
			os.Exit(1)
		}
	case colorsCmd.FullCommand():
		runColors(os.Stdout)
	case serveCmd.FullCommand():
		level.Info(logger).Log("msg", "Starting "+programName, "version", version.Info())
		level.Info(logger).Log("msg", "Build context", "context", version.BuildContext())
		level.Info(logger).Log("msg", "Loaded inventory", "parts", len(cfg.Parts), "strict", cfg.Strict)

		telemetryRegistry.MustRegister(collectors.NewGoCollector())
		telemetryRegistry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

		srv := &http.Server{Handler: newRouter(calc, parts.NewExporter(cfg, logger), telemetryRegistry, logger)}
		if err := web.ListenAndServe(srv, toolkitFlags, logger); err != nil {
			level.Error(logger).Log("err", err)
			os.Exit(1)
		}
	}
}

// loadConfig loads the given configuration file. Without an explicit file the
// default file is used if it exists, an empty inventory otherwise. With strict
// set the inventory is validated as a strict one, whatever the file says.
func loadConfig(path string, strict bool) (config.Config, error) {
	c, err := loadConfigFile(path)
	if err != nil {
		return config.Config{}, err
	}

	if strict && !c.Strict {
		c.Strict = true
		if err := c.Validate(); err != nil {
			return config.Config{}, fmt.Errorf("failed to validate config in strict mode: %v", err)
		}
	}

	return c, nil
}

// commandConfig loads the config for a sub-command. Only serve needs the
// inventory; the offline commands take the strictness from the config and go
// on without it if it fails to load.
func commandConfig(path string, strict, serve bool, logger log.Logger) (config.Config, error) {
	cfg, err := loadConfig(path, strict)
	if err == nil {
		return cfg, nil
	}
	if serve {
		return config.Config{}, err
	}

	level.Warn(logger).Log("msg", "Ignoring config", "err", err)
	return config.Config{Strict: strict}, nil
}

func loadConfigFile(path string) (config.Config, error) {
	if path != "" {
		return config.LoadConfig(path)
	}

	c, err := config.LoadConfig(defaultConfigFile)
	if os.IsNotExist(err) {
		return config.Config{}, nil
	}
	return c, err
}
