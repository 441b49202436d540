// Copyright 2026 GHG Facts

// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at

//     http://www.apache.org/licenses/LICENSE-2.0

// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// The ghg-stats command downloads the EPA Greenhouse Gas Reporting Program
// tables and prints per-sector summary statistics of the CO2 equivalent
// emissions.
package main

import (
	"context"
	"flag"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/ghgfacts/ghgfacts/efservice"
	"github.com/ghgfacts/ghgfacts/efservice/ghgrp"
	"github.com/ghgfacts/ghgfacts/report"
	"github.com/ghgfacts/ghgfacts/table"
	"github.com/stockparfait/errors"
	"github.com/stockparfait/fetch"
	"github.com/stockparfait/logging"

	toml "github.com/pelletier/go-toml/v2"
)

type Flags struct {
	Config   string // optional TOML file with filters and HTTP settings
	LogLevel logging.Level
	CSV      bool // dump CSV format; default: text
}

func parseFlags(args []string) (*Flags, error) {
	var flags Flags
	fs := flag.NewFlagSet("ghg-stats", flag.ExitOnError)
	fs.StringVar(&flags.Config, "conf", "", "optional TOML config file")
	fs.BoolVar(&flags.CSV, "csv", false, "print table in CSV format; default: text")
	flags.LogLevel = logging.Info
	fs.Var(&flags.LogLevel, "log-level", "Log level: debug, info, warning, error")

	err := fs.Parse(args)
	if err != nil {
		return nil, err
	}
	return &flags, err
}

type Config struct {
	State      string `toml:"state"`       // state abbreviation, e.g. "OH"
	County     string `toml:"county"`      // county name, e.g. "CUYAHOGA"
	ZIP        string `toml:"zip"`         // 5-digit ZIP code
	Year       string `toml:"year"`        // reporting year, e.g. "2019"
	TimeoutSec int    `toml:"timeout_sec"` // HTTP request timeout, default: 60
}

func parseConfig(filePath string) (*Config, error) {
	c := Config{TimeoutSec: 60}
	if filePath == "" {
		return &c, nil
	}
	if _, err := os.Stat(filePath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			sample := `state = "OH"
year = "2019"
timeout_sec = 60
`
			return nil, errors.Annotate(err,
				"config file '%s' does not exist.\nA config file contains e.g.:\n%s",
				filePath, sample)
		}
		return nil, errors.Annotate(err,
			"cannot check config file for existence: '%s'", filePath)
	}
	f, err := os.Open(filePath)
	if err != nil {
		return nil, errors.Annotate(err, "failed to open config file %s", filePath)
	}
	defer f.Close()

	d := toml.NewDecoder(f)
	if err := d.Decode(&c); err != nil {
		return nil, errors.Annotate(err, "failed to read config file %s", filePath)
	}
	if c.TimeoutSec <= 0 {
		return nil, errors.Reason("timeout_sec [%d] must be positive", c.TimeoutSec)
	}
	return &c, nil
}

func (c *Config) filters() ghgrp.Filters {
	return ghgrp.Filters{
		State:  c.State,
		County: c.County,
		ZIP:    c.ZIP,
		Year:   c.Year,
	}
}

func printData(ctx context.Context, flags *Flags, w io.Writer) error {
	config, err := parseConfig(flags.Config)
	if err != nil {
		return errors.Annotate(err, "failed to parse config")
	}

	client := &http.Client{Timeout: time.Duration(config.TimeoutSec) * time.Second}
	ctx = fetch.UseClient(ctx, client)
	ctx = efservice.UseClient(ctx)

	master, err := ghgrp.Pull(ctx, config.filters())
	if err != nil {
		return errors.Annotate(err, "failed to pull GHGRP data")
	}
	summary, err := report.BySector(ctx, master)
	if err != nil {
		return errors.Annotate(err, "failed to summarize emissions")
	}
	var p table.Params
	if flags.CSV {
		if err := summary.WriteCSV(w, p); err != nil {
			return errors.Annotate(err, "failed to print CSV")
		}
		return nil
	}
	if err := summary.WriteText(w, p); err != nil {
		return errors.Annotate(err, "failed to print text")
	}
	return nil
}

func main() {
	ctx := context.Background()
	flags, err := parseFlags(os.Args[1:])
	if err != nil {
		ctx = logging.Use(ctx, logging.DefaultGoLogger(logging.Info))
		logging.Errorf(ctx, "failed to parse flags: %s", err.Error())
		os.Exit(1)
	}
	ctx = logging.Use(ctx, logging.DefaultGoLogger(flags.LogLevel))

	if err := printData(ctx, flags, os.Stdout); err != nil {
		logging.Errorf(ctx, err.Error())
		os.Exit(1)
	}
}
