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

// Package report aggregates the master emissions table into summary tables.
package report

import (
	"context"
	"math"

	"github.com/ghgfacts/ghgfacts/efservice/ghgrp"
	"github.com/ghgfacts/ghgfacts/table"
	"github.com/stockparfait/errors"
	"github.com/stockparfait/logging"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Columns of the per-sector summary table, in output order.
var Columns = []string{
	"SECTOR",
	"ROWS",
	"TOTAL_CO2E",
	"MEAN_CO2E",
	"MEDIAN_CO2E",
	"STDDEV_CO2E",
	"MAX_CO2E",
}

// BySector aggregates the CO2 equivalent emissions of the master table per
// sector, one output row per sector in lexicographic order. Rows with a
// non-numeric emission value are skipped with a warning. The median is the
// empirical quantile: for an even number of rows it is the lower middle
// value. The standard deviation of a single row is NaN. All statistics are
// rounded to 2 decimal places.
func BySector(ctx context.Context, master *table.Table) (*table.Table, error) {
	sectorCol := ghgrp.Col(ghgrp.SectorTable, "SECTOR_NAME")
	emissionCol := ghgrp.Col(ghgrp.EmissionTable, "CO2E_EMISSION")
	si, ok := master.Column(sectorCol)
	if !ok {
		return nil, errors.Reason("column %q not found in the master table", sectorCol)
	}
	ei, ok := master.Column(emissionCol)
	if !ok {
		return nil, errors.Reason("column %q not found in the master table", emissionCol)
	}
	groups := make(map[string][]float64)
	skipped := 0
	for i := 0; i < master.NumRows(); i++ {
		v, ok := master.CellAt(i, ei).Float()
		if !ok || math.IsNaN(v) {
			skipped++
			continue
		}
		sector := master.CellAt(i, si).String()
		groups[sector] = append(groups[sector], v)
	}
	if skipped > 0 {
		logging.Warningf(ctx, "skipped %d rows with non-numeric emission values", skipped)
	}
	t, err := table.New("", Columns)
	if err != nil {
		return nil, err
	}
	sectors := maps.Keys(groups)
	slices.Sort(sectors)
	for _, s := range sectors {
		xs := groups[s]
		slices.Sort(xs) // Quantile requires sorted values
		err := t.AppendRow(
			table.String(s),
			table.Number(float64(len(xs))),
			round2(floats.Sum(xs)),
			round2(stat.Mean(xs, nil)),
			round2(stat.Quantile(0.5, stat.Empirical, xs, nil)),
			round2(stat.StdDev(xs, nil)),
			round2(floats.Max(xs)),
		)
		if err != nil {
			return nil, errors.Annotate(err, "failed to append sector %q", s)
		}
	}
	return t, nil
}

func round2(v float64) table.Cell {
	if math.IsNaN(v) {
		return table.Number(v)
	}
	return table.Number(math.Round(v*100) / 100)
}
