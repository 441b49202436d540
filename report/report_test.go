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

package report

import (
	"context"
	"testing"

	"github.com/ghgfacts/ghgfacts/efservice/ghgrp"
	"github.com/ghgfacts/ghgfacts/table"
	"github.com/stockparfait/testutil"

	. "github.com/smartystreets/goconvey/convey"
)

func TestBySector(t *testing.T) {
	t.Parallel()

	sectorCol := ghgrp.Col(ghgrp.SectorTable, "SECTOR_NAME")
	emissionCol := ghgrp.Col(ghgrp.EmissionTable, "CO2E_EMISSION")

	Convey("BySector aggregates emissions", t, func() {
		master, err := table.New("", []string{sectorCol, emissionCol})
		So(err, ShouldBeNil)
		add := func(sector string, emission table.Cell) {
			So(master.AppendRow(table.String(sector), emission), ShouldBeNil)
		}
		add("Power Plants", table.Number(300))
		add("Refineries", table.Number(50.5))
		add("Power Plants", table.Number(100))
		add("Power Plants", table.Number(200))
		add("Power Plants", table.Null()) // skipped with a warning

		Convey("sectors are summarized in lexicographic order", func() {
			summary, err := BySector(context.Background(), master)
			So(err, ShouldBeNil)
			So(summary.Columns(), ShouldResemble, Columns)
			So(summary.NumRows(), ShouldEqual, 2)

			row := func(i int) []string {
				res := make([]string, len(Columns))
				for j := range res {
					res[j] = summary.CellAt(i, j).String()
				}
				return res
			}
			So(row(0), ShouldResemble, []string{
				"Power Plants", "3", "600", "200", "200", "100", "300"})
			So(row(1), ShouldResemble, []string{
				"Refineries", "1", "50.5", "50.5", "50.5", "NaN", "50.5"})

			stddev, ok := summary.CellAt(0, 5).Float()
			So(ok, ShouldBeTrue)
			So(testutil.Round(stddev, 3), ShouldEqual, 100.0)
		})

		Convey("empty master yields an empty summary", func() {
			empty, err := table.New("", []string{sectorCol, emissionCol})
			So(err, ShouldBeNil)
			summary, err := BySector(context.Background(), empty)
			So(err, ShouldBeNil)
			So(summary.NumRows(), ShouldEqual, 0)
		})

		Convey("missing columns fail loudly", func() {
			noSector, err := table.New("", []string{emissionCol})
			So(err, ShouldBeNil)
			_, err = BySector(context.Background(), noSector)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, sectorCol)

			noEmission, err := table.New("", []string{sectorCol})
			So(err, ShouldBeNil)
			_, err = BySector(context.Background(), noEmission)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, emissionCol)
		})
	})
}
