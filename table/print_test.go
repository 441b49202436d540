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

package table

import (
	"bytes"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestWrite(t *testing.T) {
	t.Parallel()

	Convey("Table output works", t, func() {
		tbl, err := New("", []string{"GAS_CODE", "SECTOR"})
		So(err, ShouldBeNil)
		So(tbl.AppendRow(String("CO2"), String("Power Plants")), ShouldBeNil)
		So(tbl.AppendRow(String("CH4"), String("Refineries")), ShouldBeNil)

		Convey("WriteCSV", func() {
			Convey("Default Params", func() {
				var buf bytes.Buffer
				So(tbl.WriteCSV(&buf, Params{}), ShouldBeNil)
				So("\n"+buf.String(), ShouldEqual, `
GAS_CODE,SECTOR
CO2,Power Plants
CH4,Refineries
`)
			})

			Convey("Limited rows, no header", func() {
				var buf bytes.Buffer
				So(tbl.WriteCSV(&buf, Params{Rows: 1, NoHeader: true}), ShouldBeNil)
				So("\n"+buf.String(), ShouldEqual, `
CO2,Power Plants
`)
			})
		})

		Convey("WriteText", func() {
			Convey("Default Params", func() {
				var buf bytes.Buffer
				So(tbl.WriteText(&buf, Params{}), ShouldBeNil)
				So("\n"+buf.String(), ShouldEqual, `
GAS_CODE |       SECTOR
-------- | ------------
     CO2 | Power Plants
     CH4 |   Refineries
`)
			})

			Convey("Limited rows and width, no header", func() {
				var buf bytes.Buffer
				So(tbl.WriteText(&buf, Params{Rows: 1, NoHeader: true, MaxColWidth: 4}),
					ShouldBeNil)
				So("\n"+buf.String(), ShouldEqual, `
CO2 | Po..
`)
			})

			Convey("Null and number cells print as raw text", func() {
				t2, err := New("", []string{"A", "B"})
				So(err, ShouldBeNil)
				So(t2.AppendRow(Null(), Number(2019)), ShouldBeNil)
				var buf bytes.Buffer
				So(t2.WriteText(&buf, Params{}), ShouldBeNil)
				So("\n"+buf.String(), ShouldEqual, `
A |    B
- | ----
  | 2019
`)
			})

			Convey("MaxColWidth below the minimum is an error", func() {
				var buf bytes.Buffer
				So(tbl.WriteText(&buf, Params{MaxColWidth: 3}), ShouldNotBeNil)
			})
		})
	})
}
