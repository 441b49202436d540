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
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCell(t *testing.T) {
	t.Parallel()

	Convey("Cell methods work", t, func() {
		Convey("ParseCell infers the value kind", func() {
			So(ParseCell("").IsNull(), ShouldBeTrue)
			So(ParseCell("CLEVELAND").IsNumber(), ShouldBeFalse)
			So(ParseCell("CLEVELAND").String(), ShouldEqual, "CLEVELAND")

			c := ParseCell("482516.20")
			So(c.IsNumber(), ShouldBeTrue)
			f, ok := c.Float()
			So(ok, ShouldBeTrue)
			So(f, ShouldEqual, 482516.2)
			// The raw lexeme is preserved, including the trailing zero.
			So(c.String(), ShouldEqual, "482516.20")
		})

		Convey("Number formats the value", func() {
			So(Number(2019).String(), ShouldEqual, "2019")
			So(Number(-81.6944).String(), ShouldEqual, "-81.6944")
		})

		Convey("Equal compares by kind and value", func() {
			So(ParseCell("2019").Equal(ParseCell("2019.0")), ShouldBeTrue)
			So(ParseCell("2019").Equal(ParseCell("CLEVELAND")), ShouldBeFalse)
			So(String("").Equal(Null()), ShouldBeFalse)
			So(Null().Equal(Null()), ShouldBeTrue)
			nan := Number(math.NaN())
			So(nan.Equal(nan), ShouldBeFalse)
		})
	})
}

func TestTable(t *testing.T) {
	t.Parallel()

	Convey("Table methods work", t, func() {
		tbl, err := New("GHG", []string{"GHG.GAS_CODE", "GHG.GAS_NAME"})
		So(err, ShouldBeNil)
		So(tbl.AppendRow(String("CO2"), String("Carbon Dioxide")), ShouldBeNil)
		So(tbl.AppendRow(String("CH4"), String("Methane")), ShouldBeNil)

		Convey("New rejects duplicate columns", func() {
			_, err := New("T", []string{"T.A", "T.A"})
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, `duplicate column "T.A"`)
		})

		Convey("AppendRow requires one cell per column", func() {
			So(tbl.AppendRow(String("N2O")), ShouldNotBeNil)
			So(tbl.NumRows(), ShouldEqual, 2)
		})

		Convey("Column finds positions", func() {
			i, ok := tbl.Column("GHG.GAS_NAME")
			So(ok, ShouldBeTrue)
			So(i, ShouldEqual, 1)
			_, ok = tbl.Column("GHG.GAS_ID")
			So(ok, ShouldBeFalse)
		})

		Convey("Select projects columns in the requested order", func() {
			sel, err := tbl.Select("GHG.GAS_NAME", "GHG.GAS_CODE")
			So(err, ShouldBeNil)
			So(sel.Columns(), ShouldResemble, []string{"GHG.GAS_NAME", "GHG.GAS_CODE"})
			So(sel.NumRows(), ShouldEqual, 2)
			So(sel.CellAt(0, 0).String(), ShouldEqual, "Carbon Dioxide")
			So(sel.CellAt(1, 1).String(), ShouldEqual, "CH4")
		})

		Convey("Select fails loudly on a missing column", func() {
			_, err := tbl.Select("GHG.GAS_CODE", "GHG.GAS_ID")
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring,
				`column "GHG.GAS_ID" not found in table "GHG"`)
		})

		Convey("Head limits the number of rows", func() {
			So(tbl.Head(1).NumRows(), ShouldEqual, 1)
			So(tbl.Head(1).CellAt(0, 0).String(), ShouldEqual, "CO2")
			So(tbl.Head(5).NumRows(), ShouldEqual, 2)
			So(tbl.Head(0).NumRows(), ShouldEqual, 0)
		})
	})
}
