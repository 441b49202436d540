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
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/stockparfait/errors"
)

// Params are parameters for pretty-printing or CSV export of Table data.
type Params struct {
	Rows        int  // max. number of rows to write; 0 = unlimited (default)
	NoHeader    bool // whether to print the header, default - yes
	MaxColWidth int  // for WriteText only; 0 = unlimited, otherwise must be >= 4
}

func (t *Table) visibleRows(p Params) [][]Cell {
	if p.Rows > 0 && p.Rows < len(t.rows) {
		return t.rows[:p.Rows]
	}
	return t.rows
}

func rowStrings(row []Cell) []string {
	res := make([]string, len(row))
	for i, c := range row {
		res[i] = c.String()
	}
	return res
}

// WriteCSV writes the table to w in CSV format.
func (t *Table) WriteCSV(w io.Writer, p Params) error {
	cw := csv.NewWriter(w)
	if !p.NoHeader {
		if err := cw.Write(t.cols); err != nil {
			return errors.Annotate(err, "failed to write header")
		}
	}
	for _, r := range t.visibleRows(p) {
		if err := cw.Write(rowStrings(r)); err != nil {
			return errors.Annotate(err, "failed to write row")
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return errors.Annotate(err, "failed to flush written rows")
	}
	return nil
}

// WriteText writes the table as a text formatted for ease of reading.
func (t *Table) WriteText(w io.Writer, p Params) error {
	if p.MaxColWidth != 0 && p.MaxColWidth < 4 {
		return errors.Reason("MaxColWidth [%d] must be 0 or >= 4", p.MaxColWidth)
	}
	widths := make([]int, len(t.cols))
	update := func(row []string) {
		for i := range widths {
			if widths[i] < len(row[i]) {
				widths[i] = len(row[i])
				if p.MaxColWidth > 0 && widths[i] > p.MaxColWidth {
					widths[i] = p.MaxColWidth
				}
			}
		}
	}
	rows := t.visibleRows(p)
	if !p.NoHeader {
		update(t.cols)
	}
	for _, r := range rows {
		update(rowStrings(r))
	}

	write := func(row []string) error {
		padded := make([]string, len(row))
		for i, s := range row {
			if len([]rune(s)) > widths[i] {
				s = string([]rune(s)[:widths[i]-2]) + ".."
			}
			padded[i] = fmt.Sprintf("%[2]*[1]s", s, widths[i])
		}
		_, err := fmt.Fprintf(w, "%s\n", strings.Join(padded, " | "))
		return err
	}

	if !p.NoHeader {
		if err := write(t.cols); err != nil {
			return errors.Annotate(err, "failed to write header")
		}
		dashed := make([]string, len(widths))
		for i, n := range widths {
			dashed[i] = strings.Repeat("-", n)
		}
		if err := write(dashed); err != nil {
			return errors.Annotate(err, "failed to write header separator")
		}
	}
	for _, r := range rows {
		if err := write(rowStrings(r)); err != nil {
			return errors.Annotate(err, "failed to write row")
		}
	}
	return nil
}
