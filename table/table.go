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

// Package table implements in-memory data tables with typed cells, CSV and
// JSON ingestion, inner joins, projection and text / CSV output.
package table

import (
	"strconv"

	"github.com/stockparfait/errors"
)

type cellKind uint8

const (
	cellNull cellKind = iota
	cellString
	cellNumber
)

// Cell is a single table value, a union of null, string or number (float64).
// A Cell keeps the raw text it was parsed from, so numbers print exactly as
// they appeared in the source.
type Cell struct {
	kind cellKind
	str  string
	num  float64
}

// Null returns the null Cell, the value of an empty field.
func Null() Cell {
	return Cell{}
}

// String creates a string-valued Cell.
func String(s string) Cell {
	return Cell{kind: cellString, str: s}
}

// Number creates a number-valued Cell.
func Number(n float64) Cell {
	return Cell{kind: cellNumber, str: strconv.FormatFloat(n, 'g', -1, 64), num: n}
}

// ParseCell converts a raw field into a Cell: an empty field is null, a field
// parseable as a float is a number, anything else is a string.
func ParseCell(s string) Cell {
	if s == "" {
		return Null()
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return Cell{kind: cellNumber, str: s, num: n}
	}
	return String(s)
}

// IsNull checks for the null Cell.
func (c Cell) IsNull() bool {
	return c.kind == cellNull
}

// IsNumber checks for a number-valued Cell.
func (c Cell) IsNumber() bool {
	return c.kind == cellNumber
}

// Float returns the numeric value of a number Cell.
func (c Cell) Float() (float64, bool) {
	return c.num, c.kind == cellNumber
}

// String returns the raw text of the Cell; null cells print as "".
func (c Cell) String() string {
	return c.str
}

// Equal compares two cells by kind and value. Number cells compare
// numerically, so "2019" and "2019.0" are equal, and NaN is not equal to
// itself.
func (c Cell) Equal(c2 Cell) bool {
	if c.kind != c2.kind {
		return false
	}
	switch c.kind {
	case cellNumber:
		return c.num == c2.num
	case cellString:
		return c.str == c2.str
	}
	return true
}

// Table is a named collection of rows over ordered, uniquely named columns.
type Table struct {
	name  string
	cols  []string
	index map[string]int
	rows  [][]Cell
}

// New creates an empty table with the given name and columns. Column names
// must be unique. Derived tables (joins, projections) may have an empty name.
func New(name string, columns []string) (*Table, error) {
	t := &Table{
		name:  name,
		cols:  append([]string{}, columns...),
		index: make(map[string]int),
	}
	for i, c := range t.cols {
		if _, ok := t.index[c]; ok {
			return nil, errors.Reason("duplicate column %q in table %q", c, name)
		}
		t.index[c] = i
	}
	return t, nil
}

// Name of the table; empty for derived tables.
func (t *Table) Name() string {
	return t.name
}

// Columns returns a copy of the column names, in order.
func (t *Table) Columns() []string {
	return append([]string{}, t.cols...)
}

// NumRows in the table.
func (t *Table) NumRows() int {
	return len(t.rows)
}

// Column returns the position of the named column, if present.
func (t *Table) Column(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

// CellAt returns the cell at the given row and column positions.
func (t *Table) CellAt(row, col int) Cell {
	return t.rows[row][col]
}

// AppendRow adds a row, which must have exactly one cell per column.
func (t *Table) AppendRow(cells ...Cell) error {
	if len(cells) != len(t.cols) {
		return errors.Reason("row has %d cells, table %q has %d columns",
			len(cells), t.name, len(t.cols))
	}
	t.rows = append(t.rows, cells)
	return nil
}

// Head returns a table with at most n leading rows of t, sharing the
// underlying cells.
func (t *Table) Head(n int) *Table {
	if n > len(t.rows) {
		n = len(t.rows)
	}
	if n < 0 {
		n = 0
	}
	t2 := *t
	t2.rows = t.rows[:n]
	return &t2
}

// Select returns a table with the given columns of t, in the given order.
// Selecting a column the table does not have is an error.
func (t *Table) Select(columns ...string) (*Table, error) {
	idx := make([]int, len(columns))
	for i, c := range columns {
		p, ok := t.index[c]
		if !ok {
			return nil, t.colErr(c)
		}
		idx[i] = p
	}
	t2, err := New(t.name, columns)
	if err != nil {
		return nil, err
	}
	for _, row := range t.rows {
		cells := make([]Cell, len(idx))
		for i, p := range idx {
			cells[i] = row[p]
		}
		t2.rows = append(t2.rows, cells)
	}
	return t2, nil
}

func (t *Table) colErr(name string) error {
	if t.name == "" {
		return errors.Reason("column %q not found", name)
	}
	return errors.Reason("column %q not found in table %q", name, t.name)
}
