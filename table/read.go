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
	"context"
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/stockparfait/errors"
	"github.com/stockparfait/logging"
)

// ParseMode controls how ReadCSV treats rows it cannot ingest.
type ParseMode int

const (
	// Strict mode fails the parse on any malformed row.
	Strict ParseMode = iota
	// Lenient mode skips malformed rows with a warning. Errors from the
	// underlying reader still abort the parse in either mode.
	Lenient
)

// qualify prefixes a column name with the table name, unless the name is
// empty or the column is already qualified.
func qualify(name, column string) string {
	if name == "" || strings.Contains(column, ".") {
		return column
	}
	return name + "." + column
}

// ReadCSV parses CSV data from r into a table. The first record is the
// header; header names not already qualified as TABLE.COLUMN are prefixed
// with the table name. Each field becomes a typed Cell as in ParseCell.
func ReadCSV(ctx context.Context, name string, r io.Reader, mode ParseMode) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if err != nil {
		return nil, errors.Annotate(err, "failed to read CSV header of table %q", name)
	}
	cols := make([]string, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\uFEFF") // byte order mark
		}
		cols[i] = qualify(name, h)
	}
	t, err := New(name, cols)
	if err != nil {
		return nil, err
	}
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if mode == Lenient && errors.As(err, &parseErr) {
				logging.Warningf(ctx, "table %q: skipping unparseable CSV: %s",
					name, err.Error())
				continue
			}
			return nil, errors.Annotate(err, "failed to read CSV row of table %q", name)
		}
		if len(rec) != len(cols) {
			line, _ := cr.FieldPos(0)
			if mode == Lenient {
				logging.Warningf(ctx, "table %q: skipping line %d with %d fields, expected %d",
					name, line, len(rec), len(cols))
				continue
			}
			return nil, errors.Reason("table %q: line %d has %d fields, expected %d",
				name, line, len(rec), len(cols))
		}
		cells := make([]Cell, len(rec))
		for i, f := range rec {
			cells[i] = ParseCell(f)
		}
		t.rows = append(t.rows, cells)
	}
	return t, nil
}

// ReadJSONRows converts a JSON array of flat objects into a table. The first
// object defines the column order; later objects may omit keys (null cells)
// or introduce new ones, which are appended and backfilled with nulls. Key
// names are qualified with the table name like CSV headers. Values must be
// scalars; a nested object or array is an error.
func ReadJSONRows(name string, objs []json.RawMessage) (*Table, error) {
	var cols []string
	index := make(map[string]int)
	var rows [][]Cell
	for n, raw := range objs {
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		tok, err := dec.Token()
		if err != nil {
			return nil, errors.Annotate(err, "failed to decode row %d of table %q", n, name)
		}
		if d, ok := tok.(json.Delim); !ok || d != '{' {
			return nil, errors.Reason("row %d of table %q is not a JSON object", n, name)
		}
		row := make([]Cell, len(cols))
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, errors.Annotate(err, "failed to decode row %d of table %q", n, name)
			}
			key, ok := keyTok.(string)
			if !ok {
				return nil, errors.Reason("row %d of table %q has a non-string key: %v",
					n, name, keyTok)
			}
			valTok, err := dec.Token()
			if err != nil {
				return nil, errors.Annotate(err, "failed to decode %q in row %d of table %q",
					key, n, name)
			}
			var cell Cell
			switch v := valTok.(type) {
			case nil:
				cell = Null()
			case string:
				cell = String(v)
			case json.Number:
				if f, err := v.Float64(); err == nil {
					cell = Cell{kind: cellNumber, str: v.String(), num: f}
				} else {
					cell = String(v.String())
				}
			case bool:
				cell = String(strconv.FormatBool(v))
			case json.Delim:
				return nil, errors.Reason("nested value of %q in row %d of table %q",
					key, n, name)
			}
			col := qualify(name, key)
			i, ok := index[col]
			if !ok {
				i = len(cols)
				index[col] = i
				cols = append(cols, col)
				for r := range rows {
					rows[r] = append(rows[r], Null())
				}
				row = append(row, Null())
			}
			row[i] = cell
		}
		rows = append(rows, row)
	}
	t, err := New(name, cols)
	if err != nil {
		return nil, err
	}
	t.rows = rows
	return t, nil
}
