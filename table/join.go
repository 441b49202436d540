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
	"strconv"
	"strings"

	"github.com/stockparfait/errors"
)

// JoinKey names one pair of key columns for an inner join.
type JoinKey struct {
	Left  string
	Right string
}

// joinKey returns a hashable representation of a row's key tuple and whether
// the tuple is usable. Null and NaN components never match anything. Number
// keys compare numerically, so "2019" and "2019.0" form the same key. Each
// component is length-prefixed, so distinct tuples never serialize to the
// same key regardless of the bytes in the values.
func joinKey(row []Cell, idx []int) (string, bool) {
	var sb strings.Builder
	for _, i := range idx {
		c := row[i]
		var part string
		switch {
		case c.IsNull():
			return "", false
		case c.IsNumber():
			if math.IsNaN(c.num) {
				return "", false
			}
			part = "n:" + strconv.FormatFloat(c.num, 'g', -1, 64)
		default:
			part = "s:" + c.str
		}
		sb.WriteString(strconv.Itoa(len(part)))
		sb.WriteByte(':')
		sb.WriteString(part)
	}
	return sb.String(), true
}

// InnerJoin computes the inner equi-join of two tables on one or more key
// column pairs. The right table is indexed, and the left table is probed in
// row order, so the output preserves the left table's row order; rows with
// the same key on both sides produce their cartesian product. The output
// columns are the left columns followed by the right columns, both key
// columns included. A key column missing from its table is an error.
func InnerJoin(left, right *Table, on ...JoinKey) (*Table, error) {
	if len(on) == 0 {
		return nil, errors.Reason("inner join requires at least one key column pair")
	}
	leftIdx := make([]int, len(on))
	rightIdx := make([]int, len(on))
	for i, k := range on {
		p, ok := left.Column(k.Left)
		if !ok {
			return nil, left.colErr(k.Left)
		}
		leftIdx[i] = p
		p, ok = right.Column(k.Right)
		if !ok {
			return nil, right.colErr(k.Right)
		}
		rightIdx[i] = p
	}
	t, err := New("", append(left.Columns(), right.Columns()...))
	if err != nil {
		return nil, errors.Annotate(err, "failed to merge columns of %q and %q",
			left.name, right.name)
	}
	byKey := make(map[string][]int)
	for i, row := range right.rows {
		k, ok := joinKey(row, rightIdx)
		if !ok {
			continue
		}
		byKey[k] = append(byKey[k], i)
	}
	for _, lrow := range left.rows {
		k, ok := joinKey(lrow, leftIdx)
		if !ok {
			continue
		}
		for _, ri := range byKey[k] {
			row := make([]Cell, 0, len(t.cols))
			row = append(row, lrow...)
			row = append(row, right.rows[ri]...)
			t.rows = append(t.rows, row)
		}
	}
	return t, nil
}
