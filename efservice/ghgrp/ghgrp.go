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

// Package ghgrp assembles the master emissions table of the EPA Greenhouse
// Gas Reporting Program from its Envirofacts tables.
package ghgrp

import (
	"context"

	"github.com/ghgfacts/ghgfacts/efservice"
	"github.com/ghgfacts/ghgfacts/table"
	"github.com/stockparfait/errors"
	"github.com/stockparfait/iterator"
	"github.com/stockparfait/logging"
)

// Filters narrow the facility query; zero values are omitted from the URL.
// The dimension and fact tables are always fetched whole, so the join
// semantics do not depend on the filters.
type Filters struct {
	State  string
	County string
	ZIP    string
	Year   string
}

func (f Filters) apply(q *efservice.Query) *efservice.Query {
	if f.State != "" {
		q = q.State(f.State)
	}
	if f.County != "" {
		q = q.County(f.County)
	}
	if f.ZIP != "" {
		q = q.ZIP(f.ZIP)
	}
	if f.Year != "" {
		q = q.Year(f.Year)
	}
	return q
}

// Dataset holds the fetched GHGRP tables.
type Dataset struct {
	Tables map[TableName]*table.Table
}

// NewDataset initializes an empty GHGRP dataset.
func NewDataset() *Dataset {
	return &Dataset{Tables: make(map[TableName]*table.Table)}
}

// FetchAll downloads all the GHGRP tables in parallel, parsing their CSV
// leniently. Filters apply to the facility table only. A single failed
// table fails the entire fetch; the error names the table in AllTables
// order.
func (d *Dataset) FetchAll(ctx context.Context, f Filters) error {
	type fetchResult struct {
		name TableName
		tbl  *table.Table
		err  error
	}
	fetchTable := func(name TableName) fetchResult {
		q := efservice.NewQuery(string(name)).Lenient()
		if name == FacilityTable {
			q = f.apply(q)
		}
		tbl, err := q.Fetch(ctx, efservice.CSV)
		if err != nil {
			return fetchResult{name: name, err: err}
		}
		logging.Infof(ctx, "fetched %s: %d rows", name, tbl.NumRows())
		return fetchResult{name: name, tbl: tbl}
	}
	pm := iterator.ParallelMap(ctx, len(AllTables()),
		iterator.FromSlice(AllTables()), fetchTable)
	defer iterator.Flush(pm)
	results := iterator.Reduce[fetchResult, map[TableName]fetchResult](
		pm, make(map[TableName]fetchResult),
		func(r fetchResult, m map[TableName]fetchResult) map[TableName]fetchResult {
			m[r.name] = r
			return m
		})
	for _, name := range AllTables() {
		r, ok := results[name]
		if !ok {
			return errors.Reason("table %s was not fetched", name)
		}
		if r.err != nil {
			return errors.Annotate(r.err, "failed to fetch table %s", name)
		}
		d.Tables[name] = r.tbl
	}
	return nil
}

func (d *Dataset) get(name TableName) (*table.Table, error) {
	t, ok := d.Tables[name]
	if !ok {
		return nil, errors.Reason("table %s is not in the dataset", name)
	}
	return t, nil
}

// Master joins the fetched tables into the master emissions table: facilities
// with emissions on (FACILITY_ID, YEAR), then each of the sector, subsector
// and gas dimensions on its ID column. An empty result is not an error, but
// a missing table or join column is.
func (d *Dataset) Master() (*table.Table, error) {
	facilities, err := d.get(FacilityTable)
	if err != nil {
		return nil, err
	}
	emissions, err := d.get(EmissionTable)
	if err != nil {
		return nil, err
	}
	m, err := table.InnerJoin(facilities, emissions,
		table.JoinKey{
			Left:  Col(FacilityTable, "FACILITY_ID"),
			Right: Col(EmissionTable, "FACILITY_ID"),
		},
		table.JoinKey{
			Left:  Col(FacilityTable, "YEAR"),
			Right: Col(EmissionTable, "YEAR"),
		})
	if err != nil {
		return nil, errors.Annotate(err, "failed to join %s with %s",
			FacilityTable, EmissionTable)
	}
	dims := []struct {
		table TableName
		key   string
	}{
		{SectorTable, "SECTOR_ID"},
		{SubsectorTable, "SUBSECTOR_ID"},
		{GasTable, "GAS_ID"},
	}
	for _, dim := range dims {
		t, err := d.get(dim.table)
		if err != nil {
			return nil, err
		}
		m, err = table.InnerJoin(m, t, table.JoinKey{
			Left:  Col(EmissionTable, dim.key),
			Right: Col(dim.table, dim.key),
		})
		if err != nil {
			return nil, errors.Annotate(err, "failed to join %s with %s",
				EmissionTable, dim.table)
		}
	}
	return m, nil
}

// Pull fetches the GHGRP tables and returns the master emissions table
// projected to MasterColumns.
func Pull(ctx context.Context, f Filters) (*table.Table, error) {
	d := NewDataset()
	if err := d.FetchAll(ctx, f); err != nil {
		return nil, errors.Annotate(err, "failed to fetch GHGRP tables")
	}
	m, err := d.Master()
	if err != nil {
		return nil, errors.Annotate(err, "failed to build the master table")
	}
	m, err = m.Select(MasterColumns...)
	if err != nil {
		return nil, errors.Annotate(err, "failed to project the master table")
	}
	logging.Infof(ctx, "master table: %d rows", m.NumRows())
	return m, nil
}
