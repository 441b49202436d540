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

package ghgrp

type TableName = string

// Envirofacts tables of the Greenhouse Gas Reporting Program joined into the
// master emissions table.
const (
	FacilityTable  = TableName("PUB_DIM_FACILITY")
	EmissionTable  = TableName("PUB_FACTS_SECTOR_GHG_EMISSION")
	SectorTable    = TableName("PUB_DIM_SECTOR")
	SubsectorTable = TableName("PUB_DIM_SUBSECTOR")
	GasTable       = TableName("PUB_DIM_GHG")
)

// AllTables returns the GHGRP table names, in their fetching order.
func AllTables() []TableName {
	return []TableName{
		FacilityTable,
		EmissionTable,
		SectorTable,
		SubsectorTable,
		GasTable,
	}
}

// Col returns the qualified name of a table column, as it appears in fetched
// and joined tables.
func Col(table TableName, column string) string {
	return string(table) + "." + column
}

// MasterColumns is the column set of the projected master emissions table,
// in output order: the facility location and ownership, the sector,
// subsector and gas dimensions, and the CO2 equivalent emission value.
var MasterColumns = []string{
	Col(FacilityTable, "LATITUDE"),
	Col(FacilityTable, "LONGITUDE"),
	Col(FacilityTable, "CITY"),
	Col(FacilityTable, "STATE"),
	Col(FacilityTable, "ZIP"),
	Col(FacilityTable, "COUNTY"),
	Col(FacilityTable, "ADDRESS1"),
	Col(FacilityTable, "YEAR"),
	Col(FacilityTable, "PARENT_COMPANY"),
	Col(SectorTable, "SECTOR_NAME"),
	Col(SubsectorTable, "SUBSECTOR_DESC"),
	Col(GasTable, "GAS_CODE"),
	Col(EmissionTable, "CO2E_EMISSION"),
}
