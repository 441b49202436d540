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

// Package efservice implements the generic table API of the EPA Envirofacts
// Data Service.
//
// Official documentation is at https://www.epa.gov/enviro/web-services .
//
// Envirofacts addresses everything through the URL path: the table name,
// optional column filters and the response format are appended as path
// segments, in a fixed order. Filter values appear in the URL exactly as
// given, since the service matches them verbatim. A Query builds such a URL
// nondestructively, so partial queries can be shared and extended.
//
// Tables fetched in the CSV format arrive with a header row naming each
// column as TABLE.COLUMN; the JSON format is a flat array of objects. Both
// are parsed into a table.Table with qualified column names.
//
// APIs for specific data products, such as the Greenhouse Gas Reporting
// Program, are implemented in the subpackages.
package efservice
