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

package efservice

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ghgfacts/ghgfacts/table"
	"github.com/stockparfait/errors"
	"github.com/stockparfait/fetch"
	"github.com/stockparfait/logging"
)

type contextKey int

const (
	clientContextKey contextKey = iota
)

// URL is the default base URL of the server. It may be overwritten in tests
// before creating a new client.
var URL = "https://data.epa.gov/efservice"

// Format of the server response, the mandatory URL segment after the
// filters.
type Format string

// Formats supported by the Data Service. The service also offers EXCEL,
// which this package does not parse.
const (
	CSV  Format = "CSV"
	JSON Format = "JSON"
)

// Client for querying Envirofacts tables.
type Client struct {
	baseURL string // the base URL of the server
}

// newClient creates a new client.
func newClient(baseURL string) *Client {
	return &Client{baseURL: baseURL}
}

// BaseURL of the server this client queries.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// GetClient extracts the Client from the context, if any.
func GetClient(ctx context.Context) *Client {
	c, ok := ctx.Value(clientContextKey).(*Client)
	if !ok {
		return nil
	}
	return c
}

// UseClient creates a new client for the current base URL and injects it
// into the context. Envirofacts requires no API key.
func UseClient(ctx context.Context) context.Context {
	return context.WithValue(ctx, clientContextKey, newClient(URL))
}

// Query for a single Envirofacts table. Query methods do not modify the
// query, but return a modified copy, for easy chaining and sharing of
// partial queries.
type Query struct {
	table    string
	state    string
	county   string
	zip      string
	year     string
	rowRange string
	mode     table.ParseMode
}

// NewQuery creates a query for the given table. Table names are not
// validated locally; the server rejects tables it does not serve.
func NewQuery(tableName string) *Query {
	return &Query{table: tableName}
}

// Copy the query.
func (q *Query) Copy() *Query {
	q2 := *q
	return &q2
}

// State filters results by a state abbreviation, e.g. "OH".
//
// Filter values are inserted into the URL verbatim, never URL-encoded: the
// service matches raw values, and encoding them changes the results.
func (q *Query) State(abbr string) *Query {
	q2 := q.Copy()
	q2.state = abbr
	return q2
}

// County filters results by a county name, e.g. "CUYAHOGA".
func (q *Query) County(name string) *Query {
	q2 := q.Copy()
	q2.county = name
	return q2
}

// ZIP filters results by a 5-digit ZIP code.
func (q *Query) ZIP(code string) *Query {
	q2 := q.Copy()
	q2.zip = code
	return q2
}

// Year filters results by a reporting year, e.g. "2019".
func (q *Query) Year(year string) *Query {
	q2 := q.Copy()
	q2.year = year
	return q2
}

// Rows limits results to a zero-based inclusive row range, e.g. "0:9" for
// the first 10 rows.
func (q *Query) Rows(rng string) *Query {
	q2 := q.Copy()
	q2.rowRange = rng
	return q2
}

// Lenient makes CSV parsing skip rows with the wrong number of fields
// instead of failing the fetch.
func (q *Query) Lenient() *Query {
	q2 := q.Copy()
	q2.mode = table.Lenient
	return q2
}

// Path returns the URL path of the query relative to the server base URL.
// Segments appear in the fixed order the service expects: the table name,
// the set filters, the format, and the row range when set.
func (q *Query) Path(f Format) string {
	segs := []string{q.table}
	if q.state != "" {
		segs = append(segs, "state_abbr", q.state)
	}
	if q.county != "" {
		segs = append(segs, "county_name", q.county)
	}
	if q.zip != "" {
		segs = append(segs, "zip_code", q.zip)
	}
	if q.year != "" {
		segs = append(segs, "reporting_year", q.year)
	}
	segs = append(segs, string(f))
	if q.rowRange != "" {
		segs = append(segs, "rows", q.rowRange)
	}
	return strings.Join(segs, "/")
}

// Fetch executes the query and parses the response in the given format into
// a table named after the queried table, with TABLE.COLUMN column names.
func (q *Query) Fetch(ctx context.Context, f Format) (*table.Table, error) {
	client := GetClient(ctx)
	if client == nil {
		return nil, errors.Reason("Query.Fetch: no client in context")
	}
	uri := client.BaseURL() + "/" + q.Path(f)
	logging.Debugf(ctx, "fetching %s", uri)
	switch f {
	case CSV:
		return q.fetchCSV(ctx, uri)
	case JSON:
		return q.fetchJSON(ctx, uri)
	}
	return nil, errors.Reason("unsupported format %q", string(f))
}

func (q *Query) fetchCSV(ctx context.Context, uri string) (*table.Table, error) {
	resp, err := fetch.GetRetry(ctx, uri, nil, nil)
	if err != nil {
		return nil, errors.Annotate(err, "failed to fetch %s", uri)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Reason("GET %s returned status %s", uri, resp.Status)
	}
	t, err := table.ReadCSV(ctx, q.table, resp.Body, q.mode)
	if err != nil {
		return nil, errors.Annotate(err, "failed to parse CSV from %s", uri)
	}
	return t, nil
}

func (q *Query) fetchJSON(ctx context.Context, uri string) (*table.Table, error) {
	var rows []json.RawMessage
	if err := fetch.FetchJSON(ctx, uri, &rows, nil, nil); err != nil {
		return nil, errors.Annotate(err, "failed to fetch %s", uri)
	}
	t, err := table.ReadJSONRows(q.table, rows)
	if err != nil {
		return nil, errors.Annotate(err, "failed to parse JSON from %s", uri)
	}
	return t, nil
}
