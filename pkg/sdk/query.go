package patientdir

import (
	"context"

	"github.com/kailas-cloud/patientdir/internal/domain/search/order"
	"github.com/kailas-cloud/patientdir/internal/domain/search/request"
)

// QueryBuilder is a fluent builder for directory queries.
// Unset values take the HTTP defaults: page 1, limit 10, default search fields.
type QueryBuilder struct {
	client *Client

	search       string
	searchFields []string
	filters      map[string][]string
	sort         string

	page   *int
	limit  *int
	offset *int
}

// Search sets the case-insensitive search term.
func (b *QueryBuilder) Search(term string) *QueryBuilder {
	b.search = term
	return b
}

// In restricts the search to the given fields. "contact" searches the
// contact list.
func (b *QueryBuilder) In(fields ...string) *QueryBuilder {
	b.searchFields = append(b.searchFields[:0:0], fields...)
	return b
}

// Where adds accepted values for a field. Values for one field are OR-ed;
// different fields are AND-ed. Repeated calls for a field add values.
func (b *QueryBuilder) Where(field string, values ...string) *QueryBuilder {
	if b.filters == nil {
		b.filters = make(map[string][]string)
	}
	b.filters[field] = append(b.filters[field], values...)
	return b
}

// AgeRange adds an age interval: "18-65" or "65+".
func (b *QueryBuilder) AgeRange(ranges ...string) *QueryBuilder {
	return b.Where(request.AgeRangeField, ranges...)
}

// SortBy orders results by field. Records missing the field go last.
func (b *QueryBuilder) SortBy(field string, dir Direction) *QueryBuilder {
	b.sort = order.Sort{Field: field, Direction: order.Direction(dir)}.String()
	return b
}

// Page selects a 1-based page.
func (b *QueryBuilder) Page(n int) *QueryBuilder {
	b.page = &n
	return b
}

// Limit sets the page size (1..100).
func (b *QueryBuilder) Limit(n int) *QueryBuilder {
	b.limit = &n
	return b
}

// Offset skips n matched records, overriding the page-derived offset.
func (b *QueryBuilder) Offset(n int) *QueryBuilder {
	b.offset = &n
	return b
}

// Do executes the query.
func (b *QueryBuilder) Do(ctx context.Context) (Page, error) {
	req := request.New(request.Params{
		Page:         b.page,
		Limit:        b.limit,
		Offset:       b.offset,
		Search:       b.search,
		SearchFields: b.searchFields,
		Filters:      b.filters,
		Sort:         b.sort,
	})
	return b.client.run(ctx, "query", &req)
}
