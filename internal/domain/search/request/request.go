package request

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/oapi-codegen/runtime"

	"github.com/kailas-cloud/patientdir/internal/domain/patient"
	"github.com/kailas-cloud/patientdir/internal/domain/search/filter"
	"github.com/kailas-cloud/patientdir/internal/domain/search/order"
)

// Paging limits.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Field names with query semantics of their own.
const (
	// ContactField searches inside the nested contact list.
	ContactField = patient.FieldContact
	// AgeRangeField carries "min-max" / "min+" values matched against age.
	AgeRangeField = "age_range"
	// MedicalIssueField is matched case-insensitively.
	MedicalIssueField = patient.FieldMedicalIssue
)

// Recognized query keys. Everything else is a filter.
const (
	KeyPage         = "page"
	KeyLimit        = "limit"
	KeyOffset       = "offset"
	KeySearch       = "search"
	KeySearchFields = "searchFields"
	KeySort         = "sort"
	// KeySortFields is accepted and consumed but has no effect.
	KeySortFields = "sortFields"
)

var reserved = map[string]struct{}{
	KeyPage:         {},
	KeyLimit:        {},
	KeyOffset:       {},
	KeySearch:       {},
	KeySearchFields: {},
	KeySort:         {},
	KeySortFields:   {},
}

// IsReserved reports whether key is a recognized query key.
func IsReserved(key string) bool {
	_, ok := reserved[key]
	return ok
}

// DefaultSearchFields returns the fields searched when none are given.
func DefaultSearchFields() []string {
	return []string{patient.FieldName, MedicalIssueField, ContactField}
}

// Params are raw query parameters. Nil pointers mean "not supplied".
type Params struct {
	Page         *int
	Limit        *int
	Offset       *int
	Search       string
	SearchFields []string
	Filters      map[string][]string
	Sort         string
}

// Request is a normalized query. Page and limit are always positive.
type Request struct {
	page         int
	limit        int
	offset       int
	search       string
	searchFields []string
	filters      filter.Expression
	sort         order.Sort
}

// New normalizes params. It never fails: bad values fall back to defaults.
func New(p Params) Request {
	page := DefaultPage
	if p.Page != nil {
		page = max(*p.Page, 1)
	}
	limit := DefaultLimit
	if p.Limit != nil {
		limit = max(min(*p.Limit, MaxLimit), 1)
	}
	offset := math.MaxInt
	if page-1 <= math.MaxInt/limit {
		offset = (page - 1) * limit
	}
	if p.Offset != nil {
		offset = max(*p.Offset, 0)
	}

	fields := DefaultSearchFields()
	if p.SearchFields != nil {
		fields = make([]string, 0, len(p.SearchFields))
		for _, f := range p.SearchFields {
			if f = strings.TrimSpace(f); f != "" {
				fields = append(fields, f)
			}
		}
	}

	return Request{
		page:         page,
		limit:        limit,
		offset:       offset,
		search:       strings.ToLower(strings.TrimSpace(p.Search)),
		searchFields: fields,
		filters:      filter.NewExpression(withoutReserved(p.Filters)),
		sort:         order.Parse(p.Sort),
	}
}

func withoutReserved(m map[string][]string) map[string][]string {
	out := make(map[string][]string, len(m))
	for k, vs := range m {
		if !IsReserved(k) {
			out[k] = vs
		}
	}
	return out
}

// Parse normalizes URL query values. For recognized keys the first value wins;
// every other key becomes a filter, repeated keys adding accepted values.
func Parse(q url.Values) Request {
	p := Params{
		Page:   intParam(q, KeyPage),
		Limit:  intParam(q, KeyLimit),
		Offset: intParam(q, KeyOffset),
		Search: q.Get(KeySearch),
		Sort:   q.Get(KeySort),
	}
	if q.Has(KeySearchFields) {
		p.SearchFields = bindList(KeySearchFields, q.Get(KeySearchFields))
	}
	for k, vs := range q {
		if IsReserved(k) {
			continue
		}
		if p.Filters == nil {
			p.Filters = make(map[string][]string)
		}
		p.Filters[k] = append(p.Filters[k], vs...)
	}
	return New(p)
}

// intParam returns nil when the key is missing or not an integer.
func intParam(q url.Values, key string) *int {
	if !q.Has(key) {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(q.Get(key)))
	if err != nil {
		return nil
	}
	return &n
}

// bindList splits a comma-separated form value. An unbindable value yields an
// empty, non-nil list so that no field is searched.
func bindList(key, raw string) []string {
	var out []string
	err := runtime.BindQueryParameter("form", false, false, key, url.Values{key: {raw}}, &out)
	if err != nil || out == nil {
		return []string{}
	}
	return out
}

// Page returns the 1-based page number.
func (r *Request) Page() int { return r.page }

// Limit returns the page size.
func (r *Request) Limit() int { return r.limit }

// Offset returns the index of the first record of the page.
func (r *Request) Offset() int { return r.offset }

// Search returns the lower-cased, trimmed search term.
func (r *Request) Search() string { return r.search }

// SearchFields returns the fields searched, in evaluation order.
func (r *Request) SearchFields() []string { return r.searchFields }

// Filters returns the filter expression.
func (r *Request) Filters() filter.Expression { return r.filters }

// Sort returns the requested ordering. The zero Sort keeps input order.
func (r *Request) Sort() order.Sort { return r.sort }

// Values renders the request back to query form.
func (r *Request) Values() url.Values {
	q := url.Values{}
	q.Set(KeyPage, strconv.Itoa(r.page))
	q.Set(KeyLimit, strconv.Itoa(r.limit))
	q.Set(KeyOffset, strconv.Itoa(r.offset))
	if r.search != "" {
		q.Set(KeySearch, r.search)
	}
	q.Set(KeySearchFields, strings.Join(r.searchFields, ","))
	if !r.sort.IsZero() {
		q.Set(KeySort, r.sort.String())
	}
	for _, s := range r.filters.Sets() {
		for _, v := range s.Values() {
			q.Add(s.Key(), v)
		}
	}
	return q
}
