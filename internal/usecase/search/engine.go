package search

import (
	"github.com/kailas-cloud/patientdir/internal/domain/patient"
	"github.com/kailas-cloud/patientdir/internal/domain/search/request"
	"github.com/kailas-cloud/patientdir/internal/domain/search/result"
)

// Execute runs one query over records: search, filter, sort, paginate.
// records is never modified. Execute is safe for concurrent use.
func Execute(records []patient.Patient, req *request.Request) result.Page {
	term := req.Search()
	fields := req.SearchFields()
	filters := req.Filters()

	matched := make([]patient.Patient, 0, len(records))
	for i := range records {
		p := &records[i]
		if !matchesSearch(p, term, fields) {
			continue
		}
		if !matchesFilters(p, filters) {
			continue
		}
		matched = append(matched, *p)
	}

	sortRecords(matched, req.Sort())

	return result.New(paginate(matched, req.Offset(), req.Limit()), len(matched), req.Page(), req.Limit())
}

// paginate slices one window. The result shares no spare capacity with records.
func paginate(records []patient.Patient, offset, limit int) []patient.Patient {
	total := len(records)
	start := min(max(offset, 0), total)
	end := min(start+limit, total)
	return records[start:end:end]
}
