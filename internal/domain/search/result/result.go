package result

import (
	"github.com/kailas-cloud/patientdir/internal/domain/patient"
	"github.com/kailas-cloud/patientdir/internal/domain/search/request"
)

// Page is one window of a query result plus navigation metadata.
type Page struct {
	total      int
	page       int
	limit      int
	totalPages int
	data       []patient.Patient
}

// New builds a Page. total counts all matches before pagination; limit must be positive.
func New(data []patient.Patient, total, page, limit int) Page {
	if data == nil {
		data = []patient.Patient{}
	}
	totalPages := 0
	if total > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return Page{
		total:      total,
		page:       page,
		limit:      limit,
		totalPages: totalPages,
		data:       data,
	}
}

// Total returns the match count before pagination.
func (p *Page) Total() int { return p.total }

// Page returns the requested page number.
func (p *Page) Page() int { return p.page }

// Limit returns the page size.
func (p *Page) Limit() int { return p.limit }

// TotalPages returns ceil(total/limit), 0 for an empty result.
func (p *Page) TotalPages() int { return p.totalPages }

// HasNextPage reports whether page < totalPages.
func (p *Page) HasNextPage() bool { return p.page < p.totalPages }

// HasPrevPage reports whether page > 1.
func (p *Page) HasPrevPage() bool { return p.page > 1 }

// Data returns the records of this page.
func (p *Page) Data() []patient.Patient { return p.data }

// Envelope is the wire form of a Page. Error is set only on failure.
type Envelope struct {
	Total       int               `json:"total"`
	Page        int               `json:"page"`
	Limit       int               `json:"limit"`
	HasNextPage bool              `json:"hasNextPage"`
	HasPrevPage bool              `json:"hasPrevPage"`
	TotalPages  int               `json:"totalPages"`
	Data        []patient.Patient `json:"data"`
	Error       string            `json:"error,omitempty"`
}

// Envelope converts the page to its wire form.
func (p *Page) Envelope() Envelope {
	return Envelope{
		Total:       p.total,
		Page:        p.page,
		Limit:       p.limit,
		HasNextPage: p.HasNextPage(),
		HasPrevPage: p.HasPrevPage(),
		TotalPages:  p.totalPages,
		Data:        p.data,
	}
}

// Failure is the envelope returned when no result could be produced.
func Failure(msg string) Envelope {
	return Envelope{
		Page:  request.DefaultPage,
		Limit: request.DefaultLimit,
		Data:  []patient.Patient{},
		Error: msg,
	}
}
