package search

import (
	"strings"

	"github.com/kailas-cloud/patientdir/internal/domain/patient"
	"github.com/kailas-cloud/patientdir/internal/domain/search/filter"
	"github.com/kailas-cloud/patientdir/internal/domain/search/request"
)

// matchesSearch reports whether any of fields contains term. term is already
// lower-cased; an empty term matches everything.
func matchesSearch(p *patient.Patient, term string, fields []string) bool {
	if term == "" {
		return true
	}
	for _, name := range fields {
		if name == request.ContactField {
			if matchesContacts(p.Contacts(), term) {
				return true
			}
			continue
		}
		v, ok := p.Field(name)
		if !ok {
			continue
		}
		switch v.Kind() {
		case patient.KindString:
			if strings.Contains(strings.ToLower(v.Str()), term) {
				return true
			}
		case patient.KindNumber:
			if strings.Contains(v.Text(), term) {
				return true
			}
		}
	}
	return false
}

// matchesContacts checks address and email case-insensitively and the phone
// number as a raw substring.
func matchesContacts(contacts []patient.Contact, term string) bool {
	for _, c := range contacts {
		if c.Address != nil && strings.Contains(strings.ToLower(*c.Address), term) {
			return true
		}
		if c.Number != nil && strings.Contains(*c.Number, term) {
			return true
		}
		if c.Email != nil && strings.Contains(strings.ToLower(*c.Email), term) {
			return true
		}
	}
	return false
}

// matchesFilters is the AND of all non-empty sets.
func matchesFilters(p *patient.Patient, expr filter.Expression) bool {
	for _, set := range expr.Sets() {
		if set.IsEmpty() {
			continue
		}
		if !matchesSet(p, set) {
			return false
		}
	}
	return true
}

// matchesSet is the OR of one field's accepted values. An absent field never matches.
func matchesSet(p *patient.Patient, set filter.Set) bool {
	switch set.Key() {
	case request.AgeRangeField:
		age, ok := p.Age()
		return ok && set.MatchRange(age)
	case request.MedicalIssueField:
		issue, ok := p.MedicalIssue()
		return ok && set.MatchFold(issue)
	default:
		v, ok := p.Field(set.Key())
		return ok && set.MatchFold(v.Text())
	}
}
