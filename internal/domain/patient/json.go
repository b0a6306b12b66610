package patient

import (
	"encoding/json"
	"fmt"
	"sort"
)

// MarshalJSON emits the record exactly as it was loaded. Records built in code
// are rendered from their attributes.
func (p Patient) MarshalJSON() ([]byte, error) {
	if p.raw != nil {
		return p.raw, nil
	}

	out := make(map[string]any, len(p.extra)+6)
	for k, v := range p.extra {
		switch v.Kind() {
		case KindString:
			out[k] = v.str
		case KindNumber:
			out[k] = v.num
		case KindBool:
			out[k] = v.flag
		}
	}
	if p.id != nil {
		out[FieldID] = *p.id
	}
	if p.name != nil {
		out[FieldName] = *p.name
	}
	if p.age != nil {
		out[FieldAge] = *p.age
	}
	out[FieldPhotoURL] = p.photoURL
	contacts := make([]map[string]*string, len(p.contacts))
	for i, c := range p.contacts {
		contacts[i] = map[string]*string{
			"address": c.Address,
			"number":  c.Number,
			"email":   c.Email,
		}
	}
	out[FieldContact] = contacts
	if p.medicalIssue != nil {
		out[FieldMedicalIssue] = *p.medicalIssue
	}

	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("marshal patient: %w", err)
	}
	return data, nil
}

// ExtraNames returns the names of extra scalar fields in sorted order.
func (p *Patient) ExtraNames() []string {
	names := make([]string, 0, len(p.extra))
	for k := range p.extra {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
