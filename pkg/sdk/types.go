package patientdir

import (
	"encoding/json"

	"github.com/spf13/cast"

	dompatient "github.com/kailas-cloud/patientdir/internal/domain/patient"
	"github.com/kailas-cloud/patientdir/internal/domain/search/order"
	"github.com/kailas-cloud/patientdir/internal/domain/search/result"
)

// Direction controls sort order.
type Direction string

// Sort direction constants.
const (
	Asc  Direction = Direction(order.Asc)
	Desc Direction = Direction(order.Desc)
)

// Contact is one entry of a patient's contact list. Nil means absent.
type Contact struct {
	Address *string
	Number  *string
	Email   *string
}

// Patient is a directory record. Nil pointers mean the field is absent or null.
type Patient struct {
	ID           *float64
	Name         *string
	Age          *float64
	PhotoURL     *string
	Contacts     []Contact
	MedicalIssue *string
	// Extra holds additional scalar fields: string, float64 or bool.
	Extra map[string]any
	// Raw is the record as served over HTTP. Empty for input records.
	Raw json.RawMessage
}

// Page is one page of query results.
type Page struct {
	Total       int
	Page        int
	Limit       int
	TotalPages  int
	HasNextPage bool
	HasPrevPage bool
	Patients    []Patient
}

// HealthStatus represents the aggregated directory health.
type HealthStatus struct {
	Status string            // "ok", "degraded", "error"
	Checks map[string]string // component -> "ok"/"error"
}

func patientToDomain(p *Patient) dompatient.Patient {
	contacts := make([]dompatient.Contact, len(p.Contacts))
	for i, c := range p.Contacts {
		contacts[i] = dompatient.Contact{Address: clone(c.Address), Number: clone(c.Number), Email: clone(c.Email)}
	}

	var extra map[string]dompatient.Value
	if len(p.Extra) > 0 {
		extra = make(map[string]dompatient.Value, len(p.Extra))
		for k, v := range p.Extra {
			if val, ok := valueToDomain(v); ok {
				extra[k] = val
			}
		}
	}

	return dompatient.New(dompatient.Attrs{
		ID:           clone(p.ID),
		Name:         clone(p.Name),
		Age:          clone(p.Age),
		PhotoURL:     clone(p.PhotoURL),
		Contacts:     contacts,
		MedicalIssue: clone(p.MedicalIssue),
		Extra:        extra,
	}, nil)
}

// valueToDomain keeps scalars only; nested values are not addressable by queries.
func valueToDomain(v any) (dompatient.Value, bool) {
	switch x := v.(type) {
	case string:
		return dompatient.String(x), true
	case bool:
		return dompatient.Bool(x), true
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return dompatient.Number(cast.ToFloat64(x)), true
	default:
		return dompatient.Value{}, false
	}
}

func patientFromDomain(p *dompatient.Patient) (Patient, error) {
	out := Patient{
		ID:           opt(p.ID()),
		Name:         opt(p.Name()),
		Age:          opt(p.Age()),
		PhotoURL:     opt(p.PhotoURL()),
		MedicalIssue: opt(p.MedicalIssue()),
	}

	out.Contacts = make([]Contact, len(p.Contacts()))
	for i, c := range p.Contacts() {
		out.Contacts[i] = Contact{Address: clone(c.Address), Number: clone(c.Number), Email: clone(c.Email)}
	}

	if names := p.ExtraNames(); len(names) > 0 {
		out.Extra = make(map[string]any, len(names))
		for _, name := range names {
			v, _ := p.Field(name)
			switch v.Kind() {
			case dompatient.KindString:
				out.Extra[name] = v.Str()
			case dompatient.KindNumber:
				out.Extra[name] = v.Num()
			case dompatient.KindBool:
				out.Extra[name] = v.Bool()
			}
		}
	}

	raw, err := p.MarshalJSON()
	if err != nil {
		return Patient{}, err
	}
	out.Raw = raw
	return out, nil
}

func pageFromDomain(p *result.Page) (Page, error) {
	data := p.Data()
	patients := make([]Patient, len(data))
	for i := range data {
		pt, err := patientFromDomain(&data[i])
		if err != nil {
			return Page{}, err
		}
		patients[i] = pt
	}
	return Page{
		Total:       p.Total(),
		Page:        p.Page(),
		Limit:       p.Limit(),
		TotalPages:  p.TotalPages(),
		HasNextPage: p.HasNextPage(),
		HasPrevPage: p.HasPrevPage(),
		Patients:    patients,
	}, nil
}

func opt[T any](v T, ok bool) *T {
	if !ok {
		return nil
	}
	return &v
}

// clone copies the pointee so records never share memory with the caller.
func clone[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
