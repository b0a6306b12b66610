package patient

import (
	"fmt"

	"github.com/valyala/fastjson"

	"github.com/kailas-cloud/patientdir/internal/domain"
	dompatient "github.com/kailas-cloud/patientdir/internal/domain/patient"
)

var parserPool fastjson.ParserPool

// Decode parses a JSON array of patient objects. Every record keeps a compact
// copy of its own JSON. Known fields of an unexpected type are treated as
// absent; nested values other than contact are dropped from field lookup.
func Decode(data []byte) ([]dompatient.Patient, error) {
	p := parserPool.Get()
	defer parserPool.Put(p)

	v, err := p.ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidData, err)
	}
	items, err := v.Array()
	if err != nil {
		return nil, fmt.Errorf("%w: document is %s, want array", domain.ErrInvalidData, v.Type())
	}

	out := make([]dompatient.Patient, 0, len(items))
	for i, item := range items {
		rec, err := decodeRecord(item)
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %w", domain.ErrInvalidData, i, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func decodeRecord(v *fastjson.Value) (dompatient.Patient, error) {
	obj, err := v.Object()
	if err != nil {
		return dompatient.Patient{}, fmt.Errorf("got %s, want object", v.Type())
	}

	var a dompatient.Attrs
	obj.Visit(func(key []byte, fv *fastjson.Value) {
		switch name := string(key); name {
		case dompatient.FieldID:
			a.ID = number(fv)
		case dompatient.FieldName:
			a.Name = str(fv)
		case dompatient.FieldAge:
			a.Age = number(fv)
		case dompatient.FieldPhotoURL:
			a.PhotoURL = str(fv)
		case dompatient.FieldMedicalIssue:
			a.MedicalIssue = str(fv)
		case dompatient.FieldContact:
			a.Contacts = contacts(fv)
		default:
			if val, ok := scalar(fv); ok {
				if a.Extra == nil {
					a.Extra = make(map[string]dompatient.Value)
				}
				a.Extra[name] = val
			}
		}
	})

	return dompatient.New(a, v.MarshalTo(nil)), nil
}

func str(v *fastjson.Value) *string {
	if v == nil || v.Type() != fastjson.TypeString {
		return nil
	}
	b, err := v.StringBytes()
	if err != nil {
		return nil
	}
	s := string(b)
	return &s
}

func number(v *fastjson.Value) *float64 {
	if v == nil || v.Type() != fastjson.TypeNumber {
		return nil
	}
	f, err := v.Float64()
	if err != nil {
		return nil
	}
	return &f
}

func contacts(v *fastjson.Value) []dompatient.Contact {
	if v.Type() != fastjson.TypeArray {
		return nil
	}
	items, _ := v.Array()
	out := make([]dompatient.Contact, 0, len(items))
	for _, item := range items {
		if item.Type() != fastjson.TypeObject {
			continue
		}
		out = append(out, dompatient.Contact{
			Address: str(item.Get("address")),
			Number:  str(item.Get("number")),
			Email:   str(item.Get("email")),
		})
	}
	return out
}

func scalar(v *fastjson.Value) (dompatient.Value, bool) {
	switch v.Type() {
	case fastjson.TypeString:
		if s := str(v); s != nil {
			return dompatient.String(*s), true
		}
	case fastjson.TypeNumber:
		if n := number(v); n != nil {
			return dompatient.Number(*n), true
		}
	case fastjson.TypeTrue:
		return dompatient.Bool(true), true
	case fastjson.TypeFalse:
		return dompatient.Bool(false), true
	}
	return dompatient.Value{}, false
}
