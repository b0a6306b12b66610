package patient

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/kailas-cloud/patientdir/internal/domain"
	dompatient "github.com/kailas-cloud/patientdir/internal/domain/patient"
)

func TestDecode_Sample(t *testing.T) {
	records, err := Decode([]byte(sampleJSON))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len = %d, want 2", len(records))
	}

	ann := records[0]
	if id, ok := ann.ID(); !ok || id != 1 {
		t.Errorf("ID() = %v, %v", id, ok)
	}
	if name, _ := ann.Name(); name != "Ann Lee" {
		t.Errorf("Name() = %q", name)
	}
	if age, _ := ann.Age(); age != 35 {
		t.Errorf("Age() = %v", age)
	}
	if _, ok := ann.PhotoURL(); ok {
		t.Error("null photo_url should be absent")
	}
	if c := ann.Contacts(); len(c) != 1 || c[0].Email == nil || *c[0].Email != "ann@example.com" {
		t.Errorf("Contacts() = %+v", c)
	}

	bob := records[1]
	if c := bob.Contacts(); len(c) != 1 || c[0].Address != nil || c[0].Number != nil || c[0].Email != nil {
		t.Errorf("null contact fields should be nil: %+v", c)
	}
	if v, ok := bob.Field("ward"); !ok || v.Str() != "B2" {
		t.Errorf("Field(ward) = %+v, %v", v, ok)
	}
	if v, ok := bob.Field("insured"); !ok || v.Kind() != dompatient.KindBool {
		t.Errorf("Field(insured) = %+v, %v", v, ok)
	}
}

func TestDecode_RawIsCompactRecord(t *testing.T) {
	records, err := Decode([]byte(`[ {"patient_id": 1, "custom": {"a": [1, 2]}} ]`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	raw, err := json.Marshal(records[0])
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != `{"patient_id":1,"custom":{"a":[1,2]}}` {
		t.Errorf("raw = %s", raw)
	}
	if _, ok := records[0].Field("custom"); ok {
		t.Error("nested extra should not be addressable")
	}
}

func TestDecode_WrongTypesAreAbsent(t *testing.T) {
	records, err := Decode([]byte(`[{"age": "35", "patient_name": 7, "contact": "none"}]`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p := records[0]
	if _, ok := p.Age(); ok {
		t.Error("string age should be absent")
	}
	if _, ok := p.Name(); ok {
		t.Error("numeric name should be absent")
	}
	if len(p.Contacts()) != 0 {
		t.Errorf("Contacts() = %+v", p.Contacts())
	}
}

func TestDecode_Empty(t *testing.T) {
	records, err := Decode([]byte(`[]`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("len = %d", len(records))
	}
}

func TestDecode_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed", `[{"patient_id": 1`},
		{"object document", `{"patient_id": 1}`},
		{"scalar element", `[{"patient_id": 1}, 2]`},
		{"empty input", ``},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data))
			if !errors.Is(err, domain.ErrInvalidData) {
				t.Errorf("expected ErrInvalidData, got %v", err)
			}
		})
	}
}
