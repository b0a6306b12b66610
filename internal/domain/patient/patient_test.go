package patient

import (
	"reflect"
	"testing"
)

func strPtr(s string) *string   { return &s }
func numPtr(n float64) *float64 { return &n }

func sample() Patient {
	return New(Attrs{
		ID:           numPtr(7),
		Name:         strPtr("Ann Lee"),
		Age:          numPtr(35),
		Contacts:     []Contact{{Email: strPtr("ann@example.com")}},
		MedicalIssue: strPtr("fever"),
		Extra: map[string]Value{
			"ward":    String("B2"),
			"weight":  Number(61.5),
			"insured": Bool(true),
		},
	}, nil)
}

func TestField_Known(t *testing.T) {
	p := sample()

	v, ok := p.Field(FieldAge)
	if !ok || v.Kind() != KindNumber || v.Num() != 35 {
		t.Errorf("Field(age) = %+v, %v", v, ok)
	}
	v, ok = p.Field(FieldName)
	if !ok || v.Kind() != KindString || v.Str() != "Ann Lee" {
		t.Errorf("Field(patient_name) = %+v, %v", v, ok)
	}
	if _, ok = p.Field(FieldPhotoURL); ok {
		t.Error("Field(photo_url) should be absent")
	}
	if _, ok = p.Field(FieldContact); ok {
		t.Error("Field(contact) should not be scalar")
	}
}

func TestField_Extra(t *testing.T) {
	p := sample()

	v, ok := p.Field("ward")
	if !ok || v.Text() != "B2" {
		t.Errorf("Field(ward) = %+v, %v", v, ok)
	}
	v, ok = p.Field("insured")
	if !ok || v.Kind() != KindBool || v.Text() != "true" {
		t.Errorf("Field(insured) = %+v, %v", v, ok)
	}
	if _, ok = p.Field("unknown"); ok {
		t.Error("Field(unknown) should be absent")
	}
}

func TestValue_Text(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{String("x"), "x"},
		{Number(35), "35"},
		{Number(3.5), "3.5"},
		{Number(-2), "-2"},
		{Bool(false), "false"},
		{Value{}, ""},
	}
	for _, tt := range tests {
		if got := tt.v.Text(); got != tt.want {
			t.Errorf("Text() = %q, want %q", got, tt.want)
		}
	}
}

func TestAccessors(t *testing.T) {
	p := sample()
	if id, ok := p.ID(); !ok || id != 7 {
		t.Errorf("ID() = %v, %v", id, ok)
	}
	if _, ok := p.PhotoURL(); ok {
		t.Error("PhotoURL() should be absent")
	}
	if issue, ok := p.MedicalIssue(); !ok || issue != "fever" {
		t.Errorf("MedicalIssue() = %q, %v", issue, ok)
	}
	if len(p.Contacts()) != 1 {
		t.Errorf("Contacts() len = %d", len(p.Contacts()))
	}
	if p.Raw() != nil {
		t.Error("Raw() should be nil for records built in code")
	}
}

func TestExtraNames(t *testing.T) {
	p := sample()
	want := []string{"insured", "ward", "weight"}
	if got := p.ExtraNames(); !reflect.DeepEqual(got, want) {
		t.Errorf("ExtraNames() = %v, want %v", got, want)
	}
}

func TestMarshalJSON_Raw(t *testing.T) {
	raw := []byte(`{"patient_id":1,"custom":"kept"}`)
	p := New(Attrs{ID: numPtr(1)}, raw)
	data, err := p.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	if string(data) != string(raw) {
		t.Errorf("MarshalJSON() = %s, want %s", data, raw)
	}
}

func TestMarshalJSON_Attrs(t *testing.T) {
	p := New(Attrs{Name: strPtr("Ann"), Age: numPtr(35)}, nil)
	data, err := p.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	want := `{"age":35,"contact":[],"patient_name":"Ann","photo_url":null}`
	if string(data) != want {
		t.Errorf("MarshalJSON() = %s, want %s", data, want)
	}
}
