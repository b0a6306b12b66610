package patient

// Field names with dedicated accessors.
const (
	FieldID           = "patient_id"
	FieldName         = "patient_name"
	FieldAge          = "age"
	FieldPhotoURL     = "photo_url"
	FieldContact      = "contact"
	FieldMedicalIssue = "medical_issue"
)

// Contact is one entry of a patient's contact list. Every sub-field is optional.
type Contact struct {
	Address *string
	Number  *string
	Email   *string
}

// Patient is an immutable record of the directory collection.
type Patient struct {
	id           *float64
	name         *string
	age          *float64
	photoURL     *string
	contacts     []Contact
	medicalIssue *string
	extra        map[string]Value
	raw          []byte
}

// Attrs holds the known attributes used to build a Patient.
// Nil pointers mean the attribute is absent (or JSON null).
type Attrs struct {
	ID           *float64
	Name         *string
	Age          *float64
	PhotoURL     *string
	Contacts     []Contact
	MedicalIssue *string
	Extra        map[string]Value
}

// New builds a Patient from attributes and the raw JSON it was decoded from.
// raw may be nil for records built in code; MarshalJSON then renders the attributes.
func New(a Attrs, raw []byte) Patient {
	return Patient{
		id:           a.ID,
		name:         a.Name,
		age:          a.Age,
		photoURL:     a.PhotoURL,
		contacts:     a.Contacts,
		medicalIssue: a.MedicalIssue,
		extra:        a.Extra,
		raw:          raw,
	}
}

// ID returns the patient identifier.
func (p *Patient) ID() (float64, bool) { return deref(p.id) }

// Name returns the patient name.
func (p *Patient) Name() (string, bool) { return deref(p.name) }

// Age returns the patient age.
func (p *Patient) Age() (float64, bool) { return deref(p.age) }

// PhotoURL returns the photo URL.
func (p *Patient) PhotoURL() (string, bool) { return deref(p.photoURL) }

// Contacts returns the contact list.
func (p *Patient) Contacts() []Contact { return p.contacts }

// MedicalIssue returns the categorical medical issue.
func (p *Patient) MedicalIssue() (string, bool) { return deref(p.medicalIssue) }

// Raw returns the JSON bytes the record was loaded from (nil for records built in code).
func (p *Patient) Raw() []byte { return p.raw }

type getter func(p *Patient) (Value, bool)

// accessors maps known field names to typed getters. contact is not scalar and
// is intentionally missing: it is only reachable through Contacts().
var accessors = map[string]getter{
	FieldID:           numberGetter(func(p *Patient) *float64 { return p.id }),
	FieldName:         stringGetter(func(p *Patient) *string { return p.name }),
	FieldAge:          numberGetter(func(p *Patient) *float64 { return p.age }),
	FieldPhotoURL:     stringGetter(func(p *Patient) *string { return p.photoURL }),
	FieldMedicalIssue: stringGetter(func(p *Patient) *string { return p.medicalIssue }),
}

// Field looks up a scalar field by its wire name. Known names go through the
// typed accessors; anything else falls back to the extra fields kept at load time.
// ok is false when the field is absent, null, or not scalar.
func (p *Patient) Field(name string) (Value, bool) {
	if get, ok := accessors[name]; ok {
		return get(p)
	}
	if name == FieldContact {
		return Value{}, false
	}
	v, ok := p.extra[name]
	return v, ok
}

func numberGetter(field func(p *Patient) *float64) getter {
	return func(p *Patient) (Value, bool) {
		n := field(p)
		if n == nil {
			return Value{}, false
		}
		return Number(*n), true
	}
}

func stringGetter(field func(p *Patient) *string) getter {
	return func(p *Patient) (Value, bool) {
		s := field(p)
		if s == nil {
			return Value{}, false
		}
		return String(*s), true
	}
}

func deref[T any](v *T) (T, bool) {
	if v == nil {
		var zero T
		return zero, false
	}
	return *v, true
}
