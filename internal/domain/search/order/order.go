package order

import "strings"

// Direction is the sort direction.
type Direction string

// Sort direction constants.
const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Separator splits the sort field from its direction ("age:desc").
const Separator = ":"

// IsValid checks if the direction is one of the supported values.
func (d Direction) IsValid() bool {
	return d == Asc || d == Desc
}

// ParseDirection maps anything other than exactly "desc" to Asc.
func ParseDirection(s string) Direction {
	if Direction(s) == Desc {
		return Desc
	}
	return Asc
}

// Sort is a field plus direction. The zero value means "keep input order".
type Sort struct {
	Field     string
	Direction Direction
}

// Parse splits "field:direction". Segments after the second are ignored.
// A missing direction defaults to Asc; an empty field yields the zero Sort.
func Parse(s string) Sort {
	if s == "" {
		return Sort{}
	}
	parts := strings.Split(s, Separator)
	if parts[0] == "" {
		return Sort{}
	}
	dir := Asc
	if len(parts) > 1 {
		dir = ParseDirection(parts[1])
	}
	return Sort{Field: parts[0], Direction: dir}
}

// IsZero reports whether no sort was requested.
func (s Sort) IsZero() bool { return s.Field == "" }

// Desc reports whether the sort is descending.
func (s Sort) Desc() bool { return s.Direction == Desc }

// String renders the sort back to its query form.
func (s Sort) String() string {
	if s.IsZero() {
		return ""
	}
	return s.Field + Separator + string(s.Direction)
}
