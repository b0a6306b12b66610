package filter

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// Range suffix and separator used by the age_range filter ("18-30", "65+").
const (
	rangeSeparator = "-"
	openEndSuffix  = "+"
)

// Range is an inclusive numeric interval. A nil max means unbounded above.
type Range struct {
	min float64
	max *float64
}

// ParseRange parses "min-max" or "min+". Both bounds of the closed form are
// required. ok is false for anything else; a malformed range never matches.
func ParseRange(s string) (Range, bool) {
	if strings.Contains(s, rangeSeparator) {
		parts := strings.Split(s, rangeSeparator)
		if len(parts) != 2 {
			return Range{}, false
		}
		lo, ok := parseBound(parts[0])
		if !ok {
			return Range{}, false
		}
		hi, ok := parseBound(parts[1])
		if !ok {
			return Range{}, false
		}
		return Range{min: lo, max: &hi}, true
	}
	if strings.HasSuffix(s, openEndSuffix) {
		lo, ok := parseBound(strings.TrimSuffix(s, openEndSuffix))
		if !ok {
			return Range{}, false
		}
		return Range{min: lo}, true
	}
	return Range{}, false
}

func parseBound(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// Min returns the lower bound.
func (r Range) Min() float64 { return r.min }

// Max returns the upper bound, nil when open-ended.
func (r Range) Max() *float64 { return r.max }

// Contains reports whether v lies inside the range.
func (r Range) Contains(v float64) bool {
	if v < r.min {
		return false
	}
	return r.max == nil || v <= *r.max
}

// Set is the accepted-value list of one filter field.
type Set struct {
	key    string
	values []string
	folded []string
	ranges []Range
}

// NewSet builds a Set. Values are kept in order; lower-cased copies and
// parsed ranges are computed once so predicates do no per-record parsing.
func NewSet(key string, values []string) Set {
	s := Set{
		key:    key,
		values: values,
		folded: make([]string, len(values)),
	}
	for i, v := range values {
		s.folded[i] = strings.ToLower(v)
		if r, ok := ParseRange(v); ok {
			s.ranges = append(s.ranges, r)
		}
	}
	return s
}

// Key returns the field name.
func (s Set) Key() string { return s.key }

// Values returns the accepted values as supplied.
func (s Set) Values() []string { return s.values }

// IsEmpty reports whether the set has no accepted values.
func (s Set) IsEmpty() bool { return len(s.values) == 0 }

// MatchFold reports whether v equals one accepted value, ignoring case.
func (s Set) MatchFold(v string) bool {
	v = strings.ToLower(v)
	for _, f := range s.folded {
		if f == v {
			return true
		}
	}
	return false
}

// MatchRange reports whether n falls into at least one well-formed range value.
func (s Set) MatchRange(n float64) bool {
	for _, r := range s.ranges {
		if r.Contains(n) {
			return true
		}
	}
	return false
}

// Expression is the AND of all field sets. Sets are ordered by key.
type Expression struct {
	sets []Set
}

// NewExpression builds an Expression from field name to accepted values.
func NewExpression(m map[string][]string) Expression {
	if len(m) == 0 {
		return Expression{}
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	sets := make([]Set, 0, len(keys))
	for _, k := range keys {
		sets = append(sets, NewSet(k, m[k]))
	}
	return Expression{sets: sets}
}

// Sets returns the field sets in key order.
func (e Expression) Sets() []Set { return e.sets }

// IsEmpty reports whether the expression has no non-empty sets.
func (e Expression) IsEmpty() bool {
	for _, s := range e.sets {
		if !s.IsEmpty() {
			return false
		}
	}
	return true
}

// Get returns the set for key.
func (e Expression) Get(key string) (Set, bool) {
	for _, s := range e.sets {
		if s.key == key {
			return s, true
		}
	}
	return Set{}, false
}

// Map returns a copy of the expression as field name to accepted values.
func (e Expression) Map() map[string][]string {
	out := make(map[string][]string, len(e.sets))
	for _, s := range e.sets {
		out[s.key] = append([]string(nil), s.values...)
	}
	return out
}
