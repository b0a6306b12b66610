package search

import (
	"cmp"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/kailas-cloud/patientdir/internal/domain/patient"
	"github.com/kailas-cloud/patientdir/internal/domain/search/order"
)

// sortLanguage drives string collation.
var sortLanguage = language.English

// sortRecords orders records in place, stably. Absent values go last in both
// directions. A zero Sort leaves the order untouched.
func sortRecords(records []patient.Patient, s order.Sort) {
	if s.IsZero() || len(records) < 2 {
		return
	}
	// Collators keep internal buffers and are not safe for concurrent use.
	col := collate.New(sortLanguage)

	slices.SortStableFunc(records, func(a, b patient.Patient) int {
		av, aok := a.Field(s.Field)
		bv, bok := b.Field(s.Field)
		switch {
		case !aok && !bok:
			return 0
		case !aok:
			return 1
		case !bok:
			return -1
		}

		var c int
		if av.Kind() == patient.KindNumber && bv.Kind() == patient.KindNumber {
			c = cmp.Compare(av.Num(), bv.Num())
		} else {
			c = col.CompareString(av.Text(), bv.Text())
		}
		if s.Desc() {
			return -c
		}
		return c
	})
}
