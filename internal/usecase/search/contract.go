package search

import (
	"context"

	"github.com/kailas-cloud/patientdir/internal/domain/patient"
)

// Source supplies an immutable snapshot of the patient collection.
// Callers must not modify the returned slice.
type Source interface {
	Snapshot(ctx context.Context) ([]patient.Patient, error)
}
