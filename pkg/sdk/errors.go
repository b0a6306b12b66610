package patientdir

import (
	"errors"

	"github.com/kailas-cloud/patientdir/internal/domain"
)

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrSourceUnavailable = domain.ErrSourceUnavailable
	ErrInvalidData       = domain.ErrInvalidData
)

var (
	errNoSource       = errors.New("patientdir: data source required (use WithFile, WithRedis or WithPatients)")
	errMultipleSource = errors.New("patientdir: only one of WithFile, WithRedis, WithPatients may be used")
	errNotWatchable   = errors.New("patientdir: watch requires a file source")
)
