package patient

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	dompatient "github.com/kailas-cloud/patientdir/internal/domain/patient"
)

// Source drivers.
const (
	DriverFile   = "file"
	DriverRedis  = "redis"
	DriverStatic = "static"
)

// Instruments are optional load metrics, passed explicitly. Nil fields are skipped.
type Instruments struct {
	Loads   *prometheus.CounterVec // labels: driver, status
	Records *prometheus.GaugeVec   // labels: driver
}

func (m Instruments) observe(driver string, records int, err error) {
	if m.Loads != nil {
		status := "ok"
		if err != nil {
			status = "error"
		}
		m.Loads.WithLabelValues(driver, status).Inc()
	}
	if m.Records != nil && err == nil {
		m.Records.WithLabelValues(driver).Set(float64(records))
	}
}

// StaticSource serves a fixed in-memory collection.
type StaticSource struct {
	records []dompatient.Patient
}

// NewStaticSource wraps records. The caller must not modify them afterwards.
func NewStaticSource(records []dompatient.Patient) *StaticSource {
	return &StaticSource{records: records}
}

// Snapshot returns the collection.
func (s *StaticSource) Snapshot(_ context.Context) ([]dompatient.Patient, error) {
	return s.records, nil
}

// Ping always succeeds.
func (s *StaticSource) Ping(_ context.Context) error { return nil }
