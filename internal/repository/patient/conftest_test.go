package patient

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kailas-cloud/patientdir/internal/db"
)

const sampleJSON = `[
  {
    "patient_id": 1,
    "patient_name": "Ann Lee",
    "age": 35,
    "photo_url": null,
    "contact": [{"address": "12 Jordan Road", "number": "555-0100", "email": "ann@example.com"}],
    "medical_issue": "fever"
  },
  {
    "patient_id": 2,
    "patient_name": "Bob Stone",
    "age": 70,
    "photo_url": "https://example.com/b.png",
    "contact": [{"address": null, "number": null, "email": null}],
    "medical_issue": "headache",
    "ward": "B2",
    "insured": true
  }
]`

// mockKVStore implements the consumer interfaces for tests.
type mockKVStore struct {
	getFn  func(ctx context.Context, key string) ([]byte, error)
	pingFn func(ctx context.Context) error

	gets   int
	setKey string
	setVal []byte
	setTTL time.Duration
	setErr error
}

func (m *mockKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	m.gets++
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockKVStore) Ping(ctx context.Context) error {
	if m.pingFn != nil {
		return m.pingFn(ctx)
	}
	return nil
}

func (m *mockKVStore) Set(_ context.Context, key string, value []byte) error {
	m.setKey, m.setVal = key, value
	return m.setErr
}

func (m *mockKVStore) SetWithTTL(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.setKey, m.setVal, m.setTTL = key, value, ttl
	return m.setErr
}

func newInstruments() Instruments {
	return Instruments{
		Loads: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "test_source_loads_total"},
			[]string{"driver", "status"},
		),
		Records: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{Name: "test_source_records"},
			[]string{"driver"},
		),
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func tempDataFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.json")
	writeFile(t, path, content)
	return path
}
