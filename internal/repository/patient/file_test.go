package patient

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"

	"github.com/kailas-cloud/patientdir/internal/domain"
)

func TestFileSource_SnapshotLoadsLazily(t *testing.T) {
	m := newInstruments()
	s := NewFileSource(tempDataFile(t, sampleJSON), m, zap.NewNop())

	records, err := s.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len = %d, want 2", len(records))
	}
	if got := testutil.ToFloat64(m.Records.WithLabelValues(DriverFile)); got != 2 {
		t.Errorf("records gauge = %v, want 2", got)
	}

	if _, err := s.Snapshot(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := testutil.ToFloat64(m.Loads.WithLabelValues(DriverFile, "ok")); got != 1 {
		t.Errorf("loads = %v, want 1 (second Snapshot must be served from memory)", got)
	}
}

func TestFileSource_MissingFile(t *testing.T) {
	s := NewFileSource(filepath.Join(t.TempDir(), "nope.json"), Instruments{}, nil)

	_, err := s.Snapshot(context.Background())
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}
	if err := s.Ping(context.Background()); err == nil {
		t.Error("Ping should fail without a snapshot")
	}
}

func TestFileSource_InvalidFile(t *testing.T) {
	s := NewFileSource(tempDataFile(t, `{"not": "an array"}`), Instruments{}, nil)

	_, err := s.Snapshot(context.Background())
	if !errors.Is(err, domain.ErrInvalidData) {
		t.Fatalf("expected ErrInvalidData, got %v", err)
	}
}

func TestFileSource_FailedReloadKeepsSnapshot(t *testing.T) {
	path := tempDataFile(t, sampleJSON)
	m := newInstruments()
	s := NewFileSource(path, m, nil)
	ctx := context.Background()

	if err := s.Load(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	writeFile(t, path, `[{"broken"`)
	if err := s.Load(ctx); err == nil {
		t.Fatal("expected reload error")
	}

	records, err := s.Snapshot(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("len = %d, want previous snapshot of 2", len(records))
	}
	if got := testutil.ToFloat64(m.Loads.WithLabelValues(DriverFile, "error")); got != 1 {
		t.Errorf("error loads = %v, want 1", got)
	}
}

func TestFileSource_SnapshotIsolation(t *testing.T) {
	path := tempDataFile(t, sampleJSON)
	s := NewFileSource(path, Instruments{}, nil)
	ctx := context.Background()

	before, err := s.Snapshot(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	writeFile(t, path, `[{"patient_id": 9}]`)
	if err := s.Load(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(before) != 2 {
		t.Errorf("held snapshot changed: len = %d", len(before))
	}
	after, _ := s.Snapshot(ctx)
	if len(after) != 1 {
		t.Errorf("new snapshot len = %d, want 1", len(after))
	}
}

func TestFileSource_Watch(t *testing.T) {
	path := tempDataFile(t, sampleJSON)
	s := NewFileSource(path, Instruments{}, zap.NewNop())
	s.debounce = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := s.Load(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- s.Watch(ctx) }()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	writeFile(t, path, `[{"patient_id": 9}]`)

	deadline := time.Now().Add(5 * time.Second)
	for {
		records, _ := s.Snapshot(ctx)
		if len(records) == 1 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("snapshot not reloaded, len = %d", len(records))
		}
		time.Sleep(20 * time.Millisecond)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Watch returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Error("Watch did not stop after cancel")
	}
}

func TestFileSource_WatchMissingDir(t *testing.T) {
	s := NewFileSource(filepath.Join(t.TempDir(), "missing", "data.json"), Instruments{}, nil)
	if err := s.Watch(context.Background()); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestStaticSource(t *testing.T) {
	records, _ := Decode([]byte(sampleJSON))
	s := NewStaticSource(records)

	got, err := s.Snapshot(context.Background())
	if err != nil || len(got) != 2 {
		t.Fatalf("Snapshot() = %d records, %v", len(got), err)
	}
	if err := s.Ping(context.Background()); err != nil {
		t.Errorf("Ping() = %v", err)
	}
}
