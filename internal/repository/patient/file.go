package patient

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	dompatient "github.com/kailas-cloud/patientdir/internal/domain/patient"
)

// DefaultDebounce coalesces the burst of events an editor or copy produces.
const DefaultDebounce = 100 * time.Millisecond

// FileSource serves a JSON array file. Reloads swap the whole snapshot, so a
// caller always sees one complete collection.
type FileSource struct {
	path     string
	debounce time.Duration
	metrics  Instruments
	logger   *zap.Logger

	mu       sync.Mutex // serializes loads
	snapshot atomic.Pointer[[]dompatient.Patient]
}

// NewFileSource creates a file-backed source. Nothing is read until the first
// Load or Snapshot.
func NewFileSource(path string, metrics Instruments, logger *zap.Logger) *FileSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileSource{
		path:     path,
		debounce: DefaultDebounce,
		metrics:  metrics,
		logger:   logger,
	}
}

// Path returns the data file path.
func (s *FileSource) Path() string { return s.path }

// Load reads and decodes the file and replaces the snapshot. On error the
// previous snapshot stays in place.
func (s *FileSource) Load(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		s.metrics.observe(DriverFile, 0, err)
		return fmt.Errorf("read %s: %w", s.path, err)
	}
	records, err := Decode(data)
	s.metrics.observe(DriverFile, len(records), err)
	if err != nil {
		return fmt.Errorf("decode %s: %w", s.path, err)
	}

	s.snapshot.Store(&records)
	s.logger.Info("Patient collection loaded",
		zap.String("path", s.path),
		zap.Int("records", len(records)),
	)
	return nil
}

// Snapshot returns the current collection, loading it on first use.
func (s *FileSource) Snapshot(ctx context.Context) ([]dompatient.Patient, error) {
	if p := s.snapshot.Load(); p != nil {
		return *p, nil
	}
	if err := s.Load(ctx); err != nil {
		return nil, err
	}
	return *s.snapshot.Load(), nil
}

// Ping reports whether a snapshot is available.
func (s *FileSource) Ping(ctx context.Context) error {
	_, err := s.Snapshot(ctx)
	return err
}

// Watch reloads the file whenever it changes until ctx is done. The parent
// directory is watched so atomic replace-by-rename is picked up.
func (s *FileSource) Watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = w.Close() }()

	target := filepath.Clean(s.path)
	if err := w.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
	}

	var (
		timer  *time.Timer
		reload <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target || !relevant(event) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(s.debounce)
			} else {
				timer.Reset(s.debounce)
			}
			reload = timer.C
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("File watcher error", zap.String("path", s.path), zap.Error(err))
		case <-reload:
			if err := s.Load(ctx); err != nil {
				s.logger.Warn("Reload failed, keeping previous snapshot",
					zap.String("path", s.path),
					zap.Error(err),
				)
			}
		}
	}
}

func relevant(e fsnotify.Event) bool {
	return e.Has(fsnotify.Write) || e.Has(fsnotify.Create) || e.Has(fsnotify.Rename)
}

