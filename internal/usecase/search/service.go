package search

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/patientdir/internal/domain"
	"github.com/kailas-cloud/patientdir/internal/domain/search/request"
	"github.com/kailas-cloud/patientdir/internal/domain/search/result"
	"github.com/kailas-cloud/patientdir/internal/metrics"
)

// Service runs directory queries against the current source snapshot.
type Service struct {
	source Source
	logger *zap.Logger
}

// New creates a search service. A nil logger disables logging.
func New(source Source, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{source: source, logger: logger}
}

// Search executes req against one snapshot. The only failure is a source that
// cannot supply records; it is reported as domain.ErrSourceUnavailable.
func (s *Service) Search(ctx context.Context, req *request.Request) (result.Page, error) {
	start := time.Now()

	records, err := s.source.Snapshot(ctx)
	if err != nil {
		metrics.QueryDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		s.logger.Error("Patient snapshot failed", zap.Error(err))
		return result.Page{}, fmt.Errorf("%w: %w", domain.ErrSourceUnavailable, err)
	}

	page := Execute(records, req)

	duration := time.Since(start)
	metrics.QueryDuration.WithLabelValues("ok").Observe(duration.Seconds())
	metrics.QueryMatchedRecords.Observe(float64(page.Total()))

	s.logger.Debug("Query executed",
		zap.String("search", req.Search()),
		zap.Strings("search_fields", req.SearchFields()),
		zap.Int("filters", len(req.Filters().Sets())),
		zap.String("sort", req.Sort().String()),
		zap.Int("page", req.Page()),
		zap.Int("limit", req.Limit()),
		zap.Int("offset", req.Offset()),
		zap.Int("collection", len(records)),
		zap.Int("total", page.Total()),
		zap.Duration("duration", duration),
	)

	return page, nil
}
