package patientdir

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/patientdir/internal/db"
	dbRedis "github.com/kailas-cloud/patientdir/internal/db/redis"
	dompatient "github.com/kailas-cloud/patientdir/internal/domain/patient"
	"github.com/kailas-cloud/patientdir/internal/domain/search/request"
	"github.com/kailas-cloud/patientdir/internal/domain/search/result"
	patientrepo "github.com/kailas-cloud/patientdir/internal/repository/patient"
	healthuc "github.com/kailas-cloud/patientdir/internal/usecase/health"
	searchuc "github.com/kailas-cloud/patientdir/internal/usecase/search"
)

const defaultReadinessTimeout = 10 * time.Second

// Internal interfaces for substitution in tests.
type source interface {
	Snapshot(ctx context.Context) ([]dompatient.Patient, error)
	Ping(ctx context.Context) error
}

type searchUseCase interface {
	Search(ctx context.Context, req *request.Request) (result.Page, error)
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}

// Client is the patientdir SDK entry point. It is safe for concurrent use.
type Client struct {
	store     db.Store // nil unless WithRedis
	source    source
	searchSvc searchUseCase
	healthSvc healthUseCase
	obs       *observer
}

// New creates a Client over exactly one data source. File and Redis sources
// are read once here, so a bad source fails New rather than the first query.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	switch {
	case cfg.sources == 0:
		return nil, errNoSource
	case cfg.sources > 1:
		return nil, errMultipleSource
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	var (
		store db.Store
		src   source
	)
	switch cfg.driver {
	case patientrepo.DriverStatic:
		records := make([]dompatient.Patient, len(cfg.records))
		for i := range cfg.records {
			records[i] = patientToDomain(&cfg.records[i])
		}
		src = patientrepo.NewStaticSource(records)
	case patientrepo.DriverFile:
		fs := patientrepo.NewFileSource(cfg.path, obs.instruments(), zap.NewNop())
		if err := fs.Load(ctx); err != nil {
			return nil, fmt.Errorf("patientdir: load %s: %w", cfg.path, err)
		}
		src = fs
	default:
		store, err = createStore(ctx, cfg)
		if err != nil {
			return nil, err
		}
		rs := patientrepo.NewRedisSource(store, cfg.key, cfg.refresh, obs.instruments(), zap.NewNop())
		if _, err := rs.Snapshot(ctx); err != nil {
			store.Close()
			return nil, fmt.Errorf("patientdir: load redis key %s: %w", rs.Key(), err)
		}
		src = rs
	}

	return wireClient(store, src, obs), nil
}

func createStore(ctx context.Context, cfg *clientConfig) (db.Store, error) {
	s, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.addrs,
		Password: cfg.password,
	})
	if err != nil {
		return nil, fmt.Errorf("patientdir: create redis store: %w", err)
	}
	if err := s.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		s.Close()
		return nil, fmt.Errorf("patientdir: database not ready: %w", err)
	}
	return s, nil
}

func wireClient(store db.Store, src source, obs *observer) *Client {
	var dbPinger healthuc.DBPinger
	if store != nil {
		dbPinger = store
	}
	return &Client{
		store:     store,
		source:    src,
		searchSvc: searchuc.New(src, zap.NewNop()),
		healthSvc: healthuc.New(src, dbPinger),
		obs:       obs,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks that the patient collection can be served.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.source.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Watch reloads a file source whenever the file changes, until ctx is done.
// It fails immediately for other sources.
func (c *Client) Watch(ctx context.Context) error {
	fs, ok := c.source.(*patientrepo.FileSource)
	if !ok {
		return errNotWatchable
	}
	if err := fs.Watch(ctx); err != nil {
		return fmt.Errorf("patientdir: watch: %w", err)
	}
	return nil
}

// Query starts a fluent query.
func (c *Client) Query() *QueryBuilder {
	return &QueryBuilder{client: c}
}

// QueryValues runs a query given in URL query form, exactly as GET /api/data would.
func (c *Client) QueryValues(ctx context.Context, q url.Values) (Page, error) {
	req := request.Parse(q)
	return c.run(ctx, "query_values", &req)
}

func (c *Client) run(ctx context.Context, op string, req *request.Request) (_ Page, err error) {
	start := time.Now()
	var total int
	defer func() { c.obs.observe(op, start, err, "total", total) }()

	res, err := c.searchSvc.Search(ctx, req)
	if err != nil {
		return Page{}, fmt.Errorf("search: %w", err)
	}
	total = res.Total()

	page, err := pageFromDomain(&res)
	if err != nil {
		return Page{}, fmt.Errorf("convert results: %w", err)
	}
	return page, nil
}
