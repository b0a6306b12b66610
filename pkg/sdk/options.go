package patientdir

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	patientrepo "github.com/kailas-cloud/patientdir/internal/repository/patient"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	sources int
	driver  string

	path string

	addrs    []string
	password string
	key      string
	refresh  time.Duration

	records []Patient

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithFile serves the JSON array stored at path. The file is read once by New;
// call Client.Watch to pick up later changes.
func WithFile(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.sources++
		c.driver = patientrepo.DriverFile
		c.path = path
	})
}

// WithRedis serves the JSON document stored under key in a Redis instance.
// An empty key selects "patientdir:patients".
func WithRedis(addr, password, key string) Option {
	return optionFunc(func(c *clientConfig) {
		c.sources++
		c.driver = patientrepo.DriverRedis
		c.addrs = []string{addr}
		c.password = password
		c.key = key
	})
}

// WithRefresh sets how long a Redis snapshot is reused before the key is read
// again. Zero (default) reads the key on every query.
func WithRefresh(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.refresh = d
	})
}

// WithPatients serves a fixed in-memory collection.
func WithPatients(records []Patient) Option {
	return optionFunc(func(c *clientConfig) {
		c.sources++
		c.driver = patientrepo.DriverStatic
		c.records = records
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithMetricsRegisterer registers SDK metrics (query counts, durations and
// source loads) on the given registerer. Pass nil to disable (default).
func WithMetricsRegisterer(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
