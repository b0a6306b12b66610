package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates a failing dependency while records are still served.
	Degraded Status = "degraded"
	// Unhealthy indicates the patient collection cannot be served.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Check names.
const (
	CheckSource   = "source"
	CheckDatabase = "database"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	source SourceChecker
	db     DBPinger
}

// New creates a Service. db is nil when no database is configured.
func New(source SourceChecker, db DBPinger) *Service {
	return &Service{source: source, db: db}
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult, 2)
	checks[CheckSource] = result(s.source.Ping(ctx))
	if s.db != nil {
		checks[CheckDatabase] = result(s.db.Ping(ctx))
	}

	status := Healthy
	switch {
	case checks[CheckSource] == CheckError:
		status = Unhealthy
	case checks[CheckDatabase] == CheckError:
		status = Degraded
	}

	return Report{Status: status, Checks: checks}
}

func result(err error) CheckResult {
	if err != nil {
		return CheckError
	}
	return CheckOK
}
