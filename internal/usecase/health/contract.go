package health

import "context"

// SourceChecker checks that the patient collection can be served.
type SourceChecker interface {
	Ping(ctx context.Context) error
}

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}
