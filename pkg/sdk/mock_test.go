package patientdir

import (
	"context"

	dompatient "github.com/kailas-cloud/patientdir/internal/domain/patient"
	"github.com/kailas-cloud/patientdir/internal/domain/search/request"
	"github.com/kailas-cloud/patientdir/internal/domain/search/result"
	healthuc "github.com/kailas-cloud/patientdir/internal/usecase/health"
)

// --- searchUseCase mock ---

type mockSearchUC struct {
	searchFn func(ctx context.Context, req *request.Request) (result.Page, error)
	lastReq  *request.Request
}

func (m *mockSearchUC) Search(ctx context.Context, req *request.Request) (result.Page, error) {
	m.lastReq = req
	return m.searchFn(ctx, req)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(_ context.Context) healthuc.Report { return m.report }

// --- source mock ---

type mockSource struct {
	err error
}

func (m *mockSource) Snapshot(_ context.Context) ([]dompatient.Patient, error) { return nil, m.err }
func (m *mockSource) Ping(_ context.Context) error { return m.err }

func newTestClient(search searchUseCase, health healthUseCase, src source) *Client {
	if src == nil {
		src = &mockSource{}
	}
	return &Client{source: src, searchSvc: search, healthSvc: health}
}
