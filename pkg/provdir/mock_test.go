package provdir

import (
	"context"

	"github.com/kailas-cloud/provdir/internal/domain/directory"
	"github.com/kailas-cloud/provdir/internal/domain/search/request"
	healthuc "github.com/kailas-cloud/provdir/internal/usecase/health"
	seeduc "github.com/kailas-cloud/provdir/internal/usecase/seed"
)

// --- searchUseCase mock ---

type mockSearchUC struct {
	searchFn func(ctx context.Context, req *request.Request) (directory.Page, error)
}

func (m *mockSearchUC) Search(ctx context.Context, req *request.Request) (directory.Page, error) {
	return m.searchFn(ctx, req)
}

// --- seedUseCase mock ---

type mockSeedUC struct {
	migrateFn func(ctx context.Context) (seeduc.Migration, error)
	loadFn    func(ctx context.Context, f *seeduc.File) (seeduc.Summary, error)
}

func (m *mockSeedUC) Migrate(ctx context.Context) (seeduc.Migration, error) {
	return m.migrateFn(ctx)
}

func (m *mockSeedUC) Load(ctx context.Context, f *seeduc.File) (seeduc.Summary, error) {
	return m.loadFn(ctx, f)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	checkFn func(ctx context.Context) healthuc.Report
}

func (m *mockHealthUC) Check(ctx context.Context) healthuc.Report {
	return m.checkFn(ctx)
}

// testClient builds a Client with the given mocks and default page sizes.
func testClient(search searchUseCase, seed seedUseCase, health healthUseCase) *Client {
	return &Client{
		searchSvc: search,
		seedSvc:   seed,
		healthSvc: health,
		limits:    request.Limits{DefaultLimit: 20, MaxLimit: 100},
	}
}
