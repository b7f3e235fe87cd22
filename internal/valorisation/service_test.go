package valorisation

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"ecopro_backend/internal/cee"
	"ecopro_backend/internal/valorisation/repository"
	"ecopro_backend/internal/valorisation/transport"
	"ecopro_backend/platform/apperr"
	"ecopro_backend/platform/config"
	"ecopro_backend/platform/logger"
)

type fakeProducts struct {
	catalog cee.Catalog
}

func (f *fakeProducts) ActiveCatalog(_ context.Context) (cee.Catalog, error) {
	return f.catalog, nil
}

func (f *fakeProducts) CatalogForIDs(_ context.Context, ids []uuid.UUID) (cee.Catalog, error) {
	out := make(cee.Catalog, len(ids))
	for _, id := range ids {
		if product, ok := f.catalog[id]; ok {
			out[id] = product
		}
	}
	return out, nil
}

type fakeProjects struct {
	projects []cee.Project
}

func (f *fakeProjects) ProjectWithAssociations(_ context.Context, id uuid.UUID) (cee.Project, error) {
	for _, project := range f.projects {
		if project.ID == id {
			return project, nil
		}
	}
	return cee.Project{}, apperr.NotFound("project not found")
}

func (f *fakeProjects) ProjectsWithAssociations(_ context.Context, status string) ([]cee.Project, error) {
	if status == "" {
		return f.projects, nil
	}
	var out []cee.Project
	for _, project := range f.projects {
		if project.Status == status {
			out = append(out, project)
		}
	}
	return out, nil
}

type fakeDelegates struct {
	delegates map[uuid.UUID]Delegate
}

func (f *fakeDelegates) DelegateByID(_ context.Context, id uuid.UUID) (Delegate, error) {
	delegate, ok := f.delegates[id]
	if !ok {
		return Delegate{}, apperr.NotFound("delegate not found")
	}
	return delegate, nil
}

type recordingStore struct {
	statuses []string
}

func (r *recordingStore) InsertSnapshot(_ context.Context, status string, _ cee.EnergyResult, _ time.Time) error {
	r.statuses = append(r.statuses, status)
	return nil
}

func (r *recordingStore) LatestSnapshot(_ context.Context, _ string) (repository.Snapshot, error) {
	return repository.Snapshot{}, apperr.NotFound("energy snapshot not found")
}

func testConfig() *config.Config {
	return &config.Config{
		CEEBonification:   2,
		CEELookupStrategy: config.LookupStrategyFlat,
	}
}

func floatPtr(v float64) *float64 { return &v }

func testFixture() (*fakeProducts, *fakeProjects, *fakeDelegates, uuid.UUID, uuid.UUID) {
	productID := uuid.New()
	projectID := uuid.New()
	delegateID := uuid.New()

	products := &fakeProducts{catalog: cee.Catalog{
		productID: {
			ID:       productID,
			Code:     "ECO-ISOL-01",
			Name:     "Isolation combles",
			Category: "ECO-ISOL",
			IsActive: true,
			KwhCumacValues: []cee.KwhCumacValue{
				{BuildingType: "bureaux", KwhCumac: 1000},
			},
		},
	}}

	projects := &fakeProjects{projects: []cee.Project{
		{
			ID:           projectID,
			Status:       "accepted",
			BuildingType: "bureaux",
			Associations: []cee.Association{
				{ProductID: productID, Quantity: floatPtr(10)},
			},
		},
	}}

	delegates := &fakeDelegates{delegates: map[uuid.UUID]Delegate{
		delegateID: {ID: delegateID, Name: "Delegataire A", PriceEURPerMWh: 100, IsActive: true},
	}}

	return products, projects, delegates, projectID, delegateID
}

func TestComputePrimeAppliesDelegatePriceAndBonification(t *testing.T) {
	products, projects, delegates, projectID, delegateID := testFixture()
	svc := NewService(products, projects, delegates, nil, nil, testConfig(), logger.New("test"))

	result, err := svc.ComputePrime(context.Background(), projectID, transport.ComputePrimeRequest{
		DelegateID: delegateID.String(),
	})
	if err != nil {
		t.Fatalf("ComputePrime returned error: %v", err)
	}

	// 1000 kWh x 2 bonification x 100 EUR/MWh / 1000 = 200 base, x10 = 2000
	if result.TotalPrime == nil || *result.TotalPrime != 2000 {
		t.Fatalf("TotalPrime = %v, want 2000", result.TotalPrime)
	}
	if len(result.Products) != 1 {
		t.Fatalf("got %d product lines, want 1", len(result.Products))
	}
	if result.Products[0].ValorisationBase != 200 {
		t.Fatalf("ValorisationBase = %v, want 200", result.Products[0].ValorisationBase)
	}
	if result.DelegateName != "Delegataire A" {
		t.Fatalf("DelegateName = %q", result.DelegateName)
	}
	if result.Bonification != 2 {
		t.Fatalf("Bonification = %v, want configured 2", result.Bonification)
	}
}

func TestComputePrimeBonificationOverride(t *testing.T) {
	products, projects, delegates, projectID, delegateID := testFixture()
	svc := NewService(products, projects, delegates, nil, nil, testConfig(), logger.New("test"))

	result, err := svc.ComputePrime(context.Background(), projectID, transport.ComputePrimeRequest{
		DelegateID:   delegateID.String(),
		Bonification: floatPtr(1),
	})
	if err != nil {
		t.Fatalf("ComputePrime returned error: %v", err)
	}

	if result.TotalPrime == nil || *result.TotalPrime != 1000 {
		t.Fatalf("TotalPrime = %v, want 1000 with bonification 1", result.TotalPrime)
	}
	if result.Bonification != 1 {
		t.Fatalf("Bonification = %v, want override 1", result.Bonification)
	}
}

func TestComputePrimeRejectsInactiveDelegate(t *testing.T) {
	products, projects, delegates, projectID, delegateID := testFixture()
	delegate := delegates.delegates[delegateID]
	delegate.IsActive = false
	delegates.delegates[delegateID] = delegate

	svc := NewService(products, projects, delegates, nil, nil, testConfig(), logger.New("test"))

	_, err := svc.ComputePrime(context.Background(), projectID, transport.ComputePrimeRequest{
		DelegateID: delegateID.String(),
	})
	if !apperr.Is(err, apperr.KindBadRequest) {
		t.Fatalf("expected bad request error, got %v", err)
	}
}

func TestComputePrimeRejectsMalformedDelegateID(t *testing.T) {
	products, projects, delegates, projectID, _ := testFixture()
	svc := NewService(products, projects, delegates, nil, nil, testConfig(), logger.New("test"))

	_, err := svc.ComputePrime(context.Background(), projectID, transport.ComputePrimeRequest{
		DelegateID: "not-a-uuid",
	})
	if !apperr.Is(err, apperr.KindBadRequest) {
		t.Fatalf("expected bad request error, got %v", err)
	}
}

func TestComputePrimeUnknownProjectNotFound(t *testing.T) {
	products, projects, delegates, _, delegateID := testFixture()
	svc := NewService(products, projects, delegates, nil, nil, testConfig(), logger.New("test"))

	_, err := svc.ComputePrime(context.Background(), uuid.New(), transport.ComputePrimeRequest{
		DelegateID: delegateID.String(),
	})
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestEnergyReportComputesWithoutCache(t *testing.T) {
	products, projects, delegates, _, _ := testFixture()
	svc := NewService(products, projects, delegates, nil, nil, testConfig(), logger.New("test"))

	result, err := svc.EnergyReport(context.Background(), transport.EnergyReportRequest{Status: "accepted"})
	if err != nil {
		t.Fatalf("EnergyReport returned error: %v", err)
	}

	if result.FromCache {
		t.Fatal("expected fresh computation without a cache")
	}
	// 1000 kWh x 10 / 1000 = 10 MWh; bonification never applies to energy.
	if result.TotalMwh != 10 {
		t.Fatalf("TotalMwh = %v, want 10", result.TotalMwh)
	}
	if len(result.Breakdown) != 1 || result.Breakdown[0].Category != "ECO-ISOL" {
		t.Fatalf("unexpected breakdown: %+v", result.Breakdown)
	}
}

func TestRefreshSnapshotPersistsHistory(t *testing.T) {
	products, projects, delegates, _, _ := testFixture()
	store := &recordingStore{}
	svc := NewService(products, projects, delegates, nil, store, testConfig(), logger.New("test"))

	snapshot, err := svc.RefreshSnapshot(context.Background(), "accepted")
	if err != nil {
		t.Fatalf("RefreshSnapshot returned error: %v", err)
	}

	if snapshot.Result.TotalMwh != 10 {
		t.Fatalf("TotalMwh = %v, want 10", snapshot.Result.TotalMwh)
	}
	if len(store.statuses) != 1 || store.statuses[0] != "accepted" {
		t.Fatalf("persisted statuses = %v, want [accepted]", store.statuses)
	}
}

func TestEnergyReportStatusFilterExcludesOtherProjects(t *testing.T) {
	products, projects, delegates, _, _ := testFixture()
	svc := NewService(products, projects, delegates, nil, nil, testConfig(), logger.New("test"))

	result, err := svc.EnergyReport(context.Background(), transport.EnergyReportRequest{Status: "draft"})
	if err != nil {
		t.Fatalf("EnergyReport returned error: %v", err)
	}

	if result.TotalMwh != 0 {
		t.Fatalf("TotalMwh = %v, want 0 for empty status slice", result.TotalMwh)
	}
}
