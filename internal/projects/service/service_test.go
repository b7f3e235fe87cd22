package service

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"ecopro_backend/internal/events"
	"ecopro_backend/internal/projects/repository"
	"ecopro_backend/internal/projects/transport"
	"ecopro_backend/platform/logger"
)

type fakeRepo struct {
	repository.Repository

	lastCreate   repository.CreateProjectParams
	lastAdd      repository.AddProjectProductParams
	projectsByID map[uuid.UUID]repository.Project
}

func (f *fakeRepo) CreateProject(_ context.Context, params repository.CreateProjectParams) (repository.Project, error) {
	f.lastCreate = params
	return repository.Project{
		ID:           uuid.New(),
		Name:         params.Name,
		BuildingType: params.BuildingType,
		Status:       params.Status,
	}, nil
}

func (f *fakeRepo) GetProjectByID(_ context.Context, id uuid.UUID) (repository.Project, error) {
	return f.projectsByID[id], nil
}

func (f *fakeRepo) AddProjectProduct(_ context.Context, params repository.AddProjectProductParams) (repository.ProjectProduct, error) {
	f.lastAdd = params
	return repository.ProjectProduct{
		ID:            uuid.New(),
		ProjectID:     params.ProjectID,
		ProductID:     params.ProductID,
		Quantity:      params.Quantity,
		DynamicParams: params.DynamicParams,
	}, nil
}

type recordingBus struct {
	events.Bus
	published []events.Event
}

func (b *recordingBus) Publish(_ context.Context, event events.Event) {
	b.published = append(b.published, event)
}

func TestCreateProjectDefaultsStatusToDraft(t *testing.T) {
	repo := &fakeRepo{}
	svc := New(repo, nil, logger.New("test"))

	result, err := svc.CreateProject(context.Background(), transport.CreateProjectRequest{
		Name: "  Renovation bureaux Lyon  ",
	})
	if err != nil {
		t.Fatalf("CreateProject returned error: %v", err)
	}

	if repo.lastCreate.Status != "draft" {
		t.Fatalf("Status = %q, want draft default", repo.lastCreate.Status)
	}
	if repo.lastCreate.Name != "Renovation bureaux Lyon" {
		t.Fatalf("Name = %q, want trimmed", repo.lastCreate.Name)
	}
	if result.Status != "draft" {
		t.Fatalf("response Status = %q, want draft", result.Status)
	}
}

func TestCreateProjectKeepsExplicitStatus(t *testing.T) {
	repo := &fakeRepo{}
	svc := New(repo, nil, logger.New("test"))

	_, err := svc.CreateProject(context.Background(), transport.CreateProjectRequest{
		Name:   "Projet",
		Status: "accepted",
	})
	if err != nil {
		t.Fatalf("CreateProject returned error: %v", err)
	}
	if repo.lastCreate.Status != "accepted" {
		t.Fatalf("Status = %q, want accepted", repo.lastCreate.Status)
	}
}

func TestAddProjectProductPublishesChangeEvent(t *testing.T) {
	projectID := uuid.New()
	productID := uuid.New()
	repo := &fakeRepo{projectsByID: map[uuid.UUID]repository.Project{
		projectID: {ID: projectID, Name: "Projet"},
	}}
	bus := &recordingBus{}
	svc := New(repo, bus, logger.New("test"))

	quantity := 4.0
	result, err := svc.AddProjectProduct(context.Background(), projectID, transport.AddProjectProductRequest{
		ProductID:     productID,
		Quantity:      &quantity,
		DynamicParams: map[string]any{"surface_facturee_m2": 120},
	})
	if err != nil {
		t.Fatalf("AddProjectProduct returned error: %v", err)
	}

	if result.ProductID != productID {
		t.Fatalf("ProductID = %v, want %v", result.ProductID, productID)
	}
	if len(bus.published) != 1 {
		t.Fatalf("published %d events, want 1", len(bus.published))
	}
	changed, ok := bus.published[0].(events.ProjectProductsChanged)
	if !ok {
		t.Fatalf("published event type %T, want ProjectProductsChanged", bus.published[0])
	}
	if changed.ProjectID != projectID {
		t.Fatalf("event ProjectID = %v, want %v", changed.ProjectID, projectID)
	}
}
