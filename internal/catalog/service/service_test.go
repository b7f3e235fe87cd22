package service

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"ecopro_backend/internal/catalog/repository"
	"ecopro_backend/internal/catalog/transport"
	"ecopro_backend/internal/cee"
	"ecopro_backend/platform/apperr"
	"ecopro_backend/platform/logger"
)

type fakeRepo struct {
	repository.Repository

	lastList    repository.ListProductsParams
	lastCreate  repository.CreateProductParams
	listResult  []repository.Product
	listTotal   int
	createdWith *repository.Product
}

func (f *fakeRepo) ListProducts(_ context.Context, params repository.ListProductsParams) ([]repository.Product, int, error) {
	f.lastList = params
	return f.listResult, f.listTotal, nil
}

func (f *fakeRepo) CreateProduct(_ context.Context, params repository.CreateProductParams) (repository.Product, error) {
	f.lastCreate = params
	product := repository.Product{
		ID:             uuid.New(),
		Code:           params.Code,
		Name:           params.Name,
		Category:       params.Category,
		IsActive:       params.IsActive,
		ParamsSchema:   params.ParamsSchema,
		KwhCumacValues: params.KwhCumacValues,
	}
	f.createdWith = &product
	return product, nil
}

func TestListProductsClampsPagination(t *testing.T) {
	repo := &fakeRepo{}
	svc := New(repo, nil, logger.New("test"))

	result, err := svc.ListProducts(context.Background(), transport.ListProductsRequest{
		Page:     0,
		PageSize: 500,
	})
	if err != nil {
		t.Fatalf("ListProducts returned error: %v", err)
	}

	if repo.lastList.Offset != 0 {
		t.Fatalf("Offset = %d, want 0", repo.lastList.Offset)
	}
	if repo.lastList.Limit != 100 {
		t.Fatalf("Limit = %d, want clamped 100", repo.lastList.Limit)
	}
	if result.Page != 1 || result.PageSize != 100 {
		t.Fatalf("page=%d pageSize=%d, want 1/100", result.Page, result.PageSize)
	}
}

func TestListProductsTotalPagesRoundsUp(t *testing.T) {
	repo := &fakeRepo{listTotal: 41}
	svc := New(repo, nil, logger.New("test"))

	result, err := svc.ListProducts(context.Background(), transport.ListProductsRequest{
		Page:     1,
		PageSize: 20,
	})
	if err != nil {
		t.Fatalf("ListProducts returned error: %v", err)
	}

	if result.TotalPages != 3 {
		t.Fatalf("TotalPages = %d, want 3 for 41 items at 20 per page", result.TotalPages)
	}
}

func TestCreateProductRejectsDuplicateBuildingType(t *testing.T) {
	repo := &fakeRepo{}
	svc := New(repo, nil, logger.New("test"))

	_, err := svc.CreateProduct(context.Background(), transport.CreateProductRequest{
		Code: "ECO-ISOL-01",
		Name: "Isolation",
		KwhCumacValues: []transport.KwhCumacEntry{
			{BuildingType: "bureaux", KwhCumac: 1000},
			{BuildingType: "bureaux", KwhCumac: 2000},
		},
	})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error for duplicate building type, got %v", err)
	}
	if repo.createdWith != nil {
		t.Fatal("repository must not be called when the savings table is invalid")
	}
}

func TestCreateProductTrimsAndDefaultsActive(t *testing.T) {
	repo := &fakeRepo{}
	svc := New(repo, nil, logger.New("test"))

	result, err := svc.CreateProduct(context.Background(), transport.CreateProductRequest{
		Code:     "  ECO-ISOL-01  ",
		Name:     " Isolation combles ",
		Category: " ECO-ISOL ",
		KwhCumacValues: []transport.KwhCumacEntry{
			{BuildingType: "bureaux", KwhCumac: 1000},
		},
	})
	if err != nil {
		t.Fatalf("CreateProduct returned error: %v", err)
	}

	if repo.lastCreate.Code != "ECO-ISOL-01" {
		t.Fatalf("Code = %q, want trimmed", repo.lastCreate.Code)
	}
	if repo.lastCreate.Category != "ECO-ISOL" {
		t.Fatalf("Category = %q, want trimmed", repo.lastCreate.Category)
	}
	if !result.IsActive {
		t.Fatal("products default to active when isActive is omitted")
	}
}

func TestValidateSavingsTable(t *testing.T) {
	err := validateSavingsTable([]cee.KwhCumacValue{
		{BuildingType: "bureaux", KwhCumac: 1000},
		{BuildingType: "commerces", KwhCumac: 800},
	})
	if err != nil {
		t.Fatalf("distinct building types must pass, got %v", err)
	}

	err = validateSavingsTable([]cee.KwhCumacValue{
		{BuildingType: "bureaux", KwhCumac: 1000},
		{BuildingType: "bureaux", KwhCumac: 800},
	})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
