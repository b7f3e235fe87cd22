package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"ecopro_backend/internal/catalog/repository"
	"ecopro_backend/internal/catalog/transport"
	"ecopro_backend/internal/cee"
	"ecopro_backend/internal/events"
	"ecopro_backend/platform/apperr"
	"ecopro_backend/platform/logger"
)

// Service provides business logic for the CEE product catalog.
type Service struct {
	repo repository.Repository
	bus  events.Bus
	log  *logger.Logger
}

// New creates a new catalog service.
func New(repo repository.Repository, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, bus: bus, log: log}
}

// GetProductByID retrieves a product by ID.
func (s *Service) GetProductByID(ctx context.Context, id uuid.UUID) (transport.ProductResponse, error) {
	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return transport.ProductResponse{}, err
	}
	return toProductResponse(product), nil
}

// ListProducts retrieves products with search and pagination.
func (s *Service) ListProducts(ctx context.Context, req transport.ListProductsRequest) (transport.ProductListResponse, error) {
	page := req.Page
	pageSize := req.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	var active *bool
	if req.Active != "" {
		val := req.Active == "true"
		active = &val
	}

	params := repository.ListProductsParams{
		Search:    strings.TrimSpace(req.Search),
		Category:  strings.TrimSpace(req.Category),
		Active:    active,
		Offset:    (page - 1) * pageSize,
		Limit:     pageSize,
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
	}

	items, total, err := s.repo.ListProducts(ctx, params)
	if err != nil {
		return transport.ProductListResponse{}, err
	}

	return toProductListResponse(items, total, page, pageSize), nil
}

// CreateProduct creates a new catalog product.
func (s *Service) CreateProduct(ctx context.Context, req transport.CreateProductRequest) (transport.ProductResponse, error) {
	values := toKwhCumacValues(req.KwhCumacValues)
	if err := validateSavingsTable(values); err != nil {
		return transport.ProductResponse{}, err
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	product, err := s.repo.CreateProduct(ctx, repository.CreateProductParams{
		Code:           strings.TrimSpace(req.Code),
		Name:           strings.TrimSpace(req.Name),
		Category:       strings.TrimSpace(req.Category),
		IsActive:       isActive,
		ParamsSchema:   toSchemaFields(req.ParamsSchema),
		KwhCumacValues: values,
	})
	if err != nil {
		return transport.ProductResponse{}, err
	}

	s.log.Info("product created", "id", product.ID, "code", product.Code)
	s.publishProductUpdated(ctx, product.ID)
	return toProductResponse(product), nil
}

// UpdateProduct updates an existing catalog product.
func (s *Service) UpdateProduct(ctx context.Context, id uuid.UUID, req transport.UpdateProductRequest) (transport.ProductResponse, error) {
	params := repository.UpdateProductParams{ID: id}

	if req.Code != nil {
		trimmed := strings.TrimSpace(*req.Code)
		params.Code = &trimmed
	}
	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		params.Name = &trimmed
	}
	if req.Category != nil {
		trimmed := strings.TrimSpace(*req.Category)
		params.Category = &trimmed
	}
	params.IsActive = req.IsActive
	if req.ParamsSchema != nil {
		params.ParamsSchema = toSchemaFields(req.ParamsSchema)
	}
	if req.KwhCumacValues != nil {
		values := toKwhCumacValues(req.KwhCumacValues)
		if err := validateSavingsTable(values); err != nil {
			return transport.ProductResponse{}, err
		}
		params.KwhCumacValues = values
	}

	product, err := s.repo.UpdateProduct(ctx, params)
	if err != nil {
		return transport.ProductResponse{}, err
	}

	s.log.Info("product updated", "id", product.ID, "code", product.Code)
	s.publishProductUpdated(ctx, product.ID)
	return toProductResponse(product), nil
}

// DeleteProduct deletes a catalog product.
func (s *Service) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		return err
	}
	s.log.Info("product deleted", "id", id)
	s.publishProductUpdated(ctx, id)
	return nil
}

func (s *Service) publishProductUpdated(ctx context.Context, id uuid.UUID) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(ctx, events.ProductUpdated{
		BaseEvent: events.NewBaseEvent(),
		ProductID: id,
	})
}

// validateSavingsTable enforces the catalog invariant: at most one savings
// row per building type.
func validateSavingsTable(values []cee.KwhCumacValue) error {
	seen := make(map[string]struct{}, len(values))
	for _, entry := range values {
		if _, dup := seen[entry.BuildingType]; dup {
			return apperr.Validation("duplicate building type in savings table: " + entry.BuildingType)
		}
		seen[entry.BuildingType] = struct{}{}
	}
	return nil
}

func toSchemaFields(fields []transport.ParamField) []cee.SchemaField {
	out := make([]cee.SchemaField, 0, len(fields))
	for _, f := range fields {
		out = append(out, cee.SchemaField{
			Name:  strings.TrimSpace(f.Name),
			Label: strings.TrimSpace(f.Label),
			Unit:  strings.TrimSpace(f.Unit),
		})
	}
	return out
}

func toKwhCumacValues(entries []transport.KwhCumacEntry) []cee.KwhCumacValue {
	out := make([]cee.KwhCumacValue, 0, len(entries))
	for _, e := range entries {
		out = append(out, cee.KwhCumacValue{
			BuildingType:   strings.TrimSpace(e.BuildingType),
			KwhCumac:       e.KwhCumac,
			KwhCumacLT400:  e.KwhCumacLT400,
			KwhCumacGTE400: e.KwhCumacGTE400,
		})
	}
	return out
}

func toParamFields(fields []cee.SchemaField) []transport.ParamField {
	out := make([]transport.ParamField, 0, len(fields))
	for _, f := range fields {
		out = append(out, transport.ParamField{Name: f.Name, Label: f.Label, Unit: f.Unit})
	}
	return out
}

func toKwhCumacEntries(values []cee.KwhCumacValue) []transport.KwhCumacEntry {
	out := make([]transport.KwhCumacEntry, 0, len(values))
	for _, v := range values {
		out = append(out, transport.KwhCumacEntry{
			BuildingType:   v.BuildingType,
			KwhCumac:       v.KwhCumac,
			KwhCumacLT400:  v.KwhCumacLT400,
			KwhCumacGTE400: v.KwhCumacGTE400,
		})
	}
	return out
}

func toProductResponse(product repository.Product) transport.ProductResponse {
	return transport.ProductResponse{
		ID:             product.ID,
		Code:           product.Code,
		Name:           product.Name,
		Category:       product.Category,
		IsActive:       product.IsActive,
		ParamsSchema:   toParamFields(product.ParamsSchema),
		KwhCumacValues: toKwhCumacEntries(product.KwhCumacValues),
		CreatedAt:      product.CreatedAt,
		UpdatedAt:      product.UpdatedAt,
	}
}

func toProductListResponse(items []repository.Product, total, page, pageSize int) transport.ProductListResponse {
	responses := make([]transport.ProductResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, toProductResponse(item))
	}

	totalPages := total / pageSize
	if total%pageSize > 0 {
		totalPages++
	}

	return transport.ProductListResponse{
		Items:      responses,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}
