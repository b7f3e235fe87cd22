package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"ecopro_backend/internal/delegates/repository"
	"ecopro_backend/internal/delegates/transport"
	"ecopro_backend/internal/events"
	"ecopro_backend/platform/logger"
)

// Service provides business logic for CEE delegates.
type Service struct {
	repo repository.Repository
	bus  events.Bus
	log  *logger.Logger
}

// New creates a new delegates service.
func New(repo repository.Repository, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, bus: bus, log: log}
}

// GetDelegateByID retrieves a delegate by ID.
func (s *Service) GetDelegateByID(ctx context.Context, id uuid.UUID) (transport.DelegateResponse, error) {
	delegate, err := s.repo.GetDelegateByID(ctx, id)
	if err != nil {
		return transport.DelegateResponse{}, err
	}
	return toDelegateResponse(delegate), nil
}

// ListDelegates retrieves delegates with search and pagination.
func (s *Service) ListDelegates(ctx context.Context, req transport.ListDelegatesRequest) (transport.DelegateListResponse, error) {
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

	items, total, err := s.repo.ListDelegates(ctx, repository.ListDelegatesParams{
		Search: strings.TrimSpace(req.Search),
		Active: active,
		Offset: (page - 1) * pageSize,
		Limit:  pageSize,
	})
	if err != nil {
		return transport.DelegateListResponse{}, err
	}

	return toDelegateListResponse(items, total, page, pageSize), nil
}

// CreateDelegate creates a new delegate.
func (s *Service) CreateDelegate(ctx context.Context, req transport.CreateDelegateRequest) (transport.DelegateResponse, error) {
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	delegate, err := s.repo.CreateDelegate(ctx, repository.CreateDelegateParams{
		Name:           strings.TrimSpace(req.Name),
		PriceEURPerMWh: req.PriceEURPerMWh,
		IsActive:       isActive,
	})
	if err != nil {
		return transport.DelegateResponse{}, err
	}

	s.log.Info("delegate created", "id", delegate.ID, "name", delegate.Name)
	s.publishPriceUpdated(ctx, delegate.ID)
	return toDelegateResponse(delegate), nil
}

// UpdateDelegate updates an existing delegate. A price change invalidates any
// cached valorisation built on it, so an event is published.
func (s *Service) UpdateDelegate(ctx context.Context, id uuid.UUID, req transport.UpdateDelegateRequest) (transport.DelegateResponse, error) {
	params := repository.UpdateDelegateParams{ID: id}

	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		params.Name = &trimmed
	}
	params.PriceEURPerMWh = req.PriceEURPerMWh
	params.IsActive = req.IsActive

	delegate, err := s.repo.UpdateDelegate(ctx, params)
	if err != nil {
		return transport.DelegateResponse{}, err
	}

	s.log.Info("delegate updated", "id", delegate.ID)
	s.publishPriceUpdated(ctx, delegate.ID)
	return toDelegateResponse(delegate), nil
}

// DeleteDelegate deletes a delegate.
func (s *Service) DeleteDelegate(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteDelegate(ctx, id); err != nil {
		return err
	}
	s.log.Info("delegate deleted", "id", id)
	s.publishPriceUpdated(ctx, id)
	return nil
}

func (s *Service) publishPriceUpdated(ctx context.Context, id uuid.UUID) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(ctx, events.DelegatePriceUpdated{
		BaseEvent:  events.NewBaseEvent(),
		DelegateID: id,
	})
}

func toDelegateResponse(delegate repository.Delegate) transport.DelegateResponse {
	return transport.DelegateResponse{
		ID:             delegate.ID,
		Name:           delegate.Name,
		PriceEURPerMWh: delegate.PriceEURPerMWh,
		IsActive:       delegate.IsActive,
		CreatedAt:      delegate.CreatedAt,
		UpdatedAt:      delegate.UpdatedAt,
	}
}

func toDelegateListResponse(items []repository.Delegate, total, page, pageSize int) transport.DelegateListResponse {
	responses := make([]transport.DelegateResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, toDelegateResponse(item))
	}

	totalPages := total / pageSize
	if total%pageSize > 0 {
		totalPages++
	}

	return transport.DelegateListResponse{
		Items:      responses,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}
