package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"ecopro_backend/internal/events"
	"ecopro_backend/internal/projects/repository"
	"ecopro_backend/internal/projects/transport"
	"ecopro_backend/platform/logger"
)

const defaultStatus = "draft"

// Service provides business logic for renovation projects.
type Service struct {
	repo repository.Repository
	bus  events.Bus
	log  *logger.Logger
}

// New creates a new projects service.
func New(repo repository.Repository, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, bus: bus, log: log}
}

// GetProjectByID retrieves a project by ID.
func (s *Service) GetProjectByID(ctx context.Context, id uuid.UUID) (transport.ProjectResponse, error) {
	project, err := s.repo.GetProjectByID(ctx, id)
	if err != nil {
		return transport.ProjectResponse{}, err
	}
	return toProjectResponse(project), nil
}

// ListProjects retrieves projects with search and pagination.
func (s *Service) ListProjects(ctx context.Context, req transport.ListProjectsRequest) (transport.ProjectListResponse, error) {
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

	params := repository.ListProjectsParams{
		Search:    strings.TrimSpace(req.Search),
		Status:    req.Status,
		Offset:    (page - 1) * pageSize,
		Limit:     pageSize,
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
	}

	items, total, err := s.repo.ListProjects(ctx, params)
	if err != nil {
		return transport.ProjectListResponse{}, err
	}

	return toProjectListResponse(items, total, page, pageSize), nil
}

// CreateProject creates a new project.
func (s *Service) CreateProject(ctx context.Context, req transport.CreateProjectRequest) (transport.ProjectResponse, error) {
	status := req.Status
	if status == "" {
		status = defaultStatus
	}

	project, err := s.repo.CreateProject(ctx, repository.CreateProjectParams{
		Name:              strings.TrimSpace(req.Name),
		BuildingType:      strings.TrimSpace(req.BuildingType),
		SurfaceBatimentM2: req.SurfaceBatimentM2,
		Status:            status,
	})
	if err != nil {
		return transport.ProjectResponse{}, err
	}

	s.log.Info("project created", "id", project.ID, "name", project.Name)
	return toProjectResponse(project), nil
}

// UpdateProject updates an existing project. Building type and surface changes
// invalidate cached valorisations, so an event is published.
func (s *Service) UpdateProject(ctx context.Context, id uuid.UUID, req transport.UpdateProjectRequest) (transport.ProjectResponse, error) {
	params := repository.UpdateProjectParams{ID: id}

	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		params.Name = &trimmed
	}
	if req.BuildingType != nil {
		trimmed := strings.TrimSpace(*req.BuildingType)
		params.BuildingType = &trimmed
	}
	params.SurfaceBatimentM2 = req.SurfaceBatimentM2
	params.Status = req.Status

	project, err := s.repo.UpdateProject(ctx, params)
	if err != nil {
		return transport.ProjectResponse{}, err
	}

	s.log.Info("project updated", "id", project.ID)
	s.publishProductsChanged(ctx, project.ID)
	return toProjectResponse(project), nil
}

// DeleteProject deletes a project and its product associations.
func (s *Service) DeleteProject(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteProject(ctx, id); err != nil {
		return err
	}
	s.log.Info("project deleted", "id", id)
	s.publishProductsChanged(ctx, id)
	return nil
}

// ListProjectProducts retrieves a project's product associations.
func (s *Service) ListProjectProducts(ctx context.Context, projectID uuid.UUID) (transport.ProjectProductListResponse, error) {
	if _, err := s.repo.GetProjectByID(ctx, projectID); err != nil {
		return transport.ProjectProductListResponse{}, err
	}

	associations, err := s.repo.ListProjectProducts(ctx, projectID)
	if err != nil {
		return transport.ProjectProductListResponse{}, err
	}

	items := make([]transport.ProjectProductResponse, 0, len(associations))
	for _, association := range associations {
		items = append(items, toProjectProductResponse(association))
	}
	return transport.ProjectProductListResponse{Items: items}, nil
}

// AddProjectProduct attaches a catalog product to a project.
func (s *Service) AddProjectProduct(ctx context.Context, projectID uuid.UUID, req transport.AddProjectProductRequest) (transport.ProjectProductResponse, error) {
	if _, err := s.repo.GetProjectByID(ctx, projectID); err != nil {
		return transport.ProjectProductResponse{}, err
	}

	association, err := s.repo.AddProjectProduct(ctx, repository.AddProjectProductParams{
		ProjectID:     projectID,
		ProductID:     req.ProductID,
		Quantity:      req.Quantity,
		DynamicParams: req.DynamicParams,
	})
	if err != nil {
		return transport.ProjectProductResponse{}, err
	}

	s.log.Info("project product added",
		"projectId", projectID, "productId", req.ProductID, "associationId", association.ID)
	s.publishProductsChanged(ctx, projectID)
	return toProjectProductResponse(association), nil
}

// UpdateProjectProduct updates a project product association.
func (s *Service) UpdateProjectProduct(ctx context.Context, projectID, associationID uuid.UUID, req transport.UpdateProjectProductRequest) (transport.ProjectProductResponse, error) {
	association, err := s.repo.UpdateProjectProduct(ctx, repository.UpdateProjectProductParams{
		ProjectID:     projectID,
		AssociationID: associationID,
		Quantity:      req.Quantity,
		DynamicParams: req.DynamicParams,
	})
	if err != nil {
		return transport.ProjectProductResponse{}, err
	}

	s.log.Info("project product updated", "projectId", projectID, "associationId", associationID)
	s.publishProductsChanged(ctx, projectID)
	return toProjectProductResponse(association), nil
}

// RemoveProjectProduct detaches a product from a project.
func (s *Service) RemoveProjectProduct(ctx context.Context, projectID, associationID uuid.UUID) error {
	if err := s.repo.RemoveProjectProduct(ctx, projectID, associationID); err != nil {
		return err
	}
	s.log.Info("project product removed", "projectId", projectID, "associationId", associationID)
	s.publishProductsChanged(ctx, projectID)
	return nil
}

func (s *Service) publishProductsChanged(ctx context.Context, projectID uuid.UUID) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(ctx, events.ProjectProductsChanged{
		BaseEvent: events.NewBaseEvent(),
		ProjectID: projectID,
	})
}

func toProjectResponse(project repository.Project) transport.ProjectResponse {
	return transport.ProjectResponse{
		ID:                project.ID,
		Name:              project.Name,
		BuildingType:      project.BuildingType,
		SurfaceBatimentM2: project.SurfaceBatimentM2,
		Status:            project.Status,
		CreatedAt:         project.CreatedAt,
		UpdatedAt:         project.UpdatedAt,
	}
}

func toProjectProductResponse(association repository.ProjectProduct) transport.ProjectProductResponse {
	return transport.ProjectProductResponse{
		ID:            association.ID,
		ProjectID:     association.ProjectID,
		ProductID:     association.ProductID,
		Quantity:      association.Quantity,
		DynamicParams: association.DynamicParams,
		CreatedAt:     association.CreatedAt,
		UpdatedAt:     association.UpdatedAt,
	}
}

func toProjectListResponse(items []repository.Project, total, page, pageSize int) transport.ProjectListResponse {
	responses := make([]transport.ProjectResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, toProjectResponse(item))
	}

	totalPages := total / pageSize
	if total%pageSize > 0 {
		totalPages++
	}

	return transport.ProjectListResponse{
		Items:      responses,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}
