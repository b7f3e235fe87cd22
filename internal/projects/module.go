// Package projects provides the renovation projects bounded context module.
package projects

import (
	"ecopro_backend/internal/events"
	apphttp "ecopro_backend/internal/http"
	"ecopro_backend/internal/projects/handler"
	"ecopro_backend/internal/projects/repository"
	"ecopro_backend/internal/projects/service"
	"ecopro_backend/platform/logger"
	"ecopro_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the projects bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the projects module.
func NewModule(pool *pgxpool.Pool, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, bus, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "projects"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// Repository returns the repository for direct access if needed.
func (m *Module) Repository() repository.Repository {
	return m.repo
}

// RegisterRoutes mounts project routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/projects")
	group.GET("", m.handler.ListProjects)
	group.GET("/:id", m.handler.GetProjectByID)
	group.POST("", m.handler.CreateProject)
	group.PUT("/:id", m.handler.UpdateProject)
	group.DELETE("/:id", m.handler.DeleteProject)

	group.GET("/:id/products", m.handler.ListProjectProducts)
	group.POST("/:id/products", m.handler.AddProjectProduct)
	group.PUT("/:id/products/:associationId", m.handler.UpdateProjectProduct)
	group.DELETE("/:id/products/:associationId", m.handler.RemoveProjectProduct)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
