// Package catalog provides the CEE product catalog bounded context module.
package catalog

import (
	"ecopro_backend/internal/catalog/handler"
	"ecopro_backend/internal/catalog/repository"
	"ecopro_backend/internal/catalog/service"
	"ecopro_backend/internal/events"
	apphttp "ecopro_backend/internal/http"
	"ecopro_backend/platform/logger"
	"ecopro_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the catalog bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the catalog module.
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
	return "catalog"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// Repository returns the repository for direct access if needed.
func (m *Module) Repository() repository.Repository {
	return m.repo
}

// RegisterRoutes mounts catalog routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/catalog")
	group.GET("/products", m.handler.ListProducts)
	group.GET("/products/:id", m.handler.GetProductByID)
	group.POST("/products", m.handler.CreateProduct)
	group.PUT("/products/:id", m.handler.UpdateProduct)
	group.DELETE("/products/:id", m.handler.DeleteProduct)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
