// Package delegates provides the CEE delegate bounded context module.
package delegates

import (
	"ecopro_backend/internal/delegates/handler"
	"ecopro_backend/internal/delegates/repository"
	"ecopro_backend/internal/delegates/service"
	"ecopro_backend/internal/events"
	apphttp "ecopro_backend/internal/http"
	"ecopro_backend/platform/logger"
	"ecopro_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the delegates bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the delegates module.
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
	return "delegates"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// Repository returns the repository for direct access if needed.
func (m *Module) Repository() repository.Repository {
	return m.repo
}

// RegisterRoutes mounts delegate routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/delegates")
	group.GET("", m.handler.ListDelegates)
	group.GET("/:id", m.handler.GetDelegateByID)
	group.POST("", m.handler.CreateDelegate)
	group.PUT("/:id", m.handler.UpdateDelegate)
	group.DELETE("/:id", m.handler.DeleteDelegate)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
