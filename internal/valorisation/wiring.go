package valorisation

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"ecopro_backend/internal/events"
	apphttp "ecopro_backend/internal/http"
	"ecopro_backend/internal/valorisation/repository"
	"ecopro_backend/platform/config"
	"ecopro_backend/platform/logger"
	"ecopro_backend/platform/validator"
)

// Module is the valorisation bounded context module implementing http.Module.
type Module struct {
	handler *Handler
	service *Service
	cache   *SnapshotCache
}

// ModuleParams collects the dependencies of the valorisation module. Redis is
// optional; without it the energy report computes on every request.
type ModuleParams struct {
	Pool      *pgxpool.Pool
	Redis     redis.UniversalClient
	Bus       events.Bus
	Products  ProductReader
	Projects  ProjectReader
	Delegates DelegateReader
	Config    *config.Config
	Validator *validator.Validator
	Logger    *logger.Logger
}

// NewModule creates and initializes the valorisation module. It subscribes to
// catalog, project and delegate change events to invalidate cached reports.
func NewModule(params ModuleParams) *Module {
	var cache *SnapshotCache
	if params.Redis != nil {
		cache = NewSnapshotCache(params.Redis, params.Config.GetEnergySnapshotTTL())
	}

	var store repository.SnapshotStore
	if params.Pool != nil {
		store = repository.NewSnapshotRepo(params.Pool)
	}

	svc := NewService(
		params.Products, params.Projects, params.Delegates,
		cache, store, params.Config, params.Logger)
	h := NewHandler(svc, params.Validator)

	m := &Module{handler: h, service: svc, cache: cache}
	m.subscribe(params.Bus, params.Logger)
	return m
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "valorisation"
}

// Service returns the service layer for external use (e.g. the scheduler).
func (m *Module) Service() *Service {
	return m.service
}

// RegisterRoutes mounts valorisation routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.GET("/projects/:id/prime", m.handler.ComputePrime)
	ctx.V1.GET("/reports/energy", m.handler.EnergyReport)
}

func (m *Module) subscribe(bus events.Bus, log *logger.Logger) {
	if bus == nil {
		return
	}

	invalidate := events.HandlerFunc(func(ctx context.Context, _ events.Event) error {
		if err := m.service.InvalidateSnapshots(ctx); err != nil {
			log.Warn("energy snapshot invalidation failed", "error", err)
		}
		return nil
	})

	bus.Subscribe(events.ProductUpdated{}.EventName(), invalidate)
	bus.Subscribe(events.ProjectProductsChanged{}.EventName(), invalidate)
	bus.Subscribe(events.DelegatePriceUpdated{}.EventName(), invalidate)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
