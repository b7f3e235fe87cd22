package valorisation

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"ecopro_backend/internal/cee"
	"ecopro_backend/internal/valorisation/repository"
	"ecopro_backend/internal/valorisation/transport"
	"ecopro_backend/platform/apperr"
	"ecopro_backend/platform/config"
	"ecopro_backend/platform/logger"
)

// Service computes project primes and portfolio energy reports on top of the
// engine, reading data through the valorisation ports.
type Service struct {
	products  ProductReader
	projects  ProjectReader
	delegates DelegateReader
	cache     *SnapshotCache
	store     repository.SnapshotStore
	cfg       config.CEEConfig
	log       *logger.Logger
	now       func() time.Time
}

// NewService creates a new valorisation service. cache and store may be nil;
// the service then always computes on demand and keeps no history.
func NewService(
	products ProductReader,
	projects ProjectReader,
	delegates DelegateReader,
	cache *SnapshotCache,
	store repository.SnapshotStore,
	cfg config.CEEConfig,
	log *logger.Logger,
) *Service {
	return &Service{
		products:  products,
		projects:  projects,
		delegates: delegates,
		cache:     cache,
		store:     store,
		cfg:       cfg,
		log:       log,
		now:       time.Now,
	}
}

// ComputePrime evaluates a project's prime for a delegate. The configured
// bonification applies unless the request overrides it.
func (s *Service) ComputePrime(ctx context.Context, projectID uuid.UUID, req transport.ComputePrimeRequest) (transport.PrimeResponse, error) {
	delegateID, err := uuid.Parse(req.DelegateID)
	if err != nil {
		return transport.PrimeResponse{}, apperr.BadRequest("invalid delegate id")
	}

	project, err := s.projects.ProjectWithAssociations(ctx, projectID)
	if err != nil {
		return transport.PrimeResponse{}, err
	}

	delegate, err := s.delegates.DelegateByID(ctx, delegateID)
	if err != nil {
		return transport.PrimeResponse{}, err
	}
	if !delegate.IsActive {
		return transport.PrimeResponse{}, apperr.BadRequest("delegate is not active")
	}

	// Associated products price even when later deactivated in the catalog;
	// a quoted line must not silently disappear.
	catalog, err := s.products.CatalogForIDs(ctx, associationProductIDs(project.Associations))
	if err != nil {
		return transport.PrimeResponse{}, err
	}

	bonification := s.cfg.GetCEEBonification()
	if req.Bonification != nil {
		bonification = *req.Bonification
	}

	result := cee.ProjectPrime(cee.PrimeInput{
		BuildingType:      project.BuildingType,
		SurfaceBatimentM2: project.SurfaceBatimentM2,
		Associations:      project.Associations,
		Catalog:           catalog,
		PriceEURPerMWh:    delegate.PriceEURPerMWh,
		Bonification:      bonification,
		Lookup:            s.lookupParams(),
	})

	s.log.Info("prime computed",
		"projectId", projectID, "delegateId", delegateID,
		"lines", len(result.Products), "excluded", len(result.Excluded))

	return transport.PrimeResponse{
		ProjectID:    projectID,
		DelegateID:   delegate.ID,
		DelegateName: delegate.Name,
		Bonification: bonification,
		TotalPrime:   result.TotalPrime,
		Products:     result.Products,
		Excluded:     result.Excluded,
	}, nil
}

// EnergyReport returns the portfolio energy breakdown for a status filter.
// It serves the cached snapshot unless fresh is requested or the cache
// misses, in which case it recomputes (and refreshes the cache).
func (s *Service) EnergyReport(ctx context.Context, req transport.EnergyReportRequest) (transport.EnergyReportResponse, error) {
	if !req.Fresh {
		snapshot, hit, err := s.cache.Get(ctx, req.Status)
		if err != nil {
			s.log.Warn("energy snapshot cache read failed", "error", err)
		} else if hit {
			return toEnergyReportResponse(snapshot, true), nil
		}
	}

	snapshot, err := s.RefreshSnapshot(ctx, req.Status)
	if err != nil {
		return transport.EnergyReportResponse{}, err
	}
	return toEnergyReportResponse(snapshot, false), nil
}

// RefreshSnapshot recomputes the energy report for a status filter, caches it
// and appends it to the snapshot history. The scheduler calls this on its
// interval; the HTTP path calls it on cache miss or fresh=true.
func (s *Service) RefreshSnapshot(ctx context.Context, status string) (EnergySnapshot, error) {
	var (
		projects []cee.Project
		catalog  cee.Catalog
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		projects, err = s.projects.ProjectsWithAssociations(gctx, status)
		return err
	})
	g.Go(func() error {
		var err error
		catalog, err = s.products.ActiveCatalog(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return EnergySnapshot{}, err
	}

	result := cee.EnergyByCategory(projects, catalog, cee.EnergyOptions{
		Lookup: s.lookupParams(),
	})

	snapshot := EnergySnapshot{
		Status:     status,
		Result:     result,
		ComputedAt: s.now().UTC(),
	}

	if err := s.cache.Set(ctx, snapshot); err != nil {
		s.log.Warn("energy snapshot cache write failed", "error", err)
	}
	if s.store != nil {
		if err := s.store.InsertSnapshot(ctx, status, result, snapshot.ComputedAt); err != nil {
			s.log.Warn("energy snapshot persist failed", "error", err)
		}
	}

	s.log.Info("energy snapshot refreshed",
		"status", status, "totalMwh", result.TotalMwh, "categories", len(result.Breakdown))
	return snapshot, nil
}

// InvalidateSnapshots drops every cached energy report. Wired to catalog,
// project and delegate change events.
func (s *Service) InvalidateSnapshots(ctx context.Context) error {
	return s.cache.Invalidate(ctx)
}

func (s *Service) lookupParams() cee.LookupParams {
	params := cee.LookupParams{Strategy: cee.LookupFlat}
	if s.cfg.GetCEELookupStrategy() == config.LookupStrategySurfaceBanded {
		params.Strategy = cee.LookupSurfaceBanded
		if s.cfg.GetCEEUnknownSurfaceBand() == config.SurfaceBandGTE400 {
			params.UnknownSurfaceBand = cee.BandGTE400
		} else {
			params.UnknownSurfaceBand = cee.BandLT400
		}
	}
	return params
}

func associationProductIDs(associations []cee.Association) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(associations))
	ids := make([]uuid.UUID, 0, len(associations))
	for _, assoc := range associations {
		if _, dup := seen[assoc.ProductID]; dup {
			continue
		}
		seen[assoc.ProductID] = struct{}{}
		ids = append(ids, assoc.ProductID)
	}
	return ids
}

func toEnergyReportResponse(snapshot EnergySnapshot, fromCache bool) transport.EnergyReportResponse {
	return transport.EnergyReportResponse{
		Status:     snapshot.Status,
		TotalMwh:   snapshot.Result.TotalMwh,
		Breakdown:  snapshot.Result.Breakdown,
		ComputedAt: snapshot.ComputedAt.Format(time.RFC3339),
		FromCache:  fromCache,
	}
}
