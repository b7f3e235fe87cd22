// Package valorisation exposes the CEE engine over HTTP: project prime
// computation and portfolio energy reports. It reads catalog, project and
// delegate data through narrow ports so the engine stays decoupled from the
// owning bounded contexts.
package valorisation

import (
	"context"

	"github.com/google/uuid"

	"ecopro_backend/internal/cee"
)

// ProductReader loads catalog products in engine form.
type ProductReader interface {
	// ActiveCatalog returns every active product, indexed by ID.
	ActiveCatalog(ctx context.Context) (cee.Catalog, error)
	// CatalogForIDs returns the products matching the given IDs, active or
	// not. Unknown IDs are absent from the result.
	CatalogForIDs(ctx context.Context, ids []uuid.UUID) (cee.Catalog, error)
}

// ProjectReader loads projects with their product associations in engine form.
type ProjectReader interface {
	ProjectWithAssociations(ctx context.Context, id uuid.UUID) (cee.Project, error)
	// ProjectsWithAssociations returns every project with the given status,
	// or all projects when status is empty.
	ProjectsWithAssociations(ctx context.Context, status string) ([]cee.Project, error)
}

// Delegate carries the delegate fields a valorisation needs.
type Delegate struct {
	ID             uuid.UUID
	Name           string
	PriceEURPerMWh float64
	IsActive       bool
}

// DelegateReader loads delegate pricing.
type DelegateReader interface {
	DelegateByID(ctx context.Context, id uuid.UUID) (Delegate, error)
}
