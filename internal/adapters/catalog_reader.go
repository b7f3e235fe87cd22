// Package adapters bridges bounded-context repositories to the narrow read
// ports the valorisation layer consumes.
package adapters

import (
	"context"

	"github.com/google/uuid"

	catalogrepo "ecopro_backend/internal/catalog/repository"
	"ecopro_backend/internal/cee"
)

// CatalogReader adapts the catalog repository to valorisation.ProductReader.
type CatalogReader struct {
	repo catalogrepo.Repository
}

// NewCatalogReader creates a catalog reader.
func NewCatalogReader(repo catalogrepo.Repository) *CatalogReader {
	return &CatalogReader{repo: repo}
}

// ActiveCatalog returns every active product indexed by ID, in engine form.
func (r *CatalogReader) ActiveCatalog(ctx context.Context) (cee.Catalog, error) {
	products, err := r.repo.ListActiveProducts(ctx)
	if err != nil {
		return nil, err
	}
	return toCatalog(products), nil
}

// CatalogForIDs returns the products matching the given IDs, active or not.
func (r *CatalogReader) CatalogForIDs(ctx context.Context, ids []uuid.UUID) (cee.Catalog, error) {
	products, err := r.repo.GetProductsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return toCatalog(products), nil
}

func toCatalog(products []catalogrepo.Product) cee.Catalog {
	catalog := make(cee.Catalog, len(products))
	for _, product := range products {
		catalog[product.ID] = cee.Product{
			ID:             product.ID,
			Code:           product.Code,
			Name:           product.Name,
			Category:       product.Category,
			IsActive:       product.IsActive,
			ParamsSchema:   product.ParamsSchema,
			KwhCumacValues: product.KwhCumacValues,
		}
	}
	return catalog
}
