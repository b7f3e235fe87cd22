package adapters

import (
	"context"

	"github.com/google/uuid"

	delegatesrepo "ecopro_backend/internal/delegates/repository"
	"ecopro_backend/internal/valorisation"
)

// DelegatesReader adapts the delegates repository to
// valorisation.DelegateReader.
type DelegatesReader struct {
	repo delegatesrepo.Repository
}

// NewDelegatesReader creates a delegates reader.
func NewDelegatesReader(repo delegatesrepo.Repository) *DelegatesReader {
	return &DelegatesReader{repo: repo}
}

// DelegateByID loads a delegate's pricing fields.
func (r *DelegatesReader) DelegateByID(ctx context.Context, id uuid.UUID) (valorisation.Delegate, error) {
	delegate, err := r.repo.GetDelegateByID(ctx, id)
	if err != nil {
		return valorisation.Delegate{}, err
	}

	return valorisation.Delegate{
		ID:             delegate.ID,
		Name:           delegate.Name,
		PriceEURPerMWh: delegate.PriceEURPerMWh,
		IsActive:       delegate.IsActive,
	}, nil
}
