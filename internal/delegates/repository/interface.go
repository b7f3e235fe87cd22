package repository

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the persistence contract for CEE delegates (obligated buyers).
type Repository interface {
	CreateDelegate(ctx context.Context, params CreateDelegateParams) (Delegate, error)
	UpdateDelegate(ctx context.Context, params UpdateDelegateParams) (Delegate, error)
	DeleteDelegate(ctx context.Context, id uuid.UUID) error
	GetDelegateByID(ctx context.Context, id uuid.UUID) (Delegate, error)
	ListDelegates(ctx context.Context, params ListDelegatesParams) ([]Delegate, int, error)
}
