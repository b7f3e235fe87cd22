package repository

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the persistence contract for projects and their product
// associations.
type Repository interface {
	CreateProject(ctx context.Context, params CreateProjectParams) (Project, error)
	UpdateProject(ctx context.Context, params UpdateProjectParams) (Project, error)
	DeleteProject(ctx context.Context, id uuid.UUID) error
	GetProjectByID(ctx context.Context, id uuid.UUID) (Project, error)
	ListProjects(ctx context.Context, params ListProjectsParams) ([]Project, int, error)
	ListProjectsByStatus(ctx context.Context, status string) ([]Project, error)

	AddProjectProduct(ctx context.Context, params AddProjectProductParams) (ProjectProduct, error)
	UpdateProjectProduct(ctx context.Context, params UpdateProjectProductParams) (ProjectProduct, error)
	RemoveProjectProduct(ctx context.Context, projectID, associationID uuid.UUID) error
	ListProjectProducts(ctx context.Context, projectID uuid.UUID) ([]ProjectProduct, error)
	ListProjectProductsForProjects(ctx context.Context, projectIDs []uuid.UUID) (map[uuid.UUID][]ProjectProduct, error)
}
