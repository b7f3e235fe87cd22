package adapters

import (
	"context"

	"github.com/google/uuid"

	"ecopro_backend/internal/cee"
	projectsrepo "ecopro_backend/internal/projects/repository"
)

// ProjectsReader adapts the projects repository to valorisation.ProjectReader.
type ProjectsReader struct {
	repo projectsrepo.Repository
}

// NewProjectsReader creates a projects reader.
func NewProjectsReader(repo projectsrepo.Repository) *ProjectsReader {
	return &ProjectsReader{repo: repo}
}

// ProjectWithAssociations loads one project and its product associations in
// engine form.
func (r *ProjectsReader) ProjectWithAssociations(ctx context.Context, id uuid.UUID) (cee.Project, error) {
	project, err := r.repo.GetProjectByID(ctx, id)
	if err != nil {
		return cee.Project{}, err
	}

	associations, err := r.repo.ListProjectProducts(ctx, id)
	if err != nil {
		return cee.Project{}, err
	}

	return toEngineProject(project, associations), nil
}

// ProjectsWithAssociations loads every project with the given status (all
// projects when status is empty), with associations fetched in one batch.
func (r *ProjectsReader) ProjectsWithAssociations(ctx context.Context, status string) ([]cee.Project, error) {
	projects, err := r.repo.ListProjectsByStatus(ctx, status)
	if err != nil {
		return nil, err
	}
	if len(projects) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, 0, len(projects))
	for _, project := range projects {
		ids = append(ids, project.ID)
	}

	byProject, err := r.repo.ListProjectProductsForProjects(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]cee.Project, 0, len(projects))
	for _, project := range projects {
		out = append(out, toEngineProject(project, byProject[project.ID]))
	}
	return out, nil
}

func toEngineProject(project projectsrepo.Project, associations []projectsrepo.ProjectProduct) cee.Project {
	engineAssociations := make([]cee.Association, 0, len(associations))
	for _, association := range associations {
		engineAssociations = append(engineAssociations, cee.Association{
			ProductID:     association.ProductID,
			Quantity:      association.Quantity,
			DynamicParams: association.DynamicParams,
		})
	}

	return cee.Project{
		ID:                project.ID,
		Status:            project.Status,
		BuildingType:      project.BuildingType,
		SurfaceBatimentM2: project.SurfaceBatimentM2,
		Associations:      engineAssociations,
	}
}
