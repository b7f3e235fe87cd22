package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ecopro_backend/platform/apperr"
)

const (
	projectNotFoundMessage     = "project not found"
	associationNotFoundMessage = "project product not found"
)

// Project is a renovation project row.
type Project struct {
	ID                uuid.UUID
	Name              string
	BuildingType      string
	SurfaceBatimentM2 *float64
	Status            string
	CreatedAt         string
	UpdatedAt         string
}

// ProjectProduct links a project to a catalog product with its sizing inputs.
// DynamicParams is stored as jsonb and holds schema-driven values keyed by
// field name.
type ProjectProduct struct {
	ID            uuid.UUID
	ProjectID     uuid.UUID
	ProductID     uuid.UUID
	Quantity      *float64
	DynamicParams map[string]any
	CreatedAt     string
	UpdatedAt     string
}

type CreateProjectParams struct {
	Name              string
	BuildingType      string
	SurfaceBatimentM2 *float64
	Status            string
}

type UpdateProjectParams struct {
	ID                uuid.UUID
	Name              *string
	BuildingType      *string
	SurfaceBatimentM2 *float64
	Status            *string
}

type ListProjectsParams struct {
	Search    string
	Status    string
	Offset    int
	Limit     int
	SortBy    string
	SortOrder string
}

type AddProjectProductParams struct {
	ProjectID     uuid.UUID
	ProductID     uuid.UUID
	Quantity      *float64
	DynamicParams map[string]any
}

type UpdateProjectProductParams struct {
	ProjectID     uuid.UUID
	AssociationID uuid.UUID
	Quantity      *float64
	DynamicParams map[string]any
}

// Repo implements the projects repository.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new projects repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

const projectColumns = `id, name, building_type, surface_batiment_m2, status, created_at, updated_at`

const projectProductColumns = `id, project_id, product_id, quantity, dynamic_params, created_at, updated_at`

// CreateProject inserts a project.
func (r *Repo) CreateProject(ctx context.Context, params CreateProjectParams) (Project, error) {
	query := `
		INSERT INTO projects (name, building_type, surface_batiment_m2, status)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + projectColumns

	row := r.pool.QueryRow(ctx, query,
		params.Name, params.BuildingType, params.SurfaceBatimentM2, params.Status)
	project, err := scanProject(row)
	if err != nil {
		return Project{}, fmt.Errorf("create project: %w", err)
	}
	return project, nil
}

// UpdateProject updates a project. Nil params keep current values.
func (r *Repo) UpdateProject(ctx context.Context, params UpdateProjectParams) (Project, error) {
	query := `
		UPDATE projects
		SET name = COALESCE($2, name),
			building_type = COALESCE($3, building_type),
			surface_batiment_m2 = COALESCE($4, surface_batiment_m2),
			status = COALESCE($5, status),
			updated_at = now()
		WHERE id = $1
		RETURNING ` + projectColumns

	row := r.pool.QueryRow(ctx, query,
		params.ID, params.Name, params.BuildingType, params.SurfaceBatimentM2, params.Status)
	project, err := scanProject(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Project{}, apperr.NotFound(projectNotFoundMessage)
		}
		return Project{}, fmt.Errorf("update project: %w", err)
	}
	return project, nil
}

// DeleteProject removes a project and, via cascade, its product associations.
func (r *Repo) DeleteProject(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(projectNotFoundMessage)
	}
	return nil
}

// GetProjectByID retrieves a project by ID.
func (r *Repo) GetProjectByID(ctx context.Context, id uuid.UUID) (Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`
	project, err := scanProject(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Project{}, apperr.NotFound(projectNotFoundMessage)
		}
		return Project{}, fmt.Errorf("get project by id: %w", err)
	}
	return project, nil
}

// ListProjects lists projects with filters and pagination.
func (r *Repo) ListProjects(ctx context.Context, params ListProjectsParams) ([]Project, int, error) {
	whereClauses := []string{"TRUE"}
	args := []interface{}{}

	if params.Search != "" {
		args = append(args, "%"+params.Search+"%")
		whereClauses = append(whereClauses, fmt.Sprintf("name ILIKE $%d", len(args)))
	}
	if params.Status != "" {
		args = append(args, params.Status)
		whereClauses = append(whereClauses, fmt.Sprintf("status = $%d", len(args)))
	}

	where := strings.Join(whereClauses, " AND ")

	var total int
	countQuery := `SELECT COUNT(*) FROM projects WHERE ` + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count projects: %w", err)
	}

	orderBy := sortColumn(params.SortBy)
	direction := "ASC"
	if strings.EqualFold(params.SortOrder, "desc") {
		direction = "DESC"
	}

	args = append(args, params.Limit, params.Offset)
	query := fmt.Sprintf(`SELECT %s FROM projects WHERE %s ORDER BY %s %s LIMIT $%d OFFSET $%d`,
		projectColumns, where, orderBy, direction, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	projects, err := collectProjects(rows)
	if err != nil {
		return nil, 0, err
	}
	return projects, total, nil
}

// ListProjectsByStatus retrieves every project with the given status, or all
// projects when status is empty.
func (r *Repo) ListProjectsByStatus(ctx context.Context, status string) ([]Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE ($1 = '' OR status = $1) ORDER BY created_at`
	rows, err := r.pool.Query(ctx, query, status)
	if err != nil {
		return nil, fmt.Errorf("list projects by status: %w", err)
	}
	defer rows.Close()

	return collectProjects(rows)
}

// AddProjectProduct attaches a catalog product to a project.
func (r *Repo) AddProjectProduct(ctx context.Context, params AddProjectProductParams) (ProjectProduct, error) {
	paramsJSON, err := marshalDynamicParams(params.DynamicParams)
	if err != nil {
		return ProjectProduct{}, err
	}

	query := `
		INSERT INTO project_products (project_id, product_id, quantity, dynamic_params)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + projectProductColumns

	row := r.pool.QueryRow(ctx, query,
		params.ProjectID, params.ProductID, params.Quantity, paramsJSON)
	association, err := scanProjectProduct(row)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ProjectProduct{}, apperr.BadRequest("project or product does not exist")
		}
		return ProjectProduct{}, fmt.Errorf("add project product: %w", err)
	}
	return association, nil
}

// UpdateProjectProduct updates a project product association. Nil quantity and
// nil params keep current values.
func (r *Repo) UpdateProjectProduct(ctx context.Context, params UpdateProjectProductParams) (ProjectProduct, error) {
	var paramsJSON []byte
	if params.DynamicParams != nil {
		var err error
		paramsJSON, err = marshalDynamicParams(params.DynamicParams)
		if err != nil {
			return ProjectProduct{}, err
		}
	}

	query := `
		UPDATE project_products
		SET quantity = COALESCE($3, quantity),
			dynamic_params = COALESCE($4, dynamic_params),
			updated_at = now()
		WHERE id = $2 AND project_id = $1
		RETURNING ` + projectProductColumns

	row := r.pool.QueryRow(ctx, query,
		params.ProjectID, params.AssociationID, params.Quantity, paramsJSON)
	association, err := scanProjectProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ProjectProduct{}, apperr.NotFound(associationNotFoundMessage)
		}
		return ProjectProduct{}, fmt.Errorf("update project product: %w", err)
	}
	return association, nil
}

// RemoveProjectProduct detaches a product from a project.
func (r *Repo) RemoveProjectProduct(ctx context.Context, projectID, associationID uuid.UUID) error {
	result, err := r.pool.Exec(ctx,
		`DELETE FROM project_products WHERE id = $2 AND project_id = $1`, projectID, associationID)
	if err != nil {
		return fmt.Errorf("remove project product: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(associationNotFoundMessage)
	}
	return nil
}

// ListProjectProducts retrieves the product associations of a project.
func (r *Repo) ListProjectProducts(ctx context.Context, projectID uuid.UUID) ([]ProjectProduct, error) {
	query := `SELECT ` + projectProductColumns + ` FROM project_products WHERE project_id = $1 ORDER BY created_at`
	rows, err := r.pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("list project products: %w", err)
	}
	defer rows.Close()

	return collectProjectProducts(rows)
}

// ListProjectProductsForProjects retrieves the product associations for a set
// of projects in one round trip, keyed by project ID.
func (r *Repo) ListProjectProductsForProjects(ctx context.Context, projectIDs []uuid.UUID) (map[uuid.UUID][]ProjectProduct, error) {
	if len(projectIDs) == 0 {
		return map[uuid.UUID][]ProjectProduct{}, nil
	}

	query := `SELECT ` + projectProductColumns + ` FROM project_products WHERE project_id = ANY($1) ORDER BY created_at`
	rows, err := r.pool.Query(ctx, query, projectIDs)
	if err != nil {
		return nil, fmt.Errorf("list project products for projects: %w", err)
	}
	defer rows.Close()

	associations, err := collectProjectProducts(rows)
	if err != nil {
		return nil, err
	}

	byProject := make(map[uuid.UUID][]ProjectProduct, len(projectIDs))
	for _, association := range associations {
		byProject[association.ProjectID] = append(byProject[association.ProjectID], association)
	}
	return byProject, nil
}

func sortColumn(sortBy string) string {
	switch sortBy {
	case "name":
		return "name"
	case "status":
		return "status"
	case "buildingType":
		return "building_type"
	case "updatedAt":
		return "updated_at"
	default:
		return "created_at"
	}
}

func marshalDynamicParams(params map[string]any) ([]byte, error) {
	if params == nil {
		params = map[string]any{}
	}
	paramsJSON, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("marshal dynamic params: %w", err)
	}
	return paramsJSON, nil
}

func scanProject(row pgx.Row) (Project, error) {
	var project Project
	var createdAt, updatedAt time.Time

	if err := row.Scan(
		&project.ID, &project.Name, &project.BuildingType, &project.SurfaceBatimentM2,
		&project.Status, &createdAt, &updatedAt,
	); err != nil {
		return Project{}, err
	}

	project.CreatedAt = createdAt.Format(time.RFC3339)
	project.UpdatedAt = updatedAt.Format(time.RFC3339)
	return project, nil
}

func collectProjects(rows pgx.Rows) ([]Project, error) {
	var projects []Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, project)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}
	return projects, nil
}

func scanProjectProduct(row pgx.Row) (ProjectProduct, error) {
	var association ProjectProduct
	var paramsJSON []byte
	var createdAt, updatedAt time.Time

	if err := row.Scan(
		&association.ID, &association.ProjectID, &association.ProductID,
		&association.Quantity, &paramsJSON, &createdAt, &updatedAt,
	); err != nil {
		return ProjectProduct{}, err
	}

	if len(paramsJSON) > 0 {
		if err := json.Unmarshal(paramsJSON, &association.DynamicParams); err != nil {
			return ProjectProduct{}, fmt.Errorf("unmarshal dynamic params: %w", err)
		}
	}

	association.CreatedAt = createdAt.Format(time.RFC3339)
	association.UpdatedAt = updatedAt.Format(time.RFC3339)
	return association, nil
}

func collectProjectProducts(rows pgx.Rows) ([]ProjectProduct, error) {
	var associations []ProjectProduct
	for rows.Next() {
		association, err := scanProjectProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project product: %w", err)
		}
		associations = append(associations, association)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate project products: %w", err)
	}
	return associations, nil
}

func isForeignKeyViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "23503")
}
