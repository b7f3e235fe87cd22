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

	"ecopro_backend/internal/cee"
	"ecopro_backend/platform/apperr"
)

const productNotFoundMessage = "product not found"

// Product is a catalog row. Schema and savings table are stored as jsonb and
// carried as engine types so the valorisation layer consumes them directly.
type Product struct {
	ID             uuid.UUID
	Code           string
	Name           string
	Category       string
	IsActive       bool
	ParamsSchema   []cee.SchemaField
	KwhCumacValues []cee.KwhCumacValue
	CreatedAt      string
	UpdatedAt      string
}

type CreateProductParams struct {
	Code           string
	Name           string
	Category       string
	IsActive       bool
	ParamsSchema   []cee.SchemaField
	KwhCumacValues []cee.KwhCumacValue
}

type UpdateProductParams struct {
	ID             uuid.UUID
	Code           *string
	Name           *string
	Category       *string
	IsActive       *bool
	ParamsSchema   []cee.SchemaField
	KwhCumacValues []cee.KwhCumacValue
}

type ListProductsParams struct {
	Search    string
	Category  string
	Active    *bool
	Offset    int
	Limit     int
	SortBy    string
	SortOrder string
}

// Repo implements the catalog repository.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new catalog repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

const productColumns = `id, code, name, category, is_active, params_schema, kwh_cumac_values, created_at, updated_at`

// CreateProduct inserts a catalog product.
func (r *Repo) CreateProduct(ctx context.Context, params CreateProductParams) (Product, error) {
	schemaJSON, valuesJSON, err := marshalProductJSON(params.ParamsSchema, params.KwhCumacValues)
	if err != nil {
		return Product{}, err
	}

	query := `
		INSERT INTO cee_products (code, name, category, is_active, params_schema, kwh_cumac_values)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + productColumns

	row := r.pool.QueryRow(ctx, query,
		params.Code, params.Name, params.Category, params.IsActive, schemaJSON, valuesJSON)
	product, err := scanProduct(row)
	if err != nil {
		if isUniqueViolation(err) {
			return Product{}, apperr.Conflict("product code already exists")
		}
		return Product{}, fmt.Errorf("create product: %w", err)
	}
	return product, nil
}

// UpdateProduct updates a catalog product. Nil params keep current values;
// a non-nil schema or savings table replaces the stored one wholesale.
func (r *Repo) UpdateProduct(ctx context.Context, params UpdateProductParams) (Product, error) {
	var schemaJSON, valuesJSON []byte
	var err error
	if params.ParamsSchema != nil || params.KwhCumacValues != nil {
		schemaJSON, valuesJSON, err = marshalProductJSON(params.ParamsSchema, params.KwhCumacValues)
		if err != nil {
			return Product{}, err
		}
	}
	if params.ParamsSchema == nil {
		schemaJSON = nil
	}
	if params.KwhCumacValues == nil {
		valuesJSON = nil
	}

	query := `
		UPDATE cee_products
		SET code = COALESCE($2, code),
			name = COALESCE($3, name),
			category = COALESCE($4, category),
			is_active = COALESCE($5, is_active),
			params_schema = COALESCE($6, params_schema),
			kwh_cumac_values = COALESCE($7, kwh_cumac_values),
			updated_at = now()
		WHERE id = $1
		RETURNING ` + productColumns

	row := r.pool.QueryRow(ctx, query,
		params.ID, params.Code, params.Name, params.Category, params.IsActive, schemaJSON, valuesJSON)
	product, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Product{}, apperr.NotFound(productNotFoundMessage)
		}
		if isUniqueViolation(err) {
			return Product{}, apperr.Conflict("product code already exists")
		}
		return Product{}, fmt.Errorf("update product: %w", err)
	}
	return product, nil
}

// DeleteProduct removes a catalog product.
func (r *Repo) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM cee_products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(productNotFoundMessage)
	}
	return nil
}

// GetProductByID retrieves a catalog product by ID.
func (r *Repo) GetProductByID(ctx context.Context, id uuid.UUID) (Product, error) {
	query := `SELECT ` + productColumns + ` FROM cee_products WHERE id = $1`
	product, err := scanProduct(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Product{}, apperr.NotFound(productNotFoundMessage)
		}
		return Product{}, fmt.Errorf("get product by id: %w", err)
	}
	return product, nil
}

// GetProductsByIDs retrieves the products matching the given IDs. Missing
// IDs are simply absent from the result.
func (r *Repo) GetProductsByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `SELECT ` + productColumns + ` FROM cee_products WHERE id = ANY($1)`
	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("get products by ids: %w", err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

// ListActiveProducts retrieves every active catalog product.
func (r *Repo) ListActiveProducts(ctx context.Context) ([]Product, error) {
	query := `SELECT ` + productColumns + ` FROM cee_products WHERE is_active ORDER BY code`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list active products: %w", err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

// ListProducts lists catalog products with filters and pagination.
func (r *Repo) ListProducts(ctx context.Context, params ListProductsParams) ([]Product, int, error) {
	whereClauses := []string{"TRUE"}
	args := []interface{}{}

	if params.Search != "" {
		args = append(args, "%"+params.Search+"%")
		idx := len(args)
		whereClauses = append(whereClauses,
			fmt.Sprintf("(code ILIKE $%d OR name ILIKE $%d)", idx, idx))
	}
	if params.Category != "" {
		args = append(args, params.Category)
		whereClauses = append(whereClauses, fmt.Sprintf("category = $%d", len(args)))
	}
	if params.Active != nil {
		args = append(args, *params.Active)
		whereClauses = append(whereClauses, fmt.Sprintf("is_active = $%d", len(args)))
	}

	where := strings.Join(whereClauses, " AND ")

	var total int
	countQuery := `SELECT COUNT(*) FROM cee_products WHERE ` + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	orderBy := sortColumn(params.SortBy)
	direction := "ASC"
	if strings.EqualFold(params.SortOrder, "desc") {
		direction = "DESC"
	}

	args = append(args, params.Limit, params.Offset)
	query := fmt.Sprintf(`SELECT %s FROM cee_products WHERE %s ORDER BY %s %s LIMIT $%d OFFSET $%d`,
		productColumns, where, orderBy, direction, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products, err := collectProducts(rows)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func sortColumn(sortBy string) string {
	switch sortBy {
	case "name":
		return "name"
	case "category":
		return "category"
	case "createdAt":
		return "created_at"
	case "updatedAt":
		return "updated_at"
	default:
		return "code"
	}
}

func marshalProductJSON(schema []cee.SchemaField, values []cee.KwhCumacValue) ([]byte, []byte, error) {
	if schema == nil {
		schema = []cee.SchemaField{}
	}
	if values == nil {
		values = []cee.KwhCumacValue{}
	}
	schemaJSON, err := json.Marshal(schema)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal params schema: %w", err)
	}
	valuesJSON, err := json.Marshal(values)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal kwh cumac values: %w", err)
	}
	return schemaJSON, valuesJSON, nil
}

func scanProduct(row pgx.Row) (Product, error) {
	var product Product
	var schemaJSON, valuesJSON []byte
	var createdAt, updatedAt time.Time

	if err := row.Scan(
		&product.ID, &product.Code, &product.Name, &product.Category, &product.IsActive,
		&schemaJSON, &valuesJSON, &createdAt, &updatedAt,
	); err != nil {
		return Product{}, err
	}

	if len(schemaJSON) > 0 {
		if err := json.Unmarshal(schemaJSON, &product.ParamsSchema); err != nil {
			return Product{}, fmt.Errorf("unmarshal params schema: %w", err)
		}
	}
	if len(valuesJSON) > 0 {
		if err := json.Unmarshal(valuesJSON, &product.KwhCumacValues); err != nil {
			return Product{}, fmt.Errorf("unmarshal kwh cumac values: %w", err)
		}
	}

	product.CreatedAt = createdAt.Format(time.RFC3339)
	product.UpdatedAt = updatedAt.Format(time.RFC3339)
	return product, nil
}

func collectProducts(rows pgx.Rows) ([]Product, error) {
	var products []Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return products, nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "23505")
}
