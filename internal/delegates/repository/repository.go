package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ecopro_backend/platform/apperr"
)

const delegateNotFoundMessage = "delegate not found"

// Delegate is a CEE buyer row. PriceEURPerMWh is its current valorisation
// price in euros per MWh cumac.
type Delegate struct {
	ID             uuid.UUID
	Name           string
	PriceEURPerMWh float64
	IsActive       bool
	CreatedAt      string
	UpdatedAt      string
}

type CreateDelegateParams struct {
	Name           string
	PriceEURPerMWh float64
	IsActive       bool
}

type UpdateDelegateParams struct {
	ID             uuid.UUID
	Name           *string
	PriceEURPerMWh *float64
	IsActive       *bool
}

type ListDelegatesParams struct {
	Search string
	Active *bool
	Offset int
	Limit  int
}

// Repo implements the delegates repository.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new delegates repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

const delegateColumns = `id, name, price_eur_per_mwh, is_active, created_at, updated_at`

// CreateDelegate inserts a delegate.
func (r *Repo) CreateDelegate(ctx context.Context, params CreateDelegateParams) (Delegate, error) {
	query := `
		INSERT INTO delegates (name, price_eur_per_mwh, is_active)
		VALUES ($1, $2, $3)
		RETURNING ` + delegateColumns

	row := r.pool.QueryRow(ctx, query, params.Name, params.PriceEURPerMWh, params.IsActive)
	delegate, err := scanDelegate(row)
	if err != nil {
		if isUniqueViolation(err) {
			return Delegate{}, apperr.Conflict("delegate name already exists")
		}
		return Delegate{}, fmt.Errorf("create delegate: %w", err)
	}
	return delegate, nil
}

// UpdateDelegate updates a delegate. Nil params keep current values.
func (r *Repo) UpdateDelegate(ctx context.Context, params UpdateDelegateParams) (Delegate, error) {
	query := `
		UPDATE delegates
		SET name = COALESCE($2, name),
			price_eur_per_mwh = COALESCE($3, price_eur_per_mwh),
			is_active = COALESCE($4, is_active),
			updated_at = now()
		WHERE id = $1
		RETURNING ` + delegateColumns

	row := r.pool.QueryRow(ctx, query, params.ID, params.Name, params.PriceEURPerMWh, params.IsActive)
	delegate, err := scanDelegate(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Delegate{}, apperr.NotFound(delegateNotFoundMessage)
		}
		if isUniqueViolation(err) {
			return Delegate{}, apperr.Conflict("delegate name already exists")
		}
		return Delegate{}, fmt.Errorf("update delegate: %w", err)
	}
	return delegate, nil
}

// DeleteDelegate removes a delegate.
func (r *Repo) DeleteDelegate(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM delegates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete delegate: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(delegateNotFoundMessage)
	}
	return nil
}

// GetDelegateByID retrieves a delegate by ID.
func (r *Repo) GetDelegateByID(ctx context.Context, id uuid.UUID) (Delegate, error) {
	query := `SELECT ` + delegateColumns + ` FROM delegates WHERE id = $1`
	delegate, err := scanDelegate(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Delegate{}, apperr.NotFound(delegateNotFoundMessage)
		}
		return Delegate{}, fmt.Errorf("get delegate by id: %w", err)
	}
	return delegate, nil
}

// ListDelegates lists delegates with filters and pagination.
func (r *Repo) ListDelegates(ctx context.Context, params ListDelegatesParams) ([]Delegate, int, error) {
	whereClauses := []string{"TRUE"}
	args := []interface{}{}

	if params.Search != "" {
		args = append(args, "%"+params.Search+"%")
		whereClauses = append(whereClauses, fmt.Sprintf("name ILIKE $%d", len(args)))
	}
	if params.Active != nil {
		args = append(args, *params.Active)
		whereClauses = append(whereClauses, fmt.Sprintf("is_active = $%d", len(args)))
	}

	where := strings.Join(whereClauses, " AND ")

	var total int
	countQuery := `SELECT COUNT(*) FROM delegates WHERE ` + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count delegates: %w", err)
	}

	args = append(args, params.Limit, params.Offset)
	query := fmt.Sprintf(`SELECT %s FROM delegates WHERE %s ORDER BY name LIMIT $%d OFFSET $%d`,
		delegateColumns, where, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list delegates: %w", err)
	}
	defer rows.Close()

	var delegates []Delegate
	for rows.Next() {
		delegate, err := scanDelegate(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan delegate: %w", err)
		}
		delegates = append(delegates, delegate)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate delegates: %w", err)
	}
	return delegates, total, nil
}

func scanDelegate(row pgx.Row) (Delegate, error) {
	var delegate Delegate
	var createdAt, updatedAt time.Time

	if err := row.Scan(
		&delegate.ID, &delegate.Name, &delegate.PriceEURPerMWh, &delegate.IsActive,
		&createdAt, &updatedAt,
	); err != nil {
		return Delegate{}, err
	}

	delegate.CreatedAt = createdAt.Format(time.RFC3339)
	delegate.UpdatedAt = updatedAt.Format(time.RFC3339)
	return delegate, nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "23505")
}
