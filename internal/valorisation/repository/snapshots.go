// Package repository persists portfolio energy snapshots.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ecopro_backend/internal/cee"
	"ecopro_backend/platform/apperr"
)

// Snapshot is a stored energy report, kept for trend history. The breakdown
// is stored as jsonb.
type Snapshot struct {
	ID         int64
	Status     string
	TotalMwh   float64
	Breakdown  []cee.CategoryEnergy
	ComputedAt time.Time
}

// SnapshotStore is the persistence contract for energy snapshots.
type SnapshotStore interface {
	InsertSnapshot(ctx context.Context, status string, result cee.EnergyResult, computedAt time.Time) error
	LatestSnapshot(ctx context.Context, status string) (Snapshot, error)
}

// SnapshotRepo implements SnapshotStore on postgres.
type SnapshotRepo struct {
	pool *pgxpool.Pool
}

// NewSnapshotRepo creates a new snapshot repository.
func NewSnapshotRepo(pool *pgxpool.Pool) *SnapshotRepo {
	return &SnapshotRepo{pool: pool}
}

// Compile-time check that SnapshotRepo implements SnapshotStore.
var _ SnapshotStore = (*SnapshotRepo)(nil)

// InsertSnapshot appends a snapshot row.
func (r *SnapshotRepo) InsertSnapshot(ctx context.Context, status string, result cee.EnergyResult, computedAt time.Time) error {
	breakdownJSON, err := json.Marshal(result.Breakdown)
	if err != nil {
		return fmt.Errorf("marshal energy breakdown: %w", err)
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO energy_snapshots (status, total_mwh, breakdown, computed_at)
		VALUES ($1, $2, $3, $4)`,
		status, result.TotalMwh, breakdownJSON, computedAt)
	if err != nil {
		return fmt.Errorf("insert energy snapshot: %w", err)
	}
	return nil
}

// LatestSnapshot returns the most recent snapshot for a status filter.
func (r *SnapshotRepo) LatestSnapshot(ctx context.Context, status string) (Snapshot, error) {
	query := `
		SELECT id, status, total_mwh, breakdown, computed_at
		FROM energy_snapshots
		WHERE status = $1
		ORDER BY computed_at DESC
		LIMIT 1`

	var snapshot Snapshot
	var breakdownJSON []byte
	err := r.pool.QueryRow(ctx, query, status).Scan(
		&snapshot.ID, &snapshot.Status, &snapshot.TotalMwh, &breakdownJSON, &snapshot.ComputedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Snapshot{}, apperr.NotFound("energy snapshot not found")
		}
		return Snapshot{}, fmt.Errorf("latest energy snapshot: %w", err)
	}

	if len(breakdownJSON) > 0 {
		if err := json.Unmarshal(breakdownJSON, &snapshot.Breakdown); err != nil {
			return Snapshot{}, fmt.Errorf("unmarshal energy breakdown: %w", err)
		}
	}
	return snapshot, nil
}
