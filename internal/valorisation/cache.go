package valorisation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"ecopro_backend/internal/cee"
)

const energySnapshotKeyPrefix = "ecopro:energy_snapshot:"

// statusKeys enumerates every cacheable status filter so invalidation can
// clear them all without a key scan.
var statusKeys = []string{"", "draft", "accepted", "completed", "cancelled"}

// EnergySnapshot is a cached portfolio energy report.
type EnergySnapshot struct {
	Status     string           `json:"status"`
	Result     cee.EnergyResult `json:"result"`
	ComputedAt time.Time        `json:"computedAt"`
}

// SnapshotCache stores energy reports in redis with a TTL. A nil *SnapshotCache
// is valid and behaves as a cache that never hits, so the service works
// without redis configured.
type SnapshotCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewSnapshotCache creates a redis-backed snapshot cache.
func NewSnapshotCache(client redis.UniversalClient, ttl time.Duration) *SnapshotCache {
	return &SnapshotCache{client: client, ttl: ttl}
}

// Get returns the cached snapshot for a status filter, or ok=false on miss.
func (c *SnapshotCache) Get(ctx context.Context, status string) (EnergySnapshot, bool, error) {
	if c == nil || c.client == nil {
		return EnergySnapshot{}, false, nil
	}

	payload, err := c.client.Get(ctx, snapshotKey(status)).Bytes()
	if errors.Is(err, redis.Nil) {
		return EnergySnapshot{}, false, nil
	}
	if err != nil {
		return EnergySnapshot{}, false, fmt.Errorf("get energy snapshot: %w", err)
	}

	var snapshot EnergySnapshot
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		return EnergySnapshot{}, false, fmt.Errorf("decode energy snapshot: %w", err)
	}
	return snapshot, true, nil
}

// Set stores a snapshot for a status filter.
func (c *SnapshotCache) Set(ctx context.Context, snapshot EnergySnapshot) error {
	if c == nil || c.client == nil {
		return nil
	}

	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encode energy snapshot: %w", err)
	}
	if err := c.client.Set(ctx, snapshotKey(snapshot.Status), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("set energy snapshot: %w", err)
	}
	return nil
}

// Invalidate drops every cached snapshot. Called when catalog, project or
// delegate data changes.
func (c *SnapshotCache) Invalidate(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}

	keys := make([]string, 0, len(statusKeys))
	for _, status := range statusKeys {
		keys = append(keys, snapshotKey(status))
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("invalidate energy snapshots: %w", err)
	}
	return nil
}

func snapshotKey(status string) string {
	if status == "" {
		return energySnapshotKeyPrefix + "all"
	}
	return energySnapshotKeyPrefix + status
}
