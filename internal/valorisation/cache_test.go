package valorisation

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"ecopro_backend/internal/cee"
)

func testCache(t *testing.T) (*SnapshotCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewSnapshotCache(client, time.Hour), mr
}

func TestSnapshotCacheRoundTrip(t *testing.T) {
	cache, _ := testCache(t)
	ctx := context.Background()

	snapshot := EnergySnapshot{
		Status: "accepted",
		Result: cee.EnergyResult{
			TotalMwh: 17.9,
			Breakdown: []cee.CategoryEnergy{
				{Category: "ECO-ISOL", Mwh: 12.7},
				{Category: "ECO-CHAUF", Mwh: 5.2},
			},
		},
		ComputedAt: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}

	if err := cache.Set(ctx, snapshot); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	got, hit, err := cache.Get(ctx, "accepted")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if !hit {
		t.Fatal("expected cache hit")
	}
	if got.Result.TotalMwh != 17.9 {
		t.Fatalf("TotalMwh = %v, want 17.9", got.Result.TotalMwh)
	}
	if len(got.Result.Breakdown) != 2 || got.Result.Breakdown[0].Category != "ECO-ISOL" {
		t.Fatalf("unexpected breakdown: %+v", got.Result.Breakdown)
	}
	if !got.ComputedAt.Equal(snapshot.ComputedAt) {
		t.Fatalf("ComputedAt = %v, want %v", got.ComputedAt, snapshot.ComputedAt)
	}
}

func TestSnapshotCacheMiss(t *testing.T) {
	cache, _ := testCache(t)

	_, hit, err := cache.Get(context.Background(), "draft")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if hit {
		t.Fatal("expected cache miss")
	}
}

func TestSnapshotCacheStatusesDoNotCollide(t *testing.T) {
	cache, _ := testCache(t)
	ctx := context.Background()

	if err := cache.Set(ctx, EnergySnapshot{Status: "", Result: cee.EnergyResult{TotalMwh: 1}}); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if err := cache.Set(ctx, EnergySnapshot{Status: "accepted", Result: cee.EnergyResult{TotalMwh: 2}}); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	all, hit, err := cache.Get(ctx, "")
	if err != nil || !hit {
		t.Fatalf("Get all: hit=%v err=%v", hit, err)
	}
	if all.Result.TotalMwh != 1 {
		t.Fatalf("all TotalMwh = %v, want 1", all.Result.TotalMwh)
	}

	accepted, hit, err := cache.Get(ctx, "accepted")
	if err != nil || !hit {
		t.Fatalf("Get accepted: hit=%v err=%v", hit, err)
	}
	if accepted.Result.TotalMwh != 2 {
		t.Fatalf("accepted TotalMwh = %v, want 2", accepted.Result.TotalMwh)
	}
}

func TestSnapshotCacheInvalidateClearsEveryStatus(t *testing.T) {
	cache, _ := testCache(t)
	ctx := context.Background()

	for _, status := range []string{"", "draft", "accepted"} {
		if err := cache.Set(ctx, EnergySnapshot{Status: status, Result: cee.EnergyResult{TotalMwh: 1}}); err != nil {
			t.Fatalf("Set(%q) returned error: %v", status, err)
		}
	}

	if err := cache.Invalidate(ctx); err != nil {
		t.Fatalf("Invalidate returned error: %v", err)
	}

	for _, status := range []string{"", "draft", "accepted"} {
		if _, hit, _ := cache.Get(ctx, status); hit {
			t.Fatalf("expected miss for status %q after invalidation", status)
		}
	}
}

func TestSnapshotCacheEntriesExpire(t *testing.T) {
	cache, mr := testCache(t)
	ctx := context.Background()

	if err := cache.Set(ctx, EnergySnapshot{Status: "accepted", Result: cee.EnergyResult{TotalMwh: 3}}); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	mr.FastForward(2 * time.Hour)

	if _, hit, _ := cache.Get(ctx, "accepted"); hit {
		t.Fatal("expected entry to expire after TTL")
	}
}

func TestNilSnapshotCacheIsInert(t *testing.T) {
	var cache *SnapshotCache
	ctx := context.Background()

	if _, hit, err := cache.Get(ctx, "accepted"); hit || err != nil {
		t.Fatalf("nil cache Get: hit=%v err=%v", hit, err)
	}
	if err := cache.Set(ctx, EnergySnapshot{Status: "accepted"}); err != nil {
		t.Fatalf("nil cache Set returned error: %v", err)
	}
	if err := cache.Invalidate(ctx); err != nil {
		t.Fatalf("nil cache Invalidate returned error: %v", err)
	}
}
