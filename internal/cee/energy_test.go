package cee

import (
	"reflect"
	"testing"

	"github.com/google/uuid"
)

func energyProject(buildingType string, assocs ...Association) Project {
	return Project{
		ID:           uuid.New(),
		Status:       "accepted",
		BuildingType: buildingType,
		Associations: assocs,
	}
}

func TestEnergyByCategory_BreakdownOrderingAndFiltering(t *testing.T) {
	// Category A: 5.2 MWh, category B: 12.7 MWh, category C: nothing usable.
	a := flatProduct("A1", "A", 5200)
	b := flatProduct("B1", "B", 12700)
	c := flatProduct("C1", "C", 3000)
	c.KwhCumacValues = nil // no lookup entry, contributes zero
	catalog := testCatalog(a, b, c)

	project := energyProject("Bureaux",
		Association{ProductID: a.ID, DynamicParams: map[string]any{"quantity": 1.0}},
		Association{ProductID: b.ID, DynamicParams: map[string]any{"quantity": 1.0}},
		Association{ProductID: c.ID, DynamicParams: map[string]any{"quantity": 1.0}},
	)

	result := EnergyByCategory([]Project{project}, catalog, EnergyOptions{
		Lookup: LookupParams{Strategy: LookupFlat},
	})

	expected := []CategoryEnergy{
		{Category: "B", Mwh: 12.7},
		{Category: "A", Mwh: 5.2},
	}
	if !reflect.DeepEqual(result.Breakdown, expected) {
		t.Fatalf("unexpected breakdown: %+v", result.Breakdown)
	}
	if result.TotalMwh != 17.9 {
		t.Fatalf("expected total 17.9, got %v", result.TotalMwh)
	}
}

func TestEnergyByCategory_BlankCategoryGoesToAutres(t *testing.T) {
	p := flatProduct("X1", "  ", 2000)
	project := energyProject("Bureaux",
		Association{ProductID: p.ID, DynamicParams: map[string]any{"quantity": 2.0}},
	)

	result := EnergyByCategory([]Project{project}, testCatalog(p), EnergyOptions{
		Lookup: LookupParams{Strategy: LookupFlat},
	})

	if len(result.Breakdown) != 1 || result.Breakdown[0].Category != OtherCategory {
		t.Fatalf("expected %q bucket, got %+v", OtherCategory, result.Breakdown)
	}
	if result.Breakdown[0].Mwh != 4 {
		t.Fatalf("expected 4 MWh, got %v", result.Breakdown[0].Mwh)
	}
}

func TestEnergyByCategory_SkipsProjectsWithoutBuildingType(t *testing.T) {
	p := flatProduct("X1", "Isolation", 2000)
	project := energyProject("",
		Association{ProductID: p.ID, DynamicParams: map[string]any{"quantity": 2.0}},
	)

	result := EnergyByCategory([]Project{project}, testCatalog(p), EnergyOptions{
		Lookup: LookupParams{Strategy: LookupFlat},
	})

	if result.TotalMwh != 0 || len(result.Breakdown) != 0 {
		t.Fatalf("expected empty result, got %+v", result)
	}
}

func TestEnergyByCategory_IncludePredicateFiltersProjects(t *testing.T) {
	p := flatProduct("X1", "Isolation", 1000)
	accepted := energyProject("Bureaux",
		Association{ProductID: p.ID, DynamicParams: map[string]any{"quantity": 3.0}},
	)
	draft := energyProject("Bureaux",
		Association{ProductID: p.ID, DynamicParams: map[string]any{"quantity": 5.0}},
	)
	draft.Status = "draft"

	result := EnergyByCategory([]Project{accepted, draft}, testCatalog(p), EnergyOptions{
		Include: func(pr Project) bool { return pr.Status == "accepted" },
		Lookup:  LookupParams{Strategy: LookupFlat},
	})

	if result.TotalMwh != 3 {
		t.Fatalf("expected only the accepted project (3 MWh), got %v", result.TotalMwh)
	}
}

func TestEnergyByCategory_ExcludedCategoriesDoNotContribute(t *testing.T) {
	furniture := flatProduct("F1", "ECO-FURN", 9000)
	isolation := flatProduct("I1", "Isolation", 1000)
	project := energyProject("Bureaux",
		Association{ProductID: furniture.ID, DynamicParams: map[string]any{"quantity": 10.0}},
		Association{ProductID: isolation.ID, DynamicParams: map[string]any{"quantity": 1.0}},
	)

	result := EnergyByCategory([]Project{project}, testCatalog(furniture, isolation), EnergyOptions{
		Lookup: LookupParams{Strategy: LookupFlat},
	})

	if result.TotalMwh != 1 {
		t.Fatalf("expected 1 MWh, got %v", result.TotalMwh)
	}
	for _, entry := range result.Breakdown {
		if entry.Category == "ECO-FURN" {
			t.Fatal("excluded category leaked into breakdown")
		}
	}
}

func TestEnergyByCategory_ZeroSumProjectContributesNothing(t *testing.T) {
	// A project whose only resolvable lines are excluded or unresolved must
	// not leak partial category totals.
	furniture := flatProduct("F1", "ECO-FURN", 9000)
	unresolved := flatProduct("U1", "Isolation", 1000)
	project := energyProject("Bureaux",
		Association{ProductID: furniture.ID, DynamicParams: map[string]any{"quantity": 10.0}},
		Association{ProductID: unresolved.ID, DynamicParams: map[string]any{"surface_facturee_m2": "abc"}},
	)

	result := EnergyByCategory([]Project{project}, testCatalog(furniture, unresolved), EnergyOptions{
		Lookup: LookupParams{Strategy: LookupFlat},
	})

	if result.TotalMwh != 0 || len(result.Breakdown) != 0 {
		t.Fatalf("expected empty result, got %+v", result)
	}
}

func TestEnergyByCategory_SurfaceBandedLookup(t *testing.T) {
	product := Product{
		ID:       uuid.New(),
		Code:     "ISO-FAC",
		Category: "Isolation",
		KwhCumacValues: []KwhCumacValue{
			{BuildingType: "Bureaux", KwhCumacLT400: floatPtr(1200), KwhCumacGTE400: floatPtr(900)},
		},
	}
	small := energyProject("Bureaux",
		Association{ProductID: product.ID, DynamicParams: map[string]any{"quantity": 1.0}},
	)
	small.SurfaceBatimentM2 = floatPtr(200)
	large := energyProject("Bureaux",
		Association{ProductID: product.ID, DynamicParams: map[string]any{"quantity": 1.0}},
	)
	large.SurfaceBatimentM2 = floatPtr(800)

	result := EnergyByCategory([]Project{small, large}, testCatalog(product), EnergyOptions{
		Lookup: LookupParams{Strategy: LookupSurfaceBanded, UnknownSurfaceBand: BandLT400},
	})

	// 1.2 MWh + 0.9 MWh
	if result.TotalMwh != 2.1 {
		t.Fatalf("expected 2.1 MWh, got %v", result.TotalMwh)
	}
}

func TestEnergyByCategory_Idempotent(t *testing.T) {
	a := flatProduct("A1", "A", 5200)
	b := flatProduct("B1", "B", 12700)
	catalog := testCatalog(a, b)
	projects := []Project{
		energyProject("Bureaux",
			Association{ProductID: a.ID, DynamicParams: map[string]any{"quantity": 1.0}},
			Association{ProductID: b.ID, DynamicParams: map[string]any{"quantity": 1.0}},
		),
	}
	opts := EnergyOptions{Lookup: LookupParams{Strategy: LookupFlat}}

	first := EnergyByCategory(projects, catalog, opts)
	for i := 0; i < 5; i++ {
		if again := EnergyByCategory(projects, catalog, opts); !reflect.DeepEqual(again, first) {
			t.Fatalf("output drifted on run %d", i)
		}
	}
}
