package cee

import "testing"

func bandedProduct() Product {
	return Product{
		Code: "ISO-FAC",
		KwhCumacValues: []KwhCumacValue{
			{
				BuildingType:   "Bureaux",
				KwhCumacLT400:  floatPtr(1200),
				KwhCumacGTE400: floatPtr(900),
			},
		},
	}
}

func TestKwhCumacFor_FlatLookup(t *testing.T) {
	product := Product{
		KwhCumacValues: []KwhCumacValue{
			{BuildingType: "Bureaux", KwhCumac: 1500},
			{BuildingType: "Commerces", KwhCumac: 1100},
		},
	}
	params := LookupParams{Strategy: LookupFlat}

	value, ok := kwhCumacFor(product, "Commerces", nil, params)
	if !ok || value != 1100 {
		t.Fatalf("expected 1100, got %v/%v", value, ok)
	}

	if _, ok := kwhCumacFor(product, "Entrepôts", nil, params); ok {
		t.Fatal("unknown building type should not resolve")
	}
	if _, ok := kwhCumacFor(product, "", nil, params); ok {
		t.Fatal("empty building type should not resolve")
	}
	// Matching is exact, not fuzzy.
	if _, ok := kwhCumacFor(product, "bureaux", nil, params); ok {
		t.Fatal("building type matching must be exact")
	}
}

func TestKwhCumacFor_SurfaceBanded(t *testing.T) {
	product := bandedProduct()
	params := LookupParams{Strategy: LookupSurfaceBanded, UnknownSurfaceBand: BandLT400}

	value, ok := kwhCumacFor(product, "Bureaux", floatPtr(350), params)
	if !ok || value != 1200 {
		t.Fatalf("below threshold: expected 1200, got %v/%v", value, ok)
	}

	value, ok = kwhCumacFor(product, "Bureaux", floatPtr(400), params)
	if !ok || value != 900 {
		t.Fatalf("at threshold: expected 900, got %v/%v", value, ok)
	}

	value, ok = kwhCumacFor(product, "Bureaux", floatPtr(1250), params)
	if !ok || value != 900 {
		t.Fatalf("above threshold: expected 900, got %v/%v", value, ok)
	}
}

func TestKwhCumacFor_UnknownSurfaceUsesConfiguredBand(t *testing.T) {
	product := bandedProduct()

	value, ok := kwhCumacFor(product, "Bureaux", nil,
		LookupParams{Strategy: LookupSurfaceBanded, UnknownSurfaceBand: BandLT400})
	if !ok || value != 1200 {
		t.Fatalf("lt400 band: expected 1200, got %v/%v", value, ok)
	}

	value, ok = kwhCumacFor(product, "Bureaux", nil,
		LookupParams{Strategy: LookupSurfaceBanded, UnknownSurfaceBand: BandGTE400})
	if !ok || value != 900 {
		t.Fatalf("gte400 band: expected 900, got %v/%v", value, ok)
	}
}

func TestKwhCumacFor_BandedStrategyFallsBackToFlatValue(t *testing.T) {
	product := Product{
		KwhCumacValues: []KwhCumacValue{
			{BuildingType: "Bureaux", KwhCumac: 1300},
		},
	}

	value, ok := kwhCumacFor(product, "Bureaux", floatPtr(500),
		LookupParams{Strategy: LookupSurfaceBanded, UnknownSurfaceBand: BandLT400})
	if !ok || value != 1300 {
		t.Fatalf("expected flat fallback 1300, got %v/%v", value, ok)
	}
}

func TestKwhCumacFor_NonPositiveValuesAreMissing(t *testing.T) {
	product := Product{
		KwhCumacValues: []KwhCumacValue{
			{BuildingType: "Bureaux", KwhCumac: 0},
			{BuildingType: "Commerces", KwhCumacLT400: floatPtr(-10)},
		},
	}

	if _, ok := kwhCumacFor(product, "Bureaux", nil, LookupParams{Strategy: LookupFlat}); ok {
		t.Fatal("zero kwh-cumac should be treated as missing")
	}
	if _, ok := kwhCumacFor(product, "Commerces", floatPtr(100),
		LookupParams{Strategy: LookupSurfaceBanded, UnknownSurfaceBand: BandLT400}); ok {
		t.Fatal("negative banded value should be treated as missing")
	}
}
