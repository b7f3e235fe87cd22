package cee

import (
	"math"
	"testing"
)

func floatPtr(v float64) *float64 { return &v }

func TestResolveMultiplier_SchemaMatchBeatsFallbackQuantity(t *testing.T) {
	schema := []SchemaField{
		{Name: "surface_facturee_m2", Label: "Surface facturée (m²)"},
	}
	assoc := Association{
		DynamicParams: map[string]any{
			"surface_facturee_m2": 150.0,
			"quantity":            99.0,
		},
	}

	res, ok := ResolveMultiplier(schema, assoc)
	if !ok {
		t.Fatal("expected resolution")
	}
	if res.Value != 150 {
		t.Fatalf("expected 150, got %v", res.Value)
	}
	if res.FieldName != "surface_facturee_m2" {
		t.Fatalf("expected schema field name, got %q", res.FieldName)
	}
	if res.Label != "Surface facturée (m²)" {
		t.Fatalf("expected schema label, got %q", res.Label)
	}
}

func TestResolveMultiplier_DiacriticAndCaseFolding(t *testing.T) {
	schema := []SchemaField{
		{Name: "champ_custom", Label: "SURFACE FACTURÉE"},
	}
	assoc := Association{
		DynamicParams: map[string]any{"champ_custom": "42,5"},
	}

	res, ok := ResolveMultiplier(schema, assoc)
	if !ok {
		t.Fatal("expected resolution via folded label")
	}
	if res.Value != 42.5 {
		t.Fatalf("expected 42.5, got %v", res.Value)
	}
}

func TestResolveMultiplier_TargetOrderSurfaceBeforeLuminaires(t *testing.T) {
	schema := []SchemaField{
		{Name: "nombre_de_luminaires", Label: "Nombre de luminaires"},
		{Name: "surface_facturee", Label: "Surface facturée"},
	}
	assoc := Association{
		DynamicParams: map[string]any{
			"nombre_de_luminaires": 30.0,
			"surface_facturee":     120.0,
		},
	}

	res, ok := ResolveMultiplier(schema, assoc)
	if !ok {
		t.Fatal("expected resolution")
	}
	// Billed surface wins regardless of schema declaration order.
	if res.Value != 120 {
		t.Fatalf("expected surface value 120, got %v", res.Value)
	}
}

func TestResolveMultiplier_FallbackKeyOrder(t *testing.T) {
	assoc := Association{
		DynamicParams: map[string]any{
			"surface":        10.0,
			"surface_isolee": 20.0,
			"quantity":       5.0,
		},
	}

	res, ok := ResolveMultiplier(nil, assoc)
	if !ok {
		t.Fatal("expected resolution")
	}
	if res.FieldName != "quantity" || res.Value != 5 {
		t.Fatalf("expected quantity=5 to win, got %q=%v", res.FieldName, res.Value)
	}
}

func TestResolveMultiplier_FallbackChainIsDeclaredData(t *testing.T) {
	expected := []string{
		"quantity",
		"surface_facturee_m2",
		"surface_isolee",
		"nombre_led",
		"nombre_appareils",
		"nombre_points_lumineux",
		"surface",
	}
	if len(FallbackKeys) != len(expected) {
		t.Fatalf("expected %d fallback keys, got %d", len(expected), len(FallbackKeys))
	}
	for i, key := range expected {
		if FallbackKeys[i] != key {
			t.Fatalf("fallback key %d: expected %q, got %q", i, key, FallbackKeys[i])
		}
	}
}

func TestResolveMultiplier_GarbageValuesFallThrough(t *testing.T) {
	cases := []struct {
		name  string
		value any
	}{
		{"text", "abc"},
		{"negative", -5.0},
		{"negative string", "-5"},
		{"zero", 0.0},
		{"nan", math.NaN()},
		{"infinity", math.Inf(1)},
		{"nil", nil},
		{"bool", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assoc := Association{
				Quantity: floatPtr(7),
				DynamicParams: map[string]any{
					"quantity": tc.value,
				},
			}
			res, ok := ResolveMultiplier(nil, assoc)
			if !ok {
				t.Fatal("expected fallback to plain quantity")
			}
			if res.Value != 7 {
				t.Fatalf("expected plain quantity 7, got %v", res.Value)
			}
			if res.FieldName != "" {
				t.Fatalf("plain quantity should have no field name, got %q", res.FieldName)
			}
		})
	}
}

func TestResolveMultiplier_SchemaFieldWithoutValueKeepsScanning(t *testing.T) {
	schema := []SchemaField{
		{Name: "surface_facturee_m2", Label: "Surface facturée"},
	}
	assoc := Association{
		DynamicParams: map[string]any{"nombre_led": "24"},
	}

	res, ok := ResolveMultiplier(schema, assoc)
	if !ok {
		t.Fatal("expected fallback resolution")
	}
	if res.FieldName != "nombre_led" || res.Value != 24 {
		t.Fatalf("expected nombre_led=24, got %q=%v", res.FieldName, res.Value)
	}
	if res.Label != "Nombre de LED" {
		t.Fatalf("unexpected label %q", res.Label)
	}
}

func TestResolveMultiplier_NothingResolves(t *testing.T) {
	assoc := Association{
		Quantity:      floatPtr(0),
		DynamicParams: map[string]any{"unrelated": "x"},
	}
	if _, ok := ResolveMultiplier(nil, assoc); ok {
		t.Fatal("expected no resolution")
	}
}

func TestResolveMultiplier_Deterministic(t *testing.T) {
	schema := []SchemaField{
		{Name: "surface_facturee_m2", Label: "Surface facturée"},
		{Name: "nombre_luminaires", Label: "Nombre de luminaires"},
	}
	assoc := Association{
		Quantity: floatPtr(3),
		DynamicParams: map[string]any{
			"surface_facturee_m2": "101,5",
			"nombre_luminaires":   12.0,
		},
	}

	first, ok := ResolveMultiplier(schema, assoc)
	if !ok {
		t.Fatal("expected resolution")
	}
	for i := 0; i < 10; i++ {
		again, ok := ResolveMultiplier(schema, assoc)
		if !ok || again != first {
			t.Fatalf("resolution drifted on run %d: %+v vs %+v", i, again, first)
		}
	}
}

func TestFoldText(t *testing.T) {
	cases := []struct {
		in, out string
	}{
		{"Surface Facturée", "surface facturee"},
		{"surface_facturee_m2", "surface facturee m2"},
		{"  NOMBRE   de  Luminaires ", "nombre de luminaires"},
		{"éàüç", "eauc"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := foldText(tc.in); got != tc.out {
			t.Fatalf("foldText(%q) = %q, expected %q", tc.in, got, tc.out)
		}
	}
}
