package cee

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// SchemaTarget is one canonical concept the resolver looks for in a product's
// parameter schema. Targets are tried in declaration order; the order is a
// business rule (billed surface beats lamp count).
type SchemaTarget struct {
	Concept       string
	Aliases       []string
	FallbackLabel string
}

// SchemaTargets is the ordered list of schema-driven resolution targets.
// Aliases are matched against diacritic-folded field names and labels.
var SchemaTargets = []SchemaTarget{
	{
		Concept: "surface_facturee",
		Aliases: []string{
			"surface facturee",
			"surface a facturer",
		},
		FallbackLabel: "Surface facturée",
	},
	{
		Concept: "nombre_luminaires",
		Aliases: []string{
			"nombre de luminaire",
			"nombre de luminaires",
			"nb luminaires",
		},
		FallbackLabel: "Nombre de luminaires",
	},
}

// FallbackKeys is the ordered chain of dynamic-parameter keys scanned when no
// schema field matched. First present key with a positive numeric value wins.
var FallbackKeys = []string{
	"quantity",
	"surface_facturee_m2",
	"surface_isolee",
	"nombre_led",
	"nombre_appareils",
	"nombre_points_lumineux",
	"surface",
}

var fallbackLabels = map[string]string{
	"quantity":               "Quantité",
	"surface_facturee_m2":    "Surface facturée",
	"surface_isolee":         "Surface isolée",
	"nombre_led":             "Nombre de LED",
	"nombre_appareils":       "Nombre d'appareils",
	"nombre_points_lumineux": "Nombre de points lumineux",
	"surface":                "Surface",
}

var fallbackUnits = map[string]string{
	"surface_facturee_m2": "m²",
	"surface_isolee":      "m²",
	"surface":             "m²",
}

var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// foldText normalizes a schema field name or label for fuzzy matching:
// NFD decomposition, diacritic stripping, lowercasing, and separator
// collapsing ("Surface_Facturée " -> "surface facturee").
func foldText(s string) string {
	folded, _, err := transform.String(foldTransformer, s)
	if err != nil {
		folded = s
	}
	folded = strings.ToLower(folded)
	folded = strings.Map(func(r rune) rune {
		if r == '_' || r == '-' {
			return ' '
		}
		return r
	}, folded)
	return strings.Join(strings.Fields(folded), " ")
}

func (t SchemaTarget) matches(field SchemaField) bool {
	name := foldText(field.Name)
	label := foldText(field.Label)
	for _, alias := range t.Aliases {
		if name != "" && strings.Contains(name, alias) {
			return true
		}
		if label != "" && strings.Contains(label, alias) {
			return true
		}
	}
	return false
}

// ResolveMultiplier reduces an association's dynamic parameters (plus the
// static quantity fallback) to one positive driver value with a display
// label. Resolution order:
//
//  1. schema fields matching SchemaTargets, in target order;
//  2. FallbackKeys present in the dynamic params, in key order;
//  3. the association's plain quantity.
//
// Zero, negative and unparseable values count as absent at every step. The
// second return is false when nothing resolves; such a line is dropped from
// totals, it is not an error.
func ResolveMultiplier(schema []SchemaField, assoc Association) (Resolution, bool) {
	for _, target := range SchemaTargets {
		for _, field := range schema {
			if field.Name == "" || !target.matches(field) {
				continue
			}
			value, ok := positiveNumber(assoc.DynamicParams[field.Name])
			if !ok {
				continue
			}
			label := strings.TrimSpace(field.Label)
			if label == "" {
				label = target.FallbackLabel
			}
			return Resolution{Value: value, FieldName: field.Name, Label: label}, true
		}
	}

	for _, key := range FallbackKeys {
		raw, present := assoc.DynamicParams[key]
		if !present {
			continue
		}
		value, ok := positiveNumber(raw)
		if !ok {
			continue
		}
		return Resolution{
			Value:     value,
			FieldName: key,
			Label:     fallbackLabels[key],
			Unit:      fallbackUnits[key],
		}, true
	}

	if assoc.Quantity != nil {
		q := *assoc.Quantity
		if isFinite(q) && q > 0 {
			return Resolution{Value: q, Label: "Quantité"}, true
		}
	}

	return Resolution{}, false
}
