// Package cee implements the CEE (Certificats d'Économies d'Énergie)
// valorisation engine: multiplier resolution, per-product prime computation
// and portfolio energy aggregation. Everything in this package is a pure
// function of its inputs; it performs no I/O and never mutates its arguments.
package cee

import "github.com/google/uuid"

// SchemaField describes one dynamic input a product accepts.
type SchemaField struct {
	Name  string `json:"name"`
	Label string `json:"label,omitempty"`
	Unit  string `json:"unit,omitempty"`
}

// KwhCumacValue is one row of a product's per-building-type savings table.
// Flat products carry KwhCumac; surface-banded products carry the LT400/GTE400
// pair. A table has at most one row per building type.
type KwhCumacValue struct {
	BuildingType   string   `json:"building_type"`
	KwhCumac       float64  `json:"kwh_cumac,omitempty"`
	KwhCumacLT400  *float64 `json:"kwh_cumac_lt_400,omitempty"`
	KwhCumacGTE400 *float64 `json:"kwh_cumac_gte_400,omitempty"`
}

// Product is a catalog entry as the engine sees it.
type Product struct {
	ID             uuid.UUID
	Code           string
	Name           string
	Category       string
	IsActive       bool
	ParamsSchema   []SchemaField
	KwhCumacValues []KwhCumacValue
}

// Association links a project to a catalog product with the user-entered
// quantity and dynamic parameter values. DynamicParams values are untrusted
// (strings or numbers) and are parsed defensively.
type Association struct {
	ProductID     uuid.UUID
	Quantity      *float64
	DynamicParams map[string]any
}

// Project carries the fields the engine needs from a project row.
type Project struct {
	ID                uuid.UUID
	Status            string
	BuildingType      string
	SurfaceBatimentM2 *float64
	Associations      []Association
}

// Catalog indexes products by ID for line evaluation.
type Catalog map[uuid.UUID]Product

// LookupStrategy selects how kWh-cumac values are read from the table.
type LookupStrategy string

const (
	// LookupFlat reads the single per-building-type value.
	LookupFlat LookupStrategy = "flat"
	// LookupSurfaceBanded branches on the project's building surface to pick
	// the below-400 or at-or-above-400 value.
	LookupSurfaceBanded LookupStrategy = "surface_banded"
)

// SurfaceBand names one side of the 400 m² threshold.
type SurfaceBand string

const (
	BandLT400  SurfaceBand = "lt400"
	BandGTE400 SurfaceBand = "gte400"
)

// SurfaceBandThresholdM2 is the regulatory banding threshold.
const SurfaceBandThresholdM2 = 400.0

// LineStatus explains why a product line was or was not included in totals.
type LineStatus string

const (
	// LineIncluded means the line contributed to totals.
	LineIncluded LineStatus = "included"
	// LineExcludedCategory means the product's category never generates
	// certifiable savings.
	LineExcludedCategory LineStatus = "excluded_category"
	// LineUnresolvedMultiplier means no positive quantity could be resolved.
	LineUnresolvedMultiplier LineStatus = "unresolved_multiplier"
	// LineMissingLookup means the product has no savings value for the
	// project's building type (or the product is unknown to the catalog).
	LineMissingLookup LineStatus = "missing_lookup"
	// LineNonPositiveValue means the computed value was zero, negative or
	// non-finite (e.g. delegate price missing).
	LineNonPositiveValue LineStatus = "non_positive_value"
)

// Resolution is the outcome of multiplier resolution for one line.
type Resolution struct {
	Value     float64
	FieldName string // dynamic-param key the value came from; empty for plain quantity
	Label     string
	Unit      string
}

// ProductResult is one included line of a project prime computation.
// Monetary fields are rounded to 2 decimals.
type ProductResult struct {
	ProductID        uuid.UUID `json:"productId"`
	ProductCode      string    `json:"productCode"`
	ProductName      string    `json:"productName"`
	MultiplierValue  float64   `json:"multiplierValue"`
	MultiplierLabel  string    `json:"multiplierLabel"`
	ValorisationBase float64   `json:"valorisationBase"`
	Total            float64   `json:"total"`
}

// ExcludedLine records a line that was dropped, and why.
type ExcludedLine struct {
	ProductID   uuid.UUID  `json:"productId"`
	ProductCode string     `json:"productCode,omitempty"`
	Status      LineStatus `json:"status"`
}

// PrimeResult is the outcome of a project prime computation. TotalPrime is
// nil when no line was included, which is distinct from a legitimate total
// of zero.
type PrimeResult struct {
	TotalPrime *float64        `json:"totalPrime"`
	Products   []ProductResult `json:"products"`
	Excluded   []ExcludedLine  `json:"excluded,omitempty"`
}

// CategoryEnergy is one category bucket of a portfolio energy breakdown.
type CategoryEnergy struct {
	Category string  `json:"category"`
	Mwh      float64 `json:"mwh"`
}

// EnergyResult is a portfolio-wide energy aggregation.
type EnergyResult struct {
	TotalMwh  float64          `json:"totalMwh"`
	Breakdown []CategoryEnergy `json:"breakdown"`
}

// OtherCategory is the bucket for blank or missing product categories.
const OtherCategory = "Autres"

// ExcludedCategories are administrative, logistics and furniture categories
// that do not generate certifiable energy savings.
var ExcludedCategories = map[string]struct{}{
	"ECO-FURN": {},
	"ECO-LOG":  {},
	"ECO-ADMN": {},
}

// IsExcludedCategory reports whether a product category never contributes.
func IsExcludedCategory(category string) bool {
	_, excluded := ExcludedCategories[category]
	return excluded
}
