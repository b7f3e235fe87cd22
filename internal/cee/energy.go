package cee

import (
	"sort"
	"strings"
)

// EnergyOptions configures a portfolio energy aggregation. Include, when set,
// filters projects before processing (e.g. only accepted projects).
type EnergyOptions struct {
	Include func(Project) bool
	Lookup  LookupParams
}

// EnergyByCategory sums certified savings (MWh) across projects, grouped by
// product category. A project without a building type is skipped; a project
// whose own sum is not strictly positive contributes nothing, not even
// partial category amounts. Blank categories land in the "Autres" bucket.
//
// The breakdown keeps strictly positive categories only, sorted by MWh
// descending (category name breaks ties so output is deterministic). Entry
// values and the grand total are rounded independently from the unrounded
// accumulations.
func EnergyByCategory(projects []Project, catalog Catalog, opts EnergyOptions) EnergyResult {
	totals := make(map[string]float64)

	for _, project := range projects {
		if opts.Include != nil && !opts.Include(project) {
			continue
		}
		if project.BuildingType == "" {
			continue
		}

		projectTotals, projectSum := projectEnergy(project, catalog, opts.Lookup)
		if projectSum <= 0 {
			continue
		}
		for category, mwh := range projectTotals {
			totals[category] += mwh
		}
	}

	var grandTotal float64
	breakdown := make([]CategoryEnergy, 0, len(totals))
	for category, mwh := range totals {
		grandTotal += mwh
		if mwh > 0 {
			breakdown = append(breakdown, CategoryEnergy{Category: category, Mwh: round2(mwh)})
		}
	}

	sort.Slice(breakdown, func(i, j int) bool {
		if breakdown[i].Mwh != breakdown[j].Mwh {
			return breakdown[i].Mwh > breakdown[j].Mwh
		}
		return breakdown[i].Category < breakdown[j].Category
	})

	return EnergyResult{
		TotalMwh:  round2(grandTotal),
		Breakdown: breakdown,
	}
}

// projectEnergy computes one project's MWh per category. Bonification and
// market price do not apply here: the breakdown reports certified savings,
// not their monetary valuation.
func projectEnergy(project Project, catalog Catalog, lookup LookupParams) (map[string]float64, float64) {
	totals := make(map[string]float64)
	var sum float64

	for _, assoc := range project.Associations {
		product, known := catalog[assoc.ProductID]
		if !known || IsExcludedCategory(product.Category) {
			continue
		}

		resolution, resolved := ResolveMultiplier(product.ParamsSchema, assoc)
		if !resolved {
			continue
		}

		kwhCumac, found := kwhCumacFor(product, project.BuildingType, project.SurfaceBatimentM2, lookup)
		if !found {
			continue
		}

		mwh := kwhCumac * resolution.Value / 1000
		if !isFinite(mwh) || mwh <= 0 {
			continue
		}

		totals[normalizeCategory(product.Category)] += mwh
		sum += mwh
	}

	return totals, sum
}

func normalizeCategory(category string) string {
	trimmed := strings.TrimSpace(category)
	if trimmed == "" {
		return OtherCategory
	}
	return trimmed
}
