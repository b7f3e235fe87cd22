package cee

// PrimeInput carries everything a project prime computation needs. Price and
// bonification come from the caller (delegate row and configuration); the
// engine holds no defaults for either.
type PrimeInput struct {
	BuildingType      string
	SurfaceBatimentM2 *float64
	Associations      []Association
	Catalog           Catalog
	PriceEURPerMWh    float64
	Bonification      float64
	Lookup            LookupParams
}

// LineValue computes the monetary value of one product line:
// base = kwh-cumac x bonification x price / 1000 (kWh-cumac priced per MWh),
// total = base x multiplier. Both returns are unrounded. ok is false when any
// input or intermediate is non-finite or not strictly positive; such a line
// contributes nothing.
func LineValue(kwhCumac, bonification, priceEURPerMWh, multiplier float64) (base, total float64, ok bool) {
	if !isFinite(kwhCumac) || !isFinite(bonification) || !isFinite(priceEURPerMWh) || !isFinite(multiplier) {
		return 0, 0, false
	}

	base = kwhCumac * bonification * priceEURPerMWh / 1000
	if !isFinite(base) || base <= 0 {
		return 0, 0, false
	}

	total = base * multiplier
	if !isFinite(total) || total <= 0 {
		return 0, 0, false
	}

	return base, total, true
}

// ProjectPrime folds a project's product lines into per-line results and a
// total prime. Lines that cannot contribute are reported in Excluded with
// the reason; they never abort the rest of the computation. TotalPrime is
// nil when no line was included.
//
// Line totals are rounded to cents individually; the final total is the sum
// of those rounded line totals, rounded once more. Summing already-rounded
// lines keeps the displayed lines and the displayed total consistent.
func ProjectPrime(in PrimeInput) PrimeResult {
	result := PrimeResult{Products: []ProductResult{}}

	var sum float64
	for _, assoc := range in.Associations {
		product, known := in.Catalog[assoc.ProductID]
		if !known {
			result.Excluded = append(result.Excluded, ExcludedLine{
				ProductID: assoc.ProductID,
				Status:    LineMissingLookup,
			})
			continue
		}

		if IsExcludedCategory(product.Category) {
			result.Excluded = append(result.Excluded, excludedLine(product, LineExcludedCategory))
			continue
		}

		resolution, resolved := ResolveMultiplier(product.ParamsSchema, assoc)
		if !resolved {
			result.Excluded = append(result.Excluded, excludedLine(product, LineUnresolvedMultiplier))
			continue
		}

		kwhCumac, found := kwhCumacFor(product, in.BuildingType, in.SurfaceBatimentM2, in.Lookup)
		if !found {
			result.Excluded = append(result.Excluded, excludedLine(product, LineMissingLookup))
			continue
		}

		base, total, ok := LineValue(kwhCumac, in.Bonification, in.PriceEURPerMWh, resolution.Value)
		if !ok {
			result.Excluded = append(result.Excluded, excludedLine(product, LineNonPositiveValue))
			continue
		}

		lineTotal := round2(total)
		result.Products = append(result.Products, ProductResult{
			ProductID:        product.ID,
			ProductCode:      product.Code,
			ProductName:      product.Name,
			MultiplierValue:  round2(resolution.Value),
			MultiplierLabel:  resolution.Label,
			ValorisationBase: round2(base),
			Total:            lineTotal,
		})
		sum += lineTotal
	}

	if len(result.Products) > 0 {
		total := round2(sum)
		result.TotalPrime = &total
	}

	return result
}

func excludedLine(product Product, status LineStatus) ExcludedLine {
	return ExcludedLine{
		ProductID:   product.ID,
		ProductCode: product.Code,
		Status:      status,
	}
}
