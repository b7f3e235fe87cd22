package cee

// LookupParams configures how kWh-cumac values are read for a project.
// UnknownSurfaceBand must be set when Strategy is LookupSurfaceBanded; the
// engine never guesses a band on its own.
type LookupParams struct {
	Strategy           LookupStrategy
	UnknownSurfaceBand SurfaceBand
}

// kwhCumacFor returns the savings value for a product and building type, or
// false when the table has no usable entry. Building types match exactly.
func kwhCumacFor(product Product, buildingType string, surfaceM2 *float64, params LookupParams) (float64, bool) {
	if buildingType == "" {
		return 0, false
	}

	for _, entry := range product.KwhCumacValues {
		if entry.BuildingType != buildingType {
			continue
		}
		if params.Strategy == LookupSurfaceBanded {
			if value, ok := bandedValue(entry, surfaceM2, params.UnknownSurfaceBand); ok {
				return value, true
			}
		}
		// Flat strategy, or a banded table row that only carries the flat value.
		if isFinite(entry.KwhCumac) && entry.KwhCumac > 0 {
			return entry.KwhCumac, true
		}
		return 0, false
	}

	return 0, false
}

func bandedValue(entry KwhCumacValue, surfaceM2 *float64, unknownBand SurfaceBand) (float64, bool) {
	band := unknownBand
	if surfaceM2 != nil && isFinite(*surfaceM2) && *surfaceM2 > 0 {
		if *surfaceM2 < SurfaceBandThresholdM2 {
			band = BandLT400
		} else {
			band = BandGTE400
		}
	}

	var value *float64
	switch band {
	case BandGTE400:
		value = entry.KwhCumacGTE400
	default:
		value = entry.KwhCumacLT400
	}

	if value == nil || !isFinite(*value) || *value <= 0 {
		return 0, false
	}
	return *value, true
}
