// Package shipping estimates package dimensions and talks to the carrier
// aggregation API for quotes, shipments and tracking.
package shipping

import "github.com/pinkbella/storefront/internal/shared"

// Package describes the parcel submitted to the carrier for quoting.
type Package struct {
	WeightKg float64 `json:"weight_kg"`
	HeightCm float64 `json:"height_cm"`
	WidthCm  float64 `json:"width_cm"`
	LengthCm float64 `json:"length_cm"`
}

// Carrier-mandated minimum dimensions.
const (
	MinHeightCm = 2.0
	MinWidthCm  = 11.0
	MinLengthCm = 16.0
	MinWeightKg = 0.1
)

const (
	baseWeightGrams  = 500.0
	extraWeightGrams = 250.0
	baseHeightCm     = 8.0
	extraHeightCm    = 2.0
	fixedWidthCm     = 25.0
	fixedLengthCm    = 25.0
)

// EstimatePackage derives a parcel from the total unit count using the
// store's stepped heuristic: 500g and 8cm for the first unit, then 250g
// and 2cm per additional unit, with width and length fixed at 25cm.
// Results are floored at the carrier minimums and weight is returned in
// kilograms.
func EstimatePackage(totalQuantity int) (Package, error) {
	if totalQuantity <= 0 {
		return Package{}, shared.Validationf("total quantity must be positive")
	}

	n := float64(totalQuantity)
	weightGrams := baseWeightGrams + extraWeightGrams*(n-1)
	heightCm := baseHeightCm + extraHeightCm*(n-1)

	return Package{
		WeightKg: max(weightGrams/1000, MinWeightKg),
		HeightCm: max(heightCm, MinHeightCm),
		WidthCm:  max(fixedWidthCm, MinWidthCm),
		LengthCm: max(fixedLengthCm, MinLengthCm),
	}, nil
}

// ItemDims carries the physical attributes of one ordered item for the
// dimension-aggregating estimate.
type ItemDims struct {
	WeightKg float64
	HeightCm float64
	WidthCm  float64
	LengthCm float64
	Quantity int
}

// AggregatePackage builds a parcel from per-item dimensions: weights
// accumulate per unit, each dimension takes the largest single item, and
// carrier minimums still apply. Items without positive dimensions or
// quantity are skipped. Used by the standalone quote endpoint only; order
// placement uses EstimatePackage.
func AggregatePackage(items []ItemDims) Package {
	var totalWeight, maxHeight, maxWidth, maxLength float64
	for _, item := range items {
		if item.Quantity <= 0 || item.WeightKg <= 0 || item.HeightCm <= 0 || item.WidthCm <= 0 || item.LengthCm <= 0 {
			continue
		}
		totalWeight += item.WeightKg * float64(item.Quantity)
		maxHeight = max(maxHeight, item.HeightCm)
		maxWidth = max(maxWidth, item.WidthCm)
		maxLength = max(maxLength, item.LengthCm)
	}

	return Package{
		WeightKg: max(totalWeight, MinWeightKg),
		HeightCm: max(maxHeight, MinHeightCm),
		WidthCm:  max(maxWidth, MinWidthCm),
		LengthCm: max(maxLength, MinLengthCm),
	}
}
