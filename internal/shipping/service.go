package shipping

import (
	"context"
	"fmt"
	"sort"

	"github.com/pinkbella/storefront/internal/catalog"
	"github.com/pinkbella/storefront/internal/shared"
)

// Quoter requests priced shipping options for a parcel.
type Quoter interface {
	Quote(ctx context.Context, destinationPostalCode string, pkg Package) ([]Option, error)
}

// QuoteItem references a catalog product and a quantity for quoting.
type QuoteItem struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"required,gt=0"`
}

// QuoteRequest is the standalone quote endpoint input.
type QuoteRequest struct {
	DestinationPostalCode string      `json:"destination_postal_code" validate:"required"`
	Items                 []QuoteItem `json:"items" validate:"required,min=1,dive"`
}

// QuoteResult is one option plus the parcel the quote was computed for.
type QuoteResult struct {
	Options []Option `json:"options"`
	Package Package  `json:"package"`
}

// Service computes standalone shipping quotes from catalog dimensions.
// Unlike order placement, this path aggregates each product's registered
// physical attributes instead of the stepped per-unit heuristic.
type Service struct {
	products catalog.Repository
	quoter   Quoter
}

func NewService(products catalog.Repository, quoter Quoter) *Service {
	return &Service{products: products, quoter: quoter}
}

// QuoteForItems fetches the referenced products, aggregates a parcel from
// their dimensions and returns carrier options sorted by ascending price.
func (s *Service) QuoteForItems(ctx context.Context, req QuoteRequest) (*QuoteResult, error) {
	dims := make([]ItemDims, 0, len(req.Items))
	for _, item := range req.Items {
		product, err := s.products.Get(ctx, item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("fetch product: %w", err)
		}
		dims = append(dims, ItemDims{
			WeightKg: deref(product.WeightKg),
			HeightCm: deref(product.HeightCm),
			WidthCm:  deref(product.WidthCm),
			LengthCm: deref(product.LengthCm),
			Quantity: item.Quantity,
		})
	}

	pkg := AggregatePackage(dims)
	options, err := s.quoter.Quote(ctx, req.DestinationPostalCode, pkg)
	if err != nil {
		return nil, err
	}
	if len(options) == 0 {
		return nil, shared.Dependency("carrier", "no shipping options", nil)
	}

	sort.SliceStable(options, func(i, j int) bool {
		return options[i].Price < options[j].Price
	})

	return &QuoteResult{Options: options, Package: pkg}, nil
}

func deref(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}
