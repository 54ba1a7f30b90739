// Package orders places purchases atomically against inventory and carries
// them through the fulfillment status pipeline.
package orders

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/pinkbella/storefront/internal/catalog"
	"github.com/pinkbella/storefront/internal/customers"
	"github.com/pinkbella/storefront/internal/shared"
	"github.com/pinkbella/storefront/internal/shipping"
)

// CarrierClient covers the carrier calls made after an order exists:
// submitting the shipment for a label and polling label progress.
type CarrierClient interface {
	CreateShipment(ctx context.Context, req shipping.ShipmentRequest) (*shipping.ShipmentLabel, error)
	Tracking(ctx context.Context, labelIDs []string) (map[string]shipping.TrackingState, error)
}

type Service struct {
	logger    *slog.Logger
	orders    Repository
	customers customers.Repository
	products  catalog.Repository
	quoter    shipping.Quoter
	carrier   CarrierClient
	idem      *shared.IdempotencyStore
}

func NewService(
	logger *slog.Logger,
	orders Repository,
	customerRepo customers.Repository,
	products catalog.Repository,
	quoter shipping.Quoter,
	carrier CarrierClient,
	idem *shared.IdempotencyStore,
) *Service {
	return &Service{
		logger:    logger,
		orders:    orders,
		customers: customerRepo,
		products:  products,
		quoter:    quoter,
		carrier:   carrier,
		idem:      idem,
	}
}

// PlaceOrder validates the request, quotes shipping for the estimated
// parcel, picks the cheapest option and persists order, items and stock
// decrements in one transaction. Stock is only checked authoritatively by
// the guarded decrement inside the transaction; the earlier read is a
// fast-fail courtesy.
func (s *Service) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (result *PlacementResult, retErr error) {
	if s.idem != nil && req.IdempotencyKey != "" {
		if err := s.idem.CheckAndInsert(ctx, req.IdempotencyKey, "orders"); err != nil {
			if errors.Is(err, shared.ErrIdempotencyConflict) {
				return nil, &shared.ConflictError{Reason: "duplicate order request"}
			}
			return nil, err
		}
		// Release the key on failure so the client may retry.
		defer func() {
			if retErr != nil {
				if err := s.idem.Delete(ctx, req.IdempotencyKey); err != nil {
					s.logger.Warn("release idempotency key",
						slog.String("key", req.IdempotencyKey), slog.Any("error", err))
				}
			}
		}()
	}

	customer, err := s.customers.Get(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}
	if !customer.Active {
		return nil, shared.Validationf("customer %d is deactivated", customer.ID)
	}

	address, err := s.resolveAddress(ctx, customer, req.DeliveryAddressID)
	if err != nil {
		return nil, err
	}

	lineProducts, err := s.fetchProducts(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	totalQuantity := 0
	subtotal := 0.0
	for i, item := range req.Items {
		product := lineProducts[i]
		if product.Stock < item.Quantity {
			return nil, shared.InsufficientStock(product.ID, product.Stock, item.Quantity)
		}
		totalQuantity += item.Quantity
		subtotal += float64(item.Quantity) * product.Price
	}

	pkg, err := shipping.EstimatePackage(totalQuantity)
	if err != nil {
		return nil, err
	}

	options, err := s.quoter.Quote(ctx, address.PostalCode, pkg)
	if err != nil {
		return nil, fmt.Errorf("quote shipping: %w", err)
	}
	if len(options) == 0 {
		return nil, shared.Dependency("carrier", "no shipping options", nil)
	}
	sort.SliceStable(options, func(i, j int) bool {
		return options[i].Price < options[j].Price
	})
	cheapest := options[0]

	var orderID int64
	err = s.orders.WithTx(ctx, func(ctx context.Context, tx Repository) error {
		orderID, err = tx.Insert(ctx, Order{
			CustomerID:        customer.ID,
			DeliveryAddressID: address.ID,
			Total:             subtotal + cheapest.Price,
			ProductSubtotal:   subtotal,
			Status:            StatusPending,
			ShippingPrice:     cheapest.Price,
			CarrierName:       cheapest.Carrier,
			ServiceName:       cheapest.Service,
			ServiceID:         cheapest.ServiceID,
			EstimatedDays:     cheapest.EstimatedDays,
			PackageWeightKg:   pkg.WeightKg,
			PackageHeightCm:   pkg.HeightCm,
			PackageWidthCm:    pkg.WidthCm,
			PackageLengthCm:   pkg.LengthCm,
		})
		if err != nil {
			return fmt.Errorf("insert order: %w", err)
		}

		for i, item := range req.Items {
			product := lineProducts[i]
			if _, err := tx.InsertItem(ctx, OrderItem{
				OrderID:   orderID,
				ProductID: product.ID,
				Quantity:  item.Quantity,
				UnitPrice: product.Price,
			}); err != nil {
				return fmt.Errorf("insert order item: %w", err)
			}
			ok, err := tx.DecrementStock(ctx, product.ID, item.Quantity)
			if err != nil {
				return fmt.Errorf("decrement stock: %w", err)
			}
			if !ok {
				return shared.InsufficientStock(product.ID, product.Stock, item.Quantity)
			}
		}
		return nil
	})
	if err != nil {
		var conflict *shared.ConflictError
		if errors.As(err, &conflict) {
			return nil, err
		}
		return nil, &shared.TransactionError{Err: err}
	}

	view, err := s.orders.GetView(ctx, orderID)
	if err != nil {
		// The order is committed; report success even when the
		// follow-up read fails.
		s.logger.Warn("order placed but read-back failed",
			slog.Int64("order_id", orderID), slog.Any("error", err))
		return &PlacementResult{
			OrderID: orderID,
			Detail:  "order placed; fetch it by id for details",
		}, nil
	}
	return &PlacementResult{OrderID: orderID, View: view}, nil
}

func (s *Service) resolveAddress(ctx context.Context, customer *customers.Customer, explicit *int64) (*customers.Address, error) {
	addressID := customer.PrincipalAddressID
	if explicit != nil {
		addressID = explicit
	}
	if addressID == nil {
		return nil, shared.Validationf("customer %d has no delivery address", customer.ID)
	}
	return s.customers.GetAddress(ctx, *addressID, customer.ID)
}

// fetchProducts loads every line's product concurrently, preserving request
// order so lines and products stay index-aligned.
func (s *Service) fetchProducts(ctx context.Context, items []OrderItemInput) ([]*catalog.Product, error) {
	lineProducts := make([]*catalog.Product, len(items))
	g, gctx := errgroup.WithContext(ctx)
	for i, item := range items {
		g.Go(func() error {
			product, err := s.products.Get(gctx, item.ProductID)
			if err != nil {
				return err
			}
			lineProducts[i] = product
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return lineProducts, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*OrderView, error) {
	return s.orders.GetView(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]OrderView, error) {
	return s.orders.ListViews(ctx)
}

// UpdateStatus moves an order to any enumerated status and returns the
// refreshed view.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status OrderStatus) (*OrderView, error) {
	if !ValidStatus(status) {
		return nil, shared.Validationf("unknown order status %q", status)
	}
	if err := s.orders.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return s.orders.GetView(ctx, id)
}

// PurchaseLabel submits the order's frozen shipping selection to the
// carrier, stores the returned label reference and advances the status.
func (s *Service) PurchaseLabel(ctx context.Context, id int64) (*OrderView, error) {
	view, err := s.orders.GetView(ctx, id)
	if err != nil {
		return nil, err
	}
	if view.LabelID != nil {
		return nil, shared.Validationf("order %d already has label %s", id, *view.LabelID)
	}

	declared := make([]shipping.DeclaredItem, 0, len(view.Items))
	for _, item := range view.Items {
		declared = append(declared, shipping.DeclaredItem{
			Name:      item.Product.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	label, err := s.carrier.CreateShipment(ctx, shipping.ShipmentRequest{
		Recipient: shipping.Recipient{
			Name:         view.Customer.Name,
			Phone:        derefString(view.Customer.Phone),
			Email:        view.Customer.Email,
			Street:       view.DeliveryAddress.Street,
			Number:       derefString(view.DeliveryAddress.Number),
			Complement:   derefString(view.DeliveryAddress.Complement),
			Neighborhood: derefString(view.DeliveryAddress.Neighborhood),
			City:         derefString(view.DeliveryAddress.City),
			Region:       derefString(view.DeliveryAddress.Region),
			PostalCode:   view.DeliveryAddress.PostalCode,
		},
		ServiceID: view.Shipping.ServiceID,
		Package: shipping.Package{
			WeightKg: view.Package.WeightKg,
			HeightCm: view.Package.HeightCm,
			WidthCm:  view.Package.WidthCm,
			LengthCm: view.Package.LengthCm,
		},
		InsuranceValue: view.ProductSubtotal,
		Items:          declared,
		OrderID:        id,
	})
	if err != nil {
		return nil, fmt.Errorf("create shipment: %w", err)
	}

	// Store the label and advance the status together; a labelled order
	// left in Pending would never be picked up by the tracking poll.
	err = s.orders.WithTx(ctx, func(ctx context.Context, tx Repository) error {
		if err := tx.SetLabel(ctx, id, label.LabelID, nil); err != nil {
			return err
		}
		return tx.UpdateStatus(ctx, id, StatusLabelGenerated)
	})
	if err != nil {
		var notFound *shared.NotFoundError
		if errors.As(err, &notFound) {
			return nil, err
		}
		return nil, &shared.TransactionError{Err: err}
	}
	s.logger.Info("shipping label purchased",
		slog.Int64("order_id", id), slog.String("label_id", label.LabelID))
	return s.orders.GetView(ctx, id)
}

// carrierStatusMap translates carrier tracking statuses into the local
// fulfillment pipeline. Unlisted carrier statuses leave the order untouched.
var carrierStatusMap = map[string]OrderStatus{
	"paid":        StatusPaid,
	"generated":   StatusLabelGenerated,
	"posted":      StatusInTransit,
	"delivered":   StatusDelivered,
	"canceled":    StatusCancelled,
	"undelivered": StatusReturned,
}

// RefreshTracking polls the carrier for every order still moving through
// the label pipeline and applies reported status changes.
func (s *Service) RefreshTracking(ctx context.Context) error {
	refs, err := s.orders.ListLabelRefs(ctx, labelPipelineStatuses)
	if err != nil {
		return fmt.Errorf("list tracked orders: %w", err)
	}
	if len(refs) == 0 {
		return nil
	}

	labelIDs := make([]string, 0, len(refs))
	for _, ref := range refs {
		labelIDs = append(labelIDs, ref.LabelID)
	}
	states, err := s.carrier.Tracking(ctx, labelIDs)
	if err != nil {
		return fmt.Errorf("poll tracking: %w", err)
	}

	for _, ref := range refs {
		state, ok := states[ref.LabelID]
		if !ok {
			continue
		}
		status, ok := carrierStatusMap[state.Status]
		if !ok {
			continue
		}
		var trackingCode *string
		if state.Tracking != "" {
			trackingCode = &state.Tracking
		}
		updated, err := s.orders.ApplyTracking(ctx, ref.LabelID, status, trackingCode)
		if err != nil {
			s.logger.Error("apply tracking update",
				slog.String("label_id", ref.LabelID), slog.Any("error", err))
			continue
		}
		if updated {
			s.logger.Info("order tracking updated",
				slog.Int64("order_id", ref.OrderID),
				slog.String("label_id", ref.LabelID),
				slog.String("status", string(status)))
		}
	}
	return nil
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
