package orders

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pinkbella/storefront/internal/catalog"
	"github.com/pinkbella/storefront/internal/customers"
	"github.com/pinkbella/storefront/internal/shared"
	"github.com/pinkbella/storefront/internal/shipping"
)

var errNotImplemented = errors.New("not implemented")

type memoryOrders struct {
	orders    map[int64]Order
	items     map[int64][]OrderItem
	stock     map[int64]int
	nextID    int64
	failAfter string // step name that should fail inside the transaction
	failView  bool
}

func newMemoryOrders(stock map[int64]int) *memoryOrders {
	return &memoryOrders{
		orders: make(map[int64]Order),
		items:  make(map[int64][]OrderItem),
		stock:  stock,
	}
}

func (r *memoryOrders) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	// Snapshot so a failed fn leaves no partial writes, mirroring a
	// rolled-back transaction.
	ordersBefore := make(map[int64]Order, len(r.orders))
	for k, v := range r.orders {
		ordersBefore[k] = v
	}
	stockBefore := make(map[int64]int, len(r.stock))
	for k, v := range r.stock {
		stockBefore[k] = v
	}
	itemsBefore := make(map[int64][]OrderItem, len(r.items))
	for k, v := range r.items {
		itemsBefore[k] = v
	}
	if err := fn(ctx, r); err != nil {
		r.orders = ordersBefore
		r.stock = stockBefore
		r.items = itemsBefore
		return err
	}
	return nil
}

func (r *memoryOrders) Insert(ctx context.Context, o Order) (int64, error) {
	if r.failAfter == "insert" {
		return 0, errors.New("insert failed")
	}
	r.nextID++
	o.ID = r.nextID
	r.orders[o.ID] = o
	return o.ID, nil
}

func (r *memoryOrders) InsertItem(ctx context.Context, item OrderItem) (int64, error) {
	if r.failAfter == "item" {
		return 0, errors.New("insert item failed")
	}
	item.ID = int64(len(r.items[item.OrderID]) + 1)
	r.items[item.OrderID] = append(r.items[item.OrderID], item)
	return item.ID, nil
}

func (r *memoryOrders) DecrementStock(ctx context.Context, productID int64, quantity int) (bool, error) {
	if r.stock[productID] < quantity {
		return false, nil
	}
	r.stock[productID] -= quantity
	return true, nil
}

func (r *memoryOrders) GetView(ctx context.Context, id int64) (*OrderView, error) {
	if r.failView {
		return nil, errors.New("read-back failed")
	}
	o, ok := r.orders[id]
	if !ok {
		return nil, shared.NotFound("order", id)
	}
	view := &OrderView{
		ID:              o.ID,
		Total:           o.Total,
		ProductSubtotal: o.ProductSubtotal,
		Status:          o.Status,
		LabelID:         o.LabelID,
		Shipping: ShippingView{
			Price:     o.ShippingPrice,
			Carrier:   o.CarrierName,
			Service:   o.ServiceName,
			ServiceID: o.ServiceID,
		},
	}
	for _, item := range r.items[id] {
		view.Items = append(view.Items, ItemView{
			ID:        item.ID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  float64(item.Quantity) * item.UnitPrice,
			Product:   ProductView{ID: item.ProductID},
		})
	}
	return view, nil
}

func (r *memoryOrders) ListViews(ctx context.Context) ([]OrderView, error) {
	// Newest first, matching the repository query.
	var views []OrderView
	for id := r.nextID; id >= 1; id-- {
		if _, ok := r.orders[id]; !ok {
			continue
		}
		view, err := r.GetView(ctx, id)
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

func (r *memoryOrders) UpdateStatus(ctx context.Context, id int64, status OrderStatus) error {
	if r.failAfter == "status" {
		return errors.New("status update failed")
	}
	o, ok := r.orders[id]
	if !ok {
		return shared.NotFound("order", id)
	}
	o.Status = status
	r.orders[id] = o
	return nil
}

func (r *memoryOrders) SetLabel(ctx context.Context, id int64, labelID string, trackingCode *string) error {
	o, ok := r.orders[id]
	if !ok {
		return shared.NotFound("order", id)
	}
	o.LabelID = &labelID
	if trackingCode != nil {
		o.TrackingCode = trackingCode
	}
	r.orders[id] = o
	return nil
}

func (r *memoryOrders) ListLabelRefs(ctx context.Context, statuses []OrderStatus) ([]LabelRef, error) {
	allowed := make(map[OrderStatus]struct{}, len(statuses))
	for _, s := range statuses {
		allowed[s] = struct{}{}
	}
	var refs []LabelRef
	for id := int64(1); id <= r.nextID; id++ {
		o, ok := r.orders[id]
		if !ok || o.LabelID == nil {
			continue
		}
		if _, ok := allowed[o.Status]; !ok {
			continue
		}
		refs = append(refs, LabelRef{OrderID: id, LabelID: *o.LabelID})
	}
	return refs, nil
}

func (r *memoryOrders) ApplyTracking(ctx context.Context, labelID string, status OrderStatus, trackingCode *string) (bool, error) {
	for id, o := range r.orders {
		if o.LabelID == nil || *o.LabelID != labelID {
			continue
		}
		o.Status = status
		if trackingCode != nil {
			o.TrackingCode = trackingCode
		}
		r.orders[id] = o
		return true, nil
	}
	return false, nil
}

type memoryCustomers struct {
	customers map[int64]customers.Customer
	addresses map[int64]customers.Address
}

func (r *memoryCustomers) Get(ctx context.Context, id int64) (*customers.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, shared.NotFound("customer", id)
	}
	return &c, nil
}

func (r *memoryCustomers) GetAddress(ctx context.Context, id, customerID int64) (*customers.Address, error) {
	a, ok := r.addresses[id]
	if !ok || a.CustomerID != customerID {
		return nil, shared.NotFound("address", id)
	}
	return &a, nil
}

func (r *memoryCustomers) WithTx(ctx context.Context, fn func(context.Context, customers.Repository) error) error {
	return fn(ctx, r)
}

func (r *memoryCustomers) GetWithAddress(ctx context.Context, id int64) (*customers.CustomerWithAddress, error) {
	return nil, errNotImplemented
}

func (r *memoryCustomers) List(ctx context.Context) ([]customers.CustomerWithAddress, error) {
	return nil, errNotImplemented
}

func (r *memoryCustomers) Create(ctx context.Context, c customers.Customer) (int64, error) {
	return 0, errNotImplemented
}

func (r *memoryCustomers) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	return errNotImplemented
}

func (r *memoryCustomers) SetActive(ctx context.Context, id int64, active bool) error {
	return errNotImplemented
}

func (r *memoryCustomers) SetPrincipalAddress(ctx context.Context, customerID, addressID int64) error {
	return errNotImplemented
}

func (r *memoryCustomers) CreateAddress(ctx context.Context, a customers.Address) (int64, error) {
	return 0, errNotImplemented
}

func (r *memoryCustomers) UpdateAddress(ctx context.Context, id, customerID int64, a customers.Address) error {
	return errNotImplemented
}

type memoryProducts struct {
	products map[int64]catalog.Product
}

func (r *memoryProducts) Get(ctx context.Context, id int64) (*catalog.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, shared.NotFound("product", id)
	}
	return &p, nil
}

func (r *memoryProducts) List(ctx context.Context) ([]catalog.Product, error) {
	return nil, errNotImplemented
}

func (r *memoryProducts) Create(ctx context.Context, p catalog.Product) (int64, error) {
	return 0, errNotImplemented
}

func (r *memoryProducts) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	return errNotImplemented
}

func (r *memoryProducts) Delete(ctx context.Context, id int64) error {
	return errNotImplemented
}

type stubQuoter struct {
	options []shipping.Option
	err     error
	calls   int
	lastPkg shipping.Package
}

func (q *stubQuoter) Quote(ctx context.Context, destinationPostalCode string, pkg shipping.Package) ([]shipping.Option, error) {
	q.calls++
	q.lastPkg = pkg
	return q.options, q.err
}

type stubCarrier struct {
	label    *shipping.ShipmentLabel
	labelErr error
	states   map[string]shipping.TrackingState
}

func (c *stubCarrier) CreateShipment(ctx context.Context, req shipping.ShipmentRequest) (*shipping.ShipmentLabel, error) {
	if c.labelErr != nil {
		return nil, c.labelErr
	}
	return c.label, nil
}

func (c *stubCarrier) Tracking(ctx context.Context, labelIDs []string) (map[string]shipping.TrackingState, error) {
	return c.states, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func fixtureEnv(stock map[int64]int) (*Service, *memoryOrders, *stubQuoter, *stubCarrier) {
	addr := int64(10)
	repo := newMemoryOrders(stock)
	custRepo := &memoryCustomers{
		customers: map[int64]customers.Customer{
			1: {ID: 1, Name: "Ana", Email: "ana@test.dev", Active: true, PrincipalAddressID: &addr},
			2: {ID: 2, Name: "Bia", Email: "bia@test.dev", Active: false},
			3: {ID: 3, Name: "Clara", Email: "clara@test.dev", Active: true},
		},
		addresses: map[int64]customers.Address{
			10: {ID: 10, CustomerID: 1, PostalCode: "20040002", Street: "Rua A"},
			11: {ID: 11, CustomerID: 1, PostalCode: "30110010", Street: "Rua B"},
		},
	}
	prodRepo := &memoryProducts{
		products: map[int64]catalog.Product{
			100: {ID: 100, Name: "Batom Matte", Price: 29.9, Stock: stock[100]},
			200: {ID: 200, Name: "Base Liquida", Price: 59.9, Stock: stock[200]},
		},
	}
	quoter := &stubQuoter{options: []shipping.Option{
		{ServiceID: 2, Carrier: "Correios", Service: "SEDEX", Price: 32.1, EstimatedDays: 3},
		{ServiceID: 1, Carrier: "Correios", Service: "PAC", Price: 18.5, EstimatedDays: 8},
	}}
	carrier := &stubCarrier{label: &shipping.ShipmentLabel{LabelID: "lbl-1", Protocol: "P-1"}}
	svc := NewService(testLogger(), repo, custRepo, prodRepo, quoter, carrier, nil)
	return svc, repo, quoter, carrier
}

func TestPlaceOrderPicksCheapestOptionAndDecrementsStock(t *testing.T) {
	svc, repo, quoter, _ := fixtureEnv(map[int64]int{100: 5, 200: 3})

	result, err := svc.PlaceOrder(context.Background(), PlaceOrderRequest{
		CustomerID: 1,
		Items: []OrderItemInput{
			{ProductID: 100, Quantity: 2},
			{ProductID: 200, Quantity: 1},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, result.View)

	order := repo.orders[result.OrderID]
	require.Equal(t, StatusPending, order.Status)
	require.Equal(t, "PAC", order.ServiceName)
	require.InDelta(t, 18.5, order.ShippingPrice, 1e-9)

	subtotal := 2*29.9 + 59.9
	require.InDelta(t, subtotal, order.ProductSubtotal, 1e-9)
	require.InDelta(t, subtotal+18.5, order.Total, 1e-9)

	require.Equal(t, 3, repo.stock[100])
	require.Equal(t, 2, repo.stock[200])
	require.Len(t, repo.items[result.OrderID], 2)
	require.InDelta(t, 29.9, repo.items[result.OrderID][0].UnitPrice, 1e-9)

	// Three units total: 500g + 2*250g, 8cm + 2*2cm.
	require.InDelta(t, 1.0, quoter.lastPkg.WeightKg, 1e-9)
	require.InDelta(t, 12.0, quoter.lastPkg.HeightCm, 1e-9)
}

func TestPlaceOrderUnknownCustomer(t *testing.T) {
	svc, _, _, _ := fixtureEnv(map[int64]int{100: 5})

	_, err := svc.PlaceOrder(context.Background(), PlaceOrderRequest{
		CustomerID: 99,
		Items:      []OrderItemInput{{ProductID: 100, Quantity: 1}},
	})
	var notFound *shared.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestPlaceOrderInactiveCustomer(t *testing.T) {
	svc, _, _, _ := fixtureEnv(map[int64]int{100: 5})

	_, err := svc.PlaceOrder(context.Background(), PlaceOrderRequest{
		CustomerID: 2,
		Items:      []OrderItemInput{{ProductID: 100, Quantity: 1}},
	})
	var validation *shared.ValidationError
	require.ErrorAs(t, err, &validation)
}

func TestPlaceOrderCustomerWithoutAddress(t *testing.T) {
	svc, _, _, _ := fixtureEnv(map[int64]int{100: 5})

	_, err := svc.PlaceOrder(context.Background(), PlaceOrderRequest{
		CustomerID: 3,
		Items:      []OrderItemInput{{ProductID: 100, Quantity: 1}},
	})
	var validation *shared.ValidationError
	require.ErrorAs(t, err, &validation)
}

func TestPlaceOrderExplicitAddressMustBelongToCustomer(t *testing.T) {
	svc, _, _, _ := fixtureEnv(map[int64]int{100: 5})

	foreign := int64(10) // belongs to customer 1
	_, err := svc.PlaceOrder(context.Background(), PlaceOrderRequest{
		CustomerID:        3,
		DeliveryAddressID: &foreign,
		Items:             []OrderItemInput{{ProductID: 100, Quantity: 1}},
	})
	var notFound *shared.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestPlaceOrderInsufficientStockFailsFast(t *testing.T) {
	svc, repo, quoter, _ := fixtureEnv(map[int64]int{100: 1})

	_, err := svc.PlaceOrder(context.Background(), PlaceOrderRequest{
		CustomerID: 1,
		Items:      []OrderItemInput{{ProductID: 100, Quantity: 2}},
	})
	var conflict *shared.ConflictError
	require.ErrorAs(t, err, &conflict)
	require.Equal(t, int64(100), conflict.ProductID)
	require.Equal(t, 0, quoter.calls)
	require.Empty(t, repo.orders)
}

func TestPlaceOrderQuoteFailureLeavesNoSideEffects(t *testing.T) {
	svc, repo, quoter, _ := fixtureEnv(map[int64]int{100: 5})
	quoter.options = nil
	quoter.err = shared.Dependency("carrier", "request failed", errors.New("boom"))

	_, err := svc.PlaceOrder(context.Background(), PlaceOrderRequest{
		CustomerID: 1,
		Items:      []OrderItemInput{{ProductID: 100, Quantity: 1}},
	})
	var dep *shared.DependencyError
	require.ErrorAs(t, err, &dep)
	require.Empty(t, repo.orders)
	require.Equal(t, 5, repo.stock[100])
}

func TestPlaceOrderNoShippingOptions(t *testing.T) {
	svc, _, quoter, _ := fixtureEnv(map[int64]int{100: 5})
	quoter.options = nil

	_, err := svc.PlaceOrder(context.Background(), PlaceOrderRequest{
		CustomerID: 1,
		Items:      []OrderItemInput{{ProductID: 100, Quantity: 1}},
	})
	var dep *shared.DependencyError
	require.ErrorAs(t, err, &dep)
	require.Equal(t, "carrier", dep.Service)
}

func TestPlaceOrderLostDecrementRaceRollsBack(t *testing.T) {
	// The transactional guard sees less stock than the earlier read.
	svc, repo, _, _ := fixtureEnv(map[int64]int{100: 5})
	repo.stock[100] = 1
	prodRepo := &memoryProducts{products: map[int64]catalog.Product{
		100: {ID: 100, Name: "Batom Matte", Price: 29.9, Stock: 5},
	}}
	svc.products = prodRepo

	_, err := svc.PlaceOrder(context.Background(), PlaceOrderRequest{
		CustomerID: 1,
		Items:      []OrderItemInput{{ProductID: 100, Quantity: 3}},
	})
	var conflict *shared.ConflictError
	require.ErrorAs(t, err, &conflict)
	require.Empty(t, repo.orders)
	require.Equal(t, 1, repo.stock[100])
}

func TestPlaceOrderPersistenceFailureWrapsTransactionError(t *testing.T) {
	svc, repo, _, _ := fixtureEnv(map[int64]int{100: 5})
	repo.failAfter = "item"

	_, err := svc.PlaceOrder(context.Background(), PlaceOrderRequest{
		CustomerID: 1,
		Items:      []OrderItemInput{{ProductID: 100, Quantity: 1}},
	})
	var txErr *shared.TransactionError
	require.ErrorAs(t, err, &txErr)
	require.Empty(t, repo.orders)
	require.Equal(t, 5, repo.stock[100])
}

func TestPlaceOrderMultiLinePartialStockAbortsWhole(t *testing.T) {
	svc, repo, _, _ := fixtureEnv(map[int64]int{100: 5, 200: 0})
	prodRepo := &memoryProducts{products: map[int64]catalog.Product{
		100: {ID: 100, Name: "Batom Matte", Price: 29.9, Stock: 5},
		200: {ID: 200, Name: "Base Liquida", Price: 59.9, Stock: 1},
	}}
	svc.products = prodRepo

	_, err := svc.PlaceOrder(context.Background(), PlaceOrderRequest{
		CustomerID: 1,
		Items: []OrderItemInput{
			{ProductID: 100, Quantity: 1},
			{ProductID: 200, Quantity: 1},
		},
	})
	var conflict *shared.ConflictError
	require.ErrorAs(t, err, &conflict)
	require.Empty(t, repo.orders)
	require.Equal(t, 5, repo.stock[100])
}

func TestPlaceOrderReadBackFailureStillReportsSuccess(t *testing.T) {
	svc, repo, _, _ := fixtureEnv(map[int64]int{100: 5})
	repo.failView = true

	result, err := svc.PlaceOrder(context.Background(), PlaceOrderRequest{
		CustomerID: 1,
		Items:      []OrderItemInput{{ProductID: 100, Quantity: 1}},
	})
	require.NoError(t, err)
	require.Nil(t, result.View)
	require.NotZero(t, result.OrderID)
	require.NotEmpty(t, result.Detail)
	require.Equal(t, 4, repo.stock[100])
}

func TestListReturnsOrdersNewestFirst(t *testing.T) {
	svc, _, _, _ := fixtureEnv(map[int64]int{100: 9})

	var placed []int64
	for i := 0; i < 3; i++ {
		result, err := svc.PlaceOrder(context.Background(), PlaceOrderRequest{
			CustomerID: 1,
			Items:      []OrderItemInput{{ProductID: 100, Quantity: 1}},
		})
		require.NoError(t, err)
		placed = append(placed, result.OrderID)
	}

	views, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 3)

	var got []int64
	for _, v := range views {
		got = append(got, v.ID)
	}
	require.Equal(t, []int64{placed[2], placed[1], placed[0]}, got)
}

func TestGetReturnsSameViewOnRepeatedReads(t *testing.T) {
	svc, _, _, _ := fixtureEnv(map[int64]int{100: 5})
	result, err := svc.PlaceOrder(context.Background(), PlaceOrderRequest{
		CustomerID: 1,
		Items:      []OrderItemInput{{ProductID: 100, Quantity: 2}},
	})
	require.NoError(t, err)

	first, err := svc.Get(context.Background(), result.OrderID)
	require.NoError(t, err)
	second, err := svc.Get(context.Background(), result.OrderID)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	svc, _, _, _ := fixtureEnv(map[int64]int{100: 5})

	_, err := svc.UpdateStatus(context.Background(), 1, OrderStatus("Shipped Maybe"))
	var validation *shared.ValidationError
	require.ErrorAs(t, err, &validation)
}

func TestUpdateStatusMovesOrder(t *testing.T) {
	svc, repo, _, _ := fixtureEnv(map[int64]int{100: 5})
	result, err := svc.PlaceOrder(context.Background(), PlaceOrderRequest{
		CustomerID: 1,
		Items:      []OrderItemInput{{ProductID: 100, Quantity: 1}},
	})
	require.NoError(t, err)

	view, err := svc.UpdateStatus(context.Background(), result.OrderID, StatusPaid)
	require.NoError(t, err)
	require.Equal(t, StatusPaid, view.Status)
	require.Equal(t, StatusPaid, repo.orders[result.OrderID].Status)
}

func TestPurchaseLabelStoresReferenceAndAdvancesStatus(t *testing.T) {
	svc, repo, _, _ := fixtureEnv(map[int64]int{100: 5})
	result, err := svc.PlaceOrder(context.Background(), PlaceOrderRequest{
		CustomerID: 1,
		Items:      []OrderItemInput{{ProductID: 100, Quantity: 1}},
	})
	require.NoError(t, err)

	view, err := svc.PurchaseLabel(context.Background(), result.OrderID)
	require.NoError(t, err)
	require.NotNil(t, view.LabelID)
	require.Equal(t, "lbl-1", *view.LabelID)

	order := repo.orders[result.OrderID]
	require.Equal(t, StatusLabelGenerated, order.Status)
}

func TestPurchaseLabelTwiceRejected(t *testing.T) {
	svc, _, _, _ := fixtureEnv(map[int64]int{100: 5})
	result, err := svc.PlaceOrder(context.Background(), PlaceOrderRequest{
		CustomerID: 1,
		Items:      []OrderItemInput{{ProductID: 100, Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = svc.PurchaseLabel(context.Background(), result.OrderID)
	require.NoError(t, err)
	_, err = svc.PurchaseLabel(context.Background(), result.OrderID)
	var validation *shared.ValidationError
	require.ErrorAs(t, err, &validation)
}

func TestPurchaseLabelRollsBackWhenStatusAdvanceFails(t *testing.T) {
	svc, repo, _, _ := fixtureEnv(map[int64]int{100: 5})
	result, err := svc.PlaceOrder(context.Background(), PlaceOrderRequest{
		CustomerID: 1,
		Items:      []OrderItemInput{{ProductID: 100, Quantity: 1}},
	})
	require.NoError(t, err)

	repo.failAfter = "status"
	_, err = svc.PurchaseLabel(context.Background(), result.OrderID)
	var txErr *shared.TransactionError
	require.ErrorAs(t, err, &txErr)

	// Neither half of the label write may survive on its own.
	order := repo.orders[result.OrderID]
	require.Nil(t, order.LabelID)
	require.Equal(t, StatusPending, order.Status)
}

func TestRefreshTrackingAppliesCarrierStatuses(t *testing.T) {
	svc, repo, _, carrier := fixtureEnv(map[int64]int{100: 5})
	result, err := svc.PlaceOrder(context.Background(), PlaceOrderRequest{
		CustomerID: 1,
		Items:      []OrderItemInput{{ProductID: 100, Quantity: 1}},
	})
	require.NoError(t, err)
	_, err = svc.PurchaseLabel(context.Background(), result.OrderID)
	require.NoError(t, err)

	carrier.states = map[string]shipping.TrackingState{
		"lbl-1": {Status: "posted", Tracking: "BR123"},
	}
	require.NoError(t, svc.RefreshTracking(context.Background()))

	order := repo.orders[result.OrderID]
	require.Equal(t, StatusInTransit, order.Status)
	require.NotNil(t, order.TrackingCode)
	require.Equal(t, "BR123", *order.TrackingCode)
}

func TestRefreshTrackingIgnoresUnknownCarrierStatus(t *testing.T) {
	svc, repo, _, carrier := fixtureEnv(map[int64]int{100: 5})
	result, err := svc.PlaceOrder(context.Background(), PlaceOrderRequest{
		CustomerID: 1,
		Items:      []OrderItemInput{{ProductID: 100, Quantity: 1}},
	})
	require.NoError(t, err)
	_, err = svc.PurchaseLabel(context.Background(), result.OrderID)
	require.NoError(t, err)

	carrier.states = map[string]shipping.TrackingState{
		"lbl-1": {Status: "weird-new-state"},
	}
	require.NoError(t, svc.RefreshTracking(context.Background()))
	require.Equal(t, StatusLabelGenerated, repo.orders[result.OrderID].Status)
}
