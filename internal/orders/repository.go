package orders

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pinkbella/storefront/internal/platform/db"
	"github.com/pinkbella/storefront/internal/shared"
)

// LabelRef pairs an order with its carrier label reference.
type LabelRef struct {
	OrderID int64
	LabelID string
}

type Repository interface {
	WithTx(ctx context.Context, fn func(context.Context, Repository) error) error
	Insert(ctx context.Context, o Order) (int64, error)
	InsertItem(ctx context.Context, item OrderItem) (int64, error)
	// DecrementStock conditionally reduces product stock. It reports false
	// when no row matched, i.e. the guarded update lost a race with a
	// concurrent decrement.
	DecrementStock(ctx context.Context, productID int64, quantity int) (bool, error)
	GetView(ctx context.Context, id int64) (*OrderView, error)
	ListViews(ctx context.Context) ([]OrderView, error)
	UpdateStatus(ctx context.Context, id int64, status OrderStatus) error
	SetLabel(ctx context.Context, id int64, labelID string, trackingCode *string) error
	ListLabelRefs(ctx context.Context, statuses []OrderStatus) ([]LabelRef, error)
	// ApplyTracking records the carrier-reported status and, when present,
	// the tracking code for the order holding labelID.
	ApplyTracking(ctx context.Context, labelID string, status OrderStatus, trackingCode *string) (bool, error)
}

type dbtx interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

type repository struct {
	db   dbtx
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool, pool: pool}
}

func (r *repository) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &repository{db: tx, pool: r.pool})
	})
}

func (r *repository) Insert(ctx context.Context, o Order) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO orders (
			customer_id, delivery_address_id, total, product_subtotal, status,
			shipping_price, carrier_name, service_name, service_id, estimated_days,
			package_weight_kg, package_height_cm, package_width_cm, package_length_cm
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id`,
		o.CustomerID, o.DeliveryAddressID, o.Total, o.ProductSubtotal, o.Status,
		o.ShippingPrice, o.CarrierName, o.ServiceName, o.ServiceID, o.EstimatedDays,
		o.PackageWeightKg, o.PackageHeightCm, o.PackageWidthCm, o.PackageLengthCm,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *repository) InsertItem(ctx context.Context, item OrderItem) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO order_items (order_id, product_id, quantity, unit_price)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		item.OrderID, item.ProductID, item.Quantity, item.UnitPrice,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *repository) DecrementStock(ctx context.Context, productID int64, quantity int) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE products SET stock = stock - $1, updated_at = NOW() WHERE id = $2 AND stock >= $1`,
		quantity, productID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

const orderViewQuery = `
	SELECT o.id, o.created_at, o.total, o.product_subtotal, o.status, o.tracking_code, o.label_id,
	       o.package_weight_kg, o.package_height_cm, o.package_width_cm, o.package_length_cm,
	       o.shipping_price, o.carrier_name, o.service_name, o.service_id, o.estimated_days,
	       c.id, c.name, c.email, c.phone,
	       a.id, a.postal_code, a.street, a.number, a.complement,
	       a.neighborhood, a.city, a.region, a.reference
	FROM orders o
	JOIN customers c ON o.customer_id = c.id
	JOIN addresses a ON o.delivery_address_id = a.id`

func (r *repository) GetView(ctx context.Context, id int64) (*OrderView, error) {
	row := r.db.QueryRow(ctx, orderViewQuery+` WHERE o.id = $1`, id)
	view, err := scanOrderView(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.NotFound("order", id)
		}
		return nil, err
	}
	if err := r.loadItems(ctx, view); err != nil {
		return nil, err
	}
	return view, nil
}

func (r *repository) ListViews(ctx context.Context) ([]OrderView, error) {
	rows, err := r.db.Query(ctx, orderViewQuery+` ORDER BY o.created_at DESC, o.id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var views []OrderView
	for rows.Next() {
		view, err := scanOrderView(rows)
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range views {
		if err := r.loadItems(ctx, &views[i]); err != nil {
			return nil, err
		}
	}
	return views, nil
}

func (r *repository) loadItems(ctx context.Context, view *OrderView) error {
	rows, err := r.db.Query(ctx, `
		SELECT i.id, i.quantity, i.unit_price,
		       p.id, p.name, p.price, p.image
		FROM order_items i
		JOIN products p ON i.product_id = p.id
		WHERE i.order_id = $1
		ORDER BY i.id`, view.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	view.Items = []ItemView{}
	for rows.Next() {
		var item ItemView
		if err := rows.Scan(
			&item.ID, &item.Quantity, &item.UnitPrice,
			&item.Product.ID, &item.Product.Name, &item.Product.CatalogPrice, &item.Product.Image,
		); err != nil {
			return err
		}
		item.Subtotal = float64(item.Quantity) * item.UnitPrice
		view.Items = append(view.Items, item)
	}
	return rows.Err()
}

func (r *repository) UpdateStatus(ctx context.Context, id int64, status OrderStatus) error {
	tag, err := r.db.Exec(ctx, `UPDATE orders SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.NotFound("order", id)
	}
	return nil
}

func (r *repository) SetLabel(ctx context.Context, id int64, labelID string, trackingCode *string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE orders SET label_id = $1, tracking_code = COALESCE($2, tracking_code) WHERE id = $3`,
		labelID, trackingCode, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.NotFound("order", id)
	}
	return nil
}

func (r *repository) ListLabelRefs(ctx context.Context, statuses []OrderStatus) ([]LabelRef, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, label_id FROM orders WHERE status = ANY($1) AND label_id IS NOT NULL`,
		statusStrings(statuses))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var refs []LabelRef
	for rows.Next() {
		var ref LabelRef
		if err := rows.Scan(&ref.OrderID, &ref.LabelID); err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}

func (r *repository) ApplyTracking(ctx context.Context, labelID string, status OrderStatus, trackingCode *string) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE orders SET status = $1, tracking_code = COALESCE($2, tracking_code) WHERE label_id = $3`,
		status, trackingCode, labelID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func statusStrings(statuses []OrderStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

func scanOrderView(row pgx.Row) (*OrderView, error) {
	var v OrderView
	err := row.Scan(
		&v.ID, &v.CreatedAt, &v.Total, &v.ProductSubtotal, &v.Status, &v.TrackingCode, &v.LabelID,
		&v.Package.WeightKg, &v.Package.HeightCm, &v.Package.WidthCm, &v.Package.LengthCm,
		&v.Shipping.Price, &v.Shipping.Carrier, &v.Shipping.Service, &v.Shipping.ServiceID, &v.Shipping.EstimatedDays,
		&v.Customer.ID, &v.Customer.Name, &v.Customer.Email, &v.Customer.Phone,
		&v.DeliveryAddress.ID, &v.DeliveryAddress.PostalCode, &v.DeliveryAddress.Street,
		&v.DeliveryAddress.Number, &v.DeliveryAddress.Complement, &v.DeliveryAddress.Neighborhood,
		&v.DeliveryAddress.City, &v.DeliveryAddress.Region, &v.DeliveryAddress.Reference,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
