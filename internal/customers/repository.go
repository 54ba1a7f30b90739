package customers

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pinkbella/storefront/internal/platform/db"
	"github.com/pinkbella/storefront/internal/shared"
)

type Repository interface {
	WithTx(ctx context.Context, fn func(context.Context, Repository) error) error
	Get(ctx context.Context, id int64) (*Customer, error)
	GetWithAddress(ctx context.Context, id int64) (*CustomerWithAddress, error)
	List(ctx context.Context) ([]CustomerWithAddress, error)
	Create(ctx context.Context, c Customer) (int64, error)
	Update(ctx context.Context, id int64, updates map[string]interface{}) error
	SetActive(ctx context.Context, id int64, active bool) error
	SetPrincipalAddress(ctx context.Context, customerID, addressID int64) error
	GetAddress(ctx context.Context, id, customerID int64) (*Address, error)
	CreateAddress(ctx context.Context, a Address) (int64, error)
	UpdateAddress(ctx context.Context, id, customerID int64, a Address) error
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

func (r *repository) Get(ctx context.Context, id int64) (*Customer, error) {
	var c Customer
	err := r.db.QueryRow(ctx, `
		SELECT id, name, email, phone, tax_id, created_at, principal_address_id, active
		FROM customers WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.TaxID, &c.CreatedAt, &c.PrincipalAddressID, &c.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.NotFound("customer", id)
		}
		return nil, err
	}
	return &c, nil
}

const customerWithAddressQuery = `
	SELECT c.id, c.name, c.email, c.phone, c.tax_id, c.created_at, c.principal_address_id, c.active,
	       a.id, a.customer_id, a.postal_code, a.street, a.number, a.complement,
	       a.neighborhood, a.city, a.region, a.reference, a.kind, a.principal
	FROM customers c
	LEFT JOIN addresses a ON c.principal_address_id = a.id`

func (r *repository) GetWithAddress(ctx context.Context, id int64) (*CustomerWithAddress, error) {
	row := r.db.QueryRow(ctx, customerWithAddressQuery+` WHERE c.id = $1`, id)
	c, err := scanCustomerWithAddress(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.NotFound("customer", id)
		}
		return nil, err
	}
	return c, nil
}

func (r *repository) List(ctx context.Context) ([]CustomerWithAddress, error) {
	rows, err := r.db.Query(ctx, customerWithAddressQuery+` ORDER BY c.name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CustomerWithAddress
	for rows.Next() {
		c, err := scanCustomerWithAddress(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (r *repository) Create(ctx context.Context, c Customer) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO customers (name, email, phone, tax_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		c.Name, c.Email, c.Phone, c.TaxID,
	).Scan(&id)
	if err != nil {
		return 0, shared.ConstraintError(err)
	}
	return id, nil
}

func (r *repository) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}

	query := "UPDATE customers SET id = id"
	var args []interface{}
	argPos := 1

	for _, col := range []string{"name", "email", "phone", "tax_id"} {
		if v, ok := updates[col]; ok {
			query += fmt.Sprintf(", %s = $%d", col, argPos)
			args = append(args, v)
			argPos++
		}
	}

	query += fmt.Sprintf(" WHERE id = $%d", argPos)
	args = append(args, id)

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return shared.ConstraintError(err)
	}
	if tag.RowsAffected() == 0 {
		return shared.NotFound("customer", id)
	}
	return nil
}

func (r *repository) SetActive(ctx context.Context, id int64, active bool) error {
	tag, err := r.db.Exec(ctx, `UPDATE customers SET active = $1 WHERE id = $2`, active, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.NotFound("customer", id)
	}
	return nil
}

func (r *repository) SetPrincipalAddress(ctx context.Context, customerID, addressID int64) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE customers SET principal_address_id = $1 WHERE id = $2`, addressID, customerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.NotFound("customer", customerID)
	}
	return nil
}

func (r *repository) GetAddress(ctx context.Context, id, customerID int64) (*Address, error) {
	var a Address
	err := r.db.QueryRow(ctx, `
		SELECT id, customer_id, postal_code, street, number, complement,
		       neighborhood, city, region, reference, kind, principal
		FROM addresses WHERE id = $1 AND customer_id = $2`, id, customerID,
	).Scan(&a.ID, &a.CustomerID, &a.PostalCode, &a.Street, &a.Number, &a.Complement,
		&a.Neighborhood, &a.City, &a.Region, &a.Reference, &a.Kind, &a.Principal)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.NotFound("address", id)
		}
		return nil, err
	}
	return &a, nil
}

func (r *repository) CreateAddress(ctx context.Context, a Address) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO addresses (customer_id, postal_code, street, number, complement,
		                       neighborhood, city, region, reference, kind, principal)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`,
		a.CustomerID, a.PostalCode, a.Street, a.Number, a.Complement,
		a.Neighborhood, a.City, a.Region, a.Reference, a.Kind, a.Principal,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *repository) UpdateAddress(ctx context.Context, id, customerID int64, a Address) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE addresses SET postal_code = $1, street = $2, number = $3, complement = $4,
		       neighborhood = $5, city = $6, region = $7, reference = $8, kind = $9, principal = $10
		WHERE id = $11 AND customer_id = $12`,
		a.PostalCode, a.Street, a.Number, a.Complement,
		a.Neighborhood, a.City, a.Region, a.Reference, a.Kind, a.Principal,
		id, customerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.NotFound("address", id)
	}
	return nil
}

func scanCustomerWithAddress(row pgx.Row) (*CustomerWithAddress, error) {
	var c CustomerWithAddress
	var (
		addrID         *int64
		addrCustomerID *int64
		postalCode     *string
		street         *string
		number         *string
		complement     *string
		neighborhood   *string
		city           *string
		region         *string
		reference      *string
		kind           *string
		principal      *bool
	)
	err := row.Scan(
		&c.ID, &c.Name, &c.Email, &c.Phone, &c.TaxID, &c.CreatedAt, &c.PrincipalAddressID, &c.Active,
		&addrID, &addrCustomerID, &postalCode, &street, &number, &complement,
		&neighborhood, &city, &region, &reference, &kind, &principal,
	)
	if err != nil {
		return nil, err
	}
	if addrID != nil {
		c.Address = &Address{
			ID:           *addrID,
			CustomerID:   *addrCustomerID,
			PostalCode:   *postalCode,
			Street:       *street,
			Number:       number,
			Complement:   complement,
			Neighborhood: neighborhood,
			City:         city,
			Region:       region,
			Reference:    reference,
			Kind:         derefString(kind, "residential"),
			Principal:    principal != nil && *principal,
		}
	}
	return &c, nil
}

func derefString(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}
