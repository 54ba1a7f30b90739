package customers

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pinkbella/storefront/internal/postal"
	"github.com/pinkbella/storefront/internal/shared"
)

type memoryRepo struct {
	customers    map[int64]Customer
	addresses    map[int64]Address
	nextCustomer int64
	nextAddress  int64
	emailIndex   map[string]int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		customers:  make(map[int64]Customer),
		addresses:  make(map[int64]Address),
		emailIndex: make(map[string]int64),
	}
}

func (r *memoryRepo) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	return fn(ctx, r)
}

func (r *memoryRepo) Get(ctx context.Context, id int64) (*Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, shared.NotFound("customer", id)
	}
	return &c, nil
}

func (r *memoryRepo) GetWithAddress(ctx context.Context, id int64) (*CustomerWithAddress, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, shared.NotFound("customer", id)
	}
	out := &CustomerWithAddress{Customer: c}
	if c.PrincipalAddressID != nil {
		if a, ok := r.addresses[*c.PrincipalAddressID]; ok {
			out.Address = &a
		}
	}
	return out, nil
}

func (r *memoryRepo) List(ctx context.Context) ([]CustomerWithAddress, error) {
	// Name-sorted, matching the repository query.
	var result []CustomerWithAddress
	for id := int64(1); id <= r.nextCustomer; id++ {
		if _, ok := r.customers[id]; !ok {
			continue
		}
		c, err := r.GetWithAddress(ctx, id)
		if err != nil {
			return nil, err
		}
		result = append(result, *c)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result, nil
}

func (r *memoryRepo) Create(ctx context.Context, c Customer) (int64, error) {
	if _, exists := r.emailIndex[c.Email]; exists {
		return 0, &shared.ConflictError{Reason: "duplicate email", Field: "email"}
	}
	r.nextCustomer++
	c.ID = r.nextCustomer
	c.Active = true
	r.customers[c.ID] = c
	r.emailIndex[c.Email] = c.ID
	return c.ID, nil
}

func (r *memoryRepo) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	c, ok := r.customers[id]
	if !ok {
		return shared.NotFound("customer", id)
	}
	if name, ok := updates["name"].(string); ok {
		c.Name = name
	}
	if email, ok := updates["email"].(string); ok {
		c.Email = email
	}
	if phone, ok := updates["phone"].(string); ok {
		c.Phone = &phone
	}
	r.customers[id] = c
	return nil
}

func (r *memoryRepo) SetActive(ctx context.Context, id int64, active bool) error {
	c, ok := r.customers[id]
	if !ok {
		return shared.NotFound("customer", id)
	}
	c.Active = active
	r.customers[id] = c
	return nil
}

func (r *memoryRepo) SetPrincipalAddress(ctx context.Context, customerID, addressID int64) error {
	c, ok := r.customers[customerID]
	if !ok {
		return shared.NotFound("customer", customerID)
	}
	c.PrincipalAddressID = &addressID
	r.customers[customerID] = c
	return nil
}

func (r *memoryRepo) GetAddress(ctx context.Context, id, customerID int64) (*Address, error) {
	a, ok := r.addresses[id]
	if !ok || a.CustomerID != customerID {
		return nil, shared.NotFound("address", id)
	}
	return &a, nil
}

func (r *memoryRepo) CreateAddress(ctx context.Context, a Address) (int64, error) {
	r.nextAddress++
	a.ID = r.nextAddress
	r.addresses[a.ID] = a
	return a.ID, nil
}

func (r *memoryRepo) UpdateAddress(ctx context.Context, id, customerID int64, a Address) error {
	existing, ok := r.addresses[id]
	if !ok || existing.CustomerID != customerID {
		return shared.NotFound("address", id)
	}
	a.ID = id
	a.CustomerID = customerID
	r.addresses[id] = a
	return nil
}

type stubResolver struct {
	addr *postal.Address
	err  error
}

func (s *stubResolver) Resolve(ctx context.Context, code string) (*postal.Address, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.addr, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestRegisterCompletesAddressFromLookup(t *testing.T) {
	repo := newMemoryRepo()
	resolver := &stubResolver{addr: &postal.Address{
		PostalCode:   "01001-000",
		Street:       "Praça da Sé",
		Neighborhood: "Sé",
		City:         "São Paulo",
		Region:       "SP",
	}}
	svc := NewService(testLogger(), repo, resolver)

	got, err := svc.Register(context.Background(), RegisterCustomerRequest{
		Name:    "Ana",
		Email:   "ana@test.dev",
		Address: AddressInput{PostalCode: "01001-000", Street: "Manual Street"},
	})
	require.NoError(t, err)
	require.NotNil(t, got.Address)
	// Resolved fields win over manual input.
	require.Equal(t, "Praça da Sé", got.Address.Street)
	require.Equal(t, "São Paulo", *got.Address.City)
	require.True(t, got.Address.Principal)
	require.Equal(t, "residential", got.Address.Kind)
	require.NotNil(t, got.PrincipalAddressID)
	require.True(t, got.Active)
}

func TestRegisterFallsBackToManualAddressWhenLookupFails(t *testing.T) {
	repo := newMemoryRepo()
	resolver := &stubResolver{err: errors.New("lookup down")}
	svc := NewService(testLogger(), repo, resolver)

	got, err := svc.Register(context.Background(), RegisterCustomerRequest{
		Name:  "Ana",
		Email: "ana@test.dev",
		Address: AddressInput{
			PostalCode: "01001-000",
			Street:     "Manual Street",
		},
	})
	require.NoError(t, err)
	require.Equal(t, "Manual Street", got.Address.Street)
}

func TestRegisterRequiresStreetWhenUnresolvable(t *testing.T) {
	repo := newMemoryRepo()
	resolver := &stubResolver{err: postal.ErrUnknownPostalCode}
	svc := NewService(testLogger(), repo, resolver)

	_, err := svc.Register(context.Background(), RegisterCustomerRequest{
		Name:    "Ana",
		Email:   "ana@test.dev",
		Address: AddressInput{PostalCode: "99999-999"},
	})
	var validation *shared.ValidationError
	require.ErrorAs(t, err, &validation)
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	repo := newMemoryRepo()
	resolver := &stubResolver{err: errors.New("lookup down")}
	svc := NewService(testLogger(), repo, resolver)

	req := RegisterCustomerRequest{
		Name:    "Ana",
		Email:   "ana@test.dev",
		Address: AddressInput{PostalCode: "01001-000", Street: "Rua A"},
	}
	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), req)
	var conflict *shared.ConflictError
	require.ErrorAs(t, err, &conflict)
	require.Equal(t, "email", conflict.Field)
}

func TestUpdateRequiresAtLeastOneField(t *testing.T) {
	svc := NewService(testLogger(), newMemoryRepo(), &stubResolver{})

	_, err := svc.Update(context.Background(), 1, UpdateCustomerRequest{})
	var validation *shared.ValidationError
	require.ErrorAs(t, err, &validation)
}

func TestUpdateReplacesPrincipalAddress(t *testing.T) {
	repo := newMemoryRepo()
	resolver := &stubResolver{err: errors.New("lookup down")}
	svc := NewService(testLogger(), repo, resolver)

	got, err := svc.Register(context.Background(), RegisterCustomerRequest{
		Name:    "Ana",
		Email:   "ana@test.dev",
		Address: AddressInput{PostalCode: "01001-000", Street: "Rua A"},
	})
	require.NoError(t, err)
	originalAddressID := *got.PrincipalAddressID

	updated, err := svc.Update(context.Background(), got.ID, UpdateCustomerRequest{
		Address: &AddressInput{PostalCode: "20040-002", Street: "Rua B"},
	})
	require.NoError(t, err)
	// Existing principal address is updated in place, not replaced.
	require.Equal(t, originalAddressID, *updated.PrincipalAddressID)
	require.Equal(t, "Rua B", updated.Address.Street)
	require.Equal(t, "20040-002", updated.Address.PostalCode)
}

func TestUpdateUnknownCustomer(t *testing.T) {
	svc := NewService(testLogger(), newMemoryRepo(), &stubResolver{err: errors.New("down")})

	name := "Novo Nome"
	_, err := svc.Update(context.Background(), 42, UpdateCustomerRequest{Name: &name})
	var notFound *shared.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestListReturnsCustomersSortedByName(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(testLogger(), repo, &stubResolver{err: errors.New("down")})

	for _, name := range []string{"Zilda", "Ana", "Marta"} {
		_, err := svc.Register(context.Background(), RegisterCustomerRequest{
			Name:    name,
			Email:   name + "@test.dev",
			Address: AddressInput{PostalCode: "01001-000", Street: "Rua A"},
		})
		require.NoError(t, err)
	}

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 3)

	var names []string
	for _, c := range list {
		names = append(names, c.Name)
	}
	require.Equal(t, []string{"Ana", "Marta", "Zilda"}, names)
}

func TestToggleActiveFlips(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(testLogger(), repo, &stubResolver{err: errors.New("down")})

	got, err := svc.Register(context.Background(), RegisterCustomerRequest{
		Name:    "Ana",
		Email:   "ana@test.dev",
		Address: AddressInput{PostalCode: "01001-000", Street: "Rua A"},
	})
	require.NoError(t, err)

	active, err := svc.ToggleActive(context.Background(), got.ID)
	require.NoError(t, err)
	require.False(t, active)

	active, err = svc.ToggleActive(context.Background(), got.ID)
	require.NoError(t, err)
	require.True(t, active)
}
