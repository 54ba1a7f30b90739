package customers

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pinkbella/storefront/internal/postal"
	"github.com/pinkbella/storefront/internal/shared"
)

const defaultAddressKind = "residential"

type Service struct {
	logger   *slog.Logger
	repo     Repository
	resolver postal.Resolver
}

func NewService(logger *slog.Logger, repo Repository, resolver postal.Resolver) *Service {
	return &Service{logger: logger, repo: repo, resolver: resolver}
}

// Register creates a customer together with its first address and links
// it as principal, all in one transaction. The address is completed from
// the postal lookup when possible; resolved fields win over manual ones.
func (s *Service) Register(ctx context.Context, req RegisterCustomerRequest) (*CustomerWithAddress, error) {
	address, err := s.completeAddress(ctx, req.Address)
	if err != nil {
		return nil, err
	}

	customer := Customer{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
		TaxID: req.TaxID,
	}

	var customerID int64
	err = s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		id, err := repo.Create(ctx, customer)
		if err != nil {
			return fmt.Errorf("create customer: %w", err)
		}
		customerID = id

		address.CustomerID = id
		addressID, err := repo.CreateAddress(ctx, *address)
		if err != nil {
			return fmt.Errorf("create address: %w", err)
		}

		if err := repo.SetPrincipalAddress(ctx, id, addressID); err != nil {
			return fmt.Errorf("link principal address: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.repo.GetWithAddress(ctx, customerID)
}

func (s *Service) Get(ctx context.Context, id int64) (*CustomerWithAddress, error) {
	return s.repo.GetWithAddress(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]CustomerWithAddress, error) {
	return s.repo.List(ctx)
}

// Update applies partial changes to identity fields and, when an address
// is included, to the principal address. Customers without a principal
// address get one created and linked.
func (s *Service) Update(ctx context.Context, id int64, req UpdateCustomerRequest) (*CustomerWithAddress, error) {
	if req.Name == nil && req.Email == nil && req.Phone == nil && req.TaxID == nil && req.Address == nil {
		return nil, shared.Validationf("no fields to update")
	}

	var address *Address
	if req.Address != nil {
		var err error
		address, err = s.completeAddress(ctx, *req.Address)
		if err != nil {
			return nil, err
		}
	}

	err := s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		existing, err := repo.Get(ctx, id)
		if err != nil {
			return err
		}

		updates := make(map[string]interface{})
		if req.Name != nil {
			updates["name"] = *req.Name
		}
		if req.Email != nil {
			updates["email"] = *req.Email
		}
		if req.Phone != nil {
			updates["phone"] = *req.Phone
		}
		if req.TaxID != nil {
			updates["tax_id"] = *req.TaxID
		}
		if len(updates) > 0 {
			if err := repo.Update(ctx, id, updates); err != nil {
				return fmt.Errorf("update customer: %w", err)
			}
		}

		if address == nil {
			return nil
		}
		address.CustomerID = id
		if existing.PrincipalAddressID == nil {
			addressID, err := repo.CreateAddress(ctx, *address)
			if err != nil {
				return fmt.Errorf("create address: %w", err)
			}
			return repo.SetPrincipalAddress(ctx, id, addressID)
		}
		return repo.UpdateAddress(ctx, *existing.PrincipalAddressID, id, *address)
	})
	if err != nil {
		return nil, err
	}

	return s.repo.GetWithAddress(ctx, id)
}

// ToggleActive flips the active flag and reports the new state.
func (s *Service) ToggleActive(ctx context.Context, id int64) (bool, error) {
	var active bool
	err := s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		existing, err := repo.Get(ctx, id)
		if err != nil {
			return err
		}
		active = !existing.Active
		return repo.SetActive(ctx, id, active)
	})
	if err != nil {
		return false, err
	}
	return active, nil
}

// completeAddress merges the submitted address with the postal lookup.
// Lookup failures fall back to the manual fields; a street must come from
// one of the two sources.
func (s *Service) completeAddress(ctx context.Context, input AddressInput) (*Address, error) {
	var resolved *postal.Address
	if s.resolver != nil {
		var err error
		resolved, err = s.resolver.Resolve(ctx, input.PostalCode)
		if err != nil {
			s.logger.Warn("postal lookup unavailable, using manual address",
				slog.String("postal_code", input.PostalCode), slog.Any("error", err))
			resolved = nil
		}
	}

	street := input.Street
	neighborhood := input.Neighborhood
	city := input.City
	region := input.Region
	if resolved != nil {
		if resolved.Street != "" {
			street = resolved.Street
		}
		if resolved.Neighborhood != "" {
			neighborhood = &resolved.Neighborhood
		}
		if resolved.City != "" {
			city = &resolved.City
		}
		if resolved.Region != "" {
			region = &resolved.Region
		}
	}
	if street == "" {
		return nil, shared.Validationf("street is required when the postal code cannot be resolved")
	}

	kind := input.Kind
	if kind == "" {
		kind = defaultAddressKind
	}
	principal := true
	if input.Principal != nil {
		principal = *input.Principal
	}

	return &Address{
		PostalCode:   input.PostalCode,
		Street:       street,
		Number:       input.Number,
		Complement:   input.Complement,
		Neighborhood: neighborhood,
		City:         city,
		Region:       region,
		Reference:    input.Reference,
		Kind:         kind,
		Principal:    principal,
	}, nil
}
