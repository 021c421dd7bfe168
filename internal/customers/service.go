package customers

import (
	"context"
	"fmt"
	"strings"

	pkgerrors "github.com/ravetagbd/ravetag-backend/pkg/errors"

	"github.com/ravetagbd/ravetag-backend/pkg/db/models"
)

// Service exposes customer record management.
type Service interface {
	Upsert(ctx context.Context, input UpsertInput) (*CustomerDTO, error)
}

type service struct {
	repo Repository
}

// NewService builds a customers service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("customers repository required")
	}
	return &service{repo: repo}, nil
}

// Upsert writes the full record keyed on phone. Re-submitting the same
// payload is idempotent.
func (s *service) Upsert(ctx context.Context, input UpsertInput) (*CustomerDTO, error) {
	phone := strings.TrimSpace(input.Phone)
	if phone == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "phone is required")
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if strings.TrimSpace(input.Address) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "address is required")
	}

	customer := &models.Customer{
		Phone:    phone,
		Name:     strings.TrimSpace(input.Name),
		Email:    input.Email,
		Address:  strings.TrimSpace(input.Address),
		City:     input.City,
		District: input.District,
	}

	outcome, err := s.repo.UpsertByPhone(ctx, customer)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upsert customer")
	}
	return NewCustomerDTO(customer, outcome), nil
}
