package customers

import (
	"time"

	"github.com/google/uuid"

	"github.com/ravetagbd/ravetag-backend/pkg/db/models"
	"github.com/ravetagbd/ravetag-backend/pkg/enums"
)

// UpsertInput holds the validated customer payload.
type UpsertInput struct {
	Phone    string
	Name     string
	Email    *string
	Address  string
	City     *string
	District *string
}

// CustomerDTO is the wire shape of a customer record.
type CustomerDTO struct {
	ID        uuid.UUID             `json:"id"`
	Phone     string                `json:"phone"`
	Name      string                `json:"name"`
	Email     *string               `json:"email,omitempty"`
	Address   string                `json:"address"`
	City      *string               `json:"city,omitempty"`
	District  *string               `json:"district,omitempty"`
	Outcome   enums.MutationOutcome `json:"outcome,omitempty"`
	CreatedAt time.Time             `json:"created_at"`
	UpdatedAt time.Time             `json:"updated_at"`
}

// NewCustomerDTO maps a customer row to the wire shape.
func NewCustomerDTO(customer *models.Customer, outcome enums.MutationOutcome) *CustomerDTO {
	if customer == nil {
		return nil
	}
	return &CustomerDTO{
		ID:        customer.ID,
		Phone:     customer.Phone,
		Name:      customer.Name,
		Email:     customer.Email,
		Address:   customer.Address,
		City:      customer.City,
		District:  customer.District,
		Outcome:   outcome,
		CreatedAt: customer.CreatedAt,
		UpdatedAt: customer.UpdatedAt,
	}
}
