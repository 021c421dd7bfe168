package controllers

import (
	"net/http"

	"github.com/ravetagbd/ravetag-backend/api/responses"
	"github.com/ravetagbd/ravetag-backend/api/validators"
	customersvc "github.com/ravetagbd/ravetag-backend/internal/customers"
	pkgerrors "github.com/ravetagbd/ravetag-backend/pkg/errors"
	"github.com/ravetagbd/ravetag-backend/pkg/logger"
)

type upsertCustomerRequest struct {
	Phone    string  `json:"phone" validate:"required"`
	Name     string  `json:"name" validate:"required"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Address  string  `json:"address" validate:"required"`
	City     *string `json:"city,omitempty"`
	District *string `json:"district,omitempty"`
}

// UpsertCustomer creates or fully replaces the customer record keyed by phone.
func UpsertCustomer(svc customersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "customers service unavailable"))
			return
		}

		var payload upsertCustomerRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		customer, err := svc.Upsert(r.Context(), customersvc.UpsertInput{
			Phone:    payload.Phone,
			Name:     payload.Name,
			Email:    payload.Email,
			Address:  payload.Address,
			City:     payload.City,
			District: payload.District,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, customer)
	}
}
