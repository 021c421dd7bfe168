package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/ravetagbd/ravetag-backend/api/responses"
	"github.com/ravetagbd/ravetag-backend/api/validators"
	ordersvc "github.com/ravetagbd/ravetag-backend/internal/orders"
	"github.com/ravetagbd/ravetag-backend/pkg/enums"
	pkgerrors "github.com/ravetagbd/ravetag-backend/pkg/errors"
	"github.com/ravetagbd/ravetag-backend/pkg/logger"
)

type orderCustomerRequest struct {
	Phone    string  `json:"phone" validate:"required"`
	Name     string  `json:"name" validate:"required"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Address  string  `json:"address" validate:"required"`
	City     *string `json:"city,omitempty"`
	District *string `json:"district,omitempty"`
}

type orderItemRequest struct {
	ProductID   uuid.UUID `json:"product_id" validate:"required"`
	VariantName string    `json:"variant_name" validate:"required"`
	Size        string    `json:"size" validate:"required"`
	Quantity    int       `json:"quantity" validate:"required,gt=0"`
}

type placeOrderRequest struct {
	Customer orderCustomerRequest `json:"customer" validate:"required"`
	Items    []orderItemRequest   `json:"items" validate:"required,min=1,dive"`
}

type cancelOrderRequest struct {
	Code string `json:"code" validate:"required"`
}

type changeOrderStatusRequest struct {
	ID     uuid.UUID `json:"id" validate:"required"`
	Status string    `json:"status" validate:"required"`
}

func (p placeOrderRequest) toInput() ordersvc.PlaceOrderInput {
	items := make([]ordersvc.ItemInput, 0, len(p.Items))
	for _, item := range p.Items {
		items = append(items, ordersvc.ItemInput{
			ProductID:   item.ProductID,
			VariantName: item.VariantName,
			Size:        item.Size,
			Quantity:    item.Quantity,
		})
	}
	return ordersvc.PlaceOrderInput{
		Customer: ordersvc.CustomerInput{
			Phone:    p.Customer.Phone,
			Name:     p.Customer.Name,
			Email:    p.Customer.Email,
			Address:  p.Customer.Address,
			City:     p.Customer.City,
			District: p.Customer.District,
		},
		Items: items,
	}
}

// PlaceOrder runs the whole checkout in one awaited transaction and returns
// the created order with its customer-facing code.
func PlaceOrder(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		var payload placeOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Place(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

// CancelOrder cancels the order matching the submitted code and restocks its
// line items.
func CancelOrder(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		var payload cancelOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Cancel(r.Context(), payload.Code)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, order)
	}
}

// ChangeOrderStatus is the admin path for moving an order between statuses.
func ChangeOrderStatus(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		var payload changeOrderStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.ChangeStatus(r.Context(), payload.ID, payload.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, order)
	}
}

// ListOrders serves a customer's order history. The phone query parameter is
// required so one customer can never enumerate another's orders by accident.
func ListOrders(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		phone, err := validators.RequireQueryString(r, "phone")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filters := ordersvc.ListFilters{Phone: phone}
		if status, err := parseStatusFilter(r); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		} else {
			filters.Status = status
		}

		orders, err := svc.List(r.Context(), filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, orders)
	}
}

// AdminListOrders serves the dashboard view with optional phone and status
// filters.
func AdminListOrders(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		filters := ordersvc.ListFilters{Phone: strings.TrimSpace(r.URL.Query().Get("phone"))}
		if status, err := parseStatusFilter(r); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		} else {
			filters.Status = status
		}

		orders, err := svc.List(r.Context(), filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, orders)
	}
}

func parseStatusFilter(r *http.Request) (*enums.OrderStatus, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("status"))
	if raw == "" {
		return nil, nil
	}
	status, err := enums.ParseOrderStatus(raw)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error()).WithDetails(map[string]any{"field": "status"})
	}
	return &status, nil
}
