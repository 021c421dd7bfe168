package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/ravetagbd/ravetag-backend/pkg/db/models"
	"github.com/ravetagbd/ravetag-backend/pkg/enums"
)

// ListFilters describe the inputs supported by the order lists.
type ListFilters struct {
	Phone  string
	Status *enums.OrderStatus
}

// CustomerInput is the customer snapshot submitted with an order.
type CustomerInput struct {
	Phone    string
	Name     string
	Email    *string
	Address  string
	City     *string
	District *string
}

// ItemInput names one (product, variant, size) plus the quantity wanted.
type ItemInput struct {
	ProductID   uuid.UUID
	VariantName string
	Size        string
	Quantity    int
}

// PlaceOrderInput carries everything needed to place an order.
type PlaceOrderInput struct {
	Customer CustomerInput
	Items    []ItemInput
}

// ItemDTO is the wire shape of one order line.
type ItemDTO struct {
	ProductID      uuid.UUID `json:"product_id"`
	ProductTitle   string    `json:"product_title"`
	VariantName    string    `json:"variant_name"`
	Size           string    `json:"size"`
	Quantity       int       `json:"quantity"`
	UnitPriceCents int       `json:"unit_price_cents"`
}

// OrderDTO is the wire shape of a placed order.
type OrderDTO struct {
	ID            uuid.UUID         `json:"id"`
	Code          string            `json:"code"`
	CustomerPhone string            `json:"customer_phone"`
	CustomerName  string            `json:"customer_name"`
	Address       string            `json:"address"`
	Status        enums.OrderStatus `json:"status"`
	TotalCents    int               `json:"total_cents"`
	Items         []ItemDTO         `json:"items"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// NewOrderDTO maps an order row plus its loaded line items to the wire shape.
func NewOrderDTO(order *models.Order) *OrderDTO {
	if order == nil {
		return nil
	}

	items := make([]ItemDTO, 0, len(order.LineItems))
	for _, item := range order.LineItems {
		items = append(items, ItemDTO{
			ProductID:      item.ProductID,
			ProductTitle:   item.ProductTitle,
			VariantName:    item.VariantName,
			Size:           item.Size,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
		})
	}

	return &OrderDTO{
		ID:            order.ID,
		Code:          order.Code,
		CustomerPhone: order.CustomerPhone,
		CustomerName:  order.CustomerName,
		Address:       order.Address,
		Status:        order.Status,
		TotalCents:    order.TotalCents,
		Items:         items,
		CreatedAt:     order.CreatedAt,
		UpdatedAt:     order.UpdatedAt,
	}
}
