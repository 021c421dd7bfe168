package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/ravetagbd/ravetag-backend/pkg/enums"
)

// Order snapshots the customer at placement time; Code is the short reference
// customers use for cancellation.
type Order struct {
	ID            uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Code          string            `gorm:"column:code;not null;uniqueIndex:orders_code_key"`
	CustomerPhone string            `gorm:"column:customer_phone;not null"`
	CustomerName  string            `gorm:"column:customer_name;not null"`
	Address       string            `gorm:"column:address;not null"`
	Status        enums.OrderStatus `gorm:"column:status;type:order_status;not null;default:'pending'"`
	TotalCents    int               `gorm:"column:total_cents;not null"`
	LineItems     []OrderLineItem   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

// OrderLineItem captures one ordered (product, variant, size) with a price
// snapshot taken at placement.
type OrderLineItem struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID        uuid.UUID `gorm:"column:order_id;type:uuid;not null"`
	ProductID      uuid.UUID `gorm:"column:product_id;type:uuid;not null"`
	ProductTitle   string    `gorm:"column:product_title;not null"`
	VariantName    string    `gorm:"column:variant_name;not null"`
	Size           string    `gorm:"column:size;not null"`
	Quantity       int       `gorm:"column:quantity;not null"`
	UnitPriceCents int       `gorm:"column:unit_price_cents;not null"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
