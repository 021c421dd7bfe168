package models

import (
	"time"

	"github.com/google/uuid"
)

// Product represents a storefront catalog listing.
type Product struct {
	ID              uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Title           string           `gorm:"column:title;not null"`
	Category        string           `gorm:"column:category;not null"`
	Description     *string          `gorm:"column:description"`
	ImageURL        *string          `gorm:"column:image_url"`
	PriceCents      int              `gorm:"column:price_cents;not null"`
	OfferPriceCents int              `gorm:"column:offer_price_cents;not null"`
	Sales           int              `gorm:"column:sales;not null;default:0"`
	Variants        []ProductVariant `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

// ProductVariant is a named variation of a product, typically a color.
type ProductVariant struct {
	ID        uuid.UUID     `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID uuid.UUID     `gorm:"column:product_id;type:uuid;not null"`
	Name      string        `gorm:"column:name;not null"`
	Sizes     []VariantSize `gorm:"foreignKey:VariantID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time     `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time     `gorm:"column:updated_at;autoUpdateTime"`
}

// VariantSize holds the sellable stock for one size of a variant. The schema
// carries CHECK (stock >= 0) so decrements can never drive stock negative.
type VariantSize struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	VariantID uuid.UUID `gorm:"column:variant_id;type:uuid;not null"`
	Size      string    `gorm:"column:size;not null"`
	Stock     int       `gorm:"column:stock;not null;default:0"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
