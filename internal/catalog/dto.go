package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/ravetagbd/ravetag-backend/pkg/db/models"
)

// ListFilters describe the inputs supported by the product list.
type ListFilters struct {
	ID       *uuid.UUID
	Category string
	TopSales bool
}

// SizeInput carries one size row of a variant.
type SizeInput struct {
	Size  string
	Stock int
}

// VariantInput carries one named variant and its sizes.
type VariantInput struct {
	Name  string
	Sizes []SizeInput
}

// ProductInput holds the validated payload to create or replace a product.
type ProductInput struct {
	Title           string
	Category        string
	Description     *string
	ImageURL        *string
	PriceCents      int
	OfferPriceCents int
	Variants        []VariantInput
}

// SizeDTO is the wire shape of one sellable size.
type SizeDTO struct {
	ID    uuid.UUID `json:"id"`
	Size  string    `json:"size"`
	Stock int       `json:"stock"`
}

// VariantDTO is the wire shape of one variant with its sizes.
type VariantDTO struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Sizes []SizeDTO `json:"sizes"`
}

// ProductDTO is the wire shape of a full product document.
type ProductDTO struct {
	ID              uuid.UUID    `json:"id"`
	Title           string       `json:"title"`
	Category        string       `json:"category"`
	Description     *string      `json:"description,omitempty"`
	ImageURL        *string      `json:"image_url,omitempty"`
	PriceCents      int          `json:"price_cents"`
	OfferPriceCents int          `json:"offer_price_cents"`
	Sales           int          `json:"sales"`
	Variants        []VariantDTO `json:"variants"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

// PriceDTO carries the current offer price of a product.
type PriceDTO struct {
	ID              uuid.UUID `json:"id"`
	OfferPriceCents int       `json:"offer_price_cents"`
}

// NewProductDTO maps a product row plus its loaded variants to the wire shape.
func NewProductDTO(product *models.Product) *ProductDTO {
	if product == nil {
		return nil
	}

	variants := make([]VariantDTO, 0, len(product.Variants))
	for _, variant := range product.Variants {
		sizes := make([]SizeDTO, 0, len(variant.Sizes))
		for _, size := range variant.Sizes {
			sizes = append(sizes, SizeDTO{
				ID:    size.ID,
				Size:  size.Size,
				Stock: size.Stock,
			})
		}
		variants = append(variants, VariantDTO{
			ID:    variant.ID,
			Name:  variant.Name,
			Sizes: sizes,
		})
	}

	return &ProductDTO{
		ID:              product.ID,
		Title:           product.Title,
		Category:        product.Category,
		Description:     product.Description,
		ImageURL:        product.ImageURL,
		PriceCents:      product.PriceCents,
		OfferPriceCents: product.OfferPriceCents,
		Sales:           product.Sales,
		Variants:        variants,
		CreatedAt:       product.CreatedAt,
		UpdatedAt:       product.UpdatedAt,
	}
}
