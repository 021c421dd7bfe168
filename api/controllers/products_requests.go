package controllers

import (
	"github.com/google/uuid"

	"github.com/ravetagbd/ravetag-backend/internal/catalog"
)

type sizeRequest struct {
	Size  string `json:"size" validate:"required"`
	Stock int    `json:"stock" validate:"gte=0"`
}

type variantRequest struct {
	Name  string        `json:"name" validate:"required"`
	Sizes []sizeRequest `json:"sizes" validate:"required,min=1,dive"`
}

type productRequest struct {
	Title           string           `json:"title" validate:"required"`
	Category        string           `json:"category" validate:"required"`
	Description     *string          `json:"description,omitempty"`
	ImageURL        *string          `json:"image_url,omitempty"`
	PriceCents      int              `json:"price_cents" validate:"gte=0"`
	OfferPriceCents int              `json:"offer_price_cents" validate:"gte=0"`
	Variants        []variantRequest `json:"variants" validate:"required,min=1,dive"`
}

type replaceProductRequest struct {
	ID uuid.UUID `json:"id" validate:"required"`
	productRequest
}

func (p productRequest) toInput() catalog.ProductInput {
	variants := make([]catalog.VariantInput, 0, len(p.Variants))
	for _, variant := range p.Variants {
		sizes := make([]catalog.SizeInput, 0, len(variant.Sizes))
		for _, size := range variant.Sizes {
			sizes = append(sizes, catalog.SizeInput{Size: size.Size, Stock: size.Stock})
		}
		variants = append(variants, catalog.VariantInput{Name: variant.Name, Sizes: sizes})
	}

	return catalog.ProductInput{
		Title:           p.Title,
		Category:        p.Category,
		Description:     p.Description,
		ImageURL:        p.ImageURL,
		PriceCents:      p.PriceCents,
		OfferPriceCents: p.OfferPriceCents,
		Variants:        variants,
	}
}
