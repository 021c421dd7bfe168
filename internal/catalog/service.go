package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ravetagbd/ravetag-backend/pkg/db/models"
	pkgerrors "github.com/ravetagbd/ravetag-backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes storefront and admin catalog operations.
type Service interface {
	ListProducts(ctx context.Context, filters ListFilters) ([]ProductDTO, error)
	GetOfferPrice(ctx context.Context, id uuid.UUID) (*PriceDTO, error)
	ListCategories(ctx context.Context) ([]string, error)
	CreateProduct(ctx context.Context, input ProductInput) (*ProductDTO, error)
	ReplaceProduct(ctx context.Context, id uuid.UUID, input ProductInput) (*ProductDTO, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
	tx   txRunner
}

// NewService builds a catalog service with the required dependencies.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

func (s *service) ListProducts(ctx context.Context, filters ListFilters) ([]ProductDTO, error) {
	products, err := s.repo.ListProducts(ctx, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}

	dtos := make([]ProductDTO, 0, len(products))
	for i := range products {
		dtos = append(dtos, *NewProductDTO(&products[i]))
	}
	return dtos, nil
}

// GetOfferPrice returns the stored offer price, or NOT_FOUND when the product
// does not exist. Absence is never reported as a price.
func (s *service) GetOfferPrice(ctx context.Context, id uuid.UUID) (*PriceDTO, error) {
	product, err := s.repo.FindProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return &PriceDTO{ID: product.ID, OfferPriceCents: product.OfferPriceCents}, nil
}

func (s *service) ListCategories(ctx context.Context) ([]string, error) {
	names, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	return names, nil
}

func (s *service) CreateProduct(ctx context.Context, input ProductInput) (*ProductDTO, error) {
	if err := validateProductInput(input); err != nil {
		return nil, err
	}

	product := buildProductModel(input)
	var createdID uuid.UUID
	if err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		created, err := s.repo.WithTx(tx).CreateProduct(ctx, product)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert product")
		}
		createdID = created.ID
		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}

	created, err := s.repo.FindProductByID(ctx, createdID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load created product")
	}
	return NewProductDTO(created), nil
}

// ReplaceProduct applies full-document semantics: the row plus the whole
// variant tree take the submitted shape.
func (s *service) ReplaceProduct(ctx context.Context, id uuid.UUID, input ProductInput) (*ProductDTO, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	if err := validateProductInput(input); err != nil {
		return nil, err
	}

	product := buildProductModel(input)
	product.ID = id

	if err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).ReplaceProduct(ctx, product); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: replace product")
		}
		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "replace product")
	}

	updated, err := s.repo.FindProductByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load replaced product")
	}
	return NewProductDTO(updated), nil
}

func (s *service) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}

	outcome, err := s.repo.DeleteProduct(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	if !outcome.Mutated() {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return nil
}

func validateProductInput(input ProductInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	if strings.TrimSpace(input.Category) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "category is required")
	}
	if input.PriceCents < 0 || input.OfferPriceCents < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "prices must be non-negative")
	}
	seenVariants := make(map[string]struct{}, len(input.Variants))
	for _, variant := range input.Variants {
		name := strings.TrimSpace(variant.Name)
		if name == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "variant name is required")
		}
		if _, ok := seenVariants[name]; ok {
			return pkgerrors.New(pkgerrors.CodeValidation, "duplicate variant name")
		}
		seenVariants[name] = struct{}{}

		seenSizes := make(map[string]struct{}, len(variant.Sizes))
		for _, size := range variant.Sizes {
			label := strings.TrimSpace(size.Size)
			if label == "" {
				return pkgerrors.New(pkgerrors.CodeValidation, "size label is required")
			}
			if _, ok := seenSizes[label]; ok {
				return pkgerrors.New(pkgerrors.CodeValidation, "duplicate size label")
			}
			seenSizes[label] = struct{}{}
			if size.Stock < 0 {
				return pkgerrors.New(pkgerrors.CodeValidation, "stock must be non-negative")
			}
		}
	}
	return nil
}

func buildProductModel(input ProductInput) *models.Product {
	variants := make([]models.ProductVariant, 0, len(input.Variants))
	for _, variant := range input.Variants {
		sizes := make([]models.VariantSize, 0, len(variant.Sizes))
		for _, size := range variant.Sizes {
			sizes = append(sizes, models.VariantSize{
				Size:  strings.TrimSpace(size.Size),
				Stock: size.Stock,
			})
		}
		variants = append(variants, models.ProductVariant{
			Name:  strings.TrimSpace(variant.Name),
			Sizes: sizes,
		})
	}

	return &models.Product{
		Title:           strings.TrimSpace(input.Title),
		Category:        strings.TrimSpace(input.Category),
		Description:     input.Description,
		ImageURL:        input.ImageURL,
		PriceCents:      input.PriceCents,
		OfferPriceCents: input.OfferPriceCents,
		Variants:        variants,
	}
}
