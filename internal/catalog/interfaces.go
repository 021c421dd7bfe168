package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ravetagbd/ravetag-backend/pkg/db/models"
	"github.com/ravetagbd/ravetag-backend/pkg/enums"
)

// Repository defines persistence operations for the catalog tables.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error)
	FindProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListProducts(ctx context.Context, filters ListFilters) ([]models.Product, error)
	ReplaceProduct(ctx context.Context, product *models.Product) error
	DeleteProduct(ctx context.Context, id uuid.UUID) (enums.MutationOutcome, error)
	ListCategories(ctx context.Context) ([]string, error)
	DecrementStock(ctx context.Context, productID uuid.UUID, variantName, size string, qty int) (enums.MutationOutcome, error)
	IncrementStock(ctx context.Context, productID uuid.UUID, variantName, size string, qty int) (enums.MutationOutcome, error)
	BumpSales(ctx context.Context, productID uuid.UUID, delta int) error
}
