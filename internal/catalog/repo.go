package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ravetagbd/ravetag-backend/pkg/db/models"
	"github.com/ravetagbd/ravetag-backend/pkg/enums"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a catalog repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

func (r *repository) FindProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Variants.Sizes").
		Where("id = ?", id).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *repository) ListProducts(ctx context.Context, filters ListFilters) ([]models.Product, error) {
	query := r.db.WithContext(ctx).Preload("Variants.Sizes")

	if filters.ID != nil {
		query = query.Where("id = ?", *filters.ID)
	}
	if filters.Category != "" {
		query = query.Where("category = ?", filters.Category)
	}
	if filters.TopSales {
		query = query.Order("sales DESC")
	} else {
		query = query.Order("created_at DESC")
	}

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// ReplaceProduct swaps the full product document: row fields plus the entire
// variant/size tree.
func (r *repository) ReplaceProduct(ctx context.Context, product *models.Product) error {
	tx := r.db.WithContext(ctx)

	updates := map[string]any{
		"title":             product.Title,
		"category":          product.Category,
		"description":       product.Description,
		"image_url":         product.ImageURL,
		"price_cents":       product.PriceCents,
		"offer_price_cents": product.OfferPriceCents,
	}
	result := tx.Model(&models.Product{}).Where("id = ?", product.ID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	if err := tx.Where("product_id = ?", product.ID).Delete(&models.ProductVariant{}).Error; err != nil {
		return err
	}

	for i := range product.Variants {
		product.Variants[i].ID = uuid.Nil
		product.Variants[i].ProductID = product.ID
		for j := range product.Variants[i].Sizes {
			product.Variants[i].Sizes[j].ID = uuid.Nil
			product.Variants[i].Sizes[j].VariantID = uuid.Nil
		}
	}
	if len(product.Variants) > 0 {
		if err := tx.Create(&product.Variants).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *repository) DeleteProduct(ctx context.Context, id uuid.UUID) (enums.MutationOutcome, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Product{})
	if result.Error != nil {
		return enums.MutationOutcomeNoChange, result.Error
	}
	if result.RowsAffected == 0 {
		return enums.MutationOutcomeNotFound, nil
	}
	return enums.MutationOutcomeUpdated, nil
}

func (r *repository) ListCategories(ctx context.Context) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Model(&models.Category{}).
		Order("position ASC").
		Pluck("name", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}

// DecrementStock atomically takes qty from the named (product, variant, size)
// stock, refusing to go below zero.
func (r *repository) DecrementStock(ctx context.Context, productID uuid.UUID, variantName, size string, qty int) (enums.MutationOutcome, error) {
	result := r.db.WithContext(ctx).Exec(`
		UPDATE variant_sizes
		SET stock = stock - ?, updated_at = now()
		FROM product_variants
		WHERE variant_sizes.variant_id = product_variants.id
		  AND product_variants.product_id = ?
		  AND product_variants.name = ?
		  AND variant_sizes.size = ?
		  AND variant_sizes.stock >= ?`,
		qty, productID, variantName, size, qty)
	if result.Error != nil {
		return enums.MutationOutcomeNoChange, result.Error
	}
	if result.RowsAffected > 0 {
		return enums.MutationOutcomeUpdated, nil
	}

	exists, err := r.sizeExists(ctx, productID, variantName, size)
	if err != nil {
		return enums.MutationOutcomeNoChange, err
	}
	if !exists {
		return enums.MutationOutcomeNotFound, nil
	}
	return enums.MutationOutcomeNoChange, nil
}

// IncrementStock returns qty to the named (product, variant, size) stock,
// used when a cancelled order is restocked.
func (r *repository) IncrementStock(ctx context.Context, productID uuid.UUID, variantName, size string, qty int) (enums.MutationOutcome, error) {
	result := r.db.WithContext(ctx).Exec(`
		UPDATE variant_sizes
		SET stock = stock + ?, updated_at = now()
		FROM product_variants
		WHERE variant_sizes.variant_id = product_variants.id
		  AND product_variants.product_id = ?
		  AND product_variants.name = ?
		  AND variant_sizes.size = ?`,
		qty, productID, variantName, size)
	if result.Error != nil {
		return enums.MutationOutcomeNoChange, result.Error
	}
	if result.RowsAffected == 0 {
		return enums.MutationOutcomeNotFound, nil
	}
	return enums.MutationOutcomeUpdated, nil
}

func (r *repository) BumpSales(ctx context.Context, productID uuid.UUID, delta int) error {
	result := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", productID).
		UpdateColumn("sales", gorm.Expr("sales + ?", delta))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) sizeExists(ctx context.Context, productID uuid.UUID, variantName, size string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.VariantSize{}).
		Joins("JOIN product_variants ON product_variants.id = variant_sizes.variant_id").
		Where("product_variants.product_id = ? AND product_variants.name = ? AND variant_sizes.size = ?", productID, variantName, size).
		Count(&count).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}
	return count > 0, nil
}
