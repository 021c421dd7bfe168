package catalog

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/ravetagbd/ravetag-backend/pkg/db/models"
	"github.com/ravetagbd/ravetag-backend/pkg/enums"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("RAVETAG_DB_DSN")
	if dsn == "" {
		t.Skip("RAVETAG_DB_DSN is not set")
	}

	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	return conn
}

func seedProduct(t *testing.T, db *gorm.DB) *models.Product {
	t.Helper()

	product := &models.Product{
		Title:           "Repo Test Tee",
		Category:        "shirts",
		PriceCents:      150000,
		OfferPriceCents: 120000,
		Variants: []models.ProductVariant{
			{Name: "red", Sizes: []models.VariantSize{{Size: "M", Stock: 2}, {Size: "L", Stock: 1}}},
		},
	}
	require.NoError(t, db.Create(product).Error)
	t.Cleanup(func() {
		db.Where("id = ?", product.ID).Delete(&models.Product{})
	})
	return product
}

func TestDecrementStockGuardsAgainstNegative(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	product := seedProduct(t, db)

	outcome, err := repo.DecrementStock(ctx, product.ID, "red", "M", 2)
	require.NoError(t, err)
	assert.Equal(t, enums.MutationOutcomeUpdated, outcome)

	outcome, err = repo.DecrementStock(ctx, product.ID, "red", "M", 1)
	require.NoError(t, err)
	assert.Equal(t, enums.MutationOutcomeNoChange, outcome)

	outcome, err = repo.DecrementStock(ctx, product.ID, "blue", "M", 1)
	require.NoError(t, err)
	assert.Equal(t, enums.MutationOutcomeNotFound, outcome)
}

func TestDecrementStockTouchesOnlyNamedSize(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	product := seedProduct(t, db)

	_, err := repo.DecrementStock(ctx, product.ID, "red", "M", 1)
	require.NoError(t, err)

	reloaded, err := repo.FindProductByID(ctx, product.ID)
	require.NoError(t, err)
	for _, variant := range reloaded.Variants {
		for _, size := range variant.Sizes {
			switch size.Size {
			case "M":
				assert.Equal(t, 1, size.Stock, "named size should be decremented")
			case "L":
				assert.Equal(t, 1, size.Stock, "sibling size should be untouched")
			}
		}
	}
}

func TestReplaceProductSwapsVariantTree(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	product := seedProduct(t, db)

	replacement := &models.Product{
		ID:              product.ID,
		Title:           "Repo Test Tee v2",
		Category:        "shirts",
		PriceCents:      160000,
		OfferPriceCents: 130000,
		Variants: []models.ProductVariant{
			{Name: "black", Sizes: []models.VariantSize{{Size: "XL", Stock: 7}}},
		},
	}
	require.NoError(t, repo.ReplaceProduct(ctx, replacement))

	reloaded, err := repo.FindProductByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Repo Test Tee v2", reloaded.Title)
	require.Len(t, reloaded.Variants, 1)
	assert.Equal(t, "black", reloaded.Variants[0].Name)

	unknown := &models.Product{ID: uuid.New(), Title: "x", Category: "y"}
	assert.ErrorIs(t, repo.ReplaceProduct(ctx, unknown), gorm.ErrRecordNotFound)
}
