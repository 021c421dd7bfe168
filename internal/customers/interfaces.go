package customers

import (
	"context"

	"gorm.io/gorm"

	"github.com/ravetagbd/ravetag-backend/pkg/db/models"
	"github.com/ravetagbd/ravetag-backend/pkg/enums"
)

// Repository defines persistence operations for customer records.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	UpsertByPhone(ctx context.Context, customer *models.Customer) (enums.MutationOutcome, error)
	FindByPhone(ctx context.Context, phone string) (*models.Customer, error)
}
