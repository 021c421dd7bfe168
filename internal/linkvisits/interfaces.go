package linkvisits

import (
	"context"

	"gorm.io/gorm"

	"github.com/ravetagbd/ravetag-backend/pkg/db/models"
)

// Repository defines persistence operations for tracked links.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindLinkByName(ctx context.Context, name string) (*models.ExternalLink, error)
	AppendVisit(ctx context.Context, visit *models.LinkVisit) error
}
