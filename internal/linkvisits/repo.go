package linkvisits

import (
	"context"

	"gorm.io/gorm"

	"github.com/ravetagbd/ravetag-backend/pkg/db/models"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a link-visits repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindLinkByName(ctx context.Context, name string) (*models.ExternalLink, error) {
	var link models.ExternalLink
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&link).Error
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *repository) AppendVisit(ctx context.Context, visit *models.LinkVisit) error {
	return r.db.WithContext(ctx).Create(visit).Error
}
