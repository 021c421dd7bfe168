package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ravetagbd/ravetag-backend/pkg/db/models"
	"github.com/ravetagbd/ravetag-backend/pkg/enums"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("LineItems").
		Where("id = ?", id).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) FindByCode(ctx context.Context, code string) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("LineItems").
		Where("code = ?", code).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) List(ctx context.Context, filters ListFilters) ([]models.Order, error) {
	query := r.db.WithContext(ctx).Preload("LineItems")

	if filters.Phone != "" {
		query = query.Where("customer_phone = ?", filters.Phone)
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}

	var orders []models.Order
	if err := query.Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) (enums.MutationOutcome, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return enums.MutationOutcomeNoChange, result.Error
	}
	if result.RowsAffected == 0 {
		return enums.MutationOutcomeNotFound, nil
	}
	return enums.MutationOutcomeUpdated, nil
}

// MarkCancelled flips the order to cancelled only when it is not cancelled
// already. The status check lives in the UPDATE itself so two concurrent
// cancels of the same code can never both win the row.
func (r *repository) MarkCancelled(ctx context.Context, id uuid.UUID) (enums.MutationOutcome, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ? AND status <> ?", id, enums.OrderStatusCancelled).
		Update("status", enums.OrderStatusCancelled)
	if result.Error != nil {
		return enums.MutationOutcomeNoChange, result.Error
	}
	if result.RowsAffected > 0 {
		return enums.MutationOutcomeUpdated, nil
	}

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return enums.MutationOutcomeNoChange, err
	}
	if count == 0 {
		return enums.MutationOutcomeNotFound, nil
	}
	return enums.MutationOutcomeNoChange, nil
}
