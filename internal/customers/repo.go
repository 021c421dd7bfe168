package customers

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

// NewRepository builds a customers repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

// UpsertByPhone replaces the whole record keyed on phone. The xmax trick
// distinguishes a fresh insert from an overwrite.
func (r *repository) UpsertByPhone(ctx context.Context, customer *models.Customer) (enums.MutationOutcome, error) {
	var row struct {
		ID       uuid.UUID
		Inserted bool
	}

	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO customers (phone, name, email, address, city, district)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (phone) DO UPDATE SET
			name = EXCLUDED.name,
			email = EXCLUDED.email,
			address = EXCLUDED.address,
			city = EXCLUDED.city,
			district = EXCLUDED.district,
			updated_at = now()
		RETURNING id, (xmax = 0) AS inserted`,
		customer.Phone, customer.Name, customer.Email, customer.Address, customer.City, customer.District).
		Scan(&row).Error
	if err != nil {
		return enums.MutationOutcomeNoChange, err
	}

	customer.ID = row.ID
	if row.Inserted {
		return enums.MutationOutcomeInserted, nil
	}
	return enums.MutationOutcomeUpdated, nil
}

func (r *repository) FindByPhone(ctx context.Context, phone string) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.WithContext(ctx).
		Where("phone = ?", phone).
		First(&customer).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}
