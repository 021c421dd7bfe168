package models

import (
	"time"

	"github.com/google/uuid"
)

// Customer is keyed by phone; upserts replace the whole record.
type Customer struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Phone     string    `gorm:"column:phone;not null;uniqueIndex:customers_phone_key"`
	Name      string    `gorm:"column:name;not null"`
	Email     *string   `gorm:"column:email"`
	Address   string    `gorm:"column:address;not null"`
	City      *string   `gorm:"column:city"`
	District  *string   `gorm:"column:district"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
