package models

import (
	"time"

	"github.com/google/uuid"
)

// ExternalLink is a tracked outbound link, addressed by name.
type ExternalLink struct {
	ID        uuid.UUID   `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string      `gorm:"column:name;not null;uniqueIndex:external_links_name_key"`
	URL       string      `gorm:"column:url;not null"`
	Visits    []LinkVisit `gorm:"foreignKey:LinkID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time   `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time   `gorm:"column:updated_at;autoUpdateTime"`
}

// LinkVisit is append-only; concurrent visits never clobber each other.
type LinkVisit struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	LinkID    uuid.UUID `gorm:"column:link_id;type:uuid;not null"`
	Visitor   string    `gorm:"column:visitor;not null"`
	VisitedAt time.Time `gorm:"column:visited_at;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
