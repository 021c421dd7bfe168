package linkvisits

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ravetagbd/ravetag-backend/pkg/db/models"
	pkgerrors "github.com/ravetagbd/ravetag-backend/pkg/errors"
)

// VisitInput names the link plus who visited it and when.
type VisitInput struct {
	Name      string
	Visitor   string
	VisitedAt time.Time
}

// VisitDTO is the wire shape of one recorded visit.
type VisitDTO struct {
	LinkID    uuid.UUID `json:"link_id"`
	LinkName  string    `json:"link_name"`
	Visitor   string    `json:"visitor"`
	VisitedAt time.Time `json:"visited_at"`
}

// Service records visits against named links.
type Service interface {
	RecordVisit(ctx context.Context, input VisitInput) (*VisitDTO, error)
}

type service struct {
	repo Repository
}

// NewService builds a link-visits service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("link visits repository required")
	}
	return &service{repo: repo}, nil
}

// RecordVisit appends one visit row for the named link. Rows are append-only
// so concurrent visitors never overwrite each other's entries.
func (s *service) RecordVisit(ctx context.Context, input VisitInput) (*VisitDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "link name required")
	}
	visitor := strings.TrimSpace(input.Visitor)
	if visitor == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "visitor required")
	}
	visitedAt := input.VisitedAt
	if visitedAt.IsZero() {
		visitedAt = time.Now().UTC()
	}

	link, err := s.repo.FindLinkByName(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "link not found").
				WithDetails(map[string]any{"name": name})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load link")
	}

	visit := &models.LinkVisit{
		LinkID:    link.ID,
		Visitor:   visitor,
		VisitedAt: visitedAt,
	}
	if err := s.repo.AppendVisit(ctx, visit); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "append link visit")
	}

	return &VisitDTO{
		LinkID:    link.ID,
		LinkName:  link.Name,
		Visitor:   visit.Visitor,
		VisitedAt: visit.VisitedAt,
	}, nil
}
