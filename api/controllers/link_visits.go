package controllers

import (
	"net/http"
	"time"

	"github.com/ravetagbd/ravetag-backend/api/responses"
	"github.com/ravetagbd/ravetag-backend/api/validators"
	linkvisitsvc "github.com/ravetagbd/ravetag-backend/internal/linkvisits"
	pkgerrors "github.com/ravetagbd/ravetag-backend/pkg/errors"
	"github.com/ravetagbd/ravetag-backend/pkg/logger"
)

type linkVisitRequest struct {
	Name     string     `json:"name" validate:"required"`
	User     string     `json:"user" validate:"required"`
	Datetime *time.Time `json:"datetime,omitempty"`
}

// RecordLinkVisit appends one visit row for the named tracked link.
func RecordLinkVisit(svc linkvisitsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "link visits service unavailable"))
			return
		}

		var payload linkVisitRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := linkvisitsvc.VisitInput{Name: payload.Name, Visitor: payload.User}
		if payload.Datetime != nil {
			input.VisitedAt = *payload.Datetime
		}

		visit, err := svc.RecordVisit(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, visit)
	}
}
