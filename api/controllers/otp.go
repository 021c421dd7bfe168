package controllers

import (
	"net/http"

	"github.com/ravetagbd/ravetag-backend/api/responses"
	"github.com/ravetagbd/ravetag-backend/api/validators"
	otpsvc "github.com/ravetagbd/ravetag-backend/internal/otp"
	pkgerrors "github.com/ravetagbd/ravetag-backend/pkg/errors"
	"github.com/ravetagbd/ravetag-backend/pkg/logger"
)

// SendOTP relays a send-code request to the SMS provider for the phone in
// the query string.
func SendOTP(svc otpsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "otp service unavailable"))
			return
		}

		phone, err := validators.RequireQueryString(r, "phone")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithPhone(ctx, phone)
		}

		if err := svc.SendCode(ctx, phone); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "sent"})
	}
}

// VerifyPhone checks the submitted code with the provider and reports the
// result as {valid: bool}; a wrong code is not an error.
func VerifyPhone(svc otpsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "otp service unavailable"))
			return
		}

		phone, err := validators.RequireQueryString(r, "phone")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		code, err := validators.RequireQueryString(r, "otp")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithPhone(ctx, phone)
		}

		result, err := svc.VerifyPhone(ctx, phone, code)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
