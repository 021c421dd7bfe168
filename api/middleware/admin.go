package middleware

import (
	"net/http"

	"github.com/ravetagbd/ravetag-backend/api/responses"
	"github.com/ravetagbd/ravetag-backend/api/validators"
	"github.com/ravetagbd/ravetag-backend/pkg/auth"
	pkgerrors "github.com/ravetagbd/ravetag-backend/pkg/errors"
	"github.com/ravetagbd/ravetag-backend/pkg/logger"
)

// AdminAuth gates privileged endpoints behind the admin token. The token is
// read from the X-Admin-Token header or the token query parameter.
func AdminAuth(authenticator auth.AdminAuthenticator, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if authenticator == nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "admin access not configured"))
				return
			}

			token := validators.AdminToken(r)
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}
			if !authenticator.IsAdmin(token) {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid admin token"))
				return
			}

			ctx := WithAdmin(r.Context())
			if logg != nil {
				ctx = logg.WithField(ctx, "admin", true)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
