package validators

import (
	"net/http"
	"strings"
)

const adminTokenHeader = "X-Admin-Token"

// AdminToken pulls the admin token from the header, falling back to the
// token query parameter for legacy dashboard links.
func AdminToken(r *http.Request) string {
	if token := strings.TrimSpace(r.Header.Get(adminTokenHeader)); token != "" {
		return token
	}
	return strings.TrimSpace(r.URL.Query().Get("token"))
}
