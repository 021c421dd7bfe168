package auth

import (
	"crypto/subtle"
	"strings"
)

// AdminAuthenticator decides whether a presented token grants admin access.
// Keeping this behind an interface lets the router swap the static secret for
// a real identity provider without touching handlers.
type AdminAuthenticator interface {
	IsAdmin(token string) bool
}

// StaticTokenAuthenticator compares tokens against a single configured secret.
type StaticTokenAuthenticator struct {
	secret string
}

// NewStaticTokenAuthenticator builds the authenticator from the shared secret.
func NewStaticTokenAuthenticator(secret string) *StaticTokenAuthenticator {
	return &StaticTokenAuthenticator{secret: strings.TrimSpace(secret)}
}

// IsAdmin reports whether the token matches the secret. Comparison is
// constant time; an empty secret never authenticates.
func (a *StaticTokenAuthenticator) IsAdmin(token string) bool {
	if a == nil || a.secret == "" {
		return false
	}
	candidate := strings.TrimSpace(token)
	if candidate == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(a.secret)) == 1
}
