package middleware

import "context"

type contextKey string

const ctxAdmin contextKey = "admin"

// IsAdminFromContext reports whether the request passed the admin gate.
func IsAdminFromContext(ctx context.Context) bool {
	if ctx == nil {
		return false
	}
	if v, ok := ctx.Value(ctxAdmin).(bool); ok {
		return v
	}
	return false
}

// WithAdmin marks the context as carrying an authenticated admin.
func WithAdmin(ctx context.Context) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxAdmin, true)
}
