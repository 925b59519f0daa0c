package httpx

import (
	"context"
	"net/http"
)

type contextKey string

const (
	adminLoginKey contextKey = "adminLogin"
	requestIDKey  contextKey = "requestID"
)

// AdminLoginFrom retrieves the authenticated administrator login from the request context.
func AdminLoginFrom(r *http.Request) string {
	if v, ok := r.Context().Value(adminLoginKey).(string); ok {
		return v
	}
	return ""
}

// ContextWithAdmin returns a new context carrying the administrator login.
func ContextWithAdmin(ctx context.Context, login string) context.Context {
	return context.WithValue(ctx, adminLoginKey, login)
}

// RequestIDFrom retrieves the request ID from the request context.
func RequestIDFrom(r *http.Request) string {
	if v, ok := r.Context().Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}

// ContextWithRequestID returns a new context carrying the request ID.
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}
