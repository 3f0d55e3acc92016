// Package auth resolves the authenticated caller for a request and carries it
// on the request context.
package auth

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

type contextKey string

const callerKey contextKey = "caller"

// Caller is the identity asserted by the identity provider for one request.
type Caller struct {
	ID              string
	Email           string
	FirstName       string
	LastName        string
	ProfileImageURL string
}

func WithCaller(ctx context.Context, c Caller) context.Context {
	return context.WithValue(ctx, callerKey, c)
}

// CallerFromContext returns the caller stored by the authentication
// middleware. ok is false for anonymous requests.
func CallerFromContext(ctx context.Context) (Caller, bool) {
	c, ok := ctx.Value(callerKey).(Caller)
	if !ok || c.ID == "" {
		return Caller{}, false
	}
	return c, true
}

// CallerID is a convenience wrapper returning "" for anonymous requests.
func CallerID(ctx context.Context) string {
	c, _ := CallerFromContext(ctx)
	return c.ID
}

// RequireCaller rejects anonymous requests with 401.
func RequireCaller() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := CallerFromContext(c.Request().Context()); !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
			}
			return next(c)
		}
	}
}

func setCaller(c echo.Context, caller Caller) {
	c.SetRequest(c.Request().WithContext(WithCaller(c.Request().Context(), caller)))
}
