package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hms/hms/internal/platform/errs"
)

// RequestTimeout puts a deadline on the request context so database calls
// made by the handler are cancelled once it passes. The handler runs on the
// request goroutine; if it returns after the deadline without having written
// a response, the client gets a 504. A zero timeout disables the middleware.
func RequestTimeout(timeout time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if timeout <= 0 {
			return next
		}
		return func(c echo.Context) error {
			ctx, cancel := context.WithTimeout(c.Request().Context(), timeout)
			defer cancel()
			c.SetRequest(c.Request().WithContext(ctx))

			err := next(c)
			if c.Response().Committed || !errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return err
			}
			return c.JSON(http.StatusGatewayTimeout, errs.Body{Message: "Request timed out"})
		}
	}
}
