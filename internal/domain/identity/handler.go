package identity

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hms/hms/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/auth", auth.RequireCaller())
	g.GET("/user", h.GetCurrentUser)
}

// SyncCaller upserts the authenticated caller before the handler runs.
// Anonymous requests pass through untouched.
func (h *Handler) SyncCaller() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			caller, ok := auth.CallerFromContext(c.Request().Context())
			if !ok {
				return next(c)
			}
			if err := h.svc.SyncCaller(c.Request().Context(), caller); err != nil {
				return err
			}
			return next(c)
		}
	}
}

func (h *Handler) GetCurrentUser(c echo.Context) error {
	ctx := c.Request().Context()
	u, err := h.svc.GetUser(ctx, auth.CallerID(ctx))
	if err != nil {
		return err
	}
	if u == nil {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}
	return c.JSON(http.StatusOK, u)
}
