package patient

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hms/hms/internal/platform/auth"
	"github.com/hms/hms/internal/platform/validate"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/patients", auth.RequireCaller())
	g.GET("/me", h.GetMyProfile)
	g.POST("", h.CreatePatient)
}

func (h *Handler) GetMyProfile(c echo.Context) error {
	ctx := c.Request().Context()
	p, err := h.svc.GetByUserID(ctx, auth.CallerID(ctx))
	if err != nil {
		return err
	}
	if p == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Patient profile not found")
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) CreatePatient(c echo.Context) error {
	var in CreateInput
	if err := validate.Bind(c, &in); err != nil {
		return err
	}
	ctx := c.Request().Context()
	p, err := h.svc.Create(ctx, auth.CallerID(ctx), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, p)
}
