package appointment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/hms/hms/internal/platform/auth"
	"github.com/hms/hms/internal/platform/errs"
	"github.com/hms/hms/internal/platform/validate"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/appointments", auth.RequireCaller())
	g.GET("", h.ListAppointments)
	g.POST("", h.CreateAppointment)
	g.PATCH("/:id/status", h.UpdateStatus)
}

func (h *Handler) ListAppointments(c echo.Context) error {
	ctx := c.Request().Context()
	items, err := h.svc.ListForCaller(ctx, auth.CallerID(ctx))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) CreateAppointment(c echo.Context) error {
	var in CreateInput
	if err := validate.Bind(c, &in); err != nil {
		return err
	}
	ctx := c.Request().Context()
	a, err := h.svc.Create(ctx, auth.CallerID(ctx), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *Handler) UpdateStatus(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errs.Validation("id", "id must be an integer")
	}
	var in StatusInput
	if err := validate.Bind(c, &in); err != nil {
		return err
	}
	ctx := c.Request().Context()
	a, err := h.svc.UpdateStatus(ctx, auth.CallerID(ctx), id, in)
	if errors.Is(err, errs.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "Appointment not found")
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, a)
}
