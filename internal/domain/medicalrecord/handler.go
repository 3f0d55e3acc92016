package medicalrecord

import (
	"errors"
	"net/http"

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
	g := api.Group("/medical-records", auth.RequireCaller())
	g.GET("", h.ListMedicalRecords)
	g.POST("", h.CreateMedicalRecord)
}

func (h *Handler) ListMedicalRecords(c echo.Context) error {
	ctx := c.Request().Context()
	items, err := h.svc.ListForCaller(ctx, auth.CallerID(ctx))
	if errors.Is(err, errs.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "Patient profile not found")
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) CreateMedicalRecord(c echo.Context) error {
	var in CreateInput
	if err := validate.Bind(c, &in); err != nil {
		return err
	}
	ctx := c.Request().Context()
	rec, err := h.svc.Create(ctx, auth.CallerID(ctx), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, rec)
}
