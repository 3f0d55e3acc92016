package message

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
	g := api.Group("/messages", auth.RequireCaller())
	// Static segment wins over :userId in echo's router.
	g.GET("/conversations", h.ListConversations)
	g.GET("/:userId", h.GetThread)
	g.POST("", h.SendMessage)
}

func (h *Handler) ListConversations(c echo.Context) error {
	ctx := c.Request().Context()
	convs, err := h.svc.RecentConversations(ctx, auth.CallerID(ctx))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, convs)
}

func (h *Handler) GetThread(c echo.Context) error {
	ctx := c.Request().Context()
	msgs, err := h.svc.Thread(ctx, auth.CallerID(ctx), c.Param("userId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, msgs)
}

func (h *Handler) SendMessage(c echo.Context) error {
	var in CreateInput
	if err := validate.Bind(c, &in); err != nil {
		return err
	}
	ctx := c.Request().Context()
	m, err := h.svc.Send(ctx, auth.CallerID(ctx), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, m)
}
