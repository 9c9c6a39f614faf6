package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/kadrfilm/booking-server/internal/model"
	"github.com/kadrfilm/booking-server/internal/repository"
)

// AdminStageHandler moves bookings through the production pipeline.
type AdminStageHandler struct {
	Stages   *repository.StageRepo
	Bookings *repository.BookingRepo
	Log      *zap.Logger
}

// List handles GET /api/admin/stages?clientId=XXXX.
func (h *AdminStageHandler) List(c echo.Context) error {
	clientID := strings.TrimSpace(c.QueryParam("clientId"))
	if clientID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Parametr clientId jest wymagany"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	ok, err := h.Bookings.ClientIDExists(ctx, clientID)
	if err != nil {
		h.Log.Error("stage client check failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgServerError})
	}
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"message": msgNotFound})
	}
	stages, err := h.Stages.ListByClient(ctx, clientID)
	if err != nil {
		h.Log.Error("list stages failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgServerError})
	}
	return c.JSON(http.StatusOK, stages)
}

type stageStatusReq struct {
	Status string `json:"status"`
}

// SetStatus handles PATCH /api/admin/stages/:id.
func (h *AdminStageHandler) SetStatus(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msgInvalidID})
	}
	var req stageStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msgInvalidBody})
	}
	if !model.ValidStageStatus(req.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Pole status ma nieprawidłową wartość"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	s, err := h.Stages.SetStatus(ctx, id, req.Status)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": msgNotFound})
		}
		h.Log.Error("set stage status failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgServerError})
	}
	return c.JSON(http.StatusOK, s)
}
