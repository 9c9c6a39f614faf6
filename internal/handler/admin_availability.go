package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/kadrfilm/booking-server/internal/model"
	"github.com/kadrfilm/booking-server/internal/repository"
)

// AdminAvailabilityHandler manages the admin calendar. Booking-derived busy
// days are not editable here, they follow the bookings themselves.
type AdminAvailabilityHandler struct {
	Events *repository.AvailabilityRepo
	Log    *zap.Logger
}

// List handles GET /api/admin/availability.
func (h *AdminAvailabilityHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	events, err := h.Events.List(ctx)
	if err != nil {
		h.Log.Error("list availability failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgServerError})
	}
	return c.JSON(http.StatusOK, events)
}

type createEventReq struct {
	Title       string `json:"title"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	IsAllDay    bool   `json:"isAllDay"`
	Description string `json:"description"`
}

// Create handles POST /api/admin/availability.
func (h *AdminAvailabilityHandler) Create(c echo.Context) error {
	var req createEventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msgInvalidBody})
	}
	if strings.TrimSpace(req.Title) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Pole title jest wymagane"})
	}
	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Pole startTime ma nieprawidłowy format"})
	}
	end, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Pole endTime ma nieprawidłowy format"})
	}
	if end.Before(start) {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Data zakończenia nie może być wcześniejsza niż data rozpoczęcia"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()
	ev, err := h.Events.Create(ctx, model.AvailabilityEvent{
		Title:       strings.TrimSpace(req.Title),
		StartTime:   start,
		EndTime:     end,
		IsAllDay:    req.IsAllDay,
		Description: req.Description,
	})
	if err != nil {
		h.Log.Error("create availability failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgServerError})
	}
	return c.JSON(http.StatusCreated, ev)
}

type updateEventReq struct {
	Title       *string `json:"title"`
	StartTime   *string `json:"startTime"`
	EndTime     *string `json:"endTime"`
	IsAllDay    *bool   `json:"isAllDay"`
	Description *string `json:"description"`
}

// Update handles PATCH /api/admin/availability/:id.
func (h *AdminAvailabilityHandler) Update(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msgInvalidID})
	}
	var req updateEventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msgInvalidBody})
	}

	upd := repository.EventUpdate{
		Title:       req.Title,
		IsAllDay:    req.IsAllDay,
		Description: req.Description,
	}
	if req.StartTime != nil {
		t, err := time.Parse(time.RFC3339, *req.StartTime)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Pole startTime ma nieprawidłowy format"})
		}
		upd.StartTime = &t
	}
	if req.EndTime != nil {
		t, err := time.Parse(time.RFC3339, *req.EndTime)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Pole endTime ma nieprawidłowy format"})
		}
		upd.EndTime = &t
	}

	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Events.Update(ctx, id, upd); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": msgNotFound})
		}
		h.Log.Error("update availability failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgServerError})
	}
	ev, err := h.Events.GetByID(ctx, id)
	if err != nil {
		h.Log.Error("reload availability failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgServerError})
	}
	return c.JSON(http.StatusOK, ev)
}

// Delete handles DELETE /api/admin/availability/:id.
func (h *AdminAvailabilityHandler) Delete(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msgInvalidID})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Events.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": msgNotFound})
		}
		h.Log.Error("delete availability failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgServerError})
	}
	return c.NoContent(http.StatusNoContent)
}
