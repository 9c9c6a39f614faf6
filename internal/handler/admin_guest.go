package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/kadrfilm/booking-server/internal/repository"
)

// AdminGuestHandler exposes RSVP lists to the back office.
type AdminGuestHandler struct {
	Guests   *repository.GuestRepo
	Bookings *repository.BookingRepo
	Log      *zap.Logger
}

// List handles GET /api/admin/guests?clientId=XXXX.
func (h *AdminGuestHandler) List(c echo.Context) error {
	clientID := strings.TrimSpace(c.QueryParam("clientId"))
	if clientID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Parametr clientId jest wymagany"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	ok, err := h.Bookings.ClientIDExists(ctx, clientID)
	if err != nil {
		h.Log.Error("guest client check failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgServerError})
	}
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"message": msgNotFound})
	}
	guests, err := h.Guests.ListByClient(ctx, clientID)
	if err != nil {
		h.Log.Error("admin list guests failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgServerError})
	}
	return c.JSON(http.StatusOK, guests)
}

// Delete handles DELETE /api/admin/guests/:id.
func (h *AdminGuestHandler) Delete(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msgInvalidID})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Guests.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": msgNotFound})
		}
		h.Log.Error("admin delete guest failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgServerError})
	}
	return c.NoContent(http.StatusNoContent)
}
