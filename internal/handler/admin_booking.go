package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/kadrfilm/booking-server/internal/repository"
)

// AdminBookingHandler is the back-office view over bookings.
type AdminBookingHandler struct {
	Bookings *repository.BookingRepo
	Log      *zap.Logger
}

// List handles GET /api/admin/bookings, newest first.
func (h *AdminBookingHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	bookings, err := h.Bookings.List(ctx)
	if err != nil {
		h.Log.Error("admin list bookings failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgServerError})
	}
	return c.JSON(http.StatusOK, bookings)
}

// Get handles GET /api/admin/bookings/:id.
func (h *AdminBookingHandler) Get(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msgInvalidID})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	b, err := h.Bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": msgNotFound})
		}
		h.Log.Error("admin get booking failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgServerError})
	}
	return c.JSON(http.StatusOK, b)
}

type adminBookingUpdateReq struct {
	BrideName      *string  `json:"brideName"`
	GroomName      *string  `json:"groomName"`
	WeddingDate    *string  `json:"weddingDate"`
	BrideAddress   *string  `json:"brideAddress"`
	GroomAddress   *string  `json:"groomAddress"`
	Locations      *string  `json:"locations"`
	Schedule       *string  `json:"schedule"`
	AdditionalInfo *string  `json:"additionalInfo"`
	Email          *string  `json:"email"`
	PhoneNumber    *string  `json:"phoneNumber"`
	PackageName    *string  `json:"packageName"`
	SelectedItems  []string `json:"selectedItems"`
	TotalPrice     *float64 `json:"totalPrice"`
	DiscountCode   *string  `json:"discountCode"`
}

// Update handles PATCH /api/admin/bookings/:id. Unlike the client portal
// the entire record is writable.
func (h *AdminBookingHandler) Update(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msgInvalidID})
	}
	var req adminBookingUpdateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msgInvalidBody})
	}

	upd := repository.AdminUpdate{
		BrideName:      req.BrideName,
		GroomName:      req.GroomName,
		BrideAddress:   req.BrideAddress,
		GroomAddress:   req.GroomAddress,
		Locations:      req.Locations,
		Schedule:       req.Schedule,
		AdditionalInfo: req.AdditionalInfo,
		Email:          req.Email,
		PhoneNumber:    req.PhoneNumber,
		PackageName:    req.PackageName,
		SelectedItems:  req.SelectedItems,
		TotalPrice:     req.TotalPrice,
		DiscountCode:   req.DiscountCode,
	}
	if req.WeddingDate != nil {
		t, err := time.Parse("2006-01-02", *req.WeddingDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Pole weddingDate ma nieprawidłowy format (RRRR-MM-DD)"})
		}
		upd.WeddingDate = &t
	}

	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Bookings.UpdateByAdmin(ctx, id, upd); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": msgNotFound})
		}
		h.Log.Error("admin update booking failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgServerError})
	}
	b, err := h.Bookings.GetByID(ctx, id)
	if err != nil {
		h.Log.Error("admin reload booking failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgServerError})
	}
	return c.JSON(http.StatusOK, b)
}

// Delete handles DELETE /api/admin/bookings/:id. Removes the booking and
// everything keyed to its client ID in one transaction.
func (h *AdminBookingHandler) Delete(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msgInvalidID})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Bookings.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": msgNotFound})
		}
		h.Log.Error("admin delete booking failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgServerError})
	}
	return c.NoContent(http.StatusNoContent)
}
