package handler

import (
	"errors"
	"net/http"
	"sort"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/kadrfilm/booking-server/internal/model"
	"github.com/kadrfilm/booking-server/internal/repository"
)

// PublicHandler serves the unauthenticated marketing and calculator
// endpoints.
type PublicHandler struct {
	Catalog      *repository.CatalogRepo
	Gallery      *repository.GalleryRepo
	Availability *repository.AvailabilityRepo
	Bookings     *repository.BookingRepo
	AccessKeys   *repository.AccessKeyRepo
	Discounts    *repository.DiscountRepo
	Guests       *repository.GuestRepo
	Log          *zap.Logger
}

// GetPackages handles GET /api/packages: the full offer catalog with addons
// and lock flags.
func (h *PublicHandler) GetPackages(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	pkgs, err := h.Catalog.ListPackagesWithAddons(ctx)
	if err != nil {
		h.Log.Error("list packages failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgServerError})
	}
	return c.JSON(http.StatusOK, pkgs)
}

// GetGallery handles GET /api/gallery.
func (h *PublicHandler) GetGallery(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	items, err := h.Gallery.List(ctx)
	if err != nil {
		h.Log.Error("list gallery failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgServerError})
	}
	return c.JSON(http.StatusOK, items)
}

// GetCalendar handles GET /api/availability: admin events merged with
// read-only projections of booked wedding dates, sorted by start time.
func (h *PublicHandler) GetCalendar(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	events, err := h.Availability.List(ctx)
	if err != nil {
		h.Log.Error("list availability failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgServerError})
	}
	weddings, err := h.Bookings.WeddingDates(ctx)
	if err != nil {
		h.Log.Error("list wedding dates failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgServerError})
	}

	entries := make([]model.CalendarEntry, 0, len(events)+len(weddings))
	for _, e := range events {
		entries = append(entries, model.CalendarEntry{
			Title:     e.Title,
			StartTime: e.StartTime,
			EndTime:   e.EndTime,
			IsAllDay:  e.IsAllDay,
			Source:    "event",
		})
	}
	entries = append(entries, weddings...)
	sort.Slice(entries, func(i, j int) bool { return entries[i].StartTime.Before(entries[j].StartTime) })
	return c.JSON(http.StatusOK, entries)
}

type validateKeyReq struct {
	Key string `json:"key"`
}

// ValidateKey handles POST /api/validate-key. An unknown key returns 404
// with valid:false, a known key 200 with valid:true.
func (h *PublicHandler) ValidateKey(c echo.Context) error {
	var req validateKeyReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Key) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Pole key jest wymagane"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	exists, err := h.AccessKeys.Exists(ctx, req.Key)
	if err != nil {
		h.Log.Error("access key lookup failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgServerError})
	}
	if !exists {
		return c.JSON(http.StatusNotFound, echo.Map{"valid": false, "message": "Nieprawidłowy klucz dostępu"})
	}
	return c.JSON(http.StatusOK, echo.Map{"valid": true})
}

type validateDiscountReq struct {
	Code string `json:"code"`
}

// ValidateDiscount handles POST /api/validate-discount. Unknown, inactive
// and expired codes all answer with the same 404 shape.
func (h *PublicHandler) ValidateDiscount(c echo.Context) error {
	var req validateDiscountReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Code) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Pole code jest wymagane"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	d, err := h.Discounts.CheckCode(ctx, req.Code)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"valid": false, "message": "Nieprawidłowy kod rabatowy"})
		}
		h.Log.Error("discount lookup failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgServerError})
	}
	return c.JSON(http.StatusOK, echo.Map{"valid": true, "percent": d.Percent})
}

type rsvpReq struct {
	ClientID   string `json:"clientId"`
	Name       string `json:"name"`
	Attending  *bool  `json:"attending"`
	Companions int    `json:"companions"`
	Notes      string `json:"notes"`
}

// SubmitRSVP handles POST /api/rsvp, the public form wedding guests fill in
// with the couple's client ID.
func (h *PublicHandler) SubmitRSVP(c echo.Context) error {
	var req rsvpReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msgInvalidBody})
	}
	req.ClientID = strings.TrimSpace(req.ClientID)
	req.Name = strings.TrimSpace(req.Name)
	if req.ClientID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Pole clientId jest wymagane"})
	}
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Pole name jest wymagane"})
	}
	if req.Companions < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Pole companions nie może być ujemne"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	exists, err := h.Bookings.ClientIDExists(ctx, req.ClientID)
	if err != nil {
		h.Log.Error("rsvp booking lookup failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgServerError})
	}
	if !exists {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Nie znaleziono rezerwacji dla podanego identyfikatora"})
	}

	attending := true
	if req.Attending != nil {
		attending = *req.Attending
	}
	guest, err := h.Guests.Create(ctx, model.Guest{
		ClientID:   req.ClientID,
		Name:       req.Name,
		Attending:  attending,
		Companions: req.Companions,
		Notes:      req.Notes,
	})
	if err != nil {
		h.Log.Error("rsvp create failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgServerError})
	}
	return c.JSON(http.StatusCreated, guest)
}
