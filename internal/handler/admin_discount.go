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

// AdminDiscountHandler manages discount codes.
type AdminDiscountHandler struct {
	Discounts *repository.DiscountRepo
	Log       *zap.Logger
}

// List handles GET /api/admin/discounts.
func (h *AdminDiscountHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	codes, err := h.Discounts.List(ctx)
	if err != nil {
		h.Log.Error("list discounts failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgServerError})
	}
	return c.JSON(http.StatusOK, codes)
}

type createDiscountReq struct {
	Code      string  `json:"code"`
	Percent   int     `json:"percent"`
	Active    *bool   `json:"active"`
	ExpiresAt *string `json:"expiresAt"`
}

// Create handles POST /api/admin/discounts. Codes are stored uppercase and
// active by default.
func (h *AdminDiscountHandler) Create(c echo.Context) error {
	var req createDiscountReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msgInvalidBody})
	}
	if strings.TrimSpace(req.Code) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Pole code jest wymagane"})
	}
	if req.Percent < 1 || req.Percent > 100 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Pole percent musi być z zakresu 1-100"})
	}

	d := model.DiscountCode{Code: req.Code, Percent: req.Percent, Active: true}
	if req.Active != nil {
		d.Active = *req.Active
	}
	if req.ExpiresAt != nil {
		t, err := time.Parse(time.RFC3339, *req.ExpiresAt)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Pole expiresAt ma nieprawidłowy format"})
		}
		d.ExpiresAt = &t
	}

	ctx, cancel := reqCtx(c)
	defer cancel()
	created, err := h.Discounts.Create(ctx, d)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"message": "Kod rabatowy o tej nazwie już istnieje"})
		}
		h.Log.Error("create discount failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgServerError})
	}
	return c.JSON(http.StatusCreated, created)
}

type updateDiscountReq struct {
	Percent   *int    `json:"percent"`
	Active    *bool   `json:"active"`
	ExpiresAt *string `json:"expiresAt"`
}

// Update handles PATCH /api/admin/discounts/:id. The code itself is
// immutable; revoke and reissue instead.
func (h *AdminDiscountHandler) Update(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msgInvalidID})
	}
	var req updateDiscountReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msgInvalidBody})
	}
	if req.Percent != nil && (*req.Percent < 1 || *req.Percent > 100) {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Pole percent musi być z zakresu 1-100"})
	}

	upd := repository.DiscountUpdate{Percent: req.Percent, Active: req.Active}
	if req.ExpiresAt != nil {
		t, err := time.Parse(time.RFC3339, *req.ExpiresAt)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Pole expiresAt ma nieprawidłowy format"})
		}
		upd.ExpiresAt = &t
	}

	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Discounts.Update(ctx, id, upd); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": msgNotFound})
		}
		h.Log.Error("update discount failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgServerError})
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete handles DELETE /api/admin/discounts/:id.
func (h *AdminDiscountHandler) Delete(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msgInvalidID})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Discounts.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": msgNotFound})
		}
		h.Log.Error("delete discount failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgServerError})
	}
	return c.NoContent(http.StatusNoContent)
}
