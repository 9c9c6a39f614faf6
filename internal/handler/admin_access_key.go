package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/kadrfilm/booking-server/internal/repository"
)

// AdminAccessKeyHandler manages the single-use access keys that gate the
// booking form.
type AdminAccessKeyHandler struct {
	Keys *repository.AccessKeyRepo
	Log  *zap.Logger
}

// List handles GET /api/admin/access-keys.
func (h *AdminAccessKeyHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	keys, err := h.Keys.List(ctx)
	if err != nil {
		h.Log.Error("list access keys failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgServerError})
	}
	return c.JSON(http.StatusOK, keys)
}

type createAccessKeyReq struct {
	ClientName string `json:"clientName"`
}

// Create handles POST /api/admin/access-keys. The key itself is generated
// server-side; clientName labels who the key was handed to.
func (h *AdminAccessKeyHandler) Create(c echo.Context) error {
	var req createAccessKeyReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msgInvalidBody})
	}
	if strings.TrimSpace(req.ClientName) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Pole clientName jest wymagane"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	key, err := h.Keys.Create(ctx, strings.TrimSpace(req.ClientName))
	if err != nil {
		h.Log.Error("create access key failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgServerError})
	}
	return c.JSON(http.StatusCreated, key)
}

// Delete handles DELETE /api/admin/access-keys/:id.
func (h *AdminAccessKeyHandler) Delete(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msgInvalidID})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Keys.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": msgNotFound})
		}
		h.Log.Error("delete access key failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgServerError})
	}
	return c.NoContent(http.StatusNoContent)
}
